package config

import (
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/MKhiriev/merlin-client/models"
)

// Defaults applied by [GetClientConfig] to fields no source has set.
const (
	DefaultHostedRPCURL          = "https://cloudflare-eth.com"
	DefaultInjectedRPCURL        = "http://127.0.0.1:1248"
	DefaultRelayRPCURL           = "https://rpc.gnosischain.com/"
	DefaultSubgraphURL           = "https://api.thegraph.com/subgraphs/name/protofire/omen-xdai"
	DefaultDSN                   = "merlin-client.db"
	DefaultBridgeAddress         = "127.0.0.1:8484"
	DefaultRequestTimeout        = 15 * time.Second
	DefaultBlockTrackerInterval  = 4 * time.Second
	DefaultHandshakeTimeout      = 2 * time.Minute
	DefaultHandshakePollInterval = 500 * time.Millisecond
	DefaultCPKFactory            = "0x0fB4340432e56c014fa96286de17222822a9281b"
	DefaultCPKMasterCopy         = "0x6851D6fDFAfD08c0295C392436245E5bc78B0185"
)

// ClientApp holds client-side application settings derived from the shared
// structured config.
type ClientApp struct {
	// Version is reported by the header and the bridge.
	Version string
}

// ClientAdapter holds the outbound endpoints used by the client transport
// layer.
type ClientAdapter struct {
	HostedRPCURL   string
	InjectedRPCURL string
	RelayRPCURL    string
	SubgraphURL    string
	// NetworkRPCURLs maps a network id to the endpoint used by the Safe and
	// WalletConnect connectors for that network.
	NetworkRPCURLs map[uint64]string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// DSN is the SQLite connection string used by the client.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
}

// ClientServer holds the local bridge server settings.
type ClientServer struct {
	HTTPAddress    string
	RequestTimeout time.Duration
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	BlockTrackerInterval  time.Duration
	KeepBlockTracker      bool
	HandshakeTimeout      time.Duration
	HandshakePollInterval time.Duration
}

// ClientWallet holds the connector selection and relay settings.
type ClientWallet struct {
	// Debug is the resolved debug override.
	Debug models.DebugOverride
	// CPKFactory is the proxy factory the counterfactual proxy is derived from.
	CPKFactory common.Address
	// CPKMasterCopy is the Safe master copy the proxy delegates to.
	CPKMasterCopy common.Address
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// App contains application-level client settings.
	App ClientApp
	// Adapter contains client transport endpoints and timeouts.
	Adapter ClientAdapter
	// Storage contains client storage settings.
	Storage ClientStorage
	// Server contains the bridge server settings.
	Server ClientServer
	// Workers contains background job settings.
	Workers ClientWorkers
	// Wallet contains connector settings.
	Wallet ClientWallet
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], fills unset fields with
// defaults, and validates the resulting [ClientConfig].
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	return NewClientConfig(cfg)
}

// NewClientConfig projects cfg onto a [ClientConfig], applying defaults.
func NewClientConfig(cfg *StructuredConfig) (*ClientConfig, error) {
	if err := cfg.validateWallet(); err != nil {
		return nil, err
	}

	debug := models.DebugOverride{NetworkID: orDefault(cfg.Wallet.DebugNetworkID, models.NetworkMainnet)}
	if cfg.Wallet.DebugAddress != nil {
		debug.Set = true
		debug.Address = *cfg.Wallet.DebugAddress
	}

	clientCfg := &ClientConfig{
		App: ClientApp{
			Version: cfg.App.Version,
		},
		Adapter: ClientAdapter{
			HostedRPCURL:   orDefault(cfg.Adapter.HostedRPCURL, DefaultHostedRPCURL),
			InjectedRPCURL: orDefault(cfg.Adapter.InjectedRPCURL, DefaultInjectedRPCURL),
			RelayRPCURL:    orDefault(cfg.Adapter.RelayRPCURL, DefaultRelayRPCURL),
			SubgraphURL:    orDefault(cfg.Adapter.SubgraphURL, DefaultSubgraphURL),
			NetworkRPCURLs: networkRPCURLs(cfg.Adapter),
			RequestTimeout: orDefault(cfg.Adapter.RequestTimeout, DefaultRequestTimeout),
		},
		Storage: ClientStorage{
			DB: ClientDB{
				DSN: orDefault(cfg.Storage.DB.DSN, DefaultDSN),
			},
		},
		Server: ClientServer{
			HTTPAddress:    orDefault(cfg.Server.HTTPAddress, DefaultBridgeAddress),
			RequestTimeout: orDefault(cfg.Server.RequestTimeout, DefaultRequestTimeout),
		},
		Workers: ClientWorkers{
			BlockTrackerInterval:  orDefault(cfg.Workers.BlockTrackerInterval, DefaultBlockTrackerInterval),
			KeepBlockTracker:      cfg.Workers.KeepBlockTracker,
			HandshakeTimeout:      orDefault(cfg.Workers.HandshakeTimeout, DefaultHandshakeTimeout),
			HandshakePollInterval: orDefault(cfg.Workers.HandshakePollInterval, DefaultHandshakePollInterval),
		},
		Wallet: ClientWallet{
			Debug:         debug,
			CPKFactory:    common.HexToAddress(orDefault(cfg.Wallet.CPKFactory, DefaultCPKFactory)),
			CPKMasterCopy: common.HexToAddress(orDefault(cfg.Wallet.CPKMasterCopy, DefaultCPKMasterCopy)),
		},
	}

	return clientCfg, clientCfg.validate()
}

// networkRPCURLs returns the per-network endpoints, falling back to the
// hosted endpoint for mainnet and the relay endpoint for xDAI.
func networkRPCURLs(a Adapter) map[uint64]string {
	urls := map[uint64]string{
		models.NetworkMainnet: orDefault(a.HostedRPCURL, DefaultHostedRPCURL),
		models.NetworkXDAI:    orDefault(a.RelayRPCURL, DefaultRelayRPCURL),
	}
	for id, url := range a.NetworkRPCURLs {
		urls[id] = url
	}
	return urls
}

func orDefault[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
