package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"
)

// StructuredJSONConfig is the on-disk layout of the optional JSON config file.
type StructuredJSONConfig struct {
	App struct {
		Version string `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Adapter struct {
		HostedRPCURL   string            `json:"hosted_rpc_url"`
		InjectedRPCURL string            `json:"injected_rpc_url"`
		RelayRPCURL    string            `json:"relay_rpc_url"`
		SubgraphURL    string            `json:"subgraph_url"`
		NetworkRPCURLs map[string]string `json:"network_rpc_urls"`
		RequestTimeout Duration          `json:"request_timeout"`
	} `json:"adapter,omitempty"`

	Workers struct {
		BlockTrackerInterval  Duration `json:"block_tracker_interval"`
		KeepBlockTracker      bool     `json:"keep_block_tracker"`
		HandshakeTimeout      Duration `json:"handshake_timeout"`
		HandshakePollInterval Duration `json:"handshake_poll_interval"`
	} `json:"workers,omitempty"`

	Wallet struct {
		DebugAddress   *string `json:"debug_address"`
		DebugNetworkID uint64  `json:"debug_network_id"`
		CPKFactory     string  `json:"cpk_factory"`
		CPKMasterCopy  string  `json:"cpk_master_copy"`
	} `json:"wallet,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	var rpcURLs map[uint64]string
	if len(jsonCfg.Adapter.NetworkRPCURLs) > 0 {
		rpcURLs = make(map[uint64]string, len(jsonCfg.Adapter.NetworkRPCURLs))
		for key, url := range jsonCfg.Adapter.NetworkRPCURLs {
			id, err := strconv.ParseUint(key, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("error decoding network id %q: %w", key, err)
			}
			rpcURLs[id] = url
		}
	}

	cfg := &StructuredConfig{
		App: App{
			Version: jsonCfg.App.Version,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Adapter: Adapter{
			HostedRPCURL:   jsonCfg.Adapter.HostedRPCURL,
			InjectedRPCURL: jsonCfg.Adapter.InjectedRPCURL,
			RelayRPCURL:    jsonCfg.Adapter.RelayRPCURL,
			SubgraphURL:    jsonCfg.Adapter.SubgraphURL,
			NetworkRPCURLs: rpcURLs,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
		},
		Workers: Workers{
			BlockTrackerInterval:  time.Duration(jsonCfg.Workers.BlockTrackerInterval),
			KeepBlockTracker:      jsonCfg.Workers.KeepBlockTracker,
			HandshakeTimeout:      time.Duration(jsonCfg.Workers.HandshakeTimeout),
			HandshakePollInterval: time.Duration(jsonCfg.Workers.HandshakePollInterval),
		},
		Wallet: Wallet{
			DebugAddress:   jsonCfg.Wallet.DebugAddress,
			DebugNetworkID: jsonCfg.Wallet.DebugNetworkID,
			CPKFactory:     jsonCfg.Wallet.CPKFactory,
			CPKMasterCopy:  jsonCfg.Wallet.CPKMasterCopy,
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
