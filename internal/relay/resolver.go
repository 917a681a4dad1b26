package relay

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/MKhiriev/merlin-client/internal/adapter"
	"github.com/MKhiriev/merlin-client/models"
)

// Resolution is the outcome of [Resolver.Resolve].
type Resolution struct {
	// Address is the proxy address when relayed, otherwise the raw account.
	Address  string
	IsRelay  bool
	NetID    uint64
	Provider adapter.RPCProvider
}

// Allowed reports whether a relay request may be honored for connector.
// Safe connections are never relayed unless the debug address override is
// explicitly set to the empty string.
func Allowed(connector models.ConnectorName, debug models.DebugOverride) bool {
	return connector != models.ConnectorSafe || (debug.Set && debug.Address == "")
}

// Resolver maps a connection to its relayed or direct form.
type Resolver struct {
	deriver *ProxyDeriver
	relay   adapter.RPCProvider
}

// NewResolver creates a resolver relaying through relayProvider.
func NewResolver(deriver *ProxyDeriver, relayProvider adapter.RPCProvider) *Resolver {
	return &Resolver{deriver: deriver, relay: relayProvider}
}

// Resolve returns the relayed connection when relay is true and the direct
// one otherwise. The caller gates relay with [Allowed].
func (r *Resolver) Resolve(relay bool, networkID uint64, provider adapter.RPCProvider, account string) Resolution {
	if !relay {
		return Resolution{
			Address:  account,
			NetID:    networkID,
			Provider: provider,
		}
	}

	res := Resolution{
		IsRelay:  true,
		NetID:    models.RelayNetworkID,
		Provider: r.relay,
	}
	if account != "" && common.IsHexAddress(account) {
		res.Address = r.deriver.Address(common.HexToAddress(account)).Hex()
	}
	return res
}
