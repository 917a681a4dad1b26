package connection

import (
	"github.com/MKhiriev/merlin-client/internal/adapter"
	"github.com/MKhiriev/merlin-client/models"
)

// State is the readiness state of a [Machine].
type State int32

const (
	Uninitialized State = iota
	PendingNetwork
	PendingDependents
	Ready
)

func (s State) String() string {
	switch s {
	case PendingNetwork:
		return "pendingNetwork"
	case PendingDependents:
		return "pendingDependents"
	case Ready:
		return "ready"
	default:
		return "uninitialized"
	}
}

// Snapshot is one consistent view of the connection. Snapshots are
// replaced wholesale and must not be modified by consumers.
type Snapshot struct {
	// Generation is the machine generation that produced the snapshot.
	Generation uint64

	// Account is the proxy address when relayed, the wallet account
	// otherwise. Empty for read-only connections.
	Account    string
	RawAccount string

	// NetworkID is the network the connection talks to: the relay network
	// when relayed, the wallet network otherwise.
	NetworkID    uint64
	RawNetworkID uint64

	Connector models.ConnectorName
	Provider  adapter.RPCProvider
	Relay     bool

	// Proxy is set whenever Account is.
	Proxy    *models.ProxyService
	Balances models.Balances

	TxHash  string
	TxState models.TransactionStep
}

// Connected reports whether the snapshot carries an account.
func (s *Snapshot) Connected() bool {
	return s != nil && s.Account != ""
}
