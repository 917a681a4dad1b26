package connection

import (
	"github.com/MKhiriev/merlin-client/models"
)

// SelectionInput is what connector selection looks at.
type SelectionInput struct {
	// WalletErr is the error of the last activation.
	WalletErr error
	// Active is the connector that is active or activating.
	Active models.ConnectorName
	// Bridge is set while an embedding Safe host is attached.
	Bridge *models.SafeAppInfo
	// Persisted is the stored CONNECTOR value.
	Persisted string
	Debug     models.DebugOverride
	// DebugFailed is set once the debug Safe connection has failed.
	DebugFailed bool
	// Valid reports whether a persisted name is a registered connector.
	Valid func(name string) bool
}

// SafeParams are the arguments of Safe.Init.
type SafeParams struct {
	Address   string
	NetworkID uint64
}

// SelectionDecision is the outcome of [SelectConnector]. A zero decision
// means nothing has to change.
type SelectionDecision struct {
	ClearPersisted bool
	InitSafe       *SafeParams
	// Activate names the connector to activate, or is empty.
	Activate models.ConnectorName
}

// SelectConnector decides which connector should be active. Rules are
// evaluated in priority order: a wallet error falls back to the hosted
// connector, an attached Safe host selects Safe, a valid persisted choice
// is restored and the hosted connector is the default. A debug override
// forces Safe on top of all of them.
func SelectConnector(in SelectionInput) SelectionDecision {
	var d SelectionDecision

	switch {
	case in.WalletErr != nil:
		d.ClearPersisted = true
		// a failing hosted connector is not retried in a loop
		if in.Active != models.ConnectorInfura {
			d.Activate = models.ConnectorInfura
		}

	case in.Bridge != nil:
		if in.Active != models.ConnectorSafe {
			networkID, _ := models.NetworkIDByName(in.Bridge.Network)
			d.ClearPersisted = true
			d.InitSafe = &SafeParams{Address: in.Bridge.SafeAddress, NetworkID: networkID}
			d.Activate = models.ConnectorSafe
		}

	case in.Persisted != "" && in.Valid != nil && in.Valid(in.Persisted):
		if in.Active != models.ConnectorName(in.Persisted) {
			d.Activate = models.ConnectorName(in.Persisted)
		}

	default:
		if in.Active != models.ConnectorInfura {
			d.Activate = models.ConnectorInfura
		}
	}

	if in.Debug.Active() && !in.DebugFailed && in.Active != models.ConnectorSafe {
		d.InitSafe = &SafeParams{Address: in.Debug.Address, NetworkID: in.Debug.NetworkID}
		d.Activate = models.ConnectorSafe
	}

	return d
}
