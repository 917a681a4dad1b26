package http

import (
	"context"

	"github.com/MKhiriev/merlin-client/internal/connection"
	"github.com/MKhiriev/merlin-client/models"
)

// Connection is the part of [connection.Machine] the bridge drives.
type Connection interface {
	State() connection.State
	View() *connection.Snapshot
	SetBridge(info *models.SafeAppInfo) error
	ToggleRelay() error
	RefreshBalances() error
	SetConnector(ctx context.Context, name models.ConnectorName) error
	Logout(ctx context.Context) error
	SetTxHash(hash string) error
	SetTxState(step models.TransactionStep) error
}
