package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/merlin-client/internal/connection"
	"github.com/MKhiriev/merlin-client/internal/logger"
	"github.com/MKhiriev/merlin-client/internal/markets"
	"github.com/MKhiriev/merlin-client/internal/service"
	"github.com/MKhiriev/merlin-client/models"
)

// Connection is the part of the connection machine the terminal UI drives.
type Connection interface {
	State() connection.State
	View() *connection.Snapshot
	Subscribe() (<-chan *connection.Snapshot, func())
	ToggleRelay() error
	RefreshBalances() error
	SetConnector(ctx context.Context, name models.ConnectorName) error
	Logout(ctx context.Context) error
}

// TUI runs the market browser.
type TUI struct {
	conn      Connection
	markets   service.MarketService
	buildInfo models.AppBuildInfo

	panel   *markets.Panel
	filters chan models.MarketFilters

	logger *logger.Logger
}

func New(conn Connection, marketService service.MarketService, buildInfo models.AppBuildInfo, logger *logger.Logger) (*TUI, error) {
	if conn == nil || marketService == nil {
		return nil, errors.New("tui: connection and market service are required")
	}

	t := &TUI{
		conn:      conn,
		markets:   marketService,
		buildInfo: buildInfo,
		filters:   make(chan models.MarketFilters, 1),
		logger:    logger,
	}
	t.panel = markets.NewPanel(markets.DefaultFilters(), t.pushFilters)
	return t, nil
}

// pushFilters keeps only the latest record for the program loop.
func (t *TUI) pushFilters(f models.MarketFilters) {
	select {
	case <-t.filters:
	default:
	}
	t.filters <- f
}

// MainLoop runs the program until the user quits or ctx is done.
func (t *TUI) MainLoop(ctx context.Context) error {
	snapshots, unsubscribe := t.conn.Subscribe()
	defer unsubscribe()

	model := newRootModel(ctx, t, snapshots)
	finalModel, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("tui: %w", err)
	}

	if _, ok := finalModel.(rootModel); !ok {
		return ErrUserQuit
	}
	return nil
}
