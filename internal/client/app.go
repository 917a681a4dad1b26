package client

import (
	"context"
	"errors"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/merlin-client/internal/logger"
)

// Components are the parts an [App] runs. Bridge, Wallet, Workers and
// Storage are optional.
type Components struct {
	Connection Connection
	UI         UI
	Bridge     Bridge
	// Wallet is closed after the connection machine.
	Wallet  interface{ Close() }
	Workers Stopper
	Storage io.Closer
}

type App struct {
	c      Components
	logger *logger.Logger
}

func NewApp(c Components, logger *logger.Logger) (*App, error) {
	if c.Connection == nil {
		return nil, errors.New("client: connection is required")
	}
	if c.UI == nil {
		return nil, errors.New("client: ui is required")
	}
	return &App{c: c, logger: logger}, nil
}

// Run starts the connection machine, then serves the bridge and the UI
// until the user quits, ctx is done or the bridge fails.
func (a *App) Run(ctx context.Context) error {
	if err := a.c.Connection.Start(); err != nil {
		return fmt.Errorf("start connection: %w", err)
	}
	a.logger.Info().Msg("connection machine started")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	if a.c.Bridge != nil {
		g.Go(func() error {
			if err := a.c.Bridge.RunServer(gctx); err != nil {
				return fmt.Errorf("bridge: %w", err)
			}
			return nil
		})
	}
	g.Go(func() error {
		// leaving the UI ends the app
		defer cancel()
		return a.c.UI.MainLoop(gctx)
	})

	err := g.Wait()
	return errors.Join(err, a.shutdown())
}

func (a *App) shutdown() error {
	a.c.Connection.Close()
	if a.c.Wallet != nil {
		a.c.Wallet.Close()
	}
	if a.c.Workers != nil {
		a.c.Workers.Stop()
	}

	var err error
	if a.c.Storage != nil {
		if cerr := a.c.Storage.Close(); cerr != nil {
			err = fmt.Errorf("close storage: %w", cerr)
		}
	}
	a.logger.Info().Err(err).Msg("client stopped")
	return err
}
