package wallet

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/merlin-client/internal/logger"
	"github.com/MKhiriev/merlin-client/models"
)

// Injected talks to a locally running wallet that accepts
// eth_requestAccounts over JSON-RPC. While active it polls the wallet for
// account and network changes.
type Injected struct {
	providers *Providers
	poll      time.Duration
	watch     sessionWatch

	logger *logger.Logger
}

func NewInjected(providers *Providers, logger *logger.Logger) *Injected {
	return &Injected{providers: providers, poll: defaultSessionPoll, logger: logger}
}

func (i *Injected) Name() models.ConnectorName {
	return models.ConnectorInjected
}

// Activate asks the wallet for its accounts and uses the first one.
func (i *Injected) Activate(ctx context.Context) (Activation, error) {
	provider, err := i.providers.Injected()
	if err != nil {
		return Activation{}, err
	}

	var accounts []string
	if err = provider.Call(ctx, &accounts, "eth_requestAccounts"); err != nil {
		return Activation{}, fmt.Errorf("request accounts: %w", err)
	}
	if len(accounts) == 0 {
		return Activation{}, ErrNoAccounts
	}

	return Activation{Account: accounts[0], Provider: provider}, nil
}

// Watch polls eth_accounts and eth_chainId on the activation provider. A
// wallet that stops exposing accounts (locked or disconnected) ends the
// session.
func (i *Injected) Watch(ctx context.Context, act Activation, report func(Update)) {
	provider := act.Provider
	last := Update{Account: act.Account}
	if id, err := provider.ChainID(ctx); err == nil {
		last.NetworkID = id
	}

	read := func(ctx context.Context) (Update, error) {
		var accounts []string
		if err := provider.Call(ctx, &accounts, "eth_accounts"); err != nil {
			return Update{}, fmt.Errorf("read accounts: %w", err)
		}
		if len(accounts) == 0 {
			return Update{Err: ErrNoAccounts}, nil
		}
		id, err := provider.ChainID(ctx)
		if err != nil {
			return Update{}, fmt.Errorf("read chain id: %w", err)
		}
		return Update{Account: accounts[0], NetworkID: id}, nil
	}

	i.logger.Debug().
		Str("func", "Injected.Watch").
		Uint64("network", last.NetworkID).
		Msg("watching injected wallet")

	i.watch.start(ctx, i.poll, last, read, report)
}

func (i *Injected) Deactivate(context.Context) error {
	return nil
}

// StopPolling stops the session watch.
func (i *Injected) StopPolling() {
	i.watch.stop()
}
