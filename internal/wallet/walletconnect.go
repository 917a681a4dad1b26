// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package wallet

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/merlin-client/internal/logger"
	"github.com/MKhiriev/merlin-client/internal/store"
	"github.com/MKhiriev/merlin-client/models"
)

const (
	defaultHandshakeTimeout = 2 * time.Minute
	defaultHandshakePoll    = 500 * time.Millisecond
)

// WalletConnect restores a WalletConnect session. The session record is
// written under [models.StorageKeyWalletConnect] by the relay through the
// local bridge. While no record exists Activate polls for one; once active
// the record is polled for account and chain changes.
type WalletConnect struct {
	providers *Providers
	storage   store.LocalStorage
	timeout   time.Duration
	poll      time.Duration

	mu      sync.Mutex
	pending *handshakeHandle
	session *models.WalletConnectSession
	watch   sessionWatch

	logger *logger.Logger
}

// NewWalletConnect creates the WalletConnect connector. Zero durations fall
// back to a two minute handshake polled every 500ms.
func NewWalletConnect(providers *Providers, storage store.LocalStorage, timeout, poll time.Duration, logger *logger.Logger) *WalletConnect {
	if timeout <= 0 {
		timeout = defaultHandshakeTimeout
	}
	if poll <= 0 {
		poll = defaultHandshakePoll
	}
	return &WalletConnect{
		providers: providers,
		storage:   storage,
		timeout:   timeout,
		poll:      poll,
		logger:    logger,
	}
}

func (w *WalletConnect) Name() models.ConnectorName {
	return models.ConnectorWalletConnect
}

func (w *WalletConnect) Activate(ctx context.Context) (Activation, error) {
	session, err := w.readSession(ctx)
	if errors.Is(err, store.ErrKeyNotFound) {
		session, err = w.handshake(ctx)
	}
	if err != nil {
		return Activation{}, err
	}

	provider, err := w.providers.ForNetwork(session.ChainID)
	if err != nil {
		return Activation{}, err
	}

	w.mu.Lock()
	w.session = &session
	w.mu.Unlock()

	return Activation{Account: session.Accounts[0], Provider: provider}, nil
}

// Session returns the session of the last successful activation.
func (w *WalletConnect) Session() (models.WalletConnectSession, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.session == nil {
		return models.WalletConnectSession{}, false
	}
	return *w.session, true
}

// Pending reports whether a handshake is waiting for a session.
func (w *WalletConnect) Pending() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pending != nil
}

// Watch follows the stored session record. A removed record ends the
// session; a new chain id moves the session to that network's provider.
func (w *WalletConnect) Watch(ctx context.Context, act Activation, report func(Update)) {
	last := Update{Account: act.Account}
	w.mu.Lock()
	if w.session != nil {
		last.NetworkID = w.session.ChainID
	}
	w.mu.Unlock()

	read := func(ctx context.Context) (Update, error) {
		session, err := w.readSession(ctx)
		if errors.Is(err, store.ErrKeyNotFound) {
			return Update{Err: ErrSessionEnded}, nil
		}
		if err != nil {
			return Update{}, err
		}

		provider, err := w.providers.ForNetwork(session.ChainID)
		if err != nil {
			return Update{Err: err}, nil
		}

		w.mu.Lock()
		w.session = &session
		w.mu.Unlock()

		return Update{Account: session.Accounts[0], NetworkID: session.ChainID, Provider: provider}, nil
	}

	w.watch.start(ctx, w.poll, last, read, report)
}

// Deactivate forgets the session. Polling is stopped by StopPolling.
func (w *WalletConnect) Deactivate(context.Context) error {
	w.mu.Lock()
	w.session = nil
	w.mu.Unlock()
	return nil
}

// StopPolling cancels a pending handshake and the session watch.
func (w *WalletConnect) StopPolling() {
	w.mu.Lock()
	pending := w.pending
	w.pending = nil
	w.mu.Unlock()

	if pending != nil {
		pending.stop()
	}
	w.watch.stop()
}

type handshakeHandle struct {
	stop context.CancelFunc
}

func (w *WalletConnect) handshake(ctx context.Context) (models.WalletConnectSession, error) {
	hsCtx, cancel := context.WithTimeout(ctx, w.timeout)
	stopCtx, stop := context.WithCancel(hsCtx)
	defer cancel()

	handle := &handshakeHandle{stop: stop}
	w.mu.Lock()
	if w.pending != nil {
		w.pending.stop()
	}
	w.pending = handle
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		if w.pending == handle {
			w.pending = nil
		}
		w.mu.Unlock()
		stop()
	}()

	w.logger.Debug().
		Str("func", "WalletConnect.handshake").
		Dur("timeout", w.timeout).
		Msg("waiting for walletconnect session")

	ticker := time.NewTicker(w.poll)
	defer ticker.Stop()

	for {
		select {
		case <-stopCtx.Done():
			switch {
			case ctx.Err() != nil:
				return models.WalletConnectSession{}, ctx.Err()
			case hsCtx.Err() != nil:
				return models.WalletConnectSession{}, ErrHandshakeTimeout
			default:
				return models.WalletConnectSession{}, ErrHandshakeStopped
			}
		case <-ticker.C:
			session, err := w.readSession(stopCtx)
			if errors.Is(err, store.ErrKeyNotFound) {
				continue
			}
			if err != nil && stopCtx.Err() != nil {
				continue
			}
			return session, err
		}
	}
}

func (w *WalletConnect) readSession(ctx context.Context) (models.WalletConnectSession, error) {
	raw, err := w.storage.Get(ctx, models.StorageKeyWalletConnect)
	if err != nil {
		return models.WalletConnectSession{}, err
	}

	var session models.WalletConnectSession
	if err = json.Unmarshal([]byte(raw), &session); err != nil {
		return models.WalletConnectSession{}, fmt.Errorf("%w: %w", ErrInvalidSession, err)
	}
	if len(session.Accounts) == 0 {
		return models.WalletConnectSession{}, fmt.Errorf("%w: %w", ErrInvalidSession, ErrNoAccounts)
	}
	return session, nil
}
