// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package wallet

import (
	"context"
	"fmt"
	"sync"

	"github.com/MKhiriev/merlin-client/internal/adapter"
	"github.com/MKhiriev/merlin-client/internal/logger"
	"github.com/MKhiriev/merlin-client/models"
)

// Status is the state of the active connector.
type Status struct {
	// Seq is the activation number the status belongs to.
	Seq uint64

	Connector  models.ConnectorName
	Activating bool
	Active     bool
	Account    string
	// NetworkID is the last network reported by a watching connector, zero
	// until one reports a change.
	NetworkID  uint64
	Provider   adapter.RPCProvider
	Err        error
}

// Manager activates one connector at a time. Activation runs in a goroutine
// and the outcome is published to subscribers; the result of an activation
// that was superseded by a later SetConnector is dropped. Connectors that
// watch their session keep publishing account, network and error changes
// under the same Seq.
type Manager struct {
	registry         *Registry
	keepBlockTracker bool

	root       context.Context
	cancelRoot context.CancelFunc

	mu               sync.Mutex
	seq              uint64
	active           Connector
	cancelActivation context.CancelFunc
	status           Status
	subs             map[uint64]chan Status
	nextSub          uint64
	closed           bool

	wg sync.WaitGroup

	logger *logger.Logger
}

// NewManager creates a manager with no active connector. Unless
// keepBlockTracker is set, block trackers started by a connector are stopped
// as soon as its activation succeeds.
func NewManager(registry *Registry, keepBlockTracker bool, logger *logger.Logger) *Manager {
	root, cancel := context.WithCancel(context.Background())
	return &Manager{
		registry:         registry,
		keepBlockTracker: keepBlockTracker,
		root:             root,
		cancelRoot:       cancel,
		subs:             make(map[uint64]chan Status),
		logger:           logger,
	}
}

// Registry returns the registry the manager activates connectors from.
func (m *Manager) Registry() *Registry {
	return m.registry
}

// SetConnector starts activating name. The previously active connector has
// its polling stopped exactly once and is deactivated when it differs from
// the new one. SetConnector returns before the activation completes.
func (m *Manager) SetConnector(ctx context.Context, name models.ConnectorName) error {
	next, ok := m.registry.Get(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownConnector, name)
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrManagerClosed
	}
	prev := m.active
	cancelPrev := m.cancelActivation

	m.seq++
	seq := m.seq
	m.active = next
	actCtx, cancel := context.WithCancel(m.root)
	m.cancelActivation = cancel
	m.setStatusLocked(Status{Seq: seq, Connector: name, Activating: true})
	m.wg.Add(1)
	m.mu.Unlock()

	if prev != nil {
		prev.StopPolling()
		if prev != next {
			if err := prev.Deactivate(ctx); err != nil {
				m.logger.Warn().Err(err).
					Str("func", "Manager.SetConnector").
					Str("connector", prev.Name().String()).
					Msg("failed to deactivate connector")
			}
		}
	}
	if cancelPrev != nil {
		cancelPrev()
	}

	m.logger.Info().
		Str("func", "Manager.SetConnector").
		Str("connector", name.String()).
		Uint64("seq", seq).
		Msg("activating connector")

	go m.activate(actCtx, next, seq)
	return nil
}

func (m *Manager) activate(ctx context.Context, conn Connector, seq uint64) {
	defer m.wg.Done()

	act, err := conn.Activate(ctx)
	if err == nil && !m.keepBlockTracker {
		if bt, ok := conn.(blockTracking); ok {
			bt.DisableBlockTracker()
		}
	}
	if err == nil {
		if w, ok := conn.(watching); ok {
			w.Watch(ctx, act, func(u Update) { m.onUpdate(seq, u) })
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if seq != m.seq {
		m.logger.Debug().
			Str("func", "Manager.activate").
			Str("connector", conn.Name().String()).
			Uint64("seq", seq).
			Msg("dropping superseded activation")
		return
	}

	if err != nil {
		m.logger.Error().Err(err).
			Str("func", "Manager.activate").
			Str("connector", conn.Name().String()).
			Msg("connector activation failed")
		m.setStatusLocked(Status{Seq: seq, Connector: conn.Name(), Err: err})
		return
	}

	m.setStatusLocked(Status{
		Seq:       seq,
		Connector: conn.Name(),
		Active:    true,
		Account:   act.Account,
		Provider:  act.Provider,
	})
}

// onUpdate publishes a change reported by the watch of activation seq.
func (m *Manager) onUpdate(seq uint64, u Update) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if seq != m.seq || !m.status.Active {
		return
	}

	s := m.status
	if u.Err != nil {
		m.logger.Warn().Err(u.Err).
			Str("func", "Manager.onUpdate").
			Str("connector", s.Connector.String()).
			Msg("wallet session failed")
		m.setStatusLocked(Status{Seq: seq, Connector: s.Connector, Err: u.Err})
		return
	}

	s.Account = u.Account
	s.NetworkID = u.NetworkID
	if u.Provider != nil {
		s.Provider = u.Provider
	}

	m.logger.Info().
		Str("func", "Manager.onUpdate").
		Str("connector", s.Connector.String()).
		Uint64("network", s.NetworkID).
		Msg("wallet session changed")
	m.setStatusLocked(s)
}

// Status returns the current status.
func (m *Manager) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// Subscribe returns a channel that receives the current status and then
// every change. Slow subscribers only see the latest status. The returned
// function unsubscribes and closes the channel.
func (m *Manager) Subscribe() (<-chan Status, func()) {
	ch := make(chan Status, 1)

	m.mu.Lock()
	defer m.mu.Unlock()

	ch <- m.status
	if m.closed {
		close(ch)
		return ch, func() {}
	}

	id := m.nextSub
	m.nextSub++
	m.subs[id] = ch

	return ch, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if sub, ok := m.subs[id]; ok {
			delete(m.subs, id)
			close(sub)
		}
	}
}

// Deactivate stops and deactivates the active connector and leaves the
// manager without one.
func (m *Manager) Deactivate(ctx context.Context) error {
	m.mu.Lock()
	conn := m.active
	cancel := m.cancelActivation
	m.active = nil
	m.cancelActivation = nil
	m.seq++
	m.setStatusLocked(Status{Seq: m.seq})
	m.mu.Unlock()

	if conn == nil {
		return nil
	}
	conn.StopPolling()
	if cancel != nil {
		cancel()
	}
	return conn.Deactivate(ctx)
}

// Close stops the active connector, waits for pending activations and
// closes every subscription.
func (m *Manager) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	conn := m.active
	m.mu.Unlock()

	if conn != nil {
		conn.StopPolling()
	}
	m.cancelRoot()
	m.wg.Wait()

	m.mu.Lock()
	defer m.mu.Unlock()
	for id, ch := range m.subs {
		delete(m.subs, id)
		close(ch)
	}
}

func (m *Manager) setStatusLocked(s Status) {
	m.status = s
	for _, ch := range m.subs {
		select {
		case <-ch:
		default:
		}
		ch <- s
	}
}
