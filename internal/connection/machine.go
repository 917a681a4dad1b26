// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package connection

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/merlin-client/internal/logger"
	"github.com/MKhiriev/merlin-client/internal/relay"
	"github.com/MKhiriev/merlin-client/internal/service"
	"github.com/MKhiriev/merlin-client/internal/store"
	"github.com/MKhiriev/merlin-client/internal/wallet"
	"github.com/MKhiriev/merlin-client/models"
)

const defaultRetryDelay = 2 * time.Second

// WalletManager is the part of [wallet.Manager] the machine drives.
type WalletManager interface {
	SetConnector(ctx context.Context, name models.ConnectorName) error
	Status() wallet.Status
	Subscribe() (<-chan wallet.Status, func())
	Deactivate(ctx context.Context) error
}

// SafeInitializer is implemented by the Safe connector.
type SafeInitializer interface {
	Init(address string, networkID uint64)
}

// Deps are the collaborators of a [Machine].
type Deps struct {
	Wallet   WalletManager
	Valid    func(name string) bool
	Safe     SafeInitializer
	Storage  store.LocalStorage
	Resolver *relay.Resolver
	Balances service.BalanceService
	Proxy    service.ProxyService
	Switcher *NetworkSwitcher
	Debug    models.DebugOverride

	// RetryDelay is the pause before a failed network, proxy or balance
	// lookup is retried. Defaults to two seconds.
	RetryDelay time.Duration
}

// Machine is the connection state machine.
type Machine struct {
	deps   Deps
	events chan event

	state    atomic.Int32
	snapshot atomic.Pointer[Snapshot]

	subMu   sync.Mutex
	subs    map[uint64]chan *Snapshot
	nextSub uint64

	startOnce sync.Once
	started   atomic.Bool
	ctx       context.Context
	cancel    context.CancelFunc
	unsub     func()
	wg        sync.WaitGroup

	// owned by the event loop
	gen            uint64
	status         wallet.Status
	bridge         *models.SafeAppInfo
	relayRequested bool
	debugFailed    bool
	switchSent     bool
	networkID      uint64
	candidate      *Snapshot
	proxy          *models.ProxyService
	balancesDone   bool
	txHash         string
	txState        models.TransactionStep

	logger *logger.Logger
}

// NewMachine creates a stopped machine.
func NewMachine(deps Deps, logger *logger.Logger) *Machine {
	if deps.RetryDelay <= 0 {
		deps.RetryDelay = defaultRetryDelay
	}
	if deps.Switcher == nil {
		deps.Switcher = NewNetworkSwitcher(logger)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Machine{
		deps:   deps,
		events: make(chan event, 16),
		subs:   make(map[uint64]chan *Snapshot),
		ctx:    ctx,
		cancel: cancel,
		logger: logger,
	}
}

// Start subscribes to the wallet manager and starts the event loop. The
// first wallet status triggers connector selection.
func (m *Machine) Start() error {
	err := ErrAlreadyStarted
	m.startOnce.Do(func() {
		err = nil
		if m.ctx.Err() != nil {
			err = ErrMachineClosed
			return
		}

		statuses, unsubscribe := m.deps.Wallet.Subscribe()
		m.unsub = unsubscribe
		m.started.Store(true)

		m.wg.Add(2)
		go m.loop()
		go m.forward(statuses)
	})
	return err
}

// Close stops the event loop and every pending lookup and closes all
// subscriptions.
func (m *Machine) Close() {
	m.cancel()
	if m.started.Load() && m.unsub != nil {
		m.unsub()
	}
	m.wg.Wait()

	m.subMu.Lock()
	defer m.subMu.Unlock()
	for id, ch := range m.subs {
		delete(m.subs, id)
		close(ch)
	}
}

// State returns the current readiness state.
func (m *Machine) State() State {
	return State(m.state.Load())
}

// View returns the published snapshot, or nil while not ready.
func (m *Machine) View() *Snapshot {
	return m.snapshot.Load()
}

// Subscribe returns a channel receiving the current snapshot and every
// replacement; nil means not ready. Slow readers only see the latest one.
func (m *Machine) Subscribe() (<-chan *Snapshot, func()) {
	ch := make(chan *Snapshot, 1)

	m.subMu.Lock()
	defer m.subMu.Unlock()

	ch <- m.snapshot.Load()
	if m.ctx.Err() != nil {
		close(ch)
		return ch, func() {}
	}

	id := m.nextSub
	m.nextSub++
	m.subs[id] = ch

	return ch, func() {
		m.subMu.Lock()
		defer m.subMu.Unlock()
		if sub, ok := m.subs[id]; ok {
			delete(m.subs, id)
			close(sub)
		}
	}
}

// ToggleRelay flips the relay request.
func (m *Machine) ToggleRelay() error {
	return m.post(evToggleRelay{})
}

// SetBridge attaches (or, with nil, detaches) an embedding Safe host.
func (m *Machine) SetBridge(info *models.SafeAppInfo) error {
	return m.post(evBridge{info: info})
}

// SetTxHash records the hash of the last submitted transaction.
func (m *Machine) SetTxHash(hash string) error {
	return m.post(evTx{hash: &hash})
}

// SetTxState records the lifecycle step of the last transaction.
func (m *Machine) SetTxState(step models.TransactionStep) error {
	return m.post(evTx{state: &step})
}

// RefreshBalances re-reads the balances of the current connection.
func (m *Machine) RefreshBalances() error {
	return m.post(evRefreshBalances{})
}

// SetConnector persists name as the user's choice and activates it.
func (m *Machine) SetConnector(ctx context.Context, name models.ConnectorName) error {
	if m.deps.Valid != nil && !m.deps.Valid(name.String()) {
		return fmt.Errorf("%w: %q", wallet.ErrUnknownConnector, name)
	}
	if err := m.deps.Storage.Set(ctx, models.StorageKeyConnector, name.String()); err != nil {
		return fmt.Errorf("persist connector: %w", err)
	}
	return m.deps.Wallet.SetConnector(ctx, name)
}

// Logout forgets the persisted connector and deactivates the wallet. A
// WalletConnect session record is removed as well. Selection then falls
// back to the hosted connector.
func (m *Machine) Logout(ctx context.Context) error {
	var errs []error

	if err := m.deps.Storage.Remove(ctx, models.StorageKeyConnector); err != nil {
		errs = append(errs, fmt.Errorf("clear connector: %w", err))
	}
	if m.deps.Wallet.Status().Connector == models.ConnectorWalletConnect {
		if err := m.deps.Storage.Remove(ctx, models.StorageKeyWalletConnect); err != nil {
			errs = append(errs, fmt.Errorf("clear walletconnect session: %w", err))
		}
	}
	if err := m.deps.Wallet.Deactivate(ctx); err != nil {
		errs = append(errs, fmt.Errorf("deactivate wallet: %w", err))
	}

	m.logger.Info().
		Str("func", "Machine.Logout").
		Msg("logged out")

	return errors.Join(errs...)
}

func (m *Machine) post(ev event) error {
	if m.ctx.Err() != nil {
		return ErrMachineClosed
	}
	select {
	case m.events <- ev:
		return nil
	case <-m.ctx.Done():
		return ErrMachineClosed
	}
}

func (m *Machine) forward(statuses <-chan wallet.Status) {
	defer m.wg.Done()
	for s := range statuses {
		if m.post(evWallet{status: s}) != nil {
			return
		}
	}
}

func (m *Machine) loop() {
	defer m.wg.Done()
	for {
		select {
		case <-m.ctx.Done():
			return
		case ev := <-m.events:
			m.handle(ev)
		}
	}
}

// spawn runs fn off the loop and posts its event back.
func (m *Machine) spawn(delay time.Duration, fn func(ctx context.Context) event) {
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()

		if delay > 0 {
			t := time.NewTimer(delay)
			defer t.Stop()
			select {
			case <-m.ctx.Done():
				return
			case <-t.C:
			}
		}

		if ev := fn(m.ctx); ev != nil {
			_ = m.post(ev)
		}
	}()
}

func (m *Machine) setState(s State) {
	m.state.Store(int32(s))
}

func (m *Machine) publish(s *Snapshot) {
	m.snapshot.Store(s)

	m.subMu.Lock()
	defer m.subMu.Unlock()
	for _, ch := range m.subs {
		select {
		case <-ch:
		default:
		}
		ch <- s
	}
}

// reset drops everything derived from the previous wallet status.
func (m *Machine) reset() {
	m.gen++
	m.networkID = 0
	m.candidate = nil
	m.proxy = nil
	m.balancesDone = false
	m.setState(Uninitialized)
	if m.snapshot.Load() != nil {
		m.publish(nil)
	}
}

func (m *Machine) handle(ev event) {
	switch e := ev.(type) {
	case evWallet:
		m.onWallet(e.status)
	case evBridge:
		m.bridge = e.info
		m.selectConnector()
	case evToggleRelay:
		m.relayRequested = !m.relayRequested
		if m.networkID != 0 && m.status.Active {
			m.resolve()
		}
	case evNetwork:
		m.onNetwork(e)
	case evNetworkSwitched:
		m.onNetworkSwitched(e)
	case evProxy:
		m.onProxy(e)
	case evBalances:
		m.onBalances(e)
	case evTx:
		m.onTx(e)
	case evRefreshBalances:
		if m.candidate != nil {
			m.fetchBalances(m.candidate, 0)
		}
	}
}

func (m *Machine) onWallet(s wallet.Status) {
	m.status = s
	m.switchSent = false

	if s.Err != nil && s.Connector == models.ConnectorSafe && m.deps.Debug.Active() {
		m.debugFailed = true
	}

	switching := m.selectConnector()
	if switching || !s.Active {
		m.reset()
		return
	}

	m.reset()
	m.setState(PendingNetwork)
	m.fetchNetwork(0)
}

// selectConnector applies [SelectConnector] and reports whether a new
// activation was started.
func (m *Machine) selectConnector() bool {
	ctx := m.ctx

	persisted, err := m.deps.Storage.Get(ctx, models.StorageKeyConnector)
	if err != nil && !errors.Is(err, store.ErrKeyNotFound) {
		m.logger.Warn().Err(err).
			Str("func", "Machine.selectConnector").
			Msg("failed to read persisted connector")
	}

	d := SelectConnector(SelectionInput{
		WalletErr:   m.status.Err,
		Active:      m.status.Connector,
		Bridge:      m.bridge,
		Persisted:   persisted,
		Debug:       m.deps.Debug,
		DebugFailed: m.debugFailed,
		Valid:       m.deps.Valid,
	})

	if d.ClearPersisted {
		if err = m.deps.Storage.Remove(ctx, models.StorageKeyConnector); err != nil {
			m.logger.Warn().Err(err).
				Str("func", "Machine.selectConnector").
				Msg("failed to clear persisted connector")
		}
	}
	if d.InitSafe != nil && m.deps.Safe != nil {
		m.deps.Safe.Init(d.InitSafe.Address, d.InitSafe.NetworkID)
	}
	if d.Activate == "" {
		return false
	}

	if err = m.deps.Wallet.SetConnector(ctx, d.Activate); err != nil {
		m.logger.Error().Err(err).
			Str("func", "Machine.selectConnector").
			Str("connector", d.Activate.String()).
			Msg("failed to activate connector")
		return false
	}
	return true
}

func (m *Machine) fetchNetwork(delay time.Duration) {
	gen, provider := m.gen, m.status.Provider
	m.spawn(delay, func(ctx context.Context) event {
		id, err := provider.ChainID(ctx)
		return evNetwork{gen: gen, networkID: id, err: err}
	})
}

func (m *Machine) onNetwork(e evNetwork) {
	if e.gen != m.gen {
		return
	}
	if e.err != nil {
		m.logger.Warn().Err(e.err).
			Str("func", "Machine.onNetwork").
			Msg("failed to read network, retrying")
		m.fetchNetwork(m.deps.RetryDelay)
		return
	}

	m.networkID = e.networkID
	m.resolve()
}

// onNetworkSwitched re-reads the network after the wallet accepted a switch
// request. Lookups started for the old network are abandoned.
func (m *Machine) onNetworkSwitched(e evNetworkSwitched) {
	if e.seq != m.status.Seq || !m.status.Active {
		return
	}
	m.reset()
	m.setState(PendingNetwork)
	m.fetchNetwork(0)
}

// resolve builds the next candidate snapshot for the current wallet status
// and network and starts its dependent lookups.
func (m *Machine) resolve() {
	m.gen++
	gen := m.gen

	allowed := relay.Allowed(m.status.Connector, m.deps.Debug)
	res := m.deps.Resolver.Resolve(m.relayRequested && allowed, m.networkID, m.status.Provider, m.status.Account)

	cand := &Snapshot{
		Generation:   gen,
		Account:      res.Address,
		RawAccount:   m.status.Account,
		NetworkID:    res.NetID,
		RawNetworkID: m.networkID,
		Connector:    m.status.Connector,
		Provider:     res.Provider,
		Relay:        res.IsRelay,
		TxHash:       m.txHash,
		TxState:      m.txState,
	}
	m.candidate = cand
	m.proxy = nil
	m.balancesDone = false
	m.setState(PendingDependents)

	m.logger.Debug().
		Str("func", "Machine.resolve").
		Uint64("gen", gen).
		Str("connector", cand.Connector.String()).
		Uint64("network", cand.NetworkID).
		Bool("relay", cand.Relay).
		Msg("resolved connection")

	if cand.NetworkID == models.NetworkMainnet && m.status.Account != "" && !m.switchSent {
		m.switchSent = true
		switcher, provider, account, seq := m.deps.Switcher, m.status.Provider, m.status.Account, m.status.Seq
		m.spawn(0, func(ctx context.Context) event {
			if !switcher.Switch(ctx, provider, cand.NetworkID, account) {
				return nil
			}
			return evNetworkSwitched{seq: seq}
		})
	}

	if cand.Account != "" {
		m.fetchProxy(cand, 0)
	}
	m.fetchBalances(cand, 0)

	// a snapshot that is already published stays until the candidate is
	// ready, unless the connection itself changed
	if cur := m.snapshot.Load(); cur != nil && !sameConnection(cur, cand) {
		m.publish(nil)
	}
}

func (m *Machine) fetchProxy(cand *Snapshot, delay time.Duration) {
	gen, provider, owner := cand.Generation, cand.Provider, cand.RawAccount
	m.spawn(delay, func(ctx context.Context) event {
		p, err := m.deps.Proxy.Resolve(ctx, provider, owner)
		return evProxy{gen: gen, proxy: p, err: err}
	})
}

func (m *Machine) onProxy(e evProxy) {
	if e.gen != m.gen || m.candidate == nil {
		return
	}
	if e.err != nil {
		m.logger.Warn().Err(e.err).
			Str("func", "Machine.onProxy").
			Msg("failed to resolve proxy, retrying")
		m.fetchProxy(m.candidate, m.deps.RetryDelay)
		return
	}

	p := e.proxy
	m.proxy = &p
	m.tryReady()
}

func (m *Machine) fetchBalances(cand *Snapshot, delay time.Duration) {
	gen, provider, networkID, account := cand.Generation, cand.Provider, cand.NetworkID, cand.Account
	m.spawn(delay, func(ctx context.Context) event {
		b, err := m.deps.Balances.Fetch(ctx, provider, networkID, account)
		return evBalances{gen: gen, balances: b, err: err}
	})
}

func (m *Machine) onBalances(e evBalances) {
	if e.gen != m.gen || m.candidate == nil {
		return
	}
	if e.err != nil {
		m.logger.Warn().Err(e.err).
			Str("func", "Machine.onBalances").
			Msg("failed to fetch balances, retrying")
		m.fetchBalances(m.candidate, m.deps.RetryDelay)
		return
	}

	// the candidate may already be published
	next := *m.candidate
	next.Balances = e.balances
	m.candidate = &next
	m.balancesDone = true

	if m.State() == Ready {
		m.publish(&next)
		return
	}
	m.tryReady()
}

// tryReady publishes the candidate once every dependent lookup agrees
// with it.
func (m *Machine) tryReady() {
	cand := m.candidate
	if cand == nil || !m.balancesDone || !cand.Balances.Fetched {
		return
	}
	if cand.Account != "" {
		if m.proxy == nil {
			return
		}
		if m.proxy.NetworkID != cand.NetworkID {
			m.logger.Warn().
				Str("func", "Machine.tryReady").
				Uint64("proxyNetwork", m.proxy.NetworkID).
				Uint64("network", cand.NetworkID).
				Msg("proxy network does not match connection")
			return
		}
	}

	next := *cand
	next.Proxy = m.proxy
	m.candidate = &next
	m.setState(Ready)
	m.publish(&next)

	m.logger.Info().
		Str("func", "Machine.tryReady").
		Uint64("gen", next.Generation).
		Str("account", next.Account).
		Uint64("network", next.NetworkID).
		Msg("connection ready")
}

// onTx updates transaction fields without refetching anything.
func (m *Machine) onTx(e evTx) {
	if e.hash != nil {
		m.txHash = *e.hash
	}
	if e.state != nil {
		m.txState = *e.state
	}
	if m.candidate == nil {
		return
	}

	next := *m.candidate
	next.TxHash, next.TxState = m.txHash, m.txState
	m.candidate = &next
	if m.State() == Ready {
		m.publish(&next)
	}
}

func sameConnection(a, b *Snapshot) bool {
	return a.Account == b.Account && a.NetworkID == b.NetworkID && a.Relay == b.Relay && a.Connector == b.Connector
}

type event interface{}

type (
	evWallet struct {
		status wallet.Status
	}
	evBridge struct {
		info *models.SafeAppInfo
	}
	evToggleRelay     struct{}
	evRefreshBalances struct{}
	evNetwork         struct {
		gen       uint64
		networkID uint64
		err       error
	}
	evNetworkSwitched struct {
		seq uint64
	}
	evProxy struct {
		gen   uint64
		proxy models.ProxyService
		err   error
	}
	evBalances struct {
		gen      uint64
		balances models.Balances
		err      error
	}
	evTx struct {
		hash  *string
		state *models.TransactionStep
	}
)
