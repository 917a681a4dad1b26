package wallet

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/merlin-client/internal/logger"
	"github.com/MKhiriev/merlin-client/internal/workers"
	"github.com/MKhiriev/merlin-client/models"
)

// ── Injected ────────────────────────────────────────────────────────────────

func TestInjected_Activate(t *testing.T) {
	stub := &stubProvider{url: "http://injected", accounts: []string{"0xabc", "0xdef"}}
	providers, _ := newTestProviders(map[string]*stubProvider{"http://injected": stub})

	act, err := NewInjected(providers, logger.Nop()).Activate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "0xabc", act.Account)
	assert.Same(t, stub, act.Provider)
}

func TestInjected_Watch(t *testing.T) {
	stub := &stubProvider{url: "http://injected", accounts: []string{"0xabc"}}
	stub.chainID.Store(models.NetworkMainnet)
	providers, _ := newTestProviders(map[string]*stubProvider{"http://injected": stub})

	i := NewInjected(providers, logger.Nop())
	i.poll = time.Millisecond
	defer i.StopPolling()

	act, err := i.Activate(context.Background())
	require.NoError(t, err)

	updates := make(chan Update, 8)
	i.Watch(context.Background(), act, func(u Update) { updates <- u })

	stub.chainID.Store(models.NetworkXDAI)
	select {
	case u := <-updates:
		assert.Equal(t, Update{Account: "0xabc", NetworkID: models.NetworkXDAI}, u)
	case <-time.After(time.Second):
		t.Fatal("network change not reported")
	}

	stub.setAccounts()
	select {
	case u := <-updates:
		assert.ErrorIs(t, u.Err, ErrNoAccounts)
	case <-time.After(time.Second):
		t.Fatal("locked wallet not reported")
	}
}

func TestInjected_Watch_ReadFailures(t *testing.T) {
	stub := &stubProvider{url: "http://injected", accounts: []string{"0xabc"}}
	providers, _ := newTestProviders(map[string]*stubProvider{"http://injected": stub})

	i := NewInjected(providers, logger.Nop())
	i.poll = time.Millisecond
	defer i.StopPolling()

	act, err := i.Activate(context.Background())
	require.NoError(t, err)

	unreachable := errors.New("connection refused")
	stub.callErr = unreachable
	updates := make(chan Update, 8)
	i.Watch(context.Background(), act, func(u Update) { updates <- u })

	select {
	case u := <-updates:
		assert.ErrorIs(t, u.Err, unreachable)
	case <-time.After(time.Second):
		t.Fatal("failing wallet not reported")
	}
}

func TestInjected_Activate_Errors(t *testing.T) {
	t.Run("no accounts", func(t *testing.T) {
		stub := &stubProvider{url: "http://injected"}
		providers, _ := newTestProviders(map[string]*stubProvider{"http://injected": stub})

		_, err := NewInjected(providers, logger.Nop()).Activate(context.Background())
		assert.ErrorIs(t, err, ErrNoAccounts)
	})

	t.Run("rejected", func(t *testing.T) {
		rejected := errors.New("user rejected")
		stub := &stubProvider{url: "http://injected", callErr: rejected}
		providers, _ := newTestProviders(map[string]*stubProvider{"http://injected": stub})

		_, err := NewInjected(providers, logger.Nop()).Activate(context.Background())
		assert.ErrorIs(t, err, rejected)
	})
}

// ── Hosted ──────────────────────────────────────────────────────────────────

func TestHosted_Activate_UsesOverrideAndTracker(t *testing.T) {
	stub := &stubProvider{url: "http://custom"}
	providers, _ := newTestProviders(map[string]*stubProvider{"http://custom": stub})
	storage := newMemStorage()
	storage.values[models.StorageKeyRPCAddress] = "http://custom"

	tracker := workers.NewBlockTracker(time.Millisecond, logger.Nop())
	h := NewHosted(providers, storage, tracker, logger.Nop())

	act, err := h.Activate(context.Background())
	require.NoError(t, err)
	assert.Empty(t, act.Account)
	assert.Same(t, stub, act.Provider)
	assert.True(t, tracker.Running())

	require.Eventually(t, func() bool { return tracker.Latest() > 0 }, time.Second, time.Millisecond)

	h.DisableBlockTracker()
	assert.False(t, tracker.Running())

	// повторная остановка безопасна
	h.StopPolling()
	require.NoError(t, h.Deactivate(context.Background()))
}

func TestHosted_DeactivateLeavesTrackerToStopPolling(t *testing.T) {
	providers, _ := newTestProviders(nil)
	tracker := workers.NewBlockTracker(time.Millisecond, logger.Nop())
	h := NewHosted(providers, newMemStorage(), tracker, logger.Nop())

	_, err := h.Activate(context.Background())
	require.NoError(t, err)

	require.NoError(t, h.Deactivate(context.Background()))
	assert.True(t, tracker.Running())

	h.StopPolling()
	assert.False(t, tracker.Running())
}

func TestHosted_Activate_WithoutTracker(t *testing.T) {
	providers, _ := newTestProviders(nil)
	h := NewHosted(providers, newMemStorage(), nil, logger.Nop())

	act, err := h.Activate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "http://hosted", act.Provider.URL())
	h.StopPolling()
}

// ── Safe ────────────────────────────────────────────────────────────────────

func TestSafe_ActivateBeforeInit(t *testing.T) {
	providers, _ := newTestProviders(nil)
	_, err := NewSafe(providers, logger.Nop()).Activate(context.Background())
	assert.ErrorIs(t, err, ErrSafeNotInitialized)
}

func TestSafe_Activate(t *testing.T) {
	providers, _ := newTestProviders(nil)
	s := NewSafe(providers, logger.Nop())
	s.Init("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed", 100)

	act, err := s.Activate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", act.Account)
	assert.Equal(t, "http://gnosis", act.Provider.URL())

	require.NoError(t, s.Deactivate(context.Background()))
	_, _, ok := s.Params()
	assert.False(t, ok)
}

func TestSafe_Activate_UnsupportedNetwork(t *testing.T) {
	providers, _ := newTestProviders(nil)
	s := NewSafe(providers, logger.Nop())
	s.Init("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed", 4)

	_, err := s.Activate(context.Background())
	assert.ErrorIs(t, err, ErrUnsupportedNetwork)
}

// ── WalletConnect ───────────────────────────────────────────────────────────

const testSession = `{"accounts":["0xabc"],"chainId":100,"peerName":"Rainbow"}`

func TestWalletConnect_Activate_StoredSession(t *testing.T) {
	providers, _ := newTestProviders(nil)
	storage := newMemStorage()
	storage.values[models.StorageKeyWalletConnect] = testSession

	w := NewWalletConnect(providers, storage, time.Second, time.Millisecond, logger.Nop())
	act, err := w.Activate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "0xabc", act.Account)
	assert.Equal(t, "http://gnosis", act.Provider.URL())

	session, ok := w.Session()
	require.True(t, ok)
	assert.Equal(t, "Rainbow", session.PeerName)

	require.NoError(t, w.Deactivate(context.Background()))
	_, ok = w.Session()
	assert.False(t, ok)
}

func TestWalletConnect_Activate_WaitsForHandshake(t *testing.T) {
	providers, _ := newTestProviders(nil)
	storage := newMemStorage()
	w := NewWalletConnect(providers, storage, time.Second, time.Millisecond, logger.Nop())

	go func() {
		assert.Eventually(t, w.Pending, time.Second, time.Millisecond)
		_ = storage.Set(context.Background(), models.StorageKeyWalletConnect, testSession)
	}()

	act, err := w.Activate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "0xabc", act.Account)
	assert.False(t, w.Pending())
}

func TestWalletConnect_Activate_Timeout(t *testing.T) {
	providers, _ := newTestProviders(nil)
	w := NewWalletConnect(providers, newMemStorage(), 20*time.Millisecond, time.Millisecond, logger.Nop())

	_, err := w.Activate(context.Background())
	assert.ErrorIs(t, err, ErrHandshakeTimeout)
}

func TestWalletConnect_StopPolling(t *testing.T) {
	providers, _ := newTestProviders(nil)
	w := NewWalletConnect(providers, newMemStorage(), time.Minute, time.Millisecond, logger.Nop())

	go func() {
		assert.Eventually(t, w.Pending, time.Second, time.Millisecond)
		w.StopPolling()
	}()

	_, err := w.Activate(context.Background())
	assert.ErrorIs(t, err, ErrHandshakeStopped)
}

func TestWalletConnect_Activate_ContextCancelled(t *testing.T) {
	providers, _ := newTestProviders(nil)
	w := NewWalletConnect(providers, newMemStorage(), time.Minute, time.Millisecond, logger.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := w.Activate(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestWalletConnect_Activate_InvalidSession(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "not json", raw: "{"},
		{name: "no accounts", raw: `{"accounts":[],"chainId":100}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			providers, _ := newTestProviders(nil)
			storage := newMemStorage()
			storage.values[models.StorageKeyWalletConnect] = tt.raw

			_, err := NewWalletConnect(providers, storage, time.Second, time.Millisecond, logger.Nop()).Activate(context.Background())
			assert.ErrorIs(t, err, ErrInvalidSession)
		})
	}
}

func TestWalletConnect_Activate_UnsupportedChain(t *testing.T) {
	providers, _ := newTestProviders(nil)
	storage := newMemStorage()
	storage.values[models.StorageKeyWalletConnect] = `{"accounts":["0xabc"],"chainId":5}`

	_, err := NewWalletConnect(providers, storage, time.Second, time.Millisecond, logger.Nop()).Activate(context.Background())
	assert.ErrorIs(t, err, ErrUnsupportedNetwork)
}

func TestWalletConnect_Watch(t *testing.T) {
	providers, _ := newTestProviders(nil)
	storage := newMemStorage()
	storage.values[models.StorageKeyWalletConnect] = testSession

	w := NewWalletConnect(providers, storage, time.Second, time.Millisecond, logger.Nop())
	defer w.StopPolling()

	act, err := w.Activate(context.Background())
	require.NoError(t, err)

	updates := make(chan Update, 8)
	w.Watch(context.Background(), act, func(u Update) { updates <- u })

	// the relay moved the session to mainnet
	require.NoError(t, storage.Set(context.Background(), models.StorageKeyWalletConnect, `{"accounts":["0xabc"],"chainId":1}`))
	select {
	case u := <-updates:
		assert.Equal(t, models.NetworkMainnet, u.NetworkID)
		assert.Equal(t, "0xabc", u.Account)
		require.NotNil(t, u.Provider)
		assert.Equal(t, "http://mainnet", u.Provider.URL())
	case <-time.After(time.Second):
		t.Fatal("chain change not reported")
	}
	session, ok := w.Session()
	require.True(t, ok)
	assert.Equal(t, models.NetworkMainnet, session.ChainID)

	require.NoError(t, storage.Remove(context.Background(), models.StorageKeyWalletConnect))
	select {
	case u := <-updates:
		assert.ErrorIs(t, u.Err, ErrSessionEnded)
	case <-time.After(time.Second):
		t.Fatal("ended session not reported")
	}
}
