package connection

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/MKhiriev/merlin-client/internal/logger"
	"github.com/MKhiriev/merlin-client/internal/relay"
	"github.com/MKhiriev/merlin-client/internal/wallet"
	"github.com/MKhiriev/merlin-client/models"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const testAccount = "0x1111111111111111111111111111111111111111"

var testFactory = common.HexToAddress("0x0fB4340432e56c014fa96286de17222822a9281b")

type testEnv struct {
	m        *Machine
	wallet   *fakeWallet
	storage  *memStorage
	balances *fakeBalances
	safe     *fakeSafe
	deriver  *relay.ProxyDeriver

	hosted   *chainProvider
	injected *chainProvider
	relay    *chainProvider
}

func newTestEnv(t *testing.T, storage *memStorage, configure func(*testEnv, *Deps)) *testEnv {
	t.Helper()

	env := &testEnv{
		wallet:   newFakeWallet(),
		storage:  storage,
		balances: &fakeBalances{},
		safe:     &fakeSafe{},
		deriver:  relay.NewProxyDeriver(testFactory, []byte{0x60, 0x80, 0x60, 0x40}),
		hosted:   &chainProvider{url: "http://hosted", chainID: models.NetworkMainnet},
		injected: &chainProvider{url: "http://injected", chainID: models.NetworkXDAI},
		relay:    &chainProvider{url: "http://relay", chainID: models.RelayNetworkID},
	}

	env.wallet.providers[models.ConnectorInfura] = env.hosted
	env.wallet.providers[models.ConnectorInjected] = env.injected
	env.wallet.providers[models.ConnectorWalletConnect] = env.injected
	env.wallet.providers[models.ConnectorSafe] = env.injected
	env.wallet.accounts[models.ConnectorInjected] = testAccount
	env.wallet.accounts[models.ConnectorWalletConnect] = testAccount
	env.wallet.accounts[models.ConnectorSafe] = testAccount

	deps := Deps{
		Wallet:     env.wallet,
		Valid:      validNames,
		Safe:       env.safe,
		Storage:    storage,
		Resolver:   relay.NewResolver(env.deriver, env.relay),
		Balances:   env.balances,
		Proxy:      fakeProxy{},
		RetryDelay: time.Millisecond,
	}
	if configure != nil {
		configure(env, &deps)
	}

	env.m = NewMachine(deps, logger.Nop())
	t.Cleanup(env.m.Close)
	return env
}

func (e *testEnv) start(t *testing.T) <-chan *Snapshot {
	t.Helper()
	ch, unsubscribe := e.m.Subscribe()
	t.Cleanup(unsubscribe)
	require.NoError(t, e.m.Start())
	return ch
}

// ── Selection ────────────────────────────────────────────────────────────────

func TestMachine_DefaultsToHosted(t *testing.T) {
	env := newTestEnv(t, newMemStorage(), nil)
	ch := env.start(t)

	s := waitSnapshot(t, ch, ready)
	assert.Equal(t, models.ConnectorInfura, s.Connector)
	assert.Empty(t, s.Account)
	assert.Equal(t, models.NetworkMainnet, s.NetworkID)
	assert.Nil(t, s.Proxy)
	assert.True(t, s.Balances.Fetched)
	assert.Same(t, env.hosted, s.Provider)

	assert.Equal(t, Ready, env.m.State())
	assert.Same(t, s, env.m.View())
	assert.Equal(t, []models.ConnectorName{models.ConnectorInfura}, env.wallet.history())
}

func TestMachine_RestoresPersistedConnector(t *testing.T) {
	env := newTestEnv(t, newMemStorage(models.StorageKeyConnector, "Injected"), nil)
	ch := env.start(t)

	s := waitSnapshot(t, ch, ready)
	assert.Equal(t, models.ConnectorInjected, s.Connector)
	assert.Equal(t, testAccount, s.Account)
	assert.Equal(t, testAccount, s.RawAccount)
	assert.Equal(t, models.NetworkXDAI, s.NetworkID)
	require.NotNil(t, s.Proxy)
	assert.Equal(t, s.NetworkID, s.Proxy.NetworkID)
	assert.False(t, s.Relay)
	assert.Equal(t, []models.ConnectorName{models.ConnectorInjected}, env.wallet.history())
}

func TestMachine_UnknownPersistedConnectorFallsBack(t *testing.T) {
	env := newTestEnv(t, newMemStorage(models.StorageKeyConnector, "Ledger"), nil)
	ch := env.start(t)

	s := waitSnapshot(t, ch, ready)
	assert.Equal(t, models.ConnectorInfura, s.Connector)
}

func TestMachine_WalletErrorFallsBackToHosted(t *testing.T) {
	env := newTestEnv(t, newMemStorage(models.StorageKeyConnector, "Injected"), func(e *testEnv, _ *Deps) {
		e.wallet.errs[models.ConnectorInjected] = errors.New("user rejected")
	})
	ch := env.start(t)

	s := waitSnapshot(t, ch, ready)
	assert.Equal(t, models.ConnectorInfura, s.Connector)
	assert.False(t, env.storage.has(models.StorageKeyConnector))
	assert.Equal(t, []models.ConnectorName{models.ConnectorInjected, models.ConnectorInfura}, env.wallet.history())
}

func TestMachine_BridgeSelectsSafe(t *testing.T) {
	const safeAddress = "0x2222222222222222222222222222222222222222"

	env := newTestEnv(t, newMemStorage(models.StorageKeyConnector, "Injected"), nil)
	ch := env.start(t)
	waitSnapshot(t, ch, ready)

	require.NoError(t, env.m.SetBridge(&models.SafeAppInfo{SafeAddress: safeAddress, Network: "xdai"}))

	s := waitSnapshot(t, ch, func(s *Snapshot) bool { return s != nil && s.Connector == models.ConnectorSafe })
	assert.Equal(t, testAccount, s.Account)

	params, ok := env.safe.last()
	require.True(t, ok)
	assert.Equal(t, SafeParams{Address: safeAddress, NetworkID: models.NetworkXDAI}, params)
	assert.False(t, env.storage.has(models.StorageKeyConnector))
}

func TestMachine_DebugSafeFailureIsNotRetried(t *testing.T) {
	debug := models.DebugOverride{Set: true, Address: testAccount, NetworkID: models.NetworkXDAI}
	env := newTestEnv(t, newMemStorage(), func(e *testEnv, d *Deps) {
		d.Debug = debug
		e.wallet.errs[models.ConnectorSafe] = errors.New("safe unavailable")
	})
	ch := env.start(t)

	s := waitSnapshot(t, ch, ready)
	assert.Equal(t, models.ConnectorInfura, s.Connector)

	params, ok := env.safe.last()
	require.True(t, ok)
	assert.Equal(t, SafeParams{Address: debug.Address, NetworkID: debug.NetworkID}, params)

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, []models.ConnectorName{models.ConnectorSafe, models.ConnectorInfura}, env.wallet.history())
}

// ── Relay ────────────────────────────────────────────────────────────────────

func TestMachine_ToggleRelay(t *testing.T) {
	env := newTestEnv(t, newMemStorage(models.StorageKeyConnector, "Injected"), func(e *testEnv, _ *Deps) {
		e.injected.chainID = models.NetworkMainnet
	})
	ch := env.start(t)

	direct := waitSnapshot(t, ch, ready)
	assert.False(t, direct.Relay)
	assert.Equal(t, models.NetworkMainnet, direct.NetworkID)

	require.NoError(t, env.m.ToggleRelay())

	s := waitSnapshot(t, ch, func(s *Snapshot) bool { return s != nil && s.Relay })
	assert.Equal(t, env.deriver.Address(common.HexToAddress(testAccount)).Hex(), s.Account)
	assert.Equal(t, testAccount, s.RawAccount)
	assert.Equal(t, models.RelayNetworkID, s.NetworkID)
	assert.Equal(t, models.NetworkMainnet, s.RawNetworkID)
	assert.Same(t, env.relay, s.Provider)
	require.NotNil(t, s.Proxy)
	assert.Equal(t, models.RelayNetworkID, s.Proxy.NetworkID)
	assert.Greater(t, s.Generation, direct.Generation)

	require.NoError(t, env.m.ToggleRelay())
	s = waitSnapshot(t, ch, func(s *Snapshot) bool { return s != nil && !s.Relay })
	assert.Equal(t, testAccount, s.Account)
}

func TestMachine_RelayIgnoredForSafe(t *testing.T) {
	env := newTestEnv(t, newMemStorage(), nil)
	ch := env.start(t)

	require.NoError(t, env.m.SetBridge(&models.SafeAppInfo{SafeAddress: testAccount, Network: "xdai"}))
	first := waitSnapshot(t, ch, func(s *Snapshot) bool { return s != nil && s.Connector == models.ConnectorSafe })

	require.NoError(t, env.m.ToggleRelay())
	s := waitSnapshot(t, ch, func(s *Snapshot) bool { return s != nil && s.Generation > first.Generation })
	assert.False(t, s.Relay)
	assert.Equal(t, testAccount, s.Account)
}

func TestMachine_SwitchesMainnetWallet(t *testing.T) {
	env := newTestEnv(t, newMemStorage(models.StorageKeyConnector, "Injected"), func(e *testEnv, _ *Deps) {
		e.injected.chainID = models.NetworkMainnet
	})
	ch := env.start(t)
	waitSnapshot(t, ch, ready)

	assert.Eventually(t, func() bool {
		for _, m := range env.injected.calls() {
			if m == "wallet_switchEthereumChain" {
				return true
			}
		}
		return false
	}, time.Second, 5*time.Millisecond)

	// read-only hosted connections are never switched
	assert.Empty(t, env.hosted.calls())
}

// ── Dependents ───────────────────────────────────────────────────────────────

func TestMachine_RetriesFailedLookups(t *testing.T) {
	env := newTestEnv(t, newMemStorage(models.StorageKeyConnector, "Injected"), func(e *testEnv, _ *Deps) {
		e.injected.chainErr = errors.New("connection refused")
		e.balances.failures = 1
	})
	ch := env.start(t)

	s := waitSnapshot(t, ch, ready)
	assert.True(t, s.Balances.Fetched)
	assert.GreaterOrEqual(t, env.balances.count(), 2)
}

func TestMachine_ProxyOnOtherNetworkWithholdsSnapshot(t *testing.T) {
	env := newTestEnv(t, newMemStorage(models.StorageKeyConnector, "Injected"), func(_ *testEnv, d *Deps) {
		d.Proxy = fakeProxy{network: models.NetworkRinkeby}
	})
	env.start(t)

	assert.Eventually(t, func() bool {
		return env.m.State() == PendingDependents && env.balances.count() > 0
	}, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	assert.Nil(t, env.m.View())
}

func TestMachine_TxUpdatesDoNotRefetch(t *testing.T) {
	env := newTestEnv(t, newMemStorage(models.StorageKeyConnector, "Injected"), nil)
	ch := env.start(t)
	first := waitSnapshot(t, ch, ready)
	fetches := env.balances.count()

	require.NoError(t, env.m.SetTxHash("0xhash"))
	s := waitSnapshot(t, ch, func(s *Snapshot) bool { return s != nil && s.TxHash == "0xhash" })
	assert.Equal(t, first.Generation, s.Generation)

	require.NoError(t, env.m.SetTxState(models.TxSubmitted))
	s = waitSnapshot(t, ch, func(s *Snapshot) bool { return s != nil && s.TxState == models.TxSubmitted })
	assert.Equal(t, "0xhash", s.TxHash)

	assert.Equal(t, fetches, env.balances.count())
	assert.Empty(t, first.TxHash, "published snapshots are immutable")
}

func TestMachine_RefreshBalances(t *testing.T) {
	env := newTestEnv(t, newMemStorage(), nil)
	ch := env.start(t)
	first := waitSnapshot(t, ch, ready)
	fetches := env.balances.count()

	require.NoError(t, env.m.RefreshBalances())
	s := waitSnapshot(t, ch, func(s *Snapshot) bool { return s != nil && s != first })
	assert.Equal(t, first.Generation, s.Generation)
	assert.Equal(t, fetches+1, env.balances.count())
}

func TestMachine_DiscardsStaleResults(t *testing.T) {
	gate := make(chan struct{})
	env := newTestEnv(t, newMemStorage(), func(e *testEnv, _ *Deps) {
		e.balances.gate = gate
	})
	ch := env.start(t)

	// the hosted connection stays pending on its balances
	require.Eventually(t, func() bool { return env.m.State() == PendingDependents }, time.Second, time.Millisecond)

	require.NoError(t, env.m.SetConnector(context.Background(), models.ConnectorInjected))
	current := waitSnapshot(t, ch, func(s *Snapshot) bool { return s != nil && s.Connector == models.ConnectorInjected })

	close(gate)
	require.Eventually(t, func() bool { return env.balances.gated.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	for drained := false; !drained; {
		select {
		case s := <-ch:
			require.NotNil(t, s)
			assert.Equal(t, models.ConnectorInjected, s.Connector)
			assert.GreaterOrEqual(t, s.Generation, current.Generation)
			current = s
		default:
			drained = true
		}
	}

	s := env.m.View()
	require.NotNil(t, s)
	assert.Equal(t, Ready, env.m.State())
	assert.Equal(t, testAccount, s.Account)
	assert.Equal(t, models.NetworkXDAI, s.Balances.NetworkID)
	assert.Equal(t, "1.00", s.Balances.FormattedNative)
	assert.GreaterOrEqual(t, s.Generation, current.Generation)
}

// ── Wallet changes ───────────────────────────────────────────────────────────

func TestMachine_FollowsAcceptedNetworkSwitch(t *testing.T) {
	env := newTestEnv(t, newMemStorage(models.StorageKeyConnector, "Injected"), func(e *testEnv, _ *Deps) {
		e.injected.chainID = models.NetworkMainnet
		e.injected.switchTo = models.NetworkXDAI
	})
	ch := env.start(t)

	s := waitSnapshot(t, ch, func(s *Snapshot) bool { return s != nil && s.NetworkID == models.NetworkXDAI })
	assert.Equal(t, Ready, env.m.State())
	assert.Equal(t, models.NetworkXDAI, s.RawNetworkID)
	assert.Equal(t, testAccount, s.Account)
	require.NotNil(t, s.Proxy)
	assert.Equal(t, models.NetworkXDAI, s.Proxy.NetworkID)

	// the wallet is asked once
	time.Sleep(20 * time.Millisecond)
	switches := 0
	for _, m := range env.injected.calls() {
		if m == "wallet_switchEthereumChain" {
			switches++
		}
	}
	assert.Equal(t, 1, switches)
}

func TestMachine_FollowsWalletChanges(t *testing.T) {
	const otherAccount = "0x3333333333333333333333333333333333333333"

	t.Run("account", func(t *testing.T) {
		env := newTestEnv(t, newMemStorage(models.StorageKeyConnector, "Injected"), nil)
		ch := env.start(t)
		first := waitSnapshot(t, ch, ready)

		env.wallet.report(wallet.Update{Account: otherAccount, NetworkID: models.NetworkXDAI})

		s := waitSnapshot(t, ch, func(s *Snapshot) bool { return s != nil && s.Account == otherAccount })
		assert.Equal(t, models.ConnectorInjected, s.Connector)
		require.NotNil(t, s.Proxy)
		assert.Equal(t, common.HexToAddress(otherAccount), s.Proxy.Owner)
		assert.Greater(t, s.Generation, first.Generation)
		assert.Equal(t, []models.ConnectorName{models.ConnectorInjected}, env.wallet.history())
	})

	t.Run("network", func(t *testing.T) {
		env := newTestEnv(t, newMemStorage(models.StorageKeyConnector, "Injected"), nil)
		ch := env.start(t)
		waitSnapshot(t, ch, ready)

		env.injected.mu.Lock()
		env.injected.chainID = models.NetworkSokol
		env.injected.mu.Unlock()
		env.wallet.report(wallet.Update{Account: testAccount, NetworkID: models.NetworkSokol})

		s := waitSnapshot(t, ch, func(s *Snapshot) bool { return s != nil && s.NetworkID == models.NetworkSokol })
		assert.Equal(t, Ready, env.m.State())
		assert.Equal(t, models.NetworkSokol, s.Proxy.NetworkID)
	})

	t.Run("error falls back to hosted", func(t *testing.T) {
		env := newTestEnv(t, newMemStorage(models.StorageKeyConnector, "Injected"), nil)
		ch := env.start(t)
		waitSnapshot(t, ch, ready)

		env.wallet.report(wallet.Update{Err: wallet.ErrNoAccounts})

		s := waitSnapshot(t, ch, func(s *Snapshot) bool { return s != nil && s.Connector == models.ConnectorInfura })
		assert.False(t, s.Connected())
		assert.False(t, env.storage.has(models.StorageKeyConnector))
	})
}

// ── User actions ─────────────────────────────────────────────────────────────

func TestMachine_SetConnector(t *testing.T) {
	env := newTestEnv(t, newMemStorage(), nil)
	ch := env.start(t)
	waitSnapshot(t, ch, ready)

	err := env.m.SetConnector(context.Background(), "Ledger")
	assert.ErrorIs(t, err, wallet.ErrUnknownConnector)

	require.NoError(t, env.m.SetConnector(context.Background(), models.ConnectorInjected))
	s := waitSnapshot(t, ch, func(s *Snapshot) bool { return s != nil && s.Connector == models.ConnectorInjected })
	assert.Equal(t, testAccount, s.Account)

	v, err := env.storage.Get(context.Background(), models.StorageKeyConnector)
	require.NoError(t, err)
	assert.Equal(t, "Injected", v)
}

func TestMachine_Logout(t *testing.T) {
	env := newTestEnv(t, newMemStorage(
		models.StorageKeyConnector, "WalletConnect",
		models.StorageKeyWalletConnect, `{"accounts":["`+testAccount+`"],"chainId":100}`,
	), nil)
	ch := env.start(t)
	s := waitSnapshot(t, ch, ready)
	require.Equal(t, models.ConnectorWalletConnect, s.Connector)

	require.NoError(t, env.m.Logout(context.Background()))

	s = waitSnapshot(t, ch, func(s *Snapshot) bool { return s != nil && s.Connector == models.ConnectorInfura })
	assert.False(t, s.Connected())
	assert.False(t, env.storage.has(models.StorageKeyConnector))
	assert.False(t, env.storage.has(models.StorageKeyWalletConnect))
}

// ── Lifecycle ────────────────────────────────────────────────────────────────

func TestMachine_Lifecycle(t *testing.T) {
	env := newTestEnv(t, newMemStorage(), nil)

	assert.Equal(t, Uninitialized, env.m.State())
	assert.Nil(t, env.m.View())

	require.NoError(t, env.m.Start())
	assert.ErrorIs(t, env.m.Start(), ErrAlreadyStarted)

	env.m.Close()
	assert.ErrorIs(t, env.m.ToggleRelay(), ErrMachineClosed)

	ch, unsubscribe := env.m.Subscribe()
	defer unsubscribe()
	<-ch
	_, ok := <-ch
	assert.False(t, ok)
}

func TestMachine_StartAfterClose(t *testing.T) {
	env := newTestEnv(t, newMemStorage(), nil)
	env.m.Close()
	assert.ErrorIs(t, env.m.Start(), ErrMachineClosed)
}
