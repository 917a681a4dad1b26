package connection

import (
	"context"
	"math/big"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/merlin-client/internal/adapter"
	"github.com/MKhiriev/merlin-client/internal/store"
	"github.com/MKhiriev/merlin-client/internal/wallet"
	"github.com/MKhiriev/merlin-client/models"
)

// chainProvider: RPCProvider с заданным chainId, записывает вызовы Call.
// Если switchTo задан, wallet_switchEthereumChain переводит провайдер на
// эту сеть.
type chainProvider struct {
	url      string
	chainID  uint64
	switchTo uint64

	mu       sync.Mutex
	chainErr error
	methods  []string
}

func (p *chainProvider) URL() string { return p.url }

func (p *chainProvider) Call(_ context.Context, _ any, method string, _ ...any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.methods = append(p.methods, method)
	if method == "wallet_switchEthereumChain" && p.switchTo != 0 {
		p.chainID = p.switchTo
	}
	return nil
}

func (p *chainProvider) calls() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.methods...)
}

func (p *chainProvider) ChainID(context.Context) (uint64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.chainErr != nil {
		err := p.chainErr
		p.chainErr = nil
		return 0, err
	}
	return p.chainID, nil
}

func (p *chainProvider) BlockNumber(context.Context) (uint64, error) { return 1, nil }

func (p *chainProvider) BalanceAt(context.Context, common.Address) (*big.Int, error) {
	return big.NewInt(0), nil
}

func (p *chainProvider) CallContract(context.Context, common.Address, []byte) ([]byte, error) {
	return nil, nil
}

func (p *chainProvider) CodeAt(context.Context, common.Address) ([]byte, error) { return nil, nil }

// fakeWallet activates connectors synchronously.
type fakeWallet struct {
	mu        sync.Mutex
	seq       uint64
	status    wallet.Status
	subs      map[int]chan wallet.Status
	nextSub   int
	accounts  map[models.ConnectorName]string
	providers map[models.ConnectorName]adapter.RPCProvider
	errs      map[models.ConnectorName]error
	activated []models.ConnectorName
	deactived int
}

func newFakeWallet() *fakeWallet {
	return &fakeWallet{
		subs:      make(map[int]chan wallet.Status),
		accounts:  make(map[models.ConnectorName]string),
		providers: make(map[models.ConnectorName]adapter.RPCProvider),
		errs:      make(map[models.ConnectorName]error),
	}
}

func (w *fakeWallet) SetConnector(_ context.Context, name models.ConnectorName) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.activated = append(w.activated, name)
	w.seq++
	if err := w.errs[name]; err != nil {
		w.setLocked(wallet.Status{Seq: w.seq, Connector: name, Err: err})
		return nil
	}
	w.setLocked(wallet.Status{
		Seq:       w.seq,
		Connector: name,
		Active:    true,
		Account:   w.accounts[name],
		Provider:  w.providers[name],
	})
	return nil
}

func (w *fakeWallet) Status() wallet.Status {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status
}

func (w *fakeWallet) Subscribe() (<-chan wallet.Status, func()) {
	w.mu.Lock()
	defer w.mu.Unlock()

	ch := make(chan wallet.Status, 1)
	ch <- w.status
	id := w.nextSub
	w.nextSub++
	w.subs[id] = ch
	return ch, func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		if sub, ok := w.subs[id]; ok {
			delete(w.subs, id)
			close(sub)
		}
	}
}

func (w *fakeWallet) Deactivate(context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.deactived++
	w.seq++
	w.setLocked(wallet.Status{Seq: w.seq})
	return nil
}

// report publishes a change of the active session the way a watching
// connector does: same Seq, new account or network, or an error.
func (w *fakeWallet) report(u wallet.Update) {
	w.mu.Lock()
	defer w.mu.Unlock()

	s := w.status
	if u.Err != nil {
		w.setLocked(wallet.Status{Seq: s.Seq, Connector: s.Connector, Err: u.Err})
		return
	}
	s.Account, s.NetworkID = u.Account, u.NetworkID
	w.setLocked(s)
}

func (w *fakeWallet) history() []models.ConnectorName {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]models.ConnectorName(nil), w.activated...)
}

func (w *fakeWallet) setLocked(s wallet.Status) {
	w.status = s
	for _, ch := range w.subs {
		select {
		case <-ch:
		default:
		}
		ch <- s
	}
}

// memStorage: in-memory LocalStorage.
type memStorage struct {
	mu     sync.Mutex
	values map[string]string
}

func newMemStorage(kv ...string) *memStorage {
	s := &memStorage{values: make(map[string]string)}
	for i := 0; i+1 < len(kv); i += 2 {
		s.values[kv[i]] = kv[i+1]
	}
	return s
}

func (s *memStorage) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	if !ok {
		return "", store.ErrKeyNotFound
	}
	return v, nil
}

func (s *memStorage) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *memStorage) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

func (s *memStorage) has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.values[key]
	return ok
}

// fakeBalances fails the first failures calls. When gate is set, fetches
// for the read-only connection wait until it is closed.
type fakeBalances struct {
	mu       sync.Mutex
	failures int
	calls    int

	gate  chan struct{}
	gated atomic.Int32
}

func (b *fakeBalances) Fetch(ctx context.Context, _ adapter.RPCProvider, networkID uint64, account string) (models.Balances, error) {
	if account == "" && b.gate != nil {
		select {
		case <-b.gate:
		case <-ctx.Done():
			return models.Balances{}, ctx.Err()
		}
		defer b.gated.Add(1)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls++
	if b.failures > 0 {
		b.failures--
		return models.Balances{NetworkID: networkID}, context.DeadlineExceeded
	}
	out := models.Balances{Fetched: true, NetworkID: networkID}
	if account != "" {
		out.Native = big.NewInt(1)
		out.FormattedNative = "1.00"
	}
	return out, nil
}

func (b *fakeBalances) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls
}

// fakeProxy reports the proxy on the network of the provider it is given,
// or on network when that is set.
type fakeProxy struct {
	network uint64
}

func (p fakeProxy) Resolve(ctx context.Context, provider adapter.RPCProvider, owner string) (models.ProxyService, error) {
	id, err := provider.ChainID(ctx)
	if err != nil {
		return models.ProxyService{}, err
	}
	if p.network != 0 {
		id = p.network
	}
	return models.ProxyService{
		Owner:     common.HexToAddress(owner),
		Address:   common.HexToAddress("0x00000000000000000000000000000000000000aa"),
		NetworkID: id,
	}, nil
}

// fakeSafe records Init calls.
type fakeSafe struct {
	mu    sync.Mutex
	inits []SafeParams
}

func (s *fakeSafe) Init(address string, networkID uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inits = append(s.inits, SafeParams{Address: address, NetworkID: networkID})
}

func (s *fakeSafe) last() (SafeParams, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.inits) == 0 {
		return SafeParams{}, false
	}
	return s.inits[len(s.inits)-1], true
}

func validNames(name string) bool {
	switch models.ConnectorName(name) {
	case models.ConnectorInjected, models.ConnectorInfura, models.ConnectorSafe, models.ConnectorWalletConnect:
		return true
	}
	return false
}

// waitSnapshot reads snapshots until match returns true.
func waitSnapshot(t *testing.T, ch <-chan *Snapshot, match func(*Snapshot) bool) *Snapshot {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case s, ok := <-ch:
			require.True(t, ok, "subscription closed")
			if match(s) {
				return s
			}
		case <-timeout:
			t.Fatal("snapshot not reached")
			return nil
		}
	}
}

func ready(s *Snapshot) bool { return s != nil }
