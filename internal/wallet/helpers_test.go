package wallet

import (
	"context"
	"encoding/json"
	"math/big"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/MKhiriev/merlin-client/internal/adapter"
	"github.com/MKhiriev/merlin-client/internal/config"
	"github.com/MKhiriev/merlin-client/internal/logger"
	"github.com/MKhiriev/merlin-client/internal/store"
)

// stubProvider: простая реализация RPCProvider; mock-пакет импортирует wallet,
// поэтому gomock-моки здесь вызвали бы цикл импортов.
type stubProvider struct {
	url     string
	callErr error
	block   atomic.Uint64
	chainID atomic.Uint64

	mu       sync.Mutex
	accounts []string
}

func (p *stubProvider) URL() string { return p.url }

func (p *stubProvider) Call(_ context.Context, result any, method string, _ ...any) error {
	if p.callErr != nil {
		return p.callErr
	}
	if (method == "eth_requestAccounts" || method == "eth_accounts") && result != nil {
		p.mu.Lock()
		raw, _ := json.Marshal(p.accounts)
		p.mu.Unlock()
		return json.Unmarshal(raw, result)
	}
	return nil
}

func (p *stubProvider) setAccounts(accounts ...string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.accounts = accounts
}

func (p *stubProvider) ChainID(context.Context) (uint64, error) { return p.chainID.Load(), nil }

func (p *stubProvider) BlockNumber(context.Context) (uint64, error) {
	return p.block.Add(1), nil
}

func (p *stubProvider) BalanceAt(context.Context, common.Address) (*big.Int, error) {
	return big.NewInt(0), nil
}

func (p *stubProvider) CallContract(context.Context, common.Address, []byte) ([]byte, error) {
	return nil, nil
}

func (p *stubProvider) CodeAt(context.Context, common.Address) ([]byte, error) { return nil, nil }

// memStorage: in-memory LocalStorage.
type memStorage struct {
	mu     sync.Mutex
	values map[string]string
	getErr error
}

func newMemStorage() *memStorage {
	return &memStorage{values: make(map[string]string)}
}

func (s *memStorage) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return "", s.getErr
	}
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

var testAdapterConfig = config.ClientAdapter{
	HostedRPCURL:   "http://hosted",
	InjectedRPCURL: "http://injected",
	RelayRPCURL:    "http://relay",
	NetworkRPCURLs: map[uint64]string{1: "http://mainnet", 100: "http://gnosis"},
	RequestTimeout: time.Second,
}

// newTestProviders returns a provider cache whose providers are stubs keyed
// by url, plus a counter of constructed providers.
func newTestProviders(stubs map[string]*stubProvider) (*Providers, *atomic.Int32) {
	var created atomic.Int32
	p := NewProviders(testAdapterConfig, logger.Nop())
	p.newProvider = func(url string, _ time.Duration, _ *logger.Logger) (adapter.RPCProvider, error) {
		created.Add(1)
		if s, ok := stubs[url]; ok {
			return s, nil
		}
		return &stubProvider{url: url}, nil
	}
	return p, &created
}
