package wallet

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/merlin-client/internal/adapter"
	"github.com/MKhiriev/merlin-client/internal/config"
	"github.com/MKhiriev/merlin-client/internal/logger"
	"github.com/MKhiriev/merlin-client/internal/store"
	"github.com/MKhiriev/merlin-client/models"
)

// Providers hands out JSON-RPC providers by URL or network id. Providers
// are cached so that every component talking to the same endpoint shares
// one client.
type Providers struct {
	cfg config.ClientAdapter

	mu    sync.Mutex
	byURL map[string]adapter.RPCProvider

	newProvider func(url string, timeout time.Duration, logger *logger.Logger) (adapter.RPCProvider, error)

	logger *logger.Logger
}

// NewProviders creates a provider cache for cfg.
func NewProviders(cfg config.ClientAdapter, logger *logger.Logger) *Providers {
	return &Providers{
		cfg:         cfg,
		byURL:       make(map[string]adapter.RPCProvider),
		newProvider: adapter.NewRPCProvider,
		logger:      logger,
	}
}

// ForURL returns the provider for url.
func (p *Providers) ForURL(url string) (adapter.RPCProvider, error) {
	url = strings.TrimSpace(url)

	p.mu.Lock()
	defer p.mu.Unlock()

	if provider, ok := p.byURL[url]; ok {
		return provider, nil
	}
	provider, err := p.newProvider(url, p.cfg.RequestTimeout, p.logger)
	if err != nil {
		return nil, err
	}
	p.byURL[url] = provider
	return provider, nil
}

// ForNetwork returns the provider configured for networkID.
func (p *Providers) ForNetwork(networkID uint64) (adapter.RPCProvider, error) {
	url, ok := p.cfg.NetworkRPCURLs[networkID]
	if !ok || url == "" {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedNetwork, networkID)
	}
	return p.ForURL(url)
}

// Injected returns the provider of the local injected wallet.
func (p *Providers) Injected() (adapter.RPCProvider, error) {
	return p.ForURL(p.cfg.InjectedRPCURL)
}

// Relay returns the provider every relayed connection is bound to.
func (p *Providers) Relay() (adapter.RPCProvider, error) {
	return p.ForURL(p.cfg.RelayRPCURL)
}

// HostedURL returns the hosted RPC endpoint. A value stored under
// [models.StorageKeyRPCAddress] overrides the configured one.
func (p *Providers) HostedURL(ctx context.Context, storage store.LocalStorage) string {
	override, err := storage.Get(ctx, models.StorageKeyRPCAddress)
	if err != nil {
		if !errors.Is(err, store.ErrKeyNotFound) {
			p.logger.Warn().Err(err).
				Str("func", "Providers.HostedURL").
				Msg("failed to read rpc address override")
		}
		return p.cfg.HostedRPCURL
	}
	if override = strings.TrimSpace(override); override != "" {
		return override
	}
	return p.cfg.HostedRPCURL
}
