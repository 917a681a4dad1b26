// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/merlin-client/internal/adapter"
	"github.com/MKhiriev/merlin-client/internal/logger"
)

const defaultBlockTrackerInterval = 4 * time.Second

// BlockTracker polls eth_blockNumber on a provider and remembers the latest
// block. The hosted connector attaches its provider and starts it on
// activation; the wallet manager stops it again unless the client is
// configured to keep it.
type BlockTracker struct {
	interval time.Duration

	latest  atomic.Uint64
	running atomic.Bool

	mu       sync.Mutex
	provider adapter.RPCProvider
	cancel   context.CancelFunc
	wg       sync.WaitGroup

	logger *logger.Logger
}

// NewBlockTracker creates an idle tracker without a provider. If interval is
// zero or negative it defaults to 4 seconds.
func NewBlockTracker(interval time.Duration, logger *logger.Logger) *BlockTracker {
	if interval <= 0 {
		interval = defaultBlockTrackerInterval
	}
	return &BlockTracker{
		interval: interval,
		logger:   logger,
	}
}

// Attach sets the provider polled by the next Run.
func (t *BlockTracker) Attach(provider adapter.RPCProvider) {
	t.mu.Lock()
	t.provider = provider
	t.mu.Unlock()
}

// Run implements Worker. It stops any previously running loop, polls once
// immediately and then every interval until ctx is cancelled or Stop is
// called. Run without an attached provider does nothing.
func (t *BlockTracker) Run(ctx context.Context) {
	t.Stop()

	t.mu.Lock()
	provider := t.provider
	if provider == nil {
		t.mu.Unlock()
		return
	}
	runCtx, cancel := context.WithCancel(ctx)
	t.cancel = cancel
	t.running.Store(true)
	t.wg.Add(1)
	t.mu.Unlock()

	go func() {
		defer t.wg.Done()
		defer t.running.Store(false)

		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()

		t.poll(runCtx, provider)
		for {
			select {
			case <-runCtx.Done():
				return
			case <-ticker.C:
				t.poll(runCtx, provider)
			}
		}
	}()
}

// Stop implements Worker. It cancels the polling goroutine and blocks until
// it has exited. Safe to call when the tracker is idle.
func (t *BlockTracker) Stop() {
	t.mu.Lock()
	cancel := t.cancel
	t.cancel = nil
	t.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	t.wg.Wait()
}

// Running reports whether the polling goroutine is alive.
func (t *BlockTracker) Running() bool {
	return t.running.Load()
}

// Latest returns the highest block number seen so far, or 0.
func (t *BlockTracker) Latest() uint64 {
	return t.latest.Load()
}

func (t *BlockTracker) poll(ctx context.Context, provider adapter.RPCProvider) {
	n, err := provider.BlockNumber(ctx)
	if err != nil {
		if ctx.Err() == nil {
			t.logger.Debug().Err(err).
				Str("func", "BlockTracker.poll").
				Str("rpc", provider.URL()).
				Msg("block number request failed")
		}
		return
	}

	for {
		cur := t.latest.Load()
		if n <= cur || t.latest.CompareAndSwap(cur, n) {
			return
		}
	}
}
