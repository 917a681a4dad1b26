package wallet

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/merlin-client/internal/adapter"
)

const (
	defaultSessionPoll = 4 * time.Second

	// consecutive failed reads before the session is reported broken
	maxSessionFailures = 3
)

// Update is a change of an active session observed by its connector.
type Update struct {
	Account   string
	NetworkID uint64
	// Provider replaces the activation provider when set.
	Provider adapter.RPCProvider
	// Err ends the session.
	Err error
}

// watching is implemented by connectors that keep polling an active session
// for account and network changes. Watch returns once the watch is running;
// report is called from the watch goroutine until StopPolling or ctx ends it.
type watching interface {
	Watch(ctx context.Context, act Activation, report func(Update))
}

// sessionWatch runs one polling goroutine at a time.
type sessionWatch struct {
	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// start replaces the running watch unless ctx is already done, so a late
// start from a superseded activation cannot displace a newer watch. read
// returns the current session; an Update with Err set ends the watch
// immediately, a read error only after maxSessionFailures in a row. Changes
// relative to last are reported.
func (w *sessionWatch) start(ctx context.Context, interval time.Duration, last Update, read func(context.Context) (Update, error), report func(Update)) {
	w.mu.Lock()
	if ctx.Err() != nil {
		w.mu.Unlock()
		return
	}
	prevCancel, prevDone := w.cancel, w.done

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	w.cancel, w.done = cancel, done
	w.mu.Unlock()

	if prevCancel != nil {
		prevCancel()
		<-prevDone
	}

	go func() {
		defer close(done)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		failures := 0
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}

			next, err := read(ctx)
			if ctx.Err() != nil {
				return
			}
			if err != nil {
				failures++
				if failures < maxSessionFailures {
					continue
				}
				report(Update{Err: err})
				return
			}
			failures = 0

			if next.Err != nil {
				report(next)
				return
			}
			// network unknown at start: take the first reading as is
			if last.NetworkID == 0 && next.Account == last.Account {
				last = next
				continue
			}
			if next.Account == last.Account && next.NetworkID == last.NetworkID {
				continue
			}
			last = next
			report(next)
		}
	}()
}

// stop cancels the running watch and waits for it. It is idempotent.
func (w *sessionWatch) stop() {
	w.mu.Lock()
	cancel, done := w.cancel, w.done
	w.cancel, w.done = nil, nil
	w.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}
