package wallet

import (
	"context"

	"github.com/MKhiriev/merlin-client/internal/logger"
	"github.com/MKhiriev/merlin-client/internal/store"
	"github.com/MKhiriev/merlin-client/internal/workers"
	"github.com/MKhiriev/merlin-client/models"
)

// Hosted is the read-only connector backed by a hosted RPC node. It never
// has an account and is the fallback for every failure path.
type Hosted struct {
	providers *Providers
	storage   store.LocalStorage
	tracker   *workers.BlockTracker

	logger *logger.Logger
}

// NewHosted creates the hosted connector. tracker may be nil.
func NewHosted(providers *Providers, storage store.LocalStorage, tracker *workers.BlockTracker, logger *logger.Logger) *Hosted {
	return &Hosted{
		providers: providers,
		storage:   storage,
		tracker:   tracker,
		logger:    logger,
	}
}

func (h *Hosted) Name() models.ConnectorName {
	return models.ConnectorInfura
}

// Activate resolves the hosted endpoint, honoring the stored override, and
// starts the block tracker on it.
func (h *Hosted) Activate(ctx context.Context) (Activation, error) {
	url := h.providers.HostedURL(ctx, h.storage)
	provider, err := h.providers.ForURL(url)
	if err != nil {
		return Activation{}, err
	}

	if h.tracker != nil {
		h.tracker.Attach(provider)
		h.tracker.Run(ctx)
	}

	h.logger.Debug().
		Str("func", "Hosted.Activate").
		Str("rpc", url).
		Msg("hosted connector activated")

	return Activation{Provider: provider}, nil
}

// Deactivate has nothing to release; the tracker is stopped by StopPolling.
func (h *Hosted) Deactivate(context.Context) error {
	return nil
}

func (h *Hosted) StopPolling() {
	h.DisableBlockTracker()
}

// DisableBlockTracker stops the block tracker started by Activate.
func (h *Hosted) DisableBlockTracker() {
	if h.tracker != nil {
		h.tracker.Stop()
	}
}
