package wallet

import (
	"context"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/MKhiriev/merlin-client/internal/logger"
	"github.com/MKhiriev/merlin-client/models"
)

// Safe is the host-bridge connector. The embedding Safe host reports the
// Safe address and network through the bridge and the client calls Init
// before activating the connector.
type Safe struct {
	providers *Providers

	mu          sync.Mutex
	address     string
	networkID   uint64
	initialized bool

	logger *logger.Logger
}

func NewSafe(providers *Providers, logger *logger.Logger) *Safe {
	return &Safe{providers: providers, logger: logger}
}

func (s *Safe) Name() models.ConnectorName {
	return models.ConnectorSafe
}

// Init sets the account and network the next Activate uses.
func (s *Safe) Init(address string, networkID uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.address = address
	s.networkID = networkID
	s.initialized = true
}

// Params returns the values passed to the last Init.
func (s *Safe) Params() (address string, networkID uint64, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.address, s.networkID, s.initialized
}

func (s *Safe) Activate(context.Context) (Activation, error) {
	address, networkID, ok := s.Params()
	if !ok {
		return Activation{}, ErrSafeNotInitialized
	}

	provider, err := s.providers.ForNetwork(networkID)
	if err != nil {
		return Activation{}, err
	}

	account := address
	if common.IsHexAddress(address) {
		account = common.HexToAddress(address).Hex()
	}

	s.logger.Debug().
		Str("func", "Safe.Activate").
		Str("account", account).
		Uint64("network", networkID).
		Msg("safe connector activated")

	return Activation{Account: account, Provider: provider}, nil
}

// Deactivate forgets the Init parameters.
func (s *Safe) Deactivate(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.address = ""
	s.networkID = 0
	s.initialized = false
	return nil
}

func (s *Safe) StopPolling() {}
