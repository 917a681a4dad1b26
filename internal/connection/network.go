package connection

import (
	"context"

	"github.com/MKhiriev/merlin-client/internal/adapter"
	"github.com/MKhiriev/merlin-client/internal/logger"
	"github.com/MKhiriev/merlin-client/models"
)

// NetworkSwitcher asks wallets connected to the legacy network to move to
// Gnosis Chain.
type NetworkSwitcher struct {
	target models.AddChainParams
	logger *logger.Logger
}

func NewNetworkSwitcher(logger *logger.Logger) *NetworkSwitcher {
	return &NetworkSwitcher{target: models.GnosisChain, logger: logger}
}

// Switch sends wallet_switchEthereumChain when an account is connected to
// mainnet. A wallet that does not know the chain (4902) is asked to add it.
// Failures are logged and swallowed; the result reports whether the wallet
// accepted a request.
func (s *NetworkSwitcher) Switch(ctx context.Context, provider adapter.RPCProvider, networkID uint64, account string) bool {
	if provider == nil || account == "" || networkID != models.NetworkMainnet {
		return false
	}

	err := provider.Call(ctx, nil, "wallet_switchEthereumChain", models.SwitchChainParams{ChainID: s.target.ChainID})
	if err == nil {
		s.logger.Info().
			Str("func", "NetworkSwitcher.Switch").
			Str("chain", s.target.ChainID).
			Msg("wallet switched network")
		return true
	}

	if code, ok := adapter.ErrorCode(err); !ok || code != adapter.CodeUnrecognizedChain {
		s.logger.Error().Err(err).
			Str("func", "NetworkSwitcher.Switch").
			Msg("wallet_switchEthereumChain failed")
		return false
	}

	if err = provider.Call(ctx, nil, "wallet_addEthereumChain", s.target); err != nil {
		s.logger.Error().Err(err).
			Str("func", "NetworkSwitcher.Switch").
			Msg("wallet_addEthereumChain failed")
		return false
	}
	return true
}
