package service

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/MKhiriev/merlin-client/internal/adapter"
	"github.com/MKhiriev/merlin-client/internal/logger"
	"github.com/MKhiriev/merlin-client/internal/relay"
	"github.com/MKhiriev/merlin-client/models"
)

type proxyService struct {
	deriver *relay.ProxyDeriver

	logger *logger.Logger
}

func NewProxyService(deriver *relay.ProxyDeriver, logger *logger.Logger) ProxyService {
	return &proxyService{deriver: deriver, logger: logger}
}

// Resolve reports the proxy of owner on the network provider is connected
// to. The proxy counts as deployed when code exists at its address.
func (s *proxyService) Resolve(ctx context.Context, provider adapter.RPCProvider, owner string) (models.ProxyService, error) {
	if !common.IsHexAddress(owner) {
		return models.ProxyService{}, fmt.Errorf("%w: %q", ErrInvalidAccount, owner)
	}
	ownerAddr := common.HexToAddress(owner)
	proxy := s.deriver.Address(ownerAddr)

	networkID, err := provider.ChainID(ctx)
	if err != nil {
		return models.ProxyService{}, fmt.Errorf("proxy network: %w", err)
	}

	code, err := provider.CodeAt(ctx, proxy)
	if err != nil {
		return models.ProxyService{}, fmt.Errorf("proxy code: %w", err)
	}

	s.logger.Debug().
		Str("func", "proxyService.Resolve").
		Str("owner", ownerAddr.Hex()).
		Str("proxy", proxy.Hex()).
		Uint64("network", networkID).
		Bool("deployed", len(code) > 0).
		Msg("proxy resolved")

	return models.ProxyService{
		Owner:     ownerAddr,
		Address:   proxy,
		NetworkID: networkID,
		Deployed:  len(code) > 0,
	}, nil
}
