package service

import (
	"github.com/MKhiriev/merlin-client/internal/adapter"
	"github.com/MKhiriev/merlin-client/internal/config"
	"github.com/MKhiriev/merlin-client/internal/logger"
	"github.com/MKhiriev/merlin-client/internal/relay"
)

type ClientServices struct {
	AppInfoService AppInfoService
	BalanceService BalanceService
	ProxyService   ProxyService
	MarketService  MarketService
}

func NewClientServices(cfg *config.ClientConfig, markets adapter.MarketsAdapter, deriver *relay.ProxyDeriver, logger *logger.Logger) (*ClientServices, error) {
	appInfo, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	return &ClientServices{
		AppInfoService: appInfo,
		BalanceService: NewBalanceService(logger),
		ProxyService:   NewProxyService(deriver, logger),
		MarketService:  NewMarketService(markets, DefaultMarketsPageSize, logger),
	}, nil
}
