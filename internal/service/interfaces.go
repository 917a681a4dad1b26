package service

import (
	"context"

	"github.com/MKhiriev/merlin-client/internal/adapter"
	"github.com/MKhiriev/merlin-client/models"
)

// BalanceService reads the native and token balances of an account.
type BalanceService interface {
	// Fetch reads the balances of account on provider. Without an account it
	// returns an empty but fetched result. The token set depends on
	// networkID.
	Fetch(ctx context.Context, provider adapter.RPCProvider, networkID uint64, account string) (models.Balances, error)
}

// ProxyService resolves the counterfactual proxy (CPK) of an owner.
type ProxyService interface {
	// Resolve derives the proxy of owner and reads the network it lives on
	// and whether it is deployed there.
	Resolve(ctx context.Context, provider adapter.RPCProvider, owner string) (models.ProxyService, error)
}

// MarketService pages through the market list.
type MarketService interface {
	// Load fetches the first page for filters. account is used by the My
	// Markets state.
	Load(ctx context.Context, filters models.MarketFilters, account string) (models.MarketsView, error)

	// Next loads the following page.
	Next(ctx context.Context) (models.MarketsView, error)

	// Prev loads the previous page.
	Prev(ctx context.Context) (models.MarketsView, error)

	// View returns the current list without fetching.
	View() models.MarketsView

	// Categories returns the market categories with their counts.
	Categories(ctx context.Context) ([]models.Category, error)
}

// AppInfoService reports build metadata.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
