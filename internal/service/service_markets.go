package service

import (
	"context"
	"sync"

	"github.com/MKhiriev/merlin-client/internal/adapter"
	"github.com/MKhiriev/merlin-client/internal/logger"
	"github.com/MKhiriev/merlin-client/models"
)

// DefaultMarketsPageSize is the number of markets per page.
const DefaultMarketsPageSize = 12

type marketService struct {
	markets  adapter.MarketsAdapter
	pageSize int

	mu      sync.Mutex
	view    models.MarketsView
	account string
	seq     uint64

	logger *logger.Logger
}

func NewMarketService(markets adapter.MarketsAdapter, pageSize int, logger *logger.Logger) MarketService {
	if pageSize <= 0 {
		pageSize = DefaultMarketsPageSize
	}
	return &marketService{
		markets:  markets,
		pageSize: pageSize,
		view:     models.MarketsView{PageSize: pageSize},
		logger:   logger,
	}
}

func (s *marketService) Load(ctx context.Context, filters models.MarketFilters, account string) (models.MarketsView, error) {
	s.mu.Lock()
	s.view.Filters = filters
	s.account = account
	s.mu.Unlock()

	return s.fetch(ctx, 0)
}

func (s *marketService) Next(ctx context.Context) (models.MarketsView, error) {
	s.mu.Lock()
	view := s.view
	s.mu.Unlock()

	if view.Status == models.LoadNotAsked {
		return view, ErrMarketsNotLoaded
	}
	if !view.More {
		return view, ErrNoMoreMarkets
	}
	return s.fetch(ctx, view.Page+1)
}

func (s *marketService) Prev(ctx context.Context) (models.MarketsView, error) {
	s.mu.Lock()
	view := s.view
	s.mu.Unlock()

	if view.Status == models.LoadNotAsked {
		return view, ErrMarketsNotLoaded
	}
	if view.Page == 0 {
		return view, ErrNoPreviousPage
	}
	return s.fetch(ctx, view.Page-1)
}

func (s *marketService) View() models.MarketsView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

func (s *marketService) Categories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.markets.Categories(ctx)
	if err != nil {
		return nil, mapAdapterError(err)
	}
	return categories, nil
}

// fetch loads page for the current filters. A fetch that was overtaken by a
// newer one leaves the view untouched.
func (s *marketService) fetch(ctx context.Context, page int) (models.MarketsView, error) {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	if s.view.Status == models.LoadSuccess {
		s.view.Status = models.LoadReloading
	} else {
		s.view.Status = models.LoadLoading
	}
	filters, account := s.view.Filters, s.account
	s.mu.Unlock()

	result, err := s.markets.Markets(ctx, filters, account, s.pageSize, page*s.pageSize)

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.seq {
		return s.view, nil
	}

	if err != nil {
		err = mapAdapterError(err)
		s.logger.Error().Err(err).
			Str("func", "marketService.fetch").
			Int("page", page).
			Msg("failed to load markets")
		s.view.Status = models.LoadFailure
		s.view.Err = err
		return s.view, err
	}

	s.view = models.MarketsView{
		Status:   models.LoadSuccess,
		Filters:  filters,
		Markets:  result.Markets,
		Page:     page,
		PageSize: s.pageSize,
		More:     result.More,
	}
	return s.view, nil
}
