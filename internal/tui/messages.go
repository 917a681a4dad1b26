package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/merlin-client/internal/connection"
	"github.com/MKhiriev/merlin-client/internal/service"
	"github.com/MKhiriev/merlin-client/models"
)

type snapshotMsg struct {
	snapshot *connection.Snapshot
	closed   bool
}

type filtersMsg struct {
	filters models.MarketFilters
}

type marketsMsg struct {
	seq  uint64
	view models.MarketsView
	err  error
}

type categoriesMsg struct {
	categories []models.Category
	err        error
}

type actionDoneMsg struct {
	status string
	err    error
}

func waitSnapshot(ch <-chan *connection.Snapshot) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-ch
		return snapshotMsg{snapshot: s, closed: !ok}
	}
}

func waitFilters(ctx context.Context, ch <-chan models.MarketFilters) tea.Cmd {
	return func() tea.Msg {
		select {
		case f := <-ch:
			return filtersMsg{filters: f}
		case <-ctx.Done():
			return nil
		}
	}
}

func loadMarkets(ctx context.Context, svc service.MarketService, seq uint64, filters models.MarketFilters, account string) tea.Cmd {
	return func() tea.Msg {
		view, err := svc.Load(ctx, filters, account)
		return marketsMsg{seq: seq, view: view, err: err}
	}
}

// turnPage loads the next or the previous page. Running off either end is
// reported as a status, not an error.
func turnPage(ctx context.Context, svc service.MarketService, seq uint64, next bool) tea.Cmd {
	return func() tea.Msg {
		var (
			view models.MarketsView
			err  error
		)
		if next {
			view, err = svc.Next(ctx)
		} else {
			view, err = svc.Prev(ctx)
		}
		if errors.Is(err, service.ErrNoMoreMarkets) || errors.Is(err, service.ErrNoPreviousPage) {
			return actionDoneMsg{status: err.Error()}
		}
		return marketsMsg{seq: seq, view: view, err: err}
	}
}

func loadCategories(ctx context.Context, svc service.MarketService) tea.Cmd {
	return func() tea.Msg {
		categories, err := svc.Categories(ctx)
		return categoriesMsg{categories: categories, err: err}
	}
}

func runAction(status string, fn func() error) tea.Cmd {
	return func() tea.Msg {
		if err := fn(); err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{status: status}
	}
}
