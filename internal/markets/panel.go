// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package markets

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/merlin-client/models"
)

// DefaultFilters is the filter record of a fresh panel: open markets of all
// categories sorted by liquidity.
func DefaultFilters() models.MarketFilters {
	return models.MarketFilters{
		State:           models.MarketOpen,
		Category:        models.CategoryAll,
		SortIndex:       OpenSortIndex,
		SortBy:          models.SortLiquidity,
		SortByDirection: models.SortDesc,
		CurationSource:  models.CurationAllSources,
	}
}

// StateOption is one entry of the state dropdown.
type StateOption struct {
	State  models.MarketState
	Title  string
	Active bool
	// Count is the number of markets in the selected category, when known.
	Count int
}

// Counts are the market counts of the selected category.
type Counts struct {
	Open   int
	Closed int
	Total  int
}

var stateTitles = []struct {
	state models.MarketState
	title string
}{
	{models.MarketOpen, "Open"},
	{models.MarketPending, "Pending"},
	{models.MarketFinalizing, "Finalizing"},
	{models.MarketArbitrating, "Arbitrating"},
	{models.MarketClosed, "Closed"},
	{models.MarketMyMarkets, "My Markets"},
}

// Panel is the market list filter panel. It is safe for concurrent use;
// onChange is called outside the panel lock, in the order changes happen.
type Panel struct {
	mu      sync.Mutex
	filters models.MarketFilters

	account   string
	networkID uint64
	relay     bool

	notify   sync.Mutex
	onChange func(models.MarketFilters)
	now      func() time.Time
}

// NewPanel creates a panel starting from initial. Zero fields of initial
// take their [DefaultFilters] value. onChange may be nil and must not
// modify the panel.
func NewPanel(initial models.MarketFilters, onChange func(models.MarketFilters)) *Panel {
	def := DefaultFilters()
	if initial.State == "" {
		initial.State = def.State
	}
	if initial.Category == "" {
		initial.Category = def.Category
	}
	if initial.SortBy == "" {
		initial.SortIndex, initial.SortBy, initial.SortByDirection = def.SortIndex, def.SortBy, def.SortByDirection
	}
	if initial.SortByDirection == "" {
		initial.SortByDirection = models.SortDesc
	}
	if initial.CurationSource == "" {
		initial.CurationSource = def.CurationSource
	}
	if onChange == nil {
		onChange = func(models.MarketFilters) {}
	}
	return &Panel{filters: initial, onChange: onChange, now: time.Now}
}

// Filters returns the current filter record.
func (p *Panel) Filters() models.MarketFilters {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.filters
}

// SelectState selects a market state. Open jumps to the liquidity sort and
// My Markets to the "ended recently" sort. My Markets is rejected while no
// account is connected.
func (p *Panel) SelectState(state models.MarketState) error {
	if !knownState(state) {
		return fmt.Errorf("%w: %q", ErrUnknownState, state)
	}

	return p.update(func(f *models.MarketFilters) error {
		switch state {
		case models.MarketOpen:
			f.SortIndex = OpenSortIndex
			f.SortBy = models.SortLiquidity
			f.SortByDirection = models.SortDesc
		case models.MarketMyMarkets:
			if p.account == "" {
				return ErrNotConnected
			}
			opt := MyMarketsSortOptions()[MyMarketsSortIndex]
			f.SortIndex = MyMarketsSortIndex
			f.SortBy = opt.SortBy
			f.SortByDirection = opt.Direction
		}
		f.State = state
		return nil
	})
}

func (p *Panel) SetCategory(category string) error {
	category = strings.TrimSpace(category)
	if category == "" {
		category = models.CategoryAll
	}
	return p.update(func(f *models.MarketFilters) error {
		f.Category = category
		return nil
	})
}

func (p *Panel) SetTitle(title string) error {
	return p.update(func(f *models.MarketFilters) error {
		f.Title = title
		return nil
	})
}

// SelectSort picks entry index of the sort options offered for the
// current state.
func (p *Panel) SelectSort(index int) error {
	return p.update(func(f *models.MarketFilters) error {
		opts := p.sortOptionsLocked()
		if index < 0 || index >= len(opts) {
			return fmt.Errorf("%w: %d", ErrSortIndexOutOfRange, index)
		}
		f.SortIndex = index
		f.SortBy = opts[index].SortBy
		f.SortByDirection = opts[index].Direction
		return nil
	})
}

// SetArbitrator filters by arbitrator address. Empty clears the filter.
func (p *Panel) SetArbitrator(arbitrator string) error {
	return p.update(func(f *models.MarketFilters) error {
		f.Arbitrator = strings.TrimSpace(arbitrator)
		return nil
	})
}

// SetCurrency filters by collateral token address. Empty clears the filter.
func (p *Panel) SetCurrency(currency string) error {
	return p.update(func(f *models.MarketFilters) error {
		f.Currency = strings.TrimSpace(currency)
		return nil
	})
}

func (p *Panel) SetTemplateID(templateID string) error {
	return p.update(func(f *models.MarketFilters) error {
		f.TemplateID = strings.TrimSpace(templateID)
		return nil
	})
}

// SetCurationSource sets the curation filter. It is rejected while the
// curation filter is disabled, except for resetting it to all sources.
func (p *Panel) SetCurationSource(source models.CurationSource) error {
	switch source {
	case models.CurationAllSources, models.CurationDXDao, models.CurationKleros, models.CurationNone:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCurationSource, source)
	}

	return p.update(func(f *models.MarketFilters) error {
		if source != models.CurationAllSources && p.curationDisabledLocked() {
			return ErrCurationDisabled
		}
		f.CurationSource = source
		return nil
	})
}

// AccountChanged records the connected account. Losing the account while
// My Markets is selected falls back to Open.
func (p *Panel) AccountChanged(account string) {
	_ = p.update(func(f *models.MarketFilters) error {
		p.account = account
		if account == "" && f.State == models.MarketMyMarkets {
			f.State = models.MarketOpen
		}
		return nil
	})
}

// SetConnection records the connection the panel is shown for. It updates
// the account like [Panel.AccountChanged] and the network and relay flag
// that gate the curation filter.
func (p *Panel) SetConnection(account string, networkID uint64, relay bool) {
	p.mu.Lock()
	p.networkID, p.relay = networkID, relay
	p.mu.Unlock()

	p.AccountChanged(account)
}

// AdvancedCount is the number of advanced filters in use: currency,
// arbitrator and a curation source other than all sources.
func (p *Panel) AdvancedCount() int {
	f := p.Filters()

	n := 0
	if f.Currency != "" {
		n++
	}
	if f.Arbitrator != "" {
		n++
	}
	if f.CurationSource != models.CurationAllSources {
		n++
	}
	return n
}

// CurationDisabled reports whether the curation filter is unavailable: for
// My Markets, on Gnosis Chain and for relayed connections.
func (p *Panel) CurationDisabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.curationDisabledLocked()
}

func (p *Panel) curationDisabledLocked() bool {
	return p.filters.State == models.MarketMyMarkets || p.networkID == models.NetworkXDAI || p.relay
}

// SortOptions returns the sort options offered for the current state.
func (p *Panel) SortOptions() []SortOption {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sortOptionsLocked()
}

func (p *Panel) sortOptionsLocked() []SortOption {
	if p.filters.State == models.MarketMyMarkets {
		return MyMarketsSortOptions()
	}
	return SortOptions(p.now())
}

// StateOptions lists the selectable states. My Markets is only offered
// while an account is connected. Open and Closed carry the counts of the
// selected category.
func (p *Panel) StateOptions(counts Counts) []StateOption {
	p.mu.Lock()
	defer p.mu.Unlock()

	opts := make([]StateOption, 0, len(stateTitles))
	for _, st := range stateTitles {
		if st.state == models.MarketMyMarkets && p.account == "" {
			continue
		}
		opt := StateOption{State: st.state, Title: st.title, Active: p.filters.State == st.state}
		switch st.state {
		case models.MarketOpen:
			opt.Count = counts.Open
		case models.MarketClosed:
			opt.Count = counts.Closed
		}
		opts = append(opts, opt)
	}
	return opts
}

// CategoryCounts returns the counts of the selected category. The All
// pseudo category and unknown categories have zero counts.
func (p *Panel) CategoryCounts(categories []models.Category) Counts {
	category := p.Filters().Category
	if category == models.CategoryAll {
		return Counts{}
	}
	for _, c := range categories {
		if c.ID == category {
			return Counts{Open: c.NumOpenConditions, Closed: c.NumClosedConditions, Total: c.NumConditions}
		}
	}
	return Counts{}
}

// update applies fn and notifies onChange when the record changed.
func (p *Panel) update(fn func(f *models.MarketFilters) error) error {
	// notify keeps callbacks in the order of the changes
	p.notify.Lock()
	defer p.notify.Unlock()

	p.mu.Lock()
	next := p.filters
	if err := fn(&next); err != nil {
		p.mu.Unlock()
		return err
	}
	changed := next != p.filters
	p.filters = next
	p.mu.Unlock()

	if changed {
		p.onChange(next)
	}
	return nil
}

func knownState(state models.MarketState) bool {
	for _, st := range stateTitles {
		if st.state == state {
			return true
		}
	}
	return false
}
