package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/merlin-client/internal/connection"
	"github.com/MKhiriev/merlin-client/models"
)

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

var connectOptions = []struct {
	name  models.ConnectorName
	title string
}{
	{models.ConnectorInjected, "Browser wallet"},
	{models.ConnectorWalletConnect, "WalletConnect"},
}

var curationSources = []models.CurationSource{
	models.CurationAllSources,
	models.CurationDXDao,
	models.CurationKleros,
	models.CurationNone,
}

type rootModel struct {
	ctx       context.Context
	ui        *TUI
	snapshots <-chan *connection.Snapshot

	snapshot *connection.Snapshot
	account  string

	view       models.MarketsView
	loadSeq    uint64
	loading    bool
	cursor     int
	categories []models.Category

	connecting bool
	connectIdx int

	searching bool
	search    textinput.Model

	showBuildInfo bool
	errOverlay    *errorOverlayModel
	status        string

	spinner spinner.Model
}

func newRootModel(ctx context.Context, ui *TUI, snapshots <-chan *connection.Snapshot) rootModel {
	search := textinput.New()
	search.Placeholder = "Search markets"
	search.CharLimit = 120

	m := rootModel{
		ctx:       ctx,
		ui:        ui,
		snapshots: snapshots,
		search:    search,
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		loadSeq:   1,
		loading:   true,
	}
	if s := ui.conn.View(); s != nil {
		m.snapshot = s
		m.account = s.Account
		ui.panel.SetConnection(s.Account, s.NetworkID, s.Relay)
	}
	return m
}

func (m rootModel) Init() tea.Cmd {
	return tea.Batch(
		waitSnapshot(m.snapshots),
		waitFilters(m.ctx, m.ui.filters),
		loadMarkets(m.ctx, m.ui.markets, m.loadSeq, m.ui.panel.Filters(), m.account),
		loadCategories(m.ctx, m.ui.markets),
		m.spinner.Tick,
	)
}

func (m rootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotMsg:
		return m.onSnapshot(msg)

	case filtersMsg:
		m, cmd := m.reload(msg.filters)
		return m, tea.Batch(cmd, waitFilters(m.ctx, m.ui.filters))

	case marketsMsg:
		if msg.seq != m.loadSeq {
			return m, nil
		}
		m.loading = false
		m.view = msg.view
		if m.cursor >= len(m.view.Markets) {
			m.cursor = 0
		}
		if msg.err != nil {
			m.errOverlay = &errorOverlayModel{message: humanizeRPCUnavailableError(msg.err)}
		}
		return m, nil

	case categoriesMsg:
		if msg.err != nil {
			m.ui.logger.Warn().Err(msg.err).Msg("failed to load categories")
			return m, nil
		}
		m.categories = msg.categories
		return m, nil

	case actionDoneMsg:
		if msg.err != nil {
			m.errOverlay = &errorOverlayModel{message: humanizeRPCUnavailableError(msg.err)}
			return m, nil
		}
		m.status = msg.status
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.onKey(msg)
	}

	return m, nil
}

func (m rootModel) onSnapshot(msg snapshotMsg) (tea.Model, tea.Cmd) {
	if msg.closed {
		return m, nil
	}
	cmds := []tea.Cmd{waitSnapshot(m.snapshots)}

	m.snapshot = msg.snapshot
	// nil snapshots are transitions; the panel keeps the last connection
	if s := msg.snapshot; s != nil {
		m.ui.panel.SetConnection(s.Account, s.NetworkID, s.Relay)
		if s.Account != m.account {
			m.account = s.Account
			if f := m.ui.panel.Filters(); f.State == models.MarketMyMarkets {
				var cmd tea.Cmd
				m, cmd = m.reload(f)
				cmds = append(cmds, cmd)
			}
		}
		if s.Connected() {
			m.connecting = false
		}
	}
	return m, tea.Batch(cmds...)
}

func (m rootModel) reload(filters models.MarketFilters) (rootModel, tea.Cmd) {
	m.loadSeq++
	m.loading = true
	m.cursor = 0
	return m, loadMarkets(m.ctx, m.ui.markets, m.loadSeq, filters, m.account)
}

func (m rootModel) onKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch {
	case m.showBuildInfo:
		if key.Matches(msg, keys.esc, keys.enter, keys.buildInfo) {
			m.showBuildInfo = false
		}
		return m, nil

	case m.errOverlay != nil:
		if key.Matches(msg, keys.esc, keys.enter) {
			m.errOverlay = nil
		}
		return m, nil

	case m.searching:
		return m.onSearchKey(msg)

	case m.connecting:
		return m.onConnectKey(msg)
	}

	panel := m.ui.panel
	filters := panel.Filters()

	switch {
	case key.Matches(msg, keys.quit):
		return m, tea.Quit

	case key.Matches(msg, keys.up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, keys.down):
		if m.cursor < len(m.view.Markets)-1 {
			m.cursor++
		}

	case key.Matches(msg, keys.nextPage, keys.prevPage):
		m.loading = true
		return m, turnPage(m.ctx, m.ui.markets, m.loadSeq, key.Matches(msg, keys.nextPage))

	case key.Matches(msg, keys.tab, keys.backtab):
		opts := panel.StateOptions(panel.CategoryCounts(m.categories))
		step := 1
		if key.Matches(msg, keys.backtab) {
			step = len(opts) - 1
		}
		current := 0
		for i, o := range opts {
			if o.Active {
				current = i
			}
		}
		return m.apply(panel.SelectState(opts[(current+step)%len(opts)].State))

	case key.Matches(msg, keys.sort):
		opts := panel.SortOptions()
		return m.apply(panel.SelectSort((filters.SortIndex + 1) % len(opts)))

	case key.Matches(msg, keys.category):
		names := m.categoryNames()
		current := 0
		for i, n := range names {
			if n == filters.Category {
				current = i
			}
		}
		return m.apply(panel.SetCategory(names[(current+1)%len(names)]))

	case key.Matches(msg, keys.curation):
		if panel.CurationDisabled() {
			m.status = "curation filter is not available here"
			return m, nil
		}
		current := 0
		for i, s := range curationSources {
			if s == filters.CurationSource {
				current = i
			}
		}
		return m.apply(panel.SetCurationSource(curationSources[(current+1)%len(curationSources)]))

	case key.Matches(msg, keys.search):
		m.searching = true
		m.search.SetValue(filters.Title)
		m.search.CursorEnd()
		return m, m.search.Focus()

	case key.Matches(msg, keys.relay):
		if !newHeaderView(m.snapshot, false).RelayToggle {
			return m, nil
		}
		m.status = "switching network"
		return m, runAction("network switched", m.ui.conn.ToggleRelay)

	case key.Matches(msg, keys.connect):
		if !m.snapshot.Connected() {
			m.connecting = true
			m.connectIdx = 0
		}

	case key.Matches(msg, keys.logout):
		if m.snapshot.Connected() {
			ctx := m.ctx
			return m, runAction("disconnected", func() error { return m.ui.conn.Logout(ctx) })
		}

	case key.Matches(msg, keys.refresh):
		return m, runAction("balances refreshed", m.ui.conn.RefreshBalances)

	case key.Matches(msg, keys.copy):
		var err error
		copied := connection.WhenConnected(connection.WithConnection(m.ctx, m.snapshot), func(s *connection.Snapshot) {
			err = writeClipboard(s.Account)
		})
		switch {
		case err != nil:
			m.errOverlay = &errorOverlayModel{message: err.Error()}
		case copied:
			m.status = "address copied"
		}

	case key.Matches(msg, keys.buildInfo):
		m.showBuildInfo = true
	}

	return m, nil
}

func (m rootModel) onSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.enter):
		m.searching = false
		m.search.Blur()
		return m.apply(m.ui.panel.SetTitle(strings.TrimSpace(m.search.Value())))
	case key.Matches(msg, keys.esc):
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m rootModel) onConnectKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.up):
		if m.connectIdx > 0 {
			m.connectIdx--
		}
	case key.Matches(msg, keys.down):
		if m.connectIdx < len(connectOptions)-1 {
			m.connectIdx++
		}
	case key.Matches(msg, keys.esc):
		m.connecting = false
	case key.Matches(msg, keys.enter):
		m.connecting = false
		name := connectOptions[m.connectIdx].name
		ctx := m.ctx
		m.status = "connecting " + string(name)
		return m, runAction("connector "+string(name)+" selected", func() error {
			return m.ui.conn.SetConnector(ctx, name)
		})
	}
	return m, nil
}

// apply reports a panel error. Successful changes come back as filtersMsg.
func (m rootModel) apply(err error) (tea.Model, tea.Cmd) {
	if err != nil {
		m.errOverlay = &errorOverlayModel{message: err.Error()}
	}
	return m, nil
}

func (m rootModel) categoryNames() []string {
	names := make([]string, 0, len(m.categories)+1)
	names = append(names, models.CategoryAll)
	for _, c := range m.categories {
		names = append(names, c.ID)
	}
	return names
}

func (m rootModel) View() string {
	if m.showBuildInfo {
		return appStyle.Render(renderBuildInfoWindow(m.ui.buildInfo))
	}
	if m.errOverlay != nil {
		return appStyle.Render(m.errOverlay.View())
	}
	if m.connecting {
		return appStyle.Render(m.connectView())
	}

	var b strings.Builder
	b.WriteString(newHeaderView(m.snapshot, m.connecting).render(m.ui.conn.State()))
	b.WriteString("\n\n")
	b.WriteString(m.filtersLine())
	b.WriteString("\n")
	if m.searching {
		b.WriteString(m.search.View())
		b.WriteString("\n")
	}

	hotKeys := "↑/↓ move  ←/→ page  tab state  o sort  g category  / search  u curation  w connect  x logout  r network  b balances  c copy  i about  q quit"
	return appStyle.Render(b.String() + "\n" + renderPage("MARKETS", m.listView(), hotKeys))
}

func (m rootModel) filtersLine() string {
	panel := m.ui.panel
	f := panel.Filters()

	var state, sortTitle string
	for _, o := range panel.StateOptions(panel.CategoryCounts(m.categories)) {
		if o.Active {
			state = o.Title
			if o.Count > 0 {
				state = fmt.Sprintf("%s (%d)", o.Title, o.Count)
			}
		}
	}
	if opts := panel.SortOptions(); f.SortIndex >= 0 && f.SortIndex < len(opts) {
		sortTitle = opts[f.SortIndex].Title
	}

	parts := []string{
		"State: " + state,
		"Category: " + f.Category,
		"Sort: " + sortTitle,
	}
	if f.Title != "" {
		parts = append(parts, "Search: "+f.Title)
	}
	if f.CurationSource != models.CurationAllSources {
		parts = append(parts, "Curation: "+string(f.CurationSource))
	}
	if n := panel.AdvancedCount(); n > 0 {
		parts = append(parts, fmt.Sprintf("Advanced: %d", n))
	}
	return helpStyle.Render(strings.Join(parts, "  |  "))
}

func (m rootModel) listView() string {
	if m.loading && len(m.view.Markets) == 0 {
		return m.spinner.View() + " Loading markets"
	}
	if len(m.view.Markets) == 0 {
		return "No markets found"
	}

	var b strings.Builder
	for i, market := range m.view.Markets {
		prefix := "  "
		if i == m.cursor {
			prefix = activeStyle.Render("> ")
		}
		b.WriteString(prefix)
		b.WriteString(fmt.Sprintf("%-48s %-14s vol $%-10.0f liq $%.0f",
			fitText(market.Title, 48), fitText(market.Category, 14), market.USDVolume, market.USDLiquidity))
		if i < len(m.view.Markets)-1 {
			b.WriteString("\n")
		}
	}

	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render(fmt.Sprintf("page %d", m.view.Page+1)))
	if m.loading {
		b.WriteString(" " + m.spinner.View())
	}
	if m.status != "" {
		b.WriteString(helpStyle.Render("  " + m.status))
	}
	return b.String()
}

func (m rootModel) connectView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Connect a wallet"))
	b.WriteString("\n\n")
	for i, o := range connectOptions {
		if i == m.connectIdx {
			b.WriteString(activeStyle.Render("> " + o.title))
		} else {
			b.WriteString("  " + o.title)
		}
		b.WriteString("\n")
	}
	b.WriteString("\nenter connect  esc cancel")
	return overlayBoxStyle.Render(b.String())
}
