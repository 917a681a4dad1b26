package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/merlin-client/internal/config"
	"github.com/MKhiriev/merlin-client/internal/logger"
	"github.com/MKhiriev/merlin-client/models"
)

var fixedNow = time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

func newTestMarketsAdapter(t *testing.T, url string) *marketsAdapter {
	t.Helper()
	a, err := NewMarketsAdapter(config.ClientAdapter{SubgraphURL: url, RequestTimeout: time.Second}, logger.Nop())
	require.NoError(t, err)
	m := a.(*marketsAdapter)
	m.now = func() time.Time { return fixedNow }
	return m
}

// ── buildMarketsQuery ───────────────────────────────────────────────────────

func TestBuildMarketsQuery_OpenDefaults(t *testing.T) {
	q := buildMarketsQuery(models.MarketFilters{
		State:           models.MarketOpen,
		Category:        models.CategoryAll,
		SortBy:          models.SortLiquidity,
		SortByDirection: models.SortDesc,
		CurationSource:  models.CurationAllSources,
	}, "", 13, 0, fixedNow)

	assert.Contains(t, q.query, "fixedProductMarketMakers(first: $first, skip: $skip, orderBy: $sortBy, orderDirection: $sortByDirection")
	assert.Contains(t, q.query, "openingTimestamp_gt: $now")
	assert.NotContains(t, q.query, "category:")
	assert.NotContains(t, q.query, "curatedByDxDao")

	assert.Equal(t, 13, q.variables["first"])
	assert.Equal(t, 0, q.variables["skip"])
	assert.Equal(t, fixedNow.Unix(), q.variables["now"])
	assert.Equal(t, "usdLiquidityParameter", q.variables["sortBy"])
	assert.Equal(t, "desc", q.variables["sortByDirection"])
}

func TestBuildMarketsQuery_StatePredicates(t *testing.T) {
	tests := []struct {
		state models.MarketState
		want  []string
	}{
		{state: models.MarketPending, want: []string{"openingTimestamp_lt: $now", "answerFinalizedTimestamp: null"}},
		{state: models.MarketFinalizing, want: []string{"answerFinalizedTimestamp_gt: $now", "isPendingArbitration: false"}},
		{state: models.MarketArbitrating, want: []string{"isPendingArbitration: true"}},
		{state: models.MarketClosed, want: []string{"answerFinalizedTimestamp_lt: $now"}},
		{state: models.MarketMyMarkets, want: []string{"creator: $account"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			q := buildMarketsQuery(models.MarketFilters{State: tt.state}, "0xABC", 10, 0, fixedNow)
			for _, part := range tt.want {
				assert.Contains(t, q.query, part)
			}
		})
	}
}

func TestBuildMarketsQuery_OptionalFilters(t *testing.T) {
	q := buildMarketsQuery(models.MarketFilters{
		State:          models.MarketArbitrating,
		Category:       "Politics",
		Title:          "election",
		Currency:       "0xE91D153E0b41518A2Ce8Dd3D7944Fa863463a97d",
		Arbitrator:     "0x29F39dE98D750eb77b5FAfb31B2837f079FcE222",
		TemplateID:     "2",
		CurationSource: models.CurationKleros,
	}, "", 10, 20, fixedNow)

	assert.Contains(t, q.query, "category: $category")
	assert.Contains(t, q.query, "title_contains_nocase: $title")
	assert.Contains(t, q.query, "collateralToken: $currency")
	assert.Contains(t, q.query, "arbitrator: $arbitrator")
	assert.Contains(t, q.query, "templateId: $templateId")
	assert.Contains(t, q.query, "klerosTCRregistered: true")
	assert.NotContains(t, q.query, "orderBy")

	// declared variables are exactly the ones used
	assert.Contains(t, q.query, "$category: String!")
	assert.NotContains(t, q.query, "$now")
	assert.NotContains(t, q.query, "$account")

	assert.Equal(t, "0xe91d153e0b41518a2ce8dd3d7944fa863463a97d", q.variables["currency"])
	assert.Equal(t, 20, q.variables["skip"])
}

func TestBuildMarketsQuery_CurationSources(t *testing.T) {
	dx := buildMarketsQuery(models.MarketFilters{CurationSource: models.CurationDXDao}, "", 1, 0, fixedNow)
	assert.Contains(t, dx.query, "curatedByDxDao: true")

	none := buildMarketsQuery(models.MarketFilters{CurationSource: models.CurationNone}, "", 1, 0, fixedNow)
	assert.Contains(t, none.query, "curatedByDxDaoOrKleros: false")
}

// ── Markets ─────────────────────────────────────────────────────────────────

func marketJSON(id string) map[string]any {
	return map[string]any{
		"id":                         id,
		"creator":                    "0xabc",
		"collateralToken":            "0xe91d153e0b41518a2ce8dd3d7944fa863463a97d",
		"title":                      "Will it rain?",
		"category":                   "Weather",
		"arbitrator":                 "0x29f39de98d750eb77b5fafb31b2837f079fce222",
		"templateId":                 "2",
		"outcomes":                   []string{"Yes", "No"},
		"openingTimestamp":           "1780000000",
		"creationTimestamp":          "1770000000",
		"usdVolume":                  "1234.5",
		"usdLiquidityParameter":      "99.9",
		"outcomeTokenMarginalPrices": []string{"0.25", "0.75"},
	}
}

func TestMarkets_DecodesPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req graphQLRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.True(t, strings.HasPrefix(req.Query, "query GetMarkets("))
		// first+1 rows are requested
		assert.EqualValues(t, 3, req.Variables["first"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"fixedProductMarketMakers": []any{marketJSON("0x1"), marketJSON("0x2"), marketJSON("0x3")},
			},
		})
	}))
	defer srv.Close()

	page, err := newTestMarketsAdapter(t, srv.URL).Markets(context.Background(), models.MarketFilters{State: models.MarketOpen}, "", 2, 0)
	require.NoError(t, err)

	assert.True(t, page.More)
	require.Len(t, page.Markets, 2)

	m := page.Markets[0]
	assert.Equal(t, "0x1", m.Address)
	assert.Equal(t, "Will it rain?", m.Title)
	assert.Equal(t, time.Unix(1780000000, 0).UTC(), m.OpeningTimestamp)
	assert.Equal(t, []float64{0.25, 0.75}, m.OutcomePrices)
	assert.InDelta(t, 1234.5, m.USDVolume, 1e-9)
	assert.InDelta(t, 99.9, m.USDLiquidity, 1e-9)
}

func TestMarkets_LastPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{"fixedProductMarketMakers": []any{marketJSON("0x1")}},
		})
	}))
	defer srv.Close()

	page, err := newTestMarketsAdapter(t, srv.URL).Markets(context.Background(), models.MarketFilters{}, "", 2, 0)
	require.NoError(t, err)
	assert.False(t, page.More)
	assert.Len(t, page.Markets, 1)
}

func TestMarkets_SkipsMalformed(t *testing.T) {
	bad := marketJSON("0xbad")
	bad["openingTimestamp"] = "soon"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{"fixedProductMarketMakers": []any{bad, marketJSON("0x1")}},
		})
	}))
	defer srv.Close()

	page, err := newTestMarketsAdapter(t, srv.URL).Markets(context.Background(), models.MarketFilters{}, "", 5, 0)
	require.NoError(t, err)
	require.Len(t, page.Markets, 1)
	assert.Equal(t, "0x1", page.Markets[0].Address)
}

func TestMarkets_GraphQLErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"errors":[{"message":"indexing error"},{"message":"bad field"}]}`))
	}))
	defer srv.Close()

	_, err := newTestMarketsAdapter(t, srv.URL).Markets(context.Background(), models.MarketFilters{}, "", 5, 0)
	require.ErrorIs(t, err, ErrSubgraph)
	assert.Contains(t, err.Error(), "indexing error; bad field")
}

func TestMarkets_MyMarketsWithoutAccount(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	page, err := newTestMarketsAdapter(t, srv.URL).Markets(context.Background(), models.MarketFilters{State: models.MarketMyMarkets}, "", 5, 0)
	require.NoError(t, err)
	assert.Empty(t, page.Markets)
	assert.False(t, called)
}

// ── Categories ──────────────────────────────────────────────────────────────

func TestCategories(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req graphQLRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, categoriesQuery, req.Query)

		_, _ = w.Write([]byte(`{"data":{"categories":[{"id":"Politics","numConditions":10,"numOpenConditions":4,"numClosedConditions":6}]}}`))
	}))
	defer srv.Close()

	cats, err := newTestMarketsAdapter(t, srv.URL).Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.Category{{ID: "Politics", NumConditions: 10, NumOpenConditions: 4, NumClosedConditions: 6}}, cats)
}

func TestNewMarketsAdapter_EmptyURL(t *testing.T) {
	a, err := NewMarketsAdapter(config.ClientAdapter{}, logger.Nop())
	require.Error(t, err)
	assert.Nil(t, a)
}
