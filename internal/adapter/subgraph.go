package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/merlin-client/internal/config"
	"github.com/MKhiriev/merlin-client/internal/logger"
	"github.com/MKhiriev/merlin-client/internal/utils"
	"github.com/MKhiriev/merlin-client/models"
)

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

type subgraphMarket struct {
	ID                         string   `json:"id"`
	Creator                    string   `json:"creator"`
	CollateralToken            string   `json:"collateralToken"`
	Title                      string   `json:"title"`
	Category                   string   `json:"category"`
	Arbitrator                 string   `json:"arbitrator"`
	TemplateID                 string   `json:"templateId"`
	Outcomes                   []string `json:"outcomes"`
	OpeningTimestamp           string   `json:"openingTimestamp"`
	CreationTimestamp          string   `json:"creationTimestamp"`
	USDVolume                  string   `json:"usdVolume"`
	USDLiquidityParameter      string   `json:"usdLiquidityParameter"`
	OutcomeTokenMarginalPrices []string `json:"outcomeTokenMarginalPrices"`
}

type marketsAdapter struct {
	client *utils.HTTPClient
	url    string
	now    func() time.Time

	logger *logger.Logger
}

// NewMarketsAdapter constructs a [MarketsAdapter] for the configured
// subgraph endpoint.
func NewMarketsAdapter(cfg config.ClientAdapter, logger *logger.Logger) (MarketsAdapter, error) {
	url := strings.TrimSpace(cfg.SubgraphURL)
	if url == "" {
		return nil, fmt.Errorf("empty subgraph url")
	}

	return &marketsAdapter{
		client: utils.NewJSONClient(cfg.RequestTimeout, rpcRetries),
		url:    url,
		now:    time.Now,
		logger: logger,
	}, nil
}

func (m *marketsAdapter) Markets(ctx context.Context, filters models.MarketFilters, account string, first, skip int) (models.MarketPage, error) {
	if filters.State == models.MarketMyMarkets && account == "" {
		return models.MarketPage{}, nil
	}

	// one extra row tells whether another page exists
	q := buildMarketsQuery(filters, account, first+1, skip, m.now())

	var data struct {
		Markets []subgraphMarket `json:"fixedProductMarketMakers"`
	}
	if err := m.query(ctx, q.query, q.variables, &data); err != nil {
		return models.MarketPage{}, err
	}

	page := models.MarketPage{More: len(data.Markets) > first}
	if page.More {
		data.Markets = data.Markets[:first]
	}

	page.Markets = make([]models.Market, 0, len(data.Markets))
	for _, raw := range data.Markets {
		market, err := raw.toModel()
		if err != nil {
			m.logger.Warn().Err(err).
				Str("func", "marketsAdapter.Markets").
				Str("market", raw.ID).
				Msg("skipping malformed market")
			continue
		}
		page.Markets = append(page.Markets, market)
	}

	return page, nil
}

func (m *marketsAdapter) Categories(ctx context.Context) ([]models.Category, error) {
	var data struct {
		Categories []struct {
			ID                  string `json:"id"`
			NumConditions       int    `json:"numConditions"`
			NumOpenConditions   int    `json:"numOpenConditions"`
			NumClosedConditions int    `json:"numClosedConditions"`
		} `json:"categories"`
	}
	if err := m.query(ctx, categoriesQuery, nil, &data); err != nil {
		return nil, err
	}

	out := make([]models.Category, 0, len(data.Categories))
	for _, c := range data.Categories {
		out = append(out, models.Category{
			ID:                  c.ID,
			NumConditions:       c.NumConditions,
			NumOpenConditions:   c.NumOpenConditions,
			NumClosedConditions: c.NumClosedConditions,
		})
	}
	return out, nil
}

func (m *marketsAdapter) query(ctx context.Context, query string, variables map[string]any, dst any) error {
	resp, err := m.client.R().
		SetContext(ctx).
		SetBody(graphQLRequest{Query: query, Variables: variables}).
		Post(m.url)
	if err != nil {
		return fmt.Errorf("subgraph request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	var out graphQLResponse
	if err = json.Unmarshal(resp.Body(), &out); err != nil {
		return fmt.Errorf("decode subgraph response: %w", err)
	}
	if len(out.Errors) > 0 {
		msgs := make([]string, 0, len(out.Errors))
		for _, e := range out.Errors {
			msgs = append(msgs, e.Message)
		}
		return fmt.Errorf("%w: %s", ErrSubgraph, strings.Join(msgs, "; "))
	}
	if err = json.Unmarshal(out.Data, dst); err != nil {
		return fmt.Errorf("decode subgraph data: %w", err)
	}

	return nil
}

func (s subgraphMarket) toModel() (models.Market, error) {
	opening, err := strconv.ParseInt(s.OpeningTimestamp, 10, 64)
	if err != nil {
		return models.Market{}, fmt.Errorf("opening timestamp: %w", err)
	}

	prices := make([]float64, 0, len(s.OutcomeTokenMarginalPrices))
	for _, p := range s.OutcomeTokenMarginalPrices {
		prices = append(prices, parseDecimal(p))
	}

	return models.Market{
		Address:          s.ID,
		Title:            s.Title,
		Category:         s.Category,
		CollateralToken:  s.CollateralToken,
		Arbitrator:       s.Arbitrator,
		TemplateID:       s.TemplateID,
		OpeningTimestamp: time.Unix(opening, 0).UTC(),
		Outcomes:         s.Outcomes,
		OutcomePrices:    prices,
		USDVolume:        parseDecimal(s.USDVolume),
		USDLiquidity:     parseDecimal(s.USDLiquidityParameter),
	}, nil
}

// parseDecimal reads a subgraph BigDecimal. Missing values are zero.
func parseDecimal(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0
	}
	return v
}
