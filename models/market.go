// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"strconv"
	"time"
)

// MarketState is the market-state filter.
type MarketState string

const (
	MarketOpen        MarketState = "OPEN"
	MarketPending     MarketState = "PENDING"
	MarketFinalizing  MarketState = "FINALIZING"
	MarketArbitrating MarketState = "ARBITRATING"
	MarketClosed      MarketState = "CLOSED"
	MarketMyMarkets   MarketState = "MY_MARKETS"
)

// MarketSortCriteria is a subgraph field markets can be ordered by.
type MarketSortCriteria string

const (
	SortUSDVolume         MarketSortCriteria = "usdVolume"
	SortLiquidity         MarketSortCriteria = "usdLiquidityParameter"
	SortCreationTimestamp MarketSortCriteria = "creationTimestamp"
	SortOpeningTimestamp  MarketSortCriteria = "openingTimestamp"
)

const sort24HourVolumePrefix = "sort24HourVolume"

// Sort24HourVolume returns the rolling 24h volume field for the hour of day
// of t. The subgraph keeps one bucket per hour.
func Sort24HourVolume(t time.Time) MarketSortCriteria {
	return MarketSortCriteria(sort24HourVolumePrefix + strconv.Itoa(t.UTC().Hour()))
}

// SortDirection is asc or desc.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// CurationSource narrows markets by who curated them.
type CurationSource string

const (
	CurationAllSources CurationSource = "allSources"
	CurationDXDao      CurationSource = "dxDAO"
	CurationKleros     CurationSource = "kleros"
	CurationNone       CurationSource = "noSources"
)

// CategoryAll is the pseudo category that disables category filtering.
const CategoryAll = "All"

// MarketFilters is the flat filter record emitted by the filter panel.
// Empty optional fields mean "no filter".
type MarketFilters struct {
	State           MarketState        `json:"state"`
	Category        string             `json:"category"`
	Title           string             `json:"title"`
	SortIndex       int                `json:"sortIndex"`
	SortBy          MarketSortCriteria `json:"sortBy"`
	SortByDirection SortDirection      `json:"sortByDirection"`
	Arbitrator      string             `json:"arbitrator,omitempty"`
	Currency        string             `json:"currency,omitempty"`
	TemplateID      string             `json:"templateId,omitempty"`
	CurationSource  CurationSource     `json:"curationSource"`
}

// Market is one row of the market list.
type Market struct {
	Address          string    `json:"address"`
	Title            string    `json:"title"`
	Category         string    `json:"category"`
	CollateralToken  string    `json:"collateralToken"`
	Arbitrator       string    `json:"arbitrator"`
	TemplateID       string    `json:"templateId"`
	OpeningTimestamp time.Time `json:"openingTimestamp"`
	Outcomes         []string  `json:"outcomes"`
	OutcomePrices    []float64 `json:"outcomePrices"`
	USDVolume        float64   `json:"usdVolume"`
	USDLiquidity     float64   `json:"usdLiquidity"`
}

// Category is a market category with market counts.
type Category struct {
	ID                  string `json:"id"`
	NumConditions       int    `json:"numConditions"`
	NumOpenConditions   int    `json:"numOpenConditions"`
	NumClosedConditions int    `json:"numClosedConditions"`
}

// MarketPage is one page of markets.
type MarketPage struct {
	Markets []Market
	// More is true when the subgraph returned a full page.
	More bool
}
