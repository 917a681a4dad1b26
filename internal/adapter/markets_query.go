package adapter

import (
	"sort"
	"strings"
	"time"

	"github.com/MKhiriev/merlin-client/models"
)

const marketFields = `
    id
    creator
    collateralToken
    title
    category
    arbitrator
    templateId
    outcomes
    openingTimestamp
    creationTimestamp
    usdVolume
    usdLiquidityParameter
    outcomeTokenMarginalPrices`

const categoriesQuery = `query GetCategories {
  categories(first: 100, orderBy: numOpenConditions, orderDirection: desc) {
    id
    numConditions
    numOpenConditions
    numClosedConditions
  }
}`

type marketsQuery struct {
	query     string
	variables map[string]any
}

// buildMarketsQuery turns filters into a fixedProductMarketMakers query. Only
// the variables that are actually referenced are declared.
func buildMarketsQuery(filters models.MarketFilters, account string, first, skip int, now time.Time) marketsQuery {
	vars := map[string]any{
		"first": first,
		"skip":  skip,
	}
	types := map[string]string{
		"first": "Int!",
		"skip":  "Int!",
	}
	var where []string

	use := func(name, gqlType string, value any) {
		vars[name] = value
		types[name] = gqlType
	}

	nowTS := now.Unix()
	switch filters.State {
	case models.MarketOpen:
		use("now", "BigInt!", nowTS)
		where = append(where, "openingTimestamp_gt: $now")
	case models.MarketPending:
		use("now", "BigInt!", nowTS)
		where = append(where, "openingTimestamp_lt: $now", "answerFinalizedTimestamp: null")
	case models.MarketFinalizing:
		use("now", "BigInt!", nowTS)
		where = append(where, "answerFinalizedTimestamp_gt: $now", "isPendingArbitration: false")
	case models.MarketArbitrating:
		where = append(where, "isPendingArbitration: true")
	case models.MarketClosed:
		use("now", "BigInt!", nowTS)
		where = append(where, "answerFinalizedTimestamp_lt: $now")
	case models.MarketMyMarkets:
		use("account", "String!", strings.ToLower(account))
		where = append(where, "creator: $account")
	}

	if filters.Category != "" && filters.Category != models.CategoryAll {
		use("category", "String!", filters.Category)
		where = append(where, "category: $category")
	}
	if filters.Title != "" {
		use("title", "String!", filters.Title)
		where = append(where, "title_contains_nocase: $title")
	}
	if filters.Currency != "" {
		use("currency", "String!", strings.ToLower(filters.Currency))
		where = append(where, "collateralToken: $currency")
	}
	if filters.Arbitrator != "" {
		use("arbitrator", "String!", strings.ToLower(filters.Arbitrator))
		where = append(where, "arbitrator: $arbitrator")
	}
	if filters.TemplateID != "" {
		use("templateId", "BigInt!", filters.TemplateID)
		where = append(where, "templateId: $templateId")
	}

	switch filters.CurationSource {
	case models.CurationDXDao:
		where = append(where, "curatedByDxDao: true")
	case models.CurationKleros:
		where = append(where, "klerosTCRregistered: true")
	case models.CurationNone:
		where = append(where, "curatedByDxDaoOrKleros: false")
	}

	orderArgs := ""
	if filters.SortBy != "" {
		use("sortBy", "FixedProductMarketMaker_orderBy!", string(filters.SortBy))
		direction := filters.SortByDirection
		if direction == "" {
			direction = models.SortDesc
		}
		use("sortByDirection", "OrderDirection!", string(direction))
		orderArgs = ", orderBy: $sortBy, orderDirection: $sortByDirection"
	}

	names := make([]string, 0, len(types))
	for name := range types {
		names = append(names, name)
	}
	sort.Strings(names)
	decls := make([]string, 0, len(names))
	for _, name := range names {
		decls = append(decls, "$"+name+": "+types[name])
	}

	var b strings.Builder
	b.WriteString("query GetMarkets(")
	b.WriteString(strings.Join(decls, ", "))
	b.WriteString(") {\n  fixedProductMarketMakers(first: $first, skip: $skip")
	b.WriteString(orderArgs)
	b.WriteString(", where: { ")
	b.WriteString(strings.Join(where, ", "))
	b.WriteString(" }) {")
	b.WriteString(marketFields)
	b.WriteString("\n  }\n}")

	return marketsQuery{query: b.String(), variables: vars}
}
