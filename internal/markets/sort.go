// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package markets

import (
	"time"

	"github.com/MKhiriev/merlin-client/models"
)

// SortOption is one entry of a sort dropdown.
type SortOption struct {
	Title     string
	SortBy    models.MarketSortCriteria
	Direction models.SortDirection
}

// Indexes into the sort option lists that state selection jumps to.
const (
	OpenSortIndex      = 2
	MyMarketsSortIndex = 1
)

// SortOptions returns the sort options of the public market list. The 24h
// volume field depends on the hour of day of now.
func SortOptions(now time.Time) []SortOption {
	return []SortOption{
		{Title: "24h volume", SortBy: models.Sort24HourVolume(now), Direction: models.SortDesc},
		{Title: "Total volume", SortBy: models.SortUSDVolume, Direction: models.SortDesc},
		{Title: "Highest liquidity", SortBy: models.SortLiquidity, Direction: models.SortDesc},
		{Title: "Newest", SortBy: models.SortCreationTimestamp, Direction: models.SortDesc},
		{Title: "Closing soon", SortBy: models.SortOpeningTimestamp, Direction: models.SortAsc},
	}
}

// MyMarketsSortOptions returns the sort options of the My Markets list.
func MyMarketsSortOptions() []SortOption {
	return []SortOption{
		{Title: "Newest", SortBy: models.SortCreationTimestamp, Direction: models.SortDesc},
		{Title: "Ended recently", SortBy: models.SortOpeningTimestamp, Direction: models.SortDesc},
		{Title: "Ending soon", SortBy: models.SortOpeningTimestamp, Direction: models.SortAsc},
	}
}
