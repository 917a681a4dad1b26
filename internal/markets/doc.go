// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package markets holds the market list filter panel. The panel owns one
// flat [models.MarketFilters] record and reports every change to a single
// callback, synchronously.
package markets
