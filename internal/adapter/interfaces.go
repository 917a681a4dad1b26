// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for the outbound
// endpoints of the merlin client: Ethereum JSON-RPC nodes and wallets, and
// the markets subgraph.
//
// [RPCProvider] decouples connectors and services from the JSON-RPC
// transport. [MarketsAdapter] turns market filters into subgraph queries.
//
// Error objects returned by a JSON-RPC peer surface as [*RPCError] so that
// callers can inspect the numeric code (e.g. 4902 for an unknown chain).
// HTTP-level failures are mapped by mapHTTPError to the sentinel values in
// errors.go so that callers can use [errors.Is].
package adapter

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/MKhiriev/merlin-client/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// RPCProvider is an Ethereum JSON-RPC endpoint: a hosted node, a local
// wallet or a per-network node used by the bridge connectors.
type RPCProvider interface {
	// URL returns the endpoint the provider talks to.
	URL() string

	// Call invokes method with params and decodes the result into result,
	// which may be nil when the caller does not need it. A JSON-RPC error
	// object is returned as [*RPCError].
	Call(ctx context.Context, result any, method string, params ...any) error

	// ChainID returns the chain id reported by eth_chainId.
	ChainID(ctx context.Context) (uint64, error)

	// BlockNumber returns the latest block number.
	BlockNumber(ctx context.Context) (uint64, error)

	// BalanceAt returns the native balance of account at the latest block.
	BalanceAt(ctx context.Context, account common.Address) (*big.Int, error)

	// CallContract runs a read-only eth_call against to with data.
	CallContract(ctx context.Context, to common.Address, data []byte) ([]byte, error)

	// CodeAt returns the deployed bytecode at account. Empty for an EOA or
	// an undeployed counterfactual contract.
	CodeAt(ctx context.Context, account common.Address) ([]byte, error)
}

// MarketsAdapter reads markets and categories from the markets subgraph.
type MarketsAdapter interface {
	// Markets returns one page of markets matching filters. account is only
	// used by the My Markets state.
	Markets(ctx context.Context, filters models.MarketFilters, account string, first, skip int) (models.MarketPage, error)

	// Categories returns the known market categories with their counts.
	Categories(ctx context.Context) ([]models.Category, error)
}
