// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Token is an ERC-20 token tracked by the balance aggregator.
type Token struct {
	Symbol   string         `json:"symbol"`
	Address  common.Address `json:"address"`
	Decimals int            `json:"decimals"`
}

// TokenBalance is a token together with the fetched balance.
type TokenBalance struct {
	Token
	Balance   *big.Int `json:"balance"`
	Formatted string   `json:"formatted"`
}

// Balances is the result of one balance fetch for a connection.
//
// Fetched is the readiness flag: a connection snapshot is withheld until the
// first fetch for its generation completes, even when there is no account to
// fetch for.
type Balances struct {
	Fetched bool `json:"fetched"`

	// NetworkID is the network the balances were read from.
	NetworkID uint64 `json:"networkId"`

	Native          *big.Int       `json:"native,omitempty"`
	FormattedNative string         `json:"formattedNative"`
	Tokens          []TokenBalance `json:"tokens,omitempty"`
}

// Token returns the balance of the token with the given symbol.
func (b Balances) Token(symbol string) (TokenBalance, bool) {
	for _, t := range b.Tokens {
		if t.Symbol == symbol {
			return t, true
		}
	}
	return TokenBalance{}, false
}

// ProxyService describes the counterfactual proxy (CPK) resolved for an
// account on a network.
type ProxyService struct {
	Owner     common.Address `json:"owner"`
	Address   common.Address `json:"address"`
	NetworkID uint64         `json:"networkId"`
	Deployed  bool           `json:"deployed"`
}

// Tracked ERC-20 tokens per network.
var (
	TokenOMN = Token{
		Symbol:   "OMN",
		Address:  common.HexToAddress("0x543Ff227F64Aa17eA132Bf9886cAb5DB55DCAddf"),
		Decimals: 18,
	}
	TokenXOMN = Token{
		Symbol:   "xOMN",
		Address:  common.HexToAddress("0x12daBe79cffC1fdE82FCd3B96DBE09FA4D8cd599"),
		Decimals: 18,
	}
)

// TokensForNetwork returns the tokens whose balances are fetched on
// networkID.
func TokensForNetwork(networkID uint64) []Token {
	switch networkID {
	case NetworkMainnet:
		return []Token{TokenOMN}
	case NetworkXDAI:
		return []Token{TokenXOMN}
	default:
		return nil
	}
}

// NativeSymbol returns the symbol of the native currency of networkID.
func NativeSymbol(networkID uint64) string {
	if networkID == NetworkXDAI || networkID == NetworkSokol {
		return "xDAI"
	}
	return "ETH"
}
