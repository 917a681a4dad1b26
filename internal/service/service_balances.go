// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/merlin-client/internal/adapter"
	"github.com/MKhiriev/merlin-client/internal/logger"
	"github.com/MKhiriev/merlin-client/internal/utils"
	"github.com/MKhiriev/merlin-client/models"
)

const (
	nativeDecimals   = 18
	balancePrecision = 2
)

const erc20BalanceABI = `[
	{"type":"function","name":"balanceOf","stateMutability":"view","inputs":[{"name":"owner","type":"address"}],"outputs":[{"name":"","type":"uint256"}]}
]`

var erc20ABI = func() abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(erc20BalanceABI))
	if err != nil {
		panic(err)
	}
	return parsed
}()

type balanceService struct {
	logger *logger.Logger
}

func NewBalanceService(logger *logger.Logger) BalanceService {
	return &balanceService{logger: logger}
}

// Fetch reads the native balance and every tracked token balance
// concurrently. Any failed read fails the whole fetch.
func (s *balanceService) Fetch(ctx context.Context, provider adapter.RPCProvider, networkID uint64, account string) (models.Balances, error) {
	out := models.Balances{NetworkID: networkID}
	if account == "" {
		out.Fetched = true
		return out, nil
	}
	if !common.IsHexAddress(account) {
		return out, fmt.Errorf("%w: %q", ErrInvalidAccount, account)
	}
	owner := common.HexToAddress(account)

	tokens := models.TokensForNetwork(networkID)
	out.Tokens = make([]models.TokenBalance, len(tokens))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		native, err := provider.BalanceAt(gctx, owner)
		if err != nil {
			return fmt.Errorf("native balance: %w", err)
		}
		out.Native = native
		out.FormattedNative = utils.FormatUnits(native, nativeDecimals, balancePrecision)
		return nil
	})
	for i, token := range tokens {
		g.Go(func() error {
			balance, err := s.tokenBalance(gctx, provider, token, owner)
			if err != nil {
				return fmt.Errorf("%s balance: %w", token.Symbol, err)
			}
			out.Tokens[i] = models.TokenBalance{
				Token:     token,
				Balance:   balance,
				Formatted: utils.FormatUnits(balance, token.Decimals, balancePrecision),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).
			Str("func", "balanceService.Fetch").
			Str("account", owner.Hex()).
			Uint64("network", networkID).
			Msg("failed to fetch balances")
		return models.Balances{NetworkID: networkID}, err
	}

	out.Fetched = true
	return out, nil
}

func (s *balanceService) tokenBalance(ctx context.Context, provider adapter.RPCProvider, token models.Token, owner common.Address) (*big.Int, error) {
	data, err := erc20ABI.Pack("balanceOf", owner)
	if err != nil {
		return nil, err
	}
	raw, err := provider.CallContract(ctx, token.Address, data)
	if err != nil {
		return nil, err
	}
	values, err := erc20ABI.Unpack("balanceOf", raw)
	if err != nil {
		return nil, fmt.Errorf("unpack balanceOf: %w", err)
	}
	balance, ok := values[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("unpack balanceOf: unexpected %T", values[0])
	}
	return balance, nil
}
