// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"net/url"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Field-level checks live on [ClientConfig]; here only values that cannot be
// defaulted are inspected.
func (cfg *StructuredConfig) validate() error {
	return nil
}

// validateWallet rejects malformed addresses before they are converted with
// common.HexToAddress, which would silently zero them.
func (cfg *StructuredConfig) validateWallet() error {
	if cfg.Wallet.DebugAddress != nil && *cfg.Wallet.DebugAddress != "" &&
		!common.IsHexAddress(*cfg.Wallet.DebugAddress) {
		return ErrInvalidWalletConfigs
	}

	for _, addr := range []string{cfg.Wallet.CPKFactory, cfg.Wallet.CPKMasterCopy} {
		if addr != "" && !common.IsHexAddress(addr) {
			return ErrInvalidWalletConfigs
		}
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.RequestTimeout <= 0 || cfg.Server.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	for _, raw := range []string{
		cfg.Adapter.HostedRPCURL,
		cfg.Adapter.InjectedRPCURL,
		cfg.Adapter.RelayRPCURL,
		cfg.Adapter.SubgraphURL,
	} {
		if !isHTTPURL(raw) {
			return ErrInvalidAdapterConfigs
		}
	}
	for _, raw := range cfg.Adapter.NetworkRPCURLs {
		if !isHTTPURL(raw) {
			return ErrInvalidAdapterConfigs
		}
	}

	if cfg.Workers.BlockTrackerInterval <= 0 ||
		cfg.Workers.HandshakePollInterval <= 0 ||
		cfg.Workers.HandshakeTimeout < cfg.Workers.HandshakePollInterval {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
