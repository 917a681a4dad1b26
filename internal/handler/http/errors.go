// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Request validation errors of the bridge endpoints.
var (
	// ErrInvalidBody is returned when a request body is not the expected JSON.
	ErrInvalidBody = errors.New("invalid request body")

	// ErrInvalidSafeAddress is returned when a host reports a Safe address
	// that is not a hex address.
	ErrInvalidSafeAddress = errors.New("invalid safe address")

	// ErrUnknownNetwork is returned when a host reports a network name that
	// does not map to a known network id.
	ErrUnknownNetwork = errors.New("unknown network")

	// ErrEmptySession is returned for a WalletConnect session without accounts.
	ErrEmptySession = errors.New("walletconnect session has no accounts")

	// ErrUnknownTxState is returned for a transaction state name that is not
	// a known step.
	ErrUnknownTxState = errors.New("unknown transaction state")
)
