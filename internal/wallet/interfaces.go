// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package wallet holds the connector strategies the client can connect
// through and the [Manager] that activates exactly one of them at a time.
//
// A [Connector] is a named way of obtaining an account and an RPC provider:
// a local injected wallet, the hosted read-only node, the Safe host bridge or
// a WalletConnect session. Connectors are collected in a [Registry] that is
// built once at startup and injected into the [Manager].
package wallet

import (
	"context"

	"github.com/MKhiriev/merlin-client/internal/adapter"
	"github.com/MKhiriev/merlin-client/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/wallet_mock.go -package=mock

// Connector is one wallet-connection strategy.
type Connector interface {
	// Name returns the registry name of the connector.
	Name() models.ConnectorName

	// Activate connects and returns the account (possibly empty) and the
	// provider to talk to. It may block, e.g. while a WalletConnect
	// handshake is pending, until ctx is cancelled.
	Activate(ctx context.Context) (Activation, error)

	// Deactivate releases connector state when another connector takes over
	// or on logout.
	Deactivate(ctx context.Context) error

	// StopPolling stops background polling owned by the connector: the
	// block tracker and a pending handshake. It is idempotent.
	StopPolling()
}

// Activation is the result of a successful [Connector.Activate].
type Activation struct {
	Account  string
	Provider adapter.RPCProvider
}

// blockTracking is implemented by connectors that start a block tracker on
// activation.
type blockTracking interface {
	DisableBlockTracker()
}
