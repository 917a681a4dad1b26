// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package connection owns the connected-wallet state of the client.
//
// A [Machine] reacts to wallet status changes, relay toggles, host bridge
// updates and logouts. It walks through the states Uninitialized,
// PendingNetwork, PendingDependents and Ready and publishes an immutable
// [Snapshot] only once the network, provider, proxy and balances of one
// generation agree. All state changes happen on a single event loop
// goroutine; async lookups post their results back tagged with the
// generation that started them and stale results are dropped.
//
// Consumers read the snapshot with [Machine.View] or subscribe to it, and
// pass it down through a context with [WithConnection].
package connection
