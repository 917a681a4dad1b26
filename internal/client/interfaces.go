// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "context"

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run starts the client application and blocks until the user quits or
	// ctx is cancelled.
	Run(ctx context.Context) error
}

// Connection is the connection machine as seen by the app lifecycle.
type Connection interface {
	Start() error
	Close()
}

// UI is the interactive front end. MainLoop returns when the user quits.
type UI interface {
	MainLoop(ctx context.Context) error
}

// Bridge is the optional loopback server for Safe hosts and relays.
type Bridge interface {
	RunServer(ctx context.Context) error
}

// Stopper is anything that releases background resources without
// reporting an error.
type Stopper interface {
	Stop()
}
