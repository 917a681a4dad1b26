package server

import "context"

// Server defines the lifecycle contract of the bridge server.
//
// [RunServer] blocks until ctx is cancelled or serving fails, and shuts the
// server down gracefully before it returns.
type Server interface {
	// RunServer starts serving requests and blocks until the server stops.
	RunServer(ctx context.Context) error

	// Shutdown gracefully stops the server and frees associated resources.
	Shutdown(ctx context.Context) error
}
