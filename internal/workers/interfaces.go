// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface and a Workers aggregate that allows
// starting and stopping multiple workers in a unified way.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
//
// Run starts the worker's loop in a goroutine and returns immediately. A
// second Run replaces the running loop. Stop cancels the loop and blocks
// until it has exited; it is a no-op for an idle worker.
//
// Example implementation:
//
//	type MyWorker struct{}
//
//	func (w *MyWorker) Run(ctx context.Context) {
//	    // start background processing
//	}
//
//	func (w *MyWorker) Stop() {}
type Worker interface {
	Run(ctx context.Context)
	Stop()
}
