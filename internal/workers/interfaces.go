// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface and a Workers aggregate that allows
// running multiple workers in a unified way.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
//
// Run starts the worker's execution. Implementations spawn their goroutines
// internally and return immediately; the goroutines stop once ctx is
// cancelled. Wait blocks until every goroutine started by Run has returned.
//
// Example implementation:
//
//	type MyWorker struct{ wg sync.WaitGroup }
//
//	func (w *MyWorker) Run(ctx context.Context) {
//	    w.wg.Go(func() { <-ctx.Done() })
//	}
//
//	func (w *MyWorker) Wait() { w.wg.Wait() }
type Worker interface {
	Run(ctx context.Context)
	Wait()
}
