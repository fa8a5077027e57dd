// Package workers runs the background tasks of the dashboard.
// It defines the Worker interface and a Workers aggregate that starts
// several workers in a unified way.
package workers

import "context"

// Worker is a background task that runs once to completion.
//
// Run is started on its own goroutine and is never awaited: when the
// dashboard exits the process ends and an unfinished worker is abandoned.
//
// Example implementation:
//
//	type MyWorker struct{}
//
//	func (w *MyWorker) Run(ctx context.Context) {
//	    // do the work, return when done
//	}
type Worker interface {
	Run(ctx context.Context)
}

// Func adapts a plain function to Worker.
type Func func(ctx context.Context)

// Run implements Worker.
func (f Func) Run(ctx context.Context) {
	f(ctx)
}
