package workers

import "context"

type Workers struct {
	workers []Worker
}

func New(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}

// Start launches every worker on its own goroutine and returns at once.
func (w *Workers) Start(ctx context.Context) {
	for _, worker := range w.workers {
		go worker.Run(ctx)
	}
}
