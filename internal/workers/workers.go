package workers

import (
	"context"
	"time"

	"github.com/vkotlyar/go-host-keeper/internal/service"
)

// Workers aggregates background workers so the application lifecycle can
// start and stop them as a unit.
type Workers struct {
	workers []Worker
}

// New builds an aggregate over the given workers. An empty aggregate is valid
// and does nothing.
func New(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}

// Start launches every worker in registration order.
func (w *Workers) Start(ctx context.Context) {
	for _, worker := range w.workers {
		worker.Start(ctx)
	}
}

// Stop stops every worker in reverse registration order and blocks until all
// have terminated.
func (w *Workers) Stop() {
	for i := len(w.workers) - 1; i >= 0; i-- {
		w.workers[i].Stop()
	}
}

// syncWorker adapts the periodic profile sync job to the [Worker] contract.
type syncWorker struct {
	job      service.SyncJob
	interval time.Duration
}

// NewSyncWorker wraps the sync job as a [Worker] triggering a pass every
// interval.
func NewSyncWorker(job service.SyncJob, interval time.Duration) Worker {
	return &syncWorker{job: job, interval: interval}
}

func (s *syncWorker) Start(ctx context.Context) {
	s.job.Start(ctx, s.interval)
}

func (s *syncWorker) Stop() {
	s.job.Stop()
}
