package service

import (
	"context"
	"sync"
	"time"
)

type syncJob struct {
	orchestrator SyncOrchestrator

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSyncJob creates a syncJob that triggers orchestrator passes on a
// ticker. The job is idle until Start is called.
func NewSyncJob(orchestrator SyncOrchestrator) SyncJob {
	return &syncJob{orchestrator: orchestrator}
}

// Start implements [SyncJob]. It stops any previously running job, then
// launches a goroutine that calls PerformSync every interval with the
// configured default strategy. If interval is zero or negative it defaults
// to 5 minutes.
func (j *syncJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				// Drain the handle so coalesced passes do not
				// pile up buffered states.
				<-j.orchestrator.PerformSync(jobCtx, "")
			}
		}
	}()
}

// Stop implements [SyncJob]. It cancels the ticker goroutine and blocks
// until it has exited. An in-flight pass is left to finish and report
// normally; stopping only suppresses future automatic passes.
func (j *syncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
