package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vkotlyar/go-host-keeper/models"
)

// stubOrchestrator counts PerformSync triggers without doing any work.
type stubOrchestrator struct {
	calls  atomic.Int64
	states *SyncStateStore
}

func (s *stubOrchestrator) PerformSync(context.Context, models.SyncStrategy) <-chan models.SyncState {
	s.calls.Add(1)
	ch := make(chan models.SyncState, 1)
	ch <- models.SyncStateSuccess(models.SyncResult{})
	close(ch)
	return ch
}

func (s *stubOrchestrator) ResolveConflict(context.Context, models.SyncStrategy) (<-chan models.SyncState, error) {
	return nil, ErrNoPendingConflict
}

func (s *stubOrchestrator) Acknowledge() {}

func (s *stubOrchestrator) States() *SyncStateStore { return s.states }

func TestSyncJob_StartTriggersPeriodicPasses(t *testing.T) {
	orch := &stubOrchestrator{states: NewSyncStateStore()}
	job := NewSyncJob(orch)

	job.Start(context.Background(), 10*time.Millisecond)
	defer job.Stop()

	require.Eventually(t, func() bool {
		return orch.calls.Load() >= 2
	}, 2*time.Second, 5*time.Millisecond, "job should have triggered at least two passes")
}

func TestSyncJob_StopTerminatesJob(t *testing.T) {
	orch := &stubOrchestrator{states: NewSyncStateStore()}
	job := NewSyncJob(orch)

	job.Start(context.Background(), 5*time.Millisecond)
	require.Eventually(t, func() bool {
		return orch.calls.Load() >= 1
	}, 2*time.Second, time.Millisecond)

	job.Stop()
	after := orch.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, orch.calls.Load(), "no passes may trigger after Stop")

	// Stop is safe to call again when the job is not running.
	job.Stop()
}

func TestSyncJob_RestartReplacesPreviousJob(t *testing.T) {
	orch := &stubOrchestrator{states: NewSyncStateStore()}
	job := NewSyncJob(orch)

	job.Start(context.Background(), time.Hour)
	job.Start(context.Background(), 5*time.Millisecond)
	defer job.Stop()

	require.Eventually(t, func() bool {
		return orch.calls.Load() >= 1
	}, 2*time.Second, time.Millisecond, "restarted job should use the new interval")
}

func TestSyncJob_ContextCancelStopsJob(t *testing.T) {
	orch := &stubOrchestrator{states: NewSyncStateStore()}
	job := NewSyncJob(orch)

	ctx, cancel := context.WithCancel(context.Background())
	job.Start(ctx, 5*time.Millisecond)
	require.Eventually(t, func() bool {
		return orch.calls.Load() >= 1
	}, 2*time.Second, time.Millisecond)

	cancel()
	time.Sleep(20 * time.Millisecond)
	after := orch.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, orch.calls.Load())
}
