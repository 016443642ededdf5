package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vkotlyar/go-host-keeper/models"
)

func TestSyncStateStore_StartsIdle(t *testing.T) {
	s := NewSyncStateStore()
	assert.Equal(t, models.SyncIdle, s.Current().Kind)
}

func TestSyncStateStore_SetReplacesCurrent(t *testing.T) {
	s := NewSyncStateStore()

	s.Set(models.SyncStateSyncing())
	assert.Equal(t, models.SyncRunning, s.Current().Kind)

	s.Set(models.SyncStateError("boom"))
	got := s.Current()
	assert.Equal(t, models.SyncError, got.Kind)
	assert.Equal(t, "boom", got.Message)
}

func TestSyncStateStore_SubscribersReceiveReplacements(t *testing.T) {
	s := NewSyncStateStore()

	ch, cancel := s.Subscribe()
	defer cancel()

	s.Set(models.SyncStateSyncing())
	s.Set(models.SyncStateError("unreachable"))

	first := <-ch
	second := <-ch
	assert.Equal(t, models.SyncRunning, first.Kind)
	assert.Equal(t, models.SyncError, second.Kind)
}

func TestSyncStateStore_SlowSubscriberKeepsLatest(t *testing.T) {
	s := NewSyncStateStore()

	ch, cancel := s.Subscribe()
	defer cancel()

	// Overflow the buffer without reading: intermediate states may be
	// dropped but the most recent one must still be delivered.
	for i := 0; i < stateBuffer*3; i++ {
		s.Set(models.SyncStateSyncing())
	}
	s.Set(models.SyncStateError("final"))

	var last models.SyncState
	for {
		select {
		case state := <-ch:
			last = state
			continue
		default:
		}
		break
	}
	require.Equal(t, models.SyncError, last.Kind)
	assert.Equal(t, "final", last.Message)
}

func TestSyncStateStore_CancelClosesChannel(t *testing.T) {
	s := NewSyncStateStore()

	ch, cancel := s.Subscribe()
	cancel()

	_, open := <-ch
	assert.False(t, open)

	// Cancelling twice is safe, and a write after cancel must not panic.
	cancel()
	s.Set(models.SyncStateSyncing())
}
