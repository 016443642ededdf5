package service

import (
	"sync"

	"github.com/vkotlyar/go-host-keeper/models"
)

// stateBuffer is the per-subscriber channel capacity. A subscriber that
// falls further behind loses intermediate states, never the latest one.
const stateBuffer = 16

// SyncStateStore holds the process-wide observable [models.SyncState].
// The orchestrator is its only writer; any number of readers may poll
// Current or subscribe to the replacement stream. Values are replaced
// atomically: a reader never observes a half-written state.
type SyncStateStore struct {
	mu      sync.RWMutex
	current models.SyncState
	subs    map[int]chan models.SyncState
	nextID  int
}

// NewSyncStateStore constructs a store in the idle state.
func NewSyncStateStore() *SyncStateStore {
	return &SyncStateStore{
		current: models.SyncStateIdle(),
		subs:    make(map[int]chan models.SyncState),
	}
}

// Current returns the active state.
func (s *SyncStateStore) Current() models.SyncState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Set replaces the active state and broadcasts it to all subscribers.
// Only the orchestrator calls Set.
func (s *SyncStateStore) Set(state models.SyncState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = state
	for _, ch := range s.subs {
		select {
		case ch <- state:
		default:
			// Full buffer: drop the oldest value so the latest
			// state always gets through.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- state:
			default:
			}
		}
	}
}

// Subscribe registers a new reader. The returned channel receives every
// state replacement from this point on; the cancel function unregisters the
// reader and closes the channel.
func (s *SyncStateStore) Subscribe() (<-chan models.SyncState, func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	ch := make(chan models.SyncState, stateBuffer)
	s.subs[id] = ch
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if sub, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}
