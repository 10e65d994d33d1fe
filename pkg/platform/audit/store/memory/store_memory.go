package memory

import (
	"context"
	"sync"

	id "propaudit/pkg/domain"
	audit "propaudit/pkg/platform/audit"
)

// DefaultCapacity bounds the number of events retained per user.
const DefaultCapacity = 1000

type InMemoryStore struct {
	mu       sync.RWMutex
	events   map[id.UserID][]audit.Event
	capacity int
}

func NewInMemoryStore() *InMemoryStore {
	return NewBounded(DefaultCapacity)
}

// NewBounded keeps at most capacity events per user, dropping the oldest.
// A non-positive capacity disables the bound.
func NewBounded(capacity int) *InMemoryStore {
	return &InMemoryStore{
		events:   make(map[id.UserID][]audit.Event),
		capacity: capacity,
	}
}

func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = make(map[id.UserID][]audit.Event)
}

func (s *InMemoryStore) Append(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := append(s.events[event.UserID], event)
	if s.capacity > 0 && len(events) > s.capacity {
		events = events[len(events)-s.capacity:]
	}
	s.events[event.UserID] = events
	return nil
}

func (s *InMemoryStore) ListByUser(_ context.Context, userID id.UserID) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]audit.Event{}, s.events[userID]...), nil
}

// ListAll returns every retained event across users.
func (s *InMemoryStore) ListAll(_ context.Context) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var all []audit.Event
	for _, userEvents := range s.events {
		all = append(all, userEvents...)
	}
	return all, nil
}
