package sessionlog

import (
	"context"
	"maps"
	"sort"
	"sync"
)

// MemoryStorage keeps the event trail in memory. Suitable for development
// and tests; events are lost on process exit.
type MemoryStorage struct {
	mu     sync.RWMutex
	events []Event
}

// NewMemoryStorage creates an empty in-memory event storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

// Store persists a single event.
func (s *MemoryStorage) Store(ctx context.Context, event Event) error {
	if err := event.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, cloneEvent(event))
	return nil
}

// StoreBatch persists events in one append.
func (s *MemoryStorage) StoreBatch(ctx context.Context, events []Event) error {
	for i := range events {
		if err := events[i].Validate(); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range events {
		s.events = append(s.events, cloneEvent(e))
	}
	return nil
}

// Query returns matching events, newest first.
func (s *MemoryStorage) Query(ctx context.Context, criteria Criteria) ([]Event, error) {
	s.mu.RLock()
	var matched []Event
	for _, e := range s.events {
		if criteria.matches(e) {
			matched = append(matched, cloneEvent(e))
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if criteria.Offset > 0 {
		if criteria.Offset >= len(matched) {
			return []Event{}, nil
		}
		matched = matched[criteria.Offset:]
	}
	if criteria.Limit > 0 && len(matched) > criteria.Limit {
		matched = matched[:criteria.Limit]
	}

	return matched, nil
}

// Count returns the number of events matching the criteria, ignoring
// pagination fields.
func (s *MemoryStorage) Count(ctx context.Context, criteria Criteria) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, e := range s.events {
		if criteria.matches(e) {
			n++
		}
	}
	return n, nil
}

// Len returns the total number of stored events.
func (s *MemoryStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}

// cloneEvent copies an event so callers cannot mutate stored state through
// the shared metadata map.
func cloneEvent(e Event) Event {
	if e.Metadata != nil {
		e.Metadata = maps.Clone(e.Metadata)
	}
	return e
}

var (
	_ Storage        = (*MemoryStorage)(nil)
	_ BatchWriter    = (*MemoryStorage)(nil)
	_ StorageCounter = (*MemoryStorage)(nil)
)
