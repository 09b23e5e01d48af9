package sessionlog

import (
	"context"
	"time"
)

// Writer is the storage surface Logger needs: append-only event writes.
type Writer interface {
	// Store persists a single event.
	Store(ctx context.Context, event Event) error
}

// Storage combines the write and query sides implemented by the concrete
// backends (memory, Postgres, Mongo).
type Storage interface {
	Writer

	// Query returns events matching the criteria, newest first.
	Query(ctx context.Context, criteria Criteria) ([]Event, error)
}

// BatchWriter is implemented by storages with efficient bulk inserts. It is
// the required backend for AsyncStorage.
type BatchWriter interface {
	// StoreBatch persists events atomically: all stored or none.
	StoreBatch(ctx context.Context, events []Event) error
}

// StorageCounter is an optional interface for storages with native counting.
// Reader falls back to loading matching events when it is absent.
type StorageCounter interface {
	Count(ctx context.Context, criteria Criteria) (int64, error)
}

// Criteria narrows queries over the event trail. Zero-valued fields are
// ignored; all set fields must match.
type Criteria struct {
	// SessionID restricts results to one session.
	SessionID string

	// UserID restricts results to one user.
	UserID string

	// Actions restricts results to any of the listed actions.
	Actions []Action

	// Source restricts results to events from one component.
	Source string

	// From is the inclusive lower bound on CreatedAt.
	From time.Time

	// To is the exclusive upper bound on CreatedAt.
	To time.Time

	// Limit caps the number of returned events; zero means no cap.
	Limit int

	// Offset skips that many matching events, applied after ordering.
	Offset int
}

func (c Criteria) matches(e Event) bool {
	if c.SessionID != "" && e.SessionID != c.SessionID {
		return false
	}
	if c.UserID != "" && e.UserID != c.UserID {
		return false
	}
	if c.Source != "" && e.Source != c.Source {
		return false
	}
	if len(c.Actions) > 0 {
		found := false
		for _, a := range c.Actions {
			if e.Action == a {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if !c.From.IsZero() && e.CreatedAt.Before(c.From) {
		return false
	}
	if !c.To.IsZero() && !e.CreatedAt.Before(c.To) {
		return false
	}
	return true
}
