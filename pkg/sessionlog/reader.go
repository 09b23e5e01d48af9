package sessionlog

import "context"

// Reader queries the recorded event trail.
type Reader struct {
	storage Storage
}

// NewReader creates a reader over the given storage.
func NewReader(storage Storage) *Reader {
	if storage == nil {
		panic("sessionlog: storage cannot be nil")
	}
	return &Reader{storage: storage}
}

// Find returns events matching the criteria, newest first.
func (r *Reader) Find(ctx context.Context, criteria Criteria) ([]Event, error) {
	return r.storage.Query(ctx, criteria)
}

// SessionHistory returns the trail of a single session, newest first.
func (r *Reader) SessionHistory(ctx context.Context, sessionID string, limit int) ([]Event, error) {
	return r.storage.Query(ctx, Criteria{SessionID: sessionID, Limit: limit})
}

// UserHistory returns the trail of a single user, newest first.
func (r *Reader) UserHistory(ctx context.Context, userID string, limit int) ([]Event, error) {
	return r.storage.Query(ctx, Criteria{UserID: userID, Limit: limit})
}

// Count returns the number of matching events. Storages implementing
// StorageCounter count natively; others pay a full query.
func (r *Reader) Count(ctx context.Context, criteria Criteria) (int64, error) {
	if counter, ok := r.storage.(StorageCounter); ok {
		return counter.Count(ctx, criteria)
	}

	criteria.Limit = 0
	criteria.Offset = 0
	events, err := r.storage.Query(ctx, criteria)
	if err != nil {
		return 0, err
	}
	return int64(len(events)), nil
}
