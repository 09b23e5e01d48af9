package activity

import (
	"context"
	"sync"
	"time"
)

// MemoryStore implements Store using in-memory storage. Entries older than
// the retention period are dropped by a background cleanup loop so
// abandoned sessions do not accumulate.
type MemoryStore struct {
	mu        sync.RWMutex
	entries   map[string]time.Time
	retention time.Duration
	ticker    *time.Ticker
	done      chan struct{}
}

// NewMemoryStore creates an in-memory activity store. Entries untouched for
// longer than retention are removed every cleanupInterval; a zero or
// negative cleanupInterval disables cleanup.
func NewMemoryStore(retention, cleanupInterval time.Duration) *MemoryStore {
	store := &MemoryStore{
		entries:   make(map[string]time.Time),
		retention: retention,
		done:      make(chan struct{}),
	}

	if cleanupInterval > 0 && retention > 0 {
		store.ticker = time.NewTicker(cleanupInterval)
		go store.cleanupLoop()
	}

	return store
}

// Touch records activity for a session token.
func (m *MemoryStore) Touch(ctx context.Context, token string, at time.Time) error {
	if token == "" {
		return ErrInvalidToken
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Keep timestamps monotonic: a late write must not rewind activity.
	if existing, ok := m.entries[token]; ok && existing.After(at) {
		return nil
	}
	m.entries[token] = at
	return nil
}

// LastActivity returns the most recent activity time for a token.
func (m *MemoryStore) LastActivity(ctx context.Context, token string) (time.Time, error) {
	if token == "" {
		return time.Time{}, ErrInvalidToken
	}

	m.mu.RLock()
	at, ok := m.entries[token]
	m.mu.RUnlock()

	if !ok {
		return time.Time{}, ErrNotTracked
	}
	return at, nil
}

// Forget removes all recorded activity for a token.
func (m *MemoryStore) Forget(ctx context.Context, token string) error {
	if token == "" {
		return ErrInvalidToken
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, token)
	return nil
}

// DeleteStale removes entries whose last activity is older than the
// retention period.
func (m *MemoryStore) DeleteStale(ctx context.Context) error {
	if m.retention <= 0 {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-m.retention)
	for token, at := range m.entries {
		if at.Before(cutoff) {
			delete(m.entries, token)
		}
	}
	return nil
}

// Len returns the number of tracked tokens.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Close stops the cleanup goroutine.
func (m *MemoryStore) Close() error {
	if m.ticker != nil {
		m.ticker.Stop()
		close(m.done)
	}
	return nil
}

// cleanupLoop runs periodic cleanup of stale entries.
func (m *MemoryStore) cleanupLoop() {
	for {
		select {
		case <-m.ticker.C:
			_ = m.DeleteStale(context.Background())
		case <-m.done:
			return
		}
	}
}

var _ Store = (*MemoryStore)(nil)
