package activity_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionguard/pkg/activity"
)

// countingStore records every Touch call for assertions.
type countingStore struct {
	mu      sync.Mutex
	touches map[string][]time.Time
	block   chan struct{}
	started chan struct{}
}

func newCountingStore() *countingStore {
	return &countingStore{touches: make(map[string][]time.Time)}
}

func (s *countingStore) Touch(ctx context.Context, token string, at time.Time) error {
	if s.started != nil {
		s.started <- struct{}{}
	}
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touches[token] = append(s.touches[token], at)
	return nil
}

func (s *countingStore) LastActivity(ctx context.Context, token string) (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	times, ok := s.touches[token]
	if !ok || len(times) == 0 {
		return time.Time{}, activity.ErrNotTracked
	}
	return times[len(times)-1], nil
}

func (s *countingStore) Forget(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.touches, token)
	return nil
}

func (s *countingStore) count(token string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.touches[token])
}

func TestRecorderRecord(t *testing.T) {
	t.Run("persists touch with capture time", func(t *testing.T) {
		store := newCountingStore()
		now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
		rec := activity.NewRecorder(store,
			activity.WithClock(func() time.Time { return now }),
		)

		rec.Record("tok-1")
		require.NoError(t, rec.Close())

		got, err := store.LastActivity(context.Background(), "tok-1")
		require.NoError(t, err)
		assert.Equal(t, now, got)
	})

	t.Run("deduplicates touches inside threshold", func(t *testing.T) {
		store := newCountingStore()
		var mu sync.Mutex
		now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
		clock := func() time.Time {
			mu.Lock()
			defer mu.Unlock()
			return now
		}
		advance := func(d time.Duration) {
			mu.Lock()
			now = now.Add(d)
			mu.Unlock()
		}

		rec := activity.NewRecorder(store,
			activity.WithThreshold(time.Minute),
			activity.WithClock(clock),
		)

		rec.Record("tok-1")
		rec.Record("tok-1")
		advance(30 * time.Second)
		rec.Record("tok-1")
		require.NoError(t, rec.Close())

		assert.Equal(t, 1, store.count("tok-1"))
	})

	t.Run("persists again after threshold elapses", func(t *testing.T) {
		store := newCountingStore()
		var mu sync.Mutex
		now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
		clock := func() time.Time {
			mu.Lock()
			defer mu.Unlock()
			return now
		}

		rec := activity.NewRecorder(store,
			activity.WithThreshold(time.Minute),
			activity.WithClock(clock),
		)

		rec.Record("tok-1")
		mu.Lock()
		now = now.Add(time.Minute)
		mu.Unlock()
		rec.Record("tok-1")
		require.NoError(t, rec.Close())

		assert.Equal(t, 2, store.count("tok-1"))
	})

	t.Run("zero threshold disables deduplication", func(t *testing.T) {
		store := newCountingStore()
		rec := activity.NewRecorder(store, activity.WithThreshold(0))

		rec.Record("tok-1")
		rec.Record("tok-1")
		rec.Record("tok-1")
		require.NoError(t, rec.Close())

		assert.Equal(t, 3, store.count("tok-1"))
	})

	t.Run("empty token ignored", func(t *testing.T) {
		store := newCountingStore()
		rec := activity.NewRecorder(store)

		rec.Record("")
		require.NoError(t, rec.Close())

		assert.Equal(t, 0, store.count(""))
	})

	t.Run("separate tokens tracked independently", func(t *testing.T) {
		store := newCountingStore()
		rec := activity.NewRecorder(store, activity.WithThreshold(time.Minute))

		rec.Record("tok-a")
		rec.Record("tok-b")
		require.NoError(t, rec.Close())

		assert.Equal(t, 1, store.count("tok-a"))
		assert.Equal(t, 1, store.count("tok-b"))
	})
}

func TestRecorderBackpressure(t *testing.T) {
	t.Run("drops touches when queue is full", func(t *testing.T) {
		store := newCountingStore()
		store.block = make(chan struct{})
		store.started = make(chan struct{}, 3)

		rec := activity.NewRecorder(store,
			activity.WithThreshold(0),
			activity.WithBuffer(1),
		)

		rec.Record("tok-a")
		<-store.started // worker is now blocked inside Touch, queue empty

		rec.Record("tok-b") // fills the single buffer slot
		rec.Record("tok-c") // queue full, dropped

		close(store.block)
		require.NoError(t, rec.Close())

		assert.Equal(t, 1, store.count("tok-a"))
		assert.Equal(t, 1, store.count("tok-b"))
		assert.Equal(t, 0, store.count("tok-c"))
	})
}

func TestRecorderClose(t *testing.T) {
	t.Run("drains queued touches", func(t *testing.T) {
		store := newCountingStore()
		rec := activity.NewRecorder(store, activity.WithThreshold(0))

		for _, token := range []string{"a", "b", "c", "d", "e"} {
			rec.Record(token)
		}
		require.NoError(t, rec.Close())

		for _, token := range []string{"a", "b", "c", "d", "e"} {
			assert.Equal(t, 1, store.count(token), "token %s must be flushed on close", token)
		}
	})

	t.Run("close is idempotent", func(t *testing.T) {
		rec := activity.NewRecorder(newCountingStore())
		require.NoError(t, rec.Close())
		require.NoError(t, rec.Close())
	})
}
