package sessionlog_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionguard/pkg/sessionlog"
)

func seedEvents(t *testing.T, s *sessionlog.MemoryStorage) {
	t.Helper()
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	events := []sessionlog.Event{
		{ID: "1", SessionID: "sess-a", UserID: "user-1", Action: sessionlog.ActionLogin, Source: "web", CreatedAt: base},
		{ID: "2", SessionID: "sess-a", UserID: "user-1", Action: sessionlog.ActionWarning, Source: "watchdog", CreatedAt: base.Add(10 * time.Minute)},
		{ID: "3", SessionID: "sess-a", UserID: "user-1", Action: sessionlog.ActionTimeout, Source: "watchdog", CreatedAt: base.Add(15 * time.Minute)},
		{ID: "4", SessionID: "sess-b", UserID: "user-2", Action: sessionlog.ActionLogin, Source: "web", CreatedAt: base.Add(5 * time.Minute)},
		{ID: "5", SessionID: "sess-b", UserID: "user-2", Action: sessionlog.ActionLogout, Source: "web", CreatedAt: base.Add(30 * time.Minute)},
	}
	require.NoError(t, s.StoreBatch(context.Background(), events))
}

func ids(events []sessionlog.Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.ID
	}
	return out
}

func TestMemoryStorage_Store(t *testing.T) {
	t.Parallel()

	t.Run("stores valid event", func(t *testing.T) {
		t.Parallel()
		s := sessionlog.NewMemoryStorage()

		err := s.Store(context.Background(), sessionlog.Event{
			ID:     "e1",
			Action: sessionlog.ActionLogin,
		})
		require.NoError(t, err)
		assert.Equal(t, 1, s.Len())
	})

	t.Run("rejects event without action", func(t *testing.T) {
		t.Parallel()
		s := sessionlog.NewMemoryStorage()

		err := s.Store(context.Background(), sessionlog.Event{ID: "e1"})
		require.Error(t, err)
		assert.ErrorIs(t, err, sessionlog.ErrEventValidation)
		assert.Equal(t, 0, s.Len())
	})

	t.Run("isolates stored metadata from caller", func(t *testing.T) {
		t.Parallel()
		s := sessionlog.NewMemoryStorage()

		metadata := map[string]any{"ip": "10.0.0.1"}
		require.NoError(t, s.Store(context.Background(), sessionlog.Event{
			ID:       "e1",
			Action:   sessionlog.ActionLogin,
			Metadata: metadata,
		}))

		metadata["ip"] = "changed"

		events, err := s.Query(context.Background(), sessionlog.Criteria{})
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, "10.0.0.1", events[0].Metadata["ip"])
	})
}

func TestMemoryStorage_Query(t *testing.T) {
	t.Parallel()

	t.Run("returns newest first", func(t *testing.T) {
		t.Parallel()
		s := sessionlog.NewMemoryStorage()
		seedEvents(t, s)

		events, err := s.Query(context.Background(), sessionlog.Criteria{})
		require.NoError(t, err)
		assert.Equal(t, []string{"5", "3", "2", "4", "1"}, ids(events))
	})

	t.Run("filters by session", func(t *testing.T) {
		t.Parallel()
		s := sessionlog.NewMemoryStorage()
		seedEvents(t, s)

		events, err := s.Query(context.Background(), sessionlog.Criteria{SessionID: "sess-a"})
		require.NoError(t, err)
		assert.Equal(t, []string{"3", "2", "1"}, ids(events))
	})

	t.Run("filters by user", func(t *testing.T) {
		t.Parallel()
		s := sessionlog.NewMemoryStorage()
		seedEvents(t, s)

		events, err := s.Query(context.Background(), sessionlog.Criteria{UserID: "user-2"})
		require.NoError(t, err)
		assert.Equal(t, []string{"5", "4"}, ids(events))
	})

	t.Run("filters by actions", func(t *testing.T) {
		t.Parallel()
		s := sessionlog.NewMemoryStorage()
		seedEvents(t, s)

		events, err := s.Query(context.Background(), sessionlog.Criteria{
			Actions: []sessionlog.Action{sessionlog.ActionWarning, sessionlog.ActionTimeout},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"3", "2"}, ids(events))
	})

	t.Run("filters by source", func(t *testing.T) {
		t.Parallel()
		s := sessionlog.NewMemoryStorage()
		seedEvents(t, s)

		events, err := s.Query(context.Background(), sessionlog.Criteria{Source: "watchdog"})
		require.NoError(t, err)
		assert.Equal(t, []string{"3", "2"}, ids(events))
	})

	t.Run("time range is from-inclusive to-exclusive", func(t *testing.T) {
		t.Parallel()
		s := sessionlog.NewMemoryStorage()
		seedEvents(t, s)

		base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
		events, err := s.Query(context.Background(), sessionlog.Criteria{
			From: base.Add(10 * time.Minute),
			To:   base.Add(30 * time.Minute),
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"3", "2"}, ids(events))
	})

	t.Run("applies offset then limit", func(t *testing.T) {
		t.Parallel()
		s := sessionlog.NewMemoryStorage()
		seedEvents(t, s)

		events, err := s.Query(context.Background(), sessionlog.Criteria{Offset: 1, Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, []string{"3", "2"}, ids(events))
	})

	t.Run("offset beyond results returns empty", func(t *testing.T) {
		t.Parallel()
		s := sessionlog.NewMemoryStorage()
		seedEvents(t, s)

		events, err := s.Query(context.Background(), sessionlog.Criteria{Offset: 100})
		require.NoError(t, err)
		assert.Empty(t, events)
	})
}

func TestMemoryStorage_Count(t *testing.T) {
	t.Parallel()

	s := sessionlog.NewMemoryStorage()
	seedEvents(t, s)

	n, err := s.Count(context.Background(), sessionlog.Criteria{SessionID: "sess-a"})
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	n, err = s.Count(context.Background(), sessionlog.Criteria{})
	require.NoError(t, err)
	assert.EqualValues(t, 5, n)
}

func TestMemoryStorage_StoreBatch(t *testing.T) {
	t.Parallel()

	t.Run("rejects batch containing invalid event", func(t *testing.T) {
		t.Parallel()
		s := sessionlog.NewMemoryStorage()

		err := s.StoreBatch(context.Background(), []sessionlog.Event{
			{ID: "1", Action: sessionlog.ActionLogin},
			{ID: "2"},
		})
		require.Error(t, err)
		assert.Equal(t, 0, s.Len())
	})
}
