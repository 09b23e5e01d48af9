package watchdog_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionguard/pkg/activity"
	"github.com/dmitrymomot/sessionguard/pkg/watchdog"
)

func doRequest(t *testing.T, handler http.Handler, method, path, token string) *httptest.ResponseRecorder {
	t.Helper()

	r := httptest.NewRequest(method, path, nil)
	if token != "" {
		r.AddCookie(&http.Cookie{Name: "sid", Value: token})
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, r)
	return rec
}

func decodeStatus(t *testing.T, rec *httptest.ResponseRecorder) watchdog.StatusResponse {
	t.Helper()

	var body watchdog.StatusResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestRouter(t *testing.T) {
	ctx := context.Background()

	t.Run("status without a token", func(t *testing.T) {
		wd, _ := newWatchdog(t, newFakeClock())
		router := wd.Router(watchdog.NewCookieResolver("sid"))

		rec := doRequest(t, router, http.MethodGet, "/status", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	})

	t.Run("status for an unwatched session", func(t *testing.T) {
		wd, _ := newWatchdog(t, newFakeClock())
		router := wd.Router(watchdog.NewCookieResolver("sid"))

		rec := doRequest(t, router, http.MethodGet, "/status", "stranger")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("status reports the supervision snapshot", func(t *testing.T) {
		clock := newFakeClock()
		wd, _ := newWatchdog(t, clock)
		require.NoError(t, wd.Watch(ctx, "token-1"))
		clock.Advance(30 * time.Minute)

		router := wd.Router(watchdog.NewCookieResolver("sid"))
		rec := doRequest(t, router, http.MethodGet, "/status", "token-1")
		require.Equal(t, http.StatusOK, rec.Code)

		body := decodeStatus(t, rec)
		assert.Equal(t, "token-1", body.Token)
		assert.True(t, body.Status.Active)
		assert.Equal(t, "30m", body.Status.TimeRemaining)
	})

	t.Run("extend restarts the inactivity clock", func(t *testing.T) {
		clock := newFakeClock()
		wd, store := newWatchdog(t, clock)
		require.NoError(t, wd.Watch(ctx, "token-1"))
		clock.Advance(45 * time.Minute)

		router := wd.Router(watchdog.NewCookieResolver("sid"))
		rec := doRequest(t, router, http.MethodPost, "/extend", "token-1")
		require.Equal(t, http.StatusOK, rec.Code)

		body := decodeStatus(t, rec)
		assert.Equal(t, "1h 0m", body.Status.TimeRemaining)

		at, err := store.LastActivity(ctx, "token-1")
		require.NoError(t, err)
		assert.True(t, at.Equal(clock.Now()))
	})

	t.Run("extend for an unwatched session", func(t *testing.T) {
		wd, _ := newWatchdog(t, newFakeClock())
		router := wd.Router(watchdog.NewCookieResolver("sid"))

		rec := doRequest(t, router, http.MethodPost, "/extend", "stranger")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("logout ends supervision", func(t *testing.T) {
		clock := newFakeClock()
		wd, store := newWatchdog(t, clock)
		require.NoError(t, store.Touch(ctx, "token-1", clock.Now()))
		require.NoError(t, wd.Watch(ctx, "token-1"))

		router := wd.Router(watchdog.NewCookieResolver("sid"))
		rec := doRequest(t, router, http.MethodPost, "/logout", "token-1")
		assert.Equal(t, http.StatusNoContent, rec.Code)

		assert.False(t, wd.Watching("token-1"))
		_, err := store.LastActivity(ctx, "token-1")
		assert.ErrorIs(t, err, activity.ErrNotTracked)
	})

	t.Run("logout without a token", func(t *testing.T) {
		wd, _ := newWatchdog(t, newFakeClock())
		router := wd.Router(watchdog.NewCookieResolver("sid"))

		rec := doRequest(t, router, http.MethodPost, "/logout", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("nil resolver defaults to the session cookie", func(t *testing.T) {
		clock := newFakeClock()
		wd, _ := newWatchdog(t, clock)
		require.NoError(t, wd.Watch(ctx, "token-1"))

		router := wd.Router(nil)
		rec := doRequest(t, router, http.MethodGet, "/status", "token-1")
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
