package logger_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/sessionguard/pkg/logger"
)

func TestError(t *testing.T) {
	t.Run("nil error returns empty attr", func(t *testing.T) {
		attr := logger.Error(nil)
		assert.Equal(t, slog.Attr{}, attr)
	})

	t.Run("non-nil error keyed as error", func(t *testing.T) {
		err := errors.New("boom")
		attr := logger.Error(err)
		assert.Equal(t, "error", attr.Key)
		assert.Equal(t, err, attr.Value.Any())
	})
}

func TestErrors(t *testing.T) {
	t.Run("all nil returns empty attr", func(t *testing.T) {
		attr := logger.Errors(nil, nil)
		assert.Equal(t, slog.Attr{}, attr)
	})

	t.Run("groups non-nil errors", func(t *testing.T) {
		attr := logger.Errors(errors.New("a"), nil, errors.New("b"))
		assert.Equal(t, "errors", attr.Key)
		assert.Len(t, attr.Value.Group(), 2)
	})
}

func TestIdentifierAttrs(t *testing.T) {
	t.Run("session id", func(t *testing.T) {
		attr := logger.SessionID("tok-1")
		assert.Equal(t, "session_id", attr.Key)
		assert.Equal(t, "tok-1", attr.Value.Any())
	})

	t.Run("nil session id returns empty attr", func(t *testing.T) {
		assert.Equal(t, slog.Attr{}, logger.SessionID(nil))
	})

	t.Run("user id", func(t *testing.T) {
		attr := logger.UserID(42)
		assert.Equal(t, "user_id", attr.Key)
		assert.Equal(t, int64(42), attr.Value.Int64())
	})

	t.Run("request id", func(t *testing.T) {
		attr := logger.RequestID("req-9")
		assert.Equal(t, "request_id", attr.Key)
	})
}

func TestDomainAttrs(t *testing.T) {
	t.Run("action", func(t *testing.T) {
		attr := logger.Action("session.timeout")
		assert.Equal(t, "action", attr.Key)
		assert.Equal(t, "session.timeout", attr.Value.String())
	})

	t.Run("remaining", func(t *testing.T) {
		attr := logger.Remaining(5 * time.Minute)
		assert.Equal(t, "remaining", attr.Key)
		assert.Equal(t, 5*time.Minute, attr.Value.Duration())
	})

	t.Run("last activity", func(t *testing.T) {
		now := time.Now()
		attr := logger.LastActivity(now)
		assert.Equal(t, "last_activity", attr.Key)
		assert.Equal(t, now, attr.Value.Time())
	})

	t.Run("component", func(t *testing.T) {
		attr := logger.Component("watchdog")
		assert.Equal(t, "component", attr.Key)
		assert.Equal(t, "watchdog", attr.Value.String())
	})

	t.Run("event", func(t *testing.T) {
		attr := logger.Event("warning")
		assert.Equal(t, "event", attr.Key)
	})

	t.Run("group", func(t *testing.T) {
		attr := logger.Group("session", logger.SessionID("s-1"))
		assert.Equal(t, "session", attr.Key)
		assert.Len(t, attr.Value.Group(), 1)
	})
}
