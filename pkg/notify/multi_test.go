package notify_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionguard/pkg/notify"
)

// countingNotifier counts calls and optionally fails them.
type countingNotifier struct {
	warnings int
	timeouts int
	err      error
}

func (n *countingNotifier) NotifyWarning(ctx context.Context, notice notify.WarningNotice) error {
	n.warnings++
	return n.err
}

func (n *countingNotifier) NotifyTimeout(ctx context.Context, notice notify.TimeoutNotice) error {
	n.timeouts++
	return n.err
}

func TestMulti(t *testing.T) {
	t.Parallel()

	t.Run("delivers to every notifier", func(t *testing.T) {
		t.Parallel()
		first := &countingNotifier{}
		second := &countingNotifier{}
		multi := notify.NewMulti(first, nil, second)

		require.NoError(t, multi.NotifyWarning(context.Background(), notify.WarningNotice{}))
		require.NoError(t, multi.NotifyTimeout(context.Background(), notify.TimeoutNotice{}))

		assert.Equal(t, 1, first.warnings)
		assert.Equal(t, 1, first.timeouts)
		assert.Equal(t, 1, second.warnings)
		assert.Equal(t, 1, second.timeouts)
	})

	t.Run("failure does not stop remaining notifiers", func(t *testing.T) {
		t.Parallel()
		failing := &countingNotifier{err: errors.New("smtp down")}
		healthy := &countingNotifier{}
		multi := notify.NewMulti(failing, healthy)

		err := multi.NotifyTimeout(context.Background(), notify.TimeoutNotice{})
		require.Error(t, err)
		assert.Equal(t, 1, healthy.timeouts)
	})

	t.Run("empty multi is a no-op", func(t *testing.T) {
		t.Parallel()
		multi := notify.NewMulti()
		assert.NoError(t, multi.NotifyWarning(context.Background(), notify.WarningNotice{}))
	})
}

func TestLogNotifier(t *testing.T) {
	t.Parallel()

	notifier := notify.NewLogNotifier(nil)

	assert.NoError(t, notifier.NotifyWarning(context.Background(), notify.WarningNotice{
		SessionID: "sess-1",
		Remaining: time.Minute,
	}))
	assert.NoError(t, notifier.NotifyTimeout(context.Background(), notify.TimeoutNotice{
		SessionID: "sess-1",
	}))
}
