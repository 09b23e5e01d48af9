package sessionlog_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionguard/pkg/sessionlog"
)

// captureBatchWriter records every batch it receives.
type captureBatchWriter struct {
	mu      sync.Mutex
	batches [][]sessionlog.Event
	err     error
}

func (w *captureBatchWriter) StoreBatch(ctx context.Context, events []sessionlog.Event) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	batch := make([]sessionlog.Event, len(events))
	copy(batch, events)
	w.batches = append(w.batches, batch)
	return nil
}

func (w *captureBatchWriter) total() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	n := 0
	for _, b := range w.batches {
		n += len(b)
	}
	return n
}

func TestNewAsyncStorage(t *testing.T) {
	t.Parallel()

	t.Run("panics with nil batch writer", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() {
			sessionlog.NewAsyncStorage(nil, sessionlog.AsyncOptions{})
		})
	})
}

func TestAsyncStorage_Store(t *testing.T) {
	t.Parallel()

	t.Run("flushes on batch timeout", func(t *testing.T) {
		t.Parallel()
		writer := &captureBatchWriter{}
		async, closeFn := sessionlog.NewAsyncStorage(writer, sessionlog.AsyncOptions{
			BatchSize:    100,
			BatchTimeout: 20 * time.Millisecond,
		})
		defer closeFn(context.Background())

		err := async.Store(context.Background(), sessionlog.Event{
			ID:     "e1",
			Action: sessionlog.ActionLogin,
		})

		require.NoError(t, err)
		assert.Equal(t, 1, writer.total())
	})

	t.Run("store reports batch write failure", func(t *testing.T) {
		t.Parallel()
		writer := &captureBatchWriter{err: assert.AnError}
		async, closeFn := sessionlog.NewAsyncStorage(writer, sessionlog.AsyncOptions{
			BatchTimeout: 10 * time.Millisecond,
		})
		defer closeFn(context.Background())

		err := async.Store(context.Background(), sessionlog.Event{
			ID:     "e1",
			Action: sessionlog.ActionLogin,
		})

		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("concurrent stores all reach the writer", func(t *testing.T) {
		t.Parallel()
		writer := &captureBatchWriter{}
		async, closeFn := sessionlog.NewAsyncStorage(writer, sessionlog.AsyncOptions{
			BatchSize:    5,
			BatchTimeout: 10 * time.Millisecond,
		})

		const events = 20
		var wg sync.WaitGroup
		for i := 0; i < events; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				err := async.Store(context.Background(), sessionlog.Event{
					ID:     "e",
					Action: sessionlog.ActionExtend,
				})
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		require.NoError(t, closeFn(context.Background()))
		assert.Equal(t, events, writer.total())
	})
}

func TestAsyncStorage_Close(t *testing.T) {
	t.Parallel()

	t.Run("store after close reports unavailable", func(t *testing.T) {
		t.Parallel()
		writer := &captureBatchWriter{}
		async, closeFn := sessionlog.NewAsyncStorage(writer, sessionlog.AsyncOptions{})
		require.NoError(t, closeFn(context.Background()))

		err := async.Store(context.Background(), sessionlog.Event{
			ID:     "e1",
			Action: sessionlog.ActionLogin,
		})
		assert.ErrorIs(t, err, sessionlog.ErrStorageNotAvailable)
	})
}
