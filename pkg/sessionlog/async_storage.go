package sessionlog

import (
	"context"
	"sync"
	"time"
)

// AsyncOptions tunes the batching writer. Zero fields fall back to defaults
// chosen for typical session event volumes.
type AsyncOptions struct {
	// BufferSize is the queue capacity between Store callers and the worker.
	BufferSize int

	// BatchSize is the target number of events per bulk insert.
	BatchSize int

	// BatchTimeout bounds how long a partial batch may wait before flushing.
	BatchTimeout time.Duration

	// StorageTimeout bounds each bulk insert.
	StorageTimeout time.Duration
}

// AsyncStorage batches events in memory and flushes them to a BatchWriter
// from a background worker, so hot paths do not pay per-event storage I/O.
// Store still reports the batch outcome to its caller.
type AsyncStorage struct {
	batch     BatchWriter
	eventChan chan pendingEvent
	done      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once
	options   AsyncOptions
}

type pendingEvent struct {
	event  Event
	result chan error
}

// NewAsyncStorage creates a batching writer over bw and starts its worker.
// The returned close function drains queued events; call it on shutdown so
// no recorded history is lost.
func NewAsyncStorage(bw BatchWriter, opts AsyncOptions) (*AsyncStorage, func(context.Context) error) {
	if bw == nil {
		panic("sessionlog: batch writer cannot be nil")
	}

	if opts.BufferSize == 0 {
		opts.BufferSize = 1000
	}
	if opts.BatchSize == 0 {
		opts.BatchSize = 100
	}
	if opts.BatchTimeout == 0 {
		opts.BatchTimeout = 100 * time.Millisecond
	}
	if opts.StorageTimeout == 0 {
		opts.StorageTimeout = 5 * time.Second
	}

	s := &AsyncStorage{
		batch:     bw,
		eventChan: make(chan pendingEvent, opts.BufferSize),
		done:      make(chan struct{}),
		stopped:   make(chan struct{}),
		options:   opts,
	}

	go s.worker()

	return s, s.Close
}

// Store queues the event and waits for its batch to be written. When the
// buffer is full the event is written synchronously instead, trading latency
// for completeness of the trail.
func (s *AsyncStorage) Store(ctx context.Context, event Event) error {
	select {
	case <-s.done:
		return ErrStorageNotAvailable
	default:
	}

	result := make(chan error, 1)

	select {
	case s.eventChan <- pendingEvent{event: event, result: result}:
		select {
		case err := <-result:
			return err
		case <-ctx.Done():
			return ctx.Err()
		case <-s.stopped:
			return ErrStorageNotAvailable
		}
	case <-ctx.Done():
		return ctx.Err()
	case <-s.done:
		return ErrStorageNotAvailable
	default:
		return s.batch.StoreBatch(ctx, []Event{event})
	}
}

func (s *AsyncStorage) worker() {
	defer close(s.stopped)

	events := make([]Event, 0, s.options.BatchSize)
	results := make([]chan error, 0, s.options.BatchSize)

	ticker := time.NewTicker(s.options.BatchTimeout)
	defer ticker.Stop()

	// Flush runs on a fresh background context so a cancelled caller cannot
	// abort a batch that carries other callers' events.
	flush := func() {
		if len(events) == 0 {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), s.options.StorageTimeout)
		err := s.batch.StoreBatch(ctx, events)
		cancel()

		for _, result := range results {
			select {
			case result <- err:
			default:
			}
		}

		events = events[:0]
		results = results[:0]
	}

	for {
		select {
		case p := <-s.eventChan:
			events = append(events, p.event)
			results = append(results, p.result)
			if len(events) >= s.options.BatchSize {
				flush()
			}

		case <-ticker.C:
			flush()

		case <-s.done:
			// Drain queued events so shutdown loses nothing.
			for {
				select {
				case p := <-s.eventChan:
					events = append(events, p.event)
					results = append(results, p.result)
				default:
					flush()
					return
				}
			}
		}
	}
}

// Close stops the worker after draining queued events. The context bounds
// how long shutdown may take; it is safe to call more than once.
func (s *AsyncStorage) Close(ctx context.Context) error {
	s.closeOnce.Do(func() {
		close(s.done)
	})

	select {
	case <-s.stopped:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

var _ Writer = (*AsyncStorage)(nil)
