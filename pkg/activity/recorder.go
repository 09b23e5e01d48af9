package activity

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"
)

const (
	// DefaultThreshold is the minimum gap between persisted touches for the
	// same token. Touches inside the window are deduplicated.
	DefaultThreshold = time.Minute

	defaultBuffer = 1000

	// lastSeenPruneSize bounds the in-memory dedup map.
	lastSeenPruneSize = 8192

	flushTimeout = 5 * time.Second
)

// touch is one queued activity write.
type touch struct {
	token string
	at    time.Time
}

// Recorder batches activity writes off the request hot path. Record never
// blocks: updates flow through a buffered channel to a background worker,
// and repeat touches for the same token inside the threshold window are
// skipped entirely.
type Recorder struct {
	store     Store
	threshold time.Duration
	buffer    int
	clock     func() time.Time
	logger    *slog.Logger

	ch        chan touch
	done      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once

	mu       sync.Mutex
	lastSeen map[string]time.Time
}

// RecorderOption configures a Recorder during construction.
type RecorderOption func(*Recorder)

// WithThreshold sets the minimum gap between persisted touches per token.
// Zero disables deduplication; negative values are ignored.
func WithThreshold(d time.Duration) RecorderOption {
	return func(r *Recorder) {
		if d >= 0 {
			r.threshold = d
		}
	}
}

// WithBuffer sets the queue capacity between Record and the worker.
func WithBuffer(n int) RecorderOption {
	return func(r *Recorder) {
		if n > 0 {
			r.buffer = n
		}
	}
}

// WithLogger sets the logger for dropped and failed writes.
func WithLogger(logger *slog.Logger) RecorderOption {
	return func(r *Recorder) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithClock replaces the wall clock for deterministic tests.
func WithClock(clock func() time.Time) RecorderOption {
	return func(r *Recorder) {
		if clock != nil {
			r.clock = clock
		}
	}
}

// NewRecorder creates a recorder writing to the given store and starts its
// background worker.
func NewRecorder(store Store, opts ...RecorderOption) *Recorder {
	r := &Recorder{
		store:     store,
		threshold: DefaultThreshold,
		buffer:    defaultBuffer,
		clock:     time.Now,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		done:      make(chan struct{}),
		stopped:   make(chan struct{}),
		lastSeen:  make(map[string]time.Time),
	}

	for _, opt := range opts {
		opt(r)
	}

	r.ch = make(chan touch, r.buffer)
	go r.worker()

	return r
}

// Record queues an activity touch for the token and returns immediately.
// Touches within the threshold window of the previous touch for the same
// token are dropped before they reach the queue.
func (r *Recorder) Record(token string) {
	if token == "" {
		return
	}
	now := r.clock()

	r.mu.Lock()
	if last, ok := r.lastSeen[token]; ok && now.Sub(last) < r.threshold {
		r.mu.Unlock()
		return
	}
	r.lastSeen[token] = now
	if len(r.lastSeen) > lastSeenPruneSize {
		cutoff := now.Add(-r.threshold)
		for tok, at := range r.lastSeen {
			if at.Before(cutoff) {
				delete(r.lastSeen, tok)
			}
		}
	}
	r.mu.Unlock()

	select {
	case r.ch <- touch{token: token, at: now}:
	default:
		// Queue full, drop the update rather than block the hot path.
		r.logger.Debug("activity queue full, touch dropped")
	}
}

// Close stops the worker after draining queued touches. It blocks until the
// drain completes and is safe to call more than once.
func (r *Recorder) Close() error {
	r.closeOnce.Do(func() {
		close(r.done)
	})
	<-r.stopped
	return nil
}

// worker persists queued touches and drains the queue on shutdown.
func (r *Recorder) worker() {
	defer close(r.stopped)

	for {
		select {
		case t := <-r.ch:
			r.flush(t)
		case <-r.done:
			for {
				select {
				case t := <-r.ch:
					r.flush(t)
				default:
					return
				}
			}
		}
	}
}

func (r *Recorder) flush(t touch) {
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()

	if err := r.store.Touch(ctx, t.token, t.at); err != nil {
		r.logger.Error("failed to record activity", slog.Any("error", err))
	}
}
