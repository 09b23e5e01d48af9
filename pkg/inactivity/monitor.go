package inactivity

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"
)

// Callbacks groups the optional notification handlers supplied to Start.
// Any nil handler is silently skipped.
type Callbacks struct {
	// OnWarning fires once per inactivity episode when the remaining time
	// enters the warning window. Receives the time left before logout.
	OnWarning func(remaining time.Duration)

	// OnTimeout fires once per inactivity episode when the full timeout
	// elapses without recorded activity.
	OnTimeout func()

	// OnActivity fires when activity is recorded after the monitor has
	// warned or timed out, signalling the session resumed.
	OnActivity func()
}

// Monitor tracks elapsed time since the last recorded user activity and
// raises warning and timeout notifications from a periodic poll loop.
//
// All methods are safe for concurrent use: the poll goroutine and callers
// share mutex-guarded state. Callbacks run synchronously on the poll tick
// but outside the monitor lock, so handlers may call back into the monitor.
type Monitor struct {
	mu sync.Mutex

	timeout      time.Duration
	warningLead  time.Duration
	pollInterval time.Duration

	clock  Clock
	logger *slog.Logger

	lastActivity time.Time
	hasWarned    bool
	timedOut     bool
	running      bool

	callbacks Callbacks
	stop      chan struct{}
}

// New creates a monitor with the default thresholds (24h timeout, 5m
// warning lead, 1m poll interval) unless overridden by options.
func New(opts ...Option) *Monitor {
	m := &Monitor{
		timeout:      DefaultTimeout,
		warningLead:  DefaultWarningLead,
		pollInterval: DefaultPollInterval,
		clock:        systemClock,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Start begins periodic evaluation with the given callbacks. The last
// activity timestamp is initialized to the current time unless activity was
// already recorded. Calling Start while running replaces the callbacks and
// restarts the poll loop without losing the last activity timestamp. The
// loop halts when ctx is cancelled or Stop is called.
func (m *Monitor) Start(ctx context.Context, cb Callbacks) {
	m.mu.Lock()
	if m.stop != nil {
		// Restart: cancel the previous loop so only one poller runs.
		close(m.stop)
	}
	stop := make(chan struct{})
	m.stop = stop
	m.callbacks = cb
	if m.lastActivity.IsZero() {
		m.lastActivity = m.clock()
	}
	m.running = true
	timeout, lead, interval := m.timeout, m.warningLead, m.pollInterval
	m.mu.Unlock()

	go m.poll(ctx, stop, interval)

	m.logger.Debug("inactivity monitor started",
		slog.Duration("timeout", timeout),
		slog.Duration("warning_lead", lead),
		slog.Duration("poll_interval", interval))
}

// Stop halts the poll loop and releases its timer. Safe to call in any
// lifecycle state: before Start, while running, or repeatedly.
func (m *Monitor) Stop() {
	m.mu.Lock()
	wasRunning := m.stop != nil
	if m.stop != nil {
		close(m.stop)
		m.stop = nil
	}
	m.running = false
	m.mu.Unlock()

	if wasRunning {
		m.logger.Debug("inactivity monitor stopped")
	}
}

// poll owns the ticker for one Start generation. It exits when its stop
// channel closes or the context is done, releasing the ticker on every path.
func (m *Monitor) poll(ctx context.Context, stop chan struct{}, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.halt(stop)
			return
		case <-stop:
			return
		case <-ticker.C:
			select {
			case <-stop:
				// A restart or Stop raced this tick.
				return
			default:
			}
			m.evaluate()
		}
	}
}

// halt clears the running state when the context ends the loop, unless a
// newer Start generation already replaced it.
func (m *Monitor) halt(stop chan struct{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stop == stop {
		m.stop = nil
		m.running = false
	}
}

// evaluate runs one poll step. At most one notification fires per tick:
// the timeout once the full duration has elapsed, otherwise the warning
// when the remaining time is inside the warning window. Each fires at most
// once per inactivity episode.
func (m *Monitor) evaluate() {
	m.mu.Lock()
	now := m.clock()
	remaining := m.remainingAt(now)

	var fire func()
	switch {
	case remaining == 0:
		if !m.timedOut {
			m.timedOut = true
			cb := m.callbacks.OnTimeout
			last := m.lastActivity
			fire = func() {
				m.logger.Info("session timed out from inactivity",
					slog.Time("last_activity", last))
				if cb != nil {
					m.invoke("on_timeout", func() { cb() })
				}
			}
		}
	case remaining <= m.warningLead:
		if !m.hasWarned {
			m.hasWarned = true
			cb := m.callbacks.OnWarning
			fire = func() {
				m.logger.Info("inactivity warning",
					slog.Duration("remaining", remaining))
				if cb != nil {
					m.invoke("on_warning", func() { cb(remaining) })
				}
			}
		}
	}
	m.mu.Unlock()

	if fire != nil {
		fire()
	}
}

// invoke shields the poll loop from panicking handlers so one failing
// callback cannot kill the timer.
func (m *Monitor) invoke(name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("inactivity callback panicked",
				slog.String("callback", name),
				slog.Any("panic", r))
		}
	}()
	fn()
}

// remainingAt computes the time left before the timeout, floored at zero.
// Until activity is first recorded the full timeout is reported. Callers
// must hold m.mu.
func (m *Monitor) remainingAt(now time.Time) time.Duration {
	if m.lastActivity.IsZero() {
		return m.timeout
	}
	elapsed := now.Sub(m.lastActivity)
	if elapsed >= m.timeout {
		return 0
	}
	return m.timeout - elapsed
}
