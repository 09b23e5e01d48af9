package inactivity

import (
	"log/slog"
	"time"
)

// RecordActivity resets the inactivity clock to the full timeout and clears
// any pending warning state. If the monitor had warned or already crossed
// the timeout, OnActivity fires to signal the session resumed.
func (m *Monitor) RecordActivity() {
	m.mu.Lock()
	now := m.clock()
	resumed := m.hasWarned || m.timedOut || m.remainingAt(now) == 0
	m.lastActivity = now
	m.hasWarned = false
	m.timedOut = false
	cb := m.callbacks.OnActivity
	m.mu.Unlock()

	if resumed {
		m.logger.Debug("activity resumed session")
		if cb != nil {
			m.invoke("on_activity", func() { cb() })
		}
	}
}

// UpdateActivity is an alias for RecordActivity kept for callers that
// phrase activity tracking as an update.
func (m *Monitor) UpdateActivity() {
	m.RecordActivity()
}

// RecordActivityAt applies an activity timestamp observed elsewhere, such as
// a request that landed on another instance sharing the activity store.
// Timestamps at or before the current last activity are ignored. When the
// timestamp moves the session back inside the timeout it clears warning
// state and fires OnActivity exactly like RecordActivity; a timestamp that
// is newer but still past the timeout only advances the clock, so the
// episode's timeout still fires at most once.
func (m *Monitor) RecordActivityAt(at time.Time) {
	m.mu.Lock()
	if at.IsZero() || !at.After(m.lastActivity) {
		m.mu.Unlock()
		return
	}
	now := m.clock()
	interrupted := m.hasWarned || m.timedOut || m.remainingAt(now) == 0
	m.lastActivity = at

	var cb func()
	resumed := false
	if m.remainingAt(now) > 0 {
		m.hasWarned = false
		m.timedOut = false
		resumed = interrupted
		cb = m.callbacks.OnActivity
	}
	m.mu.Unlock()

	if resumed {
		m.logger.Debug("activity resumed session")
		if cb != nil {
			m.invoke("on_activity", func() { cb() })
		}
	}
}

// ExtendSession resets the inactivity clock exactly like RecordActivity.
// It is a separate entry point for explicit "continue session" actions,
// which may diverge from passive activity detection in the future.
func (m *Monitor) ExtendSession() {
	m.RecordActivity()
}

// TimeRemaining reports how long until the inactivity timeout, floored at
// zero. Consistent at any point between polls.
func (m *Monitor) TimeRemaining() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.remainingAt(m.clock())
}

// TimeUntilWarning reports how long until the warning window opens, floored
// at zero.
func (m *Monitor) TimeUntilWarning() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	remaining := m.remainingAt(m.clock())
	if remaining <= m.warningLead {
		return 0
	}
	return remaining - m.warningLead
}

// ShouldShowWarning reports whether the session is inside the warning
// window: some time remains and it is no more than the warning lead. False
// both before the window and once the timeout has fully elapsed.
func (m *Monitor) ShouldShowWarning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	remaining := m.remainingAt(m.clock())
	return remaining > 0 && remaining <= m.warningLead
}

// Inactive reports whether the inactivity timeout has fully elapsed.
func (m *Monitor) Inactive() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.remainingAt(m.clock()) == 0
}

// Running reports whether the poll loop is active.
func (m *Monitor) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

// TriggerWarning forces an immediate OnWarning with the current remaining
// time, regardless of poll cadence. It does not consume the episode's
// automatic warning.
func (m *Monitor) TriggerWarning() {
	m.mu.Lock()
	remaining := m.remainingAt(m.clock())
	cb := m.callbacks.OnWarning
	m.mu.Unlock()

	m.logger.Info("inactivity warning triggered",
		slog.Duration("remaining", remaining))
	if cb != nil {
		m.invoke("on_warning", func() { cb(remaining) })
	}
}

// TriggerLogout forces an immediate OnTimeout regardless of elapsed time
// and latches the episode as timed out so the poll loop does not fire it
// again before the next activity reset.
func (m *Monitor) TriggerLogout() {
	m.mu.Lock()
	m.timedOut = true
	cb := m.callbacks.OnTimeout
	m.mu.Unlock()

	m.logger.Info("inactivity logout triggered")
	if cb != nil {
		m.invoke("on_timeout", func() { cb() })
	}
}

// Status returns a point-in-time diagnostic snapshot.
func (m *Monitor) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	remaining := m.remainingAt(m.clock())

	var last string
	if !m.lastActivity.IsZero() {
		last = m.lastActivity.Format(time.RFC3339)
	}

	return Status{
		Active:        remaining > 0,
		Running:       m.running,
		HasWarned:     m.hasWarned,
		TimeRemaining: FormatRemaining(remaining),
		LastActivity:  last,
	}
}
