package inactivity

import (
	"log/slog"
	"time"
)

// Option configures a Monitor during construction.
type Option func(*Monitor)

// WithConfig applies all three thresholds at once.
// Non-positive values are ignored field by field so partial configs
// fall back to defaults instead of breaking the poll loop.
func WithConfig(cfg Config) Option {
	return func(m *Monitor) {
		if cfg.Timeout > 0 {
			m.timeout = cfg.Timeout
		}
		if cfg.WarningLead > 0 {
			m.warningLead = cfg.WarningLead
		}
		if cfg.PollInterval > 0 {
			m.pollInterval = cfg.PollInterval
		}
	}
}

// WithTimeout sets the allowed inactivity duration before automatic logout.
func WithTimeout(d time.Duration) Option {
	return func(m *Monitor) {
		if d > 0 {
			m.timeout = d
		}
	}
}

// WithWarningLead sets how long before the timeout the warning fires.
func WithWarningLead(d time.Duration) Option {
	return func(m *Monitor) {
		if d > 0 {
			m.warningLead = d
		}
	}
}

// WithPollInterval sets the cadence of the poll loop.
func WithPollInterval(d time.Duration) Option {
	return func(m *Monitor) {
		if d > 0 {
			m.pollInterval = d
		}
	}
}

// WithClock replaces the wall clock, letting tests advance simulated time
// instead of sleeping through real intervals.
func WithClock(clock Clock) Option {
	return func(m *Monitor) {
		if clock != nil {
			m.clock = clock
		}
	}
}

// WithLogger sets the logger used for lifecycle and callback diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Monitor) {
		if logger != nil {
			m.logger = logger
		}
	}
}
