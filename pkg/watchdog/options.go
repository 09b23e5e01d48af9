package watchdog

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/sessionguard/pkg/activity"
	"github.com/dmitrymomot/sessionguard/pkg/inactivity"
	"github.com/dmitrymomot/sessionguard/pkg/notify"
	"github.com/dmitrymomot/sessionguard/pkg/sessionlog"
)

// Option configures a Watchdog during construction.
type Option func(*Watchdog)

// WithConfig applies the full configuration: monitor thresholds for every
// watched session plus the sync cadence and event buffer.
func WithConfig(cfg Config) Option {
	return func(w *Watchdog) {
		w.monitorOpts = append(w.monitorOpts, inactivity.WithConfig(cfg.monitorConfig()))
		if cfg.SyncInterval > 0 {
			w.syncInterval = cfg.SyncInterval
		}
		if cfg.EventBuffer > 0 {
			w.eventBuffer = cfg.EventBuffer
		}
	}
}

// WithMonitorOptions forwards options to every monitor the watchdog creates,
// e.g. inactivity.WithTimeout.
func WithMonitorOptions(opts ...inactivity.Option) Option {
	return func(w *Watchdog) {
		w.monitorOpts = append(w.monitorOpts, opts...)
	}
}

// WithRecorderOptions forwards options to the internal activity recorder,
// e.g. activity.WithThreshold.
func WithRecorderOptions(opts ...activity.RecorderOption) Option {
	return func(w *Watchdog) {
		w.recorderOpts = append(w.recorderOpts, opts...)
	}
}

// WithSyncInterval sets how often local monitors pull fresh timestamps from
// the shared activity store.
func WithSyncInterval(d time.Duration) Option {
	return func(w *Watchdog) {
		if d > 0 {
			w.syncInterval = d
		}
	}
}

// WithEventBuffer sets the per-subscriber event channel capacity.
func WithEventBuffer(n int) Option {
	return func(w *Watchdog) {
		if n > 0 {
			w.eventBuffer = n
		}
	}
}

// WithLogger sets the logger for supervision diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watchdog) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithClock replaces the wall clock for deterministic tests.
func WithClock(clock func() time.Time) Option {
	return func(w *Watchdog) {
		if clock != nil {
			w.clock = clock
		}
	}
}

// WithNotifier delivers warning and timeout notices through the given
// notifier. The resolver maps a session token to its recipient; a nil
// resolver sends notices with the session token only, and a resolver
// returning false suppresses the notice for that session.
func WithNotifier(notifier notify.Notifier, resolve RecipientResolver) Option {
	return func(w *Watchdog) {
		w.notifier = notifier
		w.recipient = resolve
	}
}

// WithSessionLog records warning, timeout, and resume transitions to the
// session event trail.
func WithSessionLog(trail *sessionlog.Logger) Option {
	return func(w *Watchdog) {
		w.trail = trail
	}
}
