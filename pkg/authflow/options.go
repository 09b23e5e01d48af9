package authflow

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/sessionguard/pkg/sessionlog"
	"github.com/dmitrymomot/sessionguard/pkg/watchdog"
)

// Option configures a Flow during construction.
type Option func(*Flow)

// WithWatchdog binds sessions to inactivity supervision: login watches the
// new session, logout unwatches it.
func WithWatchdog(wd *watchdog.Watchdog) Option {
	return func(f *Flow) {
		f.wd = wd
	}
}

// WithSessionLog records login, logout, registration, and account recovery
// transitions to the session event trail.
func WithSessionLog(trail *sessionlog.Logger) Option {
	return func(f *Flow) {
		f.trail = trail
	}
}

// WithLogger sets the logger for flow diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Flow) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithAfterLogin sets a hook that runs after a successful login, e.g. to
// warm caches or send a new-device notice. Hooks run asynchronously on a
// bounded context; failures are logged and never fail the login.
func WithAfterLogin(fn func(ctx context.Context, session *Session) error) Option {
	return func(f *Flow) {
		f.afterLogin = fn
	}
}

// WithAfterLogout sets a hook that runs after a successful logout. Same
// execution rules as WithAfterLogin.
func WithAfterLogout(fn func(ctx context.Context, token string) error) Option {
	return func(f *Flow) {
		f.afterLogout = fn
	}
}
