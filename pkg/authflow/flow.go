package authflow

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/sessionguard/pkg/logger"
	"github.com/dmitrymomot/sessionguard/pkg/sessionlog"
	"github.com/dmitrymomot/sessionguard/pkg/watchdog"
)

// hookTimeout bounds after-login and after-logout hooks, which run detached
// from the request context.
const hookTimeout = 10 * time.Second

// Flow orchestrates authentication journeys over an external backend:
// input is normalized and validated here, credentials are verified by the
// backend, and successful transitions bind the inactivity watchdog, write
// the session trail, and run the configured hooks.
type Flow struct {
	backend Backend
	wd      *watchdog.Watchdog
	trail   *sessionlog.Logger
	logger  *slog.Logger

	afterLogin  func(ctx context.Context, session *Session) error
	afterLogout func(ctx context.Context, token string) error
}

// NewFlow creates an authentication flow over the given backend.
func NewFlow(backend Backend, opts ...Option) (*Flow, error) {
	if backend == nil {
		return nil, ErrBackendNil
	}

	f := &Flow{
		backend: backend,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

// Login verifies credentials with the backend and places the new session
// under watchdog supervision. The backend's error is returned unchanged so
// its sentinels stay checkable.
func (f *Flow) Login(ctx context.Context, email, password string) (*Session, error) {
	email, err := cleanEmail(email)
	if err != nil {
		return nil, err
	}
	if password == "" {
		return nil, ErrEmptyPassword
	}

	session, err := f.backend.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if session == nil || session.Token == "" {
		return nil, ErrInvalidSession
	}

	if f.wd != nil {
		if err := f.wd.Watch(ctx, session.Token); err != nil {
			// The login itself succeeded; losing supervision is logged
			// rather than surfaced as a failed login.
			f.logger.Error("failed to watch session after login",
				logger.SessionID(session.Token),
				logger.Error(err),
				logger.Component("authflow"),
			)
		}
	}

	trailOpts := []sessionlog.EventOption{sessionlog.WithSession(session.Token)}
	if session.UserID != uuid.Nil {
		trailOpts = append(trailOpts, sessionlog.WithUser(session.UserID.String()))
	}
	f.logTrail(ctx, sessionlog.ActionLogin, trailOpts...)

	if f.afterLogin != nil {
		hook := f.afterLogin
		f.runHook("after_login", func(ctx context.Context) error {
			return hook(ctx, session)
		})
	}

	return session, nil
}

// Logout terminates the session with the backend and removes it from
// watchdog supervision.
func (f *Flow) Logout(ctx context.Context, token string) error {
	if token == "" {
		return ErrEmptyToken
	}

	if err := f.backend.Logout(ctx, token); err != nil {
		return err
	}

	if f.wd != nil {
		// Sessions established before the watchdog came up are not watched.
		_ = f.wd.Unwatch(token)
	}

	f.logTrail(ctx, sessionlog.ActionLogout, sessionlog.WithSession(token))

	if f.afterLogout != nil {
		hook := f.afterLogout
		f.runHook("after_logout", func(ctx context.Context) error {
			return hook(ctx, token)
		})
	}

	return nil
}

// Register creates a new account with the backend.
func (f *Flow) Register(ctx context.Context, email, password string) (*User, error) {
	email, err := cleanEmail(email)
	if err != nil {
		return nil, err
	}
	if password == "" {
		return nil, ErrEmptyPassword
	}

	user, err := f.backend.Register(ctx, email, password)
	if err != nil {
		return nil, err
	}

	trailOpts := []sessionlog.EventOption{sessionlog.WithMetadata("email", email)}
	if user != nil && user.ID != uuid.Nil {
		trailOpts = append(trailOpts, sessionlog.WithUser(user.ID.String()))
	}
	f.logTrail(ctx, sessionlog.ActionRegister, trailOpts...)

	return user, nil
}

// RequestPasswordReset starts the backend's password reset flow.
func (f *Flow) RequestPasswordReset(ctx context.Context, email string) error {
	email, err := cleanEmail(email)
	if err != nil {
		return err
	}

	if err := f.backend.RequestPasswordReset(ctx, email); err != nil {
		return err
	}

	f.logTrail(ctx, sessionlog.ActionResetRequested, sessionlog.WithMetadata("email", email))
	return nil
}

// ResetPassword completes the reset flow with the token from the reset link.
func (f *Flow) ResetPassword(ctx context.Context, token, newPassword string) error {
	if token == "" {
		return ErrEmptyToken
	}
	if newPassword == "" {
		return ErrEmptyPassword
	}

	if err := f.backend.ResetPassword(ctx, token, newPassword); err != nil {
		return err
	}

	f.logTrail(ctx, sessionlog.ActionResetCompleted)
	return nil
}

// ConfirmEmail verifies the account's address with the token from the
// confirmation link.
func (f *Flow) ConfirmEmail(ctx context.Context, token string) (*User, error) {
	if token == "" {
		return nil, ErrEmptyToken
	}

	user, err := f.backend.ConfirmEmail(ctx, token)
	if err != nil {
		return nil, err
	}

	var trailOpts []sessionlog.EventOption
	if user != nil && user.ID != uuid.Nil {
		trailOpts = append(trailOpts, sessionlog.WithUser(user.ID.String()))
	}
	f.logTrail(ctx, sessionlog.ActionEmailConfirmed, trailOpts...)

	return user, nil
}

// ResendConfirmation sends a fresh confirmation link for the account.
func (f *Flow) ResendConfirmation(ctx context.Context, email string) error {
	email, err := cleanEmail(email)
	if err != nil {
		return err
	}

	if err := f.backend.ResendConfirmation(ctx, email); err != nil {
		return err
	}

	f.logTrail(ctx, sessionlog.ActionConfirmationSent, sessionlog.WithMetadata("email", email))
	return nil
}

// logTrail writes one trail entry; trail failures are logged, never allowed
// to fail the flow that triggered them.
func (f *Flow) logTrail(ctx context.Context, action sessionlog.Action, opts ...sessionlog.EventOption) {
	if f.trail == nil {
		return
	}
	if err := f.trail.Log(ctx, action, opts...); err != nil {
		f.logger.Error("failed to record session event",
			logger.Action(string(action)),
			logger.Error(err),
			logger.Component("authflow"),
		)
	}
}

// runHook executes a hook on its own bounded context so a slow or panicking
// hook cannot affect the request that fired it.
func (f *Flow) runHook(name string, fn func(ctx context.Context) error) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				f.logger.Error("hook panicked",
					slog.String("hook", name),
					slog.Any("panic", r),
					logger.Component("authflow"),
				)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), hookTimeout)
		defer cancel()

		if err := fn(ctx); err != nil {
			f.logger.Error("hook failed",
				slog.String("hook", name),
				logger.Error(err),
				logger.Component("authflow"),
			)
		}
	}()
}
