// Package authflow orchestrates authentication journeys over an external
// auth backend: login, logout, registration, password reset, and email
// confirmation.
//
// The backend owns credentials and token issuance; this package owns
// everything around the call. It normalizes and validates input before the
// backend sees it, binds successful logins to the inactivity watchdog,
// writes the session trail, and runs optional hooks.
//
// # Usage
//
//	flow, err := authflow.NewFlow(backend,
//	    authflow.WithWatchdog(wd),
//	    authflow.WithSessionLog(trail),
//	)
//	if err != nil {
//	    return err
//	}
//
//	session, err := flow.Login(ctx, email, password)
//	if err != nil {
//	    return err
//	}
//	// session.Token is now under inactivity supervision.
//
//	if err := flow.Logout(ctx, session.Token); err != nil {
//	    return err
//	}
//
// Backend errors pass through unchanged, so callers can keep checking the
// backend's own sentinels with errors.Is. Errors minted here
// (ErrInvalidEmail, ErrEmptyPassword, ErrEmptyToken) cover input validation
// only.
//
// # Hooks
//
// After-login and after-logout hooks run asynchronously with a bounded
// context and panic recovery; a failing hook is logged and never fails the
// flow that fired it:
//
//	authflow.WithAfterLogin(func(ctx context.Context, s *authflow.Session) error {
//	    return warmDashboardCache(ctx, s.UserID)
//	})
//
// # Context Helpers
//
// WithSession and SessionFromContext carry the authenticated session
// through request scopes, typically set by HTTP middleware after resolving
// the token.
package authflow
