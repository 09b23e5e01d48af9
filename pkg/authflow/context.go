package authflow

import (
	"context"

	"github.com/google/uuid"
)

type sessionContextKey struct{}

// WithSession adds a session to the context.
func WithSession(ctx context.Context, session *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, session)
}

// SessionFromContext retrieves a session from the context.
func SessionFromContext(ctx context.Context) (*Session, bool) {
	session, ok := ctx.Value(sessionContextKey{}).(*Session)
	return session, ok
}

// MustSessionFromContext retrieves a session from the context or panics.
func MustSessionFromContext(ctx context.Context) *Session {
	session, ok := SessionFromContext(ctx)
	if !ok {
		panic("authflow: session not found in context")
	}
	return session
}

// UserIDFromContext retrieves the user ID from the session in context.
func UserIDFromContext(ctx context.Context) (string, bool) {
	session, ok := SessionFromContext(ctx)
	if !ok || session.UserID == uuid.Nil {
		return "", false
	}
	return session.UserID.String(), true
}

// TokenFromContext retrieves the session token from the context.
func TokenFromContext(ctx context.Context) (string, bool) {
	session, ok := SessionFromContext(ctx)
	if !ok || session.Token == "" {
		return "", false
	}
	return session.Token, true
}
