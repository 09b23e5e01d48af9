package authflow

import (
	"time"

	"github.com/google/uuid"
)

// User is the account object handed back by the auth backend.
type User struct {
	ID         uuid.UUID
	Email      string
	Name       string // Display name (optional)
	IsVerified bool
	CreatedAt  time.Time
}

// Session is the authenticated session handed back by the auth backend.
// Token doubles as the supervision key for the inactivity watchdog.
type Session struct {
	Token     string
	UserID    uuid.UUID
	ExpiresAt time.Time
	CreatedAt time.Time
}

// IsExpired reports whether the session's absolute expiry has passed. A zero
// ExpiresAt means the backend did not set one and the session never expires
// on its own.
func (s Session) IsExpired() bool {
	return !s.ExpiresAt.IsZero() && time.Now().After(s.ExpiresAt)
}
