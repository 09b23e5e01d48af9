package activity

import (
	"context"
	"time"
)

// Store persists the last-activity timestamp per session token. It is the
// shared source of truth that lets several processes observe activity
// recorded by any one of them.
type Store interface {
	// Touch records activity for a session token at the given time.
	Touch(ctx context.Context, token string, at time.Time) error

	// LastActivity returns the most recent activity time for a token.
	// Returns ErrNotTracked when the token has no recorded activity.
	LastActivity(ctx context.Context, token string) (time.Time, error)

	// Forget removes all recorded activity for a token.
	Forget(ctx context.Context, token string) error
}
