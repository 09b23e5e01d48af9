package notify

import (
	"context"
	"time"
)

// Notifier delivers session lifecycle notices to the user. Implementations
// must be safe for concurrent use.
type Notifier interface {
	// NotifyWarning tells the user their session is about to expire.
	NotifyWarning(ctx context.Context, notice WarningNotice) error

	// NotifyTimeout tells the user their session was ended for inactivity.
	NotifyTimeout(ctx context.Context, notice TimeoutNotice) error
}

// WarningNotice carries the data for an "about to expire" notice.
type WarningNotice struct {
	// Email is the recipient address. Email-based notifiers skip notices
	// without one.
	Email string

	// UserName is the display name used in salutations, optional.
	UserName string

	// SessionID identifies the session the notice is about.
	SessionID string

	// Remaining is the time left until the session expires.
	Remaining time.Duration
}

// TimeoutNotice carries the data for a "signed out" notice.
type TimeoutNotice struct {
	// Email is the recipient address. Email-based notifiers skip notices
	// without one.
	Email string

	// UserName is the display name used in salutations, optional.
	UserName string

	// SessionID identifies the session that ended.
	SessionID string

	// LastActivity is when the user was last seen, zero when unknown.
	LastActivity time.Time
}
