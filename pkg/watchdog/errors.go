package watchdog

import "errors"

var (
	// ErrStoreNil is returned when New is called without an activity store.
	ErrStoreNil = errors.New("watchdog: activity store cannot be nil")

	// ErrEmptyToken is returned when an operation receives an empty session token.
	ErrEmptyToken = errors.New("watchdog: session token cannot be empty")

	// ErrNotWatched is returned when an operation targets a token that is not
	// under supervision.
	ErrNotWatched = errors.New("watchdog: session is not watched")

	// ErrAlreadyStarted is returned when Start is called on a running watchdog.
	ErrAlreadyStarted = errors.New("watchdog: already started")

	// ErrNotStarted is returned when Stop is called before Start.
	ErrNotStarted = errors.New("watchdog: not started")

	// ErrNoToken is returned by resolvers when the request carries no session token.
	ErrNoToken = errors.New("watchdog: no session token in request")

	// ErrInvalidSyncInterval is returned when the store sync interval is not positive.
	ErrInvalidSyncInterval = errors.New("watchdog: sync interval must be positive")
)
