package activity

import "errors"

var (
	// ErrNotTracked is returned when a token has no recorded activity.
	ErrNotTracked = errors.New("activity: token not tracked")

	// ErrInvalidToken is returned when an empty token is supplied.
	ErrInvalidToken = errors.New("activity: invalid token")

	// ErrStoreFailure wraps backend failures when reading or writing timestamps.
	ErrStoreFailure = errors.New("activity: store operation failed")
)
