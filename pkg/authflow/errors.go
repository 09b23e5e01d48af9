package authflow

import "errors"

var (
	// ErrBackendNil is returned when NewFlow is called without a backend.
	ErrBackendNil = errors.New("authflow: backend cannot be nil")

	// ErrInvalidEmail is returned when an email address fails validation.
	ErrInvalidEmail = errors.New("authflow: invalid email address")

	// ErrEmptyPassword is returned when a password is required but empty.
	ErrEmptyPassword = errors.New("authflow: password cannot be empty")

	// ErrEmptyToken is returned when a session or action token is required
	// but empty.
	ErrEmptyToken = errors.New("authflow: token cannot be empty")

	// ErrInvalidSession is returned when the backend reports success but
	// hands back a session without a token.
	ErrInvalidSession = errors.New("authflow: backend returned an unusable session")
)
