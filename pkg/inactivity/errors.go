package inactivity

import "errors"

var (
	// ErrInvalidTimeout is returned when the inactivity timeout is zero or negative.
	ErrInvalidTimeout = errors.New("inactivity: timeout must be positive")

	// ErrInvalidWarningLead is returned when the warning lead time is negative
	// or does not fit inside the timeout.
	ErrInvalidWarningLead = errors.New("inactivity: warning lead must be non-negative and shorter than the timeout")

	// ErrInvalidPollInterval is returned when the poll interval is zero or negative.
	ErrInvalidPollInterval = errors.New("inactivity: poll interval must be positive")
)
