package sessionlog

import "errors"

var (
	// ErrEventValidation indicates an event is missing required fields.
	ErrEventValidation = errors.New("sessionlog: event validation failed")

	// ErrStorageFailure wraps backend failures when writing or reading events.
	ErrStorageFailure = errors.New("sessionlog: storage operation failed")

	// ErrStorageNotAvailable indicates the storage backend is shut down.
	ErrStorageNotAvailable = errors.New("sessionlog: storage not available")
)
