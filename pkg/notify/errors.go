package notify

import "errors"

var (
	// ErrInvalidConfig indicates a misconfigured email sender.
	ErrInvalidConfig = errors.New("notify: invalid config")

	// ErrInvalidEmailParams indicates email parameters failed validation.
	ErrInvalidEmailParams = errors.New("notify: invalid email params")

	// ErrFailedToSendEmail wraps provider failures during delivery.
	ErrFailedToSendEmail = errors.New("notify: failed to send email")
)
