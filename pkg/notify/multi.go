package notify

import (
	"context"
	"errors"
)

// Multi fans a notice out to several notifiers. Every notifier runs even
// when an earlier one fails; failures are joined into one error.
type Multi []Notifier

// NewMulti combines notifiers into one. Nil entries are dropped.
func NewMulti(notifiers ...Notifier) Multi {
	multi := make(Multi, 0, len(notifiers))
	for _, n := range notifiers {
		if n != nil {
			multi = append(multi, n)
		}
	}
	return multi
}

// NotifyWarning delivers the warning through every notifier.
func (m Multi) NotifyWarning(ctx context.Context, notice WarningNotice) error {
	var errs []error
	for _, n := range m {
		if err := n.NotifyWarning(ctx, notice); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NotifyTimeout delivers the timeout notice through every notifier.
func (m Multi) NotifyTimeout(ctx context.Context, notice TimeoutNotice) error {
	var errs []error
	for _, n := range m {
		if err := n.NotifyTimeout(ctx, notice); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

var _ Notifier = (Multi)(nil)
