package notify

import (
	"context"
	"io"
	"log/slog"
)

// LogNotifier writes notices to a structured logger. Useful as a development
// stand-in and as the always-on channel next to email in a Multi.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a notifier writing to logger; nil falls back to a
// discard logger.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &LogNotifier{logger: logger}
}

// NotifyWarning logs an "about to expire" notice.
func (n *LogNotifier) NotifyWarning(ctx context.Context, notice WarningNotice) error {
	n.logger.InfoContext(ctx, "session expiry warning",
		slog.String("session_id", notice.SessionID),
		slog.String("email", notice.Email),
		slog.Duration("remaining", notice.Remaining),
	)
	return nil
}

// NotifyTimeout logs a "signed out" notice.
func (n *LogNotifier) NotifyTimeout(ctx context.Context, notice TimeoutNotice) error {
	n.logger.InfoContext(ctx, "session timed out",
		slog.String("session_id", notice.SessionID),
		slog.String("email", notice.Email),
		slog.Time("last_activity", notice.LastActivity),
	)
	return nil
}

var _ Notifier = (*LogNotifier)(nil)
