package pg

import "context"

// logger is the minimal structured-logging surface Migrate needs. It is
// satisfied by *slog.Logger, keeping goose output inside application logs
// instead of stdout.
type logger interface {
	InfoContext(ctx context.Context, msg string, args ...any)
	ErrorContext(ctx context.Context, msg string, args ...any)
}
