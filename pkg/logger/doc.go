// Package logger provides a context-aware wrapper around Go's slog package
// adding functional options for configuration, helper attribute constructors,
// and transparent injection of values stored in context.Context.
//
// The package standardises structured logging across the module by exposing a
// single factory – New – that creates a *slog.Logger configured by a set of
// Option functions. These options allow you to:
//
//   - Select an output format (text or json)
//   - Set the minimum log level
//   - Supply default slog.Attr values applied to every record
//   - Register ContextExtractor callbacks that inject attributes pulled from
//     a context value (for example a session id) every time Handle is invoked.
//
// # Architecture
//
// New determines the concrete slog.Handler implementation – slog.NewTextHandler
// or slog.NewJSONHandler – based on the configured Format, then wraps it via
// WrapHandler, which executes registered ContextExtractor callbacks before
// delegating to the underlying handler.
//
// Helper constructors such as Error, SessionID, Remaining, etc. live in
// attr.go and return commonly-used slog.Attr instances to keep attribute
// naming consistent across the codebase.
//
// # Usage
//
//	import "github.com/dmitrymomot/sessionguard/pkg/logger"
//
//	func main() {
//	    log := logger.New(
//	        logger.WithProduction("session-service"),
//	        logger.WithContextValue("session_id", ctxKeySessionID),
//	    )
//	    logger.SetAsDefault(log)
//
//	    ctx := context.WithValue(context.Background(), ctxKeySessionID, "abc-123")
//	    log.InfoContext(ctx, "session extended",
//	        logger.UserID(42),
//	        logger.Remaining(23*time.Hour),
//	    )
//	}
//
// # Error Handling
//
// Helper functions Error and Errors produce attributes only when the supplied
// error value is non-nil allowing calls like:
//
//	log.Info("operation succeeded", logger.Error(err))
//
// without an additional nil check.
package logger
