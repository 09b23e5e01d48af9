// Package sessionlog records the lifecycle of user sessions as a queryable
// event trail: logins, logouts, inactivity warnings, timeouts, extensions,
// and account flow milestones. The trail answers "what happened to this
// session and when" for support, security review, and debugging of
// inactivity-driven logouts.
//
// The package is a pure utility with pluggable storage backends. Logger
// writes events, Reader queries them, and the concrete storages (memory,
// PostgreSQL, MongoDB) cover development through production. All components
// are goroutine-safe.
//
// # Usage
//
//	import (
//	    "context"
//	    "github.com/dmitrymomot/sessionguard/pkg/sessionlog"
//	)
//
//	storage := sessionlog.NewMemoryStorage()
//	logger := sessionlog.NewLogger(storage,
//	    sessionlog.WithSource("web"),
//	    sessionlog.WithSessionIDExtractor(sessionIDFromContext),
//	    sessionlog.WithUserIDExtractor(userIDFromContext),
//	)
//
//	// Record lifecycle transitions as they happen.
//	err := logger.Log(ctx, sessionlog.ActionLogin,
//	    sessionlog.WithMetadata("method", "password"),
//	)
//
//	// Record failures with the cause attached.
//	err = logger.LogError(ctx, sessionlog.ActionTimeout, cause,
//	    sessionlog.WithSession("sess-123"),
//	)
//
//	// Query the trail.
//	reader := sessionlog.NewReader(storage)
//	events, err := reader.Find(ctx, sessionlog.Criteria{
//	    UserID:  "user-456",
//	    Actions: []sessionlog.Action{sessionlog.ActionWarning, sessionlog.ActionTimeout},
//	    From:    time.Now().Add(-24 * time.Hour),
//	    Limit:   100,
//	})
//
// # Storage Backends
//
// MemoryStorage keeps events in process memory for tests and development.
// PostgresStorage writes to a session_events table (schema under
// migrations/, applied with pkg/pg.Migrate). MongoStorage writes to a
// collection obtained from pkg/mongo. Custom backends implement Storage;
// backends with efficient bulk inserts also implement BatchWriter and plug
// into AsyncStorage.
//
// # Async Writes
//
// Hot paths that must not block on storage wrap a BatchWriter in
// AsyncStorage:
//
//	async, closeFn := sessionlog.NewAsyncStorage(pgStorage, sessionlog.AsyncOptions{})
//	defer closeFn(context.Background())
//
//	logger := sessionlog.NewLogger(async)
//
// Events are collected into batches and flushed by size or timeout. When the
// buffer fills, writes fall back to synchronous bulk inserts so the trail
// stays complete.
//
// # Error Handling
//
//   - ErrEventValidation     – event is missing required fields
//   - ErrStorageFailure      – the backend rejected a read or write
//   - ErrStorageNotAvailable – the backend is shut down
package sessionlog
