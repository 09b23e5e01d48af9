package sessionlog

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// contextExtractor pulls a string value out of a context, returning whether
// the value was present.
type contextExtractor func(context.Context) (string, bool)

// Logger records session lifecycle events to a Writer. Session and user
// identifiers are pulled from context via configured extractors unless an
// EventOption sets them explicitly.
type Logger struct {
	storage   Writer
	source    string
	clock     func() time.Time
	sessionID contextExtractor
	userID    contextExtractor
}

// Option configures a Logger during construction.
type Option func(*Logger)

// WithSource stamps every event with the name of the logging component,
// e.g. "authflow" or "watchdog".
func WithSource(source string) Option {
	return func(l *Logger) {
		l.source = source
	}
}

// WithSessionIDExtractor pulls the session identifier from context when no
// explicit WithSession option is given.
func WithSessionIDExtractor(fn func(context.Context) (string, bool)) Option {
	return func(l *Logger) {
		l.sessionID = fn
	}
}

// WithUserIDExtractor pulls the user identifier from context when no
// explicit WithUser option is given.
func WithUserIDExtractor(fn func(context.Context) (string, bool)) Option {
	return func(l *Logger) {
		l.userID = fn
	}
}

// WithClock replaces the wall clock used for event timestamps.
func WithClock(clock func() time.Time) Option {
	return func(l *Logger) {
		if clock != nil {
			l.clock = clock
		}
	}
}

// NewLogger creates a session event logger writing to the given storage.
// Panics when storage is nil: a trail logger without storage is a
// programming error that must surface at startup.
func NewLogger(storage Writer, opts ...Option) *Logger {
	if storage == nil {
		panic("sessionlog: storage cannot be nil")
	}

	l := &Logger{
		storage: storage,
		clock:   time.Now,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Log records a session lifecycle action.
func (l *Logger) Log(ctx context.Context, action Action, opts ...EventOption) error {
	event := l.eventFromContext(ctx)
	event.ID = uuid.New().String()
	event.Action = action
	event.CreatedAt = l.clock()

	for _, opt := range opts {
		opt(&event)
	}

	if err := event.Validate(); err != nil {
		return err
	}

	return l.storage.Store(ctx, event)
}

// LogError records a failed session lifecycle action together with the
// failure cause.
func (l *Logger) LogError(ctx context.Context, action Action, cause error, opts ...EventOption) error {
	event := l.eventFromContext(ctx)
	event.ID = uuid.New().String()
	event.Action = action
	event.CreatedAt = l.clock()
	if cause != nil {
		event.Error = cause.Error()
	}

	for _, opt := range opts {
		opt(&event)
	}

	if err := event.Validate(); err != nil {
		return err
	}

	return l.storage.Store(ctx, event)
}

// eventFromContext seeds an event with values pulled from context.
func (l *Logger) eventFromContext(ctx context.Context) Event {
	event := Event{Source: l.source}

	if l.sessionID != nil {
		if sessionID, ok := l.sessionID(ctx); ok {
			event.SessionID = sessionID
		}
	}

	if l.userID != nil {
		if userID, ok := l.userID(ctx); ok {
			event.UserID = userID
		}
	}

	return event
}
