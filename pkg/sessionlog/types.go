package sessionlog

import (
	"fmt"
	"time"
)

// Action identifies a session lifecycle transition.
type Action string

const (
	ActionLogin            Action = "login"
	ActionLogout           Action = "logout"
	ActionRegister         Action = "register"
	ActionWarning          Action = "warning"
	ActionTimeout          Action = "timeout"
	ActionExtend           Action = "extend"
	ActionResume           Action = "resume"
	ActionResetRequested   Action = "reset_requested"
	ActionResetCompleted   Action = "reset_completed"
	ActionEmailConfirmed   Action = "email_confirmed"
	ActionConfirmationSent Action = "confirmation_sent"
)

// Event is a single entry in the session lifecycle trail.
type Event struct {
	ID        string         `json:"id"`
	SessionID string         `json:"session_id,omitempty"`
	UserID    string         `json:"user_id,omitempty"`
	Action    Action         `json:"action"`
	Source    string         `json:"source,omitempty"`
	Error     string         `json:"error,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// Validate checks that the event carries the required fields.
func (e *Event) Validate() error {
	if e.Action == "" {
		return fmt.Errorf("%w: action is required", ErrEventValidation)
	}
	return nil
}

// EventOption applies per-event data during Log and LogError calls.
type EventOption func(*Event)

// WithSession sets the session identifier on the event, overriding any value
// pulled from context.
func WithSession(sessionID string) EventOption {
	return func(e *Event) {
		e.SessionID = sessionID
	}
}

// WithUser sets the user identifier on the event, overriding any value
// pulled from context.
func WithUser(userID string) EventOption {
	return func(e *Event) {
		e.UserID = userID
	}
}

// WithMetadata adds one metadata entry to the event.
func WithMetadata(key string, value any) EventOption {
	return func(e *Event) {
		if e.Metadata == nil {
			e.Metadata = make(map[string]any)
		}
		e.Metadata[key] = value
	}
}
