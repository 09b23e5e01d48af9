package inactivity

import (
	"fmt"
	"time"
)

// Status is a diagnostic snapshot of a Monitor, shaped for display and JSON
// status endpoints.
type Status struct {
	// Active is true while some time remains before the inactivity timeout.
	Active bool `json:"active"`

	// Running is true while the poll loop is active.
	Running bool `json:"running"`

	// HasWarned is true once the warning fired for the current episode.
	HasWarned bool `json:"has_warned"`

	// TimeRemaining is the remaining time formatted as hours and minutes.
	TimeRemaining string `json:"time_remaining"`

	// LastActivity is the RFC 3339 timestamp of the most recent activity,
	// empty until activity has been recorded.
	LastActivity string `json:"last_activity,omitempty"`
}

// FormatRemaining renders a duration as hours and minutes for display,
// e.g. "23h 55m" or "5m". Non-positive durations render as "0m".
func FormatRemaining(d time.Duration) string {
	if d <= 0 {
		return "0m"
	}
	hours := int(d / time.Hour)
	minutes := int(d % time.Hour / time.Minute)
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}
