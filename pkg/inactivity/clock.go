package inactivity

import "time"

// Clock returns the current time. The monitor never reads the wall clock
// directly; tests substitute a deterministic clock via WithClock.
type Clock func() time.Time

func systemClock() time.Time {
	return time.Now()
}
