// Package inactivity implements a session inactivity monitor: it tracks
// elapsed time since the last recorded user activity against a configurable
// timeout, raises a warning ahead of automatic logout, and reports status on
// demand without waiting for the next poll.
//
// # Behavior
//
// A Monitor owns exactly one periodic poll loop. Each tick computes the time
// remaining before the timeout and fires at most one notification:
//
//   - OnTimeout fires once the full timeout elapses, at most once per
//     inactivity episode.
//   - OnWarning fires when the remaining time is no more than the warning
//     lead (boundary inclusive), at most once per episode.
//
// Recording activity resets the clock to the full timeout, clears the
// warning latch, and fires OnActivity when the session had already warned or
// timed out. Remaining time is floored at zero, so a clock jump far past the
// timeout still reads as zero rather than wrapping.
//
// All notification handlers are optional; missing ones are skipped silently.
// A panicking handler is recovered and logged so it cannot kill the poll
// loop.
//
// # Usage
//
//	monitor := inactivity.New(
//	    inactivity.WithTimeout(24*time.Hour),
//	    inactivity.WithWarningLead(5*time.Minute),
//	)
//
//	monitor.Start(ctx, inactivity.Callbacks{
//	    OnWarning: func(remaining time.Duration) {
//	        showWarningDialog(remaining)
//	    },
//	    OnTimeout: func() {
//	        forceLogout()
//	    },
//	    OnActivity: func() {
//	        hideWarningDialog()
//	    },
//	})
//	defer monitor.Stop()
//
//	// On user input:
//	monitor.RecordActivity()
//
// # Clock Injection
//
// The monitor never reads the wall clock directly. Tests supply a
// deterministic clock and drive evaluation through the public query methods
// instead of sleeping:
//
//	now := time.Now()
//	monitor := inactivity.New(
//	    inactivity.WithClock(func() time.Time { return now }),
//	)
//
// # Lifecycle
//
// Start is idempotent: starting a running monitor replaces the callbacks and
// restarts the poll loop without losing the last activity timestamp. Stop is
// safe in every lifecycle state and always releases the underlying ticker.
// The monitor is safe for concurrent use by the poll goroutine and any
// number of callers.
package inactivity
