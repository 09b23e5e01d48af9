// Package watchdog supervises the inactivity of many sessions at once,
// building on the single-session monitors from pkg/inactivity.
//
// Each watched token gets its own monitor configured with shared thresholds.
// Activity flows through two paths:
//
//   - Touch resets the local monitor immediately and pushes the timestamp to
//     the shared activity store through an async recorder, so request paths
//     never block on store writes.
//   - A periodic sync loop pulls store timestamps back into local monitors,
//     so activity recorded by another process keeps sessions alive here too.
//
// Warning, timeout, and resume transitions fan out to event subscribers,
// optionally to a notify.Notifier for email delivery, and optionally to a
// sessionlog trail.
//
// # Usage
//
//	store := activity.NewMemoryStore(48*time.Hour, 10*time.Minute)
//	wd, err := watchdog.New(store,
//	    watchdog.WithMonitorOptions(
//	        inactivity.WithTimeout(30*time.Minute),
//	        inactivity.WithWarningLead(5*time.Minute),
//	    ),
//	)
//	if err != nil {
//	    return err
//	}
//	defer wd.Close()
//
//	// Begin supervising a session after login.
//	if err := wd.Watch(ctx, sessionToken); err != nil {
//	    return err
//	}
//
//	// Record activity from request handlers.
//	wd.Touch(sessionToken)
//
// # Cross-Instance Synchronization
//
// Start launches the sync loop that pulls activity recorded by other
// instances out of the shared store. Single-process deployments can skip it.
//
//	if err := wd.Start(ctx); err != nil {
//	    return err
//	}
//
// Or under errgroup:
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(wd.Run(ctx))
//
// # Events
//
// Subscribe streams supervision transitions, e.g. to push warnings to
// browsers over SSE or websockets:
//
//	sub := wd.Subscribe(ctx)
//	for event := range sub.Events() {
//	    switch event.Type {
//	    case watchdog.EventWarning:
//	        // surface the countdown to the user
//	    case watchdog.EventTimeout:
//	        // terminate the session server-side
//	    }
//	}
//
// Slow subscribers are dropped rather than allowed to stall supervision.
//
// # HTTP Integration
//
// TouchMiddleware records request activity, and Router exposes status,
// extend, and logout endpoints for countdown UIs:
//
//	resolver := watchdog.NewCookieResolver("sid")
//	r := chi.NewRouter()
//	r.Use(wd.TouchMiddleware(resolver))
//	r.Mount("/session", wd.Router(resolver))
//
// # Error Handling
//
// Package-level sentinel errors (e.g. ErrNotWatched, ErrNoToken) signal
// violations of supervision invariants and can be checked with errors.Is.
package watchdog
