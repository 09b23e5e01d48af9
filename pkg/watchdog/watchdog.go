package watchdog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/sessionguard/pkg/activity"
	"github.com/dmitrymomot/sessionguard/pkg/inactivity"
	"github.com/dmitrymomot/sessionguard/pkg/notify"
	"github.com/dmitrymomot/sessionguard/pkg/sessionlog"
)

const (
	// callbackTimeout bounds trail writes and notice delivery started from
	// monitor callbacks, which run detached from any request context.
	callbackTimeout = 5 * time.Second

	// syncTimeout bounds one full pass over the shared activity store.
	syncTimeout = 10 * time.Second
)

// Recipient identifies where a session's notices go.
type Recipient struct {
	Email    string
	UserName string
}

// RecipientResolver maps a session token to the notice recipient. Returning
// false suppresses notices for that session.
type RecipientResolver func(ctx context.Context, token string) (Recipient, bool)

// Watchdog supervises the inactivity of many sessions at once. Each watched
// token gets its own monitor; activity lands in the shared store through an
// async recorder, and a sync loop pulls timestamps recorded by other
// instances back into the local monitors.
//
// Warning, timeout, and resume transitions fan out to event subscribers and
// optionally to a notifier and a session event trail.
type Watchdog struct {
	store  activity.Store
	logger *slog.Logger
	clock  func() time.Time

	monitorOpts  []inactivity.Option
	recorderOpts []activity.RecorderOption
	syncInterval time.Duration
	eventBuffer  int

	recorder *activity.Recorder
	hub      *hub

	notifier  notify.Notifier
	recipient RecipientResolver
	trail     *sessionlog.Logger

	mu       sync.Mutex
	monitors map[string]*inactivity.Monitor
	cancel   context.CancelFunc
	stopped  chan struct{}
}

// New creates a watchdog over the given activity store.
func New(store activity.Store, opts ...Option) (*Watchdog, error) {
	if store == nil {
		return nil, ErrStoreNil
	}

	w := &Watchdog{
		store:        store,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		clock:        time.Now,
		syncInterval: DefaultSyncInterval,
		eventBuffer:  DefaultEventBuffer,
		monitors:     make(map[string]*inactivity.Monitor),
	}

	for _, opt := range opts {
		opt(w)
	}

	recorderOpts := append([]activity.RecorderOption{
		activity.WithClock(w.clock),
		activity.WithLogger(w.logger),
	}, w.recorderOpts...)
	w.recorder = activity.NewRecorder(store, recorderOpts...)
	w.hub = newHub(w.eventBuffer)

	return w, nil
}

// NewFromConfig creates a watchdog from validated configuration.
func NewFromConfig(store activity.Store, cfg Config, opts ...Option) (*Watchdog, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	configOpts := []Option{WithConfig(cfg)}
	configOpts = append(configOpts, opts...)

	return New(store, configOpts...)
}

// Watch places a session under supervision. The monitor is seeded from the
// shared store so a session already near its timeout is not reset by the
// act of watching it. Watching an already watched token is a no-op.
func (w *Watchdog) Watch(ctx context.Context, token string) error {
	if token == "" {
		return ErrEmptyToken
	}

	w.mu.Lock()
	if _, ok := w.monitors[token]; ok {
		w.mu.Unlock()
		return nil
	}
	w.mu.Unlock()

	opts := append([]inactivity.Option{
		inactivity.WithClock(w.clock),
		inactivity.WithLogger(w.logger),
	}, w.monitorOpts...)
	monitor := inactivity.New(opts...)

	if last, err := w.store.LastActivity(ctx, token); err == nil {
		monitor.RecordActivityAt(last)
	} else if !errors.Is(err, activity.ErrNotTracked) {
		w.logger.Warn("failed to seed monitor from activity store",
			slog.String("token", token),
			slog.Any("error", err))
	}

	w.mu.Lock()
	if _, ok := w.monitors[token]; ok {
		// Lost a concurrent Watch race for the same token.
		w.mu.Unlock()
		return nil
	}
	w.monitors[token] = monitor
	monitor.Start(context.Background(), w.callbacksFor(token))
	w.mu.Unlock()

	w.logger.Debug("session watched", slog.String("token", token))
	return nil
}

// Unwatch removes a session from supervision and stops its monitor. The
// shared store keeps its timestamp; use TriggerLogout to also forget it.
func (w *Watchdog) Unwatch(token string) error {
	w.mu.Lock()
	monitor, ok := w.monitors[token]
	if ok {
		delete(w.monitors, token)
	}
	w.mu.Unlock()

	if !ok {
		return ErrNotWatched
	}

	monitor.Stop()
	w.logger.Debug("session unwatched", slog.String("token", token))
	return nil
}

// Watching reports whether the token is under supervision.
func (w *Watchdog) Watching(token string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.monitors[token]
	return ok
}

// Tokens returns a snapshot of the watched session tokens.
func (w *Watchdog) Tokens() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	tokens := make([]string, 0, len(w.monitors))
	for token := range w.monitors {
		tokens = append(tokens, token)
	}
	return tokens
}

// Touch records user activity for a session. The local monitor resets
// immediately; the shared store is updated asynchronously through the
// recorder, so this never blocks a request path.
func (w *Watchdog) Touch(token string) {
	if token == "" {
		return
	}

	w.mu.Lock()
	monitor := w.monitors[token]
	w.mu.Unlock()

	if monitor != nil {
		monitor.RecordActivity()
	}
	w.recorder.Record(token)
}

// ExtendSession explicitly restarts a session's inactivity clock, e.g. from
// a "stay signed in" button. Unlike Touch the store write is synchronous:
// an explicit extension must not be lost to the recorder's dedup window.
func (w *Watchdog) ExtendSession(ctx context.Context, token string) error {
	if token == "" {
		return ErrEmptyToken
	}

	w.mu.Lock()
	monitor := w.monitors[token]
	w.mu.Unlock()

	if monitor == nil {
		return ErrNotWatched
	}

	monitor.ExtendSession()
	if err := w.store.Touch(ctx, token, w.clock()); err != nil {
		return err
	}

	w.logTrail(sessionlog.ActionExtend, token)
	return nil
}

// TriggerLogout forces an immediate timeout for the session: the monitor's
// timeout notification fires, the session leaves supervision, and its
// activity record is removed from the shared store.
func (w *Watchdog) TriggerLogout(ctx context.Context, token string) error {
	w.mu.Lock()
	monitor := w.monitors[token]
	w.mu.Unlock()

	if monitor == nil {
		return ErrNotWatched
	}

	monitor.TriggerLogout()
	_ = w.Unwatch(token)

	if err := w.store.Forget(ctx, token); err != nil {
		w.logger.Error("failed to forget session activity",
			slog.String("token", token),
			slog.Any("error", err))
	}
	return nil
}

// Status returns the supervision snapshot for a watched session.
func (w *Watchdog) Status(token string) (inactivity.Status, error) {
	w.mu.Lock()
	monitor := w.monitors[token]
	w.mu.Unlock()

	if monitor == nil {
		return inactivity.Status{}, ErrNotWatched
	}
	return monitor.Status(), nil
}

// TimeRemaining reports how long the session has before its timeout.
func (w *Watchdog) TimeRemaining(token string) (time.Duration, error) {
	w.mu.Lock()
	monitor := w.monitors[token]
	w.mu.Unlock()

	if monitor == nil {
		return 0, ErrNotWatched
	}
	return monitor.TimeRemaining(), nil
}

// ShouldShowWarning reports whether the session is inside its warning window.
func (w *Watchdog) ShouldShowWarning(token string) (bool, error) {
	w.mu.Lock()
	monitor := w.monitors[token]
	w.mu.Unlock()

	if monitor == nil {
		return false, ErrNotWatched
	}
	return monitor.ShouldShowWarning(), nil
}

// Subscribe returns a subscription receiving warning, timeout, and resume
// events for every watched session. The subscription ends when ctx is
// cancelled, Close is called on it, or the watchdog shuts down.
func (w *Watchdog) Subscribe(ctx context.Context) *Subscription {
	return w.hub.subscribe(ctx)
}

// Start launches the store sync loop, which pulls activity recorded by
// other instances into the local monitors. Watch and Touch work without
// Start; only cross-instance synchronization needs it.
func (w *Watchdog) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.cancel != nil {
		w.mu.Unlock()
		return ErrAlreadyStarted
	}
	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	stopped := make(chan struct{})
	w.stopped = stopped
	interval := w.syncInterval
	w.mu.Unlock()

	go w.syncLoop(runCtx, stopped, interval)

	w.logger.Info("watchdog started", slog.Duration("sync_interval", interval))
	return nil
}

// Stop halts the sync loop. Watched monitors keep polling; use Close for a
// full shutdown.
func (w *Watchdog) Stop() error {
	w.mu.Lock()
	if w.cancel == nil {
		w.mu.Unlock()
		return ErrNotStarted
	}
	cancel := w.cancel
	stopped := w.stopped
	w.cancel = nil
	w.stopped = nil
	w.mu.Unlock()

	cancel()
	<-stopped

	w.logger.Info("watchdog stopped")
	return nil
}

// Run starts the watchdog and blocks until ctx is cancelled, suitable for
// errgroup.Go.
func (w *Watchdog) Run(ctx context.Context) func() error {
	return func() error {
		if err := w.Start(ctx); err != nil {
			return err
		}

		<-ctx.Done()

		if err := w.Stop(); err != nil && !errors.Is(err, ErrNotStarted) {
			return err
		}
		return nil
	}
}

// Close shuts the watchdog down completely: the sync loop, every session
// monitor, the activity recorder, and all event subscriptions.
func (w *Watchdog) Close() error {
	if err := w.Stop(); err != nil && !errors.Is(err, ErrNotStarted) {
		return err
	}

	w.mu.Lock()
	monitors := w.monitors
	w.monitors = make(map[string]*inactivity.Monitor)
	w.mu.Unlock()

	for _, monitor := range monitors {
		monitor.Stop()
	}

	err := w.recorder.Close()
	w.hub.close()

	w.logger.Info("watchdog closed")
	return err
}

// syncLoop periodically applies store timestamps to local monitors.
func (w *Watchdog) syncLoop(ctx context.Context, stopped chan struct{}, interval time.Duration) {
	defer close(stopped)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.syncOnce(ctx)
		}
	}
}

// syncOnce pulls the latest store timestamp for every watched token.
// Activity recorded on this instance is already newer than the store value,
// so RecordActivityAt's monotonic guard makes the pass idempotent.
func (w *Watchdog) syncOnce(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, syncTimeout)
	defer cancel()

	for _, token := range w.Tokens() {
		last, err := w.store.LastActivity(ctx, token)
		if err != nil {
			if !errors.Is(err, activity.ErrNotTracked) {
				w.logger.Warn("activity sync failed",
					slog.String("token", token),
					slog.Any("error", err))
			}
			continue
		}

		w.mu.Lock()
		monitor := w.monitors[token]
		w.mu.Unlock()

		if monitor != nil {
			monitor.RecordActivityAt(last)
		}
	}
}

// callbacksFor binds one session's monitor notifications to the fan-out
// surfaces: the event hub, the session trail, and the notifier.
func (w *Watchdog) callbacksFor(token string) inactivity.Callbacks {
	return inactivity.Callbacks{
		OnWarning: func(remaining time.Duration) {
			w.hub.publish(Event{
				Type:      EventWarning,
				Token:     token,
				Remaining: remaining,
				At:        w.clock(),
			})
			w.logTrail(sessionlog.ActionWarning, token)
			if w.notifier != nil {
				go w.deliverWarning(token, remaining)
			}
		},
		OnTimeout: func() {
			w.hub.publish(Event{
				Type:  EventTimeout,
				Token: token,
				At:    w.clock(),
			})
			w.logTrail(sessionlog.ActionTimeout, token)
			if w.notifier != nil {
				go w.deliverTimeout(token)
			}
		},
		OnActivity: func() {
			w.hub.publish(Event{
				Type:  EventResumed,
				Token: token,
				At:    w.clock(),
			})
			w.logTrail(sessionlog.ActionResume, token)
		},
	}
}

// logTrail writes one trail entry on a bounded background context; trail
// failures are logged, never propagated into monitor callbacks.
func (w *Watchdog) logTrail(action sessionlog.Action, token string) {
	if w.trail == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), callbackTimeout)
	defer cancel()

	if err := w.trail.Log(ctx, action, sessionlog.WithSession(token)); err != nil {
		w.logger.Error("failed to record session event",
			slog.String("action", string(action)),
			slog.String("token", token),
			slog.Any("error", err))
	}
}

func (w *Watchdog) deliverWarning(token string, remaining time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), callbackTimeout)
	defer cancel()

	recipient, ok := w.resolveRecipient(ctx, token)
	if !ok {
		return
	}

	err := w.notifier.NotifyWarning(ctx, notify.WarningNotice{
		Email:     recipient.Email,
		UserName:  recipient.UserName,
		SessionID: token,
		Remaining: remaining,
	})
	if err != nil {
		w.logger.Error("failed to deliver warning notice",
			slog.String("token", token),
			slog.Any("error", err))
	}
}

func (w *Watchdog) deliverTimeout(token string) {
	ctx, cancel := context.WithTimeout(context.Background(), callbackTimeout)
	defer cancel()

	recipient, ok := w.resolveRecipient(ctx, token)
	if !ok {
		return
	}

	var lastActivity time.Time
	if last, err := w.store.LastActivity(ctx, token); err == nil {
		lastActivity = last
	}

	err := w.notifier.NotifyTimeout(ctx, notify.TimeoutNotice{
		Email:        recipient.Email,
		UserName:     recipient.UserName,
		SessionID:    token,
		LastActivity: lastActivity,
	})
	if err != nil {
		w.logger.Error("failed to deliver timeout notice",
			slog.String("token", token),
			slog.Any("error", err))
	}
}

func (w *Watchdog) resolveRecipient(ctx context.Context, token string) (Recipient, bool) {
	if w.recipient == nil {
		return Recipient{}, true
	}
	return w.recipient(ctx, token)
}
