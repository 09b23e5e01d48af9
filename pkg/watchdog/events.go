package watchdog

import (
	"context"
	"sync"
	"time"
)

// EventType classifies watchdog events.
type EventType string

const (
	// EventWarning fires when a session enters its warning window.
	EventWarning EventType = "warning"

	// EventTimeout fires when a session exceeds its inactivity timeout.
	EventTimeout EventType = "timeout"

	// EventResumed fires when activity interrupts a warned or timed out session.
	EventResumed EventType = "resumed"
)

// Event is one supervision notification, fanned out to all subscribers.
type Event struct {
	Type      EventType     `json:"type"`
	Token     string        `json:"token"`
	Remaining time.Duration `json:"remaining,omitempty"`
	At        time.Time     `json:"at"`
}

// Subscription receives watchdog events until closed. Slow subscriptions
// are dropped rather than allowed to block the supervision loops.
type Subscription struct {
	ch     chan Event
	closed bool
	mu     sync.RWMutex
}

func newSubscription(buffer int) *Subscription {
	return &Subscription{ch: make(chan Event, buffer)}
}

// Events returns the receive channel. It is closed when the subscription
// ends, whether by Close, context cancellation, or watchdog shutdown.
func (s *Subscription) Events() <-chan Event {
	return s.ch
}

// Close ends the subscription. Idempotent.
func (s *Subscription) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		close(s.ch)
		s.closed = true
	}
}

// send delivers without blocking; false means the subscriber is closed or
// its buffer is full.
func (s *Subscription) send(e Event) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return false
	}
	select {
	case s.ch <- e:
		return true
	default:
		return false
	}
}

// hub fans events out to subscribers, dropping slow consumers instead of
// blocking publishers.
type hub struct {
	mu        sync.RWMutex
	subs      map[*Subscription]struct{}
	buffer    int
	closed    bool
	done      chan struct{}
	cleanupWg sync.WaitGroup
}

func newHub(buffer int) *hub {
	return &hub{
		subs:   make(map[*Subscription]struct{}),
		buffer: max(buffer, 1),
		done:   make(chan struct{}),
	}
}

// subscribe registers a new subscription, cleaned up when ctx is cancelled.
func (h *hub) subscribe(ctx context.Context) *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()

	sub := newSubscription(h.buffer)
	if h.closed {
		sub.Close()
		return sub
	}
	h.subs[sub] = struct{}{}

	if ctx.Done() != nil {
		h.cleanupWg.Add(1)
		go func() {
			defer h.cleanupWg.Done()
			select {
			case <-ctx.Done():
				h.unsubscribe(sub)
			case <-h.done:
			}
		}()
	}

	return sub
}

// publish sends the event to every subscriber without blocking. Subscribers
// that cannot keep up are unsubscribed.
func (h *hub) publish(e Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return
	}

	for sub := range h.subs {
		if !sub.send(e) {
			go h.unsubscribe(sub)
		}
	}
}

func (h *hub) unsubscribe(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs, sub)
	sub.Close()
}

// close ends every subscription and rejects future ones.
func (h *hub) close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	close(h.done)
	for sub := range h.subs {
		sub.Close()
	}
	clear(h.subs)
	h.mu.Unlock()

	h.cleanupWg.Wait()
}
