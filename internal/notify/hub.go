// Package notify delivers receipt notifications to interested users.
//
// A Hub fans published notifications out to live subscribers. It owns a single
// delivery goroutine started by Start and stopped by Stop; nothing is kept in
// package state. The Dispatcher persists notifications and publishes them to a
// Hub, and never lets a delivery failure reach the caller's transition.
package notify

import (
	"context"
	"errors"
	"sync"

	"github.com/mmynk/sharezin/internal/metrics"
	"github.com/mmynk/sharezin/internal/models"
)

var (
	ErrHubStopped = errors.New("notification hub is not running")
	ErrHubFull    = errors.New("notification queue is full")
)

// Hub is a per-user publish/subscribe fan-out.
type Hub struct {
	metrics *metrics.Metrics

	mu      sync.RWMutex
	subs    map[string]map[*Subscription]struct{}
	running bool

	queue chan models.Notification
	stop  chan struct{}
	done  chan struct{}
}

// Subscription receives notifications for one user until closed.
type Subscription struct {
	C <-chan models.Notification

	userID string
	ch     chan models.Notification
	hub    *Hub
	once   sync.Once
}

// NewHub creates a stopped Hub with the given queue size.
func NewHub(buffer int, m *metrics.Metrics) *Hub {
	if buffer <= 0 {
		buffer = 64
	}
	return &Hub{
		metrics: m,
		subs:    make(map[string]map[*Subscription]struct{}),
		queue:   make(chan models.Notification, buffer),
	}
}

// Start launches the delivery loop. It runs until ctx is done or Stop is called.
func (h *Hub) Start(ctx context.Context) {
	h.mu.Lock()
	if h.running {
		h.mu.Unlock()
		return
	}
	h.running = true
	h.stop = make(chan struct{})
	h.done = make(chan struct{})
	stop, done := h.stop, h.done
	h.mu.Unlock()

	go func() {
		defer close(done)
		for {
			select {
			case n := <-h.queue:
				h.deliver(n)
			case <-stop:
				h.mu.Lock()
				h.drain()
				h.mu.Unlock()
				return
			case <-ctx.Done():
				h.mu.Lock()
				h.running = false
				h.drain()
				h.mu.Unlock()
				return
			}
		}
	}()
}

// drain discards whatever is still queued so a restarted Hub never delivers
// notifications published before it stopped. Callers hold h.mu.
func (h *Hub) drain() {
	for {
		select {
		case n := <-h.queue:
			h.metrics.Notification(string(n.Type), "dropped")
		default:
			return
		}
	}
}

// Stop ends the delivery loop and closes every subscription. Queued
// notifications that were not delivered yet are dropped.
func (h *Hub) Stop() {
	h.mu.Lock()
	stop, done := h.stop, h.done
	wasRunning := h.running
	h.running = false
	h.stop = nil
	h.mu.Unlock()

	if wasRunning && stop != nil {
		close(stop)
	}
	if done != nil {
		<-done
	}

	h.mu.Lock()
	for _, set := range h.subs {
		for sub := range set {
			sub.once.Do(func() { close(sub.ch) })
		}
	}
	h.subs = make(map[string]map[*Subscription]struct{})
	h.mu.Unlock()
}

// Publish queues a notification without blocking.
func (h *Hub) Publish(n models.Notification) error {
	// Holding the read lock keeps the enqueue ordered against drain.
	h.mu.RLock()
	defer h.mu.RUnlock()
	if !h.running {
		return ErrHubStopped
	}

	select {
	case h.queue <- n:
		return nil
	default:
		return ErrHubFull
	}
}

// Subscribe registers interest in a user's notifications. The returned
// subscription buffers up to buffer messages; further ones are dropped.
func (h *Hub) Subscribe(userID string, buffer int) *Subscription {
	if buffer <= 0 {
		buffer = 16
	}
	ch := make(chan models.Notification, buffer)
	sub := &Subscription{C: ch, userID: userID, ch: ch, hub: h}

	h.mu.Lock()
	if h.subs[userID] == nil {
		h.subs[userID] = make(map[*Subscription]struct{})
	}
	h.subs[userID][sub] = struct{}{}
	h.mu.Unlock()
	return sub
}

// Close unregisters the subscription and closes its channel.
func (s *Subscription) Close() {
	s.hub.mu.Lock()
	if set := s.hub.subs[s.userID]; set != nil {
		delete(set, s)
		if len(set) == 0 {
			delete(s.hub.subs, s.userID)
		}
	}
	s.hub.mu.Unlock()
	s.once.Do(func() { close(s.ch) })
}

func (h *Hub) deliver(n models.Notification) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.subs[n.UserID] {
		select {
		case sub.ch <- n:
			h.metrics.Notification(string(n.Type), "delivered")
		default:
			h.metrics.Notification(string(n.Type), "dropped")
		}
	}
}

// Subscribers reports how many live subscriptions a user has.
func (h *Hub) Subscribers(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[userID])
}
