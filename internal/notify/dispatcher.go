package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmynk/sharezin/internal/metrics"
	"github.com/mmynk/sharezin/internal/models"
	"github.com/mmynk/sharezin/internal/storage"
)

// Notifier delivers one notification.
type Notifier interface {
	Notify(ctx context.Context, n models.Notification) error
}

// Dispatcher stores notifications for later listing and publishes them to live
// subscribers.
type Dispatcher struct {
	store   storage.NotificationStore
	hub     *Hub
	metrics *metrics.Metrics
}

// NewDispatcher creates a Dispatcher. hub may be nil to skip live delivery.
func NewDispatcher(store storage.NotificationStore, hub *Hub, m *metrics.Metrics) *Dispatcher {
	return &Dispatcher{store: store, hub: hub, metrics: m}
}

// Notify persists n and publishes it. A publish failure after a successful save
// is reported but the notification stays listable.
func (d *Dispatcher) Notify(ctx context.Context, n models.Notification) error {
	if err := d.store.CreateNotification(ctx, &n); err != nil {
		return fmt.Errorf("failed to store notification: %w", err)
	}
	if d.hub == nil {
		return nil
	}
	if err := d.hub.Publish(n); err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}
	return nil
}

// DispatchAll sends every notification best-effort. Failures are logged and
// counted, never returned.
func DispatchAll(ctx context.Context, notifier Notifier, m *metrics.Metrics, notifications []models.Notification) {
	for _, n := range notifications {
		if n.UserID == "" {
			continue
		}
		if err := notifier.Notify(ctx, n); err != nil {
			m.Notification(string(n.Type), "failed")
			slog.Warn("Notification dispatch failed",
				"type", n.Type,
				"user_id", n.UserID,
				"receipt_id", n.ReceiptID,
				"error", err,
			)
		}
	}
}
