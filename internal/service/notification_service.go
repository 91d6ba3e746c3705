package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/sharezin/internal/middleware"
	"github.com/mmynk/sharezin/internal/notify"
	"github.com/mmynk/sharezin/internal/storage"
	"github.com/mmynk/sharezin/pkg/api"
)

// subscriptionBuffer is how many notifications a slow stream may fall behind.
const subscriptionBuffer = 16

// NotificationService implements the Connect NotificationService.
type NotificationService struct {
	store storage.NotificationStore
	hub   *notify.Hub
}

// NewNotificationService creates a NotificationService. hub may be nil, in
// which case Subscribe is unavailable.
func NewNotificationService(store storage.NotificationStore, hub *notify.Hub) *NotificationService {
	return &NotificationService{store: store, hub: hub}
}

// ListNotifications returns the caller's notifications, newest first.
func (s *NotificationService) ListNotifications(ctx context.Context, req *connect.Request[api.ListNotificationsRequest]) (*connect.Response[api.ListNotificationsResponse], error) {
	userID := middleware.GetUserID(ctx)

	notifications, err := s.store.ListNotifications(ctx, userID, req.Msg.UnreadOnly)
	if err != nil {
		slog.Error("ListNotifications failed", "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}

	out := make([]*api.Notification, len(notifications))
	for i, n := range notifications {
		out[i] = toAPINotification(n)
	}
	return connect.NewResponse(&api.ListNotificationsResponse{Notifications: out}), nil
}

// MarkNotificationRead flags one of the caller's notifications as read.
func (s *NotificationService) MarkNotificationRead(ctx context.Context, req *connect.Request[api.MarkNotificationReadRequest]) (*connect.Response[api.MarkNotificationReadResponse], error) {
	userID := middleware.GetUserID(ctx)

	if err := s.store.MarkNotificationRead(ctx, req.Msg.NotificationID, userID); err != nil {
		slog.Warn("MarkNotificationRead failed", "notification_id", req.Msg.NotificationID, "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.MarkNotificationReadResponse{}), nil
}

// Subscribe streams the caller's notifications as they happen until the
// client disconnects or the hub stops.
func (s *NotificationService) Subscribe(ctx context.Context, req *connect.Request[api.SubscribeRequest], stream *connect.ServerStream[api.Notification]) error {
	if s.hub == nil {
		return connect.NewError(connect.CodeUnimplemented, notify.ErrHubStopped)
	}
	userID := middleware.GetUserID(ctx)

	sub := s.hub.Subscribe(userID, subscriptionBuffer)
	defer sub.Close()
	slog.Info("Notification stream opened", "user_id", userID)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Notification stream closed", "user_id", userID)
			return nil
		case n, ok := <-sub.C:
			if !ok {
				return nil
			}
			if err := stream.Send(toAPINotification(&n)); err != nil {
				slog.Warn("Notification stream send failed", "user_id", userID, "error", err)
				return err
			}
		}
	}
}
