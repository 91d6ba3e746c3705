// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/sharezin/internal/models"
)

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrStaleReceipt is returned by SaveReceipt when the receipt was saved by
	// someone else since the snapshot was loaded.
	ErrStaleReceipt = errors.New("receipt was modified concurrently")

	// ErrInviteCodeTaken is returned by CreateReceipt when the invite code is in use.
	ErrInviteCodeTaken = errors.New("invite code already in use")
)

// ReceiptStore persists receipt aggregates.
type ReceiptStore interface {
	// CreateReceipt persists a new receipt with all its children.
	CreateReceipt(ctx context.Context, receipt *models.Receipt) error

	// GetReceipt loads a receipt and all its children.
	GetReceipt(ctx context.Context, receiptID string) (*models.Receipt, error)

	// GetReceiptByInviteCode loads a receipt by its (already normalized) invite code.
	GetReceiptByInviteCode(ctx context.Context, code string) (*models.Receipt, error)

	// SaveReceipt replaces the stored receipt with the given snapshot if the
	// stored version still equals receipt.Version, then increments the version.
	SaveReceipt(ctx context.Context, receipt *models.Receipt) error

	// ListReceiptsForUser returns receipts the user created or takes part in,
	// newest first.
	ListReceiptsForUser(ctx context.Context, userID string) ([]*models.Receipt, error)

	// CountOpenReceiptsByCreator counts open receipts owned by the user.
	CountOpenReceiptsByCreator(ctx context.Context, userID string) (int, error)
}

// GroupStore persists group templates.
type GroupStore interface {
	CreateGroup(ctx context.Context, group *models.Group) error
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)
	ListGroups(ctx context.Context, ownerID string) ([]*models.Group, error)
	DeleteGroup(ctx context.Context, groupID string) error
}

// UserStore persists accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// GetUsersByIDs returns the users that exist among ids, keyed by ID.
	GetUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error)
}

// NotificationStore persists notifications per user.
type NotificationStore interface {
	CreateNotification(ctx context.Context, n *models.Notification) error
	ListNotifications(ctx context.Context, userID string, unreadOnly bool) ([]*models.Notification, error)
	MarkNotificationRead(ctx context.Context, notificationID, userID string) error
}

// Store defines every storage operation the services need.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	ReceiptStore
	GroupStore
	UserStore
	NotificationStore

	// Close releases any resources held by the store.
	Close() error
}
