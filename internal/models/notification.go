package models

// NotificationType identifies the receipt event a notification is about.
type NotificationType string

const (
	NotificationParticipantRequest     NotificationType = "participant_request"
	NotificationParticipantApproved    NotificationType = "participant_approved"
	NotificationParticipantRejected    NotificationType = "participant_rejected"
	NotificationDeletionRequest        NotificationType = "deletion_request"
	NotificationDeletionApproved       NotificationType = "deletion_approved"
	NotificationDeletionRejected       NotificationType = "deletion_rejected"
	NotificationReceiptClosed          NotificationType = "receipt_closed"
	NotificationItemAdded              NotificationType = "item_added"
	NotificationCreatorTransferred     NotificationType = "creator_transferred"
	NotificationCreatorTransferredFrom NotificationType = "creator_transferred_from"
)

// Notification is a message addressed to one user about a receipt event.
type Notification struct {
	ID     string
	UserID string
	Type   NotificationType
	Title  string
	// Message is the human-readable body.
	Message   string
	ReceiptID string
	// RelatedUserID is the other user involved in the event, if any.
	RelatedUserID string
	Read          bool
	CreatedAt     int64
}
