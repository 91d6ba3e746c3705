package api

// User is the public view of an account.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	CreatedAt   int64  `json:"createdAt"`
}

type Participant struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	UserID   string `json:"userId,omitempty"`
	GroupID  string `json:"groupId,omitempty"`
	IsClosed bool   `json:"isClosed"`
}

type PendingParticipant struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	UserID      string `json:"userId"`
	RequestedAt int64  `json:"requestedAt"`
}

type Item struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Quantity      float64 `json:"quantity"`
	Price         float64 `json:"price"`
	ParticipantID string  `json:"participantId"`
	AddedAt       int64   `json:"addedAt"`
}

type DeletionRequest struct {
	ID            string `json:"id"`
	ItemID        string `json:"itemId"`
	ParticipantID string `json:"participantId"`
	RequestedAt   int64  `json:"requestedAt"`
}

// Receipt is the full view shown to participants.
type Receipt struct {
	ID                   string               `json:"id"`
	Title                string               `json:"title"`
	Date                 int64                `json:"date"`
	CreatorID            string               `json:"creatorId"`
	InviteCode           string               `json:"inviteCode"`
	ServiceChargePercent float64              `json:"serviceChargePercent"`
	Cover                float64              `json:"cover"`
	Total                float64              `json:"total"`
	IsClosed             bool                 `json:"isClosed"`
	Version              int64                `json:"version"`
	CreatedAt            int64                `json:"createdAt"`
	Participants         []Participant        `json:"participants"`
	PendingParticipants  []PendingParticipant `json:"pendingParticipants"`
	Items                []Item               `json:"items"`
	DeletionRequests     []DeletionRequest    `json:"deletionRequests"`
}

// ReceiptPreview is what someone holding only the invite code may see.
type ReceiptPreview struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	Date             int64  `json:"date"`
	IsClosed         bool   `json:"isClosed"`
	ParticipantCount int    `json:"participantCount"`
}

// Share is one participant's rounded part of a receipt.
type Share struct {
	ParticipantID string  `json:"participantId"`
	Name          string  `json:"name"`
	IsClosed      bool    `json:"isClosed"`
	Subtotal      float64 `json:"subtotal"`
	ServiceCharge float64 `json:"serviceCharge"`
	Cover         float64 `json:"cover"`
	Total         float64 `json:"total"`
}

type Summary struct {
	ReceiptID     string  `json:"receiptId"`
	ItemsTotal    float64 `json:"itemsTotal"`
	ServiceCharge float64 `json:"serviceCharge"`
	Cover         float64 `json:"cover"`
	Total         float64 `json:"total"`
	Shares        []Share `json:"shares"`
}

type GroupMember struct {
	Name   string `json:"name"`
	UserID string `json:"userId,omitempty"`
}

type Group struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	OwnerID   string        `json:"ownerId"`
	Members   []GroupMember `json:"members"`
	CreatedAt int64         `json:"createdAt"`
}

type Notification struct {
	ID            string `json:"id"`
	Type          string `json:"type"`
	Title         string `json:"title"`
	Message       string `json:"message"`
	ReceiptID     string `json:"receiptId"`
	RelatedUserID string `json:"relatedUserId,omitempty"`
	Read          bool   `json:"read"`
	CreatedAt     int64  `json:"createdAt"`
}

// Auth

type RegisterRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
}

type RegisterResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type LogoutRequest struct{}

type LogoutResponse struct{}

type GetCurrentUserRequest struct{}

type GetCurrentUserResponse struct {
	User *User `json:"user"`
}

// Receipts

type CreateReceiptRequest struct {
	Title string `json:"title"`
	// Date is a Unix timestamp; zero means now.
	Date                 int64   `json:"date"`
	ServiceChargePercent float64 `json:"serviceChargePercent"`
	Cover                float64 `json:"cover"`
}

// ReceiptResponse is returned by every call that changes a receipt.
type ReceiptResponse struct {
	Receipt *Receipt `json:"receipt"`
}

type GetReceiptRequest struct {
	ReceiptID string `json:"receiptId"`
}

type GetReceiptByInviteCodeRequest struct {
	InviteCode string `json:"inviteCode"`
}

type GetReceiptByInviteCodeResponse struct {
	Receipt *ReceiptPreview `json:"receipt"`
}

type ListReceiptsRequest struct{}

type ListReceiptsResponse struct {
	Receipts []*Receipt `json:"receipts"`
	// HistoryTruncated is set when the plan hides older closed receipts.
	HistoryTruncated bool `json:"historyTruncated"`
}

type GetSummaryRequest struct {
	ReceiptID string `json:"receiptId"`
}

type GetSummaryResponse struct {
	Summary *Summary `json:"summary"`
}

type AddItemRequest struct {
	ReceiptID string  `json:"receiptId"`
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	Price     float64 `json:"price"`
	// ParticipantID defaults to the caller's own participant.
	ParticipantID string `json:"participantId,omitempty"`
}

type DeleteItemRequest struct {
	ReceiptID string `json:"receiptId"`
	ItemID    string `json:"itemId"`
}

type CloseReceiptRequest struct {
	ReceiptID string `json:"receiptId"`
}

// ParticipantRequest targets one participant of a receipt.
type ParticipantRequest struct {
	ReceiptID     string `json:"receiptId"`
	ParticipantID string `json:"participantId"`
}

type AddParticipantRequest struct {
	ReceiptID string `json:"receiptId"`
	Name      string `json:"name"`
	UserID    string `json:"userId,omitempty"`
}

type ApplyGroupRequest struct {
	ReceiptID string `json:"receiptId"`
	GroupID   string `json:"groupId"`
}

type RequestDeletionRequest struct {
	ReceiptID string `json:"receiptId"`
	ItemID    string `json:"itemId"`
}

// DecisionRequest approves or rejects a pending join or deletion request.
type DecisionRequest struct {
	ReceiptID string `json:"receiptId"`
	RequestID string `json:"requestId"`
}

type JoinReceiptRequest struct {
	InviteCode string `json:"inviteCode"`
}

// Groups

type CreateGroupRequest struct {
	Name    string        `json:"name"`
	Members []GroupMember `json:"members"`
}

type GroupResponse struct {
	Group *Group `json:"group"`
}

type GetGroupRequest struct {
	GroupID string `json:"groupId"`
}

type ListGroupsRequest struct{}

type ListGroupsResponse struct {
	Groups []*Group `json:"groups"`
}

type DeleteGroupRequest struct {
	GroupID string `json:"groupId"`
}

type DeleteGroupResponse struct{}

// Notifications

type ListNotificationsRequest struct {
	UnreadOnly bool `json:"unreadOnly"`
}

type ListNotificationsResponse struct {
	Notifications []*Notification `json:"notifications"`
}

type MarkNotificationReadRequest struct {
	NotificationID string `json:"notificationId"`
}

type MarkNotificationReadResponse struct{}

type SubscribeRequest struct{}
