package models

import "time"

// Receipt represents a shared bill that several participants add items to.
type Receipt struct {
	// ID is the unique identifier for the receipt (UUID format).
	ID string

	// Title is the human-readable name for the receipt (e.g., "Friday dinner").
	Title string

	// Date is the day the bill happened. Stored as Unix seconds.
	Date int64

	// CreatorID is the user ID of the owner. Only the creator may close the
	// receipt, remove participants, approve requests or hand ownership over.
	CreatorID string

	// InviteCode is the short uppercase code others use to request to join.
	// Assigned once at creation and never regenerated.
	InviteCode string

	// ServiceChargePercent is applied proportionally to item consumption (0-100).
	ServiceChargePercent float64

	// Cover is a flat fee split evenly between all participants.
	Cover float64

	// Items are the billed lines in the order they were added.
	Items []ReceiptItem

	// Participants are the billed parties, unique by ID.
	Participants []Participant

	// PendingParticipants are join requests awaiting the creator's decision.
	PendingParticipants []PendingParticipant

	// DeletionRequests are item removal requests awaiting the creator's decision.
	// There is at most one per item.
	DeletionRequests []DeletionRequest

	// Total is the cached receipt total at the last recomputation.
	Total float64

	// IsClosed is set once by the creator and never cleared.
	IsClosed bool

	// Version is incremented on every save and used for optimistic locking.
	Version int64

	// CreatedAt is the Unix timestamp when the receipt was created.
	CreatedAt int64
}

// Participant represents one billed party within one receipt.
type Participant struct {
	ID   string
	Name string

	// GroupID is set when the participant was added from a group template.
	GroupID string

	// UserID links the participant to an account. Empty for guests.
	UserID string

	// IsClosed means the participant is done adding items.
	IsClosed bool
}

// PendingParticipant is a request from a user to join a receipt.
type PendingParticipant struct {
	ID          string
	Name        string
	UserID      string
	RequestedAt time.Time
}

// ReceiptItem is a single billed line owned by one participant.
type ReceiptItem struct {
	ID            string
	Name          string
	Quantity      float64
	Price         float64
	ParticipantID string
	AddedAt       time.Time
}

// DeletionRequest is a request by an item's owner to remove that item.
type DeletionRequest struct {
	ID            string
	ItemID        string
	ParticipantID string
	RequestedAt   time.Time
}

// Clone returns a deep copy of the receipt.
func (r *Receipt) Clone() *Receipt {
	if r == nil {
		return nil
	}
	c := *r
	c.Items = append([]ReceiptItem(nil), r.Items...)
	c.Participants = append([]Participant(nil), r.Participants...)
	c.PendingParticipants = append([]PendingParticipant(nil), r.PendingParticipants...)
	c.DeletionRequests = append([]DeletionRequest(nil), r.DeletionRequests...)
	return &c
}

// Participant returns the participant with the given ID.
func (r *Receipt) Participant(id string) (*Participant, bool) {
	for i := range r.Participants {
		if r.Participants[i].ID == id {
			return &r.Participants[i], true
		}
	}
	return nil, false
}

// ParticipantByUser returns the participant linked to the given user.
func (r *Receipt) ParticipantByUser(userID string) (*Participant, bool) {
	if userID == "" {
		return nil, false
	}
	for i := range r.Participants {
		if r.Participants[i].UserID == userID {
			return &r.Participants[i], true
		}
	}
	return nil, false
}

// Item returns the item with the given ID.
func (r *Receipt) Item(id string) (*ReceiptItem, bool) {
	for i := range r.Items {
		if r.Items[i].ID == id {
			return &r.Items[i], true
		}
	}
	return nil, false
}

// Pending returns the pending join request with the given ID.
func (r *Receipt) Pending(id string) (*PendingParticipant, bool) {
	for i := range r.PendingParticipants {
		if r.PendingParticipants[i].ID == id {
			return &r.PendingParticipants[i], true
		}
	}
	return nil, false
}

// PendingByUser returns the pending join request raised by the given user.
func (r *Receipt) PendingByUser(userID string) (*PendingParticipant, bool) {
	for i := range r.PendingParticipants {
		if r.PendingParticipants[i].UserID == userID {
			return &r.PendingParticipants[i], true
		}
	}
	return nil, false
}

// DeletionRequest returns the deletion request with the given ID.
func (r *Receipt) DeletionRequest(id string) (*DeletionRequest, bool) {
	for i := range r.DeletionRequests {
		if r.DeletionRequests[i].ID == id {
			return &r.DeletionRequests[i], true
		}
	}
	return nil, false
}

// DeletionRequestForItem returns the deletion request raised for the given item.
func (r *Receipt) DeletionRequestForItem(itemID string) (*DeletionRequest, bool) {
	for i := range r.DeletionRequests {
		if r.DeletionRequests[i].ItemID == itemID {
			return &r.DeletionRequests[i], true
		}
	}
	return nil, false
}

// IsCreator reports whether userID owns the receipt.
func (r *Receipt) IsCreator(userID string) bool {
	return userID != "" && r.CreatorID == userID
}

// HasMember reports whether userID is the creator or one of the participants.
func (r *Receipt) HasMember(userID string) bool {
	if r.IsCreator(userID) {
		return true
	}
	_, ok := r.ParticipantByUser(userID)
	return ok
}
