// Package receipt implements the receipt lifecycle and its request workflows.
//
// Every transition takes a receipt snapshot and the acting user, checks its guards,
// and returns a new snapshot together with the notifications the caller should emit.
// The input snapshot is never modified. Transitions are not safe against concurrent
// writers on their own; the storage layer serializes them with a version check.
package receipt

import (
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/sharezin/internal/calculator"
	"github.com/mmynk/sharezin/internal/models"
)

// Workflow applies receipt transitions.
type Workflow struct {
	now   func() time.Time
	newID func() string
}

// Option configures a Workflow.
type Option func(*Workflow)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(w *Workflow) { w.now = now }
}

// WithIDGenerator overrides how new entity IDs are made.
func WithIDGenerator(newID func() string) Option {
	return func(w *Workflow) { w.newID = newID }
}

// New creates a Workflow using wall-clock time and UUIDs.
func New(opts ...Option) *Workflow {
	w := &Workflow{
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Actor is the authenticated user triggering a transition.
type Actor struct {
	UserID string
	Name   string
}

// Result is the outcome of a successful transition.
type Result struct {
	Receipt *models.Receipt
	// Notifications should be delivered best-effort after the receipt is saved.
	Notifications []models.Notification
}

// Draft holds the fields a creator supplies for a new receipt.
type Draft struct {
	Title                string
	Date                 time.Time
	ServiceChargePercent float64
	Cover                float64
}

// ItemDraft holds the fields for a new item. An empty ParticipantID means the
// actor's own participant.
type ItemDraft struct {
	Name          string
	Quantity      float64
	Price         float64
	ParticipantID string
}

// ValidateDraft checks the receipt fields a creator may set.
func ValidateDraft(d Draft) error {
	if d.Title == "" {
		return ErrTitleRequired
	}
	if d.ServiceChargePercent < 0 || d.ServiceChargePercent > 100 {
		return ErrInvalidServiceCharge
	}
	if d.Cover < 0 {
		return ErrNegativeCover
	}
	return nil
}

func validateItem(d ItemDraft) error {
	if d.Name == "" {
		return ErrItemNameRequired
	}
	if d.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if d.Price < 0 {
		return ErrInvalidPrice
	}
	return nil
}

// Create builds a new open receipt owned by creator, with the creator as its
// first participant.
func (w *Workflow) Create(d Draft, creator Actor, inviteCode string) (*models.Receipt, error) {
	if creator.UserID == "" {
		return nil, ErrUserRequired
	}
	if err := ValidateDraft(d); err != nil {
		return nil, err
	}

	now := w.now()
	date := d.Date
	if date.IsZero() {
		date = now
	}

	r := &models.Receipt{
		ID:                   w.newID(),
		Title:                d.Title,
		Date:                 date.Unix(),
		CreatorID:            creator.UserID,
		InviteCode:           inviteCode,
		ServiceChargePercent: d.ServiceChargePercent,
		Cover:                d.Cover,
		CreatedAt:            now.Unix(),
		Participants: []models.Participant{{
			ID:     w.newID(),
			Name:   creator.Name,
			UserID: creator.UserID,
		}},
	}
	recompute(r)
	return r, nil
}

// recompute refreshes the cached total.
func recompute(r *models.Receipt) {
	r.Total = calculator.Round(calculator.ReceiptTotal(r))
}

// actorParticipant resolves the participant the actor acts as.
func actorParticipant(r *models.Receipt, actor Actor) (*models.Participant, error) {
	p, ok := r.ParticipantByUser(actor.UserID)
	if !ok {
		return nil, ErrNotParticipant
	}
	return p, nil
}

func (w *Workflow) notification(r *models.Receipt, to string, typ models.NotificationType, title, message, related string) models.Notification {
	return models.Notification{
		UserID:        to,
		Type:          typ,
		Title:         title,
		Message:       message,
		ReceiptID:     r.ID,
		RelatedUserID: related,
		CreatedAt:     w.now().Unix(),
	}
}

func removeItems(r *models.Receipt, keep func(models.ReceiptItem) bool) {
	items := r.Items[:0]
	removed := make(map[string]bool)
	for _, item := range r.Items {
		if keep(item) {
			items = append(items, item)
		} else {
			removed[item.ID] = true
		}
	}
	r.Items = items

	// Requests for removed items go with them.
	requests := r.DeletionRequests[:0]
	for _, dr := range r.DeletionRequests {
		if !removed[dr.ItemID] {
			requests = append(requests, dr)
		}
	}
	r.DeletionRequests = requests
}

func removeDeletionRequest(r *models.Receipt, id string) {
	requests := r.DeletionRequests[:0]
	for _, dr := range r.DeletionRequests {
		if dr.ID != id {
			requests = append(requests, dr)
		}
	}
	r.DeletionRequests = requests
}

func removePending(r *models.Receipt, id string) {
	pending := r.PendingParticipants[:0]
	for _, p := range r.PendingParticipants {
		if p.ID != id {
			pending = append(pending, p)
		}
	}
	r.PendingParticipants = pending
}
