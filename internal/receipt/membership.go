package receipt

import (
	"fmt"

	"github.com/mmynk/sharezin/internal/models"
)

// RequestJoin records the actor's request to join an open receipt.
func (w *Workflow) RequestJoin(snapshot *models.Receipt, actor Actor) (*Result, error) {
	if actor.UserID == "" {
		return nil, ErrUserRequired
	}
	if snapshot.IsClosed {
		return nil, ErrReceiptClosed
	}
	if snapshot.IsCreator(actor.UserID) {
		return nil, ErrCreatorCannotJoin
	}
	if _, ok := snapshot.ParticipantByUser(actor.UserID); ok {
		return nil, ErrAlreadyParticipant
	}
	if _, ok := snapshot.PendingByUser(actor.UserID); ok {
		return nil, ErrAlreadyPending
	}

	r := snapshot.Clone()
	r.PendingParticipants = append(r.PendingParticipants, models.PendingParticipant{
		ID:          w.newID(),
		Name:        actor.Name,
		UserID:      actor.UserID,
		RequestedAt: w.now(),
	})

	return &Result{
		Receipt: r,
		Notifications: []models.Notification{
			w.notification(r, r.CreatorID,
				models.NotificationParticipantRequest,
				"Join request",
				fmt.Sprintf("%s wants to join %s", actor.Name, r.Title),
				actor.UserID,
			),
		},
	}, nil
}

// ApproveJoin turns a pending request into a participant.
func (w *Workflow) ApproveJoin(snapshot *models.Receipt, actor Actor, pendingID string) (*Result, error) {
	if !snapshot.IsCreator(actor.UserID) {
		return nil, ErrOnlyCreatorCanDecide
	}
	pending, ok := snapshot.Pending(pendingID)
	if !ok {
		return nil, ErrJoinRequestNotFound
	}
	if snapshot.IsClosed {
		return nil, ErrReceiptClosed
	}
	if _, ok := snapshot.ParticipantByUser(pending.UserID); ok {
		return nil, ErrAlreadyParticipant
	}

	r := snapshot.Clone()
	removePending(r, pendingID)
	r.Participants = append(r.Participants, models.Participant{
		ID:     w.newID(),
		Name:   pending.Name,
		UserID: pending.UserID,
	})
	recompute(r)

	return &Result{
		Receipt: r,
		Notifications: []models.Notification{
			w.notification(r, pending.UserID,
				models.NotificationParticipantApproved,
				"Request approved",
				fmt.Sprintf("You joined %s", r.Title),
				actor.UserID,
			),
		},
	}, nil
}

// RejectJoin deletes a pending request.
func (w *Workflow) RejectJoin(snapshot *models.Receipt, actor Actor, pendingID string) (*Result, error) {
	if !snapshot.IsCreator(actor.UserID) {
		return nil, ErrOnlyCreatorCanDecide
	}
	pending, ok := snapshot.Pending(pendingID)
	if !ok {
		return nil, ErrJoinRequestNotFound
	}

	r := snapshot.Clone()
	removePending(r, pendingID)

	return &Result{
		Receipt: r,
		Notifications: []models.Notification{
			w.notification(r, pending.UserID,
				models.NotificationParticipantRejected,
				"Request rejected",
				fmt.Sprintf("Your request to join %s was rejected", r.Title),
				actor.UserID,
			),
		},
	}, nil
}

// NewParticipant describes a participant the creator adds directly.
type NewParticipant struct {
	Name    string
	UserID  string
	GroupID string
}

// AddParticipants lets the creator add people to an open receipt. Members that
// already take part (by account, or as the same guest of the same group) are skipped; a pending request from an added
// account is resolved by the add.
func (w *Workflow) AddParticipants(snapshot *models.Receipt, actor Actor, people ...NewParticipant) (*Result, error) {
	if !snapshot.IsCreator(actor.UserID) {
		return nil, ErrOnlyCreatorCanAddParticipants
	}
	if snapshot.IsClosed {
		return nil, ErrReceiptClosed
	}
	for _, p := range people {
		if p.Name == "" {
			return nil, ErrParticipantNameRequired
		}
	}

	r := snapshot.Clone()
	for _, p := range people {
		if _, ok := r.ParticipantByUser(p.UserID); ok {
			continue
		}
		if p.UserID == "" && p.GroupID != "" && hasGroupGuest(r, p.GroupID, p.Name) {
			continue
		}
		if pending, ok := r.PendingByUser(p.UserID); ok && p.UserID != "" {
			removePending(r, pending.ID)
		}
		r.Participants = append(r.Participants, models.Participant{
			ID:      w.newID(),
			Name:    p.Name,
			UserID:  p.UserID,
			GroupID: p.GroupID,
		})
	}
	recompute(r)
	return &Result{Receipt: r}, nil
}

// AddParticipant adds a single person. Unlike AddParticipants it reports an
// account that already takes part.
func (w *Workflow) AddParticipant(snapshot *models.Receipt, actor Actor, p NewParticipant) (*Result, error) {
	if _, ok := snapshot.ParticipantByUser(p.UserID); ok && snapshot.IsCreator(actor.UserID) {
		return nil, ErrAlreadyParticipant
	}
	return w.AddParticipants(snapshot, actor, p)
}

// ApplyGroup adds every member of a group template to the receipt.
func (w *Workflow) ApplyGroup(snapshot *models.Receipt, actor Actor, group *models.Group) (*Result, error) {
	people := make([]NewParticipant, 0, len(group.Members))
	for _, m := range group.Members {
		people = append(people, NewParticipant{Name: m.Name, UserID: m.UserID, GroupID: group.ID})
	}
	return w.AddParticipants(snapshot, actor, people...)
}

func hasGroupGuest(r *models.Receipt, groupID, name string) bool {
	for _, p := range r.Participants {
		if p.UserID == "" && p.GroupID == groupID && p.Name == name {
			return true
		}
	}
	return false
}
