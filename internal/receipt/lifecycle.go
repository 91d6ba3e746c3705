package receipt

import (
	"fmt"

	"github.com/mmynk/sharezin/internal/models"
)

// AddItem adds a line to an open receipt.
// Participants add items for themselves while their participation is open. The
// creator may add items for any participant, closed or not.
func (w *Workflow) AddItem(snapshot *models.Receipt, actor Actor, d ItemDraft) (*Result, error) {
	if err := validateItem(d); err != nil {
		return nil, err
	}
	if snapshot.IsClosed {
		return nil, ErrReceiptClosed
	}

	r := snapshot.Clone()
	isCreator := r.IsCreator(actor.UserID)

	self, err := actorParticipant(r, actor)
	if err != nil && !isCreator {
		return nil, err
	}
	ownerID := d.ParticipantID
	if ownerID == "" {
		if self == nil {
			return nil, ErrParticipantNotFound
		}
		ownerID = self.ID
	}
	owner, ok := r.Participant(ownerID)
	if !ok {
		return nil, ErrParticipantNotFound
	}
	if !isCreator {
		if owner.ID != self.ID {
			return nil, ErrItemsForSelfOnly
		}
		if self.IsClosed {
			return nil, ErrParticipantClosed
		}
	}

	r.Items = append(r.Items, models.ReceiptItem{
		ID:            w.newID(),
		Name:          d.Name,
		Quantity:      d.Quantity,
		Price:         d.Price,
		ParticipantID: owner.ID,
		AddedAt:       w.now(),
	})
	recompute(r)

	res := &Result{Receipt: r}
	if !isCreator {
		res.Notifications = append(res.Notifications, w.notification(r, r.CreatorID,
			models.NotificationItemAdded,
			"New item",
			fmt.Sprintf("%s added %q to %s", owner.Name, d.Name, r.Title),
			actor.UserID,
		))
	}
	return res, nil
}

// DeleteItem lets the creator remove any item. Pending deletion requests for the
// item are dropped with it.
func (w *Workflow) DeleteItem(snapshot *models.Receipt, actor Actor, itemID string) (*Result, error) {
	if !snapshot.IsCreator(actor.UserID) {
		return nil, ErrOnlyCreatorCanDeleteItems
	}
	if _, ok := snapshot.Item(itemID); !ok {
		return nil, ErrItemNotFound
	}

	r := snapshot.Clone()
	removeItems(r, func(item models.ReceiptItem) bool { return item.ID != itemID })
	recompute(r)
	return &Result{Receipt: r}, nil
}

// Close locks the receipt. Nobody may add items or raise deletion requests afterwards.
func (w *Workflow) Close(snapshot *models.Receipt, actor Actor) (*Result, error) {
	if !snapshot.IsCreator(actor.UserID) {
		return nil, ErrOnlyCreatorCanClose
	}
	if snapshot.IsClosed {
		return nil, ErrReceiptAlreadyClosed
	}

	r := snapshot.Clone()
	r.IsClosed = true

	res := &Result{Receipt: r}
	for _, p := range r.Participants {
		if p.UserID == "" || p.UserID == r.CreatorID {
			continue
		}
		res.Notifications = append(res.Notifications, w.notification(r, p.UserID,
			models.NotificationReceiptClosed,
			"Receipt closed",
			fmt.Sprintf("%s was closed by its creator", r.Title),
			actor.UserID,
		))
	}
	return res, nil
}

// CloseParticipant marks a participant as done adding items. A participant may
// close their own participation; only the creator may close someone else's.
func (w *Workflow) CloseParticipant(snapshot *models.Receipt, actor Actor, participantID string) (*Result, error) {
	target, ok := snapshot.Participant(participantID)
	if !ok {
		return nil, ErrParticipantNotFound
	}
	isSelf := actor.UserID != "" && target.UserID == actor.UserID
	if !isSelf && !snapshot.IsCreator(actor.UserID) {
		return nil, ErrOnlyCreatorCanCloseOthers
	}
	if snapshot.IsClosed {
		return nil, ErrReceiptClosed
	}
	if target.IsClosed {
		return nil, ErrParticipantAlreadyClosed
	}

	r := snapshot.Clone()
	p, _ := r.Participant(participantID)
	p.IsClosed = true
	return &Result{Receipt: r}, nil
}

// RemoveParticipant deletes a participant together with their items and any
// deletion requests for those items. The creator cannot remove themselves.
func (w *Workflow) RemoveParticipant(snapshot *models.Receipt, actor Actor, participantID string) (*Result, error) {
	if !snapshot.IsCreator(actor.UserID) {
		return nil, ErrOnlyCreatorCanRemove
	}
	target, ok := snapshot.Participant(participantID)
	if !ok {
		return nil, ErrParticipantNotFound
	}
	if target.UserID == snapshot.CreatorID {
		return nil, ErrCannotRemoveCreator
	}

	r := snapshot.Clone()
	participants := r.Participants[:0]
	for _, p := range r.Participants {
		if p.ID != participantID {
			participants = append(participants, p)
		}
	}
	r.Participants = participants
	removeItems(r, func(item models.ReceiptItem) bool { return item.ParticipantID != participantID })
	recompute(r)
	return &Result{Receipt: r}, nil
}

// TransferCreator hands ownership to another open participant with an account.
func (w *Workflow) TransferCreator(snapshot *models.Receipt, actor Actor, participantID string) (*Result, error) {
	if !snapshot.IsCreator(actor.UserID) {
		return nil, ErrOnlyCreatorCanTransfer
	}
	if snapshot.IsClosed {
		return nil, ErrReceiptClosed
	}
	target, ok := snapshot.Participant(participantID)
	if !ok {
		return nil, ErrParticipantNotFound
	}
	if target.UserID == snapshot.CreatorID {
		return nil, ErrAlreadyCreator
	}
	if target.IsClosed {
		return nil, ErrTransferToClosed
	}
	if target.UserID == "" {
		return nil, ErrTransferToGuest
	}

	r := snapshot.Clone()
	previous := r.CreatorID
	r.CreatorID = target.UserID

	return &Result{
		Receipt: r,
		Notifications: []models.Notification{
			w.notification(r, previous,
				models.NotificationCreatorTransferredFrom,
				"Receipt handed over",
				fmt.Sprintf("%s is now the creator of %s", target.Name, r.Title),
				target.UserID,
			),
			w.notification(r, target.UserID,
				models.NotificationCreatorTransferred,
				"You are now the creator",
				fmt.Sprintf("You are now responsible for %s", r.Title),
				previous,
			),
		},
	}, nil
}

// RequestDeletion asks the creator to remove one of the actor's own items.
func (w *Workflow) RequestDeletion(snapshot *models.Receipt, actor Actor, itemID string) (*Result, error) {
	self, err := actorParticipant(snapshot, actor)
	if err != nil {
		return nil, err
	}
	item, ok := snapshot.Item(itemID)
	if !ok {
		return nil, ErrItemNotFound
	}
	if item.ParticipantID != self.ID {
		return nil, ErrNotItemOwner
	}
	if snapshot.IsCreator(actor.UserID) {
		return nil, ErrCreatorDeletesDirectly
	}
	if snapshot.IsClosed {
		return nil, ErrReceiptClosed
	}
	if self.IsClosed {
		return nil, ErrParticipantClosed
	}
	if _, exists := snapshot.DeletionRequestForItem(itemID); exists {
		return nil, ErrDeletionAlreadyRequested
	}

	r := snapshot.Clone()
	r.DeletionRequests = append(r.DeletionRequests, models.DeletionRequest{
		ID:            w.newID(),
		ItemID:        itemID,
		ParticipantID: self.ID,
		RequestedAt:   w.now(),
	})

	return &Result{
		Receipt: r,
		Notifications: []models.Notification{
			w.notification(r, r.CreatorID,
				models.NotificationDeletionRequest,
				"Deletion requested",
				fmt.Sprintf("%s asked to remove %q from %s", self.Name, item.Name, r.Title),
				actor.UserID,
			),
		},
	}, nil
}

// ApproveDeletion removes the requested item and the request.
func (w *Workflow) ApproveDeletion(snapshot *models.Receipt, actor Actor, requestID string) (*Result, error) {
	return w.decideDeletion(snapshot, actor, requestID, true)
}

// RejectDeletion drops the request and keeps the item.
func (w *Workflow) RejectDeletion(snapshot *models.Receipt, actor Actor, requestID string) (*Result, error) {
	return w.decideDeletion(snapshot, actor, requestID, false)
}

func (w *Workflow) decideDeletion(snapshot *models.Receipt, actor Actor, requestID string, approve bool) (*Result, error) {
	if !snapshot.IsCreator(actor.UserID) {
		return nil, ErrOnlyCreatorCanDecide
	}
	req, ok := snapshot.DeletionRequest(requestID)
	if !ok {
		return nil, ErrDeletionRequestNotFound
	}

	r := snapshot.Clone()
	itemName := ""
	if item, ok := r.Item(req.ItemID); ok {
		itemName = item.Name
	}

	typ := models.NotificationDeletionRejected
	title := "Deletion rejected"
	message := fmt.Sprintf("Your request to remove %q from %s was rejected", itemName, r.Title)
	if approve {
		itemID := req.ItemID
		removeItems(r, func(item models.ReceiptItem) bool { return item.ID != itemID })
		recompute(r)
		typ = models.NotificationDeletionApproved
		title = "Deletion approved"
		message = fmt.Sprintf("%q was removed from %s", itemName, r.Title)
	}
	removeDeletionRequest(r, requestID)

	res := &Result{Receipt: r}
	if requester, ok := r.Participant(req.ParticipantID); ok && requester.UserID != "" {
		res.Notifications = append(res.Notifications,
			w.notification(r, requester.UserID, typ, title, message, actor.UserID))
	}
	return res, nil
}
