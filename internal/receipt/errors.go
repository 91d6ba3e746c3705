package receipt

import "errors"

// Kind classifies why a transition was refused.
type Kind int

const (
	// KindValidation means the input itself is malformed.
	KindValidation Kind = iota + 1
	// KindForbidden means the actor lacks the right to trigger the transition.
	KindForbidden
	// KindConflict means the transition is not valid from the current state.
	KindConflict
	// KindNotFound means a referenced receipt, participant, item or request is missing.
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindForbidden:
		return "forbidden"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Error is a refused transition. Reason is shown to the user as is.
type Error struct {
	Kind   Kind
	Reason string
}

func (e *Error) Error() string {
	return e.Reason
}

func newError(kind Kind, reason string) *Error {
	return &Error{Kind: kind, Reason: reason}
}

// KindOf returns the Kind of a receipt error, or 0 for anything else.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// Validation errors
var (
	ErrTitleRequired           = newError(KindValidation, "title is required")
	ErrInvalidServiceCharge    = newError(KindValidation, "service charge must be between 0 and 100")
	ErrNegativeCover           = newError(KindValidation, "cover cannot be negative")
	ErrItemNameRequired        = newError(KindValidation, "item name is required")
	ErrInvalidQuantity         = newError(KindValidation, "quantity must be positive")
	ErrInvalidPrice            = newError(KindValidation, "price cannot be negative")
	ErrParticipantNameRequired = newError(KindValidation, "participant name is required")
	ErrUserRequired            = newError(KindValidation, "an account is required")
)

// Forbidden errors
var (
	ErrOnlyCreatorCanClose           = newError(KindForbidden, "only the creator can close the receipt")
	ErrOnlyCreatorCanCloseOthers     = newError(KindForbidden, "only the creator can close another participant")
	ErrOnlyCreatorCanRemove          = newError(KindForbidden, "only the creator can remove participants")
	ErrCannotRemoveCreator           = newError(KindForbidden, "the creator cannot be removed")
	ErrOnlyCreatorCanTransfer        = newError(KindForbidden, "only the creator can transfer the receipt")
	ErrOnlyCreatorCanDecide          = newError(KindForbidden, "only the creator can approve or reject requests")
	ErrOnlyCreatorCanAddParticipants = newError(KindForbidden, "only the creator can add participants")
	ErrOnlyCreatorCanDeleteItems     = newError(KindForbidden, "only the creator can delete items directly")
	ErrNotParticipant                = newError(KindForbidden, "you are not a participant of this receipt")
	ErrItemsForSelfOnly              = newError(KindForbidden, "participants can only add items for themselves")
	ErrNotItemOwner                  = newError(KindForbidden, "only owner can request deletion of own items")
	ErrCreatorDeletesDirectly        = newError(KindForbidden, "the creator deletes items directly")
)

// Conflict errors
var (
	ErrReceiptClosed            = newError(KindConflict, "receipt is closed")
	ErrReceiptAlreadyClosed     = newError(KindConflict, "receipt is already closed")
	ErrParticipantClosed        = newError(KindConflict, "participant is closed")
	ErrParticipantAlreadyClosed = newError(KindConflict, "participation already closed")
	ErrDeletionAlreadyRequested = newError(KindConflict, "deletion already requested")
	ErrAlreadyCreator           = newError(KindConflict, "participant is already the creator")
	ErrTransferToClosed         = newError(KindConflict, "cannot transfer to a closed participant")
	ErrTransferToGuest          = newError(KindConflict, "cannot transfer to a participant without an account")
	ErrAlreadyParticipant       = newError(KindConflict, "already a participant of this receipt")
	ErrAlreadyPending           = newError(KindConflict, "join request already pending")
	ErrCreatorCannotJoin        = newError(KindConflict, "you are the creator of this receipt")
)

// NotFound errors
var (
	ErrParticipantNotFound     = newError(KindNotFound, "participant not found")
	ErrItemNotFound            = newError(KindNotFound, "item not found")
	ErrJoinRequestNotFound     = newError(KindNotFound, "join request not found")
	ErrDeletionRequestNotFound = newError(KindNotFound, "deletion request not found")
)
