// Package plan enforces per-account usage limits.
package plan

import "errors"

var (
	ErrReceiptLimit     = errors.New("receipt limit reached for your plan")
	ErrParticipantLimit = errors.New("participant limit reached for your plan")
)

// Limits caps what an account may do. Zero means unlimited.
type Limits struct {
	MaxReceipts        int
	MaxParticipants    int
	MaxHistoryReceipts int
}

// CanCreateReceipt reports whether an account owning count open receipts may create another.
func (l Limits) CanCreateReceipt(count int) bool {
	return l.MaxReceipts == 0 || count < l.MaxReceipts
}

// CanAddParticipant reports whether a receipt with count participants may take one more.
func (l Limits) CanAddParticipant(count int) bool {
	return l.MaxParticipants == 0 || count < l.MaxParticipants
}

// CanViewHistory reports whether an account with count past receipts may list them.
//
// This compares with <= while the other checks use <, so an account may hold
// exactly MaxHistoryReceipts and still see them. Kept as stored plans rely on it.
func (l Limits) CanViewHistory(count int) bool {
	return l.MaxHistoryReceipts == 0 || count <= l.MaxHistoryReceipts
}
