// Package models defines the core domain models for Sharezin.
//
// # Receipt aggregate
//
// A Receipt is a shared bill. It owns its items, participants, pending join
// requests and item deletion requests:
//   - Receipt: the aggregate root, identified by ID and by a short InviteCode
//   - Participant: one billed party within exactly one receipt
//   - PendingParticipant: a join request awaiting the creator's decision
//   - ReceiptItem: a billed line owned by one participant
//   - DeletionRequest: an item owner's request to remove their item
//
// # Accounts and templates
//
//   - User: a registered account; participants link to it through UserID
//   - Group: a reusable named list of people for fast receipt setup
//   - Notification: a message addressed to one user about a receipt event
//
// # Design Principles
//
// 1. **Per-receipt participants**: a Participant row never outlives its receipt.
// A person who joins several receipts has one User and one Participant per receipt.
// 2. **Avoid circular references**: relationships use ID strings, not pointers.
// 3. **Snapshots**: the receipt package works on copies (see Receipt.Clone), so a
// rejected transition never leaves a half-applied aggregate behind.
package models
