package models

// Group represents a reusable participant list.
// Applying a group to a receipt adds one participant per member.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Roommates", "Work Lunch").
	Name string

	// OwnerID is the user who created the template.
	OwnerID string

	// Members is the list of people in this group.
	Members []GroupMember

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// GroupMember is one person in a group template. UserID is empty for guests.
type GroupMember struct {
	Name   string
	UserID string
}
