package models

// Group represents a named set of users who share expenses.
//
// Invariant: MemberIDs and each member's User.GroupIDs are kept symmetric by
// the group registry — if the group contains the user, the user contains the
// group, and vice versa.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g. "Roommates").
	Name string

	Description string

	// CreatedBy is the user id of the creator.
	CreatedBy string

	// MemberIDs are the member user ids, in join order.
	MemberIDs []string

	// ExpenseIDs are the ids of expenses committed against this group,
	// append-only in commit order.
	ExpenseIDs []string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64

	// Active is false after soft-deactivation.
	Active bool
}

// HasMember reports whether the user is a member of this group.
func (g *Group) HasMember(userID string) bool {
	for _, id := range g.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}
