package models

// User represents a registered participant.
//
// Users are never deleted; Active is flipped off instead so historical
// expenses and ledger edges keep resolving.
type User struct {
	// ID is the unique identifier for the user.
	ID string

	// Name is the display name of the user.
	Name string

	// Email is the user's email address.
	Email string

	// Phone is an optional contact number.
	Phone string

	// GroupIDs are the groups this user belongs to, in join order.
	// Kept symmetric with Group.MemberIDs by the group registry.
	GroupIDs []string

	// CreatedAt is the Unix timestamp when the user was registered.
	CreatedAt int64

	// Active is false after soft-deactivation.
	Active bool
}

// InGroup reports whether the user belongs to the given group.
func (u *User) InGroup(groupID string) bool {
	for _, id := range u.GroupIDs {
		if id == groupID {
			return true
		}
	}
	return false
}

// JoinGroup records group membership. No-op if already a member.
func (u *User) JoinGroup(groupID string) {
	if !u.InGroup(groupID) {
		u.GroupIDs = append(u.GroupIDs, groupID)
	}
}

// LeaveGroup discards the membership reference. No-op if not a member.
func (u *User) LeaveGroup(groupID string) {
	for i, id := range u.GroupIDs {
		if id == groupID {
			u.GroupIDs = append(u.GroupIDs[:i], u.GroupIDs[i+1:]...)
			return
		}
	}
}
