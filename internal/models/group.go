package models

// Member is a participant in a group.
type Member struct {
	// ID is the unique identifier for the member (UUID format).
	// Stable across the group's lifetime.
	ID string

	// Name is the display name of the member.
	Name string
}

// Group represents a set of people sharing expenses.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// OwnerID is the user account that created the group.
	OwnerID string

	// Name is the display name of the group (e.g., "Roommates", "Ski Trip").
	Name string

	// Members is the ordered list of members. Insertion order is preserved
	// and defines the iteration order for balance reports.
	Members []Member

	// Expenses is the group's expense history, oldest first.
	Expenses []Expense

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// MemberIDs returns the ids of the group's members in insertion order.
func (g *Group) MemberIDs() []string {
	ids := make([]string, len(g.Members))
	for i, m := range g.Members {
		ids[i] = m.ID
	}
	return ids
}

// HasMember reports whether the given id belongs to a current member.
func (g *Group) HasMember(id string) bool {
	for _, m := range g.Members {
		if m.ID == id {
			return true
		}
	}
	return false
}
