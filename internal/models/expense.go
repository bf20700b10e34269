package models

// Expense is a recorded payment event: one member fronted the money and a
// set of members (which may include the payer) share the cost equally.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// GroupID is the group this expense belongs to.
	GroupID string

	// Title is the human-readable description (e.g., "Dinner", "Gas").
	Title string

	// Amount is the total paid. Always positive.
	Amount float64

	// PayerID is the member who paid the full amount. Must be a group
	// member, but need not be among the involved members.
	PayerID string

	// InvolvedMemberIDs are the members splitting the cost equally.
	// Non-empty and a subset of the group's members. Order is irrelevant
	// for the calculation.
	InvolvedMemberIDs []string

	// CreatedAt is the Unix timestamp when the expense was recorded.
	// Used for display ordering only, never for settlement logic.
	CreatedAt int64
}

// Transfer is a single settlement instruction: From pays To the Amount.
// Transfers are derived from balances and never persisted.
type Transfer struct {
	// FromMemberID is the debtor making the payment.
	FromMemberID string

	// ToMemberID is the creditor receiving the payment.
	ToMemberID string

	// Amount is the payment amount. Always positive.
	Amount float64
}
