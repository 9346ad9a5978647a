package models

import "github.com/shopspring/decimal"

// Category tags an expense for reporting. Free text is not accepted; the
// service falls back to CategoryOther for anything outside this set.
type Category string

const (
	CategoryFood          Category = "FOOD"
	CategoryTravel        Category = "TRAVEL"
	CategoryEntertainment Category = "ENTERTAINMENT"
	CategoryUtilities     Category = "UTILITIES"
	CategoryShopping      Category = "SHOPPING"
	CategoryOther         Category = "OTHER"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryFood, CategoryTravel, CategoryEntertainment,
		CategoryUtilities, CategoryShopping, CategoryOther:
		return true
	}
	return false
}

// Expense is a committed expense. It is immutable after commit: there is no
// edit or delete operation, and the splits carry their final amounts.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// Total is the full expense amount paid by the payer. Always positive.
	Total decimal.Decimal

	// PayerID is the user who paid. Always present among the split
	// participants.
	PayerID string

	// Splits are the per-participant share rules with calculated amounts.
	// Invariant: the amounts sum to Total within Epsilon.
	Splits []Split

	// GroupID is the owning group, or empty for an ungrouped expense.
	GroupID string

	Description string
	Category    Category

	// CreatedAt is the Unix timestamp when the expense was committed.
	CreatedAt int64
}

// ParticipantIDs returns the user ids of all split participants, in split order.
func (e *Expense) ParticipantIDs() []string {
	ids := make([]string, len(e.Splits))
	for i, s := range e.Splits {
		ids[i] = s.UserID
	}
	return ids
}

// SplitFor returns the split for the given user, or false if the user is not
// a participant.
func (e *Expense) SplitFor(userID string) (Split, bool) {
	for _, s := range e.Splits {
		if s.UserID == userID {
			return s, true
		}
	}
	return Split{}, false
}

// Involves reports whether the user paid for the expense or appears in its splits.
func (e *Expense) Involves(userID string) bool {
	if e.PayerID == userID {
		return true
	}
	_, ok := e.SplitFor(userID)
	return ok
}

// CalculatedTotal returns the sum of all calculated split amounts.
func (e *Expense) CalculatedTotal() decimal.Decimal {
	sum := decimal.Zero
	for _, s := range e.Splits {
		sum = sum.Add(s.Amount)
	}
	return sum
}
