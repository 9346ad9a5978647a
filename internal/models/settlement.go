package models

import "github.com/shopspring/decimal"

// Settlement records a payment between users that reduced a ledger debt.
// Settlements only ever shrink an existing debtor→creditor edge; they never
// reverse one or create a new edge.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string

	// GroupID scopes the settlement to a group's ledger, or empty for a
	// purely global settlement.
	GroupID string

	// FromUserID is the debtor who paid.
	FromUserID string

	// ToUserID is the creditor who was paid.
	ToUserID string

	// Amount is the payment amount. Always positive and never larger than
	// the debt recorded at the time of settlement.
	Amount decimal.Decimal

	// CreatedAt is the Unix timestamp when the settlement was recorded.
	CreatedAt int64

	// Note is an optional free-text description.
	Note string
}
