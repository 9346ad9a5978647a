package models

import "github.com/shopspring/decimal"

// Epsilon is the tolerance for currency comparisons: one cent.
// Split sums must match the expense total within Epsilon, and ledger edges
// at or below Epsilon are removed rather than stored.
var Epsilon = decimal.New(1, -2)

// SplitKind selects how one participant's share of an expense is computed.
type SplitKind string

const (
	// SplitEqual divides the remainder (total minus exact and percent
	// reserves) equally among all equal splits. Value is ignored.
	SplitEqual SplitKind = "EQUAL"

	// SplitExact assigns Value directly as the participant's share.
	SplitExact SplitKind = "EXACT"

	// SplitPercent assigns Value percent (0-100) of the expense total.
	SplitPercent SplitKind = "PERCENT"
)

// Split is one participant's share rule on an expense.
//
// Value is the kind-dependent input: a currency amount for SplitExact, a
// percentage for SplitPercent, ignored for SplitEqual. Amount is the final
// calculated share, populated by the calculator during commit and immutable
// afterwards.
type Split struct {
	UserID string
	Kind   SplitKind
	Value  decimal.Decimal
	Amount decimal.Decimal
}

// EqualSplit builds an equal-share split for the given user.
func EqualSplit(userID string) Split {
	return Split{UserID: userID, Kind: SplitEqual}
}

// ExactSplit builds a split owing exactly amount.
func ExactSplit(userID string, amount decimal.Decimal) Split {
	return Split{UserID: userID, Kind: SplitExact, Value: amount}
}

// PercentSplit builds a split owing percent (0-100) of the expense total.
func PercentSplit(userID string, percent decimal.Decimal) Split {
	return Split{UserID: userID, Kind: SplitPercent, Value: percent}
}
