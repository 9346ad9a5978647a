package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/errs"
	"github.com/mmynk/splitledger/internal/models"
)

// ValidateSplits checks a split set for structural validity before the
// calculated amounts are trusted for commit. It works on the raw input
// values and is advisory: the authoritative check is the commit-time
// comparison of the calculated sum against the total.
//
// Rejections, each with a distinct reason:
//   - empty split list
//   - any exact value below zero
//   - percent values summing outside [0, 100]
//   - exact + percent reserves exceeding total (plus epsilon), when both
//     kinds are present
//
// The last check deliberately skips the equal-only remainder case; the
// commit-time sum check covers it.
func ValidateSplits(total decimal.Decimal, splits []models.Split) error {
	if len(splits) == 0 {
		return errs.E(errs.SplitMismatch, "", "no splits provided")
	}

	exactTotal := decimal.Zero
	percentTotal := decimal.Zero
	hasExact, hasPercent := false, false

	for _, s := range splits {
		switch s.Kind {
		case models.SplitExact:
			if s.Value.IsNegative() {
				return errs.E(errs.InvalidAmount, s.UserID, "exact amount cannot be negative")
			}
			exactTotal = exactTotal.Add(s.Value)
			hasExact = true
		case models.SplitPercent:
			percentTotal = percentTotal.Add(s.Value)
			hasPercent = true
		}
	}

	if hasPercent && (percentTotal.IsNegative() || percentTotal.GreaterThan(hundred)) {
		return errs.E(errs.InvalidAmount, "",
			"percentages must sum to between 0 and 100, got %s", percentTotal)
	}

	if hasExact && hasPercent {
		reserved := exactTotal.Add(percentTotal.Div(hundred).Mul(total))
		if reserved.GreaterThan(total.Add(models.Epsilon)) {
			return errs.E(errs.SplitMismatch, "",
				"exact amounts and percentages exceed total: %s > %s", reserved, total)
		}
	}

	return nil
}
