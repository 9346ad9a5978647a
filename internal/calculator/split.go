// Package calculator implements the pure split math and split validation
// for expense commits. It performs no I/O and touches no shared state.
package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/models"
)

var hundred = decimal.NewFromInt(100)

// Calculate computes the final share amount for every split and returns a
// new slice; the input is never mutated.
//
// Algorithm:
//   - exact splits owe their value directly
//   - percent splits owe (value / 100) × total
//   - equal splits divide the remainder (total − exact − percent) equally
//
// Equal splits dividing only the remainder is what lets the three kinds mix
// within one expense. With no equal splits present, nothing here forces the
// reserved amount to match the total — that mismatch is caught by the
// commit-time sum check, not silently corrected.
func Calculate(total decimal.Decimal, splits []models.Split) []models.Split {
	out := make([]models.Split, len(splits))
	copy(out, splits)

	reserved := decimal.Zero
	equalCount := 0

	for i := range out {
		switch out[i].Kind {
		case models.SplitExact:
			out[i].Amount = out[i].Value
			reserved = reserved.Add(out[i].Amount)
		case models.SplitPercent:
			out[i].Amount = out[i].Value.Div(hundred).Mul(total)
			reserved = reserved.Add(out[i].Amount)
		case models.SplitEqual:
			equalCount++
		}
	}

	if equalCount > 0 {
		share := total.Sub(reserved).Div(decimal.NewFromInt(int64(equalCount)))
		for i := range out {
			if out[i].Kind == models.SplitEqual {
				out[i].Amount = share
			}
		}
	}

	return out
}
