package calculator

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// wantAmount fails the test if the split's calculated amount is off by more
// than a cent.
func wantAmount(t *testing.T, splits []models.Split, userID, want string) {
	t.Helper()
	for _, s := range splits {
		if s.UserID != userID {
			continue
		}
		if diff := s.Amount.Sub(dec(want)).Abs(); diff.GreaterThan(models.Epsilon) {
			t.Errorf("%s amount = %s, want %s", userID, s.Amount, want)
		}
		return
	}
	t.Errorf("no split for %s", userID)
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name     string
		total    string
		splits   []models.Split
		validate func(t *testing.T, out []models.Split)
	}{
		{
			name:  "equal three-way split",
			total: "150",
			splits: []models.Split{
				models.EqualSplit("alice"),
				models.EqualSplit("bob"),
				models.EqualSplit("charlie"),
			},
			validate: func(t *testing.T, out []models.Split) {
				wantAmount(t, out, "alice", "50")
				wantAmount(t, out, "bob", "50")
				wantAmount(t, out, "charlie", "50")
			},
		},
		{
			name:  "mixed percent exact equal divides remainder",
			total: "240",
			splits: []models.Split{
				models.PercentSplit("alice", dec("50")),
				models.ExactSplit("bob", dec("80")),
				models.EqualSplit("charlie"),
			},
			validate: func(t *testing.T, out []models.Split) {
				// alice: 50% of 240 = 120, bob: exactly 80,
				// charlie: remainder 240-120-80 = 40
				wantAmount(t, out, "alice", "120")
				wantAmount(t, out, "bob", "80")
				wantAmount(t, out, "charlie", "40")
			},
		},
		{
			name:  "percent only",
			total: "200",
			splits: []models.Split{
				models.PercentSplit("alice", dec("60")),
				models.PercentSplit("bob", dec("40")),
			},
			validate: func(t *testing.T, out []models.Split) {
				wantAmount(t, out, "alice", "120")
				wantAmount(t, out, "bob", "80")
			},
		},
		{
			name:  "exact only mismatch is not corrected",
			total: "100",
			splits: []models.Split{
				models.ExactSplit("alice", dec("30")),
				models.ExactSplit("bob", dec("30")),
			},
			validate: func(t *testing.T, out []models.Split) {
				// No equal splits to absorb the gap; the calculator
				// leaves the 40 shortfall for the commit check.
				wantAmount(t, out, "alice", "30")
				wantAmount(t, out, "bob", "30")
			},
		},
		{
			name:  "multiple equal splits share remainder after exact",
			total: "100",
			splits: []models.Split{
				models.ExactSplit("alice", dec("40")),
				models.EqualSplit("bob"),
				models.EqualSplit("charlie"),
			},
			validate: func(t *testing.T, out []models.Split) {
				wantAmount(t, out, "alice", "40")
				wantAmount(t, out, "bob", "30")
				wantAmount(t, out, "charlie", "30")
			},
		},
		{
			name:  "uneven equal division stays within epsilon of total",
			total: "100",
			splits: []models.Split{
				models.EqualSplit("alice"),
				models.EqualSplit("bob"),
				models.EqualSplit("charlie"),
			},
			validate: func(t *testing.T, out []models.Split) {
				sum := decimal.Zero
				for _, s := range out {
					sum = sum.Add(s.Amount)
				}
				if diff := sum.Sub(dec("100")).Abs(); diff.GreaterThan(models.Epsilon) {
					t.Errorf("sum = %s, want 100 within epsilon", sum)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Calculate(dec(tt.total), tt.splits)
			tt.validate(t, out)
		})
	}
}

func TestCalculateDoesNotMutateInput(t *testing.T) {
	splits := []models.Split{models.EqualSplit("alice"), models.EqualSplit("bob")}

	Calculate(dec("10"), splits)

	for _, s := range splits {
		if !s.Amount.IsZero() {
			t.Errorf("input split %s mutated: amount = %s", s.UserID, s.Amount)
		}
	}
}
