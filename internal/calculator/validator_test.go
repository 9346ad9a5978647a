package calculator

import (
	"testing"

	"github.com/mmynk/splitledger/internal/errs"
	"github.com/mmynk/splitledger/internal/models"
)

func TestValidateSplits(t *testing.T) {
	tests := []struct {
		name     string
		total    string
		splits   []models.Split
		wantKind errs.Kind
	}{
		{
			name:     "empty splits rejected",
			total:    "100",
			splits:   nil,
			wantKind: errs.SplitMismatch,
		},
		{
			name:  "negative exact rejected",
			total: "100",
			splits: []models.Split{
				models.ExactSplit("alice", dec("-5")),
				models.EqualSplit("bob"),
			},
			wantKind: errs.InvalidAmount,
		},
		{
			name:  "percent sum over 100 rejected",
			total: "100",
			splits: []models.Split{
				models.PercentSplit("alice", dec("60")),
				models.PercentSplit("bob", dec("50")),
			},
			wantKind: errs.InvalidAmount,
		},
		{
			name:  "exact plus percent exceeding total rejected",
			total: "100",
			splits: []models.Split{
				models.ExactSplit("alice", dec("80")),
				models.PercentSplit("bob", dec("30")),
			},
			wantKind: errs.SplitMismatch,
		},
		{
			name:  "exact plus percent within total accepted",
			total: "100",
			splits: []models.Split{
				models.ExactSplit("alice", dec("70")),
				models.PercentSplit("bob", dec("30")),
			},
			wantKind: errs.Unknown,
		},
		{
			name:  "equal-only shortfall is not the validator's problem",
			total: "100",
			splits: []models.Split{
				models.ExactSplit("alice", dec("10")),
			},
			wantKind: errs.Unknown,
		},
		{
			name:  "valid mixed splits accepted",
			total: "240",
			splits: []models.Split{
				models.PercentSplit("alice", dec("50")),
				models.ExactSplit("bob", dec("80")),
				models.EqualSplit("charlie"),
			},
			wantKind: errs.Unknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSplits(dec(tt.total), tt.splits)
			if tt.wantKind == errs.Unknown {
				if err != nil {
					t.Fatalf("ValidateSplits() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("ValidateSplits() = nil, want error")
			}
			if got := errs.KindOf(err); got != tt.wantKind {
				t.Errorf("error kind = %s, want %s (err: %v)", got, tt.wantKind, err)
			}
		})
	}
}
