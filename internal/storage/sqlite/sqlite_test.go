package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/models"
)

func newTestArchive(t *testing.T) *Archive {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "splitledger-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	archive, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create archive: %v", err)
	}
	t.Cleanup(func() { archive.Close() })

	return archive
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestArchiveExpenses(t *testing.T) {
	archive := newTestArchive(t)
	ctx := context.Background()

	expense := &models.Expense{
		ID:      "exp-1",
		Total:   dec("240"),
		PayerID: "alice",
		Splits: []models.Split{
			{UserID: "alice", Kind: models.SplitPercent, Value: dec("50"), Amount: dec("120")},
			{UserID: "bob", Kind: models.SplitExact, Value: dec("80"), Amount: dec("80")},
			{UserID: "charlie", Kind: models.SplitEqual, Amount: dec("40")},
		},
		GroupID:     "trip",
		Description: "hotel",
		Category:    models.CategoryTravel,
		CreatedAt:   1700000000,
	}

	if err := archive.SaveExpense(ctx, expense); err != nil {
		t.Fatalf("SaveExpense failed: %v", err)
	}

	got, err := archive.Expense(ctx, "exp-1")
	if err != nil {
		t.Fatalf("Expense failed: %v", err)
	}

	if !got.Total.Equal(expense.Total) {
		t.Errorf("total = %s, want %s", got.Total, expense.Total)
	}
	if got.PayerID != "alice" || got.GroupID != "trip" || got.Category != models.CategoryTravel {
		t.Errorf("metadata mismatch: %+v", got)
	}
	if len(got.Splits) != 3 {
		t.Fatalf("splits = %d, want 3", len(got.Splits))
	}
	// Split order and amounts survive the round trip exactly.
	for i, want := range expense.Splits {
		s := got.Splits[i]
		if s.UserID != want.UserID || s.Kind != want.Kind || !s.Amount.Equal(want.Amount) {
			t.Errorf("split[%d] = %+v, want %+v", i, s, want)
		}
	}

	if _, err := archive.Expense(ctx, "nope"); err == nil {
		t.Error("expected error for unknown expense id")
	}
}

func TestArchiveExpensesFor(t *testing.T) {
	archive := newTestArchive(t)
	ctx := context.Background()

	save := func(id, payer, groupID string, participants ...string) {
		t.Helper()
		splits := make([]models.Split, len(participants))
		for i, p := range participants {
			splits[i] = models.Split{UserID: p, Kind: models.SplitEqual, Amount: dec("10")}
		}
		err := archive.SaveExpense(ctx, &models.Expense{
			ID:        id,
			Total:     dec("10").Mul(decimal.NewFromInt(int64(len(participants)))),
			PayerID:   payer,
			Splits:    splits,
			GroupID:   groupID,
			Category:  models.CategoryOther,
			CreatedAt: int64(1700000000 + len(id)),
		})
		if err != nil {
			t.Fatalf("SaveExpense(%s) failed: %v", id, err)
		}
	}

	save("e1", "alice", "", "alice", "bob")
	save("e2", "bob", "trip", "alice", "bob")
	save("e3", "bob", "", "bob", "charlie")

	all, err := archive.ExpensesFor(ctx, "alice", "")
	if err != nil {
		t.Fatalf("ExpensesFor failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("alice expenses = %d, want 2", len(all))
	}

	scoped, err := archive.ExpensesFor(ctx, "alice", "trip")
	if err != nil {
		t.Fatalf("ExpensesFor(trip) failed: %v", err)
	}
	if len(scoped) != 1 || scoped[0].ID != "e2" {
		t.Errorf("trip expenses = %+v, want [e2]", scoped)
	}

	none, err := archive.ExpensesFor(ctx, "mallory", "")
	if err != nil {
		t.Fatalf("ExpensesFor(mallory) failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("mallory expenses = %d, want 0", len(none))
	}
}

func TestArchiveSettlements(t *testing.T) {
	archive := newTestArchive(t)
	ctx := context.Background()

	settlement := &models.Settlement{
		GroupID:    "trip",
		FromUserID: "bob",
		ToUserID:   "alice",
		Amount:     dec("25.50"),
		Note:       "cash",
	}

	if err := archive.SaveSettlement(ctx, settlement); err != nil {
		t.Fatalf("SaveSettlement failed: %v", err)
	}
	if settlement.ID == "" {
		t.Error("expected settlement ID to be generated")
	}
	if settlement.CreatedAt == 0 {
		t.Error("expected CreatedAt to be populated")
	}

	if err := archive.SaveSettlement(ctx, &models.Settlement{
		FromUserID: "charlie",
		ToUserID:   "alice",
		Amount:     dec("10"),
	}); err != nil {
		t.Fatalf("SaveSettlement failed: %v", err)
	}

	all, err := archive.Settlements(ctx, "")
	if err != nil {
		t.Fatalf("Settlements failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("settlements = %d, want 2", len(all))
	}

	scoped, err := archive.Settlements(ctx, "trip")
	if err != nil {
		t.Fatalf("Settlements(trip) failed: %v", err)
	}
	if len(scoped) != 1 {
		t.Fatalf("trip settlements = %d, want 1", len(scoped))
	}
	got := scoped[0]
	if got.FromUserID != "bob" || got.ToUserID != "alice" {
		t.Errorf("parties = %s→%s, want bob→alice", got.FromUserID, got.ToUserID)
	}
	if !got.Amount.Equal(dec("25.50")) {
		t.Errorf("amount = %s, want 25.50", got.Amount)
	}
	if got.Note != "cash" {
		t.Errorf("note = %q, want cash", got.Note)
	}
}
