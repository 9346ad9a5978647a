// Package storage provides the archive abstraction for committed expenses
// and settlements.
//
// The in-memory services are the authoritative state; an archive is a
// write-through journal the orchestration layer can replay or report from.
// Archive failures never roll back a committed expense.
package storage

import (
	"context"

	"github.com/mmynk/splitledger/internal/models"
)

// Archive persists committed expenses and settlements. Implementations must
// be safe for concurrent use.
type Archive interface {
	// SaveExpense persists a committed expense with its calculated splits.
	SaveExpense(ctx context.Context, expense *models.Expense) error

	// Expense retrieves an archived expense by id.
	Expense(ctx context.Context, expenseID string) (*models.Expense, error)

	// ExpensesFor returns archived expenses involving the user as payer or
	// split participant, newest last. A non-empty groupID restricts the
	// result to one group.
	ExpensesFor(ctx context.Context, userID, groupID string) ([]*models.Expense, error)

	// SaveSettlement persists a recorded settlement.
	SaveSettlement(ctx context.Context, settlement *models.Settlement) error

	// Settlements returns archived settlements, oldest first. A non-empty
	// groupID restricts the result to one group.
	Settlements(ctx context.Context, groupID string) ([]*models.Settlement, error)

	// Close releases any resources held by the archive.
	Close() error
}
