// Package sqlite provides a SQLite-backed implementation of the
// storage.Archive interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// Ensure Archive implements storage.Archive
var _ storage.Archive = (*Archive)(nil)

// Archive implements storage.Archive using SQLite.
type Archive struct {
	db *sql.DB
}

// New creates a new Archive at the given database path. It creates the
// parent directories and runs migrations automatically.
func New(dbPath string) (*Archive, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Archive{db: db}, nil
}

// Close closes the database connection.
func (a *Archive) Close() error {
	return a.db.Close()
}

// SaveExpense persists an expense and its splits in one transaction.
func (a *Archive) SaveExpense(ctx context.Context, expense *models.Expense) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (id, total, payer_id, group_id, description, category, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.Total.String(), expense.PayerID, expense.GroupID,
		expense.Description, string(expense.Category), expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for i, split := range expense.Splits {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO splits (expense_id, position, user_id, kind, value, amount)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			expense.ID, i, split.UserID, string(split.Kind),
			split.Value.String(), split.Amount.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert split: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Expense retrieves an archived expense by id.
func (a *Archive) Expense(ctx context.Context, expenseID string) (*models.Expense, error) {
	expense := &models.Expense{}
	var total, category string

	err := a.db.QueryRowContext(ctx,
		`SELECT id, total, payer_id, group_id, description, category, created_at
		 FROM expenses WHERE id = ?`,
		expenseID,
	).Scan(&expense.ID, &total, &expense.PayerID, &expense.GroupID,
		&expense.Description, &category, &expense.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("expense not found: %s", expenseID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	expense.Category = models.Category(category)
	if expense.Total, err = decimal.NewFromString(total); err != nil {
		return nil, fmt.Errorf("corrupt total for expense %s: %w", expenseID, err)
	}

	if expense.Splits, err = a.loadSplits(ctx, expenseID); err != nil {
		return nil, err
	}

	return expense, nil
}

// ExpensesFor returns archived expenses involving the user, optionally
// restricted to one group.
func (a *Archive) ExpensesFor(ctx context.Context, userID, groupID string) ([]*models.Expense, error) {
	query := `SELECT DISTINCT e.id FROM expenses e
	          LEFT JOIN splits s ON s.expense_id = e.id
	          WHERE (e.payer_id = ? OR s.user_id = ?)`
	args := []any{userID, userID}
	if groupID != "" {
		query += " AND e.group_id = ?"
		args = append(args, groupID)
	}
	query += " ORDER BY e.created_at, e.id"

	rows, err := a.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan expense id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	expenses := make([]*models.Expense, 0, len(ids))
	for _, id := range ids {
		expense, err := a.Expense(ctx, id)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, expense)
	}
	return expenses, nil
}

func (a *Archive) loadSplits(ctx context.Context, expenseID string) ([]models.Split, error) {
	rows, err := a.db.QueryContext(ctx,
		`SELECT user_id, kind, value, amount FROM splits
		 WHERE expense_id = ? ORDER BY position`,
		expenseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query splits: %w", err)
	}
	defer rows.Close()

	var splits []models.Split
	for rows.Next() {
		var split models.Split
		var kind, value, amount string
		if err := rows.Scan(&split.UserID, &kind, &value, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		split.Kind = models.SplitKind(kind)
		if split.Value, err = decimal.NewFromString(value); err != nil {
			return nil, fmt.Errorf("corrupt split value: %w", err)
		}
		if split.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("corrupt split amount: %w", err)
		}
		splits = append(splits, split)
	}
	return splits, rows.Err()
}

// SaveSettlement persists a recorded settlement. The ID and CreatedAt fields
// are populated if unset.
func (a *Archive) SaveSettlement(ctx context.Context, settlement *models.Settlement) error {
	if settlement.ID == "" {
		settlement.ID = uuid.New().String()
	}
	if settlement.CreatedAt == 0 {
		settlement.CreatedAt = time.Now().Unix()
	}

	var note any
	if settlement.Note != "" {
		note = settlement.Note
	}

	_, err := a.db.ExecContext(ctx,
		`INSERT INTO settlements (id, group_id, from_user_id, to_user_id, amount, created_at, note)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		settlement.ID, settlement.GroupID, settlement.FromUserID, settlement.ToUserID,
		settlement.Amount.String(), settlement.CreatedAt, note,
	)
	if err != nil {
		return fmt.Errorf("failed to insert settlement: %w", err)
	}

	return nil
}

// Settlements returns archived settlements, oldest first.
func (a *Archive) Settlements(ctx context.Context, groupID string) ([]*models.Settlement, error) {
	query := `SELECT id, group_id, from_user_id, to_user_id, amount, created_at, note
	          FROM settlements`
	var args []any
	if groupID != "" {
		query += " WHERE group_id = ?"
		args = append(args, groupID)
	}
	query += " ORDER BY created_at, id"

	rows, err := a.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query settlements: %w", err)
	}
	defer rows.Close()

	var settlements []*models.Settlement
	for rows.Next() {
		s := &models.Settlement{}
		var amount string
		var note sql.NullString
		if err := rows.Scan(&s.ID, &s.GroupID, &s.FromUserID, &s.ToUserID,
			&amount, &s.CreatedAt, &note); err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}
		if s.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("corrupt settlement amount: %w", err)
		}
		if note.Valid {
			s.Note = note.String
		}
		settlements = append(settlements, s)
	}
	return settlements, rows.Err()
}
