package service

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/errs"
	"github.com/mmynk/splitledger/internal/ledger"
	"github.com/mmynk/splitledger/internal/metrics"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// ExpenseService owns committed expenses and orchestrates the commit flow:
// calculate splits, validate, apply the ledger deltas atomically, store the
// expense immutably.
//
// A failed commit mutates nothing: the ledger, the expense set and the group
// expense lists are byte-for-byte what they were before the call.
type ExpenseService struct {
	mu       sync.RWMutex
	users    *UserRegistry
	groups   *GroupService
	ledger   *ledger.Ledger
	archive  storage.Archive
	metrics  *metrics.Metrics
	expenses map[string]*models.Expense
	order    []string
}

// Option configures an ExpenseService.
type Option func(*ExpenseService)

// WithArchive attaches a write-through archive. Archive failures are logged
// and never roll back a committed expense; the in-memory state stays
// authoritative.
func WithArchive(archive storage.Archive) Option {
	return func(s *ExpenseService) { s.archive = archive }
}

// WithMetrics attaches prometheus collectors for commits and settlements.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *ExpenseService) { s.metrics = m }
}

// NewExpenseService creates an expense service over the given directories
// and ledger.
func NewExpenseService(users *UserRegistry, groups *GroupService, l *ledger.Ledger, opts ...Option) *ExpenseService {
	s := &ExpenseService{
		users:    users,
		groups:   groups,
		ledger:   l,
		expenses: make(map[string]*models.Expense),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateExpenseInput carries everything needed to commit one expense.
type CreateExpenseInput struct {
	// Total is the full amount paid. Must be positive.
	Total decimal.Decimal

	// PayerID is the user who paid. Must appear among the splits.
	PayerID string

	// Splits are the per-participant share rules, amounts unset.
	Splits []models.Split

	Description string

	// Category defaults to CategoryOther when empty or unknown.
	Category models.Category

	// GroupID optionally scopes the expense (and its debts) to a group.
	GroupID string
}

// CreateExpense commits an expense. On success the splits carry their final
// amounts, every non-payer participant's debt to the payer is recorded in
// the ledger (globally, and in the group when scoped), and the expense is
// stored immutably. On any rejection nothing is mutated.
func (s *ExpenseService) CreateExpense(ctx context.Context, in CreateExpenseInput) (*models.Expense, error) {
	expense, err := s.createExpense(ctx, in)
	if err != nil {
		s.metrics.ExpenseRejected(errs.KindOf(err).String())
		slog.Warn("expense rejected",
			"payer_id", in.PayerID,
			"total", in.Total,
			"group_id", in.GroupID,
			"error", err,
		)
		return nil, err
	}

	s.metrics.ExpenseCreated(string(expense.Category))
	slog.Info("expense committed",
		"expense_id", expense.ID,
		"payer_id", expense.PayerID,
		"total", expense.Total,
		"participants", len(expense.Splits),
		"group_id", expense.GroupID,
	)
	return expense, nil
}

func (s *ExpenseService) createExpense(ctx context.Context, in CreateExpenseInput) (*models.Expense, error) {
	// Referenced users and group must exist before any math is trusted.
	ids := append([]string{in.PayerID}, splitUserIDs(in.Splits)...)
	if missing, ok := s.users.contains(ids...); !ok {
		return nil, errs.E(errs.NotFound, missing, "user not found")
	}
	if in.GroupID != "" && !s.groups.exists(in.GroupID) {
		return nil, errs.E(errs.NotFound, in.GroupID, "group not found")
	}

	calculated := calculator.Calculate(in.Total, in.Splits)

	// Structural validation.
	if !in.Total.IsPositive() {
		return nil, errs.E(errs.InvalidAmount, "total", "total must be positive, got %s", in.Total)
	}
	if !splitsInclude(calculated, in.PayerID) {
		return nil, errs.E(errs.MissingPayer, in.PayerID, "payer must be included in the splits")
	}
	if err := calculator.ValidateSplits(in.Total, in.Splits); err != nil {
		return nil, err
	}

	// Authoritative check: the calculated amounts must reproduce the total
	// within the epsilon. Catches remainder mismatches the validator does
	// not cover.
	sum := decimal.Zero
	for _, split := range calculated {
		sum = sum.Add(split.Amount)
	}
	if sum.Sub(in.Total).Abs().GreaterThan(models.Epsilon) {
		return nil, errs.E(errs.SplitMismatch, "",
			"split amounts (%s) don't match expense total (%s)", sum, in.Total)
	}

	category := in.Category
	if !category.Valid() {
		category = models.CategoryOther
	}

	expense := &models.Expense{
		ID:          uuid.New().String(),
		Total:       in.Total,
		PayerID:     in.PayerID,
		Splits:      calculated,
		GroupID:     in.GroupID,
		Description: in.Description,
		Category:    category,
		CreatedAt:   time.Now().Unix(),
	}

	entries := make([]ledger.Entry, 0, len(calculated))
	for _, split := range calculated {
		if split.UserID == in.PayerID {
			continue
		}
		entries = append(entries, ledger.Entry{
			Debtor:   split.UserID,
			Creditor: in.PayerID,
			Amount:   split.Amount,
			GroupID:  in.GroupID,
		})
	}

	s.mu.Lock()
	s.ledger.Apply(entries)
	s.expenses[expense.ID] = expense
	s.order = append(s.order, expense.ID)
	s.mu.Unlock()

	if in.GroupID != "" {
		s.groups.appendExpense(in.GroupID, expense.ID)
	}

	if s.archive != nil {
		if err := s.archive.SaveExpense(ctx, expense); err != nil {
			slog.Warn("failed to archive expense", "expense_id", expense.ID, "error", err)
		}
	}

	return copyExpense(expense), nil
}

// CreateEqualExpense commits an expense split equally among the participants.
func (s *ExpenseService) CreateEqualExpense(ctx context.Context, total decimal.Decimal, payerID string,
	participantIDs []string, description string, category models.Category, groupID string) (*models.Expense, error) {

	splits := make([]models.Split, len(participantIDs))
	for i, id := range participantIDs {
		splits[i] = models.EqualSplit(id)
	}
	return s.CreateExpense(ctx, CreateExpenseInput{
		Total: total, PayerID: payerID, Splits: splits,
		Description: description, Category: category, GroupID: groupID,
	})
}

// CreateExactExpense commits an expense with an exact amount per participant.
func (s *ExpenseService) CreateExactExpense(ctx context.Context, total decimal.Decimal, payerID string,
	amounts map[string]decimal.Decimal, description string, category models.Category, groupID string) (*models.Expense, error) {

	splits := make([]models.Split, 0, len(amounts))
	for _, id := range sortedKeys(amounts) {
		splits = append(splits, models.ExactSplit(id, amounts[id]))
	}
	return s.CreateExpense(ctx, CreateExpenseInput{
		Total: total, PayerID: payerID, Splits: splits,
		Description: description, Category: category, GroupID: groupID,
	})
}

// CreatePercentExpense commits an expense with a percentage per participant.
// The percentages must sum to 100 within the epsilon.
func (s *ExpenseService) CreatePercentExpense(ctx context.Context, total decimal.Decimal, payerID string,
	percentages map[string]decimal.Decimal, description string, category models.Category, groupID string) (*models.Expense, error) {

	sum := decimal.Zero
	for _, pct := range percentages {
		sum = sum.Add(pct)
	}
	if sum.Sub(decimal.NewFromInt(100)).Abs().GreaterThan(models.Epsilon) {
		err := errs.E(errs.InvalidAmount, "", "percentages must sum to 100, got %s", sum)
		s.metrics.ExpenseRejected(errs.KindOf(err).String())
		return nil, err
	}

	splits := make([]models.Split, 0, len(percentages))
	for _, id := range sortedKeys(percentages) {
		splits = append(splits, models.PercentSplit(id, percentages[id]))
	}
	return s.CreateExpense(ctx, CreateExpenseInput{
		Total: total, PayerID: payerID, Splits: splits,
		Description: description, Category: category, GroupID: groupID,
	})
}

// SettleUp records a payment from one user to another, reducing the recorded
// debt. Fails with InsufficientDebt if the payment exceeds the debt, and
// with NotFound for unknown users.
func (s *ExpenseService) SettleUp(ctx context.Context, fromID, toID string, amount decimal.Decimal,
	groupID, note string) (*models.Settlement, error) {

	if missing, ok := s.users.contains(fromID, toID); !ok {
		s.metrics.SettlementFailed()
		return nil, errs.E(errs.NotFound, missing, "user not found")
	}
	if !amount.IsPositive() {
		s.metrics.SettlementFailed()
		return nil, errs.E(errs.InvalidAmount, "amount", "settlement amount must be positive, got %s", amount)
	}

	if err := s.ledger.Settle(fromID, toID, amount, groupID); err != nil {
		s.metrics.SettlementFailed()
		slog.Warn("settlement failed",
			"from_user_id", fromID,
			"to_user_id", toID,
			"amount", amount,
			"group_id", groupID,
			"error", err,
		)
		return nil, err
	}

	settlement := &models.Settlement{
		ID:         uuid.New().String(),
		GroupID:    groupID,
		FromUserID: fromID,
		ToUserID:   toID,
		Amount:     amount,
		CreatedAt:  time.Now().Unix(),
		Note:       note,
	}

	if s.archive != nil {
		if err := s.archive.SaveSettlement(ctx, settlement); err != nil {
			slog.Warn("failed to archive settlement", "settlement_id", settlement.ID, "error", err)
		}
	}

	s.metrics.SettlementRecorded()
	slog.Info("settlement recorded",
		"settlement_id", settlement.ID,
		"from_user_id", fromID,
		"to_user_id", toID,
		"amount", amount,
		"group_id", groupID,
	)
	return settlement, nil
}

// Expense returns a copy of a committed expense by id.
func (s *ExpenseService) Expense(expenseID string) (*models.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	expense, ok := s.expenses[expenseID]
	if !ok {
		return nil, errs.E(errs.NotFound, expenseID, "expense not found")
	}
	return copyExpense(expense), nil
}

// ExpensesFor returns all committed expenses involving the user as payer or
// participant, in commit order, optionally restricted to one group.
func (s *ExpenseService) ExpensesFor(userID, groupID string) []*models.Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Expense
	for _, id := range s.order {
		expense := s.expenses[id]
		if groupID != "" && expense.GroupID != groupID {
			continue
		}
		if expense.Involves(userID) {
			out = append(out, copyExpense(expense))
		}
	}
	return out
}

// BalancesFor returns the user's signed pairwise balances; see
// ledger.Ledger.BalancesFor.
func (s *ExpenseService) BalancesFor(userID, groupID string) map[string]decimal.Decimal {
	return s.ledger.BalancesFor(userID, groupID)
}

// NetBalance returns the user's net position across all counterparties.
func (s *ExpenseService) NetBalance(userID, groupID string) decimal.Decimal {
	return s.ledger.NetBalance(userID, groupID)
}

// AllBalances returns a snapshot of the full debt edge set, global or
// group-scoped.
func (s *ExpenseService) AllBalances(groupID string) map[string]map[string]decimal.Decimal {
	return s.ledger.AllBalances(groupID)
}

func splitUserIDs(splits []models.Split) []string {
	ids := make([]string, len(splits))
	for i, s := range splits {
		ids[i] = s.UserID
	}
	return ids
}

func splitsInclude(splits []models.Split, userID string) bool {
	for _, s := range splits {
		if s.UserID == userID {
			return true
		}
	}
	return false
}

func sortedKeys(m map[string]decimal.Decimal) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func copyExpense(e *models.Expense) *models.Expense {
	out := *e
	out.Splits = append([]models.Split(nil), e.Splits...)
	return &out
}
