// Package splitledger is an expense-splitting and balance-settlement engine:
// group expenses with equal, exact and percent splits, a running ledger of
// pairwise debts kept globally and per group, and partial settlement of
// those debts.
//
// The Engine wires the user directory, group registry, expense service and
// ledger together; embedders that need finer control can assemble the same
// pieces themselves.
//
//	eng := splitledger.New()
//	eng.Users.AddUser("alice", "Alice", "alice@example.com", "")
//	eng.Users.AddUser("bob", "Bob", "bob@example.com", "")
//	eng.Expenses.CreateEqualExpense(ctx, decimal.NewFromInt(100), "alice",
//		[]string{"alice", "bob"}, "dinner", splitledger.CategoryFood, "")
//	eng.Expenses.SettleUp(ctx, "bob", "alice", decimal.NewFromInt(50), "", "")
package splitledger

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mmynk/splitledger/internal/errs"
	"github.com/mmynk/splitledger/internal/ledger"
	"github.com/mmynk/splitledger/internal/metrics"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/service"
	"github.com/mmynk/splitledger/internal/storage"
	sqlitearchive "github.com/mmynk/splitledger/internal/storage/sqlite"
)

// Domain types.
type (
	User       = models.User
	Group      = models.Group
	Expense    = models.Expense
	Split      = models.Split
	SplitKind  = models.SplitKind
	Category   = models.Category
	Settlement = models.Settlement

	Ledger             = ledger.Ledger
	UserRegistry       = service.UserRegistry
	GroupService       = service.GroupService
	ExpenseService     = service.ExpenseService
	CreateExpenseInput = service.CreateExpenseInput
	Archive            = storage.Archive
)

// Split kinds.
const (
	SplitEqual   = models.SplitEqual
	SplitExact   = models.SplitExact
	SplitPercent = models.SplitPercent
)

// Expense categories.
const (
	CategoryFood          = models.CategoryFood
	CategoryTravel        = models.CategoryTravel
	CategoryEntertainment = models.CategoryEntertainment
	CategoryUtilities     = models.CategoryUtilities
	CategoryShopping      = models.CategoryShopping
	CategoryOther         = models.CategoryOther
)

// Split constructors.
var (
	EqualSplit   = models.EqualSplit
	ExactSplit   = models.ExactSplit
	PercentSplit = models.PercentSplit
)

// Error taxonomy.
type ErrorKind = errs.Kind

const (
	ErrNotFound         = errs.NotFound
	ErrInvalidAmount    = errs.InvalidAmount
	ErrSplitMismatch    = errs.SplitMismatch
	ErrMissingPayer     = errs.MissingPayer
	ErrInsufficientDebt = errs.InsufficientDebt
)

// KindOf extracts the taxonomy kind from an engine error.
var KindOf = errs.KindOf

// Engine bundles one tenant's state: a user directory, group registry,
// expense service and ledger. The orchestration layer owns one Engine per
// deployment or tenant; there is no process-wide singleton.
type Engine struct {
	Users    *UserRegistry
	Groups   *GroupService
	Expenses *ExpenseService
	Ledger   *Ledger
}

type config struct {
	ledgerOpts  []ledger.Option
	serviceOpts []service.Option
}

// Option configures an Engine.
type Option func(*config)

// WithStrictGroupSettlement makes group-scoped settlements fail unless the
// group edge covers the full amount; see ledger.WithStrictGroupSettlement.
func WithStrictGroupSettlement() Option {
	return func(c *config) {
		c.ledgerOpts = append(c.ledgerOpts, ledger.WithStrictGroupSettlement())
	}
}

// WithArchive attaches a write-through archive for committed expenses and
// settlements.
func WithArchive(archive Archive) Option {
	return func(c *config) {
		c.serviceOpts = append(c.serviceOpts, service.WithArchive(archive))
	}
}

// WithMetrics registers prometheus collectors with reg and attaches them to
// the expense service.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *config) {
		c.serviceOpts = append(c.serviceOpts, service.WithMetrics(metrics.New(reg)))
	}
}

// New creates an empty engine.
func New(opts ...Option) *Engine {
	var c config
	for _, opt := range opts {
		opt(&c)
	}

	users := service.NewUserRegistry()
	groups := service.NewGroupService(users)
	l := ledger.New(c.ledgerOpts...)

	return &Engine{
		Users:    users,
		Groups:   groups,
		Expenses: service.NewExpenseService(users, groups, l, c.serviceOpts...),
		Ledger:   l,
	}
}

// OpenSQLiteArchive opens (creating if needed) a SQLite archive at the given
// path, for use with WithArchive.
func OpenSQLiteArchive(path string) (Archive, error) {
	return sqlitearchive.New(path)
}
