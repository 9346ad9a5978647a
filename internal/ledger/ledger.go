// Package ledger maintains directed pairwise debts between users, globally
// and scoped per group. It is the only component that stores balances;
// everything else derives its views from here.
package ledger

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/errs"
	"github.com/mmynk/splitledger/internal/models"
)

// edges maps debtor -> creditor -> amount owed. An edge is either present
// with an amount strictly above the epsilon, or absent; never zero, never
// negative.
type edges map[string]map[string]decimal.Decimal

// Entry is one debt delta to apply: debtor owes creditor amount, optionally
// within a group.
type Entry struct {
	Debtor   string
	Creditor string
	Amount   decimal.Decimal
	GroupID  string
}

// Ledger tracks pairwise debts. The global edge set and each group's edge
// set are parallel: a group-scoped debt updates both by the same delta.
//
// Opposite-direction debts (a→b and b→a) are tracked independently and never
// netted against each other; net positions are derived views via BalancesFor.
//
// All methods are safe for concurrent use. Apply commits a whole expense's
// deltas under one lock acquisition, so readers never observe an expense
// half-applied.
type Ledger struct {
	mu      sync.RWMutex
	overall edges
	groups  map[string]edges

	// strictGroups makes Settle fail unless the group edge can absorb the
	// full amount. Off by default: a settlement then succeeds at the global
	// level even when the group edge is missing or smaller, with the group
	// edge clamped at zero.
	strictGroups bool
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithStrictGroupSettlement makes group-scoped settlements fail with
// InsufficientDebt unless the group edge exists and covers the full amount.
func WithStrictGroupSettlement() Option {
	return func(l *Ledger) { l.strictGroups = true }
}

// New creates an empty ledger.
func New(opts ...Option) *Ledger {
	l := &Ledger{
		overall: make(edges),
		groups:  make(map[string]edges),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// AddDebt records that debtor owes creditor amount. A non-positive amount is
// a no-op. With a non-empty groupID the group-scoped edge is incremented by
// the same delta.
func (l *Ledger) AddDebt(debtor, creditor string, amount decimal.Decimal, groupID string) {
	l.Apply([]Entry{{Debtor: debtor, Creditor: creditor, Amount: amount, GroupID: groupID}})
}

// Apply commits a batch of debt deltas atomically: no reader observes some
// entries applied and others not. Non-positive entries are skipped.
func (l *Ledger) Apply(entries []Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, e := range entries {
		if !e.Amount.IsPositive() {
			continue
		}
		addEdge(l.overall, e.Debtor, e.Creditor, e.Amount)
		if e.GroupID != "" {
			g, ok := l.groups[e.GroupID]
			if !ok {
				g = make(edges)
				l.groups[e.GroupID] = g
			}
			addEdge(g, e.Debtor, e.Creditor, e.Amount)
		}
	}
}

// Settle reduces the debtor→creditor debt by amount. It fails with
// InsufficientDebt, mutating nothing, if no global edge exists or the amount
// exceeds it. An edge drained to within the epsilon is removed entirely;
// settling never creates an edge.
//
// With a non-empty groupID the matching group edge is reduced independently.
// In the default mode a missing or smaller group edge does not fail the
// settlement; see WithStrictGroupSettlement.
func (l *Ledger) Settle(debtor, creditor string, amount decimal.Decimal, groupID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	debt, ok := l.overall[debtor][creditor]
	if !ok {
		return errs.E(errs.InsufficientDebt, debtor,
			"no recorded debt from %s to %s", debtor, creditor)
	}
	if debt.LessThan(amount) {
		return errs.E(errs.InsufficientDebt, debtor,
			"debt %s is less than settlement amount %s", debt, amount)
	}

	if groupID != "" && l.strictGroups {
		groupDebt, ok := l.groups[groupID][debtor][creditor]
		if !ok || groupDebt.LessThan(amount) {
			return errs.E(errs.InsufficientDebt, debtor,
				"group %s debt cannot absorb settlement amount %s", groupID, amount)
		}
	}

	subEdge(l.overall, debtor, creditor, amount)

	if groupID != "" {
		if g, ok := l.groups[groupID]; ok {
			if _, ok := g[debtor][creditor]; ok {
				subEdge(g, debtor, creditor, amount)
			}
		}
	}

	return nil
}

// BalancesFor returns the signed pairwise balances for a user: negative
// means the user owes that counterparty, positive means the counterparty
// owes the user. Scoped to one group when groupID is non-empty. The result
// is owned by the caller.
func (l *Ledger) BalancesFor(userID, groupID string) map[string]decimal.Decimal {
	l.mu.RLock()
	defer l.mu.RUnlock()

	scope := l.scope(groupID)
	result := make(map[string]decimal.Decimal)

	for creditor, amount := range scope[userID] {
		result[creditor] = result[creditor].Sub(amount)
	}
	for debtor, creditors := range scope {
		if amount, ok := creditors[userID]; ok {
			result[debtor] = result[debtor].Add(amount)
		}
	}

	return result
}

// NetBalance returns the sum of the user's signed balances: positive means
// net creditor, negative net debtor, zero settled.
func (l *Ledger) NetBalance(userID, groupID string) decimal.Decimal {
	net := decimal.Zero
	for _, amount := range l.BalancesFor(userID, groupID) {
		net = net.Add(amount)
	}
	return net
}

// AllBalances returns a snapshot of the full debtor→creditor edge set,
// global or scoped to one group. Mutating the result does not affect the
// ledger.
func (l *Ledger) AllBalances(groupID string) map[string]map[string]decimal.Decimal {
	l.mu.RLock()
	defer l.mu.RUnlock()

	scope := l.scope(groupID)
	snapshot := make(map[string]map[string]decimal.Decimal, len(scope))
	for debtor, creditors := range scope {
		inner := make(map[string]decimal.Decimal, len(creditors))
		for creditor, amount := range creditors {
			inner[creditor] = amount
		}
		snapshot[debtor] = inner
	}
	return snapshot
}

// scope selects the edge set for a group id, or the global set for "".
// Callers must hold at least the read lock.
func (l *Ledger) scope(groupID string) edges {
	if groupID == "" {
		return l.overall
	}
	return l.groups[groupID]
}

// addEdge increments an edge. A resulting amount within the epsilon is not
// stored, keeping every present edge strictly above the epsilon.
func addEdge(e edges, debtor, creditor string, amount decimal.Decimal) {
	creditors, ok := e[debtor]
	if !ok {
		creditors = make(map[string]decimal.Decimal)
		e[debtor] = creditors
	}
	total := creditors[creditor].Add(amount)
	if total.LessThanOrEqual(models.Epsilon) {
		if len(creditors) == 0 {
			delete(e, debtor)
		}
		return
	}
	creditors[creditor] = total
}

// subEdge reduces an existing edge, removing it once the remainder is within
// the epsilon. The remainder is clamped so a stored edge can never go
// negative.
func subEdge(e edges, debtor, creditor string, amount decimal.Decimal) {
	remaining := e[debtor][creditor].Sub(amount)
	if remaining.LessThanOrEqual(models.Epsilon) {
		delete(e[debtor], creditor)
		if len(e[debtor]) == 0 {
			delete(e, debtor)
		}
		return
	}
	e[debtor][creditor] = remaining
}
