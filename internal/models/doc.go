// Package models defines the core domain models for splitledger.
//
// # Models
//
//   - User: a registered participant, with the set of groups it belongs to
//   - Group: a named set of members that can own expenses
//   - Split: one participant's share rule on an expense (equal, exact or percent)
//   - Expense: an immutable committed expense with its calculated splits
//   - Settlement: a recorded payment that reduced a ledger debt
//
// # Design Principles
//
//  1. All currency amounts are decimal.Decimal, never float64. Comparisons
//     against the one-cent Epsilon stay exact across arbitrarily long
//     add/settle sequences.
//  2. Models reference each other by ID strings, never by pointer, to avoid
//     circular ownership between users, groups and expenses.
//  3. An Expense is immutable once committed; its splits carry the final
//     calculated amounts and are never revised.
package models
