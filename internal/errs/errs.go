// Package errs defines the closed error taxonomy shared by the splitting,
// ledger and service layers. Every caller-facing failure is one of these
// kinds; callers branch on KindOf rather than string matching.
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies a caller-facing failure.
type Kind uint8

const (
	// Unknown is the zero Kind; KindOf returns it for errors outside the taxonomy.
	Unknown Kind = iota

	// NotFound indicates a referenced user, group or expense id does not exist.
	NotFound

	// InvalidAmount indicates a non-positive total, a negative exact split
	// value, or a percentage outside [0, 100].
	InvalidAmount

	// SplitMismatch indicates split amounts that cannot reconcile with the
	// expense total: an empty split list, exact + percent reserves exceeding
	// the total, or a computed sum off by more than the epsilon.
	SplitMismatch

	// MissingPayer indicates the payer is absent from the split participants.
	MissingPayer

	// InsufficientDebt indicates a settlement larger than the recorded debt
	// for that debtor→creditor pair.
	InsufficientDebt
)

// String returns the canonical name of the kind.
func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not_found"
	case InvalidAmount:
		return "invalid_amount"
	case SplitMismatch:
		return "split_mismatch"
	case MissingPayer:
		return "missing_payer"
	case InsufficientDebt:
		return "insufficient_debt"
	default:
		return "unknown"
	}
}

// Error is a tagged domain error. Entity names what the error is about
// (a user id, group id, or field) and may be empty.
type Error struct {
	Kind   Kind
	Entity string
	Msg    string
}

func (e *Error) Error() string {
	if e.Entity == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Msg, e.Entity)
}

// E builds a tagged error. The format string and args form the message.
func E(kind Kind, entity, format string, args ...any) *Error {
	return &Error{Kind: kind, Entity: entity, Msg: fmt.Sprintf(format, args...)}
}

// KindOf extracts the taxonomy kind from err, unwrapping as needed.
// Returns Unknown for nil or untagged errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}

// IsNotFound reports whether err is tagged NotFound.
func IsNotFound(err error) bool { return KindOf(err) == NotFound }
