package errs

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	err := E(InsufficientDebt, "bob", "debt %s is less than settlement amount %s", "30", "50")

	if got := KindOf(err); got != InsufficientDebt {
		t.Errorf("KindOf = %s, want %s", got, InsufficientDebt)
	}

	// Kind survives wrapping.
	wrapped := fmt.Errorf("settle up: %w", err)
	if got := KindOf(wrapped); got != InsufficientDebt {
		t.Errorf("KindOf(wrapped) = %s, want %s", got, InsufficientDebt)
	}

	if got := KindOf(errors.New("plain")); got != Unknown {
		t.Errorf("KindOf(plain) = %s, want %s", got, Unknown)
	}
	if got := KindOf(nil); got != Unknown {
		t.Errorf("KindOf(nil) = %s, want %s", got, Unknown)
	}
}

func TestErrorMessage(t *testing.T) {
	withEntity := E(NotFound, "u-42", "user not found")
	if got := withEntity.Error(); got != "not_found: user not found (u-42)" {
		t.Errorf("Error() = %q", got)
	}

	without := E(SplitMismatch, "", "no splits provided")
	if got := without.Error(); got != "split_mismatch: no splits provided" {
		t.Errorf("Error() = %q", got)
	}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(E(NotFound, "g-1", "group not found")) {
		t.Error("IsNotFound should be true for NotFound errors")
	}
	if IsNotFound(E(InvalidAmount, "", "total must be positive")) {
		t.Error("IsNotFound should be false for other kinds")
	}
}
