package model

import (
	"fmt"

	"github.com/debtify/debtify/internal/common"
)

// Kind indicates the expense/income polarity of a category or transaction.
type Kind string

const (
	// KindExpense represents money leaving the ledger.
	KindExpense Kind = "expense"
	// KindIncome represents money entering the ledger.
	KindIncome Kind = "income"
)

// ParseKind validates user-supplied kind text.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindExpense, KindIncome:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("%w: kind must be 'expense' or 'income', got %q", common.ErrValidation, s)
	}
}

// Valid reports whether k is one of the two known kinds.
func (k Kind) Valid() bool {
	return k == KindExpense || k == KindIncome
}
