package model

import (
	"time"

	"github.com/debtify/debtify/internal/money"
)

// Transaction represents a single recorded income or expense.
// Amount is always positive; the sign is carried by Kind. CategoryID is nil
// for uncategorized transactions, including those whose category was deleted.
type Transaction struct {
	Date        time.Time
	CreatedAt   time.Time
	Description string
	Amount      money.Money
	Kind        Kind
	CategoryID  *int64
	ID          int64
}

// Entry is a transaction joined with its category's display name for
// presentation. CategoryName is empty when the transaction is uncategorized.
type Entry struct {
	Transaction
	CategoryName string
}

// TransactionFilter narrows FindTransactions results. Every present field
// narrows via logical AND; From and To are inclusive bounds on the
// transaction date. Text matches case-insensitively against the description
// or the joined category name.
type TransactionFilter struct {
	From       *time.Time
	To         *time.Time
	CategoryID *int64
	Kind       *Kind
	Text       string
}
