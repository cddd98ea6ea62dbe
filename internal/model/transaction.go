package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind distinguishes money coming in from money going out.
// There is deliberately no transfer kind.
type TransactionKind string

const (
	// KindIncome marks a transaction that adds money.
	KindIncome TransactionKind = "income"
	// KindExpense marks a transaction that spends money.
	KindExpense TransactionKind = "expense"
)

// MaxAmount is the largest amount a single transaction or budget limit
// may carry. Amounts above this are rejected at validation time.
var MaxAmount = decimal.RequireFromString("999999999.99")

// Transaction represents a single income or expense entry.
// Amount is an exact decimal; it is never converted through float64.
// CategoryID is nil for income entries and required for expenses.
type Transaction struct {
	Date        time.Time
	CreatedAt   time.Time
	ID          string
	Kind        TransactionKind
	Description string
	Notes       string
	Amount      decimal.Decimal
	CategoryID  *int
}

// DateOnly is the wire format for transaction dates: calendar days,
// no time component.
const DateOnly = "2006-01-02"
