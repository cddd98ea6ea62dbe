package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetLimit caps expense spending for one category in one calendar
// month. At most one limit exists per (category, month) pair; setting
// a new limit for an existing pair replaces the old one.
type BudgetLimit struct {
	CreatedAt  time.Time
	ID         string
	Month      string // YYYY-MM
	Amount     decimal.Decimal
	CategoryID int
}
