package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Classification describes how a category's spending compares to its
// budget limit for a month.
type Classification string

const (
	// ClassOnTrack means utilization is below the warning threshold.
	ClassOnTrack Classification = "on_track"
	// ClassNearLimit means utilization is at or above the warning
	// threshold but still under the limit.
	ClassNearLimit Classification = "near_limit"
	// ClassOver means spending has reached or exceeded the limit.
	ClassOver Classification = "over"
	// ClassUnbudgeted means spending is tracked but no limit is
	// configured, so no comparison is possible.
	ClassUnbudgeted Classification = "unbudgeted"
)

// BudgetStatus is the derived per-category, per-month comparison of
// spending against a configured limit. It is recomputed on every
// invocation and never persisted.
//
// Limit, Remaining and Utilization are nil for unbudgeted categories.
// Utilization is also nil when the limit is exactly zero; Infinite is
// set instead, since spent/0 has no finite value.
type BudgetStatus struct {
	Spent          decimal.Decimal
	Limit          *decimal.Decimal
	Remaining      *decimal.Decimal
	Utilization    *decimal.Decimal
	CategoryName   string
	Month          string
	Classification Classification
	CategoryID     int
	Infinite       bool
}

// PeriodSummary is the derived income/expense aggregate for a period.
// ExpenseByCategory omits categories with no expense in the period;
// the sum of its values always equals TotalExpense.
type PeriodSummary struct {
	Start             time.Time
	End               time.Time
	ExpenseByCategory map[int]decimal.Decimal
	TotalIncome       decimal.Decimal
	TotalExpense      decimal.Decimal
	Net               decimal.Decimal
}
