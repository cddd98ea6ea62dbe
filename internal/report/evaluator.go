package report

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/awest/budgeteer/internal/model"
	"github.com/awest/budgeteer/internal/service"
	"github.com/shopspring/decimal"
)

// DefaultNearLimitThreshold is the utilization ratio at which a
// budgeted category is flagged near_limit. The over boundary is
// always 1.0.
var DefaultNearLimitThreshold = decimal.RequireFromString("0.8")

// EvaluateOptions tunes budget evaluation. The zero value applies the
// default thresholds.
type EvaluateOptions struct {
	// NearLimitThreshold replaces the 0.8 near_limit boundary when
	// positive. It must stay below 1.0 to be meaningful.
	NearLimitThreshold decimal.Decimal
}

// ComputeBudgetStatuses compares each category's expense total for a
// YYYY-MM month against the budget limit configured for that month.
//
// The result covers the union of categories with spending and
// categories with a limit: a category with a limit but zero spend is
// still reported, and a category with spending but no limit appears as
// unbudgeted. Entries are ordered by category name ascending,
// case-insensitively.
func ComputeBudgetStatuses(ctx context.Context, snap service.Snapshot, month string, opts EvaluateOptions) ([]model.BudgetStatus, error) {
	period, err := ParseMonth(month)
	if err != nil {
		return nil, err
	}

	threshold := DefaultNearLimitThreshold
	if opts.NearLimitThreshold.IsPositive() {
		threshold = opts.NearLimitThreshold
	}

	summary, err := ComputePeriodSummary(ctx, snap, period, nil)
	if err != nil {
		return nil, err
	}

	limits, err := snap.ListBudgetLimits(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list budget limits for %s: %w", month, err)
	}

	categories, err := snap.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	names := make(map[int]string, len(categories))
	for _, cat := range categories {
		names[cat.ID] = cat.Name
	}

	limitByCategory := make(map[int]decimal.Decimal, len(limits))
	for _, limit := range limits {
		limitByCategory[limit.CategoryID] = limit.Amount
	}

	// Union of categories with spend and categories with a limit.
	ids := make(map[int]struct{}, len(summary.ExpenseByCategory)+len(limitByCategory))
	for id := range summary.ExpenseByCategory {
		ids[id] = struct{}{}
	}
	for id := range limitByCategory {
		ids[id] = struct{}{}
	}

	statuses := make([]model.BudgetStatus, 0, len(ids))
	for id := range ids {
		spent := summary.ExpenseByCategory[id]
		status := model.BudgetStatus{
			CategoryID:   id,
			CategoryName: names[id],
			Month:        month,
			Spent:        spent,
		}

		limit, budgeted := limitByCategory[id]
		if !budgeted {
			status.Classification = model.ClassUnbudgeted
			statuses = append(statuses, status)
			continue
		}

		remaining := limit.Sub(spent)
		status.Limit = &limit
		status.Remaining = &remaining
		status.Classification = classify(spent, limit, threshold)

		if limit.IsZero() {
			// spent/0 has no finite value.
			status.Infinite = spent.IsPositive()
		} else {
			utilization := spent.Div(limit)
			status.Utilization = &utilization
		}

		statuses = append(statuses, status)
	}

	sort.Slice(statuses, func(i, j int) bool {
		a := strings.ToLower(statuses[i].CategoryName)
		b := strings.ToLower(statuses[j].CategoryName)
		if a != b {
			return a < b
		}
		return statuses[i].CategoryID < statuses[j].CategoryID
	})

	return statuses, nil
}

// classify applies the threshold policy. Boundaries compare decimal
// products, never rounded quotients, so spent/limit exactly at the
// threshold classifies deterministically.
func classify(spent, limit, threshold decimal.Decimal) model.Classification {
	if limit.IsZero() {
		if spent.IsPositive() {
			return model.ClassOver
		}
		return model.ClassOnTrack
	}

	switch {
	case spent.Cmp(limit) >= 0:
		return model.ClassOver
	case spent.Cmp(limit.Mul(threshold)) >= 0:
		return model.ClassNearLimit
	default:
		return model.ClassOnTrack
	}
}

// Warnings restricts statuses to the near_limit and over entries, in
// the same order, for the --warnings-only display mode.
func Warnings(statuses []model.BudgetStatus) []model.BudgetStatus {
	var warnings []model.BudgetStatus
	for _, status := range statuses {
		if status.Classification == model.ClassNearLimit || status.Classification == model.ClassOver {
			warnings = append(warnings, status)
		}
	}
	return warnings
}
