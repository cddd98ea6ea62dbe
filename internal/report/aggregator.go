package report

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/awest/budgeteer/internal/common"
	"github.com/awest/budgeteer/internal/model"
	"github.com/awest/budgeteer/internal/service"
	"github.com/shopspring/decimal"
)

// ComputePeriodSummary aggregates the transactions dated within the
// period into total income, total expense, net, and a per-category
// expense map. An optional category filter restricts the aggregation;
// every filter id must name an existing category.
//
// The computation is a pure read: identical inputs with no intervening
// writes produce identical results. Decimal accumulation keeps the
// closure property exact — the map values always sum to TotalExpense.
func ComputePeriodSummary(ctx context.Context, snap service.Snapshot, period Period, categoryFilter []int) (*model.PeriodSummary, error) {
	if len(categoryFilter) > 0 {
		if err := resolveFilter(ctx, snap, categoryFilter); err != nil {
			return nil, err
		}
	}

	txns, err := snap.ListTransactions(ctx, period.Start, period.End, categoryFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions for %s: %w", period, err)
	}

	summary := &model.PeriodSummary{
		Start:             period.Start,
		End:               period.End,
		ExpenseByCategory: make(map[int]decimal.Decimal),
		TotalIncome:       decimal.Zero,
		TotalExpense:      decimal.Zero,
	}

	for _, txn := range txns {
		switch txn.Kind {
		case model.KindIncome:
			summary.TotalIncome = summary.TotalIncome.Add(txn.Amount)
		case model.KindExpense:
			summary.TotalExpense = summary.TotalExpense.Add(txn.Amount)
			if txn.CategoryID != nil {
				id := *txn.CategoryID
				summary.ExpenseByCategory[id] = summary.ExpenseByCategory[id].Add(txn.Amount)
			}
		}
	}

	summary.Net = summary.TotalIncome.Sub(summary.TotalExpense)

	slog.Debug("computed period summary",
		"period", period.String(),
		"transactions", len(txns),
		"income", summary.TotalIncome.String(),
		"expense", summary.TotalExpense.String())

	return summary, nil
}

// resolveFilter verifies every filter id against the category list.
func resolveFilter(ctx context.Context, snap service.Snapshot, categoryFilter []int) error {
	categories, err := snap.ListCategories(ctx)
	if err != nil {
		return fmt.Errorf("failed to list categories: %w", err)
	}

	known := make(map[int]struct{}, len(categories))
	for _, cat := range categories {
		known[cat.ID] = struct{}{}
	}

	for _, id := range categoryFilter {
		if _, ok := known[id]; !ok {
			return fmt.Errorf("%w: id %d", common.ErrUnknownCategory, id)
		}
	}
	return nil
}
