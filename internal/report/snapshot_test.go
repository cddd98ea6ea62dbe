package report

import (
	"context"
	"time"

	"github.com/awest/budgeteer/internal/model"
	"github.com/shopspring/decimal"
)

// fakeSnapshot is an in-memory service.Snapshot for deterministic
// tests without a real database. Filtering mirrors the storage layer:
// inclusive date ranges, optional category restriction.
type fakeSnapshot struct {
	err          error
	categories   []model.Category
	transactions []model.Transaction
	limits       []model.BudgetLimit
}

func (f *fakeSnapshot) ListTransactions(_ context.Context, start, end time.Time, categoryIDs []int) ([]model.Transaction, error) {
	if f.err != nil {
		return nil, f.err
	}

	wanted := make(map[int]struct{}, len(categoryIDs))
	for _, id := range categoryIDs {
		wanted[id] = struct{}{}
	}

	var out []model.Transaction
	for _, txn := range f.transactions {
		if txn.Date.Before(start) || txn.Date.After(end) {
			continue
		}
		if len(wanted) > 0 {
			if txn.CategoryID == nil {
				continue
			}
			if _, ok := wanted[*txn.CategoryID]; !ok {
				continue
			}
		}
		out = append(out, txn)
	}
	return out, nil
}

func (f *fakeSnapshot) ListBudgetLimits(_ context.Context, month string) ([]model.BudgetLimit, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.BudgetLimit
	for _, limit := range f.limits {
		if limit.Month == month {
			out = append(out, limit)
		}
	}
	return out, nil
}

func (f *fakeSnapshot) ListCategories(_ context.Context) ([]model.Category, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.categories, nil
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(s string) time.Time {
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return d
}

func expense(date, amount string, categoryID int) model.Transaction {
	id := categoryID
	return model.Transaction{
		ID:         "exp-" + date + "-" + amount,
		Date:       day(date),
		Kind:       model.KindExpense,
		Amount:     dec(amount),
		CategoryID: &id,
	}
}

func income(date, amount string) model.Transaction {
	return model.Transaction{
		ID:     "inc-" + date + "-" + amount,
		Date:   day(date),
		Kind:   model.KindIncome,
		Amount: dec(amount),
	}
}

func budgetLimit(categoryID int, month, amount string) model.BudgetLimit {
	return model.BudgetLimit{
		ID:         "lim",
		CategoryID: categoryID,
		Month:      month,
		Amount:     dec(amount),
	}
}
