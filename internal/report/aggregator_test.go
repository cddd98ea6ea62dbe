package report

import (
	"context"
	"errors"
	"testing"

	"github.com/awest/budgeteer/internal/common"
	"github.com/awest/budgeteer/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputePeriodSummary_IncomeVsExpense(t *testing.T) {
	// Income 3000.00 + 500.00 against 258.74 of expenses nets 3241.26.
	snap := &fakeSnapshot{
		categories: []model.Category{{ID: 1, Name: "Food"}},
		transactions: []model.Transaction{
			income("2025-03-01", "3000.00"),
			income("2025-03-15", "500.00"),
			expense("2025-03-05", "120.50", 1),
			expense("2025-03-12", "138.24", 1),
		},
	}

	period, err := ParseMonth("2025-03")
	require.NoError(t, err)

	summary, err := ComputePeriodSummary(context.Background(), snap, period, nil)
	require.NoError(t, err)

	assert.True(t, summary.TotalIncome.Equal(dec("3500.00")), "income = %s", summary.TotalIncome)
	assert.True(t, summary.TotalExpense.Equal(dec("258.74")), "expense = %s", summary.TotalExpense)
	assert.True(t, summary.Net.Equal(dec("3241.26")), "net = %s", summary.Net)
}

func TestComputePeriodSummary_ClosureProperty(t *testing.T) {
	// The per-category expense totals must sum to the period's total
	// expense, exactly.
	snap := &fakeSnapshot{
		categories: []model.Category{
			{ID: 1, Name: "Food"},
			{ID: 2, Name: "Transport"},
			{ID: 3, Name: "Utilities"},
		},
		transactions: []model.Transaction{
			expense("2025-03-01", "85.50", 1),
			expense("2025-03-02", "35.00", 1),
			expense("2025-03-03", "45.00", 2),
			expense("2025-03-04", "75.25", 3),
			expense("2025-03-05", "0.01", 3),
			income("2025-03-06", "1000.00"),
		},
	}

	period, err := ParseMonth("2025-03")
	require.NoError(t, err)

	summary, err := ComputePeriodSummary(context.Background(), snap, period, nil)
	require.NoError(t, err)

	sum := decimal.Zero
	for _, amount := range summary.ExpenseByCategory {
		sum = sum.Add(amount)
	}
	assert.True(t, sum.Equal(summary.TotalExpense),
		"category totals %s != total expense %s", sum, summary.TotalExpense)
	assert.True(t, summary.ExpenseByCategory[1].Equal(dec("120.50")))
	assert.True(t, summary.ExpenseByCategory[2].Equal(dec("45.00")))
	assert.True(t, summary.ExpenseByCategory[3].Equal(dec("75.26")))
}

func TestComputePeriodSummary_DateRangeIsInclusive(t *testing.T) {
	snap := &fakeSnapshot{
		categories: []model.Category{{ID: 1, Name: "Food"}},
		transactions: []model.Transaction{
			expense("2025-02-28", "10.00", 1), // before
			expense("2025-03-01", "20.00", 1), // first day
			expense("2025-03-31", "30.00", 1), // last day
			expense("2025-04-01", "40.00", 1), // after
		},
	}

	period, err := ParseMonth("2025-03")
	require.NoError(t, err)

	summary, err := ComputePeriodSummary(context.Background(), snap, period, nil)
	require.NoError(t, err)

	assert.True(t, summary.TotalExpense.Equal(dec("50.00")), "expense = %s", summary.TotalExpense)
}

func TestComputePeriodSummary_CategoryFilter(t *testing.T) {
	snap := &fakeSnapshot{
		categories: []model.Category{
			{ID: 1, Name: "Food"},
			{ID: 2, Name: "Transport"},
		},
		transactions: []model.Transaction{
			expense("2025-03-01", "100.00", 1),
			expense("2025-03-02", "50.00", 2),
		},
	}

	period, err := ParseMonth("2025-03")
	require.NoError(t, err)

	t.Run("restricts to listed categories", func(t *testing.T) {
		summary, err := ComputePeriodSummary(context.Background(), snap, period, []int{2})
		require.NoError(t, err)

		assert.True(t, summary.TotalExpense.Equal(dec("50.00")))
		assert.Len(t, summary.ExpenseByCategory, 1)
	})

	t.Run("unknown filter id fails", func(t *testing.T) {
		_, err := ComputePeriodSummary(context.Background(), snap, period, []int{99})
		require.Error(t, err)
		assert.True(t, errors.Is(err, common.ErrUnknownCategory))
		assert.Contains(t, err.Error(), "99")
	})
}

func TestComputePeriodSummary_ZeroSpendCategoriesOmitted(t *testing.T) {
	snap := &fakeSnapshot{
		categories: []model.Category{
			{ID: 1, Name: "Food"},
			{ID: 2, Name: "Transport"},
		},
		transactions: []model.Transaction{
			expense("2025-03-01", "100.00", 1),
		},
	}

	period, err := ParseMonth("2025-03")
	require.NoError(t, err)

	summary, err := ComputePeriodSummary(context.Background(), snap, period, nil)
	require.NoError(t, err)

	_, present := summary.ExpenseByCategory[2]
	assert.False(t, present, "zero-spend category should be omitted, not zero-filled")
}

func TestComputePeriodSummary_EmptyPeriod(t *testing.T) {
	snap := &fakeSnapshot{categories: []model.Category{{ID: 1, Name: "Food"}}}

	period, err := ParseMonth("2025-03")
	require.NoError(t, err)

	summary, err := ComputePeriodSummary(context.Background(), snap, period, nil)
	require.NoError(t, err)

	assert.True(t, summary.TotalIncome.IsZero())
	assert.True(t, summary.TotalExpense.IsZero())
	assert.True(t, summary.Net.IsZero())
	assert.Empty(t, summary.ExpenseByCategory)
}

func TestComputePeriodSummary_Idempotent(t *testing.T) {
	snap := &fakeSnapshot{
		categories: []model.Category{{ID: 1, Name: "Food"}},
		transactions: []model.Transaction{
			expense("2025-03-01", "85.50", 1),
			expense("2025-03-02", "35.00", 1),
			income("2025-03-03", "3000.00"),
		},
	}

	period, err := ParseMonth("2025-03")
	require.NoError(t, err)

	first, err := ComputePeriodSummary(context.Background(), snap, period, nil)
	require.NoError(t, err)
	second, err := ComputePeriodSummary(context.Background(), snap, period, nil)
	require.NoError(t, err)

	assert.Equal(t, first.TotalIncome.String(), second.TotalIncome.String())
	assert.Equal(t, first.TotalExpense.String(), second.TotalExpense.String())
	assert.Equal(t, first.Net.String(), second.Net.String())
	require.Equal(t, len(first.ExpenseByCategory), len(second.ExpenseByCategory))
	for id, amount := range first.ExpenseByCategory {
		assert.Equal(t, amount.String(), second.ExpenseByCategory[id].String())
	}
}

func TestComputePeriodSummary_StorageErrorPropagates(t *testing.T) {
	snap := &fakeSnapshot{err: errors.New("database is locked")}

	period, err := ParseMonth("2025-03")
	require.NoError(t, err)

	_, err = ComputePeriodSummary(context.Background(), snap, period, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database is locked")
}
