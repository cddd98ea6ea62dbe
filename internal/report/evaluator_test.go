package report

import (
	"context"
	"errors"
	"testing"

	"github.com/awest/budgeteer/internal/common"
	"github.com/awest/budgeteer/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeBudgetStatuses_OnTrack(t *testing.T) {
	snap := &fakeSnapshot{
		categories: []model.Category{
			{ID: 1, Name: "Food"},
			{ID: 2, Name: "Transport"},
		},
		transactions: []model.Transaction{
			expense("2025-03-01", "85.50", 1),
			expense("2025-03-10", "35.00", 1),
			expense("2025-03-15", "45.00", 2),
		},
		limits: []model.BudgetLimit{
			budgetLimit(1, "2025-03", "400.00"),
			budgetLimit(2, "2025-03", "200.00"),
		},
	}

	statuses, err := ComputeBudgetStatuses(context.Background(), snap, "2025-03", EvaluateOptions{})
	require.NoError(t, err)
	require.Len(t, statuses, 2)

	food := statuses[0]
	assert.Equal(t, "Food", food.CategoryName)
	assert.True(t, food.Spent.Equal(dec("120.50")), "spent = %s", food.Spent)
	require.NotNil(t, food.Remaining)
	assert.True(t, food.Remaining.Equal(dec("279.50")), "remaining = %s", food.Remaining)
	require.NotNil(t, food.Utilization)
	assert.True(t, food.Utilization.Equal(dec("0.30125")), "utilization = %s", food.Utilization)
	assert.Equal(t, model.ClassOnTrack, food.Classification)

	transport := statuses[1]
	assert.Equal(t, "Transport", transport.CategoryName)
	assert.True(t, transport.Spent.Equal(dec("45.00")))
	require.NotNil(t, transport.Remaining)
	assert.True(t, transport.Remaining.Equal(dec("155.00")))
	require.NotNil(t, transport.Utilization)
	assert.True(t, transport.Utilization.Equal(dec("0.225")), "utilization = %s", transport.Utilization)
	assert.Equal(t, model.ClassOnTrack, transport.Classification)
}

func TestComputeBudgetStatuses_NearLimit(t *testing.T) {
	snap := &fakeSnapshot{
		categories: []model.Category{{ID: 1, Name: "Entertainment"}},
		transactions: []model.Transaction{
			expense("2025-03-08", "95.00", 1),
		},
		limits: []model.BudgetLimit{budgetLimit(1, "2025-03", "100.00")},
	}

	statuses, err := ComputeBudgetStatuses(context.Background(), snap, "2025-03", EvaluateOptions{})
	require.NoError(t, err)
	require.Len(t, statuses, 1)

	assert.True(t, statuses[0].Utilization.Equal(dec("0.95")))
	assert.Equal(t, model.ClassNearLimit, statuses[0].Classification)
}

func TestComputeBudgetStatuses_ThresholdBoundaries(t *testing.T) {
	tests := []struct {
		name  string
		spent string
		limit string
		want  model.Classification
	}{
		{name: "zero spend", spent: "0.00", limit: "100.00", want: model.ClassOnTrack},
		{name: "just under the warning threshold", spent: "79.99", limit: "100.00", want: model.ClassOnTrack},
		{name: "exactly at 0.8 classifies near_limit", spent: "80.00", limit: "100.00", want: model.ClassNearLimit},
		{name: "just under the limit", spent: "99.99", limit: "100.00", want: model.ClassNearLimit},
		{name: "exactly at 1.0 classifies over", spent: "100.00", limit: "100.00", want: model.ClassOver},
		{name: "above the limit", spent: "100.01", limit: "100.00", want: model.ClassOver},
		// A limit the 0.8 product cannot represent in two decimal
		// places still classifies exactly.
		{name: "odd limit under threshold", spent: "0.80", limit: "1.01", want: model.ClassOnTrack},
		{name: "odd limit over threshold", spent: "0.81", limit: "1.01", want: model.ClassNearLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := &fakeSnapshot{
				categories: []model.Category{{ID: 1, Name: "Food"}},
				limits:     []model.BudgetLimit{budgetLimit(1, "2025-03", tt.limit)},
			}
			if tt.spent != "0.00" {
				snap.transactions = []model.Transaction{expense("2025-03-10", tt.spent, 1)}
			}

			statuses, err := ComputeBudgetStatuses(context.Background(), snap, "2025-03", EvaluateOptions{})
			require.NoError(t, err)
			require.Len(t, statuses, 1)
			assert.Equal(t, tt.want, statuses[0].Classification)
		})
	}
}

func TestComputeBudgetStatuses_ZeroLimit(t *testing.T) {
	t.Run("zero limit with spending is over", func(t *testing.T) {
		snap := &fakeSnapshot{
			categories:   []model.Category{{ID: 1, Name: "Vices"}},
			transactions: []model.Transaction{expense("2025-03-02", "5.00", 1)},
			limits:       []model.BudgetLimit{budgetLimit(1, "2025-03", "0")},
		}

		statuses, err := ComputeBudgetStatuses(context.Background(), snap, "2025-03", EvaluateOptions{})
		require.NoError(t, err)
		require.Len(t, statuses, 1)

		assert.Equal(t, model.ClassOver, statuses[0].Classification)
		assert.True(t, statuses[0].Infinite, "utilization should be flagged infinite")
		assert.Nil(t, statuses[0].Utilization)
		require.NotNil(t, statuses[0].Remaining)
		assert.True(t, statuses[0].Remaining.Equal(dec("-5.00")))
	})

	t.Run("zero limit with no spending is on_track", func(t *testing.T) {
		snap := &fakeSnapshot{
			categories: []model.Category{{ID: 1, Name: "Vices"}},
			limits:     []model.BudgetLimit{budgetLimit(1, "2025-03", "0")},
		}

		statuses, err := ComputeBudgetStatuses(context.Background(), snap, "2025-03", EvaluateOptions{})
		require.NoError(t, err)
		require.Len(t, statuses, 1)

		assert.Equal(t, model.ClassOnTrack, statuses[0].Classification)
		assert.False(t, statuses[0].Infinite)
	})
}

func TestComputeBudgetStatuses_Unbudgeted(t *testing.T) {
	snap := &fakeSnapshot{
		categories: []model.Category{
			{ID: 1, Name: "Utilities"},
			{ID: 2, Name: "Entertainment"},
		},
		transactions: []model.Transaction{
			expense("2025-03-04", "75.25", 1),
			expense("2025-03-05", "95.00", 2),
		},
		limits: []model.BudgetLimit{budgetLimit(2, "2025-03", "100.00")},
	}

	statuses, err := ComputeBudgetStatuses(context.Background(), snap, "2025-03", EvaluateOptions{})
	require.NoError(t, err)
	require.Len(t, statuses, 2)

	var utilities *model.BudgetStatus
	for i := range statuses {
		if statuses[i].CategoryName == "Utilities" {
			utilities = &statuses[i]
		}
	}
	require.NotNil(t, utilities, "unbudgeted spending must still appear in the summary")

	assert.Equal(t, model.ClassUnbudgeted, utilities.Classification)
	assert.True(t, utilities.Spent.Equal(dec("75.25")))
	assert.Nil(t, utilities.Limit)
	assert.Nil(t, utilities.Remaining)
	assert.Nil(t, utilities.Utilization)

	// Unbudgeted entries never show up in warnings-only mode.
	warnings := Warnings(statuses)
	require.Len(t, warnings, 1)
	assert.Equal(t, "Entertainment", warnings[0].CategoryName)
	assert.Equal(t, model.ClassNearLimit, warnings[0].Classification)
}

func TestComputeBudgetStatuses_LimitWithNoSpend(t *testing.T) {
	snap := &fakeSnapshot{
		categories: []model.Category{{ID: 1, Name: "Travel"}},
		limits:     []model.BudgetLimit{budgetLimit(1, "2025-03", "300.00")},
	}

	statuses, err := ComputeBudgetStatuses(context.Background(), snap, "2025-03", EvaluateOptions{})
	require.NoError(t, err)
	require.Len(t, statuses, 1, "a budgeted category with zero spend must still be reported")

	assert.True(t, statuses[0].Spent.IsZero())
	require.NotNil(t, statuses[0].Remaining)
	assert.True(t, statuses[0].Remaining.Equal(dec("300.00")))
	assert.Equal(t, model.ClassOnTrack, statuses[0].Classification)
}

func TestComputeBudgetStatuses_OrderedByNameCaseInsensitive(t *testing.T) {
	snap := &fakeSnapshot{
		categories: []model.Category{
			{ID: 1, Name: "transport"},
			{ID: 2, Name: "Food"},
			{ID: 3, Name: "entertainment"},
		},
		transactions: []model.Transaction{
			expense("2025-03-01", "10.00", 1),
			expense("2025-03-02", "10.00", 2),
			expense("2025-03-03", "10.00", 3),
		},
	}

	statuses, err := ComputeBudgetStatuses(context.Background(), snap, "2025-03", EvaluateOptions{})
	require.NoError(t, err)
	require.Len(t, statuses, 3)

	assert.Equal(t, "entertainment", statuses[0].CategoryName)
	assert.Equal(t, "Food", statuses[1].CategoryName)
	assert.Equal(t, "transport", statuses[2].CategoryName)
}

func TestComputeBudgetStatuses_CustomThreshold(t *testing.T) {
	snap := &fakeSnapshot{
		categories:   []model.Category{{ID: 1, Name: "Food"}},
		transactions: []model.Transaction{expense("2025-03-01", "60.00", 1)},
		limits:       []model.BudgetLimit{budgetLimit(1, "2025-03", "100.00")},
	}

	// 0.6 utilization is on_track under the default policy.
	statuses, err := ComputeBudgetStatuses(context.Background(), snap, "2025-03", EvaluateOptions{})
	require.NoError(t, err)
	assert.Equal(t, model.ClassOnTrack, statuses[0].Classification)

	// Lowering the threshold to 0.5 flags it.
	statuses, err = ComputeBudgetStatuses(context.Background(), snap, "2025-03", EvaluateOptions{NearLimitThreshold: dec("0.5")})
	require.NoError(t, err)
	assert.Equal(t, model.ClassNearLimit, statuses[0].Classification)
}

func TestComputeBudgetStatuses_InvalidMonth(t *testing.T) {
	snap := &fakeSnapshot{}

	for _, token := range []string{"", "2025", "2025-13", "March 2025"} {
		_, err := ComputeBudgetStatuses(context.Background(), snap, token, EvaluateOptions{})
		require.Error(t, err, "token %q", token)
		assert.True(t, errors.Is(err, common.ErrInvalidPeriod), "token %q: %v", token, err)
	}
}

func TestComputeBudgetStatuses_MissingLimitIsNotAnError(t *testing.T) {
	snap := &fakeSnapshot{
		categories:   []model.Category{{ID: 1, Name: "Food"}},
		transactions: []model.Transaction{expense("2025-03-01", "10.00", 1)},
	}

	statuses, err := ComputeBudgetStatuses(context.Background(), snap, "2025-03", EvaluateOptions{})
	require.NoError(t, err)
	require.Len(t, statuses, 1)
	assert.Equal(t, model.ClassUnbudgeted, statuses[0].Classification)
}
