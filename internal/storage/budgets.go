package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/awest/budgeteer/internal/common"
	"github.com/awest/budgeteer/internal/model"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SetBudgetLimit creates or replaces the limit for a (category, month)
// pair. The pair is the logical identity: setting a limit that already
// exists overwrites the amount rather than adding a second row.
func (s *SQLiteStorage) SetBudgetLimit(ctx context.Context, limit *model.BudgetLimit) (*model.BudgetLimit, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateBudgetLimit(limit); err != nil {
		return nil, err
	}

	// A limit must reference an existing category.
	if _, err := s.GetCategoryByID(ctx, limit.CategoryID); err != nil {
		return nil, err
	}

	if limit.ID == "" {
		limit.ID = uuid.NewString()
	}
	if limit.CreatedAt.IsZero() {
		limit.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO budgets (id, category_id, amount, month, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(category_id, month) DO UPDATE SET amount = excluded.amount`

	_, err := s.db.ExecContext(ctx, query,
		limit.ID,
		limit.CategoryID,
		limit.Amount.String(),
		limit.Month,
		limit.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to set budget limit: %w", err)
	}

	// Re-read so a replaced row keeps its original id.
	stored, err := s.getBudgetLimit(ctx, limit.CategoryID, limit.Month)
	if err != nil {
		return nil, err
	}

	slog.Info("set budget limit",
		"category", limit.CategoryID,
		"month", limit.Month,
		"amount", limit.Amount.String())
	return stored, nil
}

// ListBudgetLimits returns the limits configured for a YYYY-MM month.
func (s *SQLiteStorage) ListBudgetLimits(ctx context.Context, month string) ([]model.BudgetLimit, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateMonth(month); err != nil {
		return nil, err
	}

	query := `
		SELECT id, category_id, amount, month, created_at
		FROM budgets
		WHERE month = ?
		ORDER BY category_id`

	return s.queryBudgetLimits(ctx, query, month)
}

// GetAllBudgetLimits returns every configured limit, ordered by month
// then category.
func (s *SQLiteStorage) GetAllBudgetLimits(ctx context.Context) ([]model.BudgetLimit, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, category_id, amount, month, created_at
		FROM budgets
		ORDER BY month, category_id`

	return s.queryBudgetLimits(ctx, query)
}

// DeleteBudgetLimit deletes a budget limit by id.
func (s *SQLiteStorage) DeleteBudgetLimit(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM budgets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete budget limit: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: budget limit %s", common.ErrNotFound, id)
	}

	return nil
}

func (s *SQLiteStorage) getBudgetLimit(ctx context.Context, categoryID int, month string) (*model.BudgetLimit, error) {
	query := `
		SELECT id, category_id, amount, month, created_at
		FROM budgets
		WHERE category_id = ? AND month = ?`

	limits, err := s.queryBudgetLimits(ctx, query, categoryID, month)
	if err != nil {
		return nil, err
	}
	if len(limits) == 0 {
		return nil, fmt.Errorf("%w: budget limit for category %d in %s", common.ErrNotFound, categoryID, month)
	}
	return &limits[0], nil
}

func (s *SQLiteStorage) queryBudgetLimits(ctx context.Context, query string, args ...any) ([]model.BudgetLimit, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query budget limits: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var limits []model.BudgetLimit
	for rows.Next() {
		var (
			limit  model.BudgetLimit
			amount string
		)
		if err := rows.Scan(&limit.ID, &limit.CategoryID, &amount, &limit.Month, &limit.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan budget limit: %w", err)
		}

		limit.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("malformed amount %q: %w", amount, err)
		}

		limits = append(limits, limit)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budget limits: %w", err)
	}

	return limits, nil
}
