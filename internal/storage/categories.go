package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/awest/budgeteer/internal/common"
	"github.com/awest/budgeteer/internal/model"
)

// ListCategories returns all categories ordered by name.
func (s *SQLiteStorage) ListCategories(ctx context.Context) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, description, created_at
		FROM categories
		ORDER BY name COLLATE NOCASE`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var categories []model.Category
	for rows.Next() {
		var cat model.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Description, &cat.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, cat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	slog.Debug("retrieved categories", "count", len(categories))
	return categories, nil
}

// GetCategoryByID returns a category by its id.
func (s *SQLiteStorage) GetCategoryByID(ctx context.Context, id int) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, description, created_at
		FROM categories
		WHERE id = ?`

	var cat model.Category
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&cat.ID, &cat.Name, &cat.Description, &cat.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: category %d", common.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query category: %w", err)
	}

	return &cat, nil
}

// GetCategoryByName returns a category by its name, or nil when no
// category carries it.
func (s *SQLiteStorage) GetCategoryByName(ctx context.Context, name string) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, description, created_at
		FROM categories
		WHERE name = ?`

	var cat model.Category
	err := s.db.QueryRowContext(ctx, query, name).Scan(
		&cat.ID, &cat.Name, &cat.Description, &cat.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil // Category not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query category: %w", err)
	}

	return &cat, nil
}

// CreateCategory creates a new category with a unique name.
func (s *SQLiteStorage) CreateCategory(ctx context.Context, name, description string) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}

	existing, err := s.GetCategoryByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing category: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: category %q", common.ErrDuplicateEntry, name)
	}

	insertQuery := `
		INSERT INTO categories (name, description, created_at)
		VALUES (?, ?, ?)`

	now := time.Now()
	result, err := s.db.ExecContext(ctx, insertQuery, name, description, now)
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get category ID: %w", err)
	}

	category := &model.Category{
		ID:          int(id),
		Name:        name,
		Description: description,
		CreatedAt:   now,
	}

	slog.Info("created new category", "name", name, "id", id)
	return category, nil
}

// UpdateCategory updates the name and description of an existing category.
func (s *SQLiteStorage) UpdateCategory(ctx context.Context, id int, name, description string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateCategoryName(name); err != nil {
		return err
	}

	// The unique name constraint must not be bypassed by renames.
	existing, err := s.GetCategoryByName(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to check existing category: %w", err)
	}
	if existing != nil && existing.ID != id {
		return fmt.Errorf("%w: category %q", common.ErrDuplicateEntry, name)
	}

	query := `UPDATE categories SET name = ?, description = ? WHERE id = ?`
	result, err := s.db.ExecContext(ctx, query, name, description, id)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: category %d", common.ErrNotFound, id)
	}

	return nil
}

// DeleteCategory deletes a category. Deletion is blocked while any
// transaction or budget limit references it.
func (s *SQLiteStorage) DeleteCategory(ctx context.Context, id int) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	var refs int
	countQuery := `
		SELECT (SELECT COUNT(*) FROM transactions WHERE category_id = ?) +
		       (SELECT COUNT(*) FROM budgets WHERE category_id = ?)`
	if err := s.db.QueryRowContext(ctx, countQuery, id, id).Scan(&refs); err != nil {
		return fmt.Errorf("failed to count category references: %w", err)
	}
	if refs > 0 {
		return fmt.Errorf("%w: category %d has %d references", common.ErrCategoryInUse, id, refs)
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: category %d", common.ErrNotFound, id)
	}

	slog.Info("deleted category", "id", id)
	return nil
}
