package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/awest/budgeteer/internal/common"
	"github.com/awest/budgeteer/internal/model"
	"github.com/awest/budgeteer/internal/service"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateTransaction persists a new transaction. A missing ID is
// assigned a fresh UUID.
func (s *SQLiteStorage) CreateTransaction(ctx context.Context, txn *model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransaction(txn); err != nil {
		return err
	}

	if txn.ID == "" {
		txn.ID = uuid.NewString()
	}
	if txn.CreatedAt.IsZero() {
		txn.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO transactions (id, date, kind, amount, category_id, description, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		txn.ID,
		txn.Date.Format(model.DateOnly),
		string(txn.Kind),
		txn.Amount.String(),
		nullableCategory(txn.CategoryID),
		txn.Description,
		txn.Notes,
		txn.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction %s: %w", txn.ID, err)
	}

	slog.Debug("created transaction",
		"id", txn.ID,
		"kind", string(txn.Kind),
		"amount", txn.Amount.String())
	return nil
}

// GetTransactionByID returns a transaction by its id.
func (s *SQLiteStorage) GetTransactionByID(ctx context.Context, id string) (*model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	query := `
		SELECT id, date, kind, amount, category_id, description, notes, created_at
		FROM transactions
		WHERE id = ?`

	row := s.db.QueryRowContext(ctx, query, id)
	txn, err := scanTransaction(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: transaction %s", common.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction: %w", err)
	}

	return txn, nil
}

// GetTransactions returns transactions matching the filter, newest first.
func (s *SQLiteStorage) GetTransactions(ctx context.Context, filter service.TransactionFilter) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, date, kind, amount, category_id, description, notes, created_at
		FROM transactions
		WHERE 1=1`
	args := []any{}

	if filter.StartDate != nil {
		query += " AND date >= ?"
		args = append(args, filter.StartDate.Format(model.DateOnly))
	}
	if filter.EndDate != nil {
		query += " AND date <= ?"
		args = append(args, filter.EndDate.Format(model.DateOnly))
	}
	if filter.CategoryID != nil {
		query += " AND category_id = ?"
		args = append(args, *filter.CategoryID)
	}
	if filter.Kind != "" {
		query += " AND kind = ?"
		args = append(args, string(filter.Kind))
	}

	query += " ORDER BY date DESC, created_at DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	return s.queryTransactions(ctx, query, args...)
}

// ListTransactions returns transactions dated within [start, end],
// inclusive on both ends, oldest first. A non-empty categoryIDs set
// restricts the result. This is the read path the reporting core
// consumes.
func (s *SQLiteStorage) ListTransactions(ctx context.Context, start, end time.Time, categoryIDs []int) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, date, kind, amount, category_id, description, notes, created_at
		FROM transactions
		WHERE date >= ? AND date <= ?`
	args := []any{start.Format(model.DateOnly), end.Format(model.DateOnly)}

	if len(categoryIDs) > 0 {
		placeholders := make([]string, len(categoryIDs))
		for i, id := range categoryIDs {
			placeholders[i] = "?"
			args = append(args, id)
		}
		query += fmt.Sprintf(" AND category_id IN (%s)", strings.Join(placeholders, ", "))
	}

	query += " ORDER BY date ASC, created_at ASC"

	return s.queryTransactions(ctx, query, args...)
}

// UpdateTransaction replaces a transaction's fields after re-running
// the full validation.
func (s *SQLiteStorage) UpdateTransaction(ctx context.Context, txn *model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransaction(txn); err != nil {
		return err
	}
	if err := validateString(txn.ID, "id"); err != nil {
		return err
	}

	query := `
		UPDATE transactions
		SET date = ?, kind = ?, amount = ?, category_id = ?, description = ?, notes = ?
		WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query,
		txn.Date.Format(model.DateOnly),
		string(txn.Kind),
		txn.Amount.String(),
		nullableCategory(txn.CategoryID),
		txn.Description,
		txn.Notes,
		txn.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", txn.ID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: transaction %s", common.ErrNotFound, txn.ID)
	}

	return nil
}

// DeleteTransaction deletes a transaction by id.
func (s *SQLiteStorage) DeleteTransaction(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: transaction %s", common.ErrNotFound, id)
	}

	return nil
}

func (s *SQLiteStorage) queryTransactions(ctx context.Context, query string, args ...any) ([]model.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var transactions []model.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, *txn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return transactions, nil
}

// scanTransaction rebuilds a transaction from a row, parsing the
// TEXT-encoded date and decimal amount.
func scanTransaction(scan func(...any) error) (*model.Transaction, error) {
	var (
		txn        model.Transaction
		date       string
		kind       string
		amount     string
		categoryID sql.NullInt64
	)

	if err := scan(&txn.ID, &date, &kind, &amount, &categoryID, &txn.Description, &txn.Notes, &txn.CreatedAt); err != nil {
		return nil, err
	}

	parsed, err := time.Parse(model.DateOnly, date)
	if err != nil {
		return nil, fmt.Errorf("malformed date %q: %w", date, err)
	}
	txn.Date = parsed
	txn.Kind = model.TransactionKind(kind)

	txn.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("malformed amount %q: %w", amount, err)
	}

	if categoryID.Valid {
		id := int(categoryID.Int64)
		txn.CategoryID = &id
	}

	return &txn, nil
}

func nullableCategory(id *int) any {
	if id == nil {
		return nil
	}
	return *id
}
