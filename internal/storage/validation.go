// Package storage provides the SQLite persistence layer for the
// budgeteer application.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/awest/budgeteer/internal/common"
	"github.com/awest/budgeteer/internal/model"
	"github.com/shopspring/decimal"
)

// Validation errors.
var (
	ErrNilContext         = errors.New("context cannot be nil")
	ErrEmptyString        = errors.New("string parameter cannot be empty")
	ErrNilParameter       = errors.New("parameter cannot be nil")
	ErrInvalidTransaction = errors.New("invalid transaction")
	ErrInvalidBudget      = errors.New("invalid budget limit")
	ErrInvalidCategory    = errors.New("invalid category")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateCategoryName enforces the non-empty, length-limited name rule.
func validateCategoryName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidCategory)
	}
	if len(name) > model.MaxCategoryNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidCategory, model.MaxCategoryNameLength)
	}
	return nil
}

// validateAmount enforces the monetary constraints shared by
// transactions and budget limits: positive, at most two fractional
// digits, and within range.
func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive, got %s", common.ErrInvalidAmount, amount)
	}
	if !amount.Equal(amount.Round(2)) {
		return fmt.Errorf("%w: amount %s has more than two fractional digits", common.ErrInvalidAmount, amount)
	}
	if amount.Cmp(model.MaxAmount) > 0 {
		return fmt.Errorf("%w: amount %s exceeds maximum %s", common.ErrInvalidAmount, amount, model.MaxAmount)
	}
	return nil
}

// validateTransaction validates a single transaction against all
// persistence constraints. Updates re-run the same checks.
func validateTransaction(txn *model.Transaction) error {
	if txn == nil {
		return fmt.Errorf("%w: transaction", ErrNilParameter)
	}
	if txn.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidTransaction)
	}
	if txn.Date.After(endOfToday()) {
		return fmt.Errorf("%w: %s", common.ErrFutureDate, txn.Date.Format(model.DateOnly))
	}
	if strings.TrimSpace(txn.Description) == "" {
		return fmt.Errorf("%w: missing description", ErrInvalidTransaction)
	}
	if err := validateAmount(txn.Amount); err != nil {
		return err
	}

	switch txn.Kind {
	case model.KindExpense:
		if txn.CategoryID == nil {
			return fmt.Errorf("%w: expense requires a category", ErrInvalidTransaction)
		}
	case model.KindIncome:
		if txn.CategoryID != nil {
			return fmt.Errorf("%w: income does not take a category", ErrInvalidTransaction)
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidTransaction, txn.Kind)
	}

	return nil
}

// validateBudgetLimit validates a budget limit before persistence.
func validateBudgetLimit(limit *model.BudgetLimit) error {
	if limit == nil {
		return fmt.Errorf("%w: budget limit", ErrNilParameter)
	}
	if limit.CategoryID <= 0 {
		return fmt.Errorf("%w: missing category", ErrInvalidBudget)
	}
	if err := validateMonth(limit.Month); err != nil {
		return err
	}
	// Zero limits are allowed: they mean "any spend is over budget".
	if limit.Amount.IsNegative() {
		return fmt.Errorf("%w: amount must not be negative, got %s", common.ErrInvalidAmount, limit.Amount)
	}
	if !limit.Amount.Equal(limit.Amount.Round(2)) {
		return fmt.Errorf("%w: amount %s has more than two fractional digits", common.ErrInvalidAmount, limit.Amount)
	}
	if limit.Amount.Cmp(model.MaxAmount) > 0 {
		return fmt.Errorf("%w: amount %s exceeds maximum %s", common.ErrInvalidAmount, limit.Amount, model.MaxAmount)
	}
	return nil
}

// validateMonth checks a YYYY-MM token.
func validateMonth(month string) error {
	if _, err := time.Parse("2006-01", month); err != nil {
		return fmt.Errorf("%w: malformed month token %q", common.ErrInvalidPeriod, month)
	}
	return nil
}

// endOfToday returns the last instant of the current calendar day in
// the local timezone. The boundary must live in the same location the
// clock reads from, otherwise "today" shifts near midnight.
func endOfToday() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())
}
