// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Period and filter errors. Always user input errors: reported
	// once, never retried.
	ErrInvalidPeriod   = errors.New("invalid period")
	ErrUnknownCategory = errors.New("unknown category")

	// Database errors.
	ErrNotFound           = errors.New("not found")
	ErrDuplicateEntry     = errors.New("duplicate entry")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrCategoryInUse      = errors.New("category is referenced by transactions or budgets")

	// Validation errors.
	ErrInvalidAmount = errors.New("invalid amount")
	ErrFutureDate    = errors.New("transaction date cannot be in the future")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}
