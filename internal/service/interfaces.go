// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/awest/budgeteer/internal/model"
)

// TransactionFilter defines filtering options for transaction queries.
// StartDate and EndDate are inclusive calendar days.
type TransactionFilter struct {
	StartDate  *time.Time
	EndDate    *time.Time
	CategoryID *int
	Kind       model.TransactionKind
	Limit      int
}

// Snapshot is the read-only view the reporting core consumes. Both the
// aggregator and the budget evaluator are pure functions over one of
// these; tests substitute an in-memory implementation.
type Snapshot interface {
	// ListTransactions returns transactions dated within [start, end],
	// inclusive on both ends. A non-empty categoryIDs set restricts
	// the result to those categories.
	ListTransactions(ctx context.Context, start, end time.Time, categoryIDs []int) ([]model.Transaction, error)

	// ListBudgetLimits returns the limits configured for a YYYY-MM month.
	ListBudgetLimits(ctx context.Context, month string) ([]model.BudgetLimit, error)

	// ListCategories returns all categories ordered by name.
	ListCategories(ctx context.Context) ([]model.Category, error)
}

// Storage defines the contract for the persistence layer.
type Storage interface {
	Snapshot

	// Category operations
	CreateCategory(ctx context.Context, name, description string) (*model.Category, error)
	GetCategoryByID(ctx context.Context, id int) (*model.Category, error)
	GetCategoryByName(ctx context.Context, name string) (*model.Category, error)
	UpdateCategory(ctx context.Context, id int, name, description string) error
	DeleteCategory(ctx context.Context, id int) error

	// Transaction operations
	CreateTransaction(ctx context.Context, txn *model.Transaction) error
	GetTransactionByID(ctx context.Context, id string) (*model.Transaction, error)
	GetTransactions(ctx context.Context, filter TransactionFilter) ([]model.Transaction, error)
	UpdateTransaction(ctx context.Context, txn *model.Transaction) error
	DeleteTransaction(ctx context.Context, id string) error

	// Budget limit operations
	SetBudgetLimit(ctx context.Context, limit *model.BudgetLimit) (*model.BudgetLimit, error)
	GetAllBudgetLimits(ctx context.Context) ([]model.BudgetLimit, error)
	DeleteBudgetLimit(ctx context.Context, id string) error

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}
