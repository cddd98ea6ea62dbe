package main

import (
	"context"
	"fmt"
	"time"

	"github.com/awest/budgeteer/internal/common"
	"github.com/awest/budgeteer/internal/config"
	"github.com/awest/budgeteer/internal/model"
	"github.com/awest/budgeteer/internal/service"
	"github.com/awest/budgeteer/internal/storage"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

var oneDecimal = decimal.NewFromInt(1)

// initStorage initializes the storage service with proper path expansion.
func initStorage(ctx context.Context) (service.Storage, error) {
	// Get database path from config
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDBPath
	}

	// Expand tilde and environment variables
	dbPath = config.ExpandPath(dbPath)

	// Initialize storage
	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// resolveCategory looks up a category by name and fails with a helpful
// message when it does not exist.
func resolveCategory(ctx context.Context, store service.Storage, name string) (*model.Category, error) {
	cat, err := store.GetCategoryByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to look up category: %w", err)
	}
	if cat == nil {
		return nil, common.NewUserError(
			fmt.Sprintf("category %q does not exist; use 'budgeteer categories add' to create it", name),
			common.ErrNotFound)
	}
	return cat, nil
}

// parseAmount parses a user-supplied decimal amount string.
func parseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return amount, nil
}

// parseDate parses a user-supplied YYYY-MM-DD date string.
func parseDate(s string) (time.Time, error) {
	date, err := time.Parse(model.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", s, err)
	}
	return date, nil
}

// currentMonth returns today's month as a YYYY-MM token.
func currentMonth() string {
	return time.Now().Format("2006-01")
}
