package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/awest/budgeteer/internal/common"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStorage implements the service.Storage interface using SQLite.
//
// Monetary amounts are persisted as exact-decimal TEXT, never as REAL:
// the aggregator's closure guarantee depends on it. Dates are stored
// as YYYY-MM-DD TEXT so inclusive range comparisons stay calendar
// comparisons.
type SQLiteStorage struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStorage creates a new SQLite storage instance. The database
// is opened in WAL mode with a busy timeout so a concurrently held
// lock fails fast instead of corrupting data.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("%w: failed to create database directory: %v", common.ErrStorageUnavailable, err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open database: %v", common.ErrStorageUnavailable, err)
	}

	// SQLite doesn't benefit from multiple connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("%w: failed to ping database: %v", common.ErrStorageUnavailable, err)
	}

	return &SQLiteStorage{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
