// Package db manages the standings archive database
package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// Import modernc.org/sqlite as a blank import to register the driver
	_ "modernc.org/sqlite"
)

// DB wraps the SQL database connection with application-specific methods.
type DB struct {
	*sql.DB
	path string
}

// New creates a new database connection and initializes the schema.
func New(path string) (*DB, error) {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// Open database connection
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test connection
	if err := sqlDB.PingContext(context.Background()); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db := &DB{
		DB:   sqlDB,
		path: path,
	}

	// Configure database
	if err := db.configure(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to configure database: %w", err)
	}

	// Create schema
	if err := db.createSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return db, nil
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

// configure sets up database pragmas for optimal performance.
func (db *DB) configure() error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA cache_size=-64000", // 64MB cache
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
		"PRAGMA temp_store=MEMORY",
	}

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(context.Background(), pragma); err != nil {
			return fmt.Errorf("failed to execute %s: %w", pragma, err)
		}
	}

	return nil
}

func (db *DB) createSchema() error {
	if err := db.createSnapshotsTable(); err != nil {
		return err
	}
	if err := db.createLoadEventsTable(); err != nil {
		return err
	}
	return db.createLeaderHistoryTable()
}

func (db *DB) createSnapshotsTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS contribution_snapshots (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		entry_date TEXT NOT NULL,
		guild TEXT NOT NULL,
		contribution REAL,
		member_count REAL,
		archived_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(entry_date, guild)
	);
	CREATE INDEX IF NOT EXISTS idx_snapshots_guild ON contribution_snapshots(guild, entry_date);
	CREATE INDEX IF NOT EXISTS idx_snapshots_date ON contribution_snapshots(entry_date);
	`
	_, err := db.ExecContext(context.Background(), query)
	return err
}

func (db *DB) createLoadEventsTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS load_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		loaded_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		source_path TEXT NOT NULL,
		date_count INTEGER NOT NULL DEFAULT 0,
		guild_count INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_load_events_time ON load_events(loaded_at);
	`
	_, err := db.ExecContext(context.Background(), query)
	return err
}

func (db *DB) createLeaderHistoryTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS leader_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		changed_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		guild TEXT NOT NULL,
		contribution REAL NOT NULL,
		as_of TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_leader_history_time ON leader_history(changed_at);
	`
	_, err := db.ExecContext(context.Background(), query)
	return err
}

// Close closes the database connection gracefully.
func (db *DB) Close() error {
	// Checkpoint WAL before closing
	_, _ = db.ExecContext(context.Background(), "PRAGMA wal_checkpoint(TRUNCATE)")
	return db.DB.Close()
}

// Vacuum performs database maintenance to reclaim space.
func (db *DB) Vacuum() error {
	_, err := db.ExecContext(context.Background(), "VACUUM")
	return err
}
