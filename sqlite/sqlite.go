// Package sqlite provides SQLite-based storage for pipeline runs and the
// contacts they produced.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DB represents a SQLite database connection.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB creates a new DB instance with the given path.
// Use ":memory:" for an in-memory database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open opens the database connection and creates the schema if needed.
// The parent directory of a file-based database is created.
func (db *DB) Open() error {
	memory := db.path == ":memory:"
	if !memory {
		if err := os.MkdirAll(filepath.Dir(db.path), 0o755); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	// One writer at a time; run bookkeeping and contact inserts share it.
	conn.SetMaxOpenConns(1)

	pragmas := []string{"busy_timeout = 5000", "foreign_keys = ON"}
	if !memory {
		pragmas = append(pragmas, "journal_mode = WAL")
	}
	for _, p := range pragmas {
		if _, err := conn.Exec("PRAGMA " + p); err != nil {
			conn.Close()
			return fmt.Errorf("failed to set %s: %w", p, err)
		}
	}
	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}

	db.db = conn
	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// BeginTx starts a transaction.
func (db *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	return db.db.BeginTx(ctx, opts)
}

// schema holds one row per pipeline run and the deduplicated contacts
// each run stored.
const schema = `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			sites INTEGER NOT NULL DEFAULT 0,
			contacts INTEGER NOT NULL DEFAULT 0,
			started_at TEXT NOT NULL,
			finished_at TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS contacts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			contact_hash TEXT NOT NULL,
			full_name TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL DEFAULT '',
			academic_title TEXT NOT NULL DEFAULT '',
			role TEXT NOT NULL DEFAULT '',
			field_hint TEXT NOT NULL DEFAULT '',
			source_url TEXT NOT NULL DEFAULT '',
			site_name TEXT NOT NULL DEFAULT '',
			country TEXT NOT NULL DEFAULT '',
			site_url TEXT NOT NULL DEFAULT '',
			score REAL NOT NULL DEFAULT 0,
			field TEXT NOT NULL DEFAULT '',
			reason TEXT NOT NULL DEFAULT '',
			publications TEXT NOT NULL DEFAULT '',
			UNIQUE (run_id, contact_hash)
		);

		CREATE INDEX IF NOT EXISTS idx_contacts_run_id ON contacts(run_id);
		CREATE INDEX IF NOT EXISTS idx_contacts_country ON contacts(country);
	`
