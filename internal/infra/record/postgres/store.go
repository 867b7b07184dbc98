// Package postgres implements a record store backend on PostgreSQL, storing
// each collection snapshot as a JSONB row.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"hotelres/internal/record/core"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
)

const (
	defaultDriver = "pgx"
	defaultDSN    = "postgres://localhost/hotelres?sslmode=disable"
)

var (
	sqlOpen = sql.Open
	openMu  sync.Mutex
)

// Store keeps every collection snapshot as one row of the collections table.
type Store struct {
	db *sql.DB
}

// New opens the database at dsn (falls back to defaultDSN), checks
// connectivity and ensures the collections table exists.
func New(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		dsn = defaultDSN
	}
	openMu.Lock()
	db, err := sqlOpen(defaultDriver, dsn)
	openMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if err := ensureTable(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func ensureTable(ctx context.Context, db *sql.DB) error {
	ddl := `CREATE TABLE IF NOT EXISTS collections (
		name TEXT PRIMARY KEY,
		payload JSONB NOT NULL
	)`
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("ensure collections table: %w", err)
	}
	return nil
}

// Driver returns core.DriverPostgres.
func (s *Store) Driver() core.Driver { return core.DriverPostgres }

// Read returns the payload row for name.
func (s *Store) Read(ctx context.Context, name string) ([]byte, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, payload FROM collections WHERE name = $1`, name)
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", name, err)
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var got string
		var payload []byte
		if err := rows.Scan(&got, &payload); err != nil {
			return nil, fmt.Errorf("scan %s: %w", name, err)
		}
		if got == name {
			return payload, nil
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", name, err)
	}
	return nil, core.ErrNotExist
}

// Write upserts the payload row for name inside a transaction.
func (s *Store) Write(ctx context.Context, name string, data []byte) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if _, err := tx.ExecContext(ctx, `INSERT INTO collections(name,payload) VALUES($1,$2) ON CONFLICT(name) DO UPDATE SET payload=EXCLUDED.payload`, name, data); err != nil {
		return fmt.Errorf("upsert %s: %w", name, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	committed = true
	return nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *Store) DB() *sql.DB { return s.db }

// OverrideSQLOpen swaps the sqlOpen function for tests and returns a restore function.
func OverrideSQLOpen(fn func(driverName, dataSourceName string) (*sql.DB, error)) func() {
	openMu.Lock()
	defer openMu.Unlock()
	prev := sqlOpen
	sqlOpen = fn
	return func() {
		openMu.Lock()
		defer openMu.Unlock()
		sqlOpen = prev
	}
}
