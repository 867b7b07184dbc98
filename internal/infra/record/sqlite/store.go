// Package sqlite implements a record store backend on an embedded SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"hotelres/internal/record/core"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

const schema = `CREATE TABLE IF NOT EXISTS collections (
	name TEXT PRIMARY KEY,
	payload BLOB NOT NULL
)`

// Store keeps every collection snapshot as one row of the collections table.
type Store struct {
	db   *sql.DB
	path string
}

// New opens (creating if needed) the database at path.
func New(path string) (*Store, error) {
	if path == "" {
		path = "hotelres.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create collections table: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Driver returns core.DriverSQLite.
func (s *Store) Driver() core.Driver { return core.DriverSQLite }

// Read returns the payload row for name.
func (s *Store) Read(ctx context.Context, name string) ([]byte, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM collections WHERE name = ?`, name).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrNotExist
	}
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", name, err)
	}
	return payload, nil
}

// Write upserts the payload row for name.
func (s *Store) Write(ctx context.Context, name string, data []byte) error {
	if _, err := s.db.ExecContext(ctx, `INSERT INTO collections(name,payload) VALUES(?,?) ON CONFLICT(name) DO UPDATE SET payload=excluded.payload`, name, data); err != nil {
		return fmt.Errorf("upsert %s: %w", name, err)
	}
	return nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *Store) DB() *sql.DB { return s.db }

// Path returns the configured database path.
func (s *Store) Path() string { return s.path }
