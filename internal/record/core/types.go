// Package core defines the byte-level contract shared by record store
// backends. Each backend persists whole collections: a collection is read and
// rewritten in full, never patched.
package core

import (
	"context"
	"errors"
)

// Driver identifies a concrete record store backend implementation.
type Driver string

const (
	// DriverFilesystem stores one pretty-printed JSON file per collection (default).
	DriverFilesystem Driver = "fs"
	// DriverMemory keeps collections in process memory (tests, ephemeral runs).
	DriverMemory Driver = "memory"
	// DriverSQLite stores collections as rows of an embedded sqlite database.
	DriverSQLite Driver = "sqlite"
	// DriverPostgres stores collections as JSONB rows in PostgreSQL.
	DriverPostgres Driver = "postgres"
	// DriverS3 stores one object per collection in an S3 / MinIO bucket.
	DriverS3 Driver = "s3"
)

// ErrNotExist is returned by Read when the collection has never been written.
var ErrNotExist = errors.New("recordstore: collection does not exist")

// Backend reads and overwrites named collection snapshots.
type Backend interface {
	// Read returns the last snapshot written for name, or ErrNotExist.
	Read(ctx context.Context, name string) ([]byte, error)
	// Write replaces the snapshot for name. Readers observe either the old or
	// the new snapshot, never a partial one.
	Write(ctx context.Context, name string, data []byte) error
	Driver() Driver
}
