package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"hotelres/internal/infra/record/postgres/testutil"
	"hotelres/internal/record/core"
)

func newStubStore(t *testing.T) (*Store, *testutil.StubConn) {
	t.Helper()
	db, conn := testutil.NewStubDB()
	restore := OverrideSQLOpen(func(_, _ string) (*sql.DB, error) { return db, nil })
	t.Cleanup(restore)
	store, err := New(context.Background(), "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return store, conn
}

func TestNewEnsuresCollectionsTable(t *testing.T) {
	store, conn := newStubStore(t)
	if store.Driver() != core.DriverPostgres {
		t.Fatalf("unexpected driver %s", store.Driver())
	}
	var sawDDL bool
	for _, stmt := range conn.Execs {
		if strings.Contains(strings.ToUpper(stmt), "CREATE TABLE IF NOT EXISTS COLLECTIONS") {
			sawDDL = true
		}
	}
	if !sawDDL {
		t.Fatalf("expected collections DDL, got %v", conn.Execs)
	}
}

func TestStoreWriteReadUpsert(t *testing.T) {
	ctx := context.Background()
	store, conn := newStubStore(t)
	if _, err := store.Read(ctx, "hotels"); !errors.Is(err, core.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
	if err := store.Write(ctx, "hotels", []byte(`[1]`)); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := store.Write(ctx, "customers", []byte(`[2]`)); err != nil {
		t.Fatalf("write customers: %v", err)
	}
	if err := store.Write(ctx, "hotels", []byte(`[3]`)); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	got, err := store.Read(ctx, "hotels")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != "[3]" {
		t.Fatalf("expected upserted payload, got %s", got)
	}
	if n := len(conn.Tables["collections"]); n != 2 {
		t.Fatalf("expected 2 rows, got %d", n)
	}
}

func TestStoreSurfacesDriverFailures(t *testing.T) {
	ctx := context.Background()
	store, conn := newStubStore(t)
	conn.FailBegin = true
	if err := store.Write(ctx, "hotels", []byte(`[]`)); err == nil {
		t.Fatalf("expected begin failure")
	}
	conn.FailBegin = false
	conn.FailCommit = true
	if err := store.Write(ctx, "hotels", []byte(`[]`)); err == nil {
		t.Fatalf("expected commit failure")
	}
	conn.FailCommit = false
	conn.FailQuery = true
	if _, err := store.Read(ctx, "hotels"); err == nil || errors.Is(err, core.ErrNotExist) {
		t.Fatalf("expected query failure, got %v", err)
	}
}

func TestNewClosesHandleOnSetupFailure(t *testing.T) {
	cases := map[string]func(*testutil.StubConn){
		"ping":  func(c *testutil.StubConn) { c.FailPing = true },
		"table": func(c *testutil.StubConn) { c.FailExec = true },
	}
	for name, fail := range cases {
		t.Run(name, func(t *testing.T) {
			db, conn := testutil.NewStubDB()
			fail(conn)
			restore := OverrideSQLOpen(func(_, _ string) (*sql.DB, error) { return db, nil })
			defer restore()
			if _, err := New(context.Background(), "postgres://example"); err == nil {
				t.Fatalf("expected %s failure", name)
			}
			conn.FailPing = false
			if err := db.PingContext(context.Background()); err == nil || !strings.Contains(err.Error(), "closed") {
				t.Fatalf("expected the handle closed, got %v", err)
			}
		})
	}
}
