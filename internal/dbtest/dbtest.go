// Package dbtest provides helpers for testing database code.
package dbtest

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"

	// Register the sqlite driver for every test package that opens a database.
	_ "modernc.org/sqlite"

	"github.com/starquake/quizcli/internal/db"
)

// FileDSN returns a DSN for a fresh SQLite database file inside the test's temp dir.
// The file is removed together with the temp dir.
func FileDSN(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "quizcli-test.sqlite")

	return fmt.Sprintf(
		"file:%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(5000)",
		path,
	)
}

// Open opens an in-memory database connection with migrations applied.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	conn := OpenUnmigrated(t)

	if _, err := db.Migrate(t.Context(), conn, "sqlite"); err != nil {
		t.Fatalf("error running migrations: %v", err)
	}

	return conn
}

// OpenUnmigrated opens an in-memory database connection without migrations applied.
// The connection is closed when the test finishes.
func OpenUnmigrated(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("error opening SQLite database: %v", err)
	}
	// A single connection keeps every query on the same in-memory database.
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	t.Cleanup(func() {
		if closeErr := conn.Close(); closeErr != nil {
			t.Errorf("error closing SQLite database: %v", closeErr)
		}
	})

	return conn
}
