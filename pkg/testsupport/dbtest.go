// Package testsupport provides shared helpers for catalog storage tests.
package testsupport

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

// NewSQLiteMemoryDB opens a shared in-memory SQLite database for exercising
// the bun-backed repositories. Callers should cap open connections at one so
// every query sees the same memory store.
func NewSQLiteMemoryDB() (*sql.DB, error) {
	return sql.Open("sqlite3", "file::memory:?cache=shared")
}
