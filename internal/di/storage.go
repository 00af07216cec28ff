package di

import (
	"database/sql"
	"strings"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// WithSQLDB binds bun-backed repositories over a raw database handle. The
// dialect is chosen from StorageConfig.Provider; WithBunDB takes precedence
// when both are supplied.
func WithSQLDB(db *sql.DB) Option {
	return func(c *Container) {
		c.sqlDB = db
	}
}

// NewBunDB wraps a raw handle with the bun dialect matching provider.
// Unrecognised providers default to sqlite.
func NewBunDB(sqlDB *sql.DB, provider string) *bun.DB {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "postgres", "postgresql", "pg":
		return bun.NewDB(sqlDB, pgdialect.New())
	default:
		return bun.NewDB(sqlDB, sqlitedialect.New())
	}
}
