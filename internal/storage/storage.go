// Package storage opens the tone database and applies its schema.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Juicern/remagik/internal/config"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Open connects to the database selected by cfg.Driver. SQLite is the
// default.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	switch driver(cfg) {
	case DriverSQLite:
		return NewSQLite(cfg)
	case DriverPostgres:
		return NewPostgres(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func RunMigrations(ctx context.Context, db *sql.DB, cfg config.DatabaseConfig) error {
	if db == nil {
		return errors.New("db is nil")
	}

	schema := sqliteSchema
	if driver(cfg) == DriverPostgres {
		schema = postgresSchema
	}
	_, err := db.ExecContext(ctx, schema)
	return err
}

func driver(cfg config.DatabaseConfig) string {
	switch d := strings.ToLower(strings.TrimSpace(cfg.Driver)); d {
	case "", "sqlite", "sqlite3":
		return DriverSQLite
	case "postgres", "postgresql", "pgx":
		return DriverPostgres
	default:
		return d
	}
}
