package cache

import (
	"apartment-geo-enrich/internal/platform/db"
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var sqliteSchema = []string{
	`
	CREATE TABLE IF NOT EXISTS route_cache (
		mode TEXT NOT NULL,
		origin TEXT NOT NULL,
		destination TEXT NOT NULL,
		distance_meters REAL NOT NULL,
		duration_seconds REAL NOT NULL,
		PRIMARY KEY (mode, origin, destination)
	);
	`,
	`
	CREATE TABLE IF NOT EXISTS geocode_cache (
		address TEXT PRIMARY KEY,
		lon REAL NOT NULL,
		lat REAL NOT NULL
	);
	`,
	`
	CREATE INDEX IF NOT EXISTS idx_route_cache_destination
	ON route_cache(mode, destination);
	`,
}

var postgresSchema = []string{
	`
	CREATE TABLE IF NOT EXISTS route_cache (
		mode TEXT NOT NULL,
		origin TEXT NOT NULL,
		destination TEXT NOT NULL,
		distance_meters DOUBLE PRECISION NOT NULL,
		duration_seconds DOUBLE PRECISION NOT NULL,
		cached_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (mode, origin, destination)
	);
	`,
	`
	CREATE TABLE IF NOT EXISTS geocode_cache (
		address TEXT PRIMARY KEY,
		lon DOUBLE PRECISION NOT NULL,
		lat DOUBLE PRECISION NOT NULL,
		cached_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`,
	`
	CREATE INDEX IF NOT EXISTS idx_route_cache_destination
	ON route_cache(mode, destination);
	`,
}

// Create the cache tables in a SQLite database.
func InitSQLiteSchema(ctx context.Context, sqlDB *sql.DB) error {
	if sqlDB == nil {
		return errors.New("init sqlite cache schema: DB is nil")
	}

	tx, err := sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init sqlite cache schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range sqliteSchema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init sqlite cache schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init sqlite cache schema: commit tx: %w", err)
	}
	return nil
}

// Create the cache tables in a Postgres database.
func InitPostgresSchema(ctx context.Context, pool db.Pool) error {
	if pool == nil {
		return errors.New("init postgres cache schema: pool is nil")
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("init postgres cache schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for i, stmt := range postgresSchema {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init postgres cache schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("init postgres cache schema: commit tx: %w", err)
	}
	return nil
}
