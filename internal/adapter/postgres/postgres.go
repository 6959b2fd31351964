// Package postgres implements the domain repositories using PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// DB wraps a *sql.DB and implements the domain repository interfaces.
type DB struct {
	sql *sql.DB
}

// Open connects to PostgreSQL, pings, and runs migrations.
func Open(connStr string) (*DB, error) {
	s, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}
	s.SetMaxOpenConns(10)
	s.SetMaxIdleConns(5)
	s.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.PingContext(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}

	d := &DB{sql: s}
	if err := d.migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

func (d *DB) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			email TEXT UNIQUE NOT NULL,
			name TEXT NOT NULL DEFAULT '',
			password_hash TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS sessions (
			token TEXT PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			user_agent TEXT NOT NULL DEFAULT '',
			ip TEXT NOT NULL DEFAULT '',
			expires_at TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions(expires_at);`,
		`CREATE TABLE IF NOT EXISTS beans (
			id UUID PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			roaster TEXT NOT NULL DEFAULT '',
			origin TEXT NOT NULL DEFAULT '',
			roast_level TEXT NOT NULL DEFAULT '' CHECK(roast_level IN ('', 'light', 'medium', 'medium-dark', 'dark')),
			process TEXT NOT NULL DEFAULT '' CHECK(process IN ('', 'washed', 'natural', 'honey', 'anaerobic')),
			roast_date DATE,
			link TEXT NOT NULL DEFAULT '',
			notes TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_beans_user_name ON beans(user_id, name);`,
		`CREATE TABLE IF NOT EXISTS grinders (
			id UUID PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			display_name TEXT NOT NULL,
			brand TEXT NOT NULL DEFAULT '',
			model TEXT NOT NULL DEFAULT '',
			notes TEXT NOT NULL DEFAULT '',
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_grinders_user_active ON grinders(user_id, is_active) WHERE is_active;`,
		`CREATE TABLE IF NOT EXISTS brews (
			id UUID PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			bean_id UUID NOT NULL REFERENCES beans(id) ON DELETE RESTRICT,
			method TEXT NOT NULL CHECK(method IN ('espresso', 'v60', 'aeropress', 'french_press', 'moka', 'chemex', 'turkish', 'cold_brew')),
			brewed_at TIMESTAMPTZ NOT NULL,
			dose_grams DOUBLE PRECISION CHECK(dose_grams IS NULL OR dose_grams > 0),
			yield_grams DOUBLE PRECISION CHECK(yield_grams IS NULL OR yield_grams > 0),
			brew_time_seconds INTEGER CHECK(brew_time_seconds IS NULL OR brew_time_seconds >= 0),
			water_temp_celsius INTEGER,
			grinder_id UUID REFERENCES grinders(id) ON DELETE SET NULL,
			grind_setting TEXT NOT NULL DEFAULT '',
			rating INTEGER CHECK(rating IS NULL OR (rating >= 1 AND rating <= 5)),
			notes TEXT NOT NULL DEFAULT '',
			flavor_notes TEXT NOT NULL DEFAULT '',
			is_public BOOLEAN NOT NULL DEFAULT FALSE,
			deleted_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_brews_user_brewed_at ON brews(user_id, brewed_at) WHERE deleted_at IS NULL;`,
		`CREATE INDEX IF NOT EXISTS idx_brews_bean ON brews(bean_id);`,
		`CREATE INDEX IF NOT EXISTS idx_brews_user_method ON brews(user_id, method);`,
	}

	for _, stmt := range stmts {
		if _, err := d.sql.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
