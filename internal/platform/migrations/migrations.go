// Package migrations applies the promo service database schema. Statements
// are idempotent so Apply can run on every startup.
package migrations

import (
	"context"
	"database/sql"
	"fmt"
)

var statements = []string{
	`CREATE TABLE IF NOT EXISTS promo_templates (
		id            TEXT PRIMARY KEY,
		name          TEXT NOT NULL,
		format        TEXT NOT NULL,
		canvas_width  INTEGER NOT NULL,
		canvas_height INTEGER NOT NULL,
		background    JSONB,
		elements      JSONB NOT NULL DEFAULT '[]',
		created_at    TIMESTAMPTZ NOT NULL,
		updated_at    TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS promo_releases (
		id          TEXT PRIMARY KEY,
		title       TEXT NOT NULL,
		artist_name TEXT NOT NULL,
		cover_art   JSONB,
		created_at  TIMESTAMPTZ NOT NULL,
		updated_at  TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS promotions (
		id              TEXT PRIMARY KEY,
		release_id      TEXT NOT NULL,
		slug            TEXT NOT NULL,
		streaming_links JSONB NOT NULL DEFAULT '[]',
		customization   JSONB NOT NULL DEFAULT '{}',
		is_published    BOOLEAN NOT NULL DEFAULT FALSE,
		created_at      TIMESTAMPTZ NOT NULL,
		updated_at      TIMESTAMPTZ NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS promotions_release_id_idx ON promotions (release_id)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS promotions_slug_idx ON promotions (lower(slug))`,
	`CREATE INDEX IF NOT EXISTS promotions_published_idx ON promotions (is_published)`,
}

// Apply executes all schema migrations in order.
func Apply(ctx context.Context, db *sql.DB) error {
	for i, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
