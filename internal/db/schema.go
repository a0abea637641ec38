package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema statements are idempotent; the schema is assumed stable across
// restarts and there is no migrations mechanism.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		chat_id        BIGINT PRIMARY KEY,
		full_name      TEXT NOT NULL,
		phone          TEXT NOT NULL,
		address        TEXT NOT NULL,
		account_number TEXT NOT NULL,
		meters_count   INT NOT NULL,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS counters (
		id               BIGSERIAL PRIMARY KEY,
		chat_id          BIGINT NOT NULL REFERENCES users (chat_id),
		alias            TEXT NOT NULL,
		last_reading     BIGINT,
		previous_reading BIGINT
	)`,
	`CREATE TABLE IF NOT EXISTS readings (
		id         BIGSERIAL PRIMARY KEY,
		counter_id BIGINT NOT NULL REFERENCES counters (id) ON DELETE CASCADE,
		value      BIGINT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS readings_counter_created_idx
		ON readings (counter_id, created_at)`,
	`CREATE TABLE IF NOT EXISTS logs (
		id         BIGSERIAL PRIMARY KEY,
		chat_id    BIGINT NOT NULL,
		action     TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS chat_states (
		chat_id    BIGINT PRIMARY KEY,
		state      TEXT NOT NULL,
		payload    JSONB NOT NULL DEFAULT '{}',
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS admin_sessions (
		chat_id    BIGINT PRIMARY KEY,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		expires_at TIMESTAMPTZ NOT NULL
	)`,
}

// EnsureSchema creates the tables the bot needs if they do not exist yet
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("[DATABASE] failed to ensure schema: %w", err)
		}
	}
	return nil
}
