package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/okarpenko/water-meter-bot/internal/db"
)

// SetDialogState upserts a chat's conversation position. Payload must be
// a JSON document; pass nil for an empty one.
func (r *Repository) SetDialogState(ctx context.Context, chatID int64, state string, payload []byte) error {
	if payload == nil {
		payload = []byte("{}")
	}

	query := `
		INSERT INTO chat_states (chat_id, state, payload, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (chat_id) DO UPDATE
		SET state = EXCLUDED.state, payload = EXCLUDED.payload, updated_at = now()
	`

	if _, err := r.pool.Exec(ctx, query, chatID, state, payload); err != nil {
		return fmt.Errorf("failed to set dialog state: %w", err)
	}
	return nil
}

// GetDialogState returns a chat's persisted conversation position, or
// (nil, nil) when the chat has no pending dialog.
func (r *Repository) GetDialogState(ctx context.Context, chatID int64) (*db.DialogState, error) {
	query := `
		SELECT chat_id, state, payload, updated_at
		FROM chat_states
		WHERE chat_id = $1
	`

	var state db.DialogState
	err := r.pool.QueryRow(ctx, query, chatID).Scan(
		&state.ChatID,
		&state.State,
		&state.Payload,
		&state.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query dialog state: %w", err)
	}

	return &state, nil
}

// ClearDialogState removes a chat's pending dialog, if any
func (r *Repository) ClearDialogState(ctx context.Context, chatID int64) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM chat_states WHERE chat_id = $1`, chatID); err != nil {
		return fmt.Errorf("failed to clear dialog state: %w", err)
	}
	return nil
}

// OpenAdminSession authorizes a chat as administrator until the ttl
// elapses. Expired sessions are pruned on the way in.
func (r *Repository) OpenAdminSession(ctx context.Context, chatID int64, ttl time.Duration) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM admin_sessions WHERE expires_at <= now()`); err != nil {
		return fmt.Errorf("failed to prune admin sessions: %w", err)
	}

	query := `
		INSERT INTO admin_sessions (chat_id, expires_at)
		VALUES ($1, now() + $2)
		ON CONFLICT (chat_id) DO UPDATE
		SET created_at = now(), expires_at = EXCLUDED.expires_at
	`

	if _, err := r.pool.Exec(ctx, query, chatID, ttl); err != nil {
		return fmt.Errorf("failed to open admin session: %w", err)
	}
	return nil
}

// IsAdminSessionActive reports whether the chat holds an unexpired
// admin session
func (r *Repository) IsAdminSessionActive(ctx context.Context, chatID int64) (bool, error) {
	var one int
	err := r.pool.QueryRow(ctx,
		`SELECT 1 FROM admin_sessions WHERE chat_id = $1 AND expires_at > now()`,
		chatID,
	).Scan(&one)

	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to query admin session: %w", err)
	}

	return true, nil
}
