package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/okarpenko/water-meter-bot/internal/db"
)

// Tx is an alias for pgx.Tx
type Tx = pgx.Tx

// Repository handles database operations
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CreateUser persists a completed registration
func (r *Repository) CreateUser(ctx context.Context, user *db.User) error {
	query := `
		INSERT INTO users (chat_id, full_name, phone, address, account_number, meters_count)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	err := r.pool.QueryRow(ctx, query,
		user.ChatID,
		user.FullName,
		user.Phone,
		user.Address,
		user.AccountNumber,
		user.MetersCount,
	).Scan(&user.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetUser retrieves a profile by chat id
func (r *Repository) GetUser(ctx context.Context, chatID int64) (*db.User, error) {
	query := `
		SELECT chat_id, full_name, phone, address, account_number, meters_count, created_at
		FROM users
		WHERE chat_id = $1
	`

	var user db.User
	err := r.pool.QueryRow(ctx, query, chatID).Scan(
		&user.ChatID,
		&user.FullName,
		&user.Phone,
		&user.Address,
		&user.AccountNumber,
		&user.MetersCount,
		&user.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return &user, nil
}

// ListUsers returns every registered profile
func (r *Repository) ListUsers(ctx context.Context) ([]db.User, error) {
	query := `
		SELECT chat_id, full_name, phone, address, account_number, meters_count, created_at
		FROM users
		ORDER BY chat_id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []db.User
	for rows.Next() {
		var user db.User
		if err := rows.Scan(
			&user.ChatID,
			&user.FullName,
			&user.Phone,
			&user.Address,
			&user.AccountNumber,
			&user.MetersCount,
			&user.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return users, nil
}

// UpdateFullName replaces a profile's full name
func (r *Repository) UpdateFullName(ctx context.Context, chatID int64, fullName string) error {
	return r.updateUserColumn(ctx, chatID, "full_name", fullName)
}

// UpdateAddress replaces a profile's address
func (r *Repository) UpdateAddress(ctx context.Context, chatID int64, address string) error {
	return r.updateUserColumn(ctx, chatID, "address", address)
}

// UpdateAccountNumber replaces a profile's account number
func (r *Repository) UpdateAccountNumber(ctx context.Context, chatID int64, accountNumber string) error {
	return r.updateUserColumn(ctx, chatID, "account_number", accountNumber)
}

// UpdateMetersCount replaces a profile's declared meter count
func (r *Repository) UpdateMetersCount(ctx context.Context, chatID int64, count int) error {
	tag, err := r.pool.Exec(ctx, `UPDATE users SET meters_count = $1 WHERE chat_id = $2`, count, chatID)
	if err != nil {
		return fmt.Errorf("failed to update meters_count: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *Repository) updateUserColumn(ctx context.Context, chatID int64, column, value string) error {
	query := fmt.Sprintf(`UPDATE users SET %s = $1 WHERE chat_id = $2`, column)
	tag, err := r.pool.Exec(ctx, query, value, chatID)
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", column, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// CreateCounter registers a new counter for a user
func (r *Repository) CreateCounter(ctx context.Context, chatID int64, alias string) (*db.Counter, error) {
	query := `
		INSERT INTO counters (chat_id, alias)
		VALUES ($1, $2)
		RETURNING id
	`

	counter := db.Counter{ChatID: chatID, Alias: alias}
	if err := r.pool.QueryRow(ctx, query, chatID, alias).Scan(&counter.ID); err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}

	return &counter, nil
}

// GetCounter retrieves one counter by id
func (r *Repository) GetCounter(ctx context.Context, counterID int64) (*db.Counter, error) {
	query := `
		SELECT id, chat_id, alias, last_reading, previous_reading
		FROM counters
		WHERE id = $1
	`

	var counter db.Counter
	err := r.pool.QueryRow(ctx, query, counterID).Scan(
		&counter.ID,
		&counter.ChatID,
		&counter.Alias,
		&counter.LastReading,
		&counter.PreviousReading,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrCounterNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query counter: %w", err)
	}

	return &counter, nil
}

// ListCounters returns a user's counters in creation order
func (r *Repository) ListCounters(ctx context.Context, chatID int64) ([]db.Counter, error) {
	query := `
		SELECT id, chat_id, alias, last_reading, previous_reading
		FROM counters
		WHERE chat_id = $1
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to query counters: %w", err)
	}
	defer rows.Close()

	var counters []db.Counter
	for rows.Next() {
		var counter db.Counter
		if err := rows.Scan(
			&counter.ID,
			&counter.ChatID,
			&counter.Alias,
			&counter.LastReading,
			&counter.PreviousReading,
		); err != nil {
			return nil, fmt.Errorf("failed to scan counter: %w", err)
		}
		counters = append(counters, counter)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return counters, nil
}

// RenameCounter replaces a counter's display alias
func (r *Repository) RenameCounter(ctx context.Context, counterID int64, alias string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE counters SET alias = $1 WHERE id = $2`, alias, counterID)
	if err != nil {
		return fmt.Errorf("failed to rename counter: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCounterNotFound
	}
	return nil
}

// DeleteCounter removes a counter together with its readings
func (r *Repository) DeleteCounter(ctx context.Context, counterID int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM counters WHERE id = $1`, counterID)
	if err != nil {
		return fmt.Errorf("failed to delete counter: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCounterNotFound
	}
	return nil
}

// AppendAudit records an action in the administrative audit log
func (r *Repository) AppendAudit(ctx context.Context, chatID int64, action string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO logs (chat_id, action) VALUES ($1, $2)`,
		chatID, action,
	)
	if err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}
	return nil
}
