package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/okarpenko/water-meter-bot/internal/db"
)

// InsertReading appends a reading to the log and shifts the counter's
// denormalized cache inside a single transaction. The counter row is
// locked for the duration so the log and the cache can never diverge.
// Returns the inserted row and the previous last reading (nil on the
// counter's first ever reading).
func (r *Repository) InsertReading(ctx context.Context, counterID int64, value int64) (*db.Reading, *int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var last *int64
	err = tx.QueryRow(ctx,
		`SELECT last_reading FROM counters WHERE id = $1 FOR UPDATE`,
		counterID,
	).Scan(&last)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, ErrCounterNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to lock counter: %w", err)
	}

	if last != nil && value <= *last {
		return nil, nil, &MonotonicityError{LastReading: *last, Value: value}
	}

	reading := db.Reading{CounterID: counterID, Value: value}
	err = tx.QueryRow(ctx,
		`INSERT INTO readings (counter_id, value) VALUES ($1, $2) RETURNING id, created_at`,
		counterID, value,
	).Scan(&reading.ID, &reading.CreatedAt)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to insert reading: %w", err)
	}

	if last == nil {
		// First reading: previous_reading stays unset
		_, err = tx.Exec(ctx,
			`UPDATE counters SET last_reading = $1 WHERE id = $2`,
			value, counterID,
		)
	} else {
		_, err = tx.Exec(ctx,
			`UPDATE counters SET previous_reading = last_reading, last_reading = $1 WHERE id = $2`,
			value, counterID,
		)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to update counter cache: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &reading, last, nil
}

// ReadingsReport returns, for every counter with at least one reading
// inside [start, end], that counter's most recent in-range reading and
// the chronologically preceding reading. The LAG window runs over the
// whole log, so the predecessor may fall before the requested range.
// Slot numbers every counter within its owner's full list, including
// counters the range filter drops, so column positions stay stable.
func (r *Repository) ReadingsReport(ctx context.Context, start, end time.Time) ([]db.ReportRow, error) {
	query := `
		WITH ordered AS (
			SELECT
				r.counter_id,
				r.value,
				r.created_at,
				LAG(r.value) OVER w AS prev_value,
				LAG(r.created_at) OVER w AS prev_date
			FROM readings r
			WINDOW w AS (PARTITION BY r.counter_id ORDER BY r.created_at)
		), ranked AS (
			SELECT
				o.*,
				ROW_NUMBER() OVER (PARTITION BY o.counter_id ORDER BY o.created_at DESC) AS rn
			FROM ordered o
			WHERE o.created_at BETWEEN $1 AND $2
		), slots AS (
			SELECT
				id,
				ROW_NUMBER() OVER (PARTITION BY chat_id ORDER BY id) AS slot
			FROM counters
		)
		SELECT
			u.chat_id,
			u.account_number,
			u.full_name,
			u.phone,
			u.address,
			u.meters_count,
			c.id,
			c.alias,
			s.slot,
			rr.value,
			rr.created_at,
			rr.prev_value,
			rr.prev_date
		FROM users u
		INNER JOIN counters c ON c.chat_id = u.chat_id
		INNER JOIN slots s ON s.id = c.id
		INNER JOIN ranked rr ON rr.counter_id = c.id
		WHERE rr.rn = 1
		ORDER BY u.account_number, c.id
	`

	rows, err := r.pool.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query readings report: %w", err)
	}
	defer rows.Close()

	var report []db.ReportRow
	for rows.Next() {
		var row db.ReportRow
		if err := rows.Scan(
			&row.ChatID,
			&row.AccountNumber,
			&row.FullName,
			&row.Phone,
			&row.Address,
			&row.MetersCount,
			&row.CounterID,
			&row.Alias,
			&row.Slot,
			&row.Value,
			&row.ReadAt,
			&row.PrevValue,
			&row.PrevReadAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}
		report = append(report, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return report, nil
}
