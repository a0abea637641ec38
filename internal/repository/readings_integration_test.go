//go:build integration

package repository_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/okarpenko/water-meter-bot/internal/db"
	"github.com/okarpenko/water-meter-bot/internal/repository"
)

// Run with: go test -tags integration ./internal/repository/ with
// TEST_DATABASE_URL pointing at a scratch Postgres database.
func setupRepo(t *testing.T) (*pgxpool.Pool, *repository.Repository) {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	pool, err := pgxpool.New(context.Background(), url)
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := db.EnsureSchema(context.Background(), pool); err != nil {
		t.Fatalf("Failed to ensure schema: %v", err)
	}

	return pool, repository.NewRepository(pool)
}

func cleanupUser(t *testing.T, pool *pgxpool.Pool, chatID int64) {
	t.Helper()
	t.Cleanup(func() {
		ctx := context.Background()
		pool.Exec(ctx, `DELETE FROM counters WHERE chat_id = $1`, chatID)
		pool.Exec(ctx, `DELETE FROM users WHERE chat_id = $1`, chatID)
	})
}

func insertReadingAt(t *testing.T, pool *pgxpool.Pool, counterID, value int64, at time.Time) {
	t.Helper()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO readings (counter_id, value, created_at) VALUES ($1, $2, $3)`,
		counterID, value, at,
	)
	if err != nil {
		t.Fatalf("Failed to insert reading: %v", err)
	}
}

func TestReadingsReport_PredecessorOutsideRange(t *testing.T) {
	pool, repo := setupRepo(t)
	ctx := context.Background()

	chatID := time.Now().UnixNano()
	cleanupUser(t, pool, chatID)

	err := repo.CreateUser(ctx, &db.User{
		ChatID:        chatID,
		FullName:      "Іваненко Іван",
		Phone:         "+380501234567",
		Address:       "вул. Зелена, 1",
		AccountNumber: "111",
		MetersCount:   1,
	})
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	counter, err := repo.CreateCounter(ctx, chatID, "Лічильник-1")
	if err != nil {
		t.Fatalf("CreateCounter failed: %v", err)
	}

	prevAt := time.Date(2026, 2, 8, 9, 30, 0, 0, time.UTC)
	readAt := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	insertReadingAt(t, pool, counter.ID, 1200, prevAt)
	insertReadingAt(t, pool, counter.ID, 1250, readAt)

	// Same-day range around the March reading only; the February
	// predecessor must still surface through the window.
	start := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 10, 23, 59, 59, 0, time.UTC)

	rows, err := repo.ReadingsReport(ctx, start, end)
	if err != nil {
		t.Fatalf("ReadingsReport failed: %v", err)
	}

	var row *db.ReportRow
	for i := range rows {
		if rows[i].ChatID == chatID {
			row = &rows[i]
		}
	}
	if row == nil {
		t.Fatal("Expected a report row for the test user")
	}

	if row.Value != 1250 {
		t.Errorf("Expected current value 1250, got %d", row.Value)
	}
	if row.PrevValue == nil || *row.PrevValue != 1200 {
		t.Error("Expected the out-of-range predecessor value 1200")
	}
	if row.PrevReadAt == nil || !row.PrevReadAt.Equal(prevAt) {
		t.Errorf("Expected predecessor date %v, got %v", prevAt, row.PrevReadAt)
	}
}

func TestReadingsReport_SlotsSurviveRangeFilter(t *testing.T) {
	pool, repo := setupRepo(t)
	ctx := context.Background()

	chatID := time.Now().UnixNano()
	cleanupUser(t, pool, chatID)

	err := repo.CreateUser(ctx, &db.User{
		ChatID:        chatID,
		FullName:      "Петренко Петро",
		Phone:         "+380671112233",
		Address:       "вул. Синя, 2",
		AccountNumber: "222",
		MetersCount:   2,
	})
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	first, err := repo.CreateCounter(ctx, chatID, "Лічильник-1")
	if err != nil {
		t.Fatalf("CreateCounter failed: %v", err)
	}
	second, err := repo.CreateCounter(ctx, chatID, "Лічильник-2")
	if err != nil {
		t.Fatalf("CreateCounter failed: %v", err)
	}

	febAt := time.Date(2026, 2, 8, 9, 30, 0, 0, time.UTC)
	marAt := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	insertReadingAt(t, pool, first.ID, 500, febAt)
	insertReadingAt(t, pool, second.ID, 90, febAt)
	insertReadingAt(t, pool, second.ID, 120, marAt)

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 31, 23, 59, 59, 0, time.UTC)

	rows, err := repo.ReadingsReport(ctx, start, end)
	if err != nil {
		t.Fatalf("ReadingsReport failed: %v", err)
	}

	var got []db.ReportRow
	for _, row := range rows {
		if row.ChatID == chatID {
			got = append(got, row)
		}
	}

	// Only the second counter has a March reading, but it keeps its
	// second slot; the first counter is simply absent.
	if len(got) != 1 {
		t.Fatalf("Expected 1 row for the test user, got %d", len(got))
	}
	if got[0].CounterID != second.ID {
		t.Errorf("Expected counter %d in the report, got %d", second.ID, got[0].CounterID)
	}
	if got[0].Slot != 2 {
		t.Errorf("Expected slot 2 for the second counter, got %d", got[0].Slot)
	}
	if got[0].PrevValue == nil || *got[0].PrevValue != 90 {
		t.Error("Expected the February predecessor value 90")
	}
}
