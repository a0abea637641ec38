package report_test

import (
	"testing"
	"time"

	"github.com/okarpenko/water-meter-bot/internal/db"
	"github.com/okarpenko/water-meter-bot/internal/report"
)

func int64Ptr(v int64) *int64 { return &v }

func timePtr(t time.Time) *time.Time { return &t }

func TestGroup_FoldsRowsPerUser(t *testing.T) {
	readAt := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	prevAt := time.Date(2026, 2, 8, 9, 30, 0, 0, time.UTC)

	rows := []db.ReportRow{
		{
			ChatID: 100, AccountNumber: "111", FullName: "Іваненко", Phone: "+380501234567",
			Address: "вул. Зелена, 1", MetersCount: 2,
			CounterID: 1, Alias: "Лічильник-1", Slot: 1, Value: 1250, ReadAt: readAt,
			PrevValue: int64Ptr(1200), PrevReadAt: timePtr(prevAt),
		},
		{
			ChatID: 100, AccountNumber: "111", FullName: "Іваненко", Phone: "+380501234567",
			Address: "вул. Зелена, 1", MetersCount: 2,
			CounterID: 2, Alias: "Лічильник-2", Slot: 2, Value: 340, ReadAt: readAt,
		},
		{
			ChatID: 200, AccountNumber: "222", FullName: "Петренко", Phone: "+380671112233",
			Address: "вул. Синя, 2", MetersCount: 1,
			CounterID: 5, Alias: "Кухня", Slot: 1, Value: 90, ReadAt: readAt,
		},
	}

	entries := report.Group(rows)

	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}

	first := entries[0]
	if first.ChatID != 100 || len(first.Counters) != 2 {
		t.Fatalf("Expected first entry for chat 100 with 2 counters, got chat %d with %d", first.ChatID, len(first.Counters))
	}
	if first.Counters[0].Previous == nil || first.Counters[0].Previous.Value != 1200 {
		t.Error("Expected first counter to carry its previous reading")
	}
	if first.Counters[1].Previous != nil {
		t.Error("Expected second counter without a previous reading")
	}
	if first.Counters[0].Slot != 1 || first.Counters[1].Slot != 2 {
		t.Error("Expected slot numbers to carry through grouping")
	}

	second := entries[1]
	if second.ChatID != 200 || len(second.Counters) != 1 {
		t.Fatalf("Expected second entry for chat 200 with 1 counter, got chat %d with %d", second.ChatID, len(second.Counters))
	}
	if second.Counters[0].Alias != "Кухня" {
		t.Errorf("Expected renamed counter alias to survive, got '%s'", second.Counters[0].Alias)
	}
}

func TestGroup_PreservesRowOrder(t *testing.T) {
	readAt := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	rows := []db.ReportRow{
		{ChatID: 300, AccountNumber: "001", CounterID: 9, Slot: 1, Value: 10, ReadAt: readAt},
		{ChatID: 100, AccountNumber: "002", CounterID: 1, Slot: 1, Value: 20, ReadAt: readAt},
		{ChatID: 300, AccountNumber: "001", CounterID: 11, Slot: 2, Value: 30, ReadAt: readAt},
	}

	entries := report.Group(rows)

	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].ChatID != 300 {
		t.Errorf("Expected the first-seen user first, got chat %d", entries[0].ChatID)
	}
	if len(entries[0].Counters) != 2 || entries[0].Counters[1].CounterID != 11 {
		t.Error("Expected interleaved rows of one user to fold into one entry in order")
	}
}

func TestGroup_Empty(t *testing.T) {
	entries := report.Group(nil)

	if len(entries) != 0 {
		t.Errorf("Expected no entries for no rows, got %d", len(entries))
	}
}
