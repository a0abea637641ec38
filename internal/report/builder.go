package report

import (
	"time"

	"github.com/okarpenko/water-meter-bot/internal/db"
)

// ReadingValue is one reading as it appears in a report
type ReadingValue struct {
	Value int64
	Date  time.Time
}

// CounterReport carries a counter's most recent in-range reading and
// its chronological predecessor. Previous is nil when the current
// reading was the counter's first ever. Slot is the counter's 1-based
// position among the owner's counters and decides which column group
// the exporter writes; a counter without in-range data leaves its slot
// blank instead of shifting later counters left.
type CounterReport struct {
	CounterID int64
	Alias     string
	Slot      int
	Current   ReadingValue
	Previous  *ReadingValue
}

// Entry aggregates one user's profile with their in-range counters.
// Counters without an in-range reading are absent; the exporter pads
// the missing slots.
type Entry struct {
	ChatID        int64
	AccountNumber string
	FullName      string
	Phone         string
	Address       string
	MetersCount   int
	Counters      []CounterReport
}

// Group folds flat report rows into per-user entries, preserving the
// query's ordering of users and counters
func Group(rows []db.ReportRow) []Entry {
	var entries []Entry
	byChat := make(map[int64]int)

	for _, row := range rows {
		idx, ok := byChat[row.ChatID]
		if !ok {
			entries = append(entries, Entry{
				ChatID:        row.ChatID,
				AccountNumber: row.AccountNumber,
				FullName:      row.FullName,
				Phone:         row.Phone,
				Address:       row.Address,
				MetersCount:   row.MetersCount,
			})
			idx = len(entries) - 1
			byChat[row.ChatID] = idx
		}

		counter := CounterReport{
			CounterID: row.CounterID,
			Alias:     row.Alias,
			Slot:      row.Slot,
			Current:   ReadingValue{Value: row.Value, Date: row.ReadAt},
		}
		if row.PrevValue != nil && row.PrevReadAt != nil {
			counter.Previous = &ReadingValue{Value: *row.PrevValue, Date: *row.PrevReadAt}
		}

		entries[idx].Counters = append(entries[idx].Counters, counter)
	}

	return entries
}
