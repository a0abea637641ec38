package db

import (
	"time"
)

// User represents a registered resident profile
type User struct {
	ChatID        int64
	FullName      string
	Phone         string
	Address       string
	AccountNumber string
	MetersCount   int
	CreatedAt     time.Time
}

// Counter represents a named water meter belonging to one user.
// LastReading and PreviousReading mirror the two most recent rows of
// the readings log for this counter; nil means no such reading exists.
type Counter struct {
	ID              int64
	ChatID          int64
	Alias           string
	LastReading     *int64
	PreviousReading *int64
}

// Reading is one immutable row of the append-only readings log
type Reading struct {
	ID        int64
	CounterID int64
	Value     int64
	CreatedAt time.Time
}

// AuditEntry is one row of the administrative audit log
type AuditEntry struct {
	ID        int64
	ChatID    int64
	Action    string
	CreatedAt time.Time
}

// DialogState is the persisted conversation position of one chat
type DialogState struct {
	ChatID    int64
	State     string
	Payload   []byte
	UpdatedAt time.Time
}

// ReportRow is one flat row of the windowed readings report query:
// the most recent in-range reading of one counter together with the
// chronologically preceding reading, joined with the owner's profile.
// Slot is the counter's 1-based position within the owner's full
// counter list, unaffected by which counters have in-range readings.
type ReportRow struct {
	ChatID        int64
	AccountNumber string
	FullName      string
	Phone         string
	Address       string
	MetersCount   int
	CounterID     int64
	Alias         string
	Slot          int
	Value         int64
	ReadAt        time.Time
	PrevValue     *int64
	PrevReadAt    *time.Time
}
