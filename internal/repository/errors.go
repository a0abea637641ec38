package repository

import (
	"errors"
	"fmt"
)

var (
	// ErrUserNotFound is returned when no profile exists for a chat id
	ErrUserNotFound = errors.New("user not found")

	// ErrCounterNotFound is returned when a counter id references no row,
	// typically a stale keyboard selection after a counter was deleted
	ErrCounterNotFound = errors.New("counter not found")
)

// MonotonicityError rejects a reading that does not exceed the counter's
// current last reading. The write is rolled back; no state changes.
type MonotonicityError struct {
	LastReading int64
	Value       int64
}

func (e *MonotonicityError) Error() string {
	return fmt.Sprintf("reading %d must exceed last reading %d", e.Value, e.LastReading)
}
