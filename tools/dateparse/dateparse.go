package dateparse

import (
	"fmt"
	"strings"
	"time"
)

// Report date inputs arrive either from the calendar keyboard
// (DD.MM.YYYY) or typed in ISO form.
var formats = []string{
	"02.01.2006", // DD.MM.YYYY
	"2006-01-02", // ISO
}

// Unbounded range defaults: epoch start and a far-future end.
var (
	RangeMin = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	RangeMax = time.Date(2100, 12, 31, 23, 59, 59, 0, time.UTC)
)

// ParseReportDate parses a report boundary date, ignoring any time part
func ParseReportDate(dateStr string) (time.Time, error) {
	dateOnly, _, _ := strings.Cut(strings.TrimSpace(dateStr), " ")

	var lastErr error
	for _, format := range formats {
		t, err := time.Parse(format, dateOnly)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}

	return time.Time{}, fmt.Errorf("failed to parse date '%s': %w", dateStr, lastErr)
}

// EndOfDay extends a date to 23:59:59 so a same-day range still covers
// the whole day
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}

// NormalizeRange converts textual start/end dates into an inclusive
// timestamp range. Empty boundaries fall back to the unbounded defaults.
func NormalizeRange(startStr, endStr string) (time.Time, time.Time, error) {
	start := RangeMin
	end := RangeMax

	if startStr != "" {
		t, err := ParseReportDate(startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		start = t
	}

	if endStr != "" {
		t, err := ParseReportDate(endStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		end = EndOfDay(t)
	}

	return start, end, nil
}
