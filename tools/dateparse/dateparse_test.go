package dateparse_test

import (
	"testing"
	"time"

	"github.com/okarpenko/water-meter-bot/tools/dateparse"
)

func TestParseReportDate_CalendarFormat(t *testing.T) {
	parsed, err := dateparse.ParseReportDate("15.03.2026")
	if err != nil {
		t.Fatalf("Expected valid date, got error: %v", err)
	}

	expected := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	if !parsed.Equal(expected) {
		t.Errorf("Expected %v, got %v", expected, parsed)
	}
}

func TestParseReportDate_ISOFormat(t *testing.T) {
	parsed, err := dateparse.ParseReportDate("2026-03-15")
	if err != nil {
		t.Fatalf("Expected valid date, got error: %v", err)
	}

	expected := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	if !parsed.Equal(expected) {
		t.Errorf("Expected %v, got %v", expected, parsed)
	}
}

func TestParseReportDate_IgnoresTimePart(t *testing.T) {
	parsed, err := dateparse.ParseReportDate("15.03.2026 14:25:00")
	if err != nil {
		t.Fatalf("Expected valid date, got error: %v", err)
	}

	expected := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	if !parsed.Equal(expected) {
		t.Errorf("Expected %v, got %v", expected, parsed)
	}
}

func TestParseReportDate_Invalid(t *testing.T) {
	if _, err := dateparse.ParseReportDate("березень 2026"); err == nil {
		t.Error("Expected error for unparseable date")
	}
}

func TestEndOfDay(t *testing.T) {
	day := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	end := dateparse.EndOfDay(day)

	expected := time.Date(2026, 3, 15, 23, 59, 59, 0, time.UTC)
	if !end.Equal(expected) {
		t.Errorf("Expected %v, got %v", expected, end)
	}
}

func TestNormalizeRange_BothBounds(t *testing.T) {
	start, end, err := dateparse.NormalizeRange("01.03.2026", "15.03.2026")
	if err != nil {
		t.Fatalf("Expected valid range, got error: %v", err)
	}

	if !start.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Unexpected start: %v", start)
	}
	if !end.Equal(time.Date(2026, 3, 15, 23, 59, 59, 0, time.UTC)) {
		t.Errorf("Expected end extended to end of day, got %v", end)
	}
}

func TestNormalizeRange_SameDayCoversWholeDay(t *testing.T) {
	start, end, err := dateparse.NormalizeRange("15.03.2026", "15.03.2026")
	if err != nil {
		t.Fatalf("Expected valid range, got error: %v", err)
	}

	if !end.After(start) {
		t.Errorf("Expected a non-empty same-day range, got start=%v end=%v", start, end)
	}
}

func TestNormalizeRange_EmptyBoundsFallBackToDefaults(t *testing.T) {
	start, end, err := dateparse.NormalizeRange("", "")
	if err != nil {
		t.Fatalf("Expected defaults, got error: %v", err)
	}

	if !start.Equal(dateparse.RangeMin) {
		t.Errorf("Expected RangeMin start, got %v", start)
	}
	if !end.Equal(dateparse.RangeMax) {
		t.Errorf("Expected RangeMax end, got %v", end)
	}
}

func TestNormalizeRange_InvalidStart(t *testing.T) {
	if _, _, err := dateparse.NormalizeRange("not-a-date", "15.03.2026"); err == nil {
		t.Error("Expected error for invalid start date")
	}
}
