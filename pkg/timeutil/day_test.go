package timeutil

import (
	"testing"
	"time"
)

func TestDayWindow(t *testing.T) {
	loc := time.FixedZone("EST", -5*3600)
	now := time.Date(2024, 3, 10, 3, 0, 0, 0, time.UTC) // still March 9 in EST

	start, end, err := DayWindow("", now, loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start.Day() != 9 || start.Hour() != 0 {
		t.Fatalf("start = %v", start)
	}
	if end.Sub(start) != 24*time.Hour-time.Nanosecond {
		t.Fatalf("window length = %v", end.Sub(start))
	}

	start, _, err = DayWindow("2024-01-15", now, loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start.Year() != 2024 || start.Month() != time.January || start.Day() != 15 {
		t.Fatalf("start = %v", start)
	}

	if _, _, err := DayWindow("15/01/2024", now, loc); err == nil {
		t.Fatalf("expected error for bad format")
	}
}

func TestSameDay(t *testing.T) {
	loc := time.UTC
	a := time.Date(2024, 5, 1, 0, 0, 0, 0, loc)
	b := time.Date(2024, 5, 1, 23, 59, 0, 0, loc)
	c := time.Date(2024, 5, 2, 0, 0, 0, 0, loc)
	if !SameDay(a, b, loc) || SameDay(b, c, loc) {
		t.Fatalf("SameDay mismatch")
	}
}
