package timeutil

import (
	"fmt"
	"time"
)

// DateLayout is the calendar date format accepted by report endpoints.
const DateLayout = "2006-01-02"

// StartOfDay returns midnight of t's calendar day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// EndOfDay returns the last nanosecond of t's calendar day in loc.
func EndOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), loc)
}

// DayWindow parses a YYYY-MM-DD date in loc and returns its inclusive bounds.
// An empty date means today.
func DayWindow(date string, now time.Time, loc *time.Location) (time.Time, time.Time, error) {
	day := now.In(loc)
	if date != "" {
		parsed, err := time.ParseInLocation(DateLayout, date, loc)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
		}
		day = parsed
	}
	return StartOfDay(day, loc), EndOfDay(day, loc), nil
}

// SameDay reports whether a and b fall on the same calendar day in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	return StartOfDay(a, loc).Equal(StartOfDay(b, loc))
}
