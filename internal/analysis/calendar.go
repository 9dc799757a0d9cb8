package analysis

import (
	"strings"
	"time"
)

// DateLayout is the calendar-date format used by the stored rows
const DateLayout = "2006-01-02"

// WeekStartOf returns midnight of the Monday on or before t, in t's location
func WeekStartOf(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	// AddDate keeps month/year boundaries correct
	return day.AddDate(0, 0, 1-DayOfWeekIndex(day))
}

// DayOfWeekIndex returns Monday=1 .. Sunday=7.
// time.Weekday counts Sunday as 0, so Sunday is moved to the end.
func DayOfWeekIndex(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// ParseDate parses a YYYY-MM-DD date, or the date part of an RFC 3339 timestamp, as UTC midnight
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if d, err := time.Parse(DateLayout, s); err == nil {
		return d, nil
	}
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, invalid("date", "must be YYYY-MM-DD, got "+quote(s))
}

// FormatDate formats t as YYYY-MM-DD
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
