package analysis

import (
	"errors"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeekStartOf(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Time
		expected time.Time
	}{
		{"wednesday", date(2024, 1, 3), date(2024, 1, 1)},
		{"monday is its own week start", date(2024, 1, 8), date(2024, 1, 8)},
		{"sunday belongs to the previous monday", date(2024, 1, 7), date(2024, 1, 1)},
		{"crosses year boundary", date(2024, 1, 2), date(2024, 1, 1)},
		{"crosses into previous year", date(2023, 1, 1), date(2022, 12, 26)},
		{"crosses month boundary", date(2024, 3, 2), date(2024, 2, 26)},
		{"leap day", date(2024, 2, 29), date(2024, 2, 26)},
		{"time of day is dropped", time.Date(2024, 1, 5, 23, 59, 59, 0, time.UTC), date(2024, 1, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WeekStartOf(tt.input)
			if !got.Equal(tt.expected) {
				t.Errorf("WeekStartOf(%v) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestWeekStartOf_Properties(t *testing.T) {
	start := date(2023, 12, 1)
	for i := 0; i < 400; i++ {
		d := start.AddDate(0, 0, i).Add(time.Duration(i%24) * time.Hour)
		ws := WeekStartOf(d)

		if ws.After(d) {
			t.Fatalf("WeekStartOf(%v) = %v is after the date", d, ws)
		}
		if d.Sub(ws) >= 7*24*time.Hour {
			t.Fatalf("WeekStartOf(%v) = %v is a week or more before", d, ws)
		}
		if DayOfWeekIndex(ws) != 1 {
			t.Fatalf("WeekStartOf(%v) = %v is not a Monday", d, ws)
		}
		if again := WeekStartOf(ws); !again.Equal(ws) {
			t.Fatalf("WeekStartOf not idempotent: %v -> %v", ws, again)
		}
	}
}

func TestWeekStartOf_KeepsLocation(t *testing.T) {
	loc := time.FixedZone("ICT", 7*60*60)
	d := time.Date(2024, 1, 7, 1, 30, 0, 0, loc) // Sunday morning local, Saturday in UTC

	got := WeekStartOf(d)
	want := time.Date(2024, 1, 1, 0, 0, 0, 0, loc)
	if !got.Equal(want) || got.Location() != loc {
		t.Errorf("WeekStartOf() = %v, want %v", got, want)
	}
}

func TestDayOfWeekIndex(t *testing.T) {
	// 2024-01-01 was a Monday
	for i := 0; i < 7; i++ {
		d := date(2024, 1, 1+i)
		if got := DayOfWeekIndex(d); got != i+1 {
			t.Errorf("DayOfWeekIndex(%s) = %d, want %d", d.Weekday(), got, i+1)
		}
	}

	for i := 0; i < 60; i++ {
		got := DayOfWeekIndex(date(2024, 2, 1).AddDate(0, 0, i))
		if got < 1 || got > 7 {
			t.Fatalf("DayOfWeekIndex out of range: %d", got)
		}
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Time
		wantErr bool
	}{
		{"2024-01-03", date(2024, 1, 3), false},
		{" 2024-01-03 ", date(2024, 1, 3), false},
		{"2024-01-03T18:45:00+07:00", date(2024, 1, 3), false},
		{"03/01/2024", time.Time{}, true},
		{"2024-13-01", time.Time{}, true},
		{"", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidInput) {
					t.Errorf("ParseDate(%q) error = %v, want ErrInvalidInput", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q) error = %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
