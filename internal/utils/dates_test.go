package utils

import (
	"testing"
	"time"
)

func TestClampDays(t *testing.T) {
	tests := []struct {
		name string
		days int
		want int
	}{
		{"zero", 0, 7},
		{"below min", 3, 7},
		{"negative", -10, 7},
		{"min", 7, 7},
		{"regular", 90, 90},
		{"max", 365, 365},
		{"above max", 1000, 365},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampDays(tt.days); got != tt.want {
				t.Errorf("ClampDays(%d) = %d, want %d", tt.days, got, tt.want)
			}
		})
	}
}

func TestDayBoundaries(t *testing.T) {
	loc := time.FixedZone("BRT", -3*3600)
	// 22:30 в UTC-3 - это уже следующий день в UTC
	ts := time.Date(2024, 3, 9, 22, 30, 0, 0, loc)

	if got := DayKey(ts); got != "2024-03-10" {
		t.Errorf("DayKey() = %s, want 2024-03-10", got)
	}

	start := StartOfDayUTC(ts)
	if !start.Equal(time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("StartOfDayUTC() = %v", start)
	}

	end := EndOfDayUTC(ts)
	want := time.Date(2024, 3, 10, 23, 59, 59, int(999*time.Millisecond), time.UTC)
	if !end.Equal(want) {
		t.Errorf("EndOfDayUTC() = %v, want %v", end, want)
	}
}

func TestWindowStart(t *testing.T) {
	now := time.Date(2024, 3, 30, 15, 0, 0, 0, time.UTC)

	got := WindowStart(now, 30)
	want := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("WindowStart() = %v, want %v", got, want)
	}

	if got := WindowStart(now, 1); !got.Equal(StartOfDayUTC(now)) {
		t.Errorf("WindowStart(1) = %v, want start of today", got)
	}
}
