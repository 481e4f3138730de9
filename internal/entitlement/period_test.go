package entitlement

import (
	"testing"
	"time"

	"ai-nutricoach-be/internal/entity"
)

func date(y int, m time.Month, d, hour int) time.Time {
	return time.Date(y, m, d, hour, 0, 0, 0, time.Local)
}

func TestDayKey(t *testing.T) {
	if got := DayKey(date(2026, time.August, 29, 13)); got != "2026-08-29" {
		t.Errorf("DayKey = %q, want %q", got, "2026-08-29")
	}
	// Time of day is irrelevant
	if got := DayKey(date(2026, time.August, 29, 0)); got != "2026-08-29" {
		t.Errorf("DayKey at midnight = %q, want %q", got, "2026-08-29")
	}
}

func TestWeekStartKey(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want string
	}{
		// 2026-08-24 is a Monday
		{"monday maps to itself", date(2026, time.August, 24, 10), "2026-08-24"},
		{"wednesday maps back to monday", date(2026, time.August, 26, 10), "2026-08-24"},
		{"saturday maps back to monday", date(2026, time.August, 29, 10), "2026-08-24"},
		{"sunday maps to previous monday", date(2026, time.August, 30, 10), "2026-08-24"},
		{"next monday starts a new week", date(2026, time.August, 31, 0), "2026-08-31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WeekStartKey(tt.now); got != tt.want {
				t.Errorf("WeekStartKey(%s) = %q, want %q", tt.now.Format("2006-01-02 Mon"), got, tt.want)
			}
		})
	}
}

func TestPeriodKey(t *testing.T) {
	sunday := date(2026, time.August, 30, 18)
	if got := PeriodKey(sunday, entity.PeriodDay); got != "2026-08-30" {
		t.Errorf("PeriodKey(DAY) = %q, want %q", got, "2026-08-30")
	}
	if got := PeriodKey(sunday, entity.PeriodWeek); got != "2026-08-24" {
		t.Errorf("PeriodKey(WEEK) = %q, want %q", got, "2026-08-24")
	}
}

func TestNextReset(t *testing.T) {
	now := date(2026, time.August, 29, 15) // Saturday

	daily := NextReset(now, entity.PeriodDay)
	if want := date(2026, time.August, 30, 0); !daily.Equal(want) {
		t.Errorf("NextReset(DAY) = %s, want %s", daily, want)
	}

	weekly := NextReset(now, entity.PeriodWeek)
	if want := date(2026, time.August, 31, 0); !weekly.Equal(want) {
		t.Errorf("NextReset(WEEK) = %s, want %s", weekly, want)
	}
}
