// FILE: internal/entitlement/period.go
// Calendar period keys for quota rollover.
package entitlement

import (
	"time"

	"ai-nutricoach-be/internal/entity"
)

const keyLayout = "2006-01-02"

// DayKey returns the local calendar date of now, e.g. "2026-08-29".
func DayKey(now time.Time) string {
	return now.Format(keyLayout)
}

// WeekStartKey returns the date of the Monday on/before now. Weeks start on
// Monday, so a Sunday maps to the Monday six days prior.
func WeekStartKey(now time.Time) string {
	offset := int(now.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7 // Sunday
	}
	monday := now.AddDate(0, 0, -offset)
	return monday.Format(keyLayout)
}

// PeriodKey returns the rollover key for a feature's period.
func PeriodKey(now time.Time, period entity.Period) string {
	if period == entity.PeriodWeek {
		return WeekStartKey(now)
	}
	return DayKey(now)
}

// NextReset returns when the current period ends: next local midnight for
// daily features, next Monday midnight for weekly ones.
func NextReset(now time.Time, period entity.Period) time.Time {
	if period == entity.PeriodWeek {
		monday, _ := time.ParseInLocation(keyLayout, WeekStartKey(now), now.Location())
		return monday.AddDate(0, 0, 7)
	}
	return time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
}
