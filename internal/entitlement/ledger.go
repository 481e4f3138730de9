// FILE: internal/entitlement/ledger.go
// Usage ledger operations: rollover-aware reads and increments against a
// profile's daily/weekly records. Pure in-memory mutations; persistence is
// the caller's job (QuotaService wraps these in a store transaction).
package entitlement

import (
	"time"

	"ai-nutricoach-be/internal/entity"
)

// Rollover resets the record for the given period if its stored key no
// longer matches the current one. The reset is lossy: stale counts are
// discarded, not rolled into any accumulator. Returns true when a reset
// happened so callers know the profile is dirty.
func Rollover(p *entity.UserProfile, period entity.Period, now time.Time) bool {
	key := PeriodKey(now, period)
	if period == entity.PeriodWeek {
		if p.Weekly.WeekStart == key {
			return false
		}
		p.Weekly = entity.WeeklyUsage{WeekStart: key, Counts: make(map[string]int)}
		return true
	}
	if p.Daily.Date == key {
		return false
	}
	p.Daily = entity.DailyUsage{Date: key, Counts: make(map[string]int)}
	return true
}

// CurrentCount returns the consumption of a feature in the current period,
// applying rollover first. Absent keys read as zero.
func CurrentCount(p *entity.UserProfile, featureKey string, period entity.Period, now time.Time) int {
	Rollover(p, period, now)
	if period == entity.PeriodWeek {
		return p.Weekly.Counts[featureKey]
	}
	return p.Daily.Counts[featureKey]
}

// PeekCount is the non-mutating read used by remaining-uses displays: a
// stale record reads as zero without being replaced.
func PeekCount(p *entity.UserProfile, featureKey string, period entity.Period, now time.Time) int {
	key := PeriodKey(now, period)
	if period == entity.PeriodWeek {
		if p.Weekly.WeekStart != key {
			return 0
		}
		return p.Weekly.Counts[featureKey]
	}
	if p.Daily.Date != key {
		return 0
	}
	return p.Daily.Counts[featureKey]
}

// Increment adds amount to the feature's count for the current period,
// applying rollover first.
func Increment(p *entity.UserProfile, featureKey string, amount int, period entity.Period, now time.Time) {
	Rollover(p, period, now)
	if period == entity.PeriodWeek {
		if p.Weekly.Counts == nil {
			p.Weekly.Counts = make(map[string]int)
		}
		p.Weekly.Counts[featureKey] += amount
		return
	}
	if p.Daily.Counts == nil {
		p.Daily.Counts = make(map[string]int)
	}
	p.Daily.Counts[featureKey] += amount
}
