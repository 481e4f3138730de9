package entitlement

import (
	"testing"
	"time"

	"ai-nutricoach-be/internal/catalog"
	"ai-nutricoach-be/internal/entity"
)

func TestRolloverDaily(t *testing.T) {
	p := &entity.UserProfile{
		Daily: entity.DailyUsage{
			Date:   "2026-08-28",
			Counts: map[string]int{catalog.FeatureChatInteractions: 5},
		},
	}
	now := date(2026, time.August, 29, 9)

	if !Rollover(p, entity.PeriodDay, now) {
		t.Fatal("expected rollover of stale daily record")
	}
	if p.Daily.Date != "2026-08-29" {
		t.Errorf("Date = %q, want %q", p.Daily.Date, "2026-08-29")
	}
	if len(p.Daily.Counts) != 0 {
		t.Errorf("stale counts survived rollover: %v", p.Daily.Counts)
	}

	// Same day again is a no-op
	if Rollover(p, entity.PeriodDay, now.Add(2*time.Hour)) {
		t.Error("unexpected rollover within the same day")
	}
}

func TestRolloverWeeklySundayStaysInWeek(t *testing.T) {
	p := &entity.UserProfile{
		Weekly: entity.WeeklyUsage{
			WeekStart: "2026-08-24",
			Counts:    map[string]int{catalog.FeatureWeeklyPlanGenerations: 1},
		},
	}

	// Sunday 2026-08-30 still belongs to the week of Monday the 24th
	if Rollover(p, entity.PeriodWeek, date(2026, time.August, 30, 23)) {
		t.Error("sunday must not start a new week")
	}
	if got := p.Weekly.Counts[catalog.FeatureWeeklyPlanGenerations]; got != 1 {
		t.Errorf("count = %d, want 1", got)
	}

	// Monday the 31st does
	if !Rollover(p, entity.PeriodWeek, date(2026, time.August, 31, 0)) {
		t.Error("expected rollover on the next monday")
	}
	if p.Weekly.WeekStart != "2026-08-31" {
		t.Errorf("WeekStart = %q, want %q", p.Weekly.WeekStart, "2026-08-31")
	}
}

func TestCurrentCountAppliesRollover(t *testing.T) {
	p := &entity.UserProfile{
		Daily: entity.DailyUsage{
			Date:   "2026-08-28",
			Counts: map[string]int{catalog.FeatureRecipeSearches: 3},
		},
	}
	now := date(2026, time.August, 29, 9)

	if got := CurrentCount(p, catalog.FeatureRecipeSearches, entity.PeriodDay, now); got != 0 {
		t.Errorf("CurrentCount after rollover = %d, want 0", got)
	}
	if p.Daily.Date != "2026-08-29" {
		t.Error("CurrentCount should have rolled the record over")
	}
}

func TestPeekCountDoesNotMutate(t *testing.T) {
	p := &entity.UserProfile{
		Daily: entity.DailyUsage{
			Date:   "2026-08-28",
			Counts: map[string]int{catalog.FeatureRecipeSearches: 3},
		},
	}
	now := date(2026, time.August, 29, 9)

	if got := PeekCount(p, catalog.FeatureRecipeSearches, entity.PeriodDay, now); got != 0 {
		t.Errorf("PeekCount on stale record = %d, want 0", got)
	}
	if p.Daily.Date != "2026-08-28" {
		t.Error("PeekCount must not mutate the record")
	}
	if p.Daily.Counts[catalog.FeatureRecipeSearches] != 3 {
		t.Error("PeekCount must not clear stale counts")
	}
}

func TestIncrementOnEmptyProfile(t *testing.T) {
	p := &entity.UserProfile{}
	now := date(2026, time.August, 29, 9)

	Increment(p, catalog.FeatureChatInteractions, 1, entity.PeriodDay, now)
	Increment(p, catalog.FeatureChatInteractions, 2, entity.PeriodDay, now)

	if got := CurrentCount(p, catalog.FeatureChatInteractions, entity.PeriodDay, now); got != 3 {
		t.Errorf("count = %d, want 3", got)
	}

	Increment(p, catalog.FeatureWeeklyPlanGenerations, 1, entity.PeriodWeek, now)
	if got := CurrentCount(p, catalog.FeatureWeeklyPlanGenerations, entity.PeriodWeek, now); got != 1 {
		t.Errorf("weekly count = %d, want 1", got)
	}
	if p.Weekly.WeekStart != "2026-08-24" {
		t.Errorf("WeekStart = %q, want %q", p.Weekly.WeekStart, "2026-08-24")
	}
}
