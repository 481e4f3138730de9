// FILE: internal/mapper/profile_mapper.go
// Mapper for UserProfile entity <-> model conversion
package mapper

import (
	"ai-nutricoach-be/internal/entity"
	"ai-nutricoach-be/internal/model"

	"gorm.io/datatypes"
)

type ProfileMapper struct{}

func NewProfileMapper() *ProfileMapper {
	return &ProfileMapper{}
}

// countsToEntity converts a JSONB map to int counts. JSON numbers come back
// as float64 from the driver.
func countsToEntity(m datatypes.JSONMap) map[string]int {
	counts := make(map[string]int, len(m))
	for k, v := range m {
		switch n := v.(type) {
		case float64:
			counts[k] = int(n)
		case int:
			counts[k] = n
		}
	}
	return counts
}

func countsToModel(counts map[string]int) datatypes.JSONMap {
	m := make(datatypes.JSONMap, len(counts))
	for k, v := range counts {
		m[k] = v
	}
	return m
}

func (m *ProfileMapper) ToEntity(mdl *model.UserProfile) *entity.UserProfile {
	if mdl == nil {
		return nil
	}

	var plan *entity.TierKey
	if mdl.CurrentPlan != nil {
		p := entity.TierKey(*mdl.CurrentPlan)
		plan = &p
	}
	var cycle *entity.BillingCycle
	if mdl.BillingCycle != nil {
		c := entity.BillingCycle(*mdl.BillingCycle)
		cycle = &c
	}

	return &entity.UserProfile{
		Id:       mdl.Id,
		Email:    mdl.Email,
		FullName: mdl.FullName,
		Subscription: entity.SubscriptionState{
			IsSubscribed: mdl.IsSubscribed,
			CurrentPlan:  plan,
			BillingCycle: cycle,
			TrialEndDate: mdl.TrialEndDate,
		},
		Daily: entity.DailyUsage{
			Date:   mdl.DailyUsageDate,
			Counts: countsToEntity(mdl.DailyUsageCounts),
		},
		Weekly: entity.WeeklyUsage{
			WeekStart: mdl.WeeklyUsageWeekStart,
			Counts:    countsToEntity(mdl.WeeklyUsageCounts),
		},
		PurchasedCredits: countsToEntity(mdl.PurchasedCredits),
		CreatedAt:        mdl.CreatedAt,
		UpdatedAt:        mdl.UpdatedAt,
	}
}

func (m *ProfileMapper) ToModel(e *entity.UserProfile) *model.UserProfile {
	if e == nil {
		return nil
	}

	var plan *string
	if e.Subscription.CurrentPlan != nil {
		p := string(*e.Subscription.CurrentPlan)
		plan = &p
	}
	var cycle *string
	if e.Subscription.BillingCycle != nil {
		c := string(*e.Subscription.BillingCycle)
		cycle = &c
	}

	return &model.UserProfile{
		Id:                   e.Id,
		Email:                e.Email,
		FullName:             e.FullName,
		IsSubscribed:         e.Subscription.IsSubscribed,
		CurrentPlan:          plan,
		BillingCycle:         cycle,
		TrialEndDate:         e.Subscription.TrialEndDate,
		DailyUsageDate:       e.Daily.Date,
		DailyUsageCounts:     countsToModel(e.Daily.Counts),
		WeeklyUsageWeekStart: e.Weekly.WeekStart,
		WeeklyUsageCounts:    countsToModel(e.Weekly.Counts),
		PurchasedCredits:     countsToModel(e.PurchasedCredits),
		CreatedAt:            e.CreatedAt,
		UpdatedAt:            e.UpdatedAt,
	}
}

func (m *ProfileMapper) ToEntities(models []*model.UserProfile) []*entity.UserProfile {
	entities := make([]*entity.UserProfile, 0, len(models))
	for _, mdl := range models {
		entities = append(entities, m.ToEntity(mdl))
	}
	return entities
}
