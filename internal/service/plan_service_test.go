package service

import (
	"context"
	"testing"
	"time"

	"ai-nutricoach-be/internal/catalog"
	"ai-nutricoach-be/internal/entity"
	"ai-nutricoach-be/internal/repository/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAllPlans(t *testing.T) {
	svc := NewPlanService(memory.NewRepositoryFactory(memory.NewStore()))

	plans := svc.GetAllPlans(context.Background())
	require.Len(t, plans, 3)

	assert.Equal(t, "basic", plans[0].Key)
	assert.Equal(t, "pro", plans[1].Key)
	assert.Equal(t, "premium", plans[2].Key)
	assert.True(t, plans[1].IsMostPopular)

	// Every plan lists the full feature set, blocked ones included
	for _, plan := range plans {
		assert.Len(t, plan.Features, len(catalog.AllFeatureKeys()), "plan %s", plan.Key)
	}
}

func TestGetUsageStatusDuringTrial(t *testing.T) {
	store := memory.NewStore()
	svc := NewPlanService(memory.NewRepositoryFactory(store)).(*planService)

	now := time.Date(2026, time.August, 26, 10, 0, 0, 0, time.Local)
	svc.now = func() time.Time { return now }

	trialEnd := now.AddDate(0, 0, 3)
	profile := &entity.UserProfile{
		Id:    uuid.New(),
		Email: "trial@example.com",
		Subscription: entity.SubscriptionState{
			IsSubscribed: false,
			TrialEndDate: trialEnd,
		},
	}
	require.NoError(t, store.Profiles.Create(context.Background(), profile))

	status, err := svc.GetUsageStatus(context.Background(), profile.Id)
	require.NoError(t, err)

	// Trial users are metered against pro
	assert.Equal(t, "pro", status.Plan.Key)
	assert.True(t, status.TrialActive)
	require.NotNil(t, status.TrialEndsAt)
	assert.True(t, status.TrialEndsAt.Equal(trialEnd))
	assert.True(t, status.UpgradeAvailable)
	assert.Len(t, status.Features, len(catalog.AllFeatureKeys()))
}

func TestGetUsageStatusAfterTrialExpiry(t *testing.T) {
	store := memory.NewStore()
	svc := NewPlanService(memory.NewRepositoryFactory(store)).(*planService)

	now := time.Date(2026, time.August, 26, 10, 0, 0, 0, time.Local)
	svc.now = func() time.Time { return now }

	profile := &entity.UserProfile{
		Id:    uuid.New(),
		Email: "expired@example.com",
		Subscription: entity.SubscriptionState{
			IsSubscribed: false,
			TrialEndDate: now.AddDate(0, 0, -1),
		},
	}
	require.NoError(t, store.Profiles.Create(context.Background(), profile))

	status, err := svc.GetUsageStatus(context.Background(), profile.Id)
	require.NoError(t, err)

	assert.Equal(t, "basic", status.Plan.Key)
	assert.False(t, status.TrialActive)
	assert.Nil(t, status.TrialEndsAt)

	// imageGen shows as unavailable on basic
	for _, feat := range status.Features {
		if feat.FeatureKey == catalog.FeatureImageGen {
			assert.False(t, feat.Available)
		}
	}
}

func TestGetUsageStatusPremiumHasNoUpgrade(t *testing.T) {
	store := memory.NewStore()
	svc := NewPlanService(memory.NewRepositoryFactory(store)).(*planService)

	plan := entity.TierPremium
	profile := &entity.UserProfile{
		Id:    uuid.New(),
		Email: "premium@example.com",
		Subscription: entity.SubscriptionState{
			IsSubscribed: true,
			CurrentPlan:  &plan,
		},
	}
	require.NoError(t, store.Profiles.Create(context.Background(), profile))

	status, err := svc.GetUsageStatus(context.Background(), profile.Id)
	require.NoError(t, err)
	assert.Equal(t, "premium", status.Plan.Key)
	assert.False(t, status.UpgradeAvailable)
}
