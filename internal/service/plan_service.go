// FILE: internal/service/plan_service.go
// Service for the pricing catalog and the per-profile usage status view
package service

import (
	"context"
	"fmt"
	"time"

	"ai-nutricoach-be/internal/catalog"
	"ai-nutricoach-be/internal/dto"
	"ai-nutricoach-be/internal/entitlement"
	"ai-nutricoach-be/internal/entity"
	"ai-nutricoach-be/internal/repository/specification"
	"ai-nutricoach-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type PlanService interface {
	// Public
	GetAllPlans(ctx context.Context) []*dto.PlanResponse

	// User
	GetUsageStatus(ctx context.Context, profileId uuid.UUID) (*dto.UsageStatusResponse, error)
}

type planService struct {
	uowFactory unitofwork.RepositoryFactory
	now        func() time.Time
}

func NewPlanService(uowFactory unitofwork.RepositoryFactory) PlanService {
	return &planService{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// GetAllPlans returns the static catalog for the pricing modal.
func (s *planService) GetAllPlans(ctx context.Context) []*dto.PlanResponse {
	var result []*dto.PlanResponse
	for _, tier := range catalog.AllTiers() {
		features := make([]dto.PlanFeatureItem, 0, len(tier.Features))
		for _, key := range catalog.AllFeatureKeys() {
			desc, ok := tier.Features[key]
			if !ok {
				continue
			}
			item := dto.PlanFeatureItem{
				Key:         desc.Key,
				DisplayText: desc.DisplayText,
				Available:   desc.Available,
			}
			if desc.Available {
				item.Limit = desc.Limit
				item.Period = string(desc.Period)
			}
			features = append(features, item)
		}

		result = append(result, &dto.PlanResponse{
			Key:           string(tier.Key),
			Name:          tier.Name,
			Tagline:       tier.Tagline,
			PriceMonthly:  tier.PriceMonthly,
			PriceAnnual:   tier.PriceAnnual,
			IsMostPopular: tier.Key == entity.TierPro,
			Features:      features,
		})
	}
	return result
}

// GetUsageStatus returns remaining uses for every feature of the profile's
// effective tier. Read-only: stale ledgers read as zero without being reset.
func (s *planService) GetUsageStatus(ctx context.Context, profileId uuid.UUID) (*dto.UsageStatusResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	profile, err := uow.ProfileRepository().FindOne(ctx, specification.ByID{ID: profileId})
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, fmt.Errorf("profile %s not found", profileId)
	}

	now := s.now()
	tierKey := entitlement.EffectiveTier(profile.Subscription, now)
	tier, err := catalog.GetTier(tierKey)
	if err != nil {
		return nil, err
	}

	features := make([]dto.RemainingUses, 0, len(catalog.AllFeatureKeys()))
	for _, key := range catalog.AllFeatureKeys() {
		features = append(features, *remainingUses(profile, key, now))
	}

	response := &dto.UsageStatusResponse{
		Plan: dto.PlanInfo{
			Key:  string(tier.Key),
			Name: tier.Name,
		},
		TrialActive:      entitlement.IsTrialActive(profile.Subscription, now),
		Features:         features,
		UpgradeAvailable: tierKey != entity.TierPremium,
	}
	if response.TrialActive {
		t := profile.Subscription.TrialEndDate
		response.TrialEndsAt = &t
	}

	return response, nil
}
