// FILE: internal/service/quota_service.go
// Quota enforcer: the single chokepoint every AI-backed action must pass
// through before reaching the AI backend.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"ai-nutricoach-be/internal/dto"
	"ai-nutricoach-be/internal/entitlement"
	"ai-nutricoach-be/internal/entity"
	"ai-nutricoach-be/internal/pkg/logger"
	"ai-nutricoach-be/internal/repository/specification"
	"ai-nutricoach-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type QuotaService interface {
	// Check decides whether the profile may perform the feature now and, on
	// allow, records the consumption before returning. Consumption is charged
	// on attempt: a later AI failure does not refund the slot.
	Check(ctx context.Context, profileId uuid.UUID, featureKey string, amount int) (*dto.CheckResult, error)

	// PurchaseCredits unconditionally adds a pack to the profile's balance.
	// Payment validation happens upstream (webhook or simulated checkout).
	PurchaseCredits(ctx context.Context, profileId uuid.UUID, featureKey string, packSize int) error

	// GetRemainingUses is the read-only, rollover-aware view for quota badges.
	GetRemainingUses(ctx context.Context, profileId uuid.UUID, featureKey string) (*dto.RemainingUses, error)
}

type quotaService struct {
	uowFactory unitofwork.RepositoryFactory
	publisher  IPublisherService
	logger     logger.ILogger
	now        func() time.Time

	// Per-profile locks serialize the read-modify-write in Check so two
	// actions fired in quick succession cannot both take the last slot.
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func NewQuotaService(
	uowFactory unitofwork.RepositoryFactory,
	publisher IPublisherService,
	sysLogger logger.ILogger,
) QuotaService {
	return &quotaService{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     sysLogger,
		now:        time.Now,
		locks:      make(map[uuid.UUID]*sync.Mutex),
	}
}

func (s *quotaService) profileLock(profileId uuid.UUID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[profileId]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[profileId] = lock
	}
	return lock
}

func (s *quotaService) loadProfile(ctx context.Context, uow unitofwork.UnitOfWork, profileId uuid.UUID) (*entity.UserProfile, error) {
	profile, err := uow.ProfileRepository().FindOne(ctx, specification.ByID{ID: profileId})
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, fmt.Errorf("profile %s not found", profileId)
	}
	return profile, nil
}

func (s *quotaService) Check(ctx context.Context, profileId uuid.UUID, featureKey string, amount int) (*dto.CheckResult, error) {
	if amount <= 0 {
		amount = 1
	}

	lock := s.profileLock(profileId)
	lock.Lock()
	defer lock.Unlock()

	now := s.now()
	uow := s.uowFactory.NewUnitOfWork(ctx)

	profile, err := s.loadProfile(ctx, uow, profileId)
	if err != nil {
		return nil, err
	}

	// Entitlement is resolved fresh on every call: trial expiry and plan
	// changes can happen between checks.
	res := entitlement.ResolveFeature(profile.Subscription, featureKey, now)

	if res.Blocked {
		return &dto.CheckResult{
			Allowed:            false,
			Reason:             dto.DenyReasonNotAvailable,
			FeatureDisplayText: res.DisplayText,
		}, nil
	}

	if res.Unlimited {
		// Unlimited features bypass the ledger entirely.
		return &dto.CheckResult{Allowed: true}, nil
	}

	current := entitlement.CurrentCount(profile, featureKey, res.Period, now)
	purchased := profile.CreditCount(featureKey)

	if current+amount > res.Limit+purchased {
		s.logger.Info("quota", "Check denied", map[string]interface{}{
			"profile_id": profileId.String(),
			"feature":    featureKey,
			"used":       current,
			"limit":      res.Limit,
			"purchased":  purchased,
		})
		return &dto.CheckResult{
			Allowed:            false,
			Reason:             dto.DenyReasonLimitExceeded,
			FeatureDisplayText: res.DisplayText,
		}, nil
	}

	// Increment and persist before the caller proceeds to the AI backend.
	entitlement.Increment(profile, featureKey, amount, res.Period, now)

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.ProfileRepository().Update(ctx, profile); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, &dto.QuotaEventMessage{
		Type:       "QUOTA_CONSUMED",
		ProfileId:  profileId,
		FeatureKey: featureKey,
		Amount:     amount,
		Tier:       string(res.Tier),
		OccurredAt: now,
	})

	return &dto.CheckResult{Allowed: true}, nil
}

func (s *quotaService) PurchaseCredits(ctx context.Context, profileId uuid.UUID, featureKey string, packSize int) error {
	if packSize <= 0 {
		return fmt.Errorf("pack size must be positive, got %d", packSize)
	}

	lock := s.profileLock(profileId)
	lock.Lock()
	defer lock.Unlock()

	uow := s.uowFactory.NewUnitOfWork(ctx)

	profile, err := s.loadProfile(ctx, uow, profileId)
	if err != nil {
		return err
	}

	profile.AddCredits(featureKey, packSize)

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ProfileRepository().Update(ctx, profile); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	s.publishEvent(ctx, &dto.QuotaEventMessage{
		Type:       "CREDITS_PURCHASED",
		ProfileId:  profileId,
		FeatureKey: featureKey,
		Amount:     packSize,
		OccurredAt: s.now(),
	})

	return nil
}

func (s *quotaService) GetRemainingUses(ctx context.Context, profileId uuid.UUID, featureKey string) (*dto.RemainingUses, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	profile, err := s.loadProfile(ctx, uow, profileId)
	if err != nil {
		return nil, err
	}

	return remainingUses(profile, featureKey, s.now()), nil
}

func (s *quotaService) publishEvent(ctx context.Context, msg *dto.QuotaEventMessage) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishQuotaEvent(ctx, msg); err != nil {
		s.logger.Warn("quota", "Failed to publish quota event", map[string]interface{}{
			"type":  msg.Type,
			"error": err.Error(),
		})
	}
}

// remainingUses assembles the quota badge for one feature without mutating
// the profile: stale records read as zero instead of being reset.
func remainingUses(profile *entity.UserProfile, featureKey string, now time.Time) *dto.RemainingUses {
	res := entitlement.ResolveFeature(profile.Subscription, featureKey, now)

	if res.Blocked {
		return &dto.RemainingUses{
			FeatureKey:  featureKey,
			DisplayText: res.DisplayText,
			Available:   false,
		}
	}

	if res.Unlimited {
		return &dto.RemainingUses{
			FeatureKey:  featureKey,
			DisplayText: res.DisplayText,
			Available:   true,
			Unlimited:   true,
			Limit:       -1,
			Remaining:   -1,
			Period:      string(res.Period),
		}
	}

	used := entitlement.PeekCount(profile, featureKey, res.Period, now)
	purchased := profile.CreditCount(featureKey)
	remaining := res.Limit + purchased - used
	if remaining < 0 {
		remaining = 0
	}
	resetsAt := entitlement.NextReset(now, res.Period)

	return &dto.RemainingUses{
		FeatureKey:  featureKey,
		DisplayText: res.DisplayText,
		Available:   true,
		Used:        used,
		Limit:       res.Limit,
		Purchased:   purchased,
		Remaining:   remaining,
		Period:      string(res.Period),
		ResetsAt:    &resetsAt,
	}
}
