// FILE: internal/entitlement/resolver.go
// Single source of truth for mapping subscription state to effective limits.
package entitlement

import (
	"time"

	"ai-nutricoach-be/internal/catalog"
	"ai-nutricoach-be/internal/entity"
)

// TrialTier is the tier applied while a non-subscribed user's trial window
// is still open.
const TrialTier = entity.TierPro

// Resolution is the outcome of resolving one feature against the current
// subscription state. Exactly one of Blocked/Unlimited/metered applies.
type Resolution struct {
	Tier        entity.TierKey
	Blocked     bool // Feature not granted by the effective tier
	Unlimited   bool // No cap; the ledger is never touched
	Limit       int
	Period      entity.Period
	DisplayText string
}

// IsTrialActive reports whether the implicit trial window applies.
// A subscribed user is never on trial, whatever the trial date says.
func IsTrialActive(sub entity.SubscriptionState, now time.Time) bool {
	return !sub.IsSubscribed && now.Before(sub.TrialEndDate)
}

// EffectiveTier resolves the tier to meter against. Trial and plan changes
// can happen between calls, so this is recomputed on every check and must
// never be cached.
func EffectiveTier(sub entity.SubscriptionState, now time.Time) entity.TierKey {
	if IsTrialActive(sub, now) {
		return TrialTier
	}
	if sub.IsSubscribed && sub.CurrentPlan != nil {
		return *sub.CurrentPlan
	}
	return entity.TierBasic
}

// ResolveFeature maps (subscription state, feature key, now) to the limit to
// enforce. An unknown feature key resolves to Blocked rather than an error:
// it indicates a caller/catalog mismatch, not a user-facing condition.
func ResolveFeature(sub entity.SubscriptionState, featureKey string, now time.Time) Resolution {
	tier := EffectiveTier(sub, now)

	desc, ok := catalog.GetFeature(tier, featureKey)
	if !ok || !desc.Available {
		return Resolution{
			Tier:        tier,
			Blocked:     true,
			DisplayText: catalog.DisplayText(featureKey),
		}
	}

	if desc.Limit == entity.LimitUnlimited {
		return Resolution{
			Tier:        tier,
			Unlimited:   true,
			Limit:       entity.LimitUnlimited,
			Period:      desc.Period,
			DisplayText: desc.DisplayText,
		}
	}

	return Resolution{
		Tier:        tier,
		Limit:       desc.Limit,
		Period:      desc.Period,
		DisplayText: desc.DisplayText,
	}
}
