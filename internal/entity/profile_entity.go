// FILE: internal/entity/profile_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

// SubscriptionState is the mutable subscription part of a profile.
// Invariant: IsSubscribed == true implies CurrentPlan != nil.
type SubscriptionState struct {
	IsSubscribed bool
	CurrentPlan  *TierKey
	BillingCycle *BillingCycle
	TrialEndDate time.Time // While now < TrialEndDate and not subscribed, the user gets Pro-equivalent limits
}

// DailyUsage holds per-day consumption counts for daily-period features.
// Date must equal today whenever the record is consulted; stale records are
// reset lossily before use.
type DailyUsage struct {
	Date   string // YYYY-MM-DD, local calendar day
	Counts map[string]int
}

// WeeklyUsage is the weekly analogue, keyed by the Monday of the ISO week.
type WeeklyUsage struct {
	WeekStart string // YYYY-MM-DD of the Monday on/before the current day
	Counts    map[string]int
}

// UserProfile is the persisted profile this core operates on. Unrelated
// profile fields (measurements, preferences, chat history) live elsewhere.
type UserProfile struct {
	Id           uuid.UUID
	Email        string
	FullName     string
	Subscription SubscriptionState
	Daily        DailyUsage
	Weekly       WeeklyUsage
	// PurchasedCredits maps feature key -> extra uses bought beyond the plan
	// limit. Never expires and is never decremented; consumption is computed
	// as excess over the plan limit on every check.
	PurchasedCredits map[string]int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// CreditCount returns the purchased credit balance for a feature (0 if none).
func (p *UserProfile) CreditCount(featureKey string) int {
	if p.PurchasedCredits == nil {
		return 0
	}
	return p.PurchasedCredits[featureKey]
}

// AddCredits adds a pack of purchased credits for a feature.
func (p *UserProfile) AddCredits(featureKey string, packSize int) {
	if p.PurchasedCredits == nil {
		p.PurchasedCredits = make(map[string]int)
	}
	p.PurchasedCredits[featureKey] += packSize
}
