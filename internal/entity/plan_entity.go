// FILE: internal/entity/plan_entity.go
// Domain entities for subscription tiers and metered features
package entity

type TierKey string
type BillingCycle string
type Period string

const (
	TierBasic   TierKey = "basic"
	TierPro     TierKey = "pro"
	TierPremium TierKey = "premium"

	BillingCycleMonthly BillingCycle = "monthly"
	BillingCycleAnnual  BillingCycle = "annual"

	PeriodDay  Period = "day"
	PeriodWeek Period = "week"
)

// LimitUnlimited marks a feature with no cap. Unlimited features are never
// tracked in the usage ledger.
const LimitUnlimited = -1

// FeatureDescriptor describes one metered feature as granted by a tier.
type FeatureDescriptor struct {
	Key         string
	DisplayText string // User-facing label, used in upsell messaging
	Limit       int    // Uses per period, LimitUnlimited = no cap
	Period      Period
	Available   bool // False = tier does not grant the feature at all
}

// PlanTier is one subscription level of the paywall.
type PlanTier struct {
	Key          TierKey
	Name         string
	Tagline      string
	PriceMonthly float64
	PriceAnnual  float64
	Rank         int // basic < pro < premium, for upgrade comparisons
	Features     map[string]FeatureDescriptor
}
