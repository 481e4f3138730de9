// FILE: internal/dto/quota_dto.go
// DTOs and typed errors for quota checks and remaining-uses display
package dto

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type DenyReason string

const (
	DenyReasonNotAvailable  DenyReason = "NOT_AVAILABLE"
	DenyReasonLimitExceeded DenyReason = "LIMIT_EXCEEDED"
)

// CheckResult is returned by QuotaService.Check. Denials are results, not
// errors: the UI decides how to react (upsell modal, disabled button).
type CheckResult struct {
	Allowed            bool       `json:"allowed"`
	Reason             DenyReason `json:"reason,omitempty"`
	FeatureDisplayText string     `json:"feature_display_text,omitempty"`
}

// RemainingUses is the quota badge payload for one feature.
type RemainingUses struct {
	FeatureKey  string     `json:"feature_key"`
	DisplayText string     `json:"display_text"`
	Available   bool       `json:"available"`
	Unlimited   bool       `json:"unlimited"`
	Used        int        `json:"used"`
	Limit       int        `json:"limit"` // -1 = unlimited
	Purchased   int        `json:"purchased"`
	Remaining   int        `json:"remaining"`
	Period      string     `json:"period"` // "day" or "week"
	ResetsAt    *time.Time `json:"resets_at,omitempty"`
}

// UsageStatusResponse is returned by GET /api/user/usage-status
type UsageStatusResponse struct {
	Plan             PlanInfo        `json:"plan"`
	TrialActive      bool            `json:"trial_active"`
	TrialEndsAt      *time.Time      `json:"trial_ends_at,omitempty"`
	Features         []RemainingUses `json:"features"`
	UpgradeAvailable bool            `json:"upgrade_available"`
}

type PlanInfo struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// QuotaDeniedError carries a denial out of the coach services so the
// controller can map it to an upsell payload instead of a plain 500.
type QuotaDeniedError struct {
	Result *CheckResult
}

func (e *QuotaDeniedError) Error() string {
	return fmt.Sprintf("quota denied: %s (%s)", e.Result.Reason, e.Result.FeatureDisplayText)
}

// PurchaseCreditsRequest buys a credit pack for one feature.
type PurchaseCreditsRequest struct {
	FeatureKey string `json:"feature_key" validate:"required"`
	PackSize   int    `json:"pack_size" validate:"required,gt=0"`
}

// QuotaEventMessage is the payload published on every allowed check and
// credit purchase, drained by the consumer service.
type QuotaEventMessage struct {
	Type       string    `json:"type"` // QUOTA_CONSUMED, CREDITS_PURCHASED, SUBSCRIPTION_ACTIVATED
	ProfileId  uuid.UUID `json:"profile_id"`
	FeatureKey string    `json:"feature_key,omitempty"`
	Amount     int       `json:"amount,omitempty"`
	Tier       string    `json:"tier,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
