// FILE: internal/entity/purchase_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending OrderStatus = "pending"
	OrderStatusPaid    OrderStatus = "success"
	OrderStatusFailed  OrderStatus = "failed"
)

// CreditPurchase is one credit pack checkout. The granted credits live on the
// profile; these rows are the purchase audit trail.
type CreditPurchase struct {
	Id                    uuid.UUID
	ProfileId             uuid.UUID
	FeatureKey            string
	PackSize              int
	Amount                float64
	Status                OrderStatus
	MidtransTransactionId *string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// SubscriptionOrder is a pending/paid checkout for a plan tier.
type SubscriptionOrder struct {
	Id                    uuid.UUID
	ProfileId             uuid.UUID
	PlanKey               TierKey
	BillingCycle          BillingCycle
	Amount                float64
	Status                OrderStatus
	MidtransTransactionId *string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}
