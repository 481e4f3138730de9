// FILE: internal/model/purchase_model.go
// GORM models for credit pack purchases and subscription orders
package model

import (
	"time"

	"github.com/google/uuid"
)

type CreditPurchase struct {
	Id                    uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProfileId             uuid.UUID `gorm:"type:uuid;not null;index"`
	FeatureKey            string    `gorm:"type:varchar(100);not null"`
	PackSize              int       `gorm:"not null"`
	Amount                float64   `gorm:"type:decimal(10,2);not null"`
	Status                string    `gorm:"type:varchar(50);not null"`
	MidtransTransactionId *string   `gorm:"type:varchar(255)"`
	CreatedAt             time.Time `gorm:"autoCreateTime"`
	UpdatedAt             time.Time `gorm:"autoUpdateTime"`
}

func (CreditPurchase) TableName() string {
	return "credit_purchases"
}

type SubscriptionOrder struct {
	Id                    uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProfileId             uuid.UUID `gorm:"type:uuid;not null;index"`
	PlanKey               string    `gorm:"type:varchar(50);not null"`
	BillingCycle          string    `gorm:"type:varchar(50);not null"`
	Amount                float64   `gorm:"type:decimal(10,2);not null"`
	Status                string    `gorm:"type:varchar(50);not null"`
	MidtransTransactionId *string   `gorm:"type:varchar(255)"`
	CreatedAt             time.Time `gorm:"autoCreateTime"`
	UpdatedAt             time.Time `gorm:"autoUpdateTime"`
}

func (SubscriptionOrder) TableName() string {
	return "subscription_orders"
}
