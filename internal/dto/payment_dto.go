// FILE: internal/dto/payment_dto.go
// DTOs for subscription and credit pack checkout
package dto

import "github.com/google/uuid"

type SubscribeRequest struct {
	PlanKey      string `json:"plan_key" validate:"required"`
	BillingCycle string `json:"billing_cycle" validate:"required,oneof=monthly annual"`
	FirstName    string `json:"first_name" validate:"required"`
	LastName     string `json:"last_name"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone"`
}

type CreditCheckoutRequest struct {
	FeatureKey string `json:"feature_key" validate:"required"`
	PackSize   int    `json:"pack_size" validate:"required,gt=0"`
	Email      string `json:"email" validate:"required,email"`
	FirstName  string `json:"first_name" validate:"required"`
}

// CheckoutResponse carries the midtrans Snap token the client opens.
type CheckoutResponse struct {
	OrderId     uuid.UUID `json:"order_id"`
	SnapToken   string    `json:"snap_token"`
	RedirectURL string    `json:"redirect_url"`
}

// MidtransNotification is the subset of the webhook payload we act on.
type MidtransNotification struct {
	OrderId           string `json:"order_id"`
	TransactionStatus string `json:"transaction_status"`
	TransactionId     string `json:"transaction_id"`
	FraudStatus       string `json:"fraud_status"`
}
