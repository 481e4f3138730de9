package unitofwork

import (
	"context"

	"ai-nutricoach-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ProfileRepository() contract.ProfileRepository
	CreditPurchaseRepository() contract.CreditPurchaseRepository
	SubscriptionOrderRepository() contract.SubscriptionOrderRepository
}
