package contract

import (
	"context"

	"ai-nutricoach-be/internal/entity"
	"ai-nutricoach-be/internal/repository/specification"
)

type CreditPurchaseRepository interface {
	Create(ctx context.Context, purchase *entity.CreditPurchase) error
	Update(ctx context.Context, purchase *entity.CreditPurchase) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CreditPurchase, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CreditPurchase, error)
}

type SubscriptionOrderRepository interface {
	Create(ctx context.Context, order *entity.SubscriptionOrder) error
	Update(ctx context.Context, order *entity.SubscriptionOrder) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.SubscriptionOrder, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SubscriptionOrder, error)
}
