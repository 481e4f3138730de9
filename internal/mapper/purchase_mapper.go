// FILE: internal/mapper/purchase_mapper.go
// Mappers for purchase/order entity <-> model conversion
package mapper

import (
	"ai-nutricoach-be/internal/entity"
	"ai-nutricoach-be/internal/model"
)

type PurchaseMapper struct{}

func NewPurchaseMapper() *PurchaseMapper {
	return &PurchaseMapper{}
}

func (m *PurchaseMapper) CreditToEntity(mdl *model.CreditPurchase) *entity.CreditPurchase {
	if mdl == nil {
		return nil
	}
	return &entity.CreditPurchase{
		Id:                    mdl.Id,
		ProfileId:             mdl.ProfileId,
		FeatureKey:            mdl.FeatureKey,
		PackSize:              mdl.PackSize,
		Amount:                mdl.Amount,
		Status:                entity.OrderStatus(mdl.Status),
		MidtransTransactionId: mdl.MidtransTransactionId,
		CreatedAt:             mdl.CreatedAt,
		UpdatedAt:             mdl.UpdatedAt,
	}
}

func (m *PurchaseMapper) CreditToModel(e *entity.CreditPurchase) *model.CreditPurchase {
	if e == nil {
		return nil
	}
	return &model.CreditPurchase{
		Id:                    e.Id,
		ProfileId:             e.ProfileId,
		FeatureKey:            e.FeatureKey,
		PackSize:              e.PackSize,
		Amount:                e.Amount,
		Status:                string(e.Status),
		MidtransTransactionId: e.MidtransTransactionId,
		CreatedAt:             e.CreatedAt,
		UpdatedAt:             e.UpdatedAt,
	}
}

func (m *PurchaseMapper) OrderToEntity(mdl *model.SubscriptionOrder) *entity.SubscriptionOrder {
	if mdl == nil {
		return nil
	}
	return &entity.SubscriptionOrder{
		Id:                    mdl.Id,
		ProfileId:             mdl.ProfileId,
		PlanKey:               entity.TierKey(mdl.PlanKey),
		BillingCycle:          entity.BillingCycle(mdl.BillingCycle),
		Amount:                mdl.Amount,
		Status:                entity.OrderStatus(mdl.Status),
		MidtransTransactionId: mdl.MidtransTransactionId,
		CreatedAt:             mdl.CreatedAt,
		UpdatedAt:             mdl.UpdatedAt,
	}
}

func (m *PurchaseMapper) OrderToModel(e *entity.SubscriptionOrder) *model.SubscriptionOrder {
	if e == nil {
		return nil
	}
	return &model.SubscriptionOrder{
		Id:                    e.Id,
		ProfileId:             e.ProfileId,
		PlanKey:               string(e.PlanKey),
		BillingCycle:          string(e.BillingCycle),
		Amount:                e.Amount,
		Status:                string(e.Status),
		MidtransTransactionId: e.MidtransTransactionId,
		CreatedAt:             e.CreatedAt,
		UpdatedAt:             e.UpdatedAt,
	}
}
