// FILE: internal/repository/implementation/purchase_repository_impl.go
// GORM implementations of the purchase/order repositories
package implementation

import (
	"context"
	"errors"

	"ai-nutricoach-be/internal/entity"
	"ai-nutricoach-be/internal/mapper"
	"ai-nutricoach-be/internal/model"
	"ai-nutricoach-be/internal/repository/contract"
	"ai-nutricoach-be/internal/repository/specification"

	"gorm.io/gorm"
)

type CreditPurchaseRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PurchaseMapper
}

func NewCreditPurchaseRepository(db *gorm.DB) contract.CreditPurchaseRepository {
	return &CreditPurchaseRepositoryImpl{
		db:     db,
		mapper: mapper.NewPurchaseMapper(),
	}
}

func applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *CreditPurchaseRepositoryImpl) Create(ctx context.Context, purchase *entity.CreditPurchase) error {
	m := r.mapper.CreditToModel(purchase)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*purchase = *r.mapper.CreditToEntity(m)
	return nil
}

func (r *CreditPurchaseRepositoryImpl) Update(ctx context.Context, purchase *entity.CreditPurchase) error {
	m := r.mapper.CreditToModel(purchase)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*purchase = *r.mapper.CreditToEntity(m)
	return nil
}

func (r *CreditPurchaseRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CreditPurchase, error) {
	var m model.CreditPurchase
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.CreditToEntity(&m), nil
}

func (r *CreditPurchaseRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CreditPurchase, error) {
	var models []*model.CreditPurchase
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	result := make([]*entity.CreditPurchase, 0, len(models))
	for _, mdl := range models {
		result = append(result, r.mapper.CreditToEntity(mdl))
	}
	return result, nil
}

type SubscriptionOrderRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PurchaseMapper
}

func NewSubscriptionOrderRepository(db *gorm.DB) contract.SubscriptionOrderRepository {
	return &SubscriptionOrderRepositoryImpl{
		db:     db,
		mapper: mapper.NewPurchaseMapper(),
	}
}

func (r *SubscriptionOrderRepositoryImpl) Create(ctx context.Context, order *entity.SubscriptionOrder) error {
	m := r.mapper.OrderToModel(order)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*order = *r.mapper.OrderToEntity(m)
	return nil
}

func (r *SubscriptionOrderRepositoryImpl) Update(ctx context.Context, order *entity.SubscriptionOrder) error {
	m := r.mapper.OrderToModel(order)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*order = *r.mapper.OrderToEntity(m)
	return nil
}

func (r *SubscriptionOrderRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.SubscriptionOrder, error) {
	var m model.SubscriptionOrder
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.OrderToEntity(&m), nil
}

func (r *SubscriptionOrderRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SubscriptionOrder, error) {
	var models []*model.SubscriptionOrder
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	result := make([]*entity.SubscriptionOrder, 0, len(models))
	for _, mdl := range models {
		result = append(result, r.mapper.OrderToEntity(mdl))
	}
	return result, nil
}
