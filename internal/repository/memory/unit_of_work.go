// FILE: internal/repository/memory/unit_of_work.go
// In-memory unit of work backing service tests. Transactions are no-ops:
// the repositories are already serialized by their own mutexes and the
// quota service additionally holds a per-profile lock around each check.
package memory

import (
	"context"
	"sync"

	"ai-nutricoach-be/internal/entity"
	"ai-nutricoach-be/internal/repository/contract"
	"ai-nutricoach-be/internal/repository/specification"
	"ai-nutricoach-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type Store struct {
	Profiles  *ProfileRepository
	Purchases *CreditPurchaseRepository
	Orders    *SubscriptionOrderRepository
}

func NewStore() *Store {
	return &Store{
		Profiles:  NewProfileRepository(),
		Purchases: NewCreditPurchaseRepository(),
		Orders:    NewSubscriptionOrderRepository(),
	}
}

type unitOfWork struct {
	store *Store
}

type factory struct {
	store *Store
}

func NewRepositoryFactory(store *Store) unitofwork.RepositoryFactory {
	return &factory{store: store}
}

func (f *factory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &unitOfWork{store: f.store}
}

func (u *unitOfWork) Begin(ctx context.Context) error { return nil }
func (u *unitOfWork) Commit() error                   { return nil }
func (u *unitOfWork) Rollback() error                 { return nil }

func (u *unitOfWork) ProfileRepository() contract.ProfileRepository {
	return u.store.Profiles
}

func (u *unitOfWork) CreditPurchaseRepository() contract.CreditPurchaseRepository {
	return u.store.Purchases
}

func (u *unitOfWork) SubscriptionOrderRepository() contract.SubscriptionOrderRepository {
	return u.store.Orders
}

// CreditPurchaseRepository is the in-memory audit-trail store.
type CreditPurchaseRepository struct {
	mu        sync.RWMutex
	purchases map[uuid.UUID]*entity.CreditPurchase
}

func NewCreditPurchaseRepository() *CreditPurchaseRepository {
	return &CreditPurchaseRepository{purchases: make(map[uuid.UUID]*entity.CreditPurchase)}
}

var _ contract.CreditPurchaseRepository = (*CreditPurchaseRepository)(nil)

func (r *CreditPurchaseRepository) Create(ctx context.Context, p *entity.CreditPurchase) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.Id == uuid.Nil {
		p.Id = uuid.New()
	}
	c := *p
	r.purchases[p.Id] = &c
	return nil
}

func (r *CreditPurchaseRepository) Update(ctx context.Context, p *entity.CreditPurchase) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *p
	r.purchases[p.Id] = &c
	return nil
}

func (r *CreditPurchaseRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CreditPurchase, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, spec := range specs {
		if s, ok := spec.(specification.ByID); ok {
			if p, found := r.purchases[s.ID]; found {
				c := *p
				return &c, nil
			}
			return nil, nil
		}
	}
	return nil, nil
}

func (r *CreditPurchaseRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CreditPurchase, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*entity.CreditPurchase, 0, len(r.purchases))
	for _, p := range r.purchases {
		c := *p
		result = append(result, &c)
	}
	return result, nil
}

// SubscriptionOrderRepository is the in-memory order store.
type SubscriptionOrderRepository struct {
	mu     sync.RWMutex
	orders map[uuid.UUID]*entity.SubscriptionOrder
}

func NewSubscriptionOrderRepository() *SubscriptionOrderRepository {
	return &SubscriptionOrderRepository{orders: make(map[uuid.UUID]*entity.SubscriptionOrder)}
}

var _ contract.SubscriptionOrderRepository = (*SubscriptionOrderRepository)(nil)

func (r *SubscriptionOrderRepository) Create(ctx context.Context, o *entity.SubscriptionOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o.Id == uuid.Nil {
		o.Id = uuid.New()
	}
	c := *o
	r.orders[o.Id] = &c
	return nil
}

func (r *SubscriptionOrderRepository) Update(ctx context.Context, o *entity.SubscriptionOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *o
	r.orders[o.Id] = &c
	return nil
}

func (r *SubscriptionOrderRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.SubscriptionOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, spec := range specs {
		if s, ok := spec.(specification.ByID); ok {
			if o, found := r.orders[s.ID]; found {
				c := *o
				return &c, nil
			}
			return nil, nil
		}
	}
	return nil, nil
}

func (r *SubscriptionOrderRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SubscriptionOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*entity.SubscriptionOrder, 0, len(r.orders))
	for _, o := range r.orders {
		c := *o
		result = append(result, &c)
	}
	return result, nil
}
