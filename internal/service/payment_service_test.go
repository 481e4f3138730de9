package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"ai-nutricoach-be/internal/catalog"
	"ai-nutricoach-be/internal/config"
	"ai-nutricoach-be/internal/dto"
	"ai-nutricoach-be/internal/entity"
	"ai-nutricoach-be/internal/repository/contract"
	"ai-nutricoach-be/internal/repository/memory"
	"ai-nutricoach-be/internal/repository/specification"
	"ai-nutricoach-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	subscriptionMails int
	receiptMails      int
}

func (m *fakeMailer) SendSubscriptionActive(toEmail, planName string) error {
	m.subscriptionMails++
	return nil
}

func (m *fakeMailer) SendCreditPackReceipt(toEmail, featureText string, packSize int) error {
	m.receiptMails++
	return nil
}

type paymentFixture struct {
	store     *memory.Store
	mailer    *fakeMailer
	quota     *quotaFixture
	payment   IPaymentService
	profileId uuid.UUID
}

func newPaymentFixture(t *testing.T) *paymentFixture {
	t.Helper()

	qf := newQuotaFixture(t)
	mail := &fakeMailer{}

	payment := NewPaymentService(
		memory.NewRepositoryFactory(qf.store),
		qf.quota,
		mail,
		nopLogger{},
		config.PaymentConfig{},
	)

	return &paymentFixture{
		store:     qf.store,
		mailer:    mail,
		quota:     qf,
		payment:   payment,
		profileId: qf.profileId,
	}
}

func settlementFor(orderId uuid.UUID) *dto.MidtransNotification {
	return &dto.MidtransNotification{
		OrderId:           orderId.String(),
		TransactionStatus: "settlement",
		TransactionId:     "mid-" + orderId.String()[:8],
	}
}

func TestHandleNotificationActivatesSubscription(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()

	order := &entity.SubscriptionOrder{
		Id:           uuid.New(),
		ProfileId:    f.profileId,
		PlanKey:      entity.TierPro,
		BillingCycle: entity.BillingCycleMonthly,
		Amount:       29.90,
		Status:       entity.OrderStatusPending,
		CreatedAt:    time.Now(),
	}
	require.NoError(t, f.store.Orders.Create(ctx, order))

	require.NoError(t, f.payment.HandleNotification(ctx, settlementFor(order.Id)))

	profile, err := f.store.Profiles.FindOne(ctx, specification.ByID{ID: f.profileId})
	require.NoError(t, err)
	assert.True(t, profile.Subscription.IsSubscribed)
	require.NotNil(t, profile.Subscription.CurrentPlan)
	assert.Equal(t, entity.TierPro, *profile.Subscription.CurrentPlan)

	stored, err := f.store.Orders.FindOne(ctx, specification.ByID{ID: order.Id})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPaid, stored.Status)
	assert.Equal(t, 1, f.mailer.subscriptionMails)

	// A webhook retry must be a no-op
	require.NoError(t, f.payment.HandleNotification(ctx, settlementFor(order.Id)))
	assert.Equal(t, 1, f.mailer.subscriptionMails)
}

func TestHandleNotificationFailedPayment(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()

	order := &entity.SubscriptionOrder{
		Id:           uuid.New(),
		ProfileId:    f.profileId,
		PlanKey:      entity.TierPremium,
		BillingCycle: entity.BillingCycleAnnual,
		Amount:       499.00,
		Status:       entity.OrderStatusPending,
	}
	require.NoError(t, f.store.Orders.Create(ctx, order))

	notif := settlementFor(order.Id)
	notif.TransactionStatus = "expire"
	require.NoError(t, f.payment.HandleNotification(ctx, notif))

	profile, err := f.store.Profiles.FindOne(ctx, specification.ByID{ID: f.profileId})
	require.NoError(t, err)
	assert.False(t, profile.Subscription.IsSubscribed)

	stored, err := f.store.Orders.FindOne(ctx, specification.ByID{ID: order.Id})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusFailed, stored.Status)
	assert.Zero(t, f.mailer.subscriptionMails)
}

func TestHandleNotificationGrantsCreditPack(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()

	purchase := &entity.CreditPurchase{
		Id:         uuid.New(),
		ProfileId:  f.profileId,
		FeatureKey: catalog.FeatureImageGen,
		PackSize:   10,
		Amount:     19.0,
		Status:     entity.OrderStatusPending,
	}
	require.NoError(t, f.store.Purchases.Create(ctx, purchase))

	require.NoError(t, f.payment.HandleNotification(ctx, settlementFor(purchase.Id)))

	profile, err := f.store.Profiles.FindOne(ctx, specification.ByID{ID: f.profileId})
	require.NoError(t, err)
	assert.Equal(t, 10, profile.PurchasedCredits[catalog.FeatureImageGen])
	assert.Equal(t, 1, f.mailer.receiptMails)

	// Credits are granted through the quota service, so the purchase shows
	// up on the event trail.
	events := f.quota.publisher.events
	require.NotEmpty(t, events)
	assert.Equal(t, "CREDITS_PURCHASED", events[len(events)-1].Type)
}

// flakyProfileRepository fails a configured number of Update calls before
// delegating, simulating a transient store outage mid-settlement.
type flakyProfileRepository struct {
	contract.ProfileRepository
	failures int
}

func (r *flakyProfileRepository) Update(ctx context.Context, profile *entity.UserProfile) error {
	if r.failures > 0 {
		r.failures--
		return errors.New("store unavailable")
	}
	return r.ProfileRepository.Update(ctx, profile)
}

type flakyUnitOfWork struct {
	unitofwork.UnitOfWork
	profiles contract.ProfileRepository
}

func (u *flakyUnitOfWork) ProfileRepository() contract.ProfileRepository {
	return u.profiles
}

type flakyFactory struct {
	inner    unitofwork.RepositoryFactory
	profiles contract.ProfileRepository
}

func (f *flakyFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &flakyUnitOfWork{UnitOfWork: f.inner.NewUnitOfWork(ctx), profiles: f.profiles}
}

func TestCreditPackRetryCompletesGrantAfterTransientFailure(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	profile := &entity.UserProfile{
		Id:    uuid.New(),
		Email: "retry@example.com",
	}
	require.NoError(t, store.Profiles.Create(ctx, profile))

	factory := &flakyFactory{
		inner:    memory.NewRepositoryFactory(store),
		profiles: &flakyProfileRepository{ProfileRepository: store.Profiles, failures: 1},
	}

	quota := NewQuotaService(factory, &capturingPublisher{}, nopLogger{})
	mail := &fakeMailer{}
	payment := NewPaymentService(factory, quota, mail, nopLogger{}, config.PaymentConfig{})

	purchase := &entity.CreditPurchase{
		Id:         uuid.New(),
		ProfileId:  profile.Id,
		FeatureKey: catalog.FeatureImageGen,
		PackSize:   10,
		Amount:     19.0,
		Status:     entity.OrderStatusPending,
	}
	require.NoError(t, store.Purchases.Create(ctx, purchase))

	// First delivery fails while granting; the purchase must stay pending so
	// the webhook retry is not swallowed by the idempotency guard.
	require.Error(t, payment.HandleNotification(ctx, settlementFor(purchase.Id)))

	stored, err := store.Purchases.FindOne(ctx, specification.ByID{ID: purchase.Id})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPending, stored.Status)

	// The retry completes the grant and settles the purchase.
	require.NoError(t, payment.HandleNotification(ctx, settlementFor(purchase.Id)))

	updated, err := store.Profiles.FindOne(ctx, specification.ByID{ID: profile.Id})
	require.NoError(t, err)
	assert.Equal(t, 10, updated.PurchasedCredits[catalog.FeatureImageGen])

	stored, err = store.Purchases.FindOne(ctx, specification.ByID{ID: purchase.Id})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPaid, stored.Status)
	assert.Equal(t, 1, mail.receiptMails)
}

func TestHandleNotificationPendingIsIgnored(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()

	order := &entity.SubscriptionOrder{
		Id:        uuid.New(),
		ProfileId: f.profileId,
		PlanKey:   entity.TierPro,
		Status:    entity.OrderStatusPending,
	}
	require.NoError(t, f.store.Orders.Create(ctx, order))

	notif := settlementFor(order.Id)
	notif.TransactionStatus = "pending"
	require.NoError(t, f.payment.HandleNotification(ctx, notif))

	stored, err := f.store.Orders.FindOne(ctx, specification.ByID{ID: order.Id})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPending, stored.Status)
}

func TestHandleNotificationUnknownOrder(t *testing.T) {
	f := newPaymentFixture(t)

	err := f.payment.HandleNotification(context.Background(), settlementFor(uuid.New()))
	assert.Error(t, err)
}

func TestHandleNotificationRejectsMalformedOrderId(t *testing.T) {
	f := newPaymentFixture(t)

	err := f.payment.HandleNotification(context.Background(), &dto.MidtransNotification{
		OrderId:           "not-a-uuid",
		TransactionStatus: "settlement",
	})
	assert.Error(t, err)
}
