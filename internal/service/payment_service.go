// FILE: internal/service/payment_service.go
// Midtrans Snap checkout for subscriptions and credit packs, plus the
// webhook that flips profiles to subscribed / grants purchased credits.
package service

import (
	"context"
	"fmt"
	"time"

	"ai-nutricoach-be/internal/catalog"
	"ai-nutricoach-be/internal/config"
	"ai-nutricoach-be/internal/dto"
	"ai-nutricoach-be/internal/entity"
	"ai-nutricoach-be/internal/pkg/logger"
	"ai-nutricoach-be/internal/pkg/mailer"
	"ai-nutricoach-be/internal/repository/specification"
	"ai-nutricoach-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

type IPaymentService interface {
	Subscribe(ctx context.Context, profileId uuid.UUID, req *dto.SubscribeRequest) (*dto.CheckoutResponse, error)
	PurchaseCreditPack(ctx context.Context, profileId uuid.UUID, req *dto.CreditCheckoutRequest) (*dto.CheckoutResponse, error)
	HandleNotification(ctx context.Context, notif *dto.MidtransNotification) error
}

type paymentService struct {
	uowFactory   unitofwork.RepositoryFactory
	quota        QuotaService
	emailService mailer.IEmailService
	logger       logger.ILogger
	cfg          config.PaymentConfig
}

func NewPaymentService(
	uowFactory unitofwork.RepositoryFactory,
	quota QuotaService,
	emailService mailer.IEmailService,
	sysLogger logger.ILogger,
	cfg config.PaymentConfig,
) IPaymentService {
	return &paymentService{
		uowFactory:   uowFactory,
		quota:        quota,
		emailService: emailService,
		logger:       sysLogger,
		cfg:          cfg,
	}
}

func (s *paymentService) snapClient() snap.Client {
	var client snap.Client
	env := midtrans.Sandbox
	if s.cfg.IsProduction {
		env = midtrans.Production
	}
	client.New(s.cfg.MidtransServerKey, env)
	return client
}

func (s *paymentService) Subscribe(ctx context.Context, profileId uuid.UUID, req *dto.SubscribeRequest) (*dto.CheckoutResponse, error) {
	tier, err := catalog.GetTier(entity.TierKey(req.PlanKey))
	if err != nil {
		return nil, err
	}

	cycle := entity.BillingCycle(req.BillingCycle)
	amount := tier.PriceMonthly
	if cycle == entity.BillingCycleAnnual {
		amount = tier.PriceAnnual
	}

	order := &entity.SubscriptionOrder{
		Id:           uuid.New(),
		ProfileId:    profileId,
		PlanKey:      tier.Key,
		BillingCycle: cycle,
		Amount:       amount,
		Status:       entity.OrderStatusPending,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.SubscriptionOrderRepository().Create(ctx, order); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	// Midtrans call after commit so a gateway failure leaves a retryable
	// pending order rather than a dangling transaction.
	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  order.Id.String(),
			GrossAmt: int64(amount),
		},
		CreditCard: &snap.CreditCardDetails{Secure: true},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: req.FirstName,
			LName: req.LastName,
			Email: req.Email,
			Phone: req.Phone,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    string(tier.Key),
				Price: int64(amount),
				Qty:   1,
				Name:  fmt.Sprintf("%s (%s)", tier.Name, req.BillingCycle),
			},
		},
		EnabledPayments: snap.AllSnapPaymentType,
	}

	client := s.snapClient()
	snapResp, midErr := client.CreateTransaction(snapReq)
	if midErr != nil {
		return nil, fmt.Errorf("midtrans error: %v", midErr.GetMessage())
	}

	return &dto.CheckoutResponse{
		OrderId:     order.Id,
		SnapToken:   snapResp.Token,
		RedirectURL: snapResp.RedirectURL,
	}, nil
}

func (s *paymentService) PurchaseCreditPack(ctx context.Context, profileId uuid.UUID, req *dto.CreditCheckoutRequest) (*dto.CheckoutResponse, error) {
	amount := catalog.CreditPackPrice(req.FeatureKey, req.PackSize)

	purchase := &entity.CreditPurchase{
		Id:         uuid.New(),
		ProfileId:  profileId,
		FeatureKey: req.FeatureKey,
		PackSize:   req.PackSize,
		Amount:     amount,
		Status:     entity.OrderStatusPending,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.CreditPurchaseRepository().Create(ctx, purchase); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  purchase.Id.String(),
			GrossAmt: int64(amount),
		},
		CreditCard: &snap.CreditCardDetails{Secure: true},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: req.FirstName,
			Email: req.Email,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    req.FeatureKey,
				Price: int64(amount),
				Qty:   1,
				Name:  fmt.Sprintf("%s x%d", catalog.DisplayText(req.FeatureKey), req.PackSize),
			},
		},
		EnabledPayments: snap.AllSnapPaymentType,
	}

	client := s.snapClient()
	snapResp, midErr := client.CreateTransaction(snapReq)
	if midErr != nil {
		return nil, fmt.Errorf("midtrans error: %v", midErr.GetMessage())
	}

	return &dto.CheckoutResponse{
		OrderId:     purchase.Id,
		SnapToken:   snapResp.Token,
		RedirectURL: snapResp.RedirectURL,
	}, nil
}

// HandleNotification processes the midtrans webhook. The order id is ours,
// so it is looked up first as a subscription order, then as a credit pack.
func (s *paymentService) HandleNotification(ctx context.Context, notif *dto.MidtransNotification) error {
	orderId, err := uuid.Parse(notif.OrderId)
	if err != nil {
		return fmt.Errorf("invalid order id %q: %w", notif.OrderId, err)
	}

	paid := notif.TransactionStatus == "settlement" ||
		(notif.TransactionStatus == "capture" && notif.FraudStatus == "accept")
	failed := notif.TransactionStatus == "deny" ||
		notif.TransactionStatus == "cancel" ||
		notif.TransactionStatus == "expire"

	if !paid && !failed {
		// pending / challenge: nothing to do yet
		return nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	order, err := uow.SubscriptionOrderRepository().FindOne(ctx, specification.ByID{ID: orderId})
	if err != nil {
		return err
	}
	if order != nil {
		return s.settleSubscription(ctx, uow, order, notif, paid)
	}

	purchase, err := uow.CreditPurchaseRepository().FindOne(ctx, specification.ByID{ID: orderId})
	if err != nil {
		return err
	}
	if purchase != nil {
		return s.settleCreditPack(ctx, uow, purchase, notif, paid)
	}

	return fmt.Errorf("order %s not found", orderId)
}

func (s *paymentService) settleSubscription(ctx context.Context, uow unitofwork.UnitOfWork, order *entity.SubscriptionOrder, notif *dto.MidtransNotification, paid bool) error {
	if order.Status != entity.OrderStatusPending {
		return nil // webhook retries are idempotent
	}

	if !paid {
		order.Status = entity.OrderStatusFailed
		order.MidtransTransactionId = &notif.TransactionId
		return uow.SubscriptionOrderRepository().Update(ctx, order)
	}

	profile, err := uow.ProfileRepository().FindOne(ctx, specification.ByID{ID: order.ProfileId})
	if err != nil {
		return err
	}
	if profile == nil {
		return fmt.Errorf("profile %s not found for order %s", order.ProfileId, order.Id)
	}

	plan := order.PlanKey
	cycle := order.BillingCycle
	profile.Subscription.IsSubscribed = true
	profile.Subscription.CurrentPlan = &plan
	profile.Subscription.BillingCycle = &cycle

	order.Status = entity.OrderStatusPaid
	order.MidtransTransactionId = &notif.TransactionId

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.SubscriptionOrderRepository().Update(ctx, order); err != nil {
		return err
	}
	if err := uow.ProfileRepository().Update(ctx, profile); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	tier, err := catalog.GetTier(plan)
	if err == nil {
		if mailErr := s.emailService.SendSubscriptionActive(profile.Email, tier.Name); mailErr != nil {
			s.logger.Warn("payment", "Failed to send subscription mail", map[string]interface{}{
				"profile_id": profile.Id.String(),
				"error":      mailErr.Error(),
			})
		}
	}

	s.logger.Info("payment", "Subscription activated", map[string]interface{}{
		"profile_id": profile.Id.String(),
		"plan":       string(plan),
		"cycle":      string(cycle),
	})
	return nil
}

func (s *paymentService) settleCreditPack(ctx context.Context, uow unitofwork.UnitOfWork, purchase *entity.CreditPurchase, notif *dto.MidtransNotification, paid bool) error {
	if purchase.Status != entity.OrderStatusPending {
		return nil // webhook retries are idempotent
	}

	if !paid {
		purchase.Status = entity.OrderStatusFailed
		purchase.MidtransTransactionId = &notif.TransactionId

		if err := uow.Begin(ctx); err != nil {
			return err
		}
		defer uow.Rollback()

		if err := uow.CreditPurchaseRepository().Update(ctx, purchase); err != nil {
			return err
		}
		return uow.Commit()
	}

	// Grant before marking the purchase paid: on any failure here the row is
	// still pending, so the webhook retry can complete the grant. The grant
	// goes through the enforcer so the event trail stays uniform.
	if err := s.quota.PurchaseCredits(ctx, purchase.ProfileId, purchase.FeatureKey, purchase.PackSize); err != nil {
		return err
	}

	purchase.Status = entity.OrderStatusPaid
	purchase.MidtransTransactionId = &notif.TransactionId

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.CreditPurchaseRepository().Update(ctx, purchase); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	profile, err := uow.ProfileRepository().FindOne(ctx, specification.ByID{ID: purchase.ProfileId})
	if err == nil && profile != nil {
		if mailErr := s.emailService.SendCreditPackReceipt(profile.Email, catalog.DisplayText(purchase.FeatureKey), purchase.PackSize); mailErr != nil {
			s.logger.Warn("payment", "Failed to send receipt mail", map[string]interface{}{
				"profile_id": profile.Id.String(),
				"error":      mailErr.Error(),
			})
		}
	}

	return nil
}
