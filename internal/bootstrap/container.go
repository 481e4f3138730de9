package bootstrap

import (
	"log"

	"ai-nutricoach-be/internal/config"
	"ai-nutricoach-be/internal/controller"
	"ai-nutricoach-be/internal/pkg/logger"
	"ai-nutricoach-be/internal/pkg/mailer"
	"ai-nutricoach-be/internal/repository/unitofwork"
	"ai-nutricoach-be/internal/service"
	"ai-nutricoach-be/pkg/aibackend"

	pktNats "ai-nutricoach-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	PlanController    controller.PlanController
	CoachController   controller.CoachController
	PaymentController controller.PaymentController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS is optional: the consumer degrades to log-only when unavailable
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	aiClient := aibackend.NewGeminiClient(cfg.Keys.GoogleGemini)

	// 3. Services
	publisherService := service.NewPublisherService(cfg.App.UsageTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.UsageTopic,
		natsPub,
		sysLogger,
	)

	quotaService := service.NewQuotaService(uowFactory, publisherService, sysLogger)
	planService := service.NewPlanService(uowFactory)
	coachService := service.NewCoachService(quotaService, aiClient, sysLogger)
	paymentService := service.NewPaymentService(
		uowFactory,
		quotaService,
		emailService,
		sysLogger,
		cfg.Payment,
	)

	// 4. Controllers
	return &Container{
		PlanController:    controller.NewPlanController(planService, quotaService),
		CoachController:   controller.NewCoachController(coachService),
		PaymentController: controller.NewPaymentController(paymentService),

		ConsumerService: consumerService,
	}
}
