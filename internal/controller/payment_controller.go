// FILE: internal/controller/payment_controller.go
// Controller for midtrans checkout and the payment webhook
package controller

import (
	"ai-nutricoach-be/internal/dto"
	"ai-nutricoach-be/internal/pkg/serverutils"
	"ai-nutricoach-be/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type PaymentController interface {
	RegisterRoutes(api fiber.Router, jwtMiddleware fiber.Handler)
}

type paymentController struct {
	paymentService service.IPaymentService
	validate       *validator.Validate
}

func NewPaymentController(paymentService service.IPaymentService) PaymentController {
	return &paymentController{
		paymentService: paymentService,
		validate:       validator.New(),
	}
}

func (c *paymentController) RegisterRoutes(api fiber.Router, jwtMiddleware fiber.Handler) {
	payment := api.Group("/payment")
	payment.Post("/subscribe", jwtMiddleware, c.Subscribe)
	// Webhook is called by midtrans, no JWT
	payment.Post("/notification", c.HandleNotification)

	credits := api.Group("/credits", jwtMiddleware)
	credits.Post("/purchase", c.PurchaseCreditPack)
}

// Subscribe creates a pending subscription order and returns the snap token
// @Summary Start a subscription checkout
// @Tags Payment
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 200 {object} dto.CheckoutResponse
// @Router /api/payment/subscribe [post]
func (c *paymentController) Subscribe(ctx *fiber.Ctx) error {
	profileId, err := profileIdFromCtx(ctx)
	if err != nil {
		return err
	}

	var req dto.SubscribeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := c.validate.Struct(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	checkout, err := c.paymentService.Subscribe(ctx.Context(), profileId, &req)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse("Checkout created", checkout))
}

// PurchaseCreditPack creates a pending credit-pack order and returns the snap token
// @Summary Start a credit pack checkout
// @Tags Payment
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 200 {object} dto.CheckoutResponse
// @Router /api/credits/purchase [post]
func (c *paymentController) PurchaseCreditPack(ctx *fiber.Ctx) error {
	profileId, err := profileIdFromCtx(ctx)
	if err != nil {
		return err
	}

	var req dto.CreditCheckoutRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := c.validate.Struct(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	checkout, err := c.paymentService.PurchaseCreditPack(ctx.Context(), profileId, &req)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse("Checkout created", checkout))
}

// HandleNotification is the midtrans webhook. Always answers 200 on known
// transitions so the gateway stops retrying.
// @Summary Midtrans payment notification webhook
// @Tags Payment
// @Accept json
// @Produce json
// @Router /api/payment/notification [post]
func (c *paymentController) HandleNotification(ctx *fiber.Ctx) error {
	var notif dto.MidtransNotification
	if err := ctx.BodyParser(&notif); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid notification payload"))
	}

	if err := c.paymentService.HandleNotification(ctx.Context(), &notif); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse("Notification processed", struct{}{}))
}
