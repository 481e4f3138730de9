// FILE: internal/controller/plan_controller.go
// Controller for the pricing catalog and usage-status endpoints
package controller

import (
	"ai-nutricoach-be/internal/pkg/serverutils"
	"ai-nutricoach-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type PlanController interface {
	RegisterRoutes(api fiber.Router, jwtMiddleware fiber.Handler)
}

type planController struct {
	planService  service.PlanService
	quotaService service.QuotaService
}

func NewPlanController(planService service.PlanService, quotaService service.QuotaService) PlanController {
	return &planController{
		planService:  planService,
		quotaService: quotaService,
	}
}

func (c *planController) RegisterRoutes(api fiber.Router, jwtMiddleware fiber.Handler) {
	// Public endpoints
	api.Get("/plans", c.GetAllPlans)

	// Authenticated endpoints
	user := api.Group("/user", jwtMiddleware)
	user.Get("/usage-status", c.GetUsageStatus)
	user.Get("/usage-status/:featureKey", c.GetRemainingUses)
}

// GetAllPlans returns the static catalog for the pricing modal
// @Summary Get all subscription plans
// @Tags Plans
// @Produce json
// @Success 200 {object} []dto.PlanResponse
// @Router /api/plans [get]
func (c *planController) GetAllPlans(ctx *fiber.Ctx) error {
	plans := c.planService.GetAllPlans(ctx.Context())
	return ctx.JSON(serverutils.SuccessResponse("Plans retrieved", plans))
}

// GetUsageStatus returns remaining uses vs limits for every metered feature
// @Summary Get user usage status
// @Tags User
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.UsageStatusResponse
// @Router /api/user/usage-status [get]
func (c *planController) GetUsageStatus(ctx *fiber.Ctx) error {
	profileId, err := profileIdFromCtx(ctx)
	if err != nil {
		return err
	}

	status, err := c.planService.GetUsageStatus(ctx.Context(), profileId)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse("Usage status retrieved", status))
}

// GetRemainingUses returns the quota badge for a single feature
// @Summary Get remaining uses for one feature
// @Tags User
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.RemainingUses
// @Router /api/user/usage-status/{featureKey} [get]
func (c *planController) GetRemainingUses(ctx *fiber.Ctx) error {
	profileId, err := profileIdFromCtx(ctx)
	if err != nil {
		return err
	}

	remaining, err := c.quotaService.GetRemainingUses(ctx.Context(), profileId, ctx.Params("featureKey"))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse("Remaining uses retrieved", remaining))
}

// profileIdFromCtx extracts the authenticated profile id set by the JWT
// middleware. Shared by all controllers in this package.
func profileIdFromCtx(ctx *fiber.Ctx) (uuid.UUID, error) {
	userIdStr := ctx.Locals("user_id")
	if userIdStr == nil {
		return uuid.Nil, ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Unauthorized"))
	}

	id, err := uuid.Parse(userIdStr.(string))
	if err != nil {
		return uuid.Nil, ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid user ID"))
	}
	return id, nil
}
