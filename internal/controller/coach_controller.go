// FILE: internal/controller/coach_controller.go
// Controller for the AI coaching endpoints. All routes are authenticated
// and quota-enforced; denials come back as a 403 upsell payload.
package controller

import (
	"errors"

	"ai-nutricoach-be/internal/dto"
	"ai-nutricoach-be/internal/pkg/serverutils"
	"ai-nutricoach-be/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type CoachController interface {
	RegisterRoutes(api fiber.Router, jwtMiddleware fiber.Handler)
}

type coachController struct {
	coachService service.ICoachService
	validate     *validator.Validate
}

func NewCoachController(coachService service.ICoachService) CoachController {
	return &coachController{
		coachService: coachService,
		validate:     validator.New(),
	}
}

func (c *coachController) RegisterRoutes(api fiber.Router, jwtMiddleware fiber.Handler) {
	coach := api.Group("/coach", jwtMiddleware)
	coach.Post("/daily-plan", c.GenerateDailyPlan)
	coach.Post("/weekly-plan", c.GenerateWeeklyPlan)
	coach.Post("/chat", c.Chat)
	coach.Post("/recipes", c.SearchRecipes)
	coach.Post("/meal-analysis", c.AnalyzeMeal)
	coach.Post("/image", c.GenerateImage)
}

// respond maps service results to HTTP. A quota denial is not a server
// error: the client gets 403 with the denial details so it can render
// the upsell modal.
func respond(ctx *fiber.Ctx, content *dto.CoachContentResponse, err error) error {
	if err != nil {
		var denied *dto.QuotaDeniedError
		if errors.As(err, &denied) {
			return ctx.Status(fiber.StatusForbidden).JSON(serverutils.ErrorResponseWithData(403, "Quota exceeded", denied.Result))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("OK", content))
}

func (c *coachController) GenerateDailyPlan(ctx *fiber.Ctx) error {
	profileId, err := profileIdFromCtx(ctx)
	if err != nil {
		return err
	}

	var req dto.DailyPlanRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := c.validate.Struct(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	content, err := c.coachService.GenerateDailyPlan(ctx.Context(), profileId, &req)
	return respond(ctx, content, err)
}

func (c *coachController) GenerateWeeklyPlan(ctx *fiber.Ctx) error {
	profileId, err := profileIdFromCtx(ctx)
	if err != nil {
		return err
	}

	var req dto.WeeklyPlanRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := c.validate.Struct(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	content, err := c.coachService.GenerateWeeklyPlan(ctx.Context(), profileId, &req)
	return respond(ctx, content, err)
}

func (c *coachController) Chat(ctx *fiber.Ctx) error {
	profileId, err := profileIdFromCtx(ctx)
	if err != nil {
		return err
	}

	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := c.validate.Struct(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	content, err := c.coachService.Chat(ctx.Context(), profileId, &req)
	return respond(ctx, content, err)
}

func (c *coachController) SearchRecipes(ctx *fiber.Ctx) error {
	profileId, err := profileIdFromCtx(ctx)
	if err != nil {
		return err
	}

	var req dto.RecipeSearchRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := c.validate.Struct(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	content, err := c.coachService.SearchRecipes(ctx.Context(), profileId, &req)
	return respond(ctx, content, err)
}

func (c *coachController) AnalyzeMeal(ctx *fiber.Ctx) error {
	profileId, err := profileIdFromCtx(ctx)
	if err != nil {
		return err
	}

	var req dto.MealAnalysisRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	content, err := c.coachService.AnalyzeMeal(ctx.Context(), profileId, &req)
	return respond(ctx, content, err)
}

func (c *coachController) GenerateImage(ctx *fiber.Ctx) error {
	profileId, err := profileIdFromCtx(ctx)
	if err != nil {
		return err
	}

	var req dto.ImageGenRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := c.validate.Struct(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	content, err := c.coachService.GenerateImage(ctx.Context(), profileId, &req)
	return respond(ctx, content, err)
}
