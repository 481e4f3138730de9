// FILE: internal/service/coach_service.go
// AI-backed coaching actions. Every method passes through the quota
// enforcer before touching the AI backend; a denial surfaces as a
// QuotaDeniedError for the controller to turn into an upsell payload.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ai-nutricoach-be/internal/catalog"
	"ai-nutricoach-be/internal/dto"
	"ai-nutricoach-be/internal/pkg/logger"
	"ai-nutricoach-be/pkg/aibackend"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

type ICoachService interface {
	GenerateDailyPlan(ctx context.Context, profileId uuid.UUID, req *dto.DailyPlanRequest) (*dto.CoachContentResponse, error)
	GenerateWeeklyPlan(ctx context.Context, profileId uuid.UUID, req *dto.WeeklyPlanRequest) (*dto.CoachContentResponse, error)
	Chat(ctx context.Context, profileId uuid.UUID, req *dto.ChatRequest) (*dto.CoachContentResponse, error)
	SearchRecipes(ctx context.Context, profileId uuid.UUID, req *dto.RecipeSearchRequest) (*dto.CoachContentResponse, error)
	AnalyzeMeal(ctx context.Context, profileId uuid.UUID, req *dto.MealAnalysisRequest) (*dto.CoachContentResponse, error)
	GenerateImage(ctx context.Context, profileId uuid.UUID, req *dto.ImageGenRequest) (*dto.CoachContentResponse, error)
}

type coachService struct {
	quota  QuotaService
	ai     aibackend.Client
	cache  *gocache.Cache
	logger logger.ILogger
}

func NewCoachService(quota QuotaService, ai aibackend.Client, sysLogger logger.ILogger) ICoachService {
	return &coachService{
		quota:  quota,
		ai:     ai,
		cache:  gocache.New(1*time.Hour, 10*time.Minute),
		logger: sysLogger,
	}
}

// checkQuota runs the enforcer and converts denials into typed errors.
// By the time this returns nil, the slot is already consumed; AI failures
// after this point do not refund it.
func (s *coachService) checkQuota(ctx context.Context, profileId uuid.UUID, featureKey string) error {
	result, err := s.quota.Check(ctx, profileId, featureKey, 1)
	if err != nil {
		return err
	}
	if !result.Allowed {
		return &dto.QuotaDeniedError{Result: result}
	}
	return nil
}

func (s *coachService) GenerateDailyPlan(ctx context.Context, profileId uuid.UUID, req *dto.DailyPlanRequest) (*dto.CoachContentResponse, error) {
	if err := s.checkQuota(ctx, profileId, catalog.FeatureDailyPlanGenerations); err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(
		"Monte um plano alimentar para um dia com %d kcal, objetivo %q. Restrições: %s.",
		req.TargetCalories, req.Goal, restrictionList(req.Restrictions),
	)
	content, err := s.ai.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return &dto.CoachContentResponse{Content: content}, nil
}

func (s *coachService) GenerateWeeklyPlan(ctx context.Context, profileId uuid.UUID, req *dto.WeeklyPlanRequest) (*dto.CoachContentResponse, error) {
	if err := s.checkQuota(ctx, profileId, catalog.FeatureWeeklyPlanGenerations); err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(
		"Monte um plano alimentar semanal com %d kcal por dia, objetivo %q. Restrições: %s.",
		req.TargetCalories, req.Goal, restrictionList(req.Restrictions),
	)
	content, err := s.ai.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return &dto.CoachContentResponse{Content: content}, nil
}

func (s *coachService) Chat(ctx context.Context, profileId uuid.UUID, req *dto.ChatRequest) (*dto.CoachContentResponse, error) {
	if err := s.checkQuota(ctx, profileId, catalog.FeatureChatInteractions); err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(
		"Você é um nutricionista. Responda de forma objetiva: %s",
		req.Message,
	)
	content, err := s.ai.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return &dto.CoachContentResponse{Content: content}, nil
}

func (s *coachService) SearchRecipes(ctx context.Context, profileId uuid.UUID, req *dto.RecipeSearchRequest) (*dto.CoachContentResponse, error) {
	// The cache only saves backend calls; the quota slot is still charged
	// for the attempt, consistent with charge-on-attempt everywhere else.
	if err := s.checkQuota(ctx, profileId, catalog.FeatureRecipeSearches); err != nil {
		return nil, err
	}

	cacheKey := "recipes:" + strings.ToLower(strings.TrimSpace(req.Query))
	if cached, found := s.cache.Get(cacheKey); found {
		return &dto.CoachContentResponse{Content: cached.(string), Cached: true}, nil
	}

	prompt := fmt.Sprintf("Liste receitas saudáveis para: %s", req.Query)
	content, err := s.ai.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	s.cache.Set(cacheKey, content, gocache.DefaultExpiration)
	return &dto.CoachContentResponse{Content: content}, nil
}

func (s *coachService) AnalyzeMeal(ctx context.Context, profileId uuid.UUID, req *dto.MealAnalysisRequest) (*dto.CoachContentResponse, error) {
	// Image and text analyses are metered as separate features.
	if req.ImageBase64 != "" {
		if err := s.checkQuota(ctx, profileId, catalog.FeatureMealAnalysesImage); err != nil {
			return nil, err
		}
		content, err := s.ai.GenerateFromImage(ctx,
			"Analise esta refeição: estime calorias e macronutrientes.",
			req.ImageBase64,
		)
		if err != nil {
			return nil, err
		}
		return &dto.CoachContentResponse{Content: content}, nil
	}

	if req.Description == "" {
		return nil, fmt.Errorf("meal analysis requires a description or an image")
	}

	if err := s.checkQuota(ctx, profileId, catalog.FeatureMealAnalysesText); err != nil {
		return nil, err
	}
	prompt := fmt.Sprintf("Analise esta refeição e estime calorias e macronutrientes: %s", req.Description)
	content, err := s.ai.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return &dto.CoachContentResponse{Content: content}, nil
}

func (s *coachService) GenerateImage(ctx context.Context, profileId uuid.UUID, req *dto.ImageGenRequest) (*dto.CoachContentResponse, error) {
	if err := s.checkQuota(ctx, profileId, catalog.FeatureImageGen); err != nil {
		return nil, err
	}

	content, err := s.ai.GenerateContent(ctx, fmt.Sprintf("Gere uma imagem de: %s", req.Prompt))
	if err != nil {
		return nil, err
	}
	return &dto.CoachContentResponse{Content: content}, nil
}

func restrictionList(restrictions []string) string {
	if len(restrictions) == 0 {
		return "nenhuma"
	}
	return strings.Join(restrictions, ", ")
}
