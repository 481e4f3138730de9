package service

import (
	"context"
	"errors"
	"testing"

	"ai-nutricoach-be/internal/catalog"
	"ai-nutricoach-be/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAI scripts the backend: fails while failing == true, otherwise
// answers with a canned string and counts invocations.
type fakeAI struct {
	calls   int
	failing bool
}

func (f *fakeAI) GenerateContent(ctx context.Context, prompt string) (string, error) {
	f.calls++
	if f.failing {
		return "", errors.New("backend unavailable")
	}
	return "ok: " + prompt, nil
}

func (f *fakeAI) GenerateFromImage(ctx context.Context, prompt, imageBase64 string) (string, error) {
	f.calls++
	if f.failing {
		return "", errors.New("backend unavailable")
	}
	return "image analysis", nil
}

func newCoachFixture(t *testing.T) (*quotaFixture, *fakeAI, ICoachService) {
	t.Helper()
	f := newQuotaFixture(t)
	ai := &fakeAI{}
	coach := NewCoachService(f.quota, ai, nopLogger{})
	return f, ai, coach
}

func TestChatDeniedReturnsQuotaError(t *testing.T) {
	f, ai, coach := newCoachFixture(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := coach.Chat(ctx, f.profileId, &dto.ChatRequest{Message: "oi"})
		require.NoError(t, err)
	}

	_, err := coach.Chat(ctx, f.profileId, &dto.ChatRequest{Message: "oi"})
	var denied *dto.QuotaDeniedError
	require.ErrorAs(t, err, &denied)
	assert.Equal(t, dto.DenyReasonLimitExceeded, denied.Result.Reason)

	// The backend was never consulted for the denied call
	assert.Equal(t, 5, ai.calls)
}

func TestFailedGenerationStillConsumesTheSlot(t *testing.T) {
	f, ai, coach := newCoachFixture(t)
	ctx := context.Background()
	ai.failing = true

	// Basic allows exactly one daily plan per day
	_, err := coach.GenerateDailyPlan(ctx, f.profileId, &dto.DailyPlanRequest{TargetCalories: 2000, Goal: "emagrecer"})
	require.Error(t, err)

	p := f.profile(t)
	assert.Equal(t, 1, p.Daily.Counts[catalog.FeatureDailyPlanGenerations], "the attempt is charged even when the backend fails")

	ai.failing = false
	_, err = coach.GenerateDailyPlan(ctx, f.profileId, &dto.DailyPlanRequest{TargetCalories: 2000, Goal: "emagrecer"})
	var denied *dto.QuotaDeniedError
	require.ErrorAs(t, err, &denied)
}

func TestMealAnalysisRoutesImageAndText(t *testing.T) {
	f, _, coach := newCoachFixture(t)
	ctx := context.Background()

	_, err := coach.AnalyzeMeal(ctx, f.profileId, &dto.MealAnalysisRequest{ImageBase64: "aGVsbG8="})
	require.NoError(t, err)

	_, err = coach.AnalyzeMeal(ctx, f.profileId, &dto.MealAnalysisRequest{Description: "arroz, feijão e frango"})
	require.NoError(t, err)

	p := f.profile(t)
	assert.Equal(t, 1, p.Daily.Counts[catalog.FeatureMealAnalysesImage])
	assert.Equal(t, 1, p.Daily.Counts[catalog.FeatureMealAnalysesText])
}

func TestMealAnalysisRequiresInput(t *testing.T) {
	f, ai, coach := newCoachFixture(t)

	_, err := coach.AnalyzeMeal(context.Background(), f.profileId, &dto.MealAnalysisRequest{})
	require.Error(t, err)
	assert.Zero(t, ai.calls)

	// An empty request must not consume quota either
	p := f.profile(t)
	assert.Zero(t, p.Daily.Counts[catalog.FeatureMealAnalysesImage])
	assert.Zero(t, p.Daily.Counts[catalog.FeatureMealAnalysesText])
}

func TestRecipeSearchCachesButStillCharges(t *testing.T) {
	f, ai, coach := newCoachFixture(t)
	ctx := context.Background()

	first, err := coach.SearchRecipes(ctx, f.profileId, &dto.RecipeSearchRequest{Query: "Salada Caesar"})
	require.NoError(t, err)
	assert.False(t, first.Cached)

	second, err := coach.SearchRecipes(ctx, f.profileId, &dto.RecipeSearchRequest{Query: "salada caesar"})
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Content, second.Content)

	// One backend call, two quota charges
	assert.Equal(t, 1, ai.calls)
	p := f.profile(t)
	assert.Equal(t, 2, p.Daily.Counts[catalog.FeatureRecipeSearches])
}

func TestImageGenBlockedOnBasic(t *testing.T) {
	f, ai, coach := newCoachFixture(t)

	_, err := coach.GenerateImage(context.Background(), f.profileId, &dto.ImageGenRequest{Prompt: "prato saudável"})
	var denied *dto.QuotaDeniedError
	require.ErrorAs(t, err, &denied)
	assert.Equal(t, dto.DenyReasonNotAvailable, denied.Result.Reason)
	assert.Zero(t, ai.calls)
}
