// FILE: internal/dto/coach_dto.go
// DTOs for AI-backed coaching actions
package dto

type DailyPlanRequest struct {
	TargetCalories int      `json:"target_calories" validate:"required,gt=0"`
	Goal           string   `json:"goal" validate:"required"` // cut, maintain, bulk
	Restrictions   []string `json:"restrictions,omitempty"`
}

type WeeklyPlanRequest struct {
	TargetCalories int      `json:"target_calories" validate:"required,gt=0"`
	Goal           string   `json:"goal" validate:"required"`
	Restrictions   []string `json:"restrictions,omitempty"`
}

type ChatRequest struct {
	Message string `json:"message" validate:"required"`
}

type RecipeSearchRequest struct {
	Query string `json:"query" validate:"required"`
}

type MealAnalysisRequest struct {
	// Exactly one of Description or ImageBase64 must be set; image analyses
	// are metered separately from text ones.
	Description string `json:"description,omitempty"`
	ImageBase64 string `json:"image_base64,omitempty"`
}

type ImageGenRequest struct {
	Prompt string `json:"prompt" validate:"required"`
}

// CoachContentResponse wraps whatever the AI backend returned. The content
// shape is opaque to this service.
type CoachContentResponse struct {
	Content string `json:"content"`
	Cached  bool   `json:"cached,omitempty"`
}
