// FILE: internal/dto/plan_dto.go
// DTOs for the public pricing catalog
package dto

type PlanResponse struct {
	Key           string            `json:"key"`
	Name          string            `json:"name"`
	Tagline       string            `json:"tagline"`
	PriceMonthly  float64           `json:"price_monthly"`
	PriceAnnual   float64           `json:"price_annual"`
	IsMostPopular bool              `json:"is_most_popular"`
	Features      []PlanFeatureItem `json:"features"`
}

type PlanFeatureItem struct {
	Key         string `json:"key"`
	DisplayText string `json:"display_text"`
	Available   bool   `json:"available"`
	Limit       int    `json:"limit"` // -1 = unlimited
	Period      string `json:"period,omitempty"`
}
