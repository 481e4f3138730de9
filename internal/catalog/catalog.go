// FILE: internal/catalog/catalog.go
// Static plan catalog: tiers, prices and per-tier feature limits.
// Pure data consulted by the entitlement resolver and the pricing endpoints.
package catalog

import (
	"fmt"

	"ai-nutricoach-be/internal/entity"
)

// Feature keys for every metered AI-backed action.
const (
	FeatureDailyPlanGenerations  = "dailyPlanGenerations"
	FeatureWeeklyPlanGenerations = "weeklyPlanGenerations"
	FeatureChatInteractions      = "chatInteractions"
	FeatureRecipeSearches        = "recipeSearches"
	FeatureImageGen              = "imageGen"
	FeatureMealAnalysesImage     = "mealAnalysesImage"
	FeatureMealAnalysesText      = "mealAnalysesText"
)

// UnknownTierError is defensive only: tier keys come from static data or the
// profile's persisted plan, so hitting this indicates a programming error.
type UnknownTierError struct {
	Key entity.TierKey
}

func (e *UnknownTierError) Error() string {
	return fmt.Sprintf("unknown plan tier: %q", string(e.Key))
}

func feature(key, displayText string, limit int, period entity.Period) entity.FeatureDescriptor {
	return entity.FeatureDescriptor{
		Key:         key,
		DisplayText: displayText,
		Limit:       limit,
		Period:      period,
		Available:   true,
	}
}

func blocked(key, displayText string) entity.FeatureDescriptor {
	return entity.FeatureDescriptor{
		Key:         key,
		DisplayText: displayText,
		Available:   false,
	}
}

var tiers = map[entity.TierKey]*entity.PlanTier{
	entity.TierBasic: {
		Key:          entity.TierBasic,
		Name:         "Basic",
		Tagline:      "Comece sua jornada nutricional",
		PriceMonthly: 0,
		PriceAnnual:  0,
		Rank:         0,
		Features: map[string]entity.FeatureDescriptor{
			FeatureDailyPlanGenerations:  feature(FeatureDailyPlanGenerations, "Geração de plano alimentar diário", 1, entity.PeriodDay),
			FeatureWeeklyPlanGenerations: feature(FeatureWeeklyPlanGenerations, "Geração de plano alimentar semanal", 1, entity.PeriodWeek),
			FeatureChatInteractions:      feature(FeatureChatInteractions, "Conversas com o nutricionista IA", 5, entity.PeriodDay),
			FeatureRecipeSearches:        feature(FeatureRecipeSearches, "Busca de receitas", 3, entity.PeriodDay),
			FeatureImageGen:              blocked(FeatureImageGen, "Geração de imagens de receitas"),
			FeatureMealAnalysesImage:     feature(FeatureMealAnalysesImage, "Análise de imagem da refeição", 1, entity.PeriodDay),
			FeatureMealAnalysesText:      feature(FeatureMealAnalysesText, "Análise de refeição por texto", 3, entity.PeriodDay),
		},
	},
	entity.TierPro: {
		Key:          entity.TierPro,
		Name:         "Pro",
		Tagline:      "Acompanhamento completo com IA",
		PriceMonthly: 29.90,
		PriceAnnual:  299.00,
		Rank:         1,
		Features: map[string]entity.FeatureDescriptor{
			FeatureDailyPlanGenerations:  feature(FeatureDailyPlanGenerations, "Geração de plano alimentar diário", 5, entity.PeriodDay),
			FeatureWeeklyPlanGenerations: feature(FeatureWeeklyPlanGenerations, "Geração de plano alimentar semanal", 3, entity.PeriodWeek),
			FeatureChatInteractions:      feature(FeatureChatInteractions, "Conversas com o nutricionista IA", 50, entity.PeriodDay),
			FeatureRecipeSearches:        feature(FeatureRecipeSearches, "Busca de receitas", 20, entity.PeriodDay),
			FeatureImageGen:              feature(FeatureImageGen, "Geração de imagens de receitas", 5, entity.PeriodDay),
			FeatureMealAnalysesImage:     feature(FeatureMealAnalysesImage, "Análise de imagem da refeição", 10, entity.PeriodDay),
			FeatureMealAnalysesText:      feature(FeatureMealAnalysesText, "Análise de refeição por texto", entity.LimitUnlimited, entity.PeriodDay),
		},
	},
	entity.TierPremium: {
		Key:          entity.TierPremium,
		Name:         "Premium",
		Tagline:      "Sem limites para seus objetivos",
		PriceMonthly: 49.90,
		PriceAnnual:  499.00,
		Rank:         2,
		Features: map[string]entity.FeatureDescriptor{
			FeatureDailyPlanGenerations:  feature(FeatureDailyPlanGenerations, "Geração de plano alimentar diário", entity.LimitUnlimited, entity.PeriodDay),
			FeatureWeeklyPlanGenerations: feature(FeatureWeeklyPlanGenerations, "Geração de plano alimentar semanal", entity.LimitUnlimited, entity.PeriodWeek),
			FeatureChatInteractions:      feature(FeatureChatInteractions, "Conversas com o nutricionista IA", entity.LimitUnlimited, entity.PeriodDay),
			FeatureRecipeSearches:        feature(FeatureRecipeSearches, "Busca de receitas", entity.LimitUnlimited, entity.PeriodDay),
			FeatureImageGen:              feature(FeatureImageGen, "Geração de imagens de receitas", 20, entity.PeriodDay),
			FeatureMealAnalysesImage:     feature(FeatureMealAnalysesImage, "Análise de imagem da refeição", entity.LimitUnlimited, entity.PeriodDay),
			FeatureMealAnalysesText:      feature(FeatureMealAnalysesText, "Análise de refeição por texto", entity.LimitUnlimited, entity.PeriodDay),
		},
	},
}

// AllTiers returns the catalog ordered basic -> premium for the pricing modal.
func AllTiers() []*entity.PlanTier {
	return []*entity.PlanTier{
		tiers[entity.TierBasic],
		tiers[entity.TierPro],
		tiers[entity.TierPremium],
	}
}

// AllFeatureKeys returns every feature key defined anywhere in the catalog.
func AllFeatureKeys() []string {
	return []string{
		FeatureDailyPlanGenerations,
		FeatureWeeklyPlanGenerations,
		FeatureChatInteractions,
		FeatureRecipeSearches,
		FeatureImageGen,
		FeatureMealAnalysesImage,
		FeatureMealAnalysesText,
	}
}

func GetTier(key entity.TierKey) (*entity.PlanTier, error) {
	tier, ok := tiers[key]
	if !ok {
		return nil, &UnknownTierError{Key: key}
	}
	return tier, nil
}

// GetFeature looks up a feature descriptor on a tier. ok == false means the
// tier does not define the feature at all, which callers must treat the same
// as not available.
func GetFeature(tierKey entity.TierKey, featureKey string) (entity.FeatureDescriptor, bool) {
	tier, ok := tiers[tierKey]
	if !ok {
		return entity.FeatureDescriptor{}, false
	}
	desc, ok := tier.Features[featureKey]
	return desc, ok
}

// Compare orders tiers for upgrade/downgrade decisions:
// negative if a < b, zero if equal, positive if a > b.
// Unknown keys rank below every defined tier.
func Compare(a, b entity.TierKey) int {
	return rank(a) - rank(b)
}

func rank(key entity.TierKey) int {
	if tier, ok := tiers[key]; ok {
		return tier.Rank
	}
	return -1
}

// creditUnitPrices is the à-la-carte price per extra use, by feature key.
var creditUnitPrices = map[string]float64{
	FeatureDailyPlanGenerations:  2.90,
	FeatureWeeklyPlanGenerations: 4.90,
	FeatureChatInteractions:      0.49,
	FeatureRecipeSearches:        0.99,
	FeatureImageGen:              1.90,
	FeatureMealAnalysesImage:     1.90,
	FeatureMealAnalysesText:      0.99,
}

// CreditPackPrice prices a credit pack for checkout. Unknown keys fall back
// to the image price so a catalog mismatch never sells free credits.
func CreditPackPrice(featureKey string, packSize int) float64 {
	unit, ok := creditUnitPrices[featureKey]
	if !ok {
		unit = creditUnitPrices[FeatureImageGen]
	}
	return unit * float64(packSize)
}

// DisplayText returns the user-facing label for a feature key, falling back
// across tiers so upsell messages work even for features a tier lacks.
func DisplayText(featureKey string) string {
	for _, tier := range AllTiers() {
		if desc, ok := tier.Features[featureKey]; ok {
			return desc.DisplayText
		}
	}
	return featureKey
}
