package catalog

import (
	"testing"

	"ai-nutricoach-be/internal/entity"
)

func TestGetTier(t *testing.T) {
	tier, err := GetTier(entity.TierPro)
	if err != nil {
		t.Fatalf("GetTier(pro) error: %v", err)
	}
	if tier.Name != "Pro" || tier.Rank != 1 {
		t.Errorf("unexpected pro tier: %+v", tier)
	}

	_, err = GetTier(entity.TierKey("enterprise"))
	if err == nil {
		t.Fatal("expected error for unknown tier")
	}
	if _, ok := err.(*UnknownTierError); !ok {
		t.Errorf("error type = %T, want *UnknownTierError", err)
	}
}

func TestAllTiersOrdering(t *testing.T) {
	tiers := AllTiers()
	if len(tiers) != 3 {
		t.Fatalf("len(AllTiers) = %d, want 3", len(tiers))
	}
	for i := 1; i < len(tiers); i++ {
		if tiers[i].Rank <= tiers[i-1].Rank {
			t.Errorf("tiers out of order at %d: %s rank %d after %s rank %d",
				i, tiers[i].Key, tiers[i].Rank, tiers[i-1].Key, tiers[i-1].Rank)
		}
	}
}

func TestEveryTierDefinesEveryFeature(t *testing.T) {
	for _, tier := range AllTiers() {
		for _, key := range AllFeatureKeys() {
			if _, ok := tier.Features[key]; !ok {
				t.Errorf("tier %s missing feature %s", tier.Key, key)
			}
		}
	}
}

func TestBasicLimits(t *testing.T) {
	tests := []struct {
		featureKey string
		limit      int
		period     entity.Period
	}{
		{FeatureDailyPlanGenerations, 1, entity.PeriodDay},
		{FeatureWeeklyPlanGenerations, 1, entity.PeriodWeek},
		{FeatureChatInteractions, 5, entity.PeriodDay},
		{FeatureMealAnalysesImage, 1, entity.PeriodDay},
	}

	for _, tt := range tests {
		desc, ok := GetFeature(entity.TierBasic, tt.featureKey)
		if !ok || !desc.Available {
			t.Errorf("basic should offer %s", tt.featureKey)
			continue
		}
		if desc.Limit != tt.limit || desc.Period != tt.period {
			t.Errorf("%s = %d/%s, want %d/%s", tt.featureKey, desc.Limit, desc.Period, tt.limit, tt.period)
		}
	}

	if desc, ok := GetFeature(entity.TierBasic, FeatureImageGen); !ok || desc.Available {
		t.Error("imageGen must be defined but unavailable on basic")
	}
}

func TestCompare(t *testing.T) {
	if Compare(entity.TierBasic, entity.TierPro) >= 0 {
		t.Error("basic should rank below pro")
	}
	if Compare(entity.TierPremium, entity.TierPro) <= 0 {
		t.Error("premium should rank above pro")
	}
	if Compare(entity.TierPro, entity.TierPro) != 0 {
		t.Error("tier should compare equal to itself")
	}
}

func TestCompareUnknownTier(t *testing.T) {
	unknown := entity.TierKey("enterprise")

	// Unknown keys rank below every defined tier instead of panicking
	if Compare(unknown, entity.TierBasic) >= 0 {
		t.Error("unknown tier should rank below basic")
	}
	if Compare(entity.TierBasic, unknown) <= 0 {
		t.Error("basic should rank above an unknown tier")
	}
	if Compare(unknown, entity.TierKey("other")) != 0 {
		t.Error("two unknown tiers should compare equal")
	}
}

func TestDisplayTextFallsBackAcrossTiers(t *testing.T) {
	// imageGen is blocked on basic but still needs a label for the upsell
	if got := DisplayText(FeatureImageGen); got != "Geração de imagens de receitas" {
		t.Errorf("DisplayText(imageGen) = %q", got)
	}
	if got := DisplayText("unknownKey"); got != "unknownKey" {
		t.Errorf("DisplayText(unknown) = %q, want the key itself", got)
	}
}

func TestCreditPackPrice(t *testing.T) {
	if got := CreditPackPrice(FeatureImageGen, 10); got != 19.0 {
		t.Errorf("CreditPackPrice(imageGen, 10) = %v, want 19.0", got)
	}
	// Unknown keys price as image credits rather than free
	if got := CreditPackPrice("unknownKey", 10); got != 19.0 {
		t.Errorf("CreditPackPrice(unknown, 10) = %v, want 19.0", got)
	}
}
