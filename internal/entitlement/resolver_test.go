package entitlement

import (
	"testing"
	"time"

	"ai-nutricoach-be/internal/catalog"
	"ai-nutricoach-be/internal/entity"
)

func trialSub(trialEnd time.Time) entity.SubscriptionState {
	return entity.SubscriptionState{IsSubscribed: false, TrialEndDate: trialEnd}
}

func subscribedTo(tier entity.TierKey) entity.SubscriptionState {
	return entity.SubscriptionState{IsSubscribed: true, CurrentPlan: &tier}
}

func TestEffectiveTier(t *testing.T) {
	now := date(2026, time.August, 29, 12)

	tests := []struct {
		name string
		sub  entity.SubscriptionState
		want entity.TierKey
	}{
		{"active trial supersedes basic", trialSub(now.Add(24 * time.Hour)), entity.TierPro},
		{"expired trial falls back to basic", trialSub(now.Add(-time.Minute)), entity.TierBasic},
		{"trial ending exactly now is expired", trialSub(now), entity.TierBasic},
		{"subscription wins over trial date", func() entity.SubscriptionState {
			s := subscribedTo(entity.TierPremium)
			s.TrialEndDate = now.Add(24 * time.Hour)
			return s
		}(), entity.TierPremium},
		{"subscribed pro", subscribedTo(entity.TierPro), entity.TierPro},
		{"subscribed without plan falls back to basic", entity.SubscriptionState{IsSubscribed: true}, entity.TierBasic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EffectiveTier(tt.sub, now); got != tt.want {
				t.Errorf("EffectiveTier = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveFeature(t *testing.T) {
	now := date(2026, time.August, 29, 12)
	expiredTrial := trialSub(now.Add(-time.Hour))

	t.Run("metered feature on basic", func(t *testing.T) {
		res := ResolveFeature(expiredTrial, catalog.FeatureMealAnalysesImage, now)
		if res.Blocked || res.Unlimited {
			t.Fatalf("expected metered resolution, got %+v", res)
		}
		if res.Limit != 1 || res.Period != entity.PeriodDay {
			t.Errorf("Limit/Period = %d/%s, want 1/DAY", res.Limit, res.Period)
		}
		if res.DisplayText != "Análise de imagem da refeição" {
			t.Errorf("DisplayText = %q", res.DisplayText)
		}
	})

	t.Run("blocked feature carries display text for upsell", func(t *testing.T) {
		res := ResolveFeature(expiredTrial, catalog.FeatureImageGen, now)
		if !res.Blocked {
			t.Fatal("expected imageGen blocked on basic")
		}
		if res.DisplayText == "" || res.DisplayText == catalog.FeatureImageGen {
			t.Errorf("DisplayText = %q, want catalog label", res.DisplayText)
		}
	})

	t.Run("unknown feature key resolves to blocked", func(t *testing.T) {
		res := ResolveFeature(expiredTrial, "videoGenerations", now)
		if !res.Blocked {
			t.Fatal("expected unknown key blocked")
		}
	})

	t.Run("unlimited feature on premium", func(t *testing.T) {
		res := ResolveFeature(subscribedTo(entity.TierPremium), catalog.FeatureChatInteractions, now)
		if !res.Unlimited {
			t.Fatalf("expected unlimited, got %+v", res)
		}
	})

	t.Run("trial resolves against pro limits", func(t *testing.T) {
		res := ResolveFeature(trialSub(now.Add(time.Hour)), catalog.FeatureImageGen, now)
		if res.Blocked {
			t.Fatal("imageGen should be available during trial")
		}
		if res.Limit != 5 {
			t.Errorf("Limit = %d, want pro limit 5", res.Limit)
		}
	})
}
