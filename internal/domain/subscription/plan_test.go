package subscription

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/novastream-inc/novastream/internal/domain/subscription/valueobjects"
)

func TestFeaturesOf(t *testing.T) {
	tests := []struct {
		planName    vo.PlanName
		wantScreens int
		wantQuality vo.VideoQuality
		wantPrice   float64
	}{
		{vo.PlanBasic, 1, vo.QualityGood, 6.99},
		{vo.PlanStandard, 2, vo.QualityBetter, 15.49},
		{vo.PlanPremium, 4, vo.QualityBest, 22.99},
	}

	for _, tt := range tests {
		t.Run(tt.planName.String(), func(t *testing.T) {
			features, err := FeaturesOf(tt.planName)
			require.NoError(t, err)
			assert.Equal(t, tt.wantScreens, features.ScreensAllowed)
			assert.Equal(t, tt.wantQuality, features.VideoQuality)
			assert.InDelta(t, tt.wantPrice, features.MonthlyPrice, 0.001)
		})
	}
}

func TestFeaturesOf_UnknownPlan(t *testing.T) {
	_, err := FeaturesOf(vo.PlanName("Platinum"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidPlan)

	// Case-sensitive: no silent fallback to the Basic bundle.
	_, err = FeaturesOf(vo.PlanName("basic"))
	assert.ErrorIs(t, err, ErrInvalidPlan)
}

func TestCatalogPlans(t *testing.T) {
	plans := CatalogPlans()
	require.Len(t, plans, 3)

	assert.Equal(t, vo.PlanBasic, plans[0].Name)
	assert.Equal(t, vo.PlanStandard, plans[1].Name)
	assert.Equal(t, vo.PlanPremium, plans[2].Name)

	for _, plan := range plans {
		features, err := FeaturesOf(plan.Name)
		require.NoError(t, err)
		assert.Equal(t, features, plan.Features)
	}
}
