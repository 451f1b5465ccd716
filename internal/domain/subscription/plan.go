package subscription

import (
	"fmt"

	vo "github.com/novastream-inc/novastream/internal/domain/subscription/valueobjects"
)

// PlanFeatures is the feature bundle granted by a plan tier.
type PlanFeatures struct {
	ScreensAllowed int
	VideoQuality   vo.VideoQuality
	MonthlyPrice   float64
}

// planCatalog maps every known tier to its feature bundle. The mapping is
// total over the PlanName enum; exactly one bundle per tier.
var planCatalog = map[vo.PlanName]PlanFeatures{
	vo.PlanBasic:    {ScreensAllowed: 1, VideoQuality: vo.QualityGood, MonthlyPrice: 6.99},
	vo.PlanStandard: {ScreensAllowed: 2, VideoQuality: vo.QualityBetter, MonthlyPrice: 15.49},
	vo.PlanPremium:  {ScreensAllowed: 4, VideoQuality: vo.QualityBest, MonthlyPrice: 22.99},
}

// FeaturesOf resolves the feature bundle for a plan tier. Unknown tiers fail
// with ErrInvalidPlan rather than defaulting to the Basic bundle; silent
// defaulting would corrupt persisted feature snapshots.
func FeaturesOf(name vo.PlanName) (PlanFeatures, error) {
	features, ok := planCatalog[name]
	if !ok {
		return PlanFeatures{}, fmt.Errorf("%w: %s", ErrInvalidPlan, name)
	}
	return features, nil
}

// Plan is a catalog entry exposed to the presentation layer.
type Plan struct {
	Name     vo.PlanName
	Features PlanFeatures
}

// CatalogPlans returns all known plans in ascending tier order.
func CatalogPlans() []Plan {
	names := []vo.PlanName{vo.PlanBasic, vo.PlanStandard, vo.PlanPremium}

	plans := make([]Plan, 0, len(names))
	for _, name := range names {
		plans = append(plans, Plan{Name: name, Features: planCatalog[name]})
	}
	return plans
}
