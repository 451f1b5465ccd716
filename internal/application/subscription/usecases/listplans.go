package usecases

import (
	"github.com/novastream-inc/novastream/internal/application/subscription/dto"
	"github.com/novastream-inc/novastream/internal/domain/subscription"
)

// ListPlansUseCase exposes the static plan catalog to the presentation
// layer so the plan table has a single source of truth.
type ListPlansUseCase struct{}

func NewListPlansUseCase() *ListPlansUseCase {
	return &ListPlansUseCase{}
}

func (uc *ListPlansUseCase) Execute() []dto.PlanDTO {
	plans := subscription.CatalogPlans()

	result := make([]dto.PlanDTO, 0, len(plans))
	for _, plan := range plans {
		result = append(result, dto.FromPlan(plan))
	}
	return result
}
