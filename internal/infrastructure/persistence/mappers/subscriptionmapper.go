package mappers

import (
	"fmt"

	"github.com/novastream-inc/novastream/internal/domain/subscription"
	vo "github.com/novastream-inc/novastream/internal/domain/subscription/valueobjects"
	"github.com/novastream-inc/novastream/internal/infrastructure/persistence/models"
	"github.com/novastream-inc/novastream/internal/shared/mapper"
)

type SubscriptionMapper interface {
	ToEntity(model *models.SubscriptionModel) (*subscription.Subscription, error)
	ToModel(entity *subscription.Subscription) (*models.SubscriptionModel, error)
	ToEntities(models []*models.SubscriptionModel) ([]*subscription.Subscription, error)
}

type SubscriptionMapperImpl struct{}

func NewSubscriptionMapper() SubscriptionMapper {
	return &SubscriptionMapperImpl{}
}

func (m *SubscriptionMapperImpl) ToEntity(model *models.SubscriptionModel) (*subscription.Subscription, error) {
	if model == nil {
		return nil, nil
	}

	status := vo.SubscriptionStatus(model.Status)
	if !vo.ValidStatuses[status] {
		return nil, fmt.Errorf("invalid subscription status: %s", model.Status)
	}

	planName := vo.PlanName(model.PlanName)
	if !planName.IsValid() {
		return nil, fmt.Errorf("invalid plan name: %s", model.PlanName)
	}

	quality := vo.VideoQuality(model.VideoQuality)
	if !quality.IsValid() {
		return nil, fmt.Errorf("invalid video quality: %s", model.VideoQuality)
	}

	entity, err := subscription.ReconstructSubscription(subscription.ReconstructParams{
		ID:             model.ID,
		SID:            model.SID,
		UserName:       model.UserName,
		PlanName:       planName,
		MonthlyPrice:   model.MonthlyPrice,
		Duration:       model.Duration,
		TotalAmount:    model.TotalAmount,
		VideoQuality:   quality,
		ScreensAllowed: model.ScreensAllowed,
		StartDate:      model.StartDate,
		EndDate:        model.EndDate,
		Status:         status,
		Version:        model.Version,
		CreatedAt:      model.CreatedAt,
		UpdatedAt:      model.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct subscription entity: %w", err)
	}

	return entity, nil
}

func (m *SubscriptionMapperImpl) ToModel(entity *subscription.Subscription) (*models.SubscriptionModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.SubscriptionModel{
		ID:             entity.ID(),
		SID:            entity.SID(),
		UserName:       entity.UserName(),
		PlanName:       entity.PlanName().String(),
		MonthlyPrice:   entity.MonthlyPrice(),
		Duration:       entity.Duration(),
		TotalAmount:    entity.TotalAmount(),
		VideoQuality:   entity.VideoQuality().String(),
		ScreensAllowed: entity.ScreensAllowed(),
		StartDate:      entity.StartDate(),
		EndDate:        entity.EndDate(),
		Status:         entity.Status().String(),
		Version:        entity.Version(),
		CreatedAt:      entity.CreatedAt(),
		UpdatedAt:      entity.UpdatedAt(),
	}, nil
}

func (m *SubscriptionMapperImpl) ToEntities(modelList []*models.SubscriptionModel) ([]*subscription.Subscription, error) {
	return mapper.MapSlicePtrWithID(modelList, m.ToEntity, func(model *models.SubscriptionModel) uint { return model.ID })
}
