package usecases

import (
	"context"

	"github.com/novastream-inc/novastream/internal/application/subscription/dto"
	"github.com/novastream-inc/novastream/internal/domain/subscription"
	"github.com/novastream-inc/novastream/internal/shared/errors"
	"github.com/novastream-inc/novastream/internal/shared/logger"
)

type GetSubscriptionUseCase struct {
	subscriptionRepo subscription.SubscriptionRepository
	logger           logger.Interface
}

func NewGetSubscriptionUseCase(
	subscriptionRepo subscription.SubscriptionRepository,
	logger logger.Interface,
) *GetSubscriptionUseCase {
	return &GetSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

func (uc *GetSubscriptionUseCase) Execute(ctx context.Context, subscriptionID string) (*dto.SubscriptionDTO, error) {
	if subscriptionID == "" {
		return nil, errors.NewValidationError("Missing subscription ID")
	}

	sub, err := uc.subscriptionRepo.GetBySID(ctx, subscriptionID)
	if err != nil {
		uc.logger.Errorw("failed to get subscription", "error", err, "subscription_id", subscriptionID)
		return nil, errors.NewStorageUnavailableError("Failed to get subscription", err.Error())
	}
	if sub == nil {
		return nil, errors.NewNotFoundError("Subscription not found")
	}

	return dto.FromEntity(sub), nil
}
