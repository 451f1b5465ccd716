package usecases

import (
	"context"

	"github.com/novastream-inc/novastream/internal/application/subscription/dto"
	"github.com/novastream-inc/novastream/internal/domain/subscription"
	"github.com/novastream-inc/novastream/internal/shared/errors"
	"github.com/novastream-inc/novastream/internal/shared/logger"
)

type ListSubscriptionsByDurationUseCase struct {
	subscriptionRepo subscription.SubscriptionRepository
	logger           logger.Interface
}

func NewListSubscriptionsByDurationUseCase(
	subscriptionRepo subscription.SubscriptionRepository,
	logger logger.Interface,
) *ListSubscriptionsByDurationUseCase {
	return &ListSubscriptionsByDurationUseCase{
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

// Execute returns subscriptions purchased for exactly the given number of
// months, most recently created first. Used for fixed-term cohort reports
// such as "all 6-month subscribers".
func (uc *ListSubscriptionsByDurationUseCase) Execute(ctx context.Context, months int) ([]*dto.SubscriptionDTO, error) {
	if months < 1 {
		return nil, errors.NewValidationError("Invalid duration", "duration must be at least 1 month")
	}

	subs, err := uc.subscriptionRepo.GetByDuration(ctx, months)
	if err != nil {
		uc.logger.Errorw("failed to list subscriptions by duration", "error", err, "duration", months)
		return nil, errors.NewStorageUnavailableError("Failed to fetch subscriptions", err.Error())
	}

	return dto.FromEntities(subs), nil
}
