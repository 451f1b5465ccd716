package usecases

import (
	"context"
	"strings"

	"github.com/novastream-inc/novastream/internal/application/subscription/dto"
	"github.com/novastream-inc/novastream/internal/domain/subscription"
	"github.com/novastream-inc/novastream/internal/shared/errors"
	"github.com/novastream-inc/novastream/internal/shared/logger"
)

type ListUserSubscriptionsUseCase struct {
	subscriptionRepo subscription.SubscriptionRepository
	logger           logger.Interface
}

func NewListUserSubscriptionsUseCase(
	subscriptionRepo subscription.SubscriptionRepository,
	logger logger.Interface,
) *ListUserSubscriptionsUseCase {
	return &ListUserSubscriptionsUseCase{
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

// Execute returns the user's subscription history, most recently created
// first. Pass-through to the store; no lifecycle logic here.
func (uc *ListUserSubscriptionsUseCase) Execute(ctx context.Context, userName string) ([]*dto.SubscriptionDTO, error) {
	userName = strings.TrimSpace(userName)
	if userName == "" {
		return nil, errors.NewValidationError("Missing userName parameter")
	}

	subs, err := uc.subscriptionRepo.GetByUserName(ctx, userName)
	if err != nil {
		uc.logger.Errorw("failed to list subscriptions by user", "error", err, "user_name", userName)
		return nil, errors.NewStorageUnavailableError("Failed to fetch subscriptions", err.Error())
	}

	return dto.FromEntities(subs), nil
}
