package usecases

import (
	"context"

	"github.com/novastream-inc/novastream/internal/application/subscription/dto"
	"github.com/novastream-inc/novastream/internal/domain/subscription"
	"github.com/novastream-inc/novastream/internal/shared/biztime"
	"github.com/novastream-inc/novastream/internal/shared/errors"
	"github.com/novastream-inc/novastream/internal/shared/logger"
)

type CancelSubscriptionCommand struct {
	SubscriptionID string
}

type CancelSubscriptionUseCase struct {
	subscriptionRepo subscription.SubscriptionRepository
	logger           logger.Interface
}

func NewCancelSubscriptionUseCase(
	subscriptionRepo subscription.SubscriptionRepository,
	logger logger.Interface,
) *CancelSubscriptionUseCase {
	return &CancelSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

// Execute expires the subscription effective now. There is no status
// precondition: cancelling an already expired subscription succeeds and
// refreshes its end date to the new cancellation time.
func (uc *CancelSubscriptionUseCase) Execute(ctx context.Context, cmd CancelSubscriptionCommand) (*dto.SubscriptionDTO, error) {
	if cmd.SubscriptionID == "" {
		return nil, errors.NewValidationError("Missing subscription ID")
	}

	sub, err := uc.subscriptionRepo.GetBySID(ctx, cmd.SubscriptionID)
	if err != nil {
		uc.logger.Errorw("failed to get subscription", "error", err, "subscription_id", cmd.SubscriptionID)
		return nil, errors.NewStorageUnavailableError("Failed to get subscription", err.Error())
	}
	if sub == nil {
		return nil, errors.NewNotFoundError("Subscription not found")
	}

	sub.Cancel(biztime.NowUTC())

	if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
		uc.logger.Errorw("failed to save cancelled subscription", "error", err, "subscription_id", cmd.SubscriptionID)
		return nil, errors.NewStorageUnavailableError("Failed to cancel subscription", err.Error())
	}

	uc.logger.Infow("subscription cancelled",
		"subscription_id", sub.SID(),
		"user_name", sub.UserName(),
		"end_date", sub.EndDate(),
	)

	return dto.FromEntity(sub), nil
}
