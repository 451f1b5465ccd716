package usecases

import (
	"context"
	stderrors "errors"

	"github.com/novastream-inc/novastream/internal/application/subscription/dto"
	"github.com/novastream-inc/novastream/internal/domain/subscription"
	vo "github.com/novastream-inc/novastream/internal/domain/subscription/valueobjects"
	"github.com/novastream-inc/novastream/internal/shared/biztime"
	"github.com/novastream-inc/novastream/internal/shared/errors"
	"github.com/novastream-inc/novastream/internal/shared/logger"
)

// UpdateSubscriptionCommand carries an update to an active subscription.
// Nil fields are left untouched. Duration is the number of months to add to
// the current end date, not a new total; the stored purchase duration is
// unchanged.
type UpdateSubscriptionCommand struct {
	SubscriptionID string
	PlanName       *string
	MonthlyPrice   *float64
	Duration       *int
}

type UpdateSubscriptionUseCase struct {
	subscriptionRepo subscription.SubscriptionRepository
	logger           logger.Interface
}

func NewUpdateSubscriptionUseCase(
	subscriptionRepo subscription.SubscriptionRepository,
	logger logger.Interface,
) *UpdateSubscriptionUseCase {
	return &UpdateSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

func (uc *UpdateSubscriptionUseCase) Execute(ctx context.Context, cmd UpdateSubscriptionCommand) (*dto.SubscriptionDTO, error) {
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

	if !sub.IsActive() {
		return nil, errors.NewConflictError("Only active subscriptions can be updated")
	}

	now := biztime.NowUTC()

	if cmd.PlanName != nil {
		planName, err := vo.NewPlanName(*cmd.PlanName)
		if err != nil {
			uc.logger.Warnw("rejected unknown plan name on update", "plan_name", *cmd.PlanName, "subscription_id", cmd.SubscriptionID)
			return nil, errors.NewValidationError("Invalid plan name", err.Error())
		}

		features, err := subscription.FeaturesOf(planName)
		if err != nil {
			return nil, errors.NewValidationError("Invalid plan name", err.Error())
		}

		if err := sub.ChangePlan(planName, features, now); err != nil {
			return nil, mapDomainError(err)
		}
	}

	if cmd.MonthlyPrice != nil {
		if err := sub.ChangeMonthlyPrice(*cmd.MonthlyPrice, now); err != nil {
			return nil, mapDomainError(err)
		}
	}

	// Non-positive added durations are treated as "no extension"; the total
	// is still recomputed from the remaining term at the current price.
	addedMonths := 0
	if cmd.Duration != nil && *cmd.Duration > 0 {
		addedMonths = *cmd.Duration
	}

	if err := sub.ExtendAndReprice(addedMonths, now); err != nil {
		return nil, mapDomainError(err)
	}

	if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
		uc.logger.Errorw("failed to save subscription", "error", err, "subscription_id", cmd.SubscriptionID)
		return nil, errors.NewStorageUnavailableError("Failed to update subscription", err.Error())
	}

	uc.logger.Infow("subscription updated",
		"subscription_id", sub.SID(),
		"plan_name", sub.PlanName(),
		"added_months", addedMonths,
		"total_amount", sub.TotalAmount(),
	)

	return dto.FromEntity(sub), nil
}

// mapDomainError translates domain sentinel errors into the boundary error
// taxonomy.
func mapDomainError(err error) error {
	switch {
	case stderrors.Is(err, subscription.ErrSubscriptionNotActive):
		return errors.NewConflictError("Only active subscriptions can be updated")
	case stderrors.Is(err, subscription.ErrInvalidPlan):
		return errors.NewValidationError("Invalid plan name", err.Error())
	case stderrors.Is(err, subscription.ErrInvalidInput):
		return errors.NewValidationError("Invalid or missing subscription data", err.Error())
	default:
		return errors.NewInternalError("Subscription update failed", err.Error())
	}
}
