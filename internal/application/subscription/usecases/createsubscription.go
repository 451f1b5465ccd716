package usecases

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/novastream-inc/novastream/internal/application/subscription/dto"
	"github.com/novastream-inc/novastream/internal/domain/subscription"
	vo "github.com/novastream-inc/novastream/internal/domain/subscription/valueobjects"
	"github.com/novastream-inc/novastream/internal/shared/biztime"
	"github.com/novastream-inc/novastream/internal/shared/errors"
	"github.com/novastream-inc/novastream/internal/shared/logger"
)

// CreateSubscriptionCommand carries the input for a new subscription. The
// monthly price is client-supplied (promotional pricing), not read from the
// catalog; duration is the number of months purchased.
type CreateSubscriptionCommand struct {
	UserName     string
	PlanName     string
	MonthlyPrice float64
	Duration     int
}

type CreateSubscriptionUseCase struct {
	subscriptionRepo subscription.SubscriptionRepository
	logger           logger.Interface
}

func NewCreateSubscriptionUseCase(
	subscriptionRepo subscription.SubscriptionRepository,
	logger logger.Interface,
) *CreateSubscriptionUseCase {
	return &CreateSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

func (uc *CreateSubscriptionUseCase) Execute(ctx context.Context, cmd CreateSubscriptionCommand) (*dto.SubscriptionDTO, error) {
	if strings.TrimSpace(cmd.UserName) == "" {
		return nil, errors.NewValidationError("Invalid or missing subscription data", "userName is required")
	}
	if cmd.MonthlyPrice < 0 {
		return nil, errors.NewValidationError("Invalid or missing subscription data", "monthlyPrice cannot be negative")
	}
	if cmd.Duration < 1 {
		return nil, errors.NewValidationError("Invalid or missing subscription data", "duration must be at least 1 month")
	}

	planName, err := vo.NewPlanName(cmd.PlanName)
	if err != nil {
		uc.logger.Warnw("rejected unknown plan name", "plan_name", cmd.PlanName)
		return nil, errors.NewValidationError("Invalid plan name", err.Error())
	}

	features, err := subscription.FeaturesOf(planName)
	if err != nil {
		return nil, errors.NewValidationError("Invalid plan name", err.Error())
	}

	sub, err := subscription.NewSubscription(cmd.UserName, planName, cmd.MonthlyPrice, cmd.Duration, features, biztime.NowUTC())
	if err != nil {
		uc.logger.Warnw("invalid create subscription command", "error", err, "user_name", cmd.UserName)
		return nil, errors.NewValidationError("Invalid or missing subscription data", err.Error())
	}

	if err := uc.subscriptionRepo.CreateIfNoActive(ctx, sub); err != nil {
		if stderrors.Is(err, subscription.ErrDuplicateActive) {
			uc.logger.Warnw("duplicate active subscription rejected", "user_name", sub.UserName())
			return nil, errors.NewConflictError("User already has an active subscription")
		}
		uc.logger.Errorw("failed to create subscription", "error", err, "user_name", sub.UserName())
		return nil, errors.NewStorageUnavailableError("Failed to create subscription", err.Error())
	}

	uc.logger.Infow("subscription created",
		"subscription_id", sub.SID(),
		"user_name", sub.UserName(),
		"plan_name", sub.PlanName(),
		"duration", sub.Duration(),
		"total_amount", sub.TotalAmount(),
	)

	return dto.FromEntity(sub), nil
}
