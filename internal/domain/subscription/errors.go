package subscription

import "errors"

var (
	ErrSubscriptionNotFound  = errors.New("subscription not found")
	ErrSubscriptionNotActive = errors.New("subscription is not active")
	ErrDuplicateActive       = errors.New("user already has an active subscription")
	ErrInvalidPlan           = errors.New("invalid plan name")
	ErrInvalidInput          = errors.New("invalid subscription data")
)
