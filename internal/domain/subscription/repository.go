package subscription

import "context"

// SubscriptionRepository is the storage boundary the lifecycle depends on.
type SubscriptionRepository interface {
	// CreateIfNoActive atomically inserts the subscription unless the user
	// already has an Active one, in which case it returns ErrDuplicateActive.
	// The check and the insert are a single storage-level operation so two
	// concurrent creates for the same user cannot both succeed.
	CreateIfNoActive(ctx context.Context, subscription *Subscription) error

	GetByID(ctx context.Context, id uint) (*Subscription, error)
	GetBySID(ctx context.Context, sid string) (*Subscription, error)

	// GetByUserName returns all of the user's subscriptions, most recently
	// created first.
	GetByUserName(ctx context.Context, userName string) ([]*Subscription, error)

	// GetByDuration returns subscriptions whose purchased duration matches
	// exactly, most recently created first.
	GetByDuration(ctx context.Context, months int) ([]*Subscription, error)

	Update(ctx context.Context, subscription *Subscription) error
}
