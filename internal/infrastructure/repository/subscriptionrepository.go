package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/novastream-inc/novastream/internal/domain/subscription"
	vo "github.com/novastream-inc/novastream/internal/domain/subscription/valueobjects"
	"github.com/novastream-inc/novastream/internal/infrastructure/persistence/mappers"
	"github.com/novastream-inc/novastream/internal/infrastructure/persistence/models"
	"github.com/novastream-inc/novastream/internal/shared/logger"
)

type SubscriptionRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.SubscriptionMapper
	logger logger.Interface
}

func NewSubscriptionRepository(
	db *gorm.DB,
	logger logger.Interface,
) subscription.SubscriptionRepository {
	return &SubscriptionRepositoryImpl{
		db:     db,
		mapper: mappers.NewSubscriptionMapper(),
		logger: logger,
	}
}

// CreateIfNoActive inserts the subscription unless the user already holds an
// Active one. The duplicate check and the insert run in one transaction with
// the user's rows locked, so two concurrent creates for the same user
// serialize and exactly one succeeds. On MySQL the uq_active_user generated
// column index backstops this at the schema level.
func (r *SubscriptionRepositoryImpl) CreateIfNoActive(ctx context.Context, subscriptionEntity *subscription.Subscription) error {
	model, err := r.mapper.ToModel(subscriptionEntity)
	if err != nil {
		r.logger.Errorw("failed to map subscription entity to model", "error", err)
		return fmt.Errorf("failed to map subscription entity: %w", err)
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx.Model(&models.SubscriptionModel{}).
			Where("user_name = ? AND status = ?", model.UserName, vo.StatusActive.String())
		// Row locks need MySQL; sqlite serializes writers on its own.
		if tx.Dialector.Name() == "mysql" {
			query = query.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var count int64
		if err := query.Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check active subscription: %w", err)
		}
		if count > 0 {
			return subscription.ErrDuplicateActive
		}

		if err := tx.Create(model).Error; err != nil {
			// The uq_active_user index can reject a racing insert that the
			// locked count did not see; that loss is still a duplicate, not
			// a storage failure.
			if isDuplicateKeyError(err) {
				return subscription.ErrDuplicateActive
			}
			return fmt.Errorf("failed to create subscription: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, subscription.ErrDuplicateActive) {
			return err
		}
		r.logger.Errorw("failed to create subscription in database", "error", err, "user_name", model.UserName)
		return err
	}

	if err := subscriptionEntity.SetID(model.ID); err != nil {
		r.logger.Errorw("failed to set subscription ID", "error", err)
		return fmt.Errorf("failed to set subscription ID: %w", err)
	}

	r.logger.Infow("subscription created successfully", "id", model.ID, "sid", model.SID, "user_name", model.UserName)
	return nil
}

// isDuplicateKeyError reports whether err is a unique index violation.
// Matches MySQL error 1062 and sqlite constraint wording alongside gorm's
// translated sentinel.
func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

func (r *SubscriptionRepositoryImpl) GetByID(ctx context.Context, id uint) (*subscription.Subscription, error) {
	var model models.SubscriptionModel

	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get subscription by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	entity, err := r.mapper.ToEntity(&model)
	if err != nil {
		r.logger.Errorw("failed to map subscription model to entity", "id", id, "error", err)
		return nil, fmt.Errorf("failed to map subscription: %w", err)
	}

	return entity, nil
}

func (r *SubscriptionRepositoryImpl) GetBySID(ctx context.Context, sid string) (*subscription.Subscription, error) {
	var model models.SubscriptionModel

	if err := r.db.WithContext(ctx).Where("sid = ?", sid).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get subscription by SID", "sid", sid, "error", err)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	entity, err := r.mapper.ToEntity(&model)
	if err != nil {
		r.logger.Errorw("failed to map subscription model to entity", "sid", sid, "error", err)
		return nil, fmt.Errorf("failed to map subscription: %w", err)
	}

	return entity, nil
}

func (r *SubscriptionRepositoryImpl) GetByUserName(ctx context.Context, userName string) ([]*subscription.Subscription, error) {
	var modelList []*models.SubscriptionModel

	if err := r.db.WithContext(ctx).Where("user_name = ?", userName).Order("created_at DESC").Find(&modelList).Error; err != nil {
		r.logger.Errorw("failed to get subscriptions by user name", "user_name", userName, "error", err)
		return nil, fmt.Errorf("failed to get subscriptions: %w", err)
	}

	entities, err := r.mapper.ToEntities(modelList)
	if err != nil {
		r.logger.Errorw("failed to map subscription models to entities", "user_name", userName, "error", err)
		return nil, fmt.Errorf("failed to map subscriptions: %w", err)
	}

	return entities, nil
}

func (r *SubscriptionRepositoryImpl) GetByDuration(ctx context.Context, months int) ([]*subscription.Subscription, error) {
	var modelList []*models.SubscriptionModel

	if err := r.db.WithContext(ctx).Where("duration = ?", months).Order("created_at DESC").Find(&modelList).Error; err != nil {
		r.logger.Errorw("failed to get subscriptions by duration", "duration", months, "error", err)
		return nil, fmt.Errorf("failed to get subscriptions: %w", err)
	}

	entities, err := r.mapper.ToEntities(modelList)
	if err != nil {
		r.logger.Errorw("failed to map subscription models to entities", "duration", months, "error", err)
		return nil, fmt.Errorf("failed to map subscriptions: %w", err)
	}

	return entities, nil
}

func (r *SubscriptionRepositoryImpl) Update(ctx context.Context, subscriptionEntity *subscription.Subscription) error {
	model, err := r.mapper.ToModel(subscriptionEntity)
	if err != nil {
		r.logger.Errorw("failed to map subscription entity to model", "error", err)
		return fmt.Errorf("failed to map subscription entity: %w", err)
	}

	result := r.db.WithContext(ctx).Model(&models.SubscriptionModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]any{
			"plan_name":       model.PlanName,
			"monthly_price":   model.MonthlyPrice,
			"total_amount":    model.TotalAmount,
			"video_quality":   model.VideoQuality,
			"screens_allowed": model.ScreensAllowed,
			"end_date":        model.EndDate,
			"status":          model.Status,
			"version":         model.Version,
			"updated_at":      model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update subscription", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update subscription: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("subscription %d not found for update", model.ID)
	}

	r.logger.Infow("subscription updated successfully", "id", model.ID, "sid", model.SID)
	return nil
}
