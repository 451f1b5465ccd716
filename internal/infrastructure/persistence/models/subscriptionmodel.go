package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/novastream-inc/novastream/internal/shared/constants"
)

// SubscriptionModel represents the database persistence model for subscriptions
// This is the anti-corruption layer between domain and database.
//
// Duplicate-active prevention is enforced by uq_active_user, a unique index
// over a generated column that holds the user name while status is Active and
// NULL otherwise (see the create_subscriptions migration). The column is
// database-managed and deliberately absent from this struct.
type SubscriptionModel struct {
	ID             uint      `gorm:"primarykey"`
	SID            string    `gorm:"uniqueIndex;not null;size:50;comment:Stripe-style ID: sub_xxx"`
	UserName       string    `gorm:"not null;size:100;index:idx_user_name"`
	PlanName       string    `gorm:"not null;size:20"`
	MonthlyPrice   float64   `gorm:"not null;type:decimal(10,2)"`
	Duration       int       `gorm:"not null;index:idx_duration;comment:purchased months, never rewritten"`
	TotalAmount    float64   `gorm:"not null;type:decimal(10,2)"`
	VideoQuality   string    `gorm:"not null;size:10"`
	ScreensAllowed int       `gorm:"not null"`
	StartDate      time.Time `gorm:"not null"`
	EndDate        time.Time `gorm:"not null;index:idx_end_date"`
	Status         string    `gorm:"not null;size:20;index:idx_status"`
	Version        int       `gorm:"not null;default:1"`
	CreatedAt      time.Time `gorm:"index:idx_created_at"`
	UpdatedAt      time.Time
}

// TableName specifies the table name for GORM
func (SubscriptionModel) TableName() string {
	return constants.TableSubscriptions
}

// BeforeCreate hook for GORM
func (s *SubscriptionModel) BeforeCreate(tx *gorm.DB) error {
	if s.Version == 0 {
		s.Version = 1
	}
	return nil
}
