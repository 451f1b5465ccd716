package subscription

import (
	"fmt"
	"math"
	"strings"
	"time"

	vo "github.com/novastream-inc/novastream/internal/domain/subscription/valueobjects"
	"github.com/novastream-inc/novastream/internal/shared/id"
)

// approxMonth is the fixed 30-day month used to convert the remaining term
// into whole months on update. This is deliberately not calendar-accurate:
// end dates advance by calendar months while remaining value is counted in
// 30-day blocks, and both behaviors are load-bearing for computed totals.
const approxMonth = 30 * 24 * time.Hour

// Subscription is the aggregate root of the lifecycle engine. It is handed
// around by value semantics: usecases load it, apply transitions with an
// explicit now, and pass it back to the repository to persist.
type Subscription struct {
	id             uint
	sid            string
	userName       string
	planName       vo.PlanName
	monthlyPrice   float64
	duration       int
	totalAmount    float64
	videoQuality   vo.VideoQuality
	screensAllowed int
	startDate      time.Time
	endDate        time.Time
	status         vo.SubscriptionStatus
	version        int
	createdAt      time.Time
	updatedAt      time.Time
}

// NewSubscription creates an Active subscription starting at now and ending
// durationMonths calendar months later. Day-of-month overflow rolls into the
// following month per standard calendar addition.
func NewSubscription(userName string, planName vo.PlanName, monthlyPrice float64, durationMonths int, features PlanFeatures, now time.Time) (*Subscription, error) {
	userName = strings.TrimSpace(userName)
	if userName == "" {
		return nil, fmt.Errorf("%w: user name is required", ErrInvalidInput)
	}
	if !planName.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPlan, planName)
	}
	if monthlyPrice < 0 {
		return nil, fmt.Errorf("%w: monthly price cannot be negative", ErrInvalidInput)
	}
	if durationMonths < 1 {
		return nil, fmt.Errorf("%w: duration must be at least 1 month", ErrInvalidInput)
	}

	sid, err := id.GenerateWithPrefix(id.PrefixSubscription, id.DefaultLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate subscription ID: %w", err)
	}

	startDate := now
	s := &Subscription{
		sid:            sid,
		userName:       userName,
		planName:       planName,
		monthlyPrice:   monthlyPrice,
		duration:       durationMonths,
		totalAmount:    monthlyPrice * float64(durationMonths),
		videoQuality:   features.VideoQuality,
		screensAllowed: features.ScreensAllowed,
		startDate:      startDate,
		endDate:        startDate.AddDate(0, durationMonths, 0),
		status:         vo.StatusActive,
		version:        1,
		createdAt:      now,
		updatedAt:      now,
	}

	return s, nil
}

// ReconstructParams carries all persisted fields needed to rebuild a
// subscription from storage.
type ReconstructParams struct {
	ID             uint
	SID            string
	UserName       string
	PlanName       vo.PlanName
	MonthlyPrice   float64
	Duration       int
	TotalAmount    float64
	VideoQuality   vo.VideoQuality
	ScreensAllowed int
	StartDate      time.Time
	EndDate        time.Time
	Status         vo.SubscriptionStatus
	Version        int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ReconstructSubscription rebuilds a subscription from persistence.
func ReconstructSubscription(p ReconstructParams) (*Subscription, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("subscription ID cannot be zero")
	}
	if p.SID == "" {
		return nil, fmt.Errorf("subscription SID is required")
	}
	if p.UserName == "" {
		return nil, fmt.Errorf("user name is required")
	}
	if !p.PlanName.IsValid() {
		return nil, fmt.Errorf("invalid plan name: %s", p.PlanName)
	}
	if !vo.ValidStatuses[p.Status] {
		return nil, fmt.Errorf("invalid subscription status: %s", p.Status)
	}

	return &Subscription{
		id:             p.ID,
		sid:            p.SID,
		userName:       p.UserName,
		planName:       p.PlanName,
		monthlyPrice:   p.MonthlyPrice,
		duration:       p.Duration,
		totalAmount:    p.TotalAmount,
		videoQuality:   p.VideoQuality,
		screensAllowed: p.ScreensAllowed,
		startDate:      p.StartDate,
		endDate:        p.EndDate,
		status:         p.Status,
		version:        p.Version,
		createdAt:      p.CreatedAt,
		updatedAt:      p.UpdatedAt,
	}, nil
}

func (s *Subscription) ID() uint                         { return s.id }
func (s *Subscription) SID() string                      { return s.sid }
func (s *Subscription) UserName() string                 { return s.userName }
func (s *Subscription) PlanName() vo.PlanName            { return s.planName }
func (s *Subscription) MonthlyPrice() float64            { return s.monthlyPrice }
func (s *Subscription) Duration() int                    { return s.duration }
func (s *Subscription) TotalAmount() float64             { return s.totalAmount }
func (s *Subscription) VideoQuality() vo.VideoQuality    { return s.videoQuality }
func (s *Subscription) ScreensAllowed() int              { return s.screensAllowed }
func (s *Subscription) StartDate() time.Time             { return s.startDate }
func (s *Subscription) EndDate() time.Time               { return s.endDate }
func (s *Subscription) Status() vo.SubscriptionStatus    { return s.status }
func (s *Subscription) Version() int                     { return s.version }
func (s *Subscription) CreatedAt() time.Time             { return s.createdAt }
func (s *Subscription) UpdatedAt() time.Time             { return s.updatedAt }

// IsActive reports whether the subscription currently grants access.
func (s *Subscription) IsActive() bool {
	return s.status == vo.StatusActive
}

// SetID sets the subscription ID (only for persistence layer use).
func (s *Subscription) SetID(subscriptionID uint) error {
	if s.id != 0 {
		return fmt.Errorf("subscription ID is already set")
	}
	if subscriptionID == 0 {
		return fmt.Errorf("subscription ID cannot be zero")
	}
	s.id = subscriptionID
	return nil
}

// ChangePlan switches the subscription to a new tier, re-snapshotting the
// feature bundle. Only active subscriptions can change plan.
func (s *Subscription) ChangePlan(planName vo.PlanName, features PlanFeatures, now time.Time) error {
	if !s.status.CanUpdate() {
		return ErrSubscriptionNotActive
	}
	if !planName.IsValid() {
		return fmt.Errorf("%w: %s", ErrInvalidPlan, planName)
	}

	s.planName = planName
	s.videoQuality = features.VideoQuality
	s.screensAllowed = features.ScreensAllowed
	s.updatedAt = now
	s.version++

	return nil
}

// ChangeMonthlyPrice overwrites the price snapshot. Only active
// subscriptions can change price.
func (s *Subscription) ChangeMonthlyPrice(price float64, now time.Time) error {
	if !s.status.CanUpdate() {
		return ErrSubscriptionNotActive
	}
	if price < 0 {
		return fmt.Errorf("%w: monthly price cannot be negative", ErrInvalidInput)
	}

	s.monthlyPrice = price
	s.updatedAt = now
	s.version++

	return nil
}

// RemainingMonths counts the months left until the end date at now, rounded
// up in fixed 30-day blocks. A subscription past its end date has zero
// remaining months.
func (s *Subscription) RemainingMonths(now time.Time) int {
	if !s.endDate.After(now) {
		return 0
	}
	return int(math.Ceil(float64(s.endDate.Sub(now)) / float64(approxMonth)))
}

// ExtendAndReprice advances the end date by addedMonths calendar months
// (when positive) and recomputes the total as
// monthlyPrice x (remainingMonths + addedMonths). The total is a full
// replace of the previous amount, not an increment: it reflects the value of
// the remaining term plus the newly added months at the current price.
func (s *Subscription) ExtendAndReprice(addedMonths int, now time.Time) error {
	if !s.status.CanUpdate() {
		return ErrSubscriptionNotActive
	}

	remaining := s.RemainingMonths(now)

	if addedMonths < 0 {
		addedMonths = 0
	}
	if addedMonths > 0 {
		s.endDate = s.endDate.AddDate(0, addedMonths, 0)
	}

	s.totalAmount = s.monthlyPrice * float64(remaining+addedMonths)
	s.updatedAt = now
	s.version++

	return nil
}

// Cancel expires the subscription effective now. Cancelling an already
// expired subscription succeeds: the status stays Expired but the end date
// moves to the new cancellation time.
func (s *Subscription) Cancel(now time.Time) {
	s.status = vo.StatusExpired
	s.endDate = now
	s.updatedAt = now
	s.version++
}

// Validate performs domain-level validation of the aggregate state.
func (s *Subscription) Validate() error {
	if s.userName == "" {
		return fmt.Errorf("user name is required")
	}
	if !s.planName.IsValid() {
		return fmt.Errorf("invalid plan name: %s", s.planName)
	}
	if !vo.ValidStatuses[s.status] {
		return fmt.Errorf("invalid status: %s", s.status)
	}
	if s.monthlyPrice < 0 {
		return fmt.Errorf("monthly price cannot be negative")
	}
	if s.totalAmount < 0 {
		return fmt.Errorf("total amount cannot be negative")
	}
	if s.status == vo.StatusActive && !s.endDate.After(s.startDate) {
		return fmt.Errorf("end date must be after start date while active")
	}
	return nil
}
