package dto

import (
	"time"

	"github.com/novastream-inc/novastream/internal/domain/subscription"
)

// SubscriptionDTO is the wire representation of a subscription. Field names
// are camelCase to match the persisted record layout consumed by existing
// clients.
type SubscriptionDTO struct {
	ID             string    `json:"id"`
	UserName       string    `json:"userName"`
	PlanName       string    `json:"planName"`
	MonthlyPrice   float64   `json:"monthlyPrice"`
	Duration       int       `json:"duration"`
	TotalAmount    float64   `json:"totalAmount"`
	VideoQuality   string    `json:"videoQuality"`
	ScreensAllowed int       `json:"screensAllowed"`
	StartDate      time.Time `json:"startDate"`
	EndDate        time.Time `json:"endDate"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// FromEntity converts a domain subscription to its DTO. The opaque SID is
// the only identifier exposed over the wire.
func FromEntity(sub *subscription.Subscription) *SubscriptionDTO {
	if sub == nil {
		return nil
	}

	return &SubscriptionDTO{
		ID:             sub.SID(),
		UserName:       sub.UserName(),
		PlanName:       sub.PlanName().String(),
		MonthlyPrice:   sub.MonthlyPrice(),
		Duration:       sub.Duration(),
		TotalAmount:    sub.TotalAmount(),
		VideoQuality:   sub.VideoQuality().String(),
		ScreensAllowed: sub.ScreensAllowed(),
		StartDate:      sub.StartDate(),
		EndDate:        sub.EndDate(),
		Status:         sub.Status().String(),
		CreatedAt:      sub.CreatedAt(),
		UpdatedAt:      sub.UpdatedAt(),
	}
}

// FromEntities converts a slice of domain subscriptions, preserving order.
func FromEntities(subs []*subscription.Subscription) []*SubscriptionDTO {
	dtos := make([]*SubscriptionDTO, 0, len(subs))
	for _, sub := range subs {
		dtos = append(dtos, FromEntity(sub))
	}
	return dtos
}

// PlanDTO is the wire representation of a catalog plan.
type PlanDTO struct {
	Name           string  `json:"name"`
	MonthlyPrice   float64 `json:"monthlyPrice"`
	VideoQuality   string  `json:"videoQuality"`
	ScreensAllowed int     `json:"screensAllowed"`
}

// FromPlan converts a catalog plan to its DTO.
func FromPlan(plan subscription.Plan) PlanDTO {
	return PlanDTO{
		Name:           plan.Name.String(),
		MonthlyPrice:   plan.Features.MonthlyPrice,
		VideoQuality:   plan.Features.VideoQuality.String(),
		ScreensAllowed: plan.Features.ScreensAllowed,
	}
}
