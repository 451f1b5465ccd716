package valueobjects

import "fmt"

// PlanName identifies a subscription tier. The string values are part of the
// persisted record layout and must not change.
type PlanName string

const (
	PlanBasic    PlanName = "Basic"
	PlanStandard PlanName = "Standard"
	PlanPremium  PlanName = "Premium"
)

// IsValid checks if the plan name is one of the known tiers.
func (p PlanName) IsValid() bool {
	return p == PlanBasic || p == PlanStandard || p == PlanPremium
}

// String returns the string representation of the plan name.
func (p PlanName) String() string {
	return string(p)
}

// NewPlanName creates a PlanName from a string, rejecting unknown tiers.
// Unknown names are an error, never silently defaulted to Basic.
func NewPlanName(s string) (PlanName, error) {
	p := PlanName(s)
	if !p.IsValid() {
		return "", fmt.Errorf("invalid plan name: %s, must be 'Basic', 'Standard', or 'Premium'", s)
	}
	return p, nil
}
