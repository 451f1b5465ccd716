package valueobjects

type SubscriptionStatus string

const (
	StatusActive  SubscriptionStatus = "Active"
	StatusExpired SubscriptionStatus = "Expired"
)

func (s SubscriptionStatus) String() string {
	return string(s)
}

// CanUpdate reports whether a subscription in this status accepts plan,
// price, or duration changes. Only active subscriptions are mutable.
func (s SubscriptionStatus) CanUpdate() bool {
	return s == StatusActive
}

// CanTransitionTo reports whether the status may move to target. Expired is
// terminal; there is no reactivation path.
func (s SubscriptionStatus) CanTransitionTo(target SubscriptionStatus) bool {
	transitions := map[SubscriptionStatus][]SubscriptionStatus{
		StatusActive:  {StatusExpired},
		StatusExpired: {},
	}

	allowed, exists := transitions[s]
	if !exists {
		return false
	}

	for _, allowedStatus := range allowed {
		if allowedStatus == target {
			return true
		}
	}
	return false
}

var ValidStatuses = map[SubscriptionStatus]bool{
	StatusActive:  true,
	StatusExpired: true,
}
