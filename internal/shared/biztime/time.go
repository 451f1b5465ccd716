// Package biztime provides the service's time conventions. All storage and
// transport use UTC; implicit local timezones are prohibited. Lifecycle
// decisions take an explicit now so date arithmetic is deterministic in tests.
package biztime

import "time"

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// ToUTC converts a time (any timezone) to UTC.
func ToUTC(t time.Time) time.Time {
	return t.UTC()
}
