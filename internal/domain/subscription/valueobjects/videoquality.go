package valueobjects

import "fmt"

// VideoQuality is the playback quality granted by a plan. The string values
// are part of the persisted record layout and must not change.
type VideoQuality string

const (
	QualityGood   VideoQuality = "Good"
	QualityBetter VideoQuality = "Better"
	QualityBest   VideoQuality = "Best"
)

func (q VideoQuality) IsValid() bool {
	return q == QualityGood || q == QualityBetter || q == QualityBest
}

func (q VideoQuality) String() string {
	return string(q)
}

// NewVideoQuality creates a VideoQuality from a string.
func NewVideoQuality(s string) (VideoQuality, error) {
	q := VideoQuality(s)
	if !q.IsValid() {
		return "", fmt.Errorf("invalid video quality: %s, must be 'Good', 'Better', or 'Best'", s)
	}
	return q, nil
}
