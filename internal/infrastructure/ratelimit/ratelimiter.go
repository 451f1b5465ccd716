// Package ratelimit provides per-client request rate limiting backed by
// Redis sliding windows.
package ratelimit

import "time"

type RateLimitConfig struct {
	RequestsPerMinute int
}

type RateLimiter interface {
	Allow(key string, config RateLimitConfig) (bool, error)
	// GetUsed returns how many requests the key has made in the window.
	GetUsed(key string, window time.Duration) (int64, error)
}
