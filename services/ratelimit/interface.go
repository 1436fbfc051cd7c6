package ratelimit

import "context"

// RateLimiter counts requests per subject within a fixed expiry window.
type RateLimiter interface {
	// IncrementAndCheckLimit counts one request for subjectKey and reports
	// whether the subject is still within its limit.
	IncrementAndCheckLimit(ctx context.Context, subjectKey string) (bool, error)
}
