package ratelimit

import "errors"

// ErrRateLimitExceeded is returned by callers when any applicable limiter denies a request.
var ErrRateLimitExceeded = errors.New("too many requests")
