package middleware

import (
	"net/http"
	"sync"
	"time"

	"bookvisit/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ipLimiterIdleTTL is how long an IP's bucket is kept after its last request.
// A bucket idle this long has refilled, so dropping it loses nothing.
const ipLimiterIdleTTL = 10 * time.Minute

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipLimiterStore holds one token bucket per client IP.
type ipLimiterStore struct {
	limiters  map[string]*ipLimiter
	perMin    int
	lastSweep time.Time
	now       func() time.Time
	mu        sync.Mutex
}

func newIPLimiterStore(perMin int) *ipLimiterStore {
	if perMin <= 0 {
		perMin = 200
	}
	return &ipLimiterStore{limiters: make(map[string]*ipLimiter), perMin: perMin, now: time.Now}
}

func (s *ipLimiterStore) getLimiter(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.lastSweep) >= ipLimiterIdleTTL {
		s.sweep(now)
	}

	entry, exists := s.limiters[ip]
	if !exists {
		entry = &ipLimiter{limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(s.perMin)), s.perMin)}
		s.limiters[ip] = entry
	}
	entry.lastSeen = now
	return entry.limiter
}

// sweep drops buckets idle for longer than ipLimiterIdleTTL. Caller holds mu.
func (s *ipLimiterStore) sweep(now time.Time) {
	for ip, entry := range s.limiters {
		if now.Sub(entry.lastSeen) > ipLimiterIdleTTL {
			delete(s.limiters, ip)
		}
	}
	s.lastSweep = now
}

// RateLimitMiddleware is a coarse per-IP limit in front of every route,
// independent of the per-booker limits on registration.
func RateLimitMiddleware(perMin int) gin.HandlerFunc {
	store := newIPLimiterStore(perMin)
	return func(c *gin.Context) {
		ip := getClientIP(c)
		if !store.getLimiter(ip).Allow() {
			zap.L().Warn("Rate limit exceeded", zap.String("ip", ip))
			utils.RateLimitRejectionsTotal.WithLabelValues("ip").Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, utils.ErrorResponse{
				Page:    "rate-limited",
				Message: "Too many requests",
				Details: "Try again later.",
			})
			return
		}
		c.Next()
	}
}
