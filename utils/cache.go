// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"bookvisit/config"

	"github.com/go-redis/redis/v8"
)

var (
	// SessionCacheClient backs the per-booker user session store.
	SessionCacheClient *redis.Client
	// RateLimitCacheClient holds the shared rate-limit counters.
	RateLimitCacheClient *redis.Client
)

func newRedisClient(db int, name string) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (%s): %v", name, err)
	}
	return client
}

// InitRedis connects every redis client the service needs.
func InitRedis() {
	GetSessionCacheClient()
	GetRateLimitCacheClient()
}

// GetSessionCacheClient returns the redis client for user sessions.
func GetSessionCacheClient() *redis.Client {
	if SessionCacheClient == nil {
		SessionCacheClient = newRedisClient(config.AppConfig.RedisSessionDB, "Session")
	}
	return SessionCacheClient
}

// GetRateLimitCacheClient returns the redis client for rate-limit counters.
func GetRateLimitCacheClient() *redis.Client {
	if RateLimitCacheClient == nil {
		RateLimitCacheClient = newRedisClient(config.AppConfig.RedisRateLimitDB, "Rate Limit")
	}
	return RateLimitCacheClient
}
