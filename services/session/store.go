package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"bookvisit/models"

	"github.com/go-redis/redis/v8"
)

const sessionPrefix = "session:"

// RedisStore keeps sessions as JSON with a rolling TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (*models.UserSession, error) {
	data, err := s.client.Get(ctx, sessionPrefix+sessionID).Bytes()
	if err == redis.Nil {
		return &models.UserSession{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	var us models.UserSession
	if err := json.Unmarshal(data, &us); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &us, nil
}

func (s *RedisStore) Set(ctx context.Context, sessionID string, us *models.UserSession) error {
	b, err := json.Marshal(us)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	return s.client.Set(ctx, sessionPrefix+sessionID, b, s.ttl).Err()
}

func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, sessionPrefix+sessionID).Err()
}
