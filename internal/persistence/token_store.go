package persistence

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// RedisTokenStore persists the terminal's bearer token under a single fixed
// key. Last write wins; the token survives gateway restarts.
type RedisTokenStore struct {
	redis *Redis
	key   string
}

// NewRedisTokenStore builds a store bound to the configured key.
func NewRedisTokenStore(r *Redis, key string) *RedisTokenStore {
	if key == "" {
		key = "auth_token"
	}
	return &RedisTokenStore{redis: r, key: key}
}

// Load returns the stored token, or empty string when none is persisted.
func (s *RedisTokenStore) Load(ctx context.Context) (string, error) {
	val, err := s.redis.Client.Get(ctx, s.key).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

// Save overwrites the stored token.
func (s *RedisTokenStore) Save(ctx context.Context, token string) error {
	return s.redis.Client.Set(ctx, s.key, token, 0).Err()
}

// Clear removes the stored token. Clearing an absent token is a no-op.
func (s *RedisTokenStore) Clear(ctx context.Context) error {
	return s.redis.Client.Del(ctx, s.key).Err()
}
