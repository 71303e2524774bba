// internal/pkg/guard/redis_store.go
package guard

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps guard flags in Redis under a per-session prefix, so a
// reload of the same session sees the flags but an independent session
// does not. Flags carry a TTL as a safety net: a process that dies inside
// a guarded operation cannot lock the session forever.
type RedisStore struct {
	client    *redis.Client
	sessionID string
	ttl       time.Duration
}

func NewRedisStore(client *redis.Client, sessionID string, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &RedisStore{client: client, sessionID: sessionID, ttl: ttl}
}

func (s *RedisStore) key(name string) string {
	return fmt.Sprintf("guardflags:%s:%s", s.sessionID, name)
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	v, err := s.client.Get(ctx, s.key(key)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read guard flag %s: %w", key, err)
	}
	return v, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.key(key), value, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write guard flag %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) SetIfAbsent(ctx context.Context, key, value string) (bool, error) {
	ok, err := s.client.SetNX(ctx, s.key(key), value, s.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire guard flag %s: %w", key, err)
	}
	return ok, nil
}

func (s *RedisStore) Del(ctx context.Context, keys ...string) error {
	full := make([]string, 0, len(keys))
	for _, k := range keys {
		full = append(full, s.key(k))
	}
	if err := s.client.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("failed to clear guard flags: %w", err)
	}
	return nil
}
