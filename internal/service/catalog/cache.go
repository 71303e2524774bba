// internal/service/catalog/cache.go
package catalog

import (
	"context"
	"encoding/json"
	"time"

	"motomarket-service/internal/domain/listing"

	"github.com/redis/go-redis/v9"
)

const cacheKey = "listings:all"

// RowCache fronts the backend's full listing fetch with a short-TTL Redis
// entry. Stale data ages out on its own instead of forcing clients to
// refetch the whole table on every visit.
type RowCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRowCache(client *redis.Client, ttl time.Duration) *RowCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &RowCache{client: client, ttl: ttl}
}

func (c *RowCache) Get(ctx context.Context) ([]listing.Listing, error) {
	data, err := c.client.Get(ctx, cacheKey).Bytes()
	if err == redis.Nil {
		return nil, nil // cache miss
	}
	if err != nil {
		return nil, err
	}
	var rows []listing.Listing
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *RowCache) Set(ctx context.Context, rows []listing.Listing) error {
	data, err := json.Marshal(rows)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, cacheKey, data, c.ttl).Err()
}

func (c *RowCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, cacheKey).Err()
}
