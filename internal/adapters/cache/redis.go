package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tcmbrates/internal/domain"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// RedisTableCache shares rate tables between instances through Redis, JSON encoded.
type RedisTableCache struct {
	client *redis.Client
}

func NewRedisTableCache(client *redis.Client) *RedisTableCache {
	return &RedisTableCache{client: client}
}

func (c *RedisTableCache) Contains(ctx context.Context, key string) bool {
	n, err := c.client.Exists(ctx, key).Result()
	if err != nil {
		logrus.WithError(err).WithField("key", key).Warn("Redis exists check failed")
		return false
	}
	return n > 0
}

func (c *RedisTableCache) Fetch(ctx context.Context, key string) (domain.RateTable, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.RateTable{}, domain.ErrCacheMiss
	}
	if err != nil {
		return domain.RateTable{}, fmt.Errorf("failed to get %q from redis: %w", key, err)
	}

	var table domain.RateTable
	if err = json.Unmarshal(data, &table); err != nil {
		return domain.RateTable{}, fmt.Errorf("failed to decode %q: %w", key, err)
	}
	return table, nil
}

func (c *RedisTableCache) Save(ctx context.Context, key string, table domain.RateTable, ttl time.Duration) error {
	data, err := json.Marshal(table)
	if err != nil {
		return fmt.Errorf("failed to encode rate table: %w", err)
	}
	if err = c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set %q in redis: %w", key, err)
	}
	return nil
}
