package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iho/finbook/internal/infrastructure/metrics"
)

// Cache implements usecase.Cache using Redis. It holds account snapshots
// that movement commits invalidate, never authoritative state.
type Cache struct {
	client  *redis.Client
	prefix  string
	metrics *metrics.Metrics
}

// NewCache creates a new Cache.
func NewCache(client *redis.Client) *Cache {
	return &Cache{
		client: client,
		prefix: "finbook:cache:",
	}
}

// WithMetrics records cache operations into the shared registry.
func (c *Cache) WithMetrics(m *metrics.Metrics) *Cache {
	c.metrics = m
	return c
}

// Get retrieves a value by key.
func (c *Cache) Get(ctx context.Context, key string) (string, error) {
	value, err := c.client.Get(ctx, c.prefix+key).Result()
	c.observe("get", err)

	return value, err
}

// Set stores a value with TTL.
func (c *Cache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	err := c.client.Set(ctx, c.prefix+key, value, ttl).Err()
	c.observe("set", err)

	return err
}

// Delete removes a key.
func (c *Cache) Delete(ctx context.Context, key string) error {
	err := c.client.Del(ctx, c.prefix+key).Err()
	c.observe("del", err)

	return err
}

func (c *Cache) observe(op string, err error) {
	if c.metrics == nil {
		return
	}

	c.metrics.RedisOperations.WithLabelValues(op).Inc()
	if err != nil && !errors.Is(err, redis.Nil) {
		c.metrics.RedisErrors.WithLabelValues(op).Inc()
	}
}
