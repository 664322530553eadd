package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/fx_rates_service/internal/core/domain"
	portscache "github.com/SscSPs/fx_rates_service/internal/core/ports/cache"
	"github.com/redis/go-redis/v9"
)

const rateKeyNamespace = "fx:rate"

// redisCommands is the part of redis.UniversalClient the cache needs.
type redisCommands interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisRateCache stores pair lookups as JSON under fx:rate:FROM:TO.
type RedisRateCache struct {
	client redisCommands
	ttl    time.Duration
}

var _ portscache.RateCache = (*RedisRateCache)(nil)

// NewRedisRateCache returns a cache whose entries expire after ttl.
// A zero ttl keeps entries until the pair is invalidated.
func NewRedisRateCache(client redis.UniversalClient, ttl time.Duration) *RedisRateCache {
	return &RedisRateCache{client: client, ttl: ttl}
}

func rateKey(fromCode, toCode string) string {
	return rateKeyNamespace + ":" + fromCode + ":" + toCode
}

func (c *RedisRateCache) GetRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, error) {
	raw, err := c.client.Get(ctx, rateKey(fromCode, toCode)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s->%s: %w", fromCode, toCode, err)
	}

	var rate domain.ExchangeRate
	if err := json.Unmarshal(raw, &rate); err != nil {
		return nil, fmt.Errorf("decode cached rate %s->%s: %w", fromCode, toCode, err)
	}
	return &rate, nil
}

func (c *RedisRateCache) SetRate(ctx context.Context, fromCode, toCode string, rate domain.ExchangeRate) error {
	raw, err := json.Marshal(rate)
	if err != nil {
		return fmt.Errorf("encode rate %s->%s: %w", fromCode, toCode, err)
	}
	if err := c.client.Set(ctx, rateKey(fromCode, toCode), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s->%s: %w", fromCode, toCode, err)
	}
	return nil
}

func (c *RedisRateCache) InvalidatePair(ctx context.Context, fromCode, toCode string) error {
	if err := c.client.Del(ctx, rateKey(fromCode, toCode), rateKey(toCode, fromCode)).Err(); err != nil {
		return fmt.Errorf("redis del %s<->%s: %w", fromCode, toCode, err)
	}
	return nil
}
