package fx

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// RedisCache stores rates in redis with a jittered TTL so a fleet does not
// refresh every pair at the same instant.
type RedisCache struct {
	client  *redis.Client
	baseTTL time.Duration
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{
		client:  client,
		baseTTL: 15 * time.Minute,
	}
}

func (r *RedisCache) Get(ctx context.Context, base, quote string) (decimal.Decimal, error) {
	data, err := r.client.Get(ctx, rateKey(base, quote)).Result()
	if errors.Is(err, redis.Nil) {
		return decimal.Decimal{}, ErrCacheMiss
	}
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("redis get failed: %w", err)
	}
	rate, err := decimal.NewFromString(data)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parse cached rate: %w", err)
	}
	return rate, nil
}

func (r *RedisCache) Set(ctx context.Context, base, quote string, rate decimal.Decimal) error {
	jitter := time.Duration(rand.Intn(5)) * time.Minute
	if err := r.client.Set(ctx, rateKey(base, quote), rate.String(), r.baseTTL+jitter).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func rateKey(base, quote string) string {
	return fmt.Sprintf("fx:%s:%s", base, quote)
}
