package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"lendsafe/internal/pkg/consts"
	"lendsafe/internal/service/interfaces"

	"github.com/redis/go-redis/v9"
)

type RedisStoreAdapter struct {
	client *redis.Client
}

func NewRedisStoreAdapter(client *redis.Client) *RedisStoreAdapter {
	return &RedisStoreAdapter{client: client}
}

// Implements RedisStoreOperations
func (a *RedisStoreAdapter) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return a.client.Set(ctx, key, value, expiration).Err()
}

func (a *RedisStoreAdapter) Get(ctx context.Context, key string) (string, error) {
	return a.client.Get(ctx, key).Result()
}

func (a *RedisStoreAdapter) Delete(ctx context.Context, key string) error {
	return a.client.Del(ctx, key).Err()
}

func (a *RedisStoreAdapter) Exists(ctx context.Context, key string) (bool, error) {
	val, err := a.client.Exists(ctx, key).Result()
	return val > 0, err
}

// TrustScoreCache is the read cache for derived trust scores. The event log
// stays the source of truth; a cache miss just forces a recompute.
type TrustScoreCache struct {
	store interfaces.RedisStoreOperations
	ttl   time.Duration
}

func NewTrustScoreCache(store interfaces.RedisStoreOperations, ttl time.Duration) *TrustScoreCache {
	return &TrustScoreCache{store: store, ttl: ttl}
}

func trustScoreKey(bid int64) string {
	return fmt.Sprintf("%s%d", consts.RedisTrustScoreKeyPrefix, bid)
}

func (c *TrustScoreCache) SetTrustScore(ctx context.Context, bid int64, score int) error {
	return c.store.Set(ctx, trustScoreKey(bid), score, c.ttl)
}

func (c *TrustScoreCache) GetTrustScore(ctx context.Context, bid int64) (int, bool, error) {
	val, err := c.store.Get(ctx, trustScoreKey(bid))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		return 0, false, err
	}

	score, err := strconv.Atoi(val)
	if err != nil {
		return 0, false, err
	}
	return score, true, nil
}
