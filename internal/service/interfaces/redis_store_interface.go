package interfaces

import (
	"context"
	"time"
)

type RedisStoreOperations interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// TrustScoreCacheInterface is the trust score view over Redis.
type TrustScoreCacheInterface interface {
	SetTrustScore(ctx context.Context, bid int64, score int) error
	GetTrustScore(ctx context.Context, bid int64) (int, bool, error)
}
