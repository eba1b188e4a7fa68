package repositories

import (
	"context"
	"time"
)

// CacheRepositoryInterface — счётчики и флаги с TTL. Используется
// auth-сервисом для защиты входа от перебора.
type CacheRepositoryInterface interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Del(ctx context.Context, keys ...string) error
	Incr(ctx context.Context, key string) (int64, error)
	Expire(ctx context.Context, key string, expiration time.Duration) (bool, error)
}
