package store

import (
	"context"

	"mastoride/pkg/cache"

	"github.com/redis/go-redis/v9"
)

// RedisKV backs the dashboard store with Redis. Dashboard state has no
// expiry; it lives until overwritten, like the browser storage it
// replaces.
type RedisKV struct {
	cache *cache.RedisCache
}

func NewRedisKV(c *cache.RedisCache) *RedisKV {
	return &RedisKV{cache: c}
}

func (r *RedisKV) Get(ctx context.Context, key string, dest interface{}) error {
	err := r.cache.Get(ctx, key, dest)
	if err == redis.Nil {
		return ErrNotFound
	}
	return err
}

func (r *RedisKV) Set(ctx context.Context, key string, value interface{}) error {
	return r.cache.Set(ctx, key, value, 0)
}

func (r *RedisKV) Delete(ctx context.Context, keys ...string) error {
	return r.cache.Delete(ctx, keys...)
}
