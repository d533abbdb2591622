package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter counts requests per fixed window in Redis so several service
// instances share one budget.
type RedisLimiter struct {
	client   *redis.Client
	capacity int64
	window   time.Duration
	prefix   string
	now      func() time.Time
}

func NewRedisLimiter(client *redis.Client, capacity int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client:   client,
		capacity: int64(capacity),
		window:   window,
		prefix:   "slabtax:ratelimit:",
		now:      time.Now,
	}
}

func (r *RedisLimiter) windowKey(key string) string {
	slot := r.now().UnixNano() / int64(r.window)
	return fmt.Sprintf("%s%s:%d", r.prefix, key, slot)
}

func (r *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := r.windowKey(key)

	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.Expire(ctx, k, r.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("redis rate limit: %w", err)
	}
	return incr.Val() <= r.capacity, nil
}

// ConnectRedis returns a client for addr after checking it answers.
func ConnectRedis(ctx context.Context, addr string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return rdb, nil
}
