package ratelimit

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects to redis with short timeouts.
func NewRedisClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  1 * time.Second,
		WriteTimeout: 1 * time.Second,
	})
}

// Redis is a sliding-window limiter backed by a sorted set per identifier.
// Member scores are timestamps; stale members are pruned on every check.
type Redis struct {
	client *redis.Client
	max    int
	window time.Duration
	prefix string
}

// NewRedis creates a limiter allowing max actions per window per
// identifier.
func NewRedis(client *redis.Client, max int, window time.Duration) *Redis {
	if max <= 0 {
		max = 1
	}
	return &Redis{client: client, max: max, window: window, prefix: "awc:ratelimit:"}
}

// Allow checks and records an attempt. The returned error signals a redis
// failure; callers decide whether to fail open.
func (r *Redis) Allow(ctx context.Context, identifier string) (bool, error) {
	key := r.prefix + identifier
	now := time.Now()
	cutoff := now.Add(-r.window)

	pipe := r.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(cutoff.UnixNano(), 10))
	count := pipe.ZCard(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}

	if count.Val() >= int64(r.max) {
		return false, nil
	}

	pipe = r.client.TxPipeline()
	pipe.ZAdd(ctx, key, redis.Z{
		Score:  float64(now.UnixNano()),
		Member: strconv.FormatInt(now.UnixNano(), 10),
	})
	pipe.Expire(ctx, key, r.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// Healthy verifies redis connectivity.
func (r *Redis) Healthy(ctx context.Context) bool {
	if r == nil || r.client == nil {
		return false
	}
	return r.client.Ping(ctx).Err() == nil
}
