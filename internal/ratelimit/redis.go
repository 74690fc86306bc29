package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "ratelimit:"

// RedisLimiter is a fixed-window counter: one Redis key per caller per
// minute, incremented on every request.
type RedisLimiter struct {
	client    *redis.Client
	perMinute int
}

// NewRedis creates a Redis-backed limiter and verifies the connection.
func NewRedis(addr, password string, perMinute int) (*RedisLimiter, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	if perMinute <= 0 {
		perMinute = 60
	}
	return &RedisLimiter{client: client, perMinute: perMinute}, nil
}

// Allow increments the caller's counter for the current minute window.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	window := time.Now().Unix() / 60
	redisKey := fmt.Sprintf("%s%s:%d", keyPrefix, key, window)

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		// Expire a window after creation so stale counters clean themselves up.
		if err := l.client.Expire(ctx, redisKey, 2*time.Minute).Err(); err != nil {
			return false, err
		}
	}
	return count <= int64(l.perMinute), nil
}

func (l *RedisLimiter) Close() error {
	return l.client.Close()
}
