// Copyright (c) 2025-2026 Vegaplay Media
// SPDX-License-Identifier: GPL-3.0-or-later

package ratelimit

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter keeps fixed-window counters in Redis so that multiple
// instances share one view of traffic. Each (addr, path) key is an
// INCR counter whose TTL is the window.
type RedisLimiter struct {
	client *redis.Client
	prefix string
}

// NewRedisLimiter creates a Redis-backed limiter from a redis:// URL.
func NewRedisLimiter(redisURL string) (*RedisLimiter, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	return &RedisLimiter{
		client: redis.NewClient(opts),
		prefix: "vegaplay:rl:",
	}, nil
}

// Ping verifies connectivity at startup.
func (l *RedisLimiter) Ping(ctx context.Context) error {
	return l.client.Ping(ctx).Err()
}

// Close releases the underlying connection pool.
func (l *RedisLimiter) Close() error {
	return l.client.Close()
}

// Check counts a request against the shared (addr, path) window.
func (l *RedisLimiter) Check(ctx context.Context, addr, path string, class Class) (Decision, error) {
	key := l.prefix + addr + "|" + path

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, class.Window)
	ttl := pipe.PTTL(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return Decision{}, fmt.Errorf("redis rate limit check: %w", err)
	}

	count := int(incr.Val())
	window := ttl.Val()
	if window < 0 {
		window = class.Window
	}
	resetAt := time.Now().Add(window)

	if count > class.Limit {
		return Decision{
			Allowed:    false,
			Limit:      class.Limit,
			Remaining:  0,
			ResetAt:    resetAt,
			RetryAfter: time.Duration(math.Ceil(window.Seconds())) * time.Second,
		}, nil
	}

	remaining := class.Limit - count
	if remaining < 0 {
		remaining = 0
	}
	return Decision{
		Allowed:   true,
		Limit:     class.Limit,
		Remaining: remaining,
		ResetAt:   resetAt,
	}, nil
}
