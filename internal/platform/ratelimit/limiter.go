// Package ratelimit provides fixed-window request limiting for the API
// surface. The Redis implementation shares counters across instances; the
// in-memory one covers single-instance and test runs.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Result reports one limit decision.
type Result struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// Limiter decides whether a caller identified by key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (Result, error)
}

// RedisLimiter counts requests per key in fixed windows backed by Redis.
type RedisLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

func NewRedisLimiter(client *redis.Client, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{client: client, limit: limit, window: window}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (Result, error) {
	k := "ratelimit:" + key
	count, err := l.client.Incr(ctx, k).Result()
	if err != nil {
		return Result{}, err
	}
	if count == 1 {
		if err := l.client.Expire(ctx, k, l.window).Err(); err != nil {
			return Result{}, err
		}
	}
	if count > int64(l.limit) {
		ttl, err := l.client.TTL(ctx, k).Result()
		if err != nil || ttl < 0 {
			ttl = l.window
		}
		return Result{Allowed: false, RetryAfter: ttl}, nil
	}
	return Result{Allowed: true, Remaining: l.limit - int(count)}, nil
}

// InMemory is a single-instance fixed-window limiter.
type InMemory struct {
	mu      sync.Mutex
	windows map[string]*window
	limit   int
	period  time.Duration
	clock   func() time.Time
}

type window struct {
	count   int
	resetAt time.Time
}

func NewInMemory(limit int, period time.Duration) *InMemory {
	return &InMemory{
		windows: make(map[string]*window),
		limit:   limit,
		period:  period,
		clock:   time.Now,
	}
}

func (l *InMemory) Allow(_ context.Context, key string) (Result, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock()
	w, ok := l.windows[key]
	if !ok || now.After(w.resetAt) {
		w = &window{resetAt: now.Add(l.period)}
		l.windows[key] = w
	}
	w.count++
	if w.count > l.limit {
		return Result{Allowed: false, RetryAfter: w.resetAt.Sub(now)}, nil
	}
	return Result{Allowed: true, Remaining: l.limit - w.count}, nil
}
