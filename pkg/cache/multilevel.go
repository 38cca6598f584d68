package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

type LoaderOptions struct {
	Prefix       string
	MemTTL       int // seconds
	RedisTTL     int // seconds
	RedisTimeout time.Duration
	// FetchTimeout bounds a shared fetch. It runs detached from the
	// caller that started it, so one cancelled request does not fail
	// the others waiting on the same key.
	FetchTimeout time.Duration
}

// Loader reads through memory, then Redis, then fetch. Values found in a
// lower level are written back to the upper ones. Concurrent misses for
// the same key share one fetch. Fetch errors are never cached.
type Loader[T any] struct {
	mem   Cache
	redis *redis.Client
	opts  LoaderOptions
	group singleflight.Group
}

// NewLoader builds a loader; redisClient may be nil.
func NewLoader[T any](mem Cache, redisClient *redis.Client, opts LoaderOptions) *Loader[T] {
	if opts.MemTTL <= 0 {
		opts.MemTTL = 3600
	}
	if opts.RedisTTL <= 0 {
		opts.RedisTTL = 86400
	}
	if opts.RedisTimeout <= 0 {
		opts.RedisTimeout = 50 * time.Millisecond
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = 30 * time.Second
	}
	return &Loader[T]{mem: mem, redis: redisClient, opts: opts}
}

func (l *Loader[T]) Get(ctx context.Context, key string, fetch func(ctx context.Context) (T, error)) (T, error) {
	fullKey := l.opts.Prefix + key

	if val, ok := l.fromMemory(fullKey); ok {
		return val, nil
	}

	ch := l.group.DoChan(fullKey, func() (any, error) {
		sharedCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), l.opts.FetchTimeout)
		defer cancel()
		return l.load(sharedCtx, fullKey, fetch)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			var zero T
			return zero, res.Err
		}
		return res.Val.(T), nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

func (l *Loader[T]) load(ctx context.Context, fullKey string, fetch func(ctx context.Context) (T, error)) (T, error) {
	if val, ok := l.fromMemory(fullKey); ok {
		return val, nil
	}

	if val, ok := l.fromRedis(ctx, fullKey); ok {
		l.mem.SetWithTTL(fullKey, val, l.opts.MemTTL)
		return val, nil
	}

	val, err := fetch(ctx)
	if err != nil {
		return val, err
	}

	l.mem.SetWithTTL(fullKey, val, l.opts.MemTTL)
	l.toRedis(ctx, fullKey, val)
	return val, nil
}

func (l *Loader[T]) fromMemory(key string) (T, bool) {
	var zero T
	raw, ok := l.mem.Get(key)
	if !ok {
		return zero, false
	}
	val, ok := raw.(T)
	return val, ok
}

func (l *Loader[T]) fromRedis(ctx context.Context, key string) (T, bool) {
	var val T
	if l.redis == nil {
		return val, false
	}

	redisCtx, cancel := context.WithTimeout(ctx, l.opts.RedisTimeout)
	defer cancel()

	raw, err := l.redis.Get(redisCtx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			zap.L().Debug("Redis cache read failed", zap.String("key", key), zap.Error(err))
		}
		return val, false
	}
	if err := json.Unmarshal(raw, &val); err != nil {
		zap.L().Warn("Discarding undecodable cache entry", zap.String("key", key), zap.Error(err))
		return val, false
	}
	return val, true
}

func (l *Loader[T]) toRedis(ctx context.Context, key string, val T) {
	if l.redis == nil {
		return
	}
	data, err := json.Marshal(val)
	if err != nil {
		return
	}

	redisCtx, cancel := context.WithTimeout(ctx, l.opts.RedisTimeout)
	defer cancel()
	if err := l.redis.Set(redisCtx, key, data, time.Duration(l.opts.RedisTTL)*time.Second).Err(); err != nil {
		zap.L().Debug("Redis cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate drops key from both levels.
func (l *Loader[T]) Invalidate(ctx context.Context, key string) {
	fullKey := l.opts.Prefix + key
	l.mem.Delete(fullKey)
	if l.redis != nil {
		_ = l.redis.Del(ctx, fullKey).Err()
	}
}
