package cache

import (
	"context"
	"errors"
	"time"

	"flightwatch-service/internal/domain/repository"
	"flightwatch-service/pkg/metrics"

	"github.com/redis/go-redis/v9"
)

// RedisCache implements the Cache interface for provider responses.
type RedisCache struct {
	c       *redis.Client
	metrics *metrics.Metrics
}

// NewRedisCache creates a new Redis-backed cache
func NewRedisCache(addr, password string, db int, m *metrics.Metrics) repository.Cache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisCache{c: rdb, metrics: m}
}

func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := r.c.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			r.metrics.CacheRequests.WithLabelValues("get", "miss").Inc()
			return nil, false, nil
		}
		r.metrics.CacheRequests.WithLabelValues("get", "error").Inc()
		return nil, false, err
	}
	r.metrics.CacheRequests.WithLabelValues("get", "hit").Inc()
	return b, true, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.c.Set(ctx, key, value, ttl).Err(); err != nil {
		r.metrics.CacheRequests.WithLabelValues("set", "error").Inc()
		return err
	}
	r.metrics.CacheRequests.WithLabelValues("set", "ok").Inc()
	return nil
}

func (r *RedisCache) Close() error { return r.c.Close() }
