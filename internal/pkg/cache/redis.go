// Package cache defines a small string-valued cache port plus its Redis
// adapter. Consumers depend on the Cache interface so tests can swap in an
// in-memory fake and so the binary keeps working when no Redis is configured.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is the port the storefront uses to memoise upstream payloads.
type Cache interface {
	// Set stores value under key for ttl. A zero ttl means no expiry.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Get returns the stored value, or "" with a nil error on a miss.
	Get(ctx context.Context, key string) (string, error)

	// Key builds a namespaced cache key for an operation/identifier pair.
	Key(operation, id string) string
}

type redisCache struct {
	client    *redis.Client
	namespace string
}

// NewRedisCache connects to the Redis instance at addr. Keys are prefixed
// with namespace so several services can share one instance.
func NewRedisCache(addr, namespace string) Cache {
	return &redisCache{
		client:    redis.NewClient(&redis.Options{Addr: addr}),
		namespace: namespace,
	}
}

func (r *redisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *redisCache) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (r *redisCache) Key(operation, id string) string {
	return fmt.Sprintf("%s:%s:%s", r.namespace, operation, id)
}
