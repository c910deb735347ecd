package catalog

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/sellora/saree-storefront/internal/pkg/cache"
)

// CachedClient memoises the raw record list in a shared cache so concurrent
// session mounts do not hammer the upstream API. Cache trouble is never
// fatal: on any cache error the call falls through to the wrapped client.
type CachedClient struct {
	next  Client
	cache cache.Cache
	ttl   time.Duration
}

// NewCachedClient decorates next with a cache layer using the given TTL.
func NewCachedClient(next Client, c cache.Cache, ttl time.Duration) *CachedClient {
	return &CachedClient{next: next, cache: c, ttl: ttl}
}

func (c *CachedClient) FetchProducts(ctx context.Context) ([]RawRecord, error) {
	key := c.cache.Key("catalog", "product-list")

	if cached, err := c.cache.Get(ctx, key); err != nil {
		slog.WarnContext(ctx, "catalog cache read failed, falling back to upstream", "error", err)
	} else if cached != "" {
		var records []RawRecord
		if err := json.Unmarshal([]byte(cached), &records); err == nil {
			return records, nil
		}
		slog.WarnContext(ctx, "catalog cache entry corrupt, refetching", "key", key)
	}

	records, err := c.next.FetchProducts(ctx)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(records); err == nil {
		if err := c.cache.Set(ctx, key, string(encoded), c.ttl); err != nil {
			slog.WarnContext(ctx, "catalog cache write failed", "error", err)
		}
	}
	return records, nil
}
