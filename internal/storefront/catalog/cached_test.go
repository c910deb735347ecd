package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryCache struct {
	mu      sync.Mutex
	entries map[string]string
	failGet bool
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string]string)}
}

func (m *memoryCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
	return nil
}

func (m *memoryCache) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failGet {
		return "", errors.New("cache down")
	}
	return m.entries[key], nil
}

func (m *memoryCache) Key(operation, id string) string {
	return fmt.Sprintf("test:%s:%s", operation, id)
}

type countingClient struct {
	calls   int
	records []RawRecord
	err     error
}

func (c *countingClient) FetchProducts(context.Context) ([]RawRecord, error) {
	c.calls++
	return c.records, c.err
}

func TestCachedClientFillsAndHits(t *testing.T) {
	upstream := &countingClient{records: []RawRecord{{ID: "p1", IsActive: true}}}
	mem := newMemoryCache()
	client := NewCachedClient(upstream, mem, time.Minute)

	first, err := client.FetchProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 1, upstream.calls)

	second, err := client.FetchProducts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, upstream.calls, "second fetch should be served from cache")
}

func TestCachedClientFallsBackOnCacheError(t *testing.T) {
	upstream := &countingClient{records: []RawRecord{{ID: "p1", IsActive: true}}}
	mem := newMemoryCache()
	mem.failGet = true
	client := NewCachedClient(upstream, mem, time.Minute)

	records, err := client.FetchProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, 1, upstream.calls)
}

func TestCachedClientPropagatesUpstreamError(t *testing.T) {
	upstream := &countingClient{err: errors.New("boom")}
	client := NewCachedClient(upstream, newMemoryCache(), time.Minute)

	_, err := client.FetchProducts(context.Background())
	assert.Error(t, err)
}
