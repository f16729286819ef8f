package recipes

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"smart-pantry/backend/app/dto"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapCache struct {
	mu   sync.Mutex
	data map[string][]byte
	ttls map[string]time.Duration
}

func newMapCache() *mapCache {
	return &mapCache{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (c *mapCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	return b, ok, nil
}

func (c *mapCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	c.ttls[key] = ttl
	return nil
}

func TestCachedReadThrough(t *testing.T) {
	next := &stubSearcher{rs: []dto.Recipe{{Title: "Soup", URL: "u", Ingredients: []string{"leek"}}}}
	cache := newMapCache()
	c := NewCached(next, cache, 0, zerolog.Nop())

	first, err := c.Search(context.Background(), []string{"Leek", "potato"})
	require.NoError(t, err)
	second, err := c.Search(context.Background(), []string{"potato", "leek"})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.EqualValues(t, 1, next.calls.Load())
	assert.Equal(t, DefaultCacheTTL, cache.ttls["pantry:recipes:leek,potato"])
}

func TestCachedDoesNotStoreFailures(t *testing.T) {
	next := &stubSearcher{err: errors.New("down")}
	cache := newMapCache()
	c := NewCached(next, cache, time.Minute, zerolog.Nop())

	_, err := c.Search(context.Background(), []string{"egg"})
	assert.Error(t, err)
	assert.Empty(t, cache.data)
}

func TestCachedSurvivesUnreachableRedis(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond, MaxRetries: -1})
	defer rdb.Close()

	next := &stubSearcher{rs: []dto.Recipe{{Title: "Soup"}}}
	c := NewCached(next, NewRedisCache(rdb), time.Minute, zerolog.Nop())

	rs, err := c.Search(context.Background(), []string{"leek"})
	require.NoError(t, err)
	assert.Equal(t, "Soup", rs[0].Title)
}
