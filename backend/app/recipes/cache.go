package recipes

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"time"

	"smart-pantry/backend/app/dto"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	DefaultCacheTTL = time.Hour
	cacheKeyPrefix  = "pantry:recipes:"
)

type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

type RedisCache struct{ rdb *redis.Client }

func NewRedisCache(rdb *redis.Client) *RedisCache { return &RedisCache{rdb: rdb} }

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.rdb.Set(ctx, key, value, ttl).Err()
}

// Cached is a read-through cache in front of a Searcher. Cache errors only
// cost a remote call.
type Cached struct {
	next   Searcher
	cache  Cache
	ttl    time.Duration
	logger zerolog.Logger
}

func NewCached(next Searcher, cache Cache, ttl time.Duration, logger zerolog.Logger) *Cached {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cached{next: next, cache: cache, ttl: ttl, logger: logger}
}

// cacheKey is order and case insensitive.
func cacheKey(ingredients []string) string {
	names := make([]string, len(ingredients))
	for i, n := range ingredients {
		names[i] = strings.ToLower(n)
	}
	sort.Strings(names)
	return cacheKeyPrefix + strings.Join(names, ",")
}

func (c *Cached) Search(ctx context.Context, ingredients []string) ([]dto.Recipe, error) {
	key := cacheKey(ingredients)
	if b, ok, err := c.cache.Get(ctx, key); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("recipe cache read failed")
	} else if ok {
		var rs []dto.Recipe
		if err := json.Unmarshal(b, &rs); err == nil {
			return rs, nil
		}
	}

	rs, err := c.next.Search(ctx, ingredients)
	if err != nil {
		return nil, err
	}
	if b, err := json.Marshal(rs); err == nil {
		if err := c.cache.Set(ctx, key, b, c.ttl); err != nil {
			c.logger.Warn().Err(err).Str("key", key).Msg("recipe cache write failed")
		}
	}
	return rs, nil
}
