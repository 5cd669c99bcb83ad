// Package redis implements the result cache over Redis via rueidis,
// letting multiple search instances share one cache with server-side
// expiry.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/redis/rueidis"

	"github.com/dealhive/dealsearch/internal/cache"
	"github.com/dealhive/dealsearch/internal/domain/search/result"
)

const keyPrefix = "dealsearch:results:"

// Config holds connection parameters for the Redis cache.
type Config struct {
	Addrs    []string
	Username string
	Password string
	DB       int
}

// Cache implements cache.ResultCache over Redis.
type Cache struct {
	client rueidis.Client
	ttl    time.Duration
}

var _ cache.ResultCache = (*Cache)(nil)

// New connects to Redis and creates a result cache with the given TTL.
func New(cfg Config, ttl time.Duration) (*Cache, error) {
	if len(cfg.Addrs) == 0 {
		return nil, fmt.Errorf("addrs is required")
	}

	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  cfg.Addrs,
		Username:     cfg.Username,
		Password:     cfg.Password,
		SelectDB:     cfg.DB,
		DisableCache: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return &Cache{client: client, ttl: ttl}, nil
}

// NewForTest wraps an existing (mock) client.
func NewForTest(client rueidis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Close shuts down the client.
func (c *Cache) Close() {
	c.client.Close()
}

// Ping checks connectivity.
func (c *Cache) Ping(ctx context.Context) error {
	if err := c.client.Do(ctx, c.client.B().Ping().Build()).Error(); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Get returns the cached result for a canonical query key. Any error
// (miss, decode failure, connectivity) degrades to a cache miss.
func (c *Cache) Get(ctx context.Context, key string) (*result.SearchResult, bool) {
	cmd := c.client.B().Get().Key(redisKey(key)).Build()
	data, err := c.client.Do(ctx, cmd).AsBytes()
	if err != nil {
		return nil, false
	}

	var res result.SearchResult
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, false
	}
	return &res, true
}

// Set stores a result with the configured TTL. Failures are dropped:
// caching is an optimization, never a required write.
func (c *Cache) Set(ctx context.Context, key string, value *result.SearchResult) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	cmd := c.client.B().Set().Key(redisKey(key)).Value(string(data)).Ex(c.ttl).Build()
	_ = c.client.Do(ctx, cmd).Error()
}

// Clear evicts every cached result by scanning the key prefix.
func (c *Cache) Clear(ctx context.Context) error {
	var cursor uint64
	for {
		cmd := c.client.B().Scan().Cursor(cursor).Match(keyPrefix + "*").Count(100).Build()
		res, err := c.client.Do(ctx, cmd).AsScanEntry()
		if err != nil {
			return fmt.Errorf("scan cache keys: %w", err)
		}
		if len(res.Elements) > 0 {
			del := c.client.B().Del().Key(res.Elements...).Build()
			if err := c.client.Do(ctx, del).Error(); err != nil {
				return fmt.Errorf("del cache keys: %w", err)
			}
		}
		cursor = res.Cursor
		if cursor == 0 {
			return nil
		}
	}
}

// redisKey hashes the canonical query key so arbitrary query text never
// appears verbatim in the keyspace.
func redisKey(key string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(key))
	return fmt.Sprintf("%s%x", keyPrefix, h.Sum64())
}
