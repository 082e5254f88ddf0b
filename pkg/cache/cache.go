// Package cache provides a two-tier cache for suggestion responses: an
// in-process expirable LRU in front of an optional shared Redis tier.
// Entries are opaque JSON payloads keyed by the raw query string; the
// whole cache is invalidated when the workspace snapshot changes.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	lru "github.com/hashicorp/golang-lru/v2/expirable"
)

const redisKeyPrefix = "quicksearch:suggest:"

// Config for the suggestion cache.
type Config struct {
	MaxEntries int
	TTL        time.Duration

	// Redis tier, disabled when RedisURL is empty.
	RedisURL      string
	RedisPassword string
	RedisDB       int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxEntries: 1024,
		TTL:        30 * time.Second,
	}
}

// SuggestCache caches serialized suggestion responses.
type SuggestCache struct {
	l1  *lru.LRU[string, []byte]
	rdb *redis.Client
	ttl time.Duration
}

// New creates a suggestion cache. The Redis tier is optional; when the URL
// is set the connection is verified up front.
func New(cfg Config) (*SuggestCache, error) {
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = DefaultConfig().MaxEntries
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultConfig().TTL
	}

	c := &SuggestCache{
		l1:  lru.NewLRU[string, []byte](cfg.MaxEntries, nil, cfg.TTL),
		ttl: cfg.TTL,
	}

	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis URL: %w", err)
		}
		if cfg.RedisPassword != "" {
			opts.Password = cfg.RedisPassword
		}
		if cfg.RedisDB >= 0 {
			opts.DB = cfg.RedisDB
		}
		opts.DialTimeout = 5 * time.Second
		opts.ReadTimeout = 3 * time.Second
		opts.WriteTimeout = 3 * time.Second

		client := redis.NewClient(opts)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		c.rdb = client
	}

	return c, nil
}

// Redis exposes the underlying client for health checks; nil when the
// tier is disabled.
func (c *SuggestCache) Redis() *redis.Client {
	return c.rdb
}

// Get returns the cached payload for query and the tier it was served
// from ("l1" or "redis"). A miss returns ok=false.
func (c *SuggestCache) Get(ctx context.Context, query string) (payload []byte, tier string, ok bool) {
	if data, hit := c.l1.Get(query); hit {
		return data, "l1", true
	}
	if c.rdb == nil {
		return nil, "l1", false
	}

	data, err := c.rdb.Get(ctx, redisKeyPrefix+query).Bytes()
	if err == redis.Nil {
		return nil, "redis", false
	}
	if err != nil {
		// Treat a failing Redis as a miss; the engine recomputes.
		return nil, "redis", false
	}

	c.l1.Add(query, data)
	return data, "redis", true
}

// Set stores the payload in both tiers.
func (c *SuggestCache) Set(ctx context.Context, query string, payload []byte) error {
	c.l1.Add(query, payload)
	if c.rdb == nil {
		return nil
	}
	if err := c.rdb.Set(ctx, redisKeyPrefix+query, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// InvalidateAll drops every cached entry. Called on workspace reload.
func (c *SuggestCache) InvalidateAll(ctx context.Context) error {
	c.l1.Purge()
	if c.rdb == nil {
		return nil
	}

	var cursor uint64
	for {
		keys, next, err := c.rdb.Scan(ctx, cursor, redisKeyPrefix+"*", 100).Result()
		if err != nil {
			return fmt.Errorf("redis scan failed: %w", err)
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("redis del failed: %w", err)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

// Close releases the Redis connection.
func (c *SuggestCache) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
