package assets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/redis/go-redis/v9"

	"github.com/atlascene/layer-composer/internal/observability"
)

// Cache keeps asset metadata behind a small in-process LRU with redis as the
// shared tier. Every redis operation runs under its own short timeout so a
// slow cache never stalls a submission.
type Cache struct {
	mem       *lru.Cache[string, Asset]
	rdb       *redis.Client
	ttl       time.Duration
	opTimeout time.Duration
}

type CacheOption func(*redis.Options)

func WithDialTimeout(d time.Duration) CacheOption {
	return func(o *redis.Options) { o.DialTimeout = d }
}

func WithPoolSize(n int) CacheOption {
	return func(o *redis.Options) { o.PoolSize = n }
}

func NewCache(ctx context.Context, addr string, size int, ttl, opTimeout time.Duration, opts ...CacheOption) (*Cache, error) {
	if addr == "" {
		return nil, errors.New("redis address is required")
	}
	if size <= 0 {
		size = 512
	}

	ro := &redis.Options{
		Addr:         addr,
		PoolSize:     64,
		MinIdleConns: 4,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	}
	for _, f := range opts {
		f(ro)
	}

	rdb := redis.NewClient(ro)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	mem, err := lru.New[string, Asset](size)
	if err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("lru: %w", err)
	}
	return &Cache{mem: mem, rdb: rdb, ttl: ttl, opTimeout: opTimeout}, nil
}

// Get checks the LRU, then redis. A redis failure counts as a miss.
func (c *Cache) Get(ctx context.Context, ref string) (Asset, bool) {
	if a, ok := c.mem.Get(ref); ok {
		observability.IncAssetCache("mem", "hit")
		return a, true
	}
	observability.IncAssetCache("mem", "miss")

	ctx, cancel := context.WithTimeout(ctx, c.opTimeout)
	defer cancel()
	b, err := c.rdb.Get(ctx, cacheKey(ref)).Bytes()
	if err != nil {
		observability.IncAssetCache("redis", "miss")
		return Asset{}, false
	}
	var a Asset
	if err := json.Unmarshal(b, &a); err != nil {
		observability.IncAssetCache("redis", "miss")
		return Asset{}, false
	}
	observability.IncAssetCache("redis", "hit")
	c.mem.Add(ref, a)
	return a, true
}

// Put stores to both tiers; redis errors are returned so the caller can log
// them, but the LRU write always happens.
func (c *Cache) Put(ctx context.Context, ref string, a Asset) error {
	c.mem.Add(ref, a)

	b, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("encode asset: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, c.opTimeout)
	defer cancel()
	if err := c.rdb.Set(ctx, cacheKey(ref), b, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Ping reports whether the shared tier is reachable.
func (c *Cache) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.opTimeout)
	defer cancel()
	return c.rdb.Ping(ctx).Err()
}

func (c *Cache) Close() error {
	return c.rdb.Close()
}
