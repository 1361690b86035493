// Package cache keeps search results in redis. Every key embeds a dataset
// generation number; bumping the generation after an import makes all
// previous entries unreachable until they expire.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"skrytki/internal/events"
	"skrytki/internal/search/transport"
	"skrytki/platform/logger"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix     = "skrytki:search:"
	generationKey = keyPrefix + "generation"
)

// ResultCache is a read-through cache of search results. A nil
// *ResultCache is valid and caches nothing.
type ResultCache struct {
	rdb *redis.Client
	ttl time.Duration
	log *logger.Logger
}

// New returns a cache over rdb, or nil when rdb is nil or ttl is not
// positive.
func New(rdb *redis.Client, ttl time.Duration, log *logger.Logger) *ResultCache {
	if rdb == nil || ttl <= 0 {
		return nil
	}
	if log == nil {
		log = logger.Discard()
	}
	return &ResultCache{rdb: rdb, ttl: ttl, log: log}
}

// Get returns the cached result for params. Misses and redis failures both
// report ok=false; failures are logged.
func (c *ResultCache) Get(ctx context.Context, params transport.SearchParams) ([]transport.AddressRecord, bool) {
	if c == nil {
		return nil, false
	}

	key, err := c.key(ctx, params)
	if err != nil {
		c.log.Warn("search cache unavailable", "error", err)
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		c.log.Warn("search cache read failed", "error", err)
		return nil, false
	}

	var records []transport.AddressRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		c.log.Warn("search cache entry corrupt", "key", key, "error", err)
		return nil, false
	}
	return records, true
}

// Set stores records for params. Failures are logged and otherwise ignored.
func (c *ResultCache) Set(ctx context.Context, params transport.SearchParams, records []transport.AddressRecord) {
	if c == nil {
		return
	}

	key, err := c.key(ctx, params)
	if err != nil {
		c.log.Warn("search cache unavailable", "error", err)
		return
	}

	raw, err := json.Marshal(records)
	if err != nil {
		c.log.Warn("search cache encode failed", "error", err)
		return
	}

	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.log.Warn("search cache write failed", "error", err)
	}
}

// Invalidate moves the cache to a new generation.
func (c *ResultCache) Invalidate(ctx context.Context) error {
	if c == nil {
		return nil
	}
	if err := c.rdb.Incr(ctx, generationKey).Err(); err != nil {
		return fmt.Errorf("bump search cache generation: %w", err)
	}
	return nil
}

// HandleDatasetImported is an events.Handler invalidating the cache after an
// import.
func (c *ResultCache) HandleDatasetImported(ctx context.Context, event events.Event) error {
	if _, ok := event.(events.DatasetImported); !ok {
		return nil
	}
	return c.Invalidate(ctx)
}

func (c *ResultCache) key(ctx context.Context, params transport.SearchParams) (string, error) {
	gen, err := c.rdb.Get(ctx, generationKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", err
	}
	return fmt.Sprintf("%s%d:%t:%d:%s", keyPrefix, gen, params.CzyUrzad, params.Limit, params.Query), nil
}
