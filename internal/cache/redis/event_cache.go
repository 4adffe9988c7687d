// Package redis implements the catalog's detail cache using go-redis/v9.
package redis

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/alanyoungcy/polyterm/internal/catalog"
	"github.com/alanyoungcy/polyterm/internal/domain"
	"github.com/alanyoungcy/polyterm/internal/platform/polymarket"
)

// eventDetailTTL bounds how long an enriched detail record may be reused.
const eventDetailTTL = 5 * time.Minute

// ClientConfig holds connection parameters for the Redis client.
type ClientConfig struct {
	Addr       string
	Password   string
	DB         int
	PoolSize   int
	MaxRetries int
	TLSEnabled bool
}

// EventCache stores full event detail records fetched during search
// enrichment, keyed by slug with a short TTL. It implements
// catalog.DetailCache.
//
// Key schema:
//
//	event:detail:{slug} - JSON-serialized raw record
type EventCache struct {
	rdb *redis.Client
}

// New dials Redis, pings it to verify connectivity, and returns an
// EventCache. It returns an error if the connection cannot be
// established.
func New(ctx context.Context, cfg ClientConfig) (*EventCache, error) {
	opts := &redis.Options{
		Addr:       cfg.Addr,
		Password:   cfg.Password,
		DB:         cfg.DB,
		PoolSize:   cfg.PoolSize,
		MaxRetries: cfg.MaxRetries,
	}

	if cfg.TLSEnabled {
		opts.TLSConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
		}
	}

	rdb := redis.NewClient(opts)

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}

	return &EventCache{rdb: rdb}, nil
}

func eventDetailKey(slug string) string { return "event:detail:" + slug }

// Get retrieves a cached detail record by slug.
// It returns domain.ErrNotFound when the key does not exist.
func (ec *EventCache) Get(ctx context.Context, slug string) (polymarket.RawRecord, error) {
	data, err := ec.rdb.Get(ctx, eventDetailKey(slug)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return polymarket.RawRecord{}, domain.ErrNotFound
		}
		return polymarket.RawRecord{}, fmt.Errorf("redis: get event detail %s: %w", slug, err)
	}

	var rec polymarket.RawRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return polymarket.RawRecord{}, fmt.Errorf("redis: unmarshal event detail %s: %w", slug, err)
	}
	return rec, nil
}

// Set stores a detail record under its slug with the cache TTL.
func (ec *EventCache) Set(ctx context.Context, slug string, rec polymarket.RawRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("redis: marshal event detail %s: %w", slug, err)
	}

	if err := ec.rdb.Set(ctx, eventDetailKey(slug), data, eventDetailTTL).Err(); err != nil {
		return fmt.Errorf("redis: set event detail %s: %w", slug, err)
	}
	return nil
}

// Close closes the Redis connection.
func (ec *EventCache) Close() error {
	return ec.rdb.Close()
}

// Compile-time interface check.
var _ catalog.DetailCache = (*EventCache)(nil)
