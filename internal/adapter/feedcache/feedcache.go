// Package feedcache shares NeoWs feed results between service instances
// through a key-value store, keyed by feed date.
package feedcache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/couchcryptid/neo-impact-service/internal/domain"
	"github.com/couchcryptid/neo-impact-service/internal/observability"
)

const keyPrefix = "neo:feed:"

// Store is the subset of key-value operations the cache needs.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

type pinger interface {
	Ping(ctx context.Context) error
}

// CachedFeed decorates a FeedSource with a shared cache. Store failures
// are logged and the upstream feed is used instead.
type CachedFeed struct {
	inner   domain.FeedSource
	store   Store
	ttl     time.Duration
	metrics *observability.Metrics
	logger  *slog.Logger
}

// New creates a cache decorator around a feed source.
func New(inner domain.FeedSource, store Store, ttl time.Duration, metrics *observability.Metrics, logger *slog.Logger) *CachedFeed {
	return &CachedFeed{
		inner:   inner,
		store:   store,
		ttl:     ttl,
		metrics: metrics,
		logger:  logger,
	}
}

// Key returns the cache key for a feed date.
func Key(date string) string {
	return keyPrefix + date
}

func (c *CachedFeed) FetchFeed(ctx context.Context, date string) ([]domain.NearEarthObject, error) {
	key := Key(date)

	payload, ok, err := c.store.Get(ctx, key)
	switch {
	case err != nil:
		c.metrics.FeedCache.WithLabelValues("error").Inc()
		c.logger.Warn("feed cache read failed", "key", key, "error", err)
	case ok:
		var objects []domain.NearEarthObject
		if err := json.Unmarshal([]byte(payload), &objects); err == nil {
			c.metrics.FeedCache.WithLabelValues("hit").Inc()
			if objects == nil {
				objects = []domain.NearEarthObject{}
			}
			return objects, nil
		}
		c.metrics.FeedCache.WithLabelValues("error").Inc()
		c.logger.Warn("discarding corrupt feed cache entry", "key", key)
	default:
		c.metrics.FeedCache.WithLabelValues("miss").Inc()
	}

	objects, err := c.inner.FetchFeed(ctx, date)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(objects)
	if err != nil {
		c.logger.Warn("encode feed for cache", "key", key, "error", err)
		return objects, nil
	}
	if err := c.store.Set(ctx, key, string(data), c.ttl); err != nil {
		c.metrics.FeedCache.WithLabelValues("error").Inc()
		c.logger.Warn("feed cache write failed", "key", key, "error", err)
	}
	return objects, nil
}

// CheckReadiness pings the store when it supports it.
func (c *CachedFeed) CheckReadiness(ctx context.Context) error {
	if p, ok := c.store.(pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}
