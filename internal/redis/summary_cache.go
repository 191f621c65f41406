package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/pscheid92/ratingpulse/internal/analytics"
	"github.com/pscheid92/ratingpulse/internal/metrics"
)

const summaryCacheKey = "analytics:summary:all_time"

// SummaryCache caches the all-time analytics summary in redis.
// Reads are best-effort: any redis failure is logged and treated as a
// miss so the caller recomputes from postgres.
type SummaryCache struct {
	rdb goredis.Cmdable
	ttl time.Duration
}

// NewSummaryCache creates a summary cache with the given TTL.
func NewSummaryCache(rdb goredis.Cmdable, ttl time.Duration) *SummaryCache {
	return &SummaryCache{rdb: rdb, ttl: ttl}
}

// Get returns the cached summary, or (nil, nil) on a miss.
func (c *SummaryCache) Get(ctx context.Context) (*analytics.Summary, error) {
	data, err := c.rdb.Get(ctx, summaryCacheKey).Bytes()
	if errors.Is(err, goredis.Nil) {
		metrics.SummaryCacheMisses.Inc()
		return nil, nil
	}
	if err != nil {
		slog.Warn("Summary cache GET failed, falling through to postgres", "error", err)
		metrics.SummaryCacheMisses.Inc()
		return nil, nil
	}

	var summary analytics.Summary
	if err := json.Unmarshal(data, &summary); err != nil {
		slog.Warn("Failed to unmarshal cached summary, falling through to postgres", "error", err)
		metrics.SummaryCacheMisses.Inc()
		return nil, nil
	}

	metrics.SummaryCacheHits.Inc()
	return &summary, nil
}

// Set stores the summary with the configured TTL (best-effort).
func (c *SummaryCache) Set(ctx context.Context, summary analytics.Summary) {
	encoded, err := json.Marshal(summary)
	if err != nil {
		slog.Warn("Failed to marshal summary for caching", "error", err)
		return
	}
	if err := c.rdb.Set(ctx, summaryCacheKey, encoded, c.ttl).Err(); err != nil {
		slog.Warn("Failed to populate summary cache", "error", err)
	}
}

// Invalidate drops the cached summary. Called on every write to the
// ratings table so cached values never outlive a mutation by more than
// one round trip.
func (c *SummaryCache) Invalidate(ctx context.Context) error {
	if err := c.rdb.Del(ctx, summaryCacheKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate summary cache: %w", err)
	}
	return nil
}
