//go:generate mockgen -source ./stats_cache.go -destination=./mocks/stats_cache.go -package=mock_cache
package cache

import (
	"context"
	"log"
	"sync"
	"time"

	"gitlab.ozon.dev/ecom/returns/internal/lifecycle"
	"gitlab.ozon.dev/ecom/returns/internal/metrics"
)

type StatusCounter interface {
	CountByStatus(ctx context.Context) (map[lifecycle.Status]int64, error)
}

// StatsCache is a TTL read model over the per-status counts backing the
// admin dashboard. Counts refresh lazily on read and may trail the store by
// up to one TTL.
type StatsCache struct {
	mu        sync.RWMutex
	counts    map[lifecycle.Status]int64
	fetchedAt time.Time

	source StatusCounter
	ttl    time.Duration

	timeNow func() time.Time
}

func NewStatsCache(source StatusCounter, ttl time.Duration) *StatsCache {
	return &StatsCache{
		source:  source,
		ttl:     ttl,
		timeNow: time.Now,
	}
}

// Refresh reloads the counts regardless of age. Called on boot so the first
// dashboard hit is served warm.
func (c *StatsCache) Refresh(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.refreshLocked(ctx)
}

func (c *StatsCache) Stats(ctx context.Context) (map[lifecycle.Status]int64, error) {
	c.mu.RLock()
	if c.fresh() {
		counts := copyCounts(c.counts)
		c.mu.RUnlock()
		return counts, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Another reader may have refreshed while we waited for the write lock.
	if c.fresh() {
		return copyCounts(c.counts), nil
	}

	if err := c.refreshLocked(ctx); err != nil {
		if c.fetchedAt.IsZero() {
			return nil, err
		}
		// Stale counts beat a dashboard error.
		log.Printf("Stats cache refresh failed, serving counts from %s: %v", c.fetchedAt.Format(time.RFC3339), err)
		return copyCounts(c.counts), nil
	}
	return copyCounts(c.counts), nil
}

// fresh must be called with at least a read lock held.
func (c *StatsCache) fresh() bool {
	return !c.fetchedAt.IsZero() && c.timeNow().Sub(c.fetchedAt) < c.ttl
}

func (c *StatsCache) refreshLocked(ctx context.Context) error {
	counts, err := c.source.CountByStatus(ctx)
	if err != nil {
		return err
	}
	c.counts = counts
	c.fetchedAt = c.timeNow()

	metrics.RequestsByStatus.Reset()
	for status, count := range counts {
		metrics.RequestsByStatus.WithLabelValues(string(status)).Set(float64(count))
	}
	return nil
}

// copyCounts keeps callers from mutating the cached map.
func copyCounts(src map[lifecycle.Status]int64) map[lifecycle.Status]int64 {
	dst := make(map[lifecycle.Status]int64, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
