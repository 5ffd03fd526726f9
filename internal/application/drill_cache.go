package application

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/tomdyson/go-amee/internal/domain"
	"github.com/tomdyson/go-amee/internal/ports"
	"golang.org/x/sync/singleflight"
)

// CacheNamespace isolates drill results from other users of the cache store.
const CacheNamespace = "AMEE"

// sharedDrillTimeout bounds a collapsed drill call, which outlives the
// cancellation of whichever caller started it.
const sharedDrillTimeout = 2 * time.Minute

// DrillCache memoizes drill results. Cached entries are never revalidated
// against the server.
type DrillCache struct {
	resolver Driller
	store    ports.CacheStore
	server   string
	group    singleflight.Group
	logger   hclog.Logger
}

var _ Driller = (*DrillCache)(nil)

func NewDrillCache(resolver Driller, store ports.CacheStore, server string, logger hclog.Logger) *DrillCache {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	return &DrillCache{
		resolver: resolver,
		store:    store,
		server:   server,
		logger:   logger.Named("drill-cache"),
	}
}

func (c *DrillCache) Drill(ctx context.Context, path string, choices domain.Choices, complete bool) (domain.DrillResult, error) {
	key := domain.DrillCacheKey(c.server, path, choices, complete)

	if result, ok := c.lookup(ctx, key); ok {
		c.logger.Debug("cache hit", "path", path)
		return result, nil
	}

	results := c.group.DoChan(key, func() (any, error) {
		shared, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedDrillTimeout)
		defer cancel()

		result, err := c.resolver.Drill(shared, path, choices, complete)
		if err != nil {
			return nil, err
		}
		c.save(shared, key, result)

		return result, nil
	})

	select {
	case <-ctx.Done():
		return domain.DrillResult{}, ctx.Err()
	case res := <-results:
		if res.Err != nil {
			return domain.DrillResult{}, res.Err
		}
		return res.Val.(domain.DrillResult), nil
	}
}

func (c *DrillCache) lookup(ctx context.Context, key string) (domain.DrillResult, bool) {
	raw, ok, err := c.store.Get(ctx, CacheNamespace, key)
	if err != nil {
		c.logger.Warn("cache read failed", "error", err)
		return domain.DrillResult{}, false
	}
	if !ok {
		return domain.DrillResult{}, false
	}

	var result domain.DrillResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		c.logger.Warn("discarding undecodable cache entry", "error", err)
		return domain.DrillResult{}, false
	}

	return result, true
}

func (c *DrillCache) save(ctx context.Context, key string, result domain.DrillResult) {
	encoded, err := json.Marshal(result)
	if err != nil {
		c.logger.Warn("cache encode failed", "error", fmt.Errorf("encode drill result: %w", err))
		return
	}

	if err := c.store.Set(ctx, CacheNamespace, key, string(encoded)); err != nil {
		c.logger.Warn("cache write failed", "error", err)
	}
}
