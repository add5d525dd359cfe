// Package cache provides a Redis read-through cache for the content catalog.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/learnpath/backend/internal/models"
	"github.com/learnpath/backend/internal/progress"
	"go.uber.org/zap"
)

const (
	unitsKeyPrefix    = "catalog:units:"
	contentsKeyPrefix = "catalog:contents:"
)

// Redis is the part of *redis.Client the cache uses
type Redis interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// CatalogCache wraps a ContentCatalog and keeps its answers in Redis for "ttl".
// Redis failures are logged and fall through to the wrapped catalog.
type CatalogCache struct {
	next   progress.ContentCatalog
	rdb    Redis
	ttl    time.Duration
	logger *zap.Logger
}

// NewCatalogCache creates a cache in front of "next"
func NewCatalogCache(next progress.ContentCatalog, rdb Redis, ttl time.Duration, logger *zap.Logger) *CatalogCache {
	return &CatalogCache{
		next:   next,
		rdb:    rdb,
		ttl:    ttl,
		logger: logger,
	}
}

// ListUnits returns the cached units of a module or loads them from the wrapped catalog
func (c *CatalogCache) ListUnits(ctx context.Context, moduleID string) ([]models.Unit, error) {
	key := unitsKeyPrefix + moduleID

	var units []models.Unit
	if c.get(ctx, key, &units) {
		return units, nil
	}

	units, err := c.next.ListUnits(ctx, moduleID)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, units)
	return units, nil
}

// ListContent returns the cached content of a unit or loads it from the wrapped catalog
func (c *CatalogCache) ListContent(ctx context.Context, unitID string) ([]models.ContentItem, error) {
	key := contentsKeyPrefix + unitID

	var items []models.ContentItem
	if c.get(ctx, key, &items) {
		return items, nil
	}

	items, err := c.next.ListContent(ctx, unitID)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, items)
	return items, nil
}

// InvalidateModule drops the cached unit list of a module
func (c *CatalogCache) InvalidateModule(ctx context.Context, moduleID string) error {
	if err := c.rdb.Del(ctx, unitsKeyPrefix+moduleID).Err(); err != nil {
		return fmt.Errorf("failed to invalidate module cache: %w", err)
	}
	return nil
}

// InvalidateUnit drops the cached content list of a unit
func (c *CatalogCache) InvalidateUnit(ctx context.Context, unitID string) error {
	if err := c.rdb.Del(ctx, contentsKeyPrefix+unitID).Err(); err != nil {
		return fmt.Errorf("failed to invalidate unit cache: %w", err)
	}
	return nil
}

func (c *CatalogCache) get(ctx context.Context, key string, out any) bool {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		c.logger.Warn("catalog cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		c.logger.Warn("catalog cache entry is corrupt", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (c *CatalogCache) set(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("failed to encode catalog cache entry", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("catalog cache write failed", zap.String("key", key), zap.Error(err))
	}
}
