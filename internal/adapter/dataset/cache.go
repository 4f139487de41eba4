package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ressKim-io/promptclf/internal/domain/entity"
	"github.com/ressKim-io/promptclf/internal/domain/service"
)

const cacheKeyPrefix = "promptclf:dataset:"

// CachedProvider keeps loaded dataset slices in Redis.
// Redis failures are logged and the inner provider is used instead.
type CachedProvider struct {
	inner  service.DatasetProvider
	redis  *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedProvider wraps inner with a Redis cache
func NewCachedProvider(inner service.DatasetProvider, client *redis.Client, ttl time.Duration, logger *zap.Logger) *CachedProvider {
	return &CachedProvider{inner: inner, redis: client, ttl: ttl, logger: logger}
}

var _ service.DatasetProvider = (*CachedProvider)(nil)

// Load returns the cached slice when present, otherwise loads and stores it
func (c *CachedProvider) Load(ctx context.Context, name, split string) (*entity.Dataset, error) {
	key := cacheKey(name, split)

	data, err := c.redis.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var ds entity.Dataset
		if err := json.Unmarshal(data, &ds); err == nil {
			c.logger.Debug("Dataset cache hit", zap.String("key", key))
			return &ds, nil
		}
		c.logger.Warn("Discarding corrupt dataset cache entry", zap.String("key", key))
	case errors.Is(err, redis.Nil):
	default:
		c.logger.Warn("Dataset cache read failed", zap.String("key", key), zap.Error(err))
	}

	ds, err := c.inner.Load(ctx, name, split)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(ds); err == nil {
		if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.logger.Warn("Dataset cache write failed", zap.String("key", key), zap.Error(err))
		}
	}

	return ds, nil
}

func cacheKey(name, split string) string {
	return cacheKeyPrefix + name + ":" + split
}
