package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/licitation-service/internal/domain"
)

const listKey = "licitations:all"

// LicitationCache keeps the full licitation listing in Redis for a short
// TTL. Every method is nil-safe so the service runs without Redis.
type LicitationCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewLicitationCache builds a cache around an existing client.
func NewLicitationCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *LicitationCache {
	return &LicitationCache{client: client, ttl: ttl, logger: logger}
}

// GetList returns the cached listing and whether it was present.
func (c *LicitationCache) GetList(ctx context.Context) ([]domain.Licitation, bool) {
	if c == nil || c.client == nil || c.ttl <= 0 {
		return nil, false
	}
	raw, err := c.client.Get(ctx, listKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("licitation cache read failed", zap.Error(err))
		}
		return nil, false
	}
	var licitations []domain.Licitation
	if err := json.Unmarshal(raw, &licitations); err != nil {
		c.logger.Warn("licitation cache decode failed", zap.Error(err))
		return nil, false
	}
	return licitations, true
}

// SetList stores the listing.
func (c *LicitationCache) SetList(ctx context.Context, licitations []domain.Licitation) {
	if c == nil || c.client == nil || c.ttl <= 0 {
		return
	}
	raw, err := json.Marshal(licitations)
	if err != nil {
		c.logger.Warn("licitation cache encode failed", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, listKey, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("licitation cache write failed", zap.Error(err))
	}
}

// Invalidate drops the cached listing. Called after every mutation.
func (c *LicitationCache) Invalidate(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, listKey).Err(); err != nil {
		c.logger.Warn("licitation cache invalidation failed", zap.Error(err))
	}
}
