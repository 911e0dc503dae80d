package catalog

import (
	"context"
	"time"

	"go.uber.org/zap"

	"ai-interview-lab/internal/core/cache"
	"ai-interview-lab/internal/domain"
)

const (
	keyRoles = "catalog:roles"
	keyStats = "catalog:stats"
)

// Cached 把 Roles / Stats 缓存到 Redis，其余查询直接透传
type Cached struct {
	*Service
	cache *cache.Cache
	ttl   time.Duration
	log   *zap.Logger
}

func NewCached(s *Service, c *cache.Cache, ttl time.Duration, l *zap.Logger) *Cached {
	if l == nil {
		l = zap.NewNop()
	}
	return &Cached{Service: s, cache: c, ttl: ttl, log: l}
}

func (c *Cached) Roles(ctx context.Context) ([]string, error) {
	return cache.GetOrLoadJSON(c.cache, ctx, keyRoles, c.ttl, c.Service.Roles)
}

func (c *Cached) Stats(ctx context.Context) (Stats, error) {
	return cache.GetOrLoadJSON(c.cache, ctx, keyStats, c.ttl, c.Service.Stats)
}

func (c *Cached) Replace(ctx context.Context, qs []domain.Question) error {
	if err := c.Service.Replace(ctx, qs); err != nil {
		return err
	}
	if err := c.cache.Invalidate(ctx, keyRoles, keyStats); err != nil {
		c.log.Warn("catalog cache invalidate failed", zap.Error(err))
	}
	return nil
}
