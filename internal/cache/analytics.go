package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yungbote/tagforge-backend/internal/pkg/logger"
	"github.com/yungbote/tagforge-backend/internal/taxonomy"
)

const analyticsKey = "tagforge:analytics"

// AnalyticsCache keeps the last analytics report in redis so repeated
// dashboard reads skip the corpus scan. A nil cache is valid and means
// caching is disabled; every method is safe to call on it.
type AnalyticsCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

func NewAnalyticsCache(client *redis.Client, ttl time.Duration, baseLog *logger.Logger) *AnalyticsCache {
	if client == nil {
		return nil
	}
	return &AnalyticsCache{
		client: client,
		ttl:    ttl,
		log:    baseLog.With("cache", "AnalyticsCache"),
	}
}

// Get returns the cached report, or nil on miss. Redis failures degrade to a
// miss rather than failing the read path.
func (ac *AnalyticsCache) Get(ctx context.Context) *taxonomy.TagAnalytics {
	if ac == nil {
		return nil
	}
	raw, err := ac.client.Get(ctx, analyticsKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			ac.log.Warn("Analytics cache read failed", "error", err)
		}
		return nil
	}
	var report taxonomy.TagAnalytics
	if err := json.Unmarshal(raw, &report); err != nil {
		ac.log.Warn("Analytics cache entry malformed, dropping", "error", err)
		ac.Invalidate(ctx)
		return nil
	}
	return &report
}

func (ac *AnalyticsCache) Set(ctx context.Context, report *taxonomy.TagAnalytics) {
	if ac == nil || report == nil {
		return
	}
	raw, err := json.Marshal(report)
	if err != nil {
		ac.log.Warn("Analytics cache encode failed", "error", err)
		return
	}
	if err := ac.client.Set(ctx, analyticsKey, raw, ac.ttl).Err(); err != nil {
		ac.log.Warn("Analytics cache write failed", "error", err)
	}
}

// Invalidate drops the cached report. Mutating operations call this so the
// next read recomputes.
func (ac *AnalyticsCache) Invalidate(ctx context.Context) {
	if ac == nil {
		return
	}
	if err := ac.client.Del(ctx, analyticsKey).Err(); err != nil {
		ac.log.Warn("Analytics cache invalidate failed", "error", err)
	}
}
