package cache

import (
	"context"
	"testing"
	"time"

	"github.com/yungbote/tagforge-backend/internal/pkg/logger"
	"github.com/yungbote/tagforge-backend/internal/taxonomy"
)

func TestNilCacheIsSafe(t *testing.T) {
	t.Parallel()
	var ac *AnalyticsCache
	ctx := context.Background()

	if got := ac.Get(ctx); got != nil {
		t.Fatalf("nil cache returned a report: %+v", got)
	}
	ac.Set(ctx, &taxonomy.TagAnalytics{GeneratedAt: time.Now()})
	ac.Invalidate(ctx)
}

func TestNewAnalyticsCacheWithoutClient(t *testing.T) {
	t.Parallel()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	if ac := NewAnalyticsCache(nil, time.Minute, log); ac != nil {
		t.Fatalf("nil client should yield a nil cache")
	}
}
