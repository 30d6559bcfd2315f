package services

import (
	"context"
	"testing"

	"gorm.io/gorm"

	postrepo "github.com/yungbote/tagforge-backend/internal/data/repos/post"
	tagrepo "github.com/yungbote/tagforge-backend/internal/data/repos/tag"
	"github.com/yungbote/tagforge-backend/internal/data/repos/testutil"
	"github.com/yungbote/tagforge-backend/internal/taxonomy"
)

// newTestService wires the taxonomy service against a fresh in-memory store.
// The analytics cache stays nil, which disables caching.
func newTestService(t *testing.T) (TaxonomyService, *gorm.DB) {
	t.Helper()
	svc, db := newTestServiceWithCache(t, nil)
	return svc, db
}

func newTestServiceWithCache(t *testing.T, analytics AnalyticsCache) (TaxonomyService, *gorm.DB) {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)

	tagRepo := tagrepo.NewTagRepo(db, log)
	followRepo := tagrepo.NewFollowRepo(db, log)
	postRepo := postrepo.NewPostRepo(db, log)

	svc := NewTaxonomyService(db, log, taxonomy.DefaultConfig(), tagRepo, followRepo, postRepo, analytics)
	return svc, db
}

func newTestFollowService(t *testing.T, svc TaxonomyService, db *gorm.DB) TagFollowService {
	t.Helper()
	log := testutil.Logger(t)
	return NewTagFollowService(log, svc, tagrepo.NewTagRepo(db, log), tagrepo.NewFollowRepo(db, log), nil)
}

// memoryCache is an in-process AnalyticsCache used to observe invalidation.
type memoryCache struct {
	report        *taxonomy.TagAnalytics
	invalidations int
}

func (mc *memoryCache) Get(context.Context) *taxonomy.TagAnalytics { return mc.report }

func (mc *memoryCache) Set(_ context.Context, report *taxonomy.TagAnalytics) {
	mc.report = report
}

func (mc *memoryCache) Invalidate(context.Context) {
	mc.report = nil
	mc.invalidations++
}
