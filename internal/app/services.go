package app

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/yungbote/tagforge-backend/internal/cache"
	"github.com/yungbote/tagforge-backend/internal/pkg/logger"
	"github.com/yungbote/tagforge-backend/internal/services"
)

type Services struct {
	Taxonomy services.TaxonomyService
	Follow   services.TagFollowService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos) Services {
	log.Info("Wiring services...")

	// Redis is optional; without it the analytics cache is a no-op.
	var analyticsCache services.AnalyticsCache
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr: cfg.RedisAddr,
			DB:   cfg.RedisDB,
		})
		analyticsCache = cache.NewAnalyticsCache(client, cfg.AnalyticsTTL, log)
		log.Info("Analytics cache enabled", "addr", cfg.RedisAddr, "ttl", cfg.AnalyticsTTL)
	}

	taxonomyService := services.NewTaxonomyService(db, log, cfg.Taxonomy, repos.Tag, repos.Follow, repos.Post, analyticsCache)
	followService := services.NewTagFollowService(log, taxonomyService, repos.Tag, repos.Follow, analyticsCache)

	return Services{
		Taxonomy: taxonomyService,
		Follow:   followService,
	}
}
