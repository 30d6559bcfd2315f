package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/yungbote/tagforge-backend/internal/http/handlers"
	httpMW "github.com/yungbote/tagforge-backend/internal/http/middleware"
)

type RouterConfig struct {
	AuthMiddleware *httpMW.AuthMiddleware
	AllowedOrigins []string

	TagHandler      *httpH.TagHandler
	TaxonomyHandler *httpH.TaxonomyHandler
	FollowHandler   *httpH.FollowHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.Default()
	r.Use(httpMW.CORS(cfg.AllowedOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Public read surface
		if cfg.TagHandler != nil {
			api.GET("/tags", cfg.TagHandler.ListTags)
			api.GET("/tags/tree", cfg.TagHandler.GetNestedTree)
			api.GET("/tags/:id", cfg.TagHandler.GetTag)
			api.GET("/tags/:id/ancestors", cfg.TagHandler.GetAncestors)
			api.GET("/tags/:id/descendants", cfg.TagHandler.GetDescendants)
			api.GET("/tags/:id/siblings", cfg.TagHandler.GetSiblings)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Tag CRUD
		if cfg.TagHandler != nil {
			protected.POST("/tags", cfg.TagHandler.CreateTag)
			protected.PATCH("/tags/:id", cfg.TagHandler.UpdateTag)
			protected.DELETE("/tags/:id", cfg.TagHandler.DeleteTag)
		}

		// Follows
		if cfg.FollowHandler != nil {
			protected.GET("/tags/:id/follow", cfg.FollowHandler.FollowStatus)
			protected.POST("/tags/:id/follow", cfg.FollowHandler.Follow)
			protected.DELETE("/tags/:id/follow", cfg.FollowHandler.Unfollow)
		}

		// Taxonomy maintenance
		if cfg.TaxonomyHandler != nil {
			protected.GET("/taxonomy/duplicates", cfg.TaxonomyHandler.FindDuplicates)
			protected.POST("/taxonomy/duplicates/groups", cfg.TaxonomyHandler.GroupDuplicates)
			protected.POST("/taxonomy/merge", cfg.TaxonomyHandler.MergeTags)
			protected.POST("/taxonomy/merge/bulk", cfg.TaxonomyHandler.BulkMergeDuplicates)
			protected.POST("/taxonomy/rebuild-paths", cfg.TaxonomyHandler.RebuildTreePaths)
			protected.GET("/taxonomy/analytics", cfg.TaxonomyHandler.GetAnalytics)
			protected.POST("/taxonomy/bulk/delete", cfg.TaxonomyHandler.BulkDelete)
			protected.POST("/taxonomy/bulk/lock", cfg.TaxonomyHandler.BulkSetLocked)
			protected.POST("/taxonomy/bulk/parent", cfg.TaxonomyHandler.BulkSetParent)
			protected.POST("/taxonomy/bulk/style", cfg.TaxonomyHandler.BulkUpdateStyle)
			protected.POST("/taxonomy/cleanup", cfg.TaxonomyHandler.CleanupOrphans)
			protected.POST("/taxonomy/trending/refresh", cfg.TaxonomyHandler.RefreshTrending)
			protected.GET("/taxonomy/settings", cfg.TaxonomyHandler.GetSettings)
			protected.PUT("/taxonomy/settings", cfg.TaxonomyHandler.UpdateSettings)
		}
	}

	return r
}
