package app

import (
	"github.com/gin-gonic/gin"

	internalhttp "github.com/yungbote/tagforge-backend/internal/http"
)

func wireRouter(cfg Config, handlers Handlers, middleware Middleware) *gin.Engine {
	return internalhttp.NewRouter(internalhttp.RouterConfig{
		AuthMiddleware:  middleware.Auth,
		AllowedOrigins:  cfg.AllowedOrigins,
		TagHandler:      handlers.Tag,
		TaxonomyHandler: handlers.Taxonomy,
		FollowHandler:   handlers.Follow,
		HealthHandler:   handlers.Health,
	})
}
