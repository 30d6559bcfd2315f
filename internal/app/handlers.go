package app

import (
	httpH "github.com/yungbote/tagforge-backend/internal/http/handlers"
	"github.com/yungbote/tagforge-backend/internal/pkg/logger"
)

type Handlers struct {
	Tag      *httpH.TagHandler
	Taxonomy *httpH.TaxonomyHandler
	Follow   *httpH.FollowHandler
	Health   *httpH.HealthHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Tag:      httpH.NewTagHandler(services.Taxonomy),
		Taxonomy: httpH.NewTaxonomyHandler(services.Taxonomy),
		Follow:   httpH.NewFollowHandler(services.Follow),
		Health:   httpH.NewHealthHandler(),
	}
}
