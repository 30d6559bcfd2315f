package app

import (
	"gorm.io/gorm"

	postrepo "github.com/yungbote/tagforge-backend/internal/data/repos/post"
	tagrepo "github.com/yungbote/tagforge-backend/internal/data/repos/tag"
	"github.com/yungbote/tagforge-backend/internal/pkg/logger"
)

type Repos struct {
	Tag    tagrepo.TagRepo
	Follow tagrepo.FollowRepo
	Post   postrepo.PostRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Tag:    tagrepo.NewTagRepo(db, log),
		Follow: tagrepo.NewFollowRepo(db, log),
		Post:   postrepo.NewPostRepo(db, log),
	}
}
