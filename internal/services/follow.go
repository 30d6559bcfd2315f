package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	tagrepo "github.com/yungbote/tagforge-backend/internal/data/repos/tag"
	"github.com/yungbote/tagforge-backend/internal/domain"
	"github.com/yungbote/tagforge-backend/internal/pkg/logger"
	"github.com/yungbote/tagforge-backend/internal/taxonomy"
)

// TagFollowService manages user subscriptions to tags.
type TagFollowService interface {
	Follow(ctx context.Context, tagID, userID uuid.UUID) (*domain.TagFollow, error)
	Unfollow(ctx context.Context, tagID, userID uuid.UUID) error
	IsFollowing(ctx context.Context, tagID, userID uuid.UUID) (bool, error)
	FollowerCount(ctx context.Context, tagID uuid.UUID) (int64, error)
}

type tagFollowService struct {
	log        *logger.Logger
	taxonomy   TaxonomyService
	tagRepo    tagrepo.TagRepo
	followRepo tagrepo.FollowRepo
	analytics  AnalyticsCache
}

func NewTagFollowService(log *logger.Logger, taxonomy TaxonomyService, tagRepo tagrepo.TagRepo, followRepo tagrepo.FollowRepo, analytics AnalyticsCache) TagFollowService {
	if analytics == nil {
		analytics = noopAnalyticsCache{}
	}
	return &tagFollowService{
		log:        log.With("service", "TagFollowService"),
		taxonomy:   taxonomy,
		tagRepo:    tagRepo,
		followRepo: followRepo,
		analytics:  analytics,
	}
}

func (fs *tagFollowService) Follow(ctx context.Context, tagID, userID uuid.UUID) (*domain.TagFollow, error) {
	if !fs.taxonomy.CurrentConfig().FollowingEnabled {
		return nil, taxonomy.ErrFollowingDisabled
	}
	if _, err := fs.taxonomy.GetTag(ctx, tagID); err != nil {
		return nil, err
	}

	existing, err := fs.followRepo.GetByTagAndUser(ctx, nil, tagID, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("checking existing follow: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("tag %s: %w", tagID, taxonomy.ErrAlreadyFollowing)
	}

	follow := &domain.TagFollow{
		ID:     uuid.New(),
		TagID:  tagID,
		UserID: userID,
		Weight: 1,
	}
	created, err := fs.followRepo.Create(ctx, nil, []*domain.TagFollow{follow})
	if err != nil {
		return nil, fmt.Errorf("creating follow: %w", err)
	}
	fs.analytics.Invalidate(ctx)
	fs.log.Info("Tag followed", "tag_id", tagID, "user_id", userID)
	return created[0], nil
}

func (fs *tagFollowService) Unfollow(ctx context.Context, tagID, userID uuid.UUID) error {
	if !fs.taxonomy.CurrentConfig().FollowingEnabled {
		return taxonomy.ErrFollowingDisabled
	}
	existing, err := fs.followRepo.GetByTagAndUser(ctx, nil, tagID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("tag %s: %w", tagID, taxonomy.ErrNotFollowing)
		}
		return fmt.Errorf("looking up follow: %w", err)
	}
	if err := fs.followRepo.Delete(ctx, nil, existing.ID); err != nil {
		return fmt.Errorf("deleting follow: %w", err)
	}
	fs.analytics.Invalidate(ctx)
	fs.log.Info("Tag unfollowed", "tag_id", tagID, "user_id", userID)
	return nil
}

func (fs *tagFollowService) IsFollowing(ctx context.Context, tagID, userID uuid.UUID) (bool, error) {
	_, err := fs.followRepo.GetByTagAndUser(ctx, nil, tagID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (fs *tagFollowService) FollowerCount(ctx context.Context, tagID uuid.UUID) (int64, error) {
	return fs.followRepo.CountByTag(ctx, nil, tagID)
}
