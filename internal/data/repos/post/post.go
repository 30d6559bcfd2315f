package post

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/tagforge-backend/internal/domain"
	"github.com/yungbote/tagforge-backend/internal/pkg/logger"
)

type PostRepo interface {
	Create(ctx context.Context, tx *gorm.DB, posts []*domain.Post) ([]*domain.Post, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, postIDs []uuid.UUID) ([]*domain.Post, error)
	CountByTag(ctx context.Context, tx *gorm.DB, tagID uuid.UUID) (int64, error)
	AttachTags(ctx context.Context, tx *gorm.DB, postID uuid.UUID, tags []*domain.Tag) error
}

type postRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostRepo(db *gorm.DB, baseLog *logger.Logger) PostRepo {
	repoLog := baseLog.With("repo", "PostRepo")
	return &postRepo{db: db, log: repoLog}
}

func (pr *postRepo) Create(ctx context.Context, tx *gorm.DB, posts []*domain.Post) ([]*domain.Post, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if len(posts) == 0 {
		return []*domain.Post{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (pr *postRepo) GetByIDs(ctx context.Context, tx *gorm.DB, postIDs []uuid.UUID) ([]*domain.Post, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var results []*domain.Post
	if len(postIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", postIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *postRepo) CountByTag(ctx context.Context, tx *gorm.DB, tagID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Table("post_tag").
		Where("tag_id = ?", tagID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (pr *postRepo) AttachTags(ctx context.Context, tx *gorm.DB, postID uuid.UUID, tags []*domain.Tag) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if len(tags) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&domain.Post{ID: postID}).
		Association("Tags").
		Append(tags)
}
