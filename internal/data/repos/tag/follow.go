package tag

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/tagforge-backend/internal/domain"
	"github.com/yungbote/tagforge-backend/internal/pkg/logger"
)

type FollowRepo interface {
	Create(ctx context.Context, tx *gorm.DB, follows []*domain.TagFollow) ([]*domain.TagFollow, error)
	GetByTagAndUser(ctx context.Context, tx *gorm.DB, tagID, userID uuid.UUID) (*domain.TagFollow, error)
	Delete(ctx context.Context, tx *gorm.DB, followID uuid.UUID) error
	DeleteByTagIDs(ctx context.Context, tx *gorm.DB, tagIDs []uuid.UUID) error
	ReassignTags(ctx context.Context, tx *gorm.DB, fromTagIDs []uuid.UUID, toTagID uuid.UUID) (int64, error)
	CountByTag(ctx context.Context, tx *gorm.DB, tagID uuid.UUID) (int64, error)
	CountAll(ctx context.Context, tx *gorm.DB) (int64, error)
}

type followRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFollowRepo(db *gorm.DB, baseLog *logger.Logger) FollowRepo {
	repoLog := baseLog.With("repo", "FollowRepo")
	return &followRepo{db: db, log: repoLog}
}

func (fr *followRepo) Create(ctx context.Context, tx *gorm.DB, follows []*domain.TagFollow) ([]*domain.TagFollow, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	if len(follows) == 0 {
		return []*domain.TagFollow{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&follows).Error; err != nil {
		return nil, err
	}
	return follows, nil
}

func (fr *followRepo) GetByTagAndUser(ctx context.Context, tx *gorm.DB, tagID, userID uuid.UUID) (*domain.TagFollow, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	var result domain.TagFollow
	err := transaction.WithContext(ctx).
		Where("tag_id = ? AND user_id = ?", tagID, userID).
		First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (fr *followRepo) Delete(ctx context.Context, tx *gorm.DB, followID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", followID).
		Delete(&domain.TagFollow{}).Error
}

func (fr *followRepo) DeleteByTagIDs(ctx context.Context, tx *gorm.DB, tagIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	if len(tagIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("tag_id IN ?", tagIDs).
		Delete(&domain.TagFollow{}).Error
}

// ReassignTags repoints follows from the given tags to toTagID. A user who
// already follows the target keeps that follow; their follows of the source
// tags are dropped first so the (tag, user) unique index holds. A user
// following several of the source tags keeps only the oldest of those rows,
// since at most one may land on the target.
func (fr *followRepo) ReassignTags(ctx context.Context, tx *gorm.DB, fromTagIDs []uuid.UUID, toTagID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	if len(fromTagIDs) == 0 {
		return 0, nil
	}

	existing := transaction.
		Model(&domain.TagFollow{}).
		Select("user_id").
		Where("tag_id = ?", toTagID)
	if err := transaction.WithContext(ctx).
		Where("tag_id IN ? AND user_id IN (?)", fromTagIDs, existing).
		Delete(&domain.TagFollow{}).Error; err != nil {
		return 0, err
	}

	var remaining []*domain.TagFollow
	if err := transaction.WithContext(ctx).
		Where("tag_id IN ?", fromTagIDs).
		Order("created_at ASC, id ASC").
		Find(&remaining).Error; err != nil {
		return 0, err
	}
	seen := make(map[uuid.UUID]bool, len(remaining))
	dropIDs := make([]uuid.UUID, 0)
	for _, follow := range remaining {
		if seen[follow.UserID] {
			dropIDs = append(dropIDs, follow.ID)
			continue
		}
		seen[follow.UserID] = true
	}
	if len(dropIDs) > 0 {
		if err := transaction.WithContext(ctx).
			Where("id IN ?", dropIDs).
			Delete(&domain.TagFollow{}).Error; err != nil {
			return 0, err
		}
	}

	result := transaction.WithContext(ctx).
		Model(&domain.TagFollow{}).
		Where("tag_id IN ?", fromTagIDs).
		Update("tag_id", toTagID)
	return result.RowsAffected, result.Error
}

func (fr *followRepo) CountByTag(ctx context.Context, tx *gorm.DB, tagID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&domain.TagFollow{}).
		Where("tag_id = ?", tagID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (fr *followRepo) CountAll(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&domain.TagFollow{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
