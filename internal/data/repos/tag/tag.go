package tag

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/tagforge-backend/internal/domain"
	"github.com/yungbote/tagforge-backend/internal/pkg/logger"
)

type TagRepo interface {
	Create(ctx context.Context, tx *gorm.DB, tags []*domain.Tag) ([]*domain.Tag, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, tagIDs []uuid.UUID) ([]*domain.Tag, error)
	GetByIDsWithPosts(ctx context.Context, tx *gorm.DB, tagIDs []uuid.UUID) ([]*domain.Tag, error)
	GetBySlug(ctx context.Context, tx *gorm.DB, slug string) (*domain.Tag, error)
	NameOrSlugExists(ctx context.Context, tx *gorm.DB, nameFolded, slug string, excludeID *uuid.UUID) (bool, error)
	ListAll(ctx context.Context, tx *gorm.DB) ([]*domain.Tag, error)
	ListByParent(ctx context.Context, tx *gorm.DB, parentID *uuid.UUID) ([]*domain.Tag, error)
	ListByPathPrefix(ctx context.Context, tx *gorm.DB, prefix string) ([]*domain.Tag, error)
	Update(ctx context.Context, tx *gorm.DB, tagID uuid.UUID, fields map[string]any) error
	UpdateMany(ctx context.Context, tx *gorm.DB, tagIDs []uuid.UUID, fields map[string]any) (int64, error)
	Delete(ctx context.Context, tx *gorm.DB, tagIDs []uuid.UUID) error
	DeleteHard(ctx context.Context, tx *gorm.DB, tagIDs []uuid.UUID) error
	ReplacePosts(ctx context.Context, tx *gorm.DB, tagID uuid.UUID, posts []*domain.Post) error
	ClearPosts(ctx context.Context, tx *gorm.DB, tagID uuid.UUID) error
	CountAll(ctx context.Context, tx *gorm.DB) (int64, error)
}

type tagRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTagRepo(db *gorm.DB, baseLog *logger.Logger) TagRepo {
	repoLog := baseLog.With("repo", "TagRepo")
	return &tagRepo{db: db, log: repoLog}
}

func (tr *tagRepo) Create(ctx context.Context, tx *gorm.DB, tags []*domain.Tag) ([]*domain.Tag, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	if len(tags) == 0 {
		return []*domain.Tag{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (tr *tagRepo) GetByIDs(ctx context.Context, tx *gorm.DB, tagIDs []uuid.UUID) ([]*domain.Tag, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var results []*domain.Tag
	if len(tagIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", tagIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *tagRepo) GetByIDsWithPosts(ctx context.Context, tx *gorm.DB, tagIDs []uuid.UUID) ([]*domain.Tag, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var results []*domain.Tag
	if len(tagIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Preload("Posts").
		Where("id IN ?", tagIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *tagRepo) GetBySlug(ctx context.Context, tx *gorm.DB, slug string) (*domain.Tag, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var result domain.Tag
	err := transaction.WithContext(ctx).
		Where("slug = ?", slug).
		First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (tr *tagRepo) NameOrSlugExists(ctx context.Context, tx *gorm.DB, nameFolded, slug string, excludeID *uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	query := transaction.WithContext(ctx).
		Model(&domain.Tag{}).
		Where("LOWER(name) = ? OR slug = ?", nameFolded, slug)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (tr *tagRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*domain.Tag, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var results []*domain.Tag
	if err := transaction.WithContext(ctx).
		Order("name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *tagRepo) ListByParent(ctx context.Context, tx *gorm.DB, parentID *uuid.UUID) ([]*domain.Tag, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	query := transaction.WithContext(ctx).Order("name ASC")
	if parentID == nil {
		query = query.Where("parent_id IS NULL")
	} else {
		query = query.Where("parent_id = ?", *parentID)
	}
	var results []*domain.Tag
	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *tagRepo) ListByPathPrefix(ctx context.Context, tx *gorm.DB, prefix string) ([]*domain.Tag, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var results []*domain.Tag
	if err := transaction.WithContext(ctx).
		Where("path LIKE ?", prefix+"%").
		Order("path ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *tagRepo) Update(ctx context.Context, tx *gorm.DB, tagID uuid.UUID, fields map[string]any) error {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	return transaction.WithContext(ctx).
		Model(&domain.Tag{}).
		Where("id = ?", tagID).
		Updates(fields).Error
}

func (tr *tagRepo) UpdateMany(ctx context.Context, tx *gorm.DB, tagIDs []uuid.UUID, fields map[string]any) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	if len(tagIDs) == 0 {
		return 0, nil
	}
	result := transaction.WithContext(ctx).
		Model(&domain.Tag{}).
		Where("id IN ?", tagIDs).
		Updates(fields)
	return result.RowsAffected, result.Error
}

func (tr *tagRepo) Delete(ctx context.Context, tx *gorm.DB, tagIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	if len(tagIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("id IN ?", tagIDs).
		Delete(&domain.Tag{}).Error
}

func (tr *tagRepo) DeleteHard(ctx context.Context, tx *gorm.DB, tagIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	if len(tagIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Unscoped().
		Where("id IN ?", tagIDs).
		Delete(&domain.Tag{}).Error
}

// ReplacePosts swaps the tag's full post association for the given set in one
// call. The merge sequence depends on these replace semantics rather than
// incremental add/remove.
func (tr *tagRepo) ReplacePosts(ctx context.Context, tx *gorm.DB, tagID uuid.UUID, posts []*domain.Post) error {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	return transaction.WithContext(ctx).
		Model(&domain.Tag{ID: tagID}).
		Association("Posts").
		Replace(posts)
}

func (tr *tagRepo) ClearPosts(ctx context.Context, tx *gorm.DB, tagID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	return transaction.WithContext(ctx).
		Model(&domain.Tag{ID: tagID}).
		Association("Posts").
		Clear()
}

func (tr *tagRepo) CountAll(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&domain.Tag{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
