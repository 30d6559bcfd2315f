package testutil

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/tagforge-backend/internal/domain"
	"github.com/yungbote/tagforge-backend/internal/taxonomy"
)

// SeedTag inserts a root tag with computed path fields and returns it.
func SeedTag(tb testing.TB, db *gorm.DB, name string, usageCount int) *domain.Tag {
	tb.Helper()
	slug := taxonomy.Slugify(name, false)
	tag := &domain.Tag{
		ID:         uuid.New(),
		Name:       name,
		Slug:       slug,
		Path:       slug,
		Label:      name,
		Level:      1,
		UsageCount: usageCount,
	}
	if err := db.Create(tag).Error; err != nil {
		tb.Fatalf("seed tag %q: %v", name, err)
	}
	return tag
}

// SeedChildTag inserts a tag under parent with consistent path fields.
func SeedChildTag(tb testing.TB, db *gorm.DB, parent *domain.Tag, name string) *domain.Tag {
	tb.Helper()
	slug := taxonomy.Slugify(name, false)
	tag := &domain.Tag{
		ID:       uuid.New(),
		Name:     name,
		Slug:     slug,
		ParentID: &parent.ID,
		Path:     parent.Path + "/" + slug,
		Label:    name,
		Level:    parent.Level + 1,
	}
	if err := db.Create(tag).Error; err != nil {
		tb.Fatalf("seed child tag %q: %v", name, err)
	}
	return tag
}

// SeedPosts inserts n posts attached to the given tags and fixes up each
// tag's usage count.
func SeedPosts(tb testing.TB, db *gorm.DB, n int, tags ...*domain.Tag) []*domain.Post {
	tb.Helper()
	posts := make([]*domain.Post, 0, n)
	for i := 0; i < n; i++ {
		id := uuid.New()
		post := &domain.Post{
			ID:    id,
			Title: fmt.Sprintf("post-%s", id),
			Slug:  fmt.Sprintf("post-%s", id),
			Tags:  tags,
		}
		if err := db.Create(post).Error; err != nil {
			tb.Fatalf("seed post %d: %v", i, err)
		}
		posts = append(posts, post)
	}
	for _, tag := range tags {
		var count int64
		if err := db.Table("post_tag").Where("tag_id = ?", tag.ID).Count(&count).Error; err != nil {
			tb.Fatalf("count posts for tag %q: %v", tag.Name, err)
		}
		if err := db.Model(&domain.Tag{}).Where("id = ?", tag.ID).Update("usage_count", count).Error; err != nil {
			tb.Fatalf("update usage for tag %q: %v", tag.Name, err)
		}
		tag.UsageCount = int(count)
	}
	return posts
}

// SeedFollow subscribes a user to a tag.
func SeedFollow(tb testing.TB, db *gorm.DB, tag *domain.Tag, userID uuid.UUID) *domain.TagFollow {
	tb.Helper()
	follow := &domain.TagFollow{
		ID:     uuid.New(),
		TagID:  tag.ID,
		UserID: userID,
		Weight: 1,
	}
	if err := db.Create(follow).Error; err != nil {
		tb.Fatalf("seed follow for tag %q: %v", tag.Name, err)
	}
	return follow
}
