package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post is the minimal collaborator model the engine relinks during merges.
// Everything else about posts lives outside this service.
type Post struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Title string `gorm:"column:title;not null" json:"title"`
	Slug  string `gorm:"column:slug;not null;uniqueIndex:idx_post_slug" json:"slug"`

	PublishedAt *time.Time `gorm:"column:published_at" json:"published_at,omitempty"`

	Tags []*Tag `gorm:"many2many:post_tag" json:"tags,omitempty"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Post) TableName() string { return "post" }

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
