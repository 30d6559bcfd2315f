package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TagFollow subscribes a user to a tag's activity; unique per (tag, user).
type TagFollow struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TagID  uuid.UUID `gorm:"type:uuid;not null;index:idx_tag_follow,unique,priority:1" json:"tag_id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index:idx_tag_follow,unique,priority:2" json:"user_id"`

	Weight int `gorm:"column:weight;not null;default:1" json:"weight"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (TagFollow) TableName() string { return "tag_follow" }

func (f *TagFollow) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
