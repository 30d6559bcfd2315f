package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Tag struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Name string `gorm:"column:name;not null;uniqueIndex:idx_tag_name" json:"name"`
	Slug string `gorm:"column:slug;not null;uniqueIndex:idx_tag_slug" json:"slug"`

	ParentID *uuid.UUID `gorm:"type:uuid;column:parent_id;index" json:"parent_id,omitempty"`
	Parent   *Tag       `gorm:"constraint:OnDelete:SET NULL;foreignKey:ParentID;references:ID" json:"parent,omitempty"`

	Path  string `gorm:"column:path;not null;index" json:"path"`
	Label string `gorm:"column:label;not null" json:"label"`
	Level int    `gorm:"column:level;not null;default:1" json:"level"`

	Synonyms     datatypes.JSON `gorm:"column:synonyms;type:jsonb" json:"synonyms,omitempty"`
	SynonymHits  int            `gorm:"column:synonym_hits;not null;default:0" json:"synonym_hits"`
	LinkedTagIDs datatypes.JSON `gorm:"column:linked_tag_ids;type:jsonb" json:"linked_tag_ids,omitempty"`

	UsageCount int `gorm:"column:usage_count;not null;default:0" json:"usage_count"`
	MergeCount int `gorm:"column:merge_count;not null;default:0" json:"merge_count"`

	Locked    bool `gorm:"column:locked;not null;default:false" json:"locked"`
	Protected bool `gorm:"column:protected;not null;default:false" json:"protected"`
	Featured  bool `gorm:"column:featured;not null;default:false" json:"featured"`
	Trending  bool `gorm:"column:trending;not null;default:false" json:"trending"`

	Color string `gorm:"column:color" json:"color,omitempty"`
	Icon  string `gorm:"column:icon" json:"icon,omitempty"`

	SEOTitle       string `gorm:"column:seo_title" json:"seo_title,omitempty"`
	SEODescription string `gorm:"column:seo_description;type:text" json:"seo_description,omitempty"`
	SEOImage       string `gorm:"column:seo_image" json:"seo_image,omitempty"`

	Posts []*Post `gorm:"many2many:post_tag" json:"posts,omitempty"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Tag) TableName() string { return "tag" }

func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// SynonymList decodes the synonyms column. A missing or malformed column
// reads as empty.
func (t *Tag) SynonymList() []string {
	if len(t.Synonyms) == 0 {
		return nil
	}
	var out []string
	if err := json.Unmarshal(t.Synonyms, &out); err != nil {
		return nil
	}
	return out
}

// SetSynonymList encodes the synonyms column.
func (t *Tag) SetSynonymList(synonyms []string) error {
	if synonyms == nil {
		synonyms = []string{}
	}
	raw, err := json.Marshal(synonyms)
	if err != nil {
		return err
	}
	t.Synonyms = datatypes.JSON(raw)
	return nil
}

// LinkedTagList decodes the linked-tag ids column.
func (t *Tag) LinkedTagList() []uuid.UUID {
	if len(t.LinkedTagIDs) == 0 {
		return nil
	}
	var out []uuid.UUID
	if err := json.Unmarshal(t.LinkedTagIDs, &out); err != nil {
		return nil
	}
	return out
}

// SetLinkedTagList encodes the linked-tag ids column.
func (t *Tag) SetLinkedTagList(ids []uuid.UUID) error {
	if ids == nil {
		ids = []uuid.UUID{}
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	t.LinkedTagIDs = datatypes.JSON(raw)
	return nil
}
