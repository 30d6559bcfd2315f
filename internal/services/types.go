package services

import (
	"github.com/google/uuid"

	"github.com/yungbote/tagforge-backend/internal/domain"
)

// CreateTagInput carries the operator-supplied fields for a new tag.
type CreateTagInput struct {
	Name      string      `json:"name"`
	ParentID  *uuid.UUID  `json:"parent_id,omitempty"`
	Synonyms  []string    `json:"synonyms,omitempty"`
	Color     string      `json:"color,omitempty"`
	Icon      string      `json:"icon,omitempty"`
	SEOTitle  string      `json:"seo_title,omitempty"`
	SEODesc   string      `json:"seo_description,omitempty"`
	SEOImage  string      `json:"seo_image,omitempty"`
	Featured  bool        `json:"featured,omitempty"`
	Protected bool        `json:"protected,omitempty"`
}

// UpdateTagInput updates only the fields that are set. ClearParent detaches
// the tag to root; it wins over ParentID.
type UpdateTagInput struct {
	Name        *string    `json:"name,omitempty"`
	ParentID    *uuid.UUID `json:"parent_id,omitempty"`
	ClearParent bool       `json:"clear_parent,omitempty"`
	Synonyms    *[]string  `json:"synonyms,omitempty"`
	Color       *string    `json:"color,omitempty"`
	Icon        *string    `json:"icon,omitempty"`
	SEOTitle    *string    `json:"seo_title,omitempty"`
	SEODesc     *string    `json:"seo_description,omitempty"`
	SEOImage    *string    `json:"seo_image,omitempty"`
	Featured    *bool      `json:"featured,omitempty"`
	Protected   *bool      `json:"protected,omitempty"`
}

// MergeReceipt records one executed (or planned, under dry run) cluster merge.
type MergeReceipt struct {
	SurvivorID    uuid.UUID   `json:"survivor_id"`
	SurvivorName  string      `json:"survivor_name"`
	AbsorbedIDs   []uuid.UUID `json:"absorbed_ids"`
	PostsRelinked int         `json:"posts_relinked"`
	Score         float64     `json:"score"`
}

// SkippedCluster surfaces a cluster the bulk merge could not process.
type SkippedCluster struct {
	SurvivorID uuid.UUID `json:"survivor_id"`
	Reason     string    `json:"reason"`
}

// MergeResult is the outcome of a bulk merge pass. Processing is best-effort
// and sequential: completed clusters stay merged even when later ones skip.
type MergeResult struct {
	DryRun   bool             `json:"dry_run"`
	Receipts []MergeReceipt   `json:"receipts"`
	Skipped  []SkippedCluster `json:"skipped"`
}

// BulkFailure names one item a bulk operation refused, with the reason.
type BulkFailure struct {
	ID     uuid.UUID `json:"id"`
	Reason string    `json:"reason"`
}

// BulkResult reports every bulk operation's outcome explicitly: ids that went
// through and ids that did not, instead of silently dropping ineligible items.
type BulkResult struct {
	Succeeded []uuid.UUID   `json:"succeeded"`
	Failed    []BulkFailure `json:"failed"`
}

// TagTreeNode is one node of the nested tree view.
type TagTreeNode struct {
	Tag      *domain.Tag    `json:"tag"`
	Children []*TagTreeNode `json:"children"`
}
