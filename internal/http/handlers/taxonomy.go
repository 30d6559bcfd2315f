package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/tagforge-backend/internal/http/response"
	"github.com/yungbote/tagforge-backend/internal/services"
	"github.com/yungbote/tagforge-backend/internal/taxonomy"
)

// TaxonomyHandler exposes the maintenance surface: duplicate detection,
// merging, bulk operations, analytics and engine settings.
type TaxonomyHandler struct {
	taxonomyService services.TaxonomyService
}

func NewTaxonomyHandler(taxonomyService services.TaxonomyService) *TaxonomyHandler {
	return &TaxonomyHandler{taxonomyService: taxonomyService}
}

// GET /taxonomy/duplicates?threshold=0.7
func (th *TaxonomyHandler) FindDuplicates(c *gin.Context) {
	var req struct {
		Threshold float64 `form:"threshold"`
	}
	if err := c.ShouldBindQuery(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	candidates, err := th.taxonomyService.FindDuplicateTags(c.Request.Context(), req.Threshold)
	if err != nil {
		response.RespondServiceError(c, "find_duplicates_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"candidates": candidates})
}

// POST /taxonomy/duplicates/groups
// body: { "threshold": 0.7, "exclude_ids": [...] }
func (th *TaxonomyHandler) GroupDuplicates(c *gin.Context) {
	var req struct {
		Threshold  float64     `json:"threshold"`
		ExcludeIDs []uuid.UUID `json:"exclude_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	groups, err := th.taxonomyService.GroupDuplicates(c.Request.Context(), req.Threshold, req.ExcludeIDs)
	if err != nil {
		response.RespondServiceError(c, "group_duplicates_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"groups": groups})
}

// POST /taxonomy/merge
// body: { "source_ids": [...], "target_id": "..." }
func (th *TaxonomyHandler) MergeTags(c *gin.Context) {
	var req struct {
		SourceIDs []uuid.UUID `json:"source_ids"`
		TargetID  uuid.UUID   `json:"target_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	tag, err := th.taxonomyService.MergeTags(c.Request.Context(), req.SourceIDs, req.TargetID)
	if err != nil {
		response.RespondServiceError(c, "merge_tags_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"tag": tag})
}

// POST /taxonomy/merge/bulk
// body: { "threshold": 0.7, "dry_run": true, "exclude_ids": [...] }
func (th *TaxonomyHandler) BulkMergeDuplicates(c *gin.Context) {
	var req struct {
		Threshold  float64     `json:"threshold"`
		DryRun     bool        `json:"dry_run"`
		ExcludeIDs []uuid.UUID `json:"exclude_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	result, err := th.taxonomyService.BulkMergeDuplicates(c.Request.Context(), req.Threshold, req.DryRun, req.ExcludeIDs)
	if err != nil {
		response.RespondServiceError(c, "bulk_merge_failed", err)
		return
	}
	response.RespondOK(c, result)
}

// POST /taxonomy/rebuild-paths
func (th *TaxonomyHandler) RebuildTreePaths(c *gin.Context) {
	updated, err := th.taxonomyService.RebuildTreePaths(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, "rebuild_paths_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"updated": updated})
}

// GET /taxonomy/analytics
func (th *TaxonomyHandler) GetAnalytics(c *gin.Context) {
	report, err := th.taxonomyService.GetAnalytics(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, "analytics_failed", err)
		return
	}
	response.RespondOK(c, report)
}

// POST /taxonomy/bulk/delete
// body: { "tag_ids": [...], "force": false }
func (th *TaxonomyHandler) BulkDelete(c *gin.Context) {
	var req struct {
		TagIDs []uuid.UUID `json:"tag_ids"`
		Force  bool        `json:"force"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	result, err := th.taxonomyService.BulkDelete(c.Request.Context(), req.TagIDs, req.Force)
	if err != nil {
		response.RespondServiceError(c, "bulk_delete_failed", err)
		return
	}
	response.RespondOK(c, result)
}

// POST /taxonomy/bulk/lock
// body: { "tag_ids": [...], "locked": true }
func (th *TaxonomyHandler) BulkSetLocked(c *gin.Context) {
	var req struct {
		TagIDs []uuid.UUID `json:"tag_ids"`
		Locked bool        `json:"locked"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	result, err := th.taxonomyService.BulkSetLocked(c.Request.Context(), req.TagIDs, req.Locked)
	if err != nil {
		response.RespondServiceError(c, "bulk_lock_failed", err)
		return
	}
	response.RespondOK(c, result)
}

// POST /taxonomy/bulk/parent
// body: { "tag_ids": [...], "parent_id": "..." } (null parent detaches to root)
func (th *TaxonomyHandler) BulkSetParent(c *gin.Context) {
	var req struct {
		TagIDs   []uuid.UUID `json:"tag_ids"`
		ParentID *uuid.UUID  `json:"parent_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	result, err := th.taxonomyService.BulkSetParent(c.Request.Context(), req.TagIDs, req.ParentID)
	if err != nil {
		response.RespondServiceError(c, "bulk_parent_failed", err)
		return
	}
	response.RespondOK(c, result)
}

// POST /taxonomy/bulk/style
// body: { "tag_ids": [...], "color": "#fff", "icon": "star" }
func (th *TaxonomyHandler) BulkUpdateStyle(c *gin.Context) {
	var req struct {
		TagIDs []uuid.UUID `json:"tag_ids"`
		Color  string      `json:"color"`
		Icon   string      `json:"icon"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	result, err := th.taxonomyService.BulkUpdateStyle(c.Request.Context(), req.TagIDs, req.Color, req.Icon)
	if err != nil {
		response.RespondServiceError(c, "bulk_style_failed", err)
		return
	}
	response.RespondOK(c, result)
}

// POST /taxonomy/cleanup
func (th *TaxonomyHandler) CleanupOrphans(c *gin.Context) {
	removed, err := th.taxonomyService.CleanupOrphans(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, "cleanup_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"removed": removed})
}

// POST /taxonomy/trending/refresh
func (th *TaxonomyHandler) RefreshTrending(c *gin.Context) {
	flagged, err := th.taxonomyService.RefreshTrending(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, "trending_refresh_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"flagged": flagged})
}

// GET /taxonomy/settings
func (th *TaxonomyHandler) GetSettings(c *gin.Context) {
	response.RespondOK(c, th.taxonomyService.CurrentConfig())
}

// PUT /taxonomy/settings
// Replaces the whole settings value; partial updates are not supported.
func (th *TaxonomyHandler) UpdateSettings(c *gin.Context) {
	var req taxonomy.Config
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	th.taxonomyService.UpdateConfig(req)
	response.RespondOK(c, th.taxonomyService.CurrentConfig())
}
