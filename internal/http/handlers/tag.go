package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/tagforge-backend/internal/http/response"
	"github.com/yungbote/tagforge-backend/internal/services"
)

type TagHandler struct {
	taxonomyService services.TaxonomyService
}

func NewTagHandler(taxonomyService services.TaxonomyService) *TagHandler {
	return &TagHandler{taxonomyService: taxonomyService}
}

// GET /tags
func (th *TagHandler) ListTags(c *gin.Context) {
	tags, err := th.taxonomyService.ListTags(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, "list_tags_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"tags": tags})
}

// GET /tags/:id
func (th *TagHandler) GetTag(c *gin.Context) {
	tagID, ok := pathID(c, "id")
	if !ok {
		return
	}
	tag, err := th.taxonomyService.GetTag(c.Request.Context(), tagID)
	if err != nil {
		response.RespondServiceError(c, "get_tag_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"tag": tag})
}

// POST /tags
func (th *TagHandler) CreateTag(c *gin.Context) {
	var req services.CreateTagInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	tag, err := th.taxonomyService.CreateTag(c.Request.Context(), req)
	if err != nil {
		response.RespondServiceError(c, "create_tag_failed", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"tag": tag})
}

// PATCH /tags/:id
func (th *TagHandler) UpdateTag(c *gin.Context) {
	tagID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req services.UpdateTagInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	tag, err := th.taxonomyService.UpdateTag(c.Request.Context(), tagID, req)
	if err != nil {
		response.RespondServiceError(c, "update_tag_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"tag": tag})
}

// DELETE /tags/:id?force=true
func (th *TagHandler) DeleteTag(c *gin.Context) {
	tagID, ok := pathID(c, "id")
	if !ok {
		return
	}
	force := c.Query("force") == "true"
	if err := th.taxonomyService.DeleteTag(c.Request.Context(), tagID, force); err != nil {
		response.RespondServiceError(c, "delete_tag_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

// GET /tags/:id/ancestors
func (th *TagHandler) GetAncestors(c *gin.Context) {
	tagID, ok := pathID(c, "id")
	if !ok {
		return
	}
	ancestors, err := th.taxonomyService.GetAncestors(c.Request.Context(), tagID)
	if err != nil {
		response.RespondServiceError(c, "get_ancestors_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"ancestors": ancestors})
}

// GET /tags/:id/descendants
func (th *TagHandler) GetDescendants(c *gin.Context) {
	tagID, ok := pathID(c, "id")
	if !ok {
		return
	}
	descendants, err := th.taxonomyService.GetDescendants(c.Request.Context(), tagID)
	if err != nil {
		response.RespondServiceError(c, "get_descendants_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"descendants": descendants})
}

// GET /tags/:id/siblings
func (th *TagHandler) GetSiblings(c *gin.Context) {
	tagID, ok := pathID(c, "id")
	if !ok {
		return
	}
	siblings, err := th.taxonomyService.GetSiblings(c.Request.Context(), tagID)
	if err != nil {
		response.RespondServiceError(c, "get_siblings_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"siblings": siblings})
}

// GET /tags/tree?parent_id=...
func (th *TagHandler) GetNestedTree(c *gin.Context) {
	var parentID *uuid.UUID
	if raw := c.Query("parent_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_parent_id", err)
			return
		}
		parentID = &parsed
	}
	tree, err := th.taxonomyService.GetNestedTree(c.Request.Context(), parentID)
	if err != nil {
		response.RespondServiceError(c, "get_tree_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"tree": tree})
}

// pathID parses a uuid path parameter, responding 400 itself on failure.
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return uuid.Nil, false
	}
	return id, true
}
