package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/tagforge-backend/internal/http/middleware"
	"github.com/yungbote/tagforge-backend/internal/http/response"
	"github.com/yungbote/tagforge-backend/internal/services"
)

type FollowHandler struct {
	followService services.TagFollowService
}

func NewFollowHandler(followService services.TagFollowService) *FollowHandler {
	return &FollowHandler{followService: followService}
}

// POST /tags/:id/follow
func (fh *FollowHandler) Follow(c *gin.Context) {
	tagID, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	follow, err := fh.followService.Follow(c.Request.Context(), tagID, userID)
	if err != nil {
		response.RespondServiceError(c, "follow_failed", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"follow": follow})
}

// DELETE /tags/:id/follow
func (fh *FollowHandler) Unfollow(c *gin.Context) {
	tagID, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	if err := fh.followService.Unfollow(c.Request.Context(), tagID, userID); err != nil {
		response.RespondServiceError(c, "unfollow_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

// GET /tags/:id/follow
func (fh *FollowHandler) FollowStatus(c *gin.Context) {
	tagID, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	following, err := fh.followService.IsFollowing(c.Request.Context(), tagID, userID)
	if err != nil {
		response.RespondServiceError(c, "follow_status_failed", err)
		return
	}
	count, err := fh.followService.FollowerCount(c.Request.Context(), tagID)
	if err != nil {
		response.RespondServiceError(c, "follow_status_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"following": following, "follower_count": count})
}
