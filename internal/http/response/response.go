package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	pkgerrors "github.com/yungbote/tagforge-backend/internal/pkg/errors"
	"github.com/yungbote/tagforge-backend/internal/taxonomy"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// RespondServiceError maps engine sentinels to HTTP statuses so handlers do
// not each carry the table.
func RespondServiceError(c *gin.Context, code string, err error) {
	switch {
	case errors.Is(err, taxonomy.ErrTagNotFound), errors.Is(err, gorm.ErrRecordNotFound), errors.Is(err, taxonomy.ErrNotFollowing):
		RespondError(c, http.StatusNotFound, code, err)
	case errors.Is(err, taxonomy.ErrDuplicateNameOrSlug),
		errors.Is(err, taxonomy.ErrAlreadyFollowing),
		errors.Is(err, taxonomy.ErrTagLocked),
		errors.Is(err, taxonomy.ErrTagProtected):
		RespondError(c, http.StatusConflict, code, err)
	case errors.Is(err, taxonomy.ErrFollowingDisabled):
		RespondError(c, http.StatusForbidden, code, err)
	case errors.Is(err, taxonomy.ErrCycleDetected),
		errors.Is(err, taxonomy.ErrSelfParent),
		errors.Is(err, taxonomy.ErrMaxDepthExceeded),
		errors.Is(err, taxonomy.ErrBulkLimitExceeded),
		errors.Is(err, pkgerrors.ErrInvalidArgument):
		RespondError(c, http.StatusBadRequest, code, err)
	case errors.Is(err, pkgerrors.ErrUnauthorized):
		RespondError(c, http.StatusUnauthorized, code, err)
	default:
		RespondError(c, http.StatusInternalServerError, code, err)
	}
}
