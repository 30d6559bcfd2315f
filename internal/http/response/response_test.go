package response

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	pkgerrors "github.com/yungbote/tagforge-backend/internal/pkg/errors"
	"github.com/yungbote/tagforge-backend/internal/taxonomy"
)

func TestRespondServiceErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", taxonomy.ErrTagNotFound, http.StatusNotFound},
		{"not following", taxonomy.ErrNotFollowing, http.StatusNotFound},
		{"duplicate name", taxonomy.ErrDuplicateNameOrSlug, http.StatusConflict},
		{"locked", taxonomy.ErrTagLocked, http.StatusConflict},
		{"protected", taxonomy.ErrTagProtected, http.StatusConflict},
		{"already following", taxonomy.ErrAlreadyFollowing, http.StatusConflict},
		{"following disabled", taxonomy.ErrFollowingDisabled, http.StatusForbidden},
		{"cycle", taxonomy.ErrCycleDetected, http.StatusBadRequest},
		{"self parent", taxonomy.ErrSelfParent, http.StatusBadRequest},
		{"max depth", taxonomy.ErrMaxDepthExceeded, http.StatusBadRequest},
		{"bulk limit", taxonomy.ErrBulkLimitExceeded, http.StatusBadRequest},
		{"invalid argument", pkgerrors.ErrInvalidArgument, http.StatusBadRequest},
		{"unauthorized", pkgerrors.ErrUnauthorized, http.StatusUnauthorized},
		{"unknown", fmt.Errorf("disk on fire"), http.StatusInternalServerError},
		{"wrapped locked", fmt.Errorf("target %q: %w", "react", taxonomy.ErrTagLocked), http.StatusConflict},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			RespondServiceError(c, "test_code", tc.err)
			if rec.Code != tc.want {
				t.Fatalf("status for %v: got=%d want=%d", tc.err, rec.Code, tc.want)
			}
		})
	}
}
