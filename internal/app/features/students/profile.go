// internal/app/features/students/profile.go
package students

import (
	"context"
	"errors"
	"net/http"

	userstore "github.com/campusconnect/campushub/internal/app/store/users"
	"github.com/campusconnect/campushub/internal/app/system/apperr"
	"github.com/campusconnect/campushub/internal/app/system/authz"
	"github.com/campusconnect/campushub/internal/app/system/httpjson"
	"github.com/campusconnect/campushub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleGetProfile handles GET /students/profile.
func (h *Handler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	_, _, studentID, ok := authz.PrincipalCtx(r)
	if !ok {
		httpjson.WriteError(w, apperr.New(apperr.NotAuthorized, "authentication required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	student, err := userstore.New(h.DB).GetStudentByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			httpjson.WriteError(w, apperr.Wrap(apperr.NotFound, "student not found", err))
			return
		}
		h.Log.Error("load student profile failed", zap.Error(err))
		httpjson.WriteError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, student)
}
