// internal/app/features/clubs/profile.go
package clubs

import (
	"context"
	"errors"
	"net/http"
	"strings"

	userstore "github.com/campusconnect/campushub/internal/app/store/users"
	"github.com/campusconnect/campushub/internal/app/system/apperr"
	"github.com/campusconnect/campushub/internal/app/system/authz"
	"github.com/campusconnect/campushub/internal/app/system/httpjson"
	"github.com/campusconnect/campushub/internal/app/system/timeouts"
	"github.com/campusconnect/campushub/internal/domain/models"
	"go.uber.org/zap"
)

type updateProfileRequest struct {
	Name           string                 `json:"name"`
	Description    string                 `json:"description"`
	Category       string                 `json:"category"`
	FacultyAdvisor *models.FacultyAdvisor `json:"faculty_advisor,omitempty"`
}

// HandleGetProfile handles GET /clubs/profile.
func (h *Handler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	_, _, clubID, ok := authz.PrincipalCtx(r)
	if !ok {
		httpjson.WriteError(w, apperr.New(apperr.NotAuthorized, "authentication required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	club, err := userstore.New(h.DB).GetClubByID(ctx, clubID)
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			httpjson.WriteError(w, apperr.Wrap(apperr.NotFound, "club not found", err))
			return
		}
		h.Log.Error("load club profile failed", zap.Error(err))
		httpjson.WriteError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, club)
}

// HandleUpdateProfile handles PUT /clubs/profile.
func (h *Handler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	_, _, clubID, ok := authz.PrincipalCtx(r)
	if !ok {
		httpjson.WriteError(w, apperr.New(apperr.NotAuthorized, "authentication required"))
		return
	}

	var req updateProfileRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.WriteError(w, err)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		httpjson.WriteError(w, apperr.New(apperr.ValidationFailed, "name is required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	club, err := userstore.New(h.DB).UpdateClubProfile(ctx, clubID, req.Name, req.Description, req.Category, req.FacultyAdvisor)
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			httpjson.WriteError(w, apperr.Wrap(apperr.NotFound, "club not found", err))
			return
		}
		h.Log.Error("update club profile failed", zap.Error(err))
		httpjson.WriteError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, club)
}
