// internal/app/features/departments/profile.go
package departments

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
	Name string                 `json:"name"`
	Code string                 `json:"code"`
	Head *models.DepartmentHead `json:"head,omitempty"`
}

// HandleGetProfile handles GET /departments/profile.
func (h *Handler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	_, _, deptID, ok := authz.PrincipalCtx(r)
	if !ok {
		httpjson.WriteError(w, apperr.New(apperr.NotAuthorized, "authentication required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	dept, err := userstore.New(h.DB).GetDepartmentByID(ctx, deptID)
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			httpjson.WriteError(w, apperr.Wrap(apperr.NotFound, "department not found", err))
			return
		}
		h.Log.Error("load department profile failed", zap.Error(err))
		httpjson.WriteError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, dept)
}

// HandleUpdateProfile handles PUT /departments/profile.
func (h *Handler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	_, _, deptID, ok := authz.PrincipalCtx(r)
	if !ok {
		httpjson.WriteError(w, apperr.New(apperr.NotAuthorized, "authentication required"))
		return
	}

	var req updateProfileRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.WriteError(w, err)
		return
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Code) == "" {
		httpjson.WriteError(w, apperr.New(apperr.ValidationFailed, "name and code are required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	dept, err := userstore.New(h.DB).UpdateDepartmentProfile(ctx, deptID, req.Name, req.Code, req.Head)
	if err != nil {
		switch {
		case errors.Is(err, userstore.ErrNotFound):
			httpjson.WriteError(w, apperr.Wrap(apperr.NotFound, "department not found", err))
		case errors.Is(err, userstore.ErrDuplicateCode):
			httpjson.WriteError(w, apperr.Wrap(apperr.Conflict, "a department with this code already exists", err))
		default:
			h.Log.Error("update department profile failed", zap.Error(err))
			httpjson.WriteError(w, err)
		}
		return
	}
	httpjson.Write(w, http.StatusOK, dept)
}
