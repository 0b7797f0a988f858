// internal/app/features/departments/attendance.go
package departments

import (
	"context"
	"errors"
	"net/http"

	deptattendancestore "github.com/campusconnect/campushub/internal/app/store/deptattendance"
	eventstore "github.com/campusconnect/campushub/internal/app/store/events"
	userstore "github.com/campusconnect/campushub/internal/app/store/users"
	"github.com/campusconnect/campushub/internal/app/system/apperr"
	"github.com/campusconnect/campushub/internal/app/system/authz"
	"github.com/campusconnect/campushub/internal/app/system/httpjson"
	"github.com/campusconnect/campushub/internal/app/system/normalize"
	"github.com/campusconnect/campushub/internal/app/system/timeouts"
	"github.com/campusconnect/campushub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// requireOwnCode resolves the caller's department document and checks
// it against the {code} route parameter. The code is read fresh on
// every request so a renamed department cannot keep using a stale
// token to read its old code's data.
func (h *Handler) requireOwnCode(ctx context.Context, r *http.Request) (string, error) {
	_, _, deptID, ok := authz.PrincipalCtx(r)
	if !ok {
		return "", apperr.New(apperr.NotAuthorized, "authentication required")
	}
	dept, err := userstore.New(h.DB).GetDepartmentByID(ctx, deptID)
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			return "", apperr.Wrap(apperr.NotAuthorized, "department account not found", err)
		}
		return "", err
	}
	code := normalize.Code(chi.URLParam(r, "code"))
	if code == "" || code != dept.Code {
		return "", apperr.New(apperr.NotAuthorized, "departments can only view their own attendance")
	}
	return code, nil
}

// HandleDepartmentAttendance handles GET /departments/{code}/attendance.
// The view is computed live from completed events so it reflects the
// latest submitted sheets even if a past fan-out write failed.
func (h *Handler) HandleDepartmentAttendance(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	code, err := h.requireOwnCode(ctx, r)
	if err != nil {
		httpjson.WriteError(w, err)
		return
	}

	events, err := eventstore.New(h.DB).ListCompletedForDepartment(ctx, code)
	if err != nil {
		h.Log.Error("list completed events for department failed", zap.Error(err), zap.String("department", code))
		httpjson.WriteError(w, err)
		return
	}

	view := make([]models.DepartmentAttendance, 0, len(events))
	for _, event := range events {
		for _, rec := range deptattendancestore.BuildRecords(event) {
			if rec.Department == code {
				view = append(view, rec)
				break
			}
		}
	}
	httpjson.Write(w, http.StatusOK, view)
}

// HandleDepartmentAttendanceRecords handles
// GET /departments/{code}/attendance/records: the materialized records
// written by the attendance fan-out, newest event first.
func (h *Handler) HandleDepartmentAttendanceRecords(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	code, err := h.requireOwnCode(ctx, r)
	if err != nil {
		httpjson.WriteError(w, err)
		return
	}

	records, err := deptattendancestore.New(h.DB).ListByDepartment(ctx, code)
	if err != nil {
		h.Log.Error("list department attendance records failed", zap.Error(err), zap.String("department", code))
		httpjson.WriteError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, records)
}
