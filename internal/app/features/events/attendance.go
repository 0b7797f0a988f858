// internal/app/features/events/attendance.go
package events

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	deptattendancestore "github.com/campusconnect/campushub/internal/app/store/deptattendance"
	eventstore "github.com/campusconnect/campushub/internal/app/store/events"
	"github.com/campusconnect/campushub/internal/app/system/apperr"
	"github.com/campusconnect/campushub/internal/app/system/authz"
	"github.com/campusconnect/campushub/internal/app/system/httpjson"
	"github.com/campusconnect/campushub/internal/app/system/metrics"
	"github.com/campusconnect/campushub/internal/app/system/timeouts"
	"github.com/campusconnect/campushub/internal/domain/models"
	"go.uber.org/zap"
)

type attendanceRequest struct {
	Attendance []models.AttendanceTeam `json:"attendance"`
}

type attendanceResponse struct {
	Event   models.Event `json:"event"`
	Warning string       `json:"warning,omitempty"`
}

// HandleMarkAttendance handles POST /events/{id}/attendance. The sheet
// replaces any previous attendance wholesale and finalizes the event.
// Department fan-out runs after the event write commits; if it fails,
// the event stays completed and the response carries a warning so the
// club can resubmit to repair the per-department records.
func (h *Handler) HandleMarkAttendance(w http.ResponseWriter, r *http.Request) {
	_, _, clubID, ok := authz.PrincipalCtx(r)
	if !ok {
		httpjson.WriteError(w, apperr.New(apperr.NotAuthorized, "authentication required"))
		return
	}
	id, err := eventIDParam(r)
	if err != nil {
		httpjson.WriteError(w, err)
		return
	}

	var req attendanceRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.WriteError(w, err)
		return
	}
	if err := validateSheet(req.Attendance); err != nil {
		httpjson.WriteError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	event, err := eventstore.New(h.DB).ReplaceAttendance(ctx, id, clubID, req.Attendance)
	if err != nil {
		if apperr.KindOf(storeError(err)) == apperr.Internal {
			h.Log.Error("mark attendance failed", zap.Error(err), zap.String("event_id", id.Hex()))
		}
		httpjson.WriteError(w, storeError(err))
		return
	}
	metrics.AttendanceMarked.Inc()

	resp := attendanceResponse{Event: event}
	if aggErr := deptattendancestore.New(h.DB).UpsertForEvent(ctx, event); aggErr != nil {
		metrics.AggregationFailures.Inc()
		h.Log.Error("department attendance aggregation failed",
			zap.Error(aggErr),
			zap.String("event_id", event.ID.Hex()))
		resp.Warning = "attendance saved, but department records could not be updated; resubmit the sheet to retry"
	}

	h.Log.Info("attendance marked",
		zap.String("event_id", event.ID.Hex()),
		zap.Int("teams", len(event.Attendance)))
	httpjson.Write(w, http.StatusOK, resp)
}

func validateSheet(sheet []models.AttendanceTeam) error {
	if len(sheet) == 0 {
		return apperr.New(apperr.ValidationFailed, "attendance sheet cannot be empty")
	}
	for i, team := range sheet {
		if strings.TrimSpace(team.TeamName) == "" {
			return apperr.New(apperr.ValidationFailed, fmt.Sprintf("attendance[%d]: team name is required", i))
		}
		if len(team.Members) == 0 {
			return apperr.New(apperr.ValidationFailed, fmt.Sprintf("attendance[%d]: at least one member is required", i))
		}
		for j, m := range team.Members {
			if strings.TrimSpace(m.Name) == "" || strings.TrimSpace(m.RollNo) == "" || strings.TrimSpace(m.Department) == "" {
				return apperr.New(apperr.ValidationFailed,
					fmt.Sprintf("attendance[%d].members[%d]: name, roll number, and department are required", i, j))
			}
		}
	}
	return nil
}
