// internal/app/features/events/delete.go
package events

import (
	"context"
	"net/http"

	deptattendancestore "github.com/campusconnect/campushub/internal/app/store/deptattendance"
	eventstore "github.com/campusconnect/campushub/internal/app/store/events"
	"github.com/campusconnect/campushub/internal/app/system/apperr"
	"github.com/campusconnect/campushub/internal/app/system/authz"
	"github.com/campusconnect/campushub/internal/app/system/httpjson"
	"github.com/campusconnect/campushub/internal/app/system/metrics"
	"github.com/campusconnect/campushub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

type deleteEventResponse struct {
	Message string `json:"message"`
	Warning string `json:"warning,omitempty"`
}

// HandleDeleteEvent handles DELETE /events/{id}. The event document is
// removed first; the per-department records that were derived from it
// are swept afterwards. If the sweep fails the records stay listed in
// the department records view, so the response carries a warning.
// Registrations are kept as payment history.
func (h *Handler) HandleDeleteEvent(w http.ResponseWriter, r *http.Request) {
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

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	event, err := eventstore.New(h.DB).Delete(ctx, id, clubID)
	if err != nil {
		if apperr.KindOf(storeError(err)) == apperr.Internal {
			h.Log.Error("delete event failed", zap.Error(err), zap.String("event_id", id.Hex()))
		}
		httpjson.WriteError(w, storeError(err))
		return
	}

	resp := deleteEventResponse{Message: "event deleted"}
	removed, err := deptattendancestore.New(h.DB).DeleteByEvent(ctx, event.ID)
	if err != nil {
		metrics.AggregationFailures.Inc()
		h.Log.Error("department attendance cleanup failed",
			zap.Error(err),
			zap.String("event_id", event.ID.Hex()))
		resp.Warning = "event deleted, but its department attendance records could not be removed"
	}

	h.Log.Info("event deleted",
		zap.String("event_id", event.ID.Hex()),
		zap.String("club_id", clubID.Hex()),
		zap.Int64("department_records_removed", removed))
	httpjson.Write(w, http.StatusOK, resp)
}
