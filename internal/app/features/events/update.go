// internal/app/features/events/update.go
package events

import (
	"context"
	"net/http"

	eventstore "github.com/campusconnect/campushub/internal/app/store/events"
	"github.com/campusconnect/campushub/internal/app/system/apperr"
	"github.com/campusconnect/campushub/internal/app/system/authz"
	"github.com/campusconnect/campushub/internal/app/system/httpjson"
	"github.com/campusconnect/campushub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleUpdateEvent handles PUT /events/{id}. Only descriptive fields
// change here; counters and attendance are owned by their own flows.
func (h *Handler) HandleUpdateEvent(w http.ResponseWriter, r *http.Request) {
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

	var req createEventRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.WriteError(w, err)
		return
	}
	if err := validateCreate(req); err != nil {
		httpjson.WriteError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	event, err := eventstore.New(h.DB).UpdateInfo(ctx, id, clubID, req.EventName, req.Description, req.Date.UTC(), req.TeamSize, req.Fee)
	if err != nil {
		if apperr.KindOf(storeError(err)) == apperr.Internal {
			h.Log.Error("update event failed", zap.Error(err), zap.String("event_id", id.Hex()))
		}
		httpjson.WriteError(w, storeError(err))
		return
	}
	httpjson.Write(w, http.StatusOK, event)
}
