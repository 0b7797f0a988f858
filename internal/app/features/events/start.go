// internal/app/features/events/start.go
package events

import (
	"context"
	"net/http"
	"time"

	eventstore "github.com/campusconnect/campushub/internal/app/store/events"
	"github.com/campusconnect/campushub/internal/app/system/apperr"
	"github.com/campusconnect/campushub/internal/app/system/authz"
	"github.com/campusconnect/campushub/internal/app/system/httpjson"
	"github.com/campusconnect/campushub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleStartEvent handles POST /events/{id}/start. Starting is allowed
// only inside the 24h window before the event date and is idempotent:
// re-starting an already started event succeeds without change.
func (h *Handler) HandleStartEvent(w http.ResponseWriter, r *http.Request) {
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

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	event, err := eventstore.New(h.DB).Start(ctx, id, clubID, time.Now())
	if err != nil {
		if apperr.KindOf(storeError(err)) == apperr.Internal {
			h.Log.Error("start event failed", zap.Error(err), zap.String("event_id", id.Hex()))
		}
		httpjson.WriteError(w, storeError(err))
		return
	}

	h.Log.Info("event started",
		zap.String("event_id", event.ID.Hex()),
		zap.String("club_id", clubID.Hex()))
	httpjson.Write(w, http.StatusOK, event)
}
