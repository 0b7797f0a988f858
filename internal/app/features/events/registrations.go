// internal/app/features/events/registrations.go
package events

import (
	"context"
	"net/http"

	eventstore "github.com/campusconnect/campushub/internal/app/store/events"
	registrationstore "github.com/campusconnect/campushub/internal/app/store/registrations"
	"github.com/campusconnect/campushub/internal/app/system/apperr"
	"github.com/campusconnect/campushub/internal/app/system/authz"
	"github.com/campusconnect/campushub/internal/app/system/httpjson"
	"github.com/campusconnect/campushub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleListEventRegistrations handles GET /events/{id}/registrations.
// The ownership check runs first so one club cannot read another's
// roster.
func (h *Handler) HandleListEventRegistrations(w http.ResponseWriter, r *http.Request) {
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

	if _, err := eventstore.New(h.DB).GetOwned(ctx, id, clubID); err != nil {
		httpjson.WriteError(w, storeError(err))
		return
	}

	regs, err := registrationstore.New(h.DB).ListByEvent(ctx, id)
	if err != nil {
		h.Log.Error("list event registrations failed", zap.Error(err), zap.String("event_id", id.Hex()))
		httpjson.WriteError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, regs)
}
