// internal/app/features/events/view.go
package events

import (
	"context"
	"net/http"

	eventstore "github.com/campusconnect/campushub/internal/app/store/events"
	"github.com/campusconnect/campushub/internal/app/system/httpjson"
	"github.com/campusconnect/campushub/internal/app/system/timeouts"
)

// HandleGetEvent handles GET /events/{id}.
func (h *Handler) HandleGetEvent(w http.ResponseWriter, r *http.Request) {
	id, err := eventIDParam(r)
	if err != nil {
		httpjson.WriteError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	event, err := eventstore.New(h.DB).GetByID(ctx, id)
	if err != nil {
		httpjson.WriteError(w, storeError(err))
		return
	}
	httpjson.Write(w, http.StatusOK, event)
}
