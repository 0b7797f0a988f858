// internal/app/features/events/list.go
package events

import (
	"context"
	"net/http"
	"time"

	eventstore "github.com/campusconnect/campushub/internal/app/store/events"
	"github.com/campusconnect/campushub/internal/app/system/apperr"
	"github.com/campusconnect/campushub/internal/app/system/authz"
	"github.com/campusconnect/campushub/internal/app/system/httpjson"
	"github.com/campusconnect/campushub/internal/app/system/paging"
	"github.com/campusconnect/campushub/internal/app/system/timeouts"
	"github.com/campusconnect/campushub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type listEventsResponse struct {
	Events     []models.Event `json:"events"`
	HasPrev    bool           `json:"has_prev"`
	HasNext    bool           `json:"has_next"`
	PrevCursor string         `json:"prev_cursor,omitempty"`
	NextCursor string         `json:"next_cursor,omitempty"`
}

// HandleListEvents handles GET /events. Every authenticated role can
// browse the catalog; statuses are derived at read time and pages walk
// the (date, id) keyset via before/after cursors.
func (h *Handler) HandleListEvents(w http.ResponseWriter, r *http.Request) {
	before, after := paging.Params(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, page, err := eventstore.New(h.DB).ListPage(ctx, before, after)
	if err != nil {
		h.Log.Error("list events failed", zap.Error(err))
		httpjson.WriteError(w, err)
		return
	}

	resp := listEventsResponse{
		Events:  list,
		HasPrev: page.HasPrev,
		HasNext: page.HasNext,
	}
	prev, next := paging.BuildCursors(list,
		func(e models.Event) time.Time { return e.Date },
		func(e models.Event) primitive.ObjectID { return e.ID })
	if page.HasPrev {
		resp.PrevCursor = prev
	}
	if page.HasNext {
		resp.NextCursor = next
	}
	if resp.Events == nil {
		resp.Events = []models.Event{}
	}
	httpjson.Write(w, http.StatusOK, resp)
}

// HandleListClubEvents handles GET /events/club: the calling club's own
// events, including counters the public listing also carries.
func (h *Handler) HandleListClubEvents(w http.ResponseWriter, r *http.Request) {
	_, _, clubID, ok := authz.PrincipalCtx(r)
	if !ok {
		httpjson.WriteError(w, apperr.New(apperr.NotAuthorized, "authentication required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := eventstore.New(h.DB).ListByClub(ctx, clubID)
	if err != nil {
		h.Log.Error("list club events failed", zap.Error(err), zap.String("club_id", clubID.Hex()))
		httpjson.WriteError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, list)
}
