// internal/app/features/events/create.go
package events

import (
	"context"
	"net/http"
	"strings"
	"time"

	eventstore "github.com/campusconnect/campushub/internal/app/store/events"
	"github.com/campusconnect/campushub/internal/app/system/apperr"
	"github.com/campusconnect/campushub/internal/app/system/authz"
	"github.com/campusconnect/campushub/internal/app/system/httpjson"
	"github.com/campusconnect/campushub/internal/app/system/timeouts"
	"github.com/campusconnect/campushub/internal/domain/models"
	"go.uber.org/zap"
)

type createEventRequest struct {
	EventName   string    `json:"event_name"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	TeamSize    int       `json:"team_size"`
	Fee         int64     `json:"fee"`
}

// HandleCreateEvent handles POST /events (club only).
func (h *Handler) HandleCreateEvent(w http.ResponseWriter, r *http.Request) {
	_, _, clubID, ok := authz.PrincipalCtx(r)
	if !ok {
		httpjson.WriteError(w, apperr.New(apperr.NotAuthorized, "authentication required"))
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

	store := eventstore.New(h.DB)
	event, err := store.Create(ctx, models.Event{
		ClubID:      clubID,
		EventName:   req.EventName,
		Description: req.Description,
		Date:        req.Date.UTC(),
		TeamSize:    req.TeamSize,
		Fee:         req.Fee,
	})
	if err != nil {
		h.Log.Error("create event failed", zap.Error(err))
		httpjson.WriteError(w, err)
		return
	}

	httpjson.Write(w, http.StatusCreated, event)
}

func validateCreate(req createEventRequest) error {
	switch {
	case strings.TrimSpace(req.EventName) == "":
		return apperr.New(apperr.ValidationFailed, "event name is required")
	case strings.TrimSpace(req.Description) == "":
		return apperr.New(apperr.ValidationFailed, "description is required")
	case req.Date.IsZero():
		return apperr.New(apperr.ValidationFailed, "date is required")
	case req.TeamSize < 1:
		return apperr.New(apperr.ValidationFailed, "team size must be at least 1")
	case req.Fee < 0:
		return apperr.New(apperr.ValidationFailed, "fee cannot be negative")
	}
	return nil
}
