// internal/app/features/registrations/register.go
package registrations

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	eventstore "github.com/campusconnect/campushub/internal/app/store/events"
	registrationstore "github.com/campusconnect/campushub/internal/app/store/registrations"
	"github.com/campusconnect/campushub/internal/app/system/apperr"
	"github.com/campusconnect/campushub/internal/app/system/authz"
	"github.com/campusconnect/campushub/internal/app/system/httpjson"
	"github.com/campusconnect/campushub/internal/app/system/metrics"
	"github.com/campusconnect/campushub/internal/app/system/timeouts"
	"github.com/campusconnect/campushub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type registerRequest struct {
	TeamName    string              `json:"team_name"`
	TeamMembers []models.TeamMember `json:"team_members"`
}

// HandleRegister handles POST /registrations/{eventId}. One student
// registers one team; the unique indexes are the final authority on
// duplicate teams and duplicate roll numbers under concurrency.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	_, _, studentID, ok := authz.PrincipalCtx(r)
	if !ok {
		httpjson.WriteError(w, apperr.New(apperr.NotAuthorized, "authentication required"))
		return
	}
	eventID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "eventId"))
	if err != nil {
		h.reject(w, "event_not_found", apperr.Wrap(apperr.NotFound, "event not found", err))
		return
	}

	var req registerRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		h.reject(w, "malformed_body", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	event, err := eventstore.New(h.DB).GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, eventstore.ErrNotFound) {
			h.reject(w, "event_not_found", apperr.Wrap(apperr.NotFound, "event not found", err))
			return
		}
		h.Log.Error("load event for registration failed", zap.Error(err))
		httpjson.WriteError(w, err)
		return
	}
	// Registration is open only before the event's calendar day: an
	// ongoing or started event no longer accepts teams.
	if event.Status != models.StatusUpcoming {
		h.reject(w, "registration_closed", apperr.New(apperr.InvalidStateTransition, "registrations are closed for this event"))
		return
	}
	if err := validateTeam(req, event.TeamSize); err != nil {
		h.reject(w, "invalid_team", err)
		return
	}

	store := registrationstore.New(h.DB)

	// Friendly pre-check; the unique index still decides under races.
	if exists, err := store.ExistsForStudent(ctx, eventID, studentID); err == nil && exists {
		h.reject(w, "duplicate_registration", apperr.New(apperr.Conflict, "student is already registered for this event"))
		return
	}

	reg, err := store.Create(ctx, models.Registration{
		EventID:       eventID,
		StudentID:     studentID,
		TeamName:      req.TeamName,
		TeamMembers:   req.TeamMembers,
		PaymentStatus: models.PaymentPending,
	})
	if err != nil {
		switch {
		case errors.Is(err, registrationstore.ErrDuplicateRegistration):
			h.reject(w, "duplicate_registration", apperr.Wrap(apperr.Conflict, "student is already registered for this event", err))
		case errors.Is(err, registrationstore.ErrDuplicateRollNumber):
			h.reject(w, "duplicate_roll_number", apperr.Wrap(apperr.Conflict, "a team member is already registered for this event", err))
		default:
			h.Log.Error("create registration failed", zap.Error(err), zap.String("event_id", eventID.Hex()))
			httpjson.WriteError(w, err)
		}
		return
	}

	// Counter update is best effort; the registration itself is the
	// source of truth and the counter can be rebuilt from it.
	if err := eventstore.New(h.DB).IncRegistrations(ctx, eventID); err != nil {
		h.Log.Warn("registrations counter update failed",
			zap.Error(err),
			zap.String("event_id", eventID.Hex()))
	}

	metrics.RegistrationsAccepted.Inc()
	h.Log.Info("team registered",
		zap.String("event_id", eventID.Hex()),
		zap.String("student_id", studentID.Hex()),
		zap.String("team_name", reg.TeamName))
	httpjson.Write(w, http.StatusCreated, reg)
}

func (h *Handler) reject(w http.ResponseWriter, reason string, err error) {
	metrics.RegistrationsRejected.WithLabelValues(reason).Inc()
	httpjson.WriteError(w, err)
}

func validateTeam(req registerRequest, teamSize int) error {
	if strings.TrimSpace(req.TeamName) == "" {
		return apperr.New(apperr.ValidationFailed, "team name is required")
	}
	if len(req.TeamMembers) == 0 {
		return apperr.New(apperr.ValidationFailed, "team must have at least one member")
	}
	// Team size is a maximum; smaller teams are allowed.
	if len(req.TeamMembers) > teamSize {
		return apperr.New(apperr.ValidationFailed,
			fmt.Sprintf("team may have at most %d members, got %d", teamSize, len(req.TeamMembers)))
	}
	seen := make(map[string]struct{}, len(req.TeamMembers))
	for i, m := range req.TeamMembers {
		if strings.TrimSpace(m.Name) == "" || strings.TrimSpace(m.RollNo) == "" || strings.TrimSpace(m.Department) == "" {
			return apperr.New(apperr.ValidationFailed,
				fmt.Sprintf("team_members[%d]: name, roll number, and department are required", i))
		}
		if _, dup := seen[m.RollNo]; dup {
			return apperr.New(apperr.ValidationFailed,
				fmt.Sprintf("team_members[%d]: roll number %s appears more than once", i, m.RollNo))
		}
		seen[m.RollNo] = struct{}{}
	}
	return nil
}
