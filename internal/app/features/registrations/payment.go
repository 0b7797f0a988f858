// internal/app/features/registrations/payment.go
package registrations

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

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

type paymentRequest struct {
	PaymentStatus string `json:"payment_status"`
}

// HandleCompletePayment handles PATCH /registrations/{id}/payment.
// The pending-to-completed transition commits at most once: the fee is
// added to the event total only by the request that actually flips the
// status, so concurrent confirmations cannot double-count.
func (h *Handler) HandleCompletePayment(w http.ResponseWriter, r *http.Request) {
	_, _, clubID, ok := authz.PrincipalCtx(r)
	if !ok {
		httpjson.WriteError(w, apperr.New(apperr.NotAuthorized, "authentication required"))
		return
	}
	regID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.WriteError(w, apperr.Wrap(apperr.NotFound, "registration not found", err))
		return
	}

	var req paymentRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.WriteError(w, err)
		return
	}
	if req.PaymentStatus != models.PaymentCompleted && req.PaymentStatus != models.PaymentPending {
		httpjson.WriteError(w, apperr.New(apperr.ValidationFailed, "payment_status must be pending or completed"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	store := registrationstore.New(h.DB)
	reg, err := store.GetByID(ctx, regID)
	if err != nil {
		if errors.Is(err, registrationstore.ErrNotFound) {
			httpjson.WriteError(w, apperr.Wrap(apperr.NotFound, "registration not found", err))
			return
		}
		h.Log.Error("load registration failed", zap.Error(err))
		httpjson.WriteError(w, err)
		return
	}

	// Only the club that owns the event confirms its payments; an
	// ownership mismatch reads the same as a missing registration.
	events := eventstore.New(h.DB)
	event, err := events.GetOwned(ctx, reg.EventID, clubID)
	if err != nil {
		httpjson.WriteError(w, apperr.Wrap(apperr.NotFound, "registration not found", err))
		return
	}

	if req.PaymentStatus == models.PaymentPending {
		if reg.PaymentStatus == models.PaymentCompleted {
			httpjson.WriteError(w, apperr.New(apperr.InvalidStateTransition, "a completed payment cannot be reverted to pending"))
			return
		}
		httpjson.Write(w, http.StatusOK, reg)
		return
	}

	updated, committed, err := store.CompletePayment(ctx, regID, uuid.NewString())
	if err != nil {
		h.Log.Error("complete payment failed", zap.Error(err), zap.String("registration_id", regID.Hex()))
		httpjson.WriteError(w, err)
		return
	}
	if committed {
		if err := events.AddFees(ctx, event.ID, event.Fee); err != nil {
			h.Log.Error("fee total update failed",
				zap.Error(err),
				zap.String("event_id", event.ID.Hex()))
		}
		metrics.PaymentsCompleted.Inc()
		h.Log.Info("payment completed",
			zap.String("registration_id", regID.Hex()),
			zap.String("event_id", event.ID.Hex()),
			zap.Int64("fee", event.Fee))
	}
	httpjson.Write(w, http.StatusOK, updated)
}
