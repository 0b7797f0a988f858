// internal/app/features/events/errors.go
package events

import (
	"errors"

	eventstore "github.com/campusconnect/campushub/internal/app/store/events"
	"github.com/campusconnect/campushub/internal/app/system/apperr"
)

// storeError translates eventstore sentinels into apperr classifications
// so the HTTP layer renders the right status for each failure.
func storeError(err error) error {
	switch {
	case errors.Is(err, eventstore.ErrNotFound):
		return apperr.Wrap(apperr.NotFound, "event not found", err)
	case errors.Is(err, eventstore.ErrOutOfWindow):
		return apperr.Wrap(apperr.InvalidStateTransition, "event can only be started within 24 hours of its date", err)
	case errors.Is(err, eventstore.ErrNotStarted):
		return apperr.Wrap(apperr.InvalidStateTransition, "event must be started before attendance can be marked", err)
	case errors.Is(err, eventstore.ErrCompleted):
		return apperr.Wrap(apperr.InvalidStateTransition, "event is already completed", err)
	}
	return err
}
