// internal/app/features/events/params.go
package events

import (
	"net/http"

	"github.com/campusconnect/campushub/internal/app/system/apperr"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// eventIDParam pulls the {id} route parameter and parses it as an
// ObjectID. A malformed id reads the same as a missing event.
func eventIDParam(r *http.Request) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		return primitive.NilObjectID, apperr.Wrap(apperr.NotFound, "event not found", err)
	}
	return id, nil
}
