// internal/app/features/registrations/handler.go
package registrations

import (
	"github.com/campusconnect/campushub/internal/app/system/ratelimit"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the registrations
// feature: team sign-up, payment confirmation, and the student's own
// registration list.
type Handler struct {
	DB      *mongo.Database
	Log     *zap.Logger
	Limiter *ratelimit.Limiter
}

// NewHandler constructs a registrations Handler. The limiter guards
// the registration endpoint only; a nil or disabled limiter passes
// every request through.
func NewHandler(db *mongo.Database, logger *zap.Logger, limiter *ratelimit.Limiter) *Handler {
	return &Handler{
		DB:      db,
		Log:     logger,
		Limiter: limiter,
	}
}
