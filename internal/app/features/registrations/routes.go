// internal/app/features/registrations/routes.go
package registrations

import (
	"github.com/campusconnect/campushub/internal/app/system/auth"
	"github.com/campusconnect/campushub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	// Student flows. Registration is the only rate-limited endpoint;
	// payment confirmation and listing are cheap reads/writes.
	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireRole(models.RoleStudent))
		pr.Get("/student", h.HandleListMyRegistrations)
		pr.Group(func(lr chi.Router) {
			if h.Limiter != nil {
				lr.Use(h.Limiter.Middleware)
			}
			lr.Post("/{eventId}", h.HandleRegister)
		})
	})

	// Club-side payment confirmation.
	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireRole(models.RoleClub))
		pr.Patch("/{id}/payment", h.HandleCompletePayment)
	})

	return r
}
