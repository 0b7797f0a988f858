// internal/app/features/clubs/routes.go
package clubs

import (
	"github.com/campusconnect/campushub/internal/app/system/auth"
	"github.com/campusconnect/campushub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireRole(models.RoleClub))
		pr.Get("/profile", h.HandleGetProfile)
		pr.Put("/profile", h.HandleUpdateProfile)
	})

	return r
}
