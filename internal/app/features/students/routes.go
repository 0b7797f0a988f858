// internal/app/features/students/routes.go
package students

import (
	"github.com/campusconnect/campushub/internal/app/system/auth"
	"github.com/campusconnect/campushub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireRole(models.RoleStudent))
		pr.Get("/profile", h.HandleGetProfile)
	})

	return r
}
