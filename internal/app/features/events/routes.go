// internal/app/features/events/routes.go
package events

import (
	"github.com/campusconnect/campushub/internal/app/system/auth"
	"github.com/campusconnect/campushub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	// Reads open to every authenticated role.
	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireRole(models.RoleStudent, models.RoleClub, models.RoleDepartment))
		pr.Get("/", h.HandleListEvents)
		pr.Get("/{id}", h.HandleGetEvent)
	})

	// Lifecycle operations are club only; ownership is checked per
	// handler against the event's club_id.
	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireRole(models.RoleClub))
		pr.Post("/", h.HandleCreateEvent)
		pr.Get("/club", h.HandleListClubEvents)
		pr.Put("/{id}", h.HandleUpdateEvent)
		pr.Delete("/{id}", h.HandleDeleteEvent)
		pr.Post("/{id}/start", h.HandleStartEvent)
		pr.Post("/{id}/attendance", h.HandleMarkAttendance)
		pr.Get("/{id}/registrations", h.HandleListEventRegistrations)
	})

	return r
}
