// internal/app/features/departments/routes.go
package departments

import (
	"github.com/campusconnect/campushub/internal/app/system/auth"
	"github.com/campusconnect/campushub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireRole(models.RoleDepartment))
		pr.Get("/profile", h.HandleGetProfile)
		pr.Put("/profile", h.HandleUpdateProfile)
		pr.Get("/{code}/attendance", h.HandleDepartmentAttendance)
		pr.Get("/{code}/attendance/records", h.HandleDepartmentAttendanceRecords)
	})

	return r
}
