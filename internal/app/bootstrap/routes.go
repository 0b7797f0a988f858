// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	clubsfeature "github.com/campusconnect/campushub/internal/app/features/clubs"
	departmentsfeature "github.com/campusconnect/campushub/internal/app/features/departments"
	eventsfeature "github.com/campusconnect/campushub/internal/app/features/events"
	healthfeature "github.com/campusconnect/campushub/internal/app/features/health"
	registrationsfeature "github.com/campusconnect/campushub/internal/app/features/registrations"
	studentsfeature "github.com/campusconnect/campushub/internal/app/features/students"
	"github.com/campusconnect/campushub/internal/app/system/auth"
	"github.com/campusconnect/campushub/internal/app/system/metrics"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// CampusHub sets up the JWT verifier, applies the principal-loading
// middleware globally, and mounts feature routers for events,
// registrations, clubs, students, and departments.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	verifier, err := auth.NewVerifier(appCfg.JWTSigningKey, appCfg.JWTIssuer, logger)
	if err != nil {
		logger.Error("jwt verifier init failed", zap.Error(err))
		return nil, err
	}

	r := chi.NewRouter()

	// Global auth middleware: loads the JWT principal into context if a
	// valid bearer token is present. Role checks happen per route.
	r.Use(verifier.LoadPrincipal)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Prometheus metrics
	r.Handle("/metrics", metrics.Handler())

	// Event lifecycle: catalog, creation, start, attendance, deletion
	eventsHandler := eventsfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/events", eventsfeature.Routes(eventsHandler))

	// Team registration and payment confirmation
	registrationsHandler := registrationsfeature.NewHandler(deps.MongoDatabase, logger, deps.Limiter)
	r.Mount("/registrations", registrationsfeature.Routes(registrationsHandler))

	// Profiles
	clubsHandler := clubsfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/clubs", clubsfeature.Routes(clubsHandler))

	studentsHandler := studentsfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/students", studentsfeature.Routes(studentsHandler))

	// Department attendance views and profile
	departmentsHandler := departmentsfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/departments", departmentsfeature.Routes(departmentsHandler))

	return r, nil
}
