package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/futureprocessing/auth-gateway/app"
	"github.com/futureprocessing/auth-gateway/internal/policy"
)

// SetupRoutes configures all application routes and middleware. Each route
// group corresponds to one access policy from the policy table: public,
// static admin credential, credential exchange, token required.
func SetupRoutes(deps *app.Dependencies) http.Handler {
	r := chi.NewRouter()

	// Core middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"https://*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type",
			"X-Auth-Username", "X-Auth-Password", "X-Auth-Token"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	// Public routes
	r.Get(policy.HealthRoute, deps.HealthHandler.HandleHealth)

	// Static admin credential routes
	r.Group(func(r chi.Router) {
		r.Use(deps.AdminGuard.Require)
		r.Method(http.MethodGet, policy.MetricsRoute, deps.Metrics.Handler())
	})

	// Credential exchange route. Not behind any guard: the handler itself
	// checks the credential headers against the external verifier.
	r.Post(policy.AuthenticateRoute, deps.AuthHandler.HandleAuthenticate)

	// Token-protected routes
	r.Group(func(r chi.Router) {
		r.Use(deps.TokenAuth.RequireToken)
		r.Get(policy.StuffRoute, deps.StuffHandler.HandleGetStuff)
	})

	// 404 handler
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"not_found","message":"Resource not found"}`))
	})

	return r
}
