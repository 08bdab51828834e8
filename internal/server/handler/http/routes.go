package http

import (
	"net/http"

	"github.com/inspektor-hq/inspektor/internal/middleware"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs the HTTP handler serving the inspektor API.
//
// Routes:
//
//	GET  /api/health                  → health check
//	POST /api/auth/register           → authHandler.Register
//	POST /api/auth/login              → authHandler.Login
//	POST /api/cases                   → casesHandler.Create      (bearer auth)
//	GET  /api/cases/home              → casesHandler.HomeOverview (bearer auth)
//	GET  /api/cases/{caseID}/creator  → casesHandler.CreatorCase  (bearer auth)
//
// Middleware chain (applied in order):
//  1. AllowContentType("application/json") — rejects non-JSON request bodies
//  2. WithRequestLogging(logger)           — logs each request
//  3. RequireAuth(verifier)                — bearer auth on the cases group
func NewRouter(
	authHandler *AuthHandler,
	casesHandler *CasesHandler,
	verifier middleware.TokenVerifier,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.AllowContentType("application/json"))
	r.Use(middleware.WithRequestLogging(logger))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", HealthCheck)

		// Public endpoints
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
		})

		// Protected group: requires a valid access token
		r.Route("/cases", func(r chi.Router) {
			r.Use(middleware.RequireAuth(verifier))
			r.Get("/home", casesHandler.HomeOverview)
			r.Get("/{caseID}/creator", casesHandler.CreatorCase)
			r.Post("/", casesHandler.Create)
		})
	})

	return r
}

// HealthCheck handles GET /api/health.
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"message": "inspektor backend is up",
	})
}
