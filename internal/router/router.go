// Package router wires the HTTP surface: middleware stack and route tree.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	mw "github.com/threadly-dev/threadly/internal/middleware"
	"github.com/threadly-dev/threadly/internal/middleware/metrics"
	"github.com/threadly-dev/threadly/internal/setup"
)

// New builds the router. Reads stay public; every mutating route goes through
// the JWT middleware, with capability and ban checks left to the services.
func New(deps *setup.Dependencies) chi.Router {
	r := chi.NewRouter()

	r.Use(mw.RequestId)
	r.Use(metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:8081"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	// JSON API only, no scripts or styles needed
	r.Use(mw.SecurityHeadersWithCSP(false, "default-src 'none'; frame-ancestors 'none'"))

	h := deps.Handler
	authMw := deps.AuthMiddleware

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(v1 chi.Router) {
		v1.Route("/auth", func(auth chi.Router) {
			auth.Post("/signup", h.Signup)
			auth.Post("/login", h.Login)
			auth.Post("/logout", h.Logout)
			auth.Get("/validate_username/{username}", h.ValidateUsername)
		})

		v1.Get("/sections", h.GetSections)

		v1.Route("/forums/{forum}", func(forum chi.Router) {
			forum.With(authMw.OptionalAuth()).Get("/", h.GetForum)
			forum.Get("/latest", h.GetLatestThread)
			forum.With(authMw.NeedAuth()).Post("/threads", h.CreateThread)
		})

		v1.Route("/threads/{thread}", func(thread chi.Router) {
			thread.With(authMw.OptionalAuth()).Get("/", h.GetThread)
			thread.With(authMw.NeedAuth()).Delete("/", h.DeleteThread)
			thread.With(authMw.NeedAuth()).Put("/pin", h.SetPin)
			thread.With(authMw.NeedAuth()).Post("/responses", h.CreateResponse)
		})

		v1.Route("/responses/{response}", func(response chi.Router) {
			response.With(authMw.NeedAuth()).Put("/", h.EditResponse)
			response.With(authMw.NeedAuth()).Delete("/", h.DeleteResponse)
			response.With(authMw.NeedAuth()).Put("/vote", h.Vote)
		})

		v1.Route("/accounts/{account}", func(account chi.Router) {
			account.Get("/", h.GetAccount)
			account.With(authMw.NeedAuth()).Put("/ban", h.BanAccount)
		})

		v1.Route("/admin", func(admin chi.Router) {
			admin.Use(authMw.NeedAuth())
			admin.Post("/sections", h.CreateSection)
			admin.Post("/forums", h.CreateForum)
		})
	})

	// avoid 404s for preflight requests outside registered routes
	r.MethodFunc(http.MethodOptions, "/*", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return r
}
