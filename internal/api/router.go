/**
 * @description
 * This file sets up the HTTP router for the payment-monitor-service using the
 * go-chi/chi router. It defines the API routes, applies middleware for
 * logging, CORS, and authentication, and maps the routes to their handler
 * functions.
 */
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/hostforge/payment-monitor-service/internal/config"
)

// NewRouter creates a new Chi router and registers the service routes.
func NewRouter(h *Handler, cfg config.Config) *chi.Mux {
	r := chi.NewRouter()

	// A monitoring pass may legitimately run for several minutes, so the
	// request timeout has to sit above the pass deadline.
	requestTimeout := time.Duration(cfg.MonitorPassTimeout+30) * time.Second

	// Setup middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Payment monitor service is healthy"))
	})

	// Monitoring trigger, called by the cron infrastructure or manually.
	// Both methods require the shared bearer token.
	r.Group(func(r chi.Router) {
		r.Use(TriggerAuthMiddleware(cfg.MonitorTriggerToken))

		r.Post("/payment-monitoring", h.handleRunMonitoring)
		r.Get("/payment-monitoring", h.handleRunMonitoring)
	})

	// Operator endpoints for manual actions and the admin overdue listing.
	r.Group(func(r chi.Router) {
		r.Use(OperatorAuthMiddleware(cfg.OperatorJWTSecret))

		r.Post("/websites/{websiteID}/suspend", h.handleManualSuspend)
		r.Post("/websites/{websiteID}/activate", h.handleManualActivate)
		r.Get("/websites/overdue", h.handleListOverdue)
	})

	return r
}
