/**
 * @description
 * This file contains the HTTP handler functions for the payment-monitor-service.
 * Handlers parse incoming requests, call the monitoring service, and write
 * the JSON response envelopes.
 */
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hostforge/payment-monitor-service/internal/app"
	"github.com/hostforge/payment-monitor-service/internal/domain"
	"github.com/hostforge/payment-monitor-service/internal/store"
)

// MonitorService defines the operations the handlers need from the service
// layer.
type MonitorService interface {
	RunPass(ctx context.Context) (*domain.MonitoringResults, error)
	ManualSuspend(ctx context.Context, websiteID, operator string) (*domain.Website, error)
	ManualActivate(ctx context.Context, websiteID, operator string) (*domain.Website, error)
	ListOverdue(ctx context.Context) ([]domain.Website, error)
}

// Handler holds the monitoring service that handlers will interact with.
type Handler struct {
	service MonitorService
	logger  *slog.Logger
}

// NewHandler creates a new Handler with the given service.
func NewHandler(service MonitorService, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// monitoringResponse is the envelope returned by the trigger endpoint.
type monitoringResponse struct {
	Success bool                      `json:"success"`
	Message string                    `json:"message"`
	Error   string                    `json:"error,omitempty"`
	Results *domain.MonitoringResults `json:"results,omitempty"`
}

// handleRunMonitoring triggers one monitoring pass and returns its summary.
// Individual website failures are part of the summary; only a failure to even
// list the websites produces a 500.
func (h *Handler) handleRunMonitoring(w http.ResponseWriter, r *http.Request) {
	results, err := h.service.RunPass(r.Context())
	if err != nil {
		h.logger.Error("payment monitoring pass failed", "error", err)
		respondWithJSON(w, http.StatusInternalServerError, monitoringResponse{
			Success: false,
			Error:   err.Error(),
			Message: "payment monitoring pass failed",
		})
		return
	}

	respondWithJSON(w, http.StatusOK, monitoringResponse{
		Success: true,
		Message: "payment monitoring pass completed",
		Results: results,
	})
}

// handleManualSuspend suspends a website on behalf of the authenticated
// operator.
func (h *Handler) handleManualSuspend(w http.ResponseWriter, r *http.Request) {
	operator, ok := OperatorFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	websiteID := chi.URLParam(r, "websiteID")
	site, err := h.service.ManualSuspend(r.Context(), websiteID, operator)
	if err != nil {
		h.respondWithActionError(w, websiteID, err)
		return
	}

	respondWithJSON(w, http.StatusOK, site)
}

// handleManualActivate returns a website to active on behalf of the
// authenticated operator.
func (h *Handler) handleManualActivate(w http.ResponseWriter, r *http.Request) {
	operator, ok := OperatorFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	websiteID := chi.URLParam(r, "websiteID")
	site, err := h.service.ManualActivate(r.Context(), websiteID, operator)
	if err != nil {
		h.respondWithActionError(w, websiteID, err)
		return
	}

	respondWithJSON(w, http.StatusOK, site)
}

// handleListOverdue returns the current overdue snapshot for the admin UI.
func (h *Handler) handleListOverdue(w http.ResponseWriter, r *http.Request) {
	sites, err := h.service.ListOverdue(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if sites == nil {
		sites = []domain.Website{}
	}

	respondWithJSON(w, http.StatusOK, sites)
}

func (h *Handler) respondWithActionError(w http.ResponseWriter, websiteID string, err error) {
	switch {
	case errors.Is(err, store.ErrWebsiteNotFound):
		http.Error(w, "Website not found", http.StatusNotFound)
	case errors.Is(err, app.ErrInvalidTransition):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		h.logger.Error("manual website action failed", "website_id", websiteID, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// respondWithJSON is a helper function to write JSON responses.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
