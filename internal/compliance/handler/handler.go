// Package handler is the thin HTTP layer for aggregation endpoints. It
// delegates to the compliance service without embedding business logic so
// transport concerns remain isolated.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"nachweis/internal/compliance"
	"nachweis/internal/transport/http/shared"
	id "nachweis/pkg/domain"
)

// Service defines the aggregation operations the handler needs.
type Service interface {
	ComputeRequirements(ctx context.Context, contractorID id.ContractorID) (*compliance.Response, error)
	Summary(ctx context.Context, contractorID id.ContractorID) (*compliance.Response, error)
}

// Handler handles compliance aggregation endpoints.
type Handler struct {
	logger  *slog.Logger
	service Service
}

// New creates a new compliance Handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, service: service}
}

// Register registers the compliance routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/contractors/{contractorID}/compute-requirements", h.handleCompute)
	r.Get("/contractors/{contractorID}/summary", h.handleSummary)
}

func (h *Handler) handleCompute(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	contractorID, err := id.ParseContractorID(chi.URLParam(r, "contractorID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	resp, err := h.service.ComputeRequirements(ctx, contractorID)
	if err != nil {
		h.logger.ErrorContext(ctx, "compute requirements failed",
			"error", err,
			"contractor_id", contractorID.String(),
		)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	contractorID, err := id.ParseContractorID(chi.URLParam(r, "contractorID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	resp, err := h.service.Summary(ctx, contractorID)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, resp)
}
