// Package handler exposes the document lifecycle endpoints: listing, upload,
// reviewer decisions, and the display mapping for UI consumers.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"nachweis/internal/requirement/models"
	"nachweis/internal/requirement/service"
	"nachweis/internal/transport/http/shared"
	id "nachweis/pkg/domain"
	dErrors "nachweis/pkg/domain-errors"
)

// Service defines the lifecycle operations the handler needs.
type Service interface {
	Get(ctx context.Context, reqID id.RequirementID) (*models.Document, error)
	ListByContractor(ctx context.Context, contractorID id.ContractorID) ([]*models.Document, error)
	Upload(ctx context.Context, reqID id.RequirementID, fileName string) (*models.Document, error)
	Review(ctx context.Context, reqID id.RequirementID, decision service.ReviewDecision, reason string, declaredUntil *time.Time) (*models.Document, error)
}

// SummaryInvalidator drops cached compliance summaries after mutations.
type SummaryInvalidator interface {
	InvalidateSummary(ctx context.Context, contractorID id.ContractorID)
}

// Handler handles requirement lifecycle endpoints.
type Handler struct {
	logger    *slog.Logger
	service   Service
	summaries SummaryInvalidator
}

// New creates a new requirement Handler. summaries may be nil when no cache
// is configured.
func New(service Service, summaries SummaryInvalidator, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, service: service, summaries: summaries}
}

// Register registers the requirement routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/contractors/{contractorID}/requirements", h.handleList)
	r.Post("/requirements/{requirementID}/upload", h.handleUpload)
	r.Post("/requirements/{requirementID}/review", h.handleReview)
	r.Get("/requirements/{requirementID}/display", h.handleDisplay)
}

type uploadRequest struct {
	FileName string `json:"file_name"`
}

type reviewRequest struct {
	Decision   string `json:"decision"`
	Reason     string `json:"reason,omitempty"`
	ValidUntil string `json:"valid_until,omitempty"`
}

type displayResponse struct {
	RequirementID string `json:"requirement_id"`
	Status        string `json:"status"`
	DisplayStatus string `json:"display_status"`
	LabelKey      string `json:"label_key"`
	Escalated     bool   `json:"escalated"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	contractorID, err := id.ParseContractorID(chi.URLParam(r, "contractorID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	docs, err := h.service.ListByContractor(ctx, contractorID)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{"requirements": docs})
}

func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID, err := id.ParseRequirementID(chi.URLParam(r, "requirementID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	var req uploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid request body"))
		return
	}
	doc, err := h.service.Upload(ctx, reqID, req.FileName)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	h.invalidate(ctx, doc.ContractorID)
	shared.WriteJSON(w, http.StatusOK, doc)
}

func (h *Handler) handleReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID, err := id.ParseRequirementID(chi.URLParam(r, "requirementID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid request body"))
		return
	}
	declaredUntil, err := parseDate(req.ValidUntil)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	doc, err := h.service.Review(ctx, reqID, service.ReviewDecision(req.Decision), req.Reason, declaredUntil)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	h.invalidate(ctx, doc.ContractorID)
	shared.WriteJSON(w, http.StatusOK, doc)
}

func (h *Handler) handleDisplay(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID, err := id.ParseRequirementID(chi.URLParam(r, "requirementID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	doc, err := h.service.Get(ctx, reqID)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, displayResponse{
		RequirementID: doc.ID.String(),
		Status:        doc.Status.String(),
		DisplayStatus: string(doc.Status.Display()),
		LabelKey:      doc.Status.LabelKey(),
		Escalated:     doc.Status.Escalated(),
	})
}

func (h *Handler) invalidate(ctx context.Context, contractorID id.ContractorID) {
	if h.summaries != nil {
		h.summaries.InvalidateSummary(ctx, contractorID)
	}
}

// parseDate accepts RFC 3339 timestamps and plain dates. A reviewer-declared
// expiry arrives as the printed date on the document.
func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return &t, nil
	}
	return nil, dErrors.New(dErrors.CodeInvalidInput, "valid_until must be an RFC 3339 timestamp or YYYY-MM-DD date")
}
