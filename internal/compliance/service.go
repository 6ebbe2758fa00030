// Package compliance aggregates per-document statuses into an overall
// compliance verdict for a subcontractor.
//
// The aggregation itself (Reconcile) is a pure transformation of contractor,
// documents, policy and clock; the Service wraps it with store access,
// persistence of reconciled records, audit emission, metrics and caching.
// Concurrent aggregations for different contractors are independent; the
// caller must serialize aggregations for the same contractor.
package compliance

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"nachweis/internal/audit"
	"nachweis/internal/compliance/metrics"
	contractorstore "nachweis/internal/contractor/store"
	"nachweis/internal/requirement/store"
	"nachweis/internal/validity"
	id "nachweis/pkg/domain"
	dErrors "nachweis/pkg/domain-errors"
	"nachweis/pkg/platform/sentinel"
	"nachweis/pkg/requestcontext"
)

// Service runs requirement aggregations.
type Service struct {
	contractors   contractorstore.Store
	documents     store.Store
	policy        Policy
	audit         *audit.Publisher
	metrics       *metrics.Metrics
	cache         *SummaryCache
	logger        *slog.Logger
	lookaheadDays int
}

func NewService(
	contractors contractorstore.Store,
	documents store.Store,
	policy Policy,
	auditPublisher *audit.Publisher,
	m *metrics.Metrics,
	cache *SummaryCache,
	logger *slog.Logger,
	lookaheadDays int,
) *Service {
	if lookaheadDays <= 0 {
		lookaheadDays = validity.DefaultLookaheadDays
	}
	return &Service{
		contractors:   contractors,
		documents:     documents,
		policy:        policy,
		audit:         auditPublisher,
		metrics:       m,
		cache:         cache,
		logger:        logger,
		lookaheadDays: lookaheadDays,
	}
}

// ComputeRequirements resolves the required document set for the contractor,
// reconciles the stored records against it, and returns the summary with
// warnings. Idempotent for unchanged inputs and clock: a second run creates
// and updates nothing.
func (s *Service) ComputeRequirements(ctx context.Context, contractorID id.ContractorID) (*Response, error) {
	start := time.Now()
	now := requestcontext.Now(ctx)

	contractor, err := s.contractors.FindByID(ctx, contractorID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "contractor not found")
		}
		return nil, err
	}
	existing, err := s.documents.ListByContractor(ctx, contractorID)
	if err != nil {
		return nil, err
	}

	outcome := Reconcile(contractor, existing, s.policy, now, s.lookaheadDays)

	for _, doc := range outcome.Created {
		if err := s.documents.Create(ctx, doc); err != nil {
			return nil, err
		}
		s.emit(ctx, contractorID, doc.ID.String(), audit.ActionRequirementCreated, doc.Status.String())
	}
	for _, doc := range outcome.Updated {
		if err := s.documents.Update(ctx, doc); err != nil {
			return nil, err
		}
		s.emit(ctx, contractorID, doc.ID.String(), audit.ActionRequirementUpdated, doc.Status.String())
	}
	s.emit(ctx, contractorID, "", audit.ActionRequirementsComputed, "")

	for _, w := range outcome.Response.Warnings {
		s.metrics.IncrementWarning(w.Status)
	}
	s.metrics.ObserveCompute(outcome.Response.CreatedRequirements, outcome.Response.UpdatedRequirements, time.Since(start))

	if err := s.cache.Set(ctx, contractorID, outcome.Response); err != nil {
		s.logger.WarnContext(ctx, "summary cache write failed",
			"error", err,
			"contractor_id", contractorID.String(),
		)
	}
	return outcome.Response, nil
}

// Summary returns the cached aggregation response when present, otherwise
// runs a fresh aggregation.
func (s *Service) Summary(ctx context.Context, contractorID id.ContractorID) (*Response, error) {
	cached, err := s.cache.Get(ctx, contractorID)
	if err != nil {
		s.logger.WarnContext(ctx, "summary cache read failed",
			"error", err,
			"contractor_id", contractorID.String(),
		)
	}
	if cached != nil {
		return cached, nil
	}
	return s.ComputeRequirements(ctx, contractorID)
}

// InvalidateSummary drops the cached summary after document mutations.
func (s *Service) InvalidateSummary(ctx context.Context, contractorID id.ContractorID) {
	if err := s.cache.Invalidate(ctx, contractorID); err != nil {
		s.logger.WarnContext(ctx, "summary cache invalidation failed",
			"error", err,
			"contractor_id", contractorID.String(),
		)
	}
}

func (s *Service) emit(ctx context.Context, contractorID id.ContractorID, requirementID string, action audit.Action, status string) {
	if s.audit == nil {
		return
	}
	// Audit failures must not fail the aggregation itself.
	_ = s.audit.Emit(ctx, audit.Event{
		ContractorID:  contractorID.String(),
		RequirementID: requirementID,
		Action:        action,
		Status:        status,
	})
}
