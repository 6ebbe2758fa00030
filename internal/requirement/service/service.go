// Package service orchestrates the document requirement lifecycle: uploads,
// reviewer decisions, and time-based re-evaluation. Domain rules live on the
// models; this layer owns persistence and audit emission.
package service

import (
	"context"
	"errors"
	"time"

	"nachweis/internal/audit"
	"nachweis/internal/requirement/models"
	"nachweis/internal/requirement/store"
	"nachweis/internal/validity"
	id "nachweis/pkg/domain"
	dErrors "nachweis/pkg/domain-errors"
	"nachweis/pkg/platform/sentinel"
	"nachweis/pkg/requestcontext"
)

// ReviewDecision is the reviewer's verdict on a submitted document.
type ReviewDecision string

const (
	DecisionAccept ReviewDecision = "accept"
	DecisionReject ReviewDecision = "reject"
)

// Service exposes the requirement lifecycle operations.
type Service struct {
	documents     store.Store
	audit         *audit.Publisher
	lookaheadDays int
	strictReview  bool
}

type Option func(*Service)

// WithStrictReview requires documents to pass through in_review before a
// decision; direct accept/reject from submitted is disallowed.
func WithStrictReview() Option {
	return func(s *Service) {
		s.strictReview = true
	}
}

func New(documents store.Store, auditPublisher *audit.Publisher, lookaheadDays int, opts ...Option) *Service {
	if lookaheadDays <= 0 {
		lookaheadDays = validity.DefaultLookaheadDays
	}
	s := &Service{
		documents:     documents,
		audit:         auditPublisher,
		lookaheadDays: lookaheadDays,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns a single requirement record.
func (s *Service) Get(ctx context.Context, reqID id.RequirementID) (*models.Document, error) {
	return s.load(ctx, reqID)
}

// ListByContractor returns all requirement records for a contractor, with
// time-driven statuses evaluated against the request clock. Reclassifications
// are persisted so repeated reads converge.
func (s *Service) ListByContractor(ctx context.Context, contractorID id.ContractorID) ([]*models.Document, error) {
	docs, err := s.documents.ListByContractor(ctx, contractorID)
	if err != nil {
		return nil, err
	}
	now := requestcontext.Now(ctx)
	for _, doc := range docs {
		if doc.EvaluateAgainstClock(now, s.lookaheadDays) {
			if err := s.documents.Update(ctx, doc); err != nil {
				return nil, err
			}
		}
	}
	return docs, nil
}

// Upload records a document upload. Re-uploads supersede rejected or expired
// documents and clear any prior rejection reason.
func (s *Service) Upload(ctx context.Context, reqID id.RequirementID, fileName string) (*models.Document, error) {
	if fileName == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "file name cannot be empty")
	}
	doc, err := s.load(ctx, reqID)
	if err != nil {
		return nil, err
	}
	now := requestcontext.Now(ctx)
	if err := doc.Upload(fileName, now); err != nil {
		return nil, err
	}
	if err := s.documents.Update(ctx, doc); err != nil {
		return nil, err
	}
	s.emit(ctx, doc, audit.ActionDocumentUploaded, "")
	return doc, nil
}

// StartReview moves a submitted document into review.
func (s *Service) StartReview(ctx context.Context, reqID id.RequirementID) (*models.Document, error) {
	doc, err := s.load(ctx, reqID)
	if err != nil {
		return nil, err
	}
	now := requestcontext.Now(ctx)
	if err := doc.CanStartReview(); err != nil {
		return nil, err
	}
	doc.ApplyStartReview(now)
	if err := s.documents.Update(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Review applies a reviewer decision. Acceptance computes the expiry from the
// catalog rule anchored at the request clock; a reviewer-declared expiry date
// overrides the rule unconditionally. Rejection requires a reason.
func (s *Service) Review(ctx context.Context, reqID id.RequirementID, decision ReviewDecision, reason string, declaredUntil *time.Time) (*models.Document, error) {
	doc, err := s.load(ctx, reqID)
	if err != nil {
		return nil, err
	}
	if s.strictReview && doc.Status == models.StatusSubmitted {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "review must be started before a decision")
	}
	now := requestcontext.Now(ctx)
	switch decision {
	case DecisionAccept:
		if err := doc.Accept(now, declaredUntil); err != nil {
			return nil, err
		}
	case DecisionReject:
		if err := doc.Reject(reason, now); err != nil {
			return nil, err
		}
	default:
		return nil, dErrors.New(dErrors.CodeInvalidInput, "decision must be accept or reject")
	}
	if err := s.documents.Update(ctx, doc); err != nil {
		return nil, err
	}
	action := audit.ActionDocumentAccepted
	if decision == DecisionReject {
		action = audit.ActionDocumentRejected
	}
	s.emit(ctx, doc, action, reason)
	return doc, nil
}

// Evaluate reclassifies one document against the request clock. Idempotent.
func (s *Service) Evaluate(ctx context.Context, reqID id.RequirementID) (*models.Document, error) {
	doc, err := s.load(ctx, reqID)
	if err != nil {
		return nil, err
	}
	now := requestcontext.Now(ctx)
	if doc.EvaluateAgainstClock(now, s.lookaheadDays) {
		if err := s.documents.Update(ctx, doc); err != nil {
			return nil, err
		}
		s.emit(ctx, doc, audit.ActionRequirementUpdated, "")
	}
	return doc, nil
}

func (s *Service) load(ctx context.Context, reqID id.RequirementID) (*models.Document, error) {
	doc, err := s.documents.FindByID(ctx, reqID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "requirement not found")
		}
		return nil, err
	}
	return doc, nil
}

func (s *Service) emit(ctx context.Context, doc *models.Document, action audit.Action, reason string) {
	if s.audit == nil {
		return
	}
	// Audit failures must not fail the lifecycle operation itself.
	_ = s.audit.Emit(ctx, audit.Event{
		ContractorID:  doc.ContractorID.String(),
		RequirementID: doc.ID.String(),
		Action:        action,
		Status:        doc.Status.String(),
		Reason:        reason,
	})
}
