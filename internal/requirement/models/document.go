package models

import (
	"time"

	"nachweis/internal/catalog"
	"nachweis/internal/validity"
	id "nachweis/pkg/domain"
	dErrors "nachweis/pkg/domain-errors"
)

// Requirement marks whether a contractor must supply the document or merely
// may.
type Requirement string

const (
	RequirementRequired Requirement = "required"
	RequirementOptional Requirement = "optional"
)

// Document is the aggregate root for one (contractor, document type)
// requirement record.
//
// Invariants:
//   - Status is always one of the supported enum values
//   - Status changes only along the transition table (CanTransitionTo)
//   - RejectionReason is non-empty only while Status is rejected
//   - ValidUntil/ValiditySource are set together by acceptance, never ad hoc
//   - Records are never deleted while the requirement is active; a re-upload
//     supersedes by resetting Status to submitted
type Document struct {
	ID              id.RequirementID       `json:"id"`
	ContractorID    id.ContractorID        `json:"contractor_id"`
	TypeID          catalog.DocumentTypeID `json:"document_code"`
	Name            string                 `json:"document_name"`
	Status          Status                 `json:"status"`
	Requirement     Requirement            `json:"requirement"`
	FileName        string                 `json:"file_name,omitempty"`
	UploadedAt      *time.Time             `json:"uploaded_at,omitempty"`
	AcceptedAt      *time.Time             `json:"accepted_at,omitempty"`
	ValidUntil      *time.Time             `json:"valid_until,omitempty"`
	ValiditySource  validity.Source        `json:"validity_source"`
	RejectionReason string                 `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

// NewDocument creates a freshly-activated requirement in missing status.
func NewDocument(contractorID id.ContractorID, typeID catalog.DocumentTypeID, name string, req Requirement, now time.Time) *Document {
	return &Document{
		ID:             id.NewRequirementID(),
		ContractorID:   contractorID,
		TypeID:         typeID,
		Name:           name,
		Status:         StatusMissing,
		Requirement:    req,
		ValiditySource: validity.SourceNone,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// CanUpload checks whether a (re-)upload is allowed from the current status.
func (d *Document) CanUpload() error {
	if !d.Status.CanTransitionTo(StatusSubmitted) {
		return dErrors.New(dErrors.CodeInvariantViolation, "document cannot accept an upload in status "+d.Status.String())
	}
	return nil
}

// ApplyUpload transitions to submitted and clears any prior rejection reason.
// Call CanUpload first to validate the transition.
func (d *Document) ApplyUpload(fileName string, now time.Time) {
	d.Status = StatusSubmitted
	d.FileName = fileName
	d.RejectionReason = ""
	uploadedAt := now
	d.UploadedAt = &uploadedAt
	d.UpdatedAt = now
}

// Upload validates and applies an upload in one call.
func (d *Document) Upload(fileName string, now time.Time) error {
	if err := d.CanUpload(); err != nil {
		return err
	}
	d.ApplyUpload(fileName, now)
	return nil
}

// CanStartReview checks whether the document can enter review.
func (d *Document) CanStartReview() error {
	if !d.Status.CanTransitionTo(StatusInReview) {
		return dErrors.New(dErrors.CodeInvariantViolation, "document cannot enter review in status "+d.Status.String())
	}
	return nil
}

// ApplyStartReview transitions to in_review.
func (d *Document) ApplyStartReview(now time.Time) {
	d.Status = StatusInReview
	d.UpdatedAt = now
}

// CanReview checks whether a reviewer decision is allowed from the current
// status.
func (d *Document) CanReview() error {
	if !d.Status.CanTransitionTo(StatusValid) {
		return dErrors.New(dErrors.CodeInvariantViolation, "document cannot be reviewed in status "+d.Status.String())
	}
	return nil
}

// ApplyAccept transitions to valid and computes the expiry. The acceptance
// time is the anchor for rule-derived validity; a reviewer-declared expiry
// overrides the rule unconditionally.
func (d *Document) ApplyAccept(now time.Time, declaredUntil *time.Time) {
	result := validity.Compute(d.TypeID, now, declaredUntil)
	acceptedAt := now
	d.Status = StatusValid
	d.AcceptedAt = &acceptedAt
	d.ValidUntil = result.ValidUntil
	d.ValiditySource = result.Source
	d.RejectionReason = ""
	d.UpdatedAt = now
}

// Accept validates and applies a reviewer acceptance in one call.
func (d *Document) Accept(now time.Time, declaredUntil *time.Time) error {
	if err := d.CanReview(); err != nil {
		return err
	}
	d.ApplyAccept(now, declaredUntil)
	return nil
}

// ApplyReject transitions to rejected and records the reason.
func (d *Document) ApplyReject(reason string, now time.Time) {
	d.Status = StatusRejected
	d.RejectionReason = reason
	d.UpdatedAt = now
}

// Reject validates and applies a reviewer rejection in one call.
func (d *Document) Reject(reason string, now time.Time) error {
	if reason == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "rejection reason cannot be empty")
	}
	if err := d.CanReview(); err != nil {
		return err
	}
	d.ApplyReject(reason, now)
	return nil
}

// EvaluateAgainstClock reclassifies a valid or expiring document against the
// given time and reports whether the status changed. Evaluation is idempotent:
// re-running it on an already expired document is a no-op, and statuses
// outside the time-driven subset are left untouched.
func (d *Document) EvaluateAgainstClock(now time.Time, lookaheadDays int) bool {
	if d.Status != StatusValid && d.Status != StatusExpiring {
		return false
	}
	if validity.IsExpired(d.ValidUntil, now) {
		d.Status = StatusExpired
		d.UpdatedAt = now
		return true
	}
	if d.Status == StatusValid && validity.IsExpiring(d.ValidUntil, now, lookaheadDays) {
		d.Status = StatusExpiring
		d.UpdatedAt = now
		return true
	}
	return false
}

// MarkOptional downgrades the requirement without touching status or history.
// Used when changed contractor flags remove a document type from the required
// set.
func (d *Document) MarkOptional(now time.Time) bool {
	if d.Requirement == RequirementOptional {
		return false
	}
	d.Requirement = RequirementOptional
	d.UpdatedAt = now
	return true
}

// MarkRequired upgrades the requirement when flags re-add the document type.
func (d *Document) MarkRequired(now time.Time) bool {
	if d.Requirement == RequirementRequired {
		return false
	}
	d.Requirement = RequirementRequired
	d.UpdatedAt = now
	return true
}

// Clone returns a deep copy so stores can hand out records without aliasing
// internal state.
func (d *Document) Clone() *Document {
	clone := *d
	clone.UploadedAt = cloneTime(d.UploadedAt)
	clone.AcceptedAt = cloneTime(d.AcceptedAt)
	clone.ValidUntil = cloneTime(d.ValidUntil)
	return &clone
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
