package compliance

import (
	"sort"
	"time"

	contractorModel "nachweis/internal/contractor/models"
	"nachweis/internal/requirement/models"
)

// Warning is one entry of the aggregation output, carrying the minimum
// display fields a notification or UI consumer needs.
type Warning struct {
	RequirementID string     `json:"requirement_id"`
	DocumentName  string     `json:"document_name"`
	DocumentCode  string     `json:"document_code"`
	Status        string     `json:"status"`
	DueDate       *time.Time `json:"due_date,omitempty"`
}

// Response is the aggregation result. Produced fresh on every call; the
// engine holds no state across calls and callers own persistence of the
// reconciled records.
type Response struct {
	CreatedRequirements       int                             `json:"created_requirements"`
	UpdatedRequirements       int                             `json:"updated_requirements"`
	WarningCount              int                             `json:"warning_count"`
	Warnings                  []Warning                       `json:"warnings"`
	Flags                     contractorModel.ComplianceFlags `json:"flags"`
	SubcontractorGlobalActive bool                            `json:"subcontractor_global_active"`
}

// Outcome carries the reconciled records alongside the response so the caller
// can persist exactly what changed.
type Outcome struct {
	Created  []*models.Document
	Updated  []*models.Document
	Response *Response
}

// Reconcile computes the required document set for a contractor and brings
// the existing records in line with it. Pure: all inputs including the clock
// are arguments, and existing documents are copied before mutation.
//
// Per required type: a missing record is created in missing status; an
// existing one is re-evaluated against the clock. Types no longer required
// are downgraded to optional but their history is retained, never deleted.
func Reconcile(contractor *contractorModel.Contractor, existing []*models.Document, policy Policy, now time.Time, lookaheadDays int) Outcome {
	required := policy.RequiredSet(contractor.Flags)
	requiredByType := make(map[string]bool, len(required))
	for _, spec := range required {
		requiredByType[spec.TypeID.String()] = true
	}

	byType := make(map[string]*models.Document, len(existing))
	docs := make([]*models.Document, 0, len(existing))
	for _, doc := range existing {
		clone := doc.Clone()
		byType[clone.TypeID.String()] = clone
		docs = append(docs, clone)
	}

	outcome := Outcome{Response: &Response{Flags: contractor.Flags}}

	for _, spec := range required {
		doc, exists := byType[spec.TypeID.String()]
		if !exists {
			doc = models.NewDocument(contractor.ID, spec.TypeID, spec.Name, models.RequirementRequired, now)
			byType[spec.TypeID.String()] = doc
			docs = append(docs, doc)
			outcome.Created = append(outcome.Created, doc)
			continue
		}
		changed := doc.MarkRequired(now)
		if doc.EvaluateAgainstClock(now, lookaheadDays) {
			changed = true
		}
		if changed {
			outcome.Updated = append(outcome.Updated, doc)
		}
	}

	for _, doc := range docs {
		if !requiredByType[doc.TypeID.String()] && doc.MarkOptional(now) {
			outcome.Updated = append(outcome.Updated, doc)
		}
	}

	outcome.Response.CreatedRequirements = len(outcome.Created)
	outcome.Response.UpdatedRequirements = len(outcome.Updated)
	outcome.Response.Warnings = collectWarnings(docs, requiredByType)
	outcome.Response.WarningCount = len(outcome.Response.Warnings)
	outcome.Response.SubcontractorGlobalActive = globalActive(contractor, docs, requiredByType)
	return outcome
}

// collectWarnings emits one warning per required document not currently
// valid, most urgent first.
func collectWarnings(docs []*models.Document, requiredByType map[string]bool) []Warning {
	var warnings []Warning
	for _, doc := range docs {
		if !requiredByType[doc.TypeID.String()] || doc.Status == models.StatusValid {
			continue
		}
		warnings = append(warnings, Warning{
			RequirementID: doc.ID.String(),
			DocumentName:  doc.Name,
			DocumentCode:  doc.TypeID.String(),
			Status:        doc.Status.String(),
			DueDate:       doc.ValidUntil,
		})
	}
	sort.SliceStable(warnings, func(i, j int) bool {
		si := models.Status(warnings[i].Status)
		sj := models.Status(warnings[j].Status)
		if si.UrgencyRank() != sj.UrgencyRank() {
			return si.MoreUrgent(sj)
		}
		return warnings[i].DocumentCode < warnings[j].DocumentCode
	})
	return warnings
}

// globalActive reports whether the subcontractor still has a viable
// compliance path: administratively active and at least one required document
// not stuck in expired or rejected.
func globalActive(contractor *contractorModel.Contractor, docs []*models.Document, requiredByType map[string]bool) bool {
	if !contractor.IsActive() {
		return false
	}
	for _, doc := range docs {
		if !requiredByType[doc.TypeID.String()] {
			continue
		}
		if doc.Status != models.StatusExpired && doc.Status != models.StatusRejected {
			return true
		}
	}
	return false
}
