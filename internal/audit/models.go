package audit

import "time"

// Action labels what happened to a requirement or contractor.
type Action string

const (
	ActionRequirementCreated   Action = "requirement_created"
	ActionRequirementUpdated   Action = "requirement_updated"
	ActionDocumentUploaded     Action = "document_uploaded"
	ActionDocumentAccepted     Action = "document_accepted"
	ActionDocumentRejected     Action = "document_rejected"
	ActionRequirementsComputed Action = "requirements_computed"
)

// Event is emitted from domain services to capture key compliance actions.
// Keep it transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp     time.Time `json:"timestamp"`
	ContractorID  string    `json:"contractor_id"`
	RequirementID string    `json:"requirement_id,omitempty"`
	Actor         string    `json:"actor,omitempty"`
	Action        Action    `json:"action"`
	Status        string    `json:"status,omitempty"`
	Reason        string    `json:"reason,omitempty"`
	RequestID     string    `json:"request_id,omitempty"`
}
