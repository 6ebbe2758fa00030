// Package models holds the subcontractor aggregate and its compliance flags.
package models

import (
	"time"

	id "nachweis/pkg/domain"
	dErrors "nachweis/pkg/domain-errors"
)

// ContractorStatus is the administrative state of a subcontractor.
type ContractorStatus string

const (
	ContractorStatusActive   ContractorStatus = "active"
	ContractorStatusInactive ContractorStatus = "inactive"
)

// Tristate models a flag whose absence carries meaning: nil answers neither
// yes nor no. Flag-gated requirement decisions branch on all three values
// explicitly, never through truthy coercion.
type Tristate int

const (
	TristateUnknown Tristate = iota
	TristateYes
	TristateNo
)

// TristateOf lifts a nullable boolean into a Tristate.
func TristateOf(v *bool) Tristate {
	switch {
	case v == nil:
		return TristateUnknown
	case *v:
		return TristateYes
	default:
		return TristateNo
	}
}

// ComplianceFlags are the declared risk attributes that gate which document
// types a subcontractor must supply. nil means "unknown - do not assume either
// requirement"; requirements are only ever expanded on an explicit yes.
type ComplianceFlags struct {
	RequiresEmployees             *bool `json:"requires_employees"`
	HasNonEUWorkers               *bool `json:"has_non_eu_workers"`
	EmployeesNotEmployedInGermany *bool `json:"employees_not_employed_in_germany"`
}

// Contractor is the aggregate root for a subcontractor.
//
// Invariants:
//   - Name is non-empty and at most 200 characters
//   - Status is either active or inactive
//   - CreatedAt is immutable after construction
type Contractor struct {
	ID        id.ContractorID  `json:"id"`
	Name      string           `json:"name"`
	Status    ContractorStatus `json:"status"`
	Flags     ComplianceFlags  `json:"flags"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// NewContractor constructs an active contractor, enforcing invariants.
func NewContractor(name string, flags ComplianceFlags, now time.Time) (*Contractor, error) {
	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "contractor name cannot be empty")
	}
	if len(name) > 200 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "contractor name must be 200 characters or less")
	}
	return &Contractor{
		ID:        id.NewContractorID(),
		Name:      name,
		Status:    ContractorStatusActive,
		Flags:     flags,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (c *Contractor) IsActive() bool {
	return c.Status == ContractorStatusActive
}

// UpdateFlags replaces the declared risk flags. The next aggregation run
// reconciles requirement records against the new set.
func (c *Contractor) UpdateFlags(flags ComplianceFlags, now time.Time) {
	c.Flags = flags
	c.UpdatedAt = now
}
