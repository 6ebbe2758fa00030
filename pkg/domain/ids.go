// Package domain holds typed identifiers shared across modules.
package domain

import (
	"github.com/google/uuid"

	dErrors "nachweis/pkg/domain-errors"
)

// ContractorID identifies a subcontractor.
type ContractorID uuid.UUID

// RequirementID identifies one (contractor, document type) requirement record.
type RequirementID uuid.UUID

func NewContractorID() ContractorID {
	return ContractorID(uuid.New())
}

func NewRequirementID() RequirementID {
	return RequirementID(uuid.New())
}

// ParseContractorID constructs a ContractorID from external input.
func ParseContractorID(s string) (ContractorID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return ContractorID{}, dErrors.New(dErrors.CodeInvalidInput, "invalid contractor id")
	}
	return ContractorID(u), nil
}

// ParseRequirementID constructs a RequirementID from external input.
func ParseRequirementID(s string) (RequirementID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return RequirementID{}, dErrors.New(dErrors.CodeInvalidInput, "invalid requirement id")
	}
	return RequirementID(u), nil
}

func (id ContractorID) String() string {
	return uuid.UUID(id).String()
}

func (id RequirementID) String() string {
	return uuid.UUID(id).String()
}

func (id ContractorID) IsZero() bool {
	return uuid.UUID(id) == uuid.Nil
}

func (id RequirementID) IsZero() bool {
	return uuid.UUID(id) == uuid.Nil
}

// Defined types do not inherit uuid.UUID's text marshaling, so both IDs
// implement it explicitly to serialize as canonical UUID strings.

func (id ContractorID) MarshalText() ([]byte, error) {
	return []byte(uuid.UUID(id).String()), nil
}

func (id *ContractorID) UnmarshalText(b []byte) error {
	u, err := uuid.Parse(string(b))
	if err != nil {
		return err
	}
	*id = ContractorID(u)
	return nil
}

func (id RequirementID) MarshalText() ([]byte, error) {
	return []byte(uuid.UUID(id).String()), nil
}

func (id *RequirementID) UnmarshalText(b []byte) error {
	u, err := uuid.Parse(string(b))
	if err != nil {
		return err
	}
	*id = RequirementID(u)
	return nil
}
