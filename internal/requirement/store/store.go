// Package store persists document requirement records.
package store

import (
	"context"

	"nachweis/internal/requirement/models"
	id "nachweis/pkg/domain"
)

// Store is the persistence boundary for requirement records. Implementations
// return sentinel errors for infrastructure facts so services can translate
// them into domain errors.
type Store interface {
	Create(ctx context.Context, doc *models.Document) error
	Update(ctx context.Context, doc *models.Document) error
	FindByID(ctx context.Context, reqID id.RequirementID) (*models.Document, error)
	ListByContractor(ctx context.Context, contractorID id.ContractorID) ([]*models.Document, error)
}
