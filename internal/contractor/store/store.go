// Package store persists contractor records.
package store

import (
	"context"

	"nachweis/internal/contractor/models"
	id "nachweis/pkg/domain"
)

// Store is the persistence boundary for contractors.
type Store interface {
	Create(ctx context.Context, contractor *models.Contractor) error
	Update(ctx context.Context, contractor *models.Contractor) error
	FindByID(ctx context.Context, contractorID id.ContractorID) (*models.Contractor, error)
}
