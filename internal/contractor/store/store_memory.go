package store

import (
	"context"
	"sync"

	"nachweis/internal/contractor/models"
	id "nachweis/pkg/domain"
	"nachweis/pkg/platform/sentinel"
)

// InMemory keeps contractors in process memory for tests and local runs.
type InMemory struct {
	mu          sync.RWMutex
	contractors map[id.ContractorID]*models.Contractor
}

func NewInMemory() *InMemory {
	return &InMemory{contractors: make(map[id.ContractorID]*models.Contractor)}
}

func (s *InMemory) Create(_ context.Context, contractor *models.Contractor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.contractors[contractor.ID]; exists {
		return sentinel.ErrConflict
	}
	clone := *contractor
	s.contractors[contractor.ID] = &clone
	return nil
}

func (s *InMemory) Update(_ context.Context, contractor *models.Contractor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.contractors[contractor.ID]; !exists {
		return sentinel.ErrNotFound
	}
	clone := *contractor
	s.contractors[contractor.ID] = &clone
	return nil
}

func (s *InMemory) FindByID(_ context.Context, contractorID id.ContractorID) (*models.Contractor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	contractor, ok := s.contractors[contractorID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	clone := *contractor
	return &clone, nil
}
