package store

import (
	"context"
	"sort"
	"sync"

	"nachweis/internal/requirement/models"
	id "nachweis/pkg/domain"
	"nachweis/pkg/platform/sentinel"
)

// InMemory keeps requirement records in process memory. Used by unit tests
// and local development; the postgres store is the production implementation.
type InMemory struct {
	mu   sync.RWMutex
	docs map[id.RequirementID]*models.Document
}

func NewInMemory() *InMemory {
	return &InMemory{docs: make(map[id.RequirementID]*models.Document)}
}

func (s *InMemory) Create(_ context.Context, doc *models.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.docs[doc.ID]; exists {
		return sentinel.ErrConflict
	}
	s.docs[doc.ID] = doc.Clone()
	return nil
}

func (s *InMemory) Update(_ context.Context, doc *models.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.docs[doc.ID]; !exists {
		return sentinel.ErrNotFound
	}
	s.docs[doc.ID] = doc.Clone()
	return nil
}

func (s *InMemory) FindByID(_ context.Context, reqID id.RequirementID) (*models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[reqID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return doc.Clone(), nil
}

func (s *InMemory) ListByContractor(_ context.Context, contractorID id.ContractorID) ([]*models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Document
	for _, doc := range s.docs {
		if doc.ContractorID == contractorID {
			out = append(out, doc.Clone())
		}
	}
	// Stable order so aggregation output is deterministic.
	sort.Slice(out, func(i, j int) bool {
		return out[i].TypeID < out[j].TypeID
	})
	return out, nil
}
