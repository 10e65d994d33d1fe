// Package store holds the checklist persistence backends.
package store

import (
	"context"
	"sync"

	"propaudit/internal/nri/models"
	id "propaudit/pkg/domain"
	"propaudit/pkg/platform/sentinel"
)

// InMemory keeps checklists keyed by email. Reads and writes copy so callers
// never alias stored items.
type InMemory struct {
	mu         sync.RWMutex
	checklists map[id.Email]*models.Checklist
}

func NewInMemory() *InMemory {
	return &InMemory{checklists: make(map[id.Email]*models.Checklist)}
}

func (s *InMemory) Get(_ context.Context, email id.Email) (*models.Checklist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.checklists[email]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return c.Clone(), nil
}

func (s *InMemory) Create(_ context.Context, checklist *models.Checklist) (*models.Checklist, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.checklists[checklist.Email]; ok {
		return existing.Clone(), false, nil
	}
	s.checklists[checklist.Email] = checklist.Clone()
	return checklist.Clone(), true, nil
}

func (s *InMemory) Update(ctx context.Context, email id.Email, fn func(*models.Checklist) error) (*models.Checklist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.checklists[email]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	working := c.Clone()
	if err := fn(working); err != nil {
		return nil, err
	}
	s.checklists[email] = working
	return working.Clone(), nil
}
