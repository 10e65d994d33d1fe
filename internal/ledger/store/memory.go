package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"propaudit/internal/ledger/models"
	id "propaudit/pkg/domain"
	"propaudit/pkg/platform/sentinel"
)

// InMemoryStore keeps balances and properties in maps guarded by one mutex,
// which makes DebitAndInsert a single critical section.
type InMemoryStore struct {
	mu         sync.RWMutex
	credits    map[id.UserID]*models.UserCredits
	properties map[id.PropertyID]*models.UserProperty
	archive    map[archiveKey]*models.ArchivedProperty
}

type archiveKey struct {
	userID      id.UserID
	propertyRef string
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{
		credits:    make(map[id.UserID]*models.UserCredits),
		properties: make(map[id.PropertyID]*models.UserProperty),
		archive:    make(map[archiveKey]*models.ArchivedProperty),
	}
}

func (s *InMemoryStore) GetCredits(_ context.Context, userID id.UserID) (*models.UserCredits, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.credits[userID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *InMemoryStore) CreateCredits(_ context.Context, credits *models.UserCredits) (*models.UserCredits, bool, error) {
	if credits == nil {
		return nil, false, fmt.Errorf("credits are required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.credits[credits.UserID]; ok {
		cp := *existing
		return &cp, false, nil
	}
	stored := *credits
	s.credits[credits.UserID] = &stored
	cp := stored
	return &cp, true, nil
}

func (s *InMemoryStore) DebitAndInsert(_ context.Context, userID id.UserID, amount int, property *models.UserProperty) (*models.UserCredits, error) {
	if property == nil {
		return nil, fmt.Errorf("property is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.credits[userID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if c.UsedCredits+amount > c.TotalCredits {
		return nil, sentinel.ErrInsufficientBalance
	}
	if _, exists := s.properties[property.ID]; exists {
		return nil, sentinel.ErrConflict
	}

	c.UsedCredits += amount
	c.UpdatedAt = property.CreatedAt
	stored := *property
	s.properties[property.ID] = &stored

	cp := *c
	return &cp, nil
}

func (s *InMemoryStore) GrantCredits(_ context.Context, userID id.UserID, amount int, now time.Time) (*models.UserCredits, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.credits[userID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	c.TotalCredits += amount
	c.UpdatedAt = now
	cp := *c
	return &cp, nil
}

func (s *InMemoryStore) GetProperty(_ context.Context, propertyID id.PropertyID) (*models.UserProperty, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.properties[propertyID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *InMemoryStore) ListProperties(_ context.Context, userID id.UserID, status *models.PropertyStatus) ([]*models.UserProperty, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.UserProperty, 0)
	for _, p := range s.properties {
		if p.UserID != userID {
			continue
		}
		if status != nil && p.Status != *status {
			continue
		}
		cp := *p
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID.String() < result[j].ID.String()
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (s *InMemoryStore) UpdatePropertyStatus(_ context.Context, propertyID id.PropertyID, from, to models.PropertyStatus, now time.Time) (*models.UserProperty, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.properties[propertyID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if p.Status != from {
		return nil, sentinel.ErrInvalidState
	}
	p.Status = to
	p.UpdatedAt = now
	cp := *p
	return &cp, nil
}

func (s *InMemoryStore) SaveArchive(_ context.Context, entry *models.ArchivedProperty) (*models.ArchivedProperty, error) {
	if entry == nil {
		return nil, fmt.Errorf("archive entry is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	key := archiveKey{userID: entry.UserID, propertyRef: entry.PropertyRef}
	stored := copyArchive(entry)
	if existing, ok := s.archive[key]; ok {
		stored.ID = existing.ID
		stored.ArchivedAt = existing.ArchivedAt
	}
	s.archive[key] = stored
	return copyArchive(stored), nil
}

func (s *InMemoryStore) ListArchive(_ context.Context, userID id.UserID) ([]*models.ArchivedProperty, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.ArchivedProperty, 0)
	for key, a := range s.archive {
		if key.userID != userID {
			continue
		}
		result = append(result, copyArchive(a))
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].UpdatedAt.Equal(result[j].UpdatedAt) {
			return result[i].PropertyRef < result[j].PropertyRef
		}
		return result[i].UpdatedAt.After(result[j].UpdatedAt)
	})
	return result, nil
}

func copyArchive(a *models.ArchivedProperty) *models.ArchivedProperty {
	cp := *a
	if a.Rating != nil {
		r := *a.Rating
		cp.Rating = &r
	}
	return &cp
}
