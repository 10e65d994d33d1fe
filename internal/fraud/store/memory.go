// Package store holds fraud score persistence backends.
package store

import (
	"context"
	"sync"

	"propaudit/internal/fraud/models"
	id "propaudit/pkg/domain"
	"propaudit/pkg/platform/sentinel"
)

// scoreKey scopes a property id to the user who analysed it.
type scoreKey struct {
	userID     id.UserID
	propertyID string
}

// InMemory keeps each user's latest score per property.
type InMemory struct {
	mu     sync.RWMutex
	scores map[scoreKey]*models.FraudScore
}

func NewInMemory() *InMemory {
	return &InMemory{scores: make(map[scoreKey]*models.FraudScore)}
}

func (s *InMemory) Save(ctx context.Context, score *models.FraudScore) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scores[scoreKey{score.UserID, score.PropertyID}] = score.Clone()
	return nil
}

func (s *InMemory) Get(_ context.Context, userID id.UserID, propertyID string) (*models.FraudScore, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	score, ok := s.scores[scoreKey{userID, propertyID}]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return score.Clone(), nil
}
