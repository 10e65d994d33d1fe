package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propaudit/internal/nri/models"
	id "propaudit/pkg/domain"
	"propaudit/pkg/platform/sentinel"
)

func newChecklist(email id.Email) *models.Checklist {
	now := time.Now()
	return &models.Checklist{
		ID:     id.ChecklistID(uuid.New()),
		UserID: id.UserID(uuid.New()),
		Email:  email,
		PreItems: []models.ChecklistItem{
			{ID: "passport", Name: "Passport", Documents: []string{"Passport copy"}},
		},
		PostItems: []models.ChecklistItem{
			{ID: "mutation", Name: "Mutation"},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestInMemoryCreateIsIdempotent(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()

	first, created, err := s.Create(ctx, newChecklist("a@example.com"))
	require.NoError(t, err)
	assert.True(t, created)

	second, created, err := s.Create(ctx, newChecklist("a@example.com"))
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
}

func TestInMemoryGetMissing(t *testing.T) {
	_, err := NewInMemory().Get(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestInMemoryUpdate(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()
	_, _, err := s.Create(ctx, newChecklist("a@example.com"))
	require.NoError(t, err)

	t.Run("applies mutation", func(t *testing.T) {
		updated, err := s.Update(ctx, "a@example.com", func(c *models.Checklist) error {
			c.Toggle("passport", time.Now())
			return nil
		})
		require.NoError(t, err)
		assert.True(t, updated.PreItems[0].Completed)

		got, err := s.Get(ctx, "a@example.com")
		require.NoError(t, err)
		assert.True(t, got.PreItems[0].Completed)
	})

	t.Run("callback error leaves state untouched", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := s.Update(ctx, "a@example.com", func(c *models.Checklist) error {
			c.PreItems[0].Completed = false
			return boom
		})
		assert.ErrorIs(t, err, boom)

		got, err := s.Get(ctx, "a@example.com")
		require.NoError(t, err)
		assert.True(t, got.PreItems[0].Completed)
	})

	t.Run("missing email", func(t *testing.T) {
		_, err := s.Update(ctx, "b@example.com", func(*models.Checklist) error { return nil })
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})
}

func TestInMemoryConcurrentTogglesAreSerialised(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()
	_, _, err := s.Create(ctx, newChecklist("a@example.com"))
	require.NoError(t, err)

	const toggles = 20
	var wg sync.WaitGroup
	for range toggles {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Update(ctx, "a@example.com", func(c *models.Checklist) error {
				c.Toggle("mutation", time.Now())
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := s.Get(ctx, "a@example.com")
	require.NoError(t, err)
	assert.False(t, got.PostItems[0].Completed, "an even number of toggles lands back on incomplete")
}
