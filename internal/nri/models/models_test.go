package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propaudit/internal/scoring"
)

func sample() *Checklist {
	return &Checklist{
		Email: "buyer@example.com",
		PreItems: []ChecklistItem{
			{ID: "passport", Name: "Passport", Required: true, Documents: []string{"Passport copy"}},
			{ID: "pan", Name: "PAN card", Required: true, Completed: true},
		},
		PostItems: []ChecklistItem{
			{ID: "mutation", Name: "Mutation"},
		},
	}
}

func TestToggleTwiceRestoresState(t *testing.T) {
	c := sample()
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	item, phase, ok := c.Toggle("passport", now)
	require.True(t, ok)
	assert.True(t, item.Completed)
	assert.Equal(t, PhasePrePurchase, phase)
	assert.Equal(t, now, c.UpdatedAt)

	item, _, ok = c.Toggle("passport", now)
	require.True(t, ok)
	assert.False(t, item.Completed)
	assert.Equal(t, []string{"Passport copy"}, c.PreItems[0].Documents)
}

func TestToggleFindsPostPurchaseItems(t *testing.T) {
	c := sample()
	_, phase, ok := c.Toggle("mutation", time.Now())
	require.True(t, ok)
	assert.Equal(t, PhasePostPurchase, phase)
	assert.True(t, c.PostItems[0].Completed)
}

func TestToggleUnknownItem(t *testing.T) {
	c := sample()
	_, _, ok := c.Toggle("visa", time.Now())
	assert.False(t, ok)
}

func TestProgress(t *testing.T) {
	p := sample().Progress()
	assert.Equal(t, 50, p.Pre)
	assert.Equal(t, 0, p.Post)
	assert.Equal(t, 25, p.Overall)
	assert.Equal(t, scoring.BandCritical, p.Band)

	empty := (&Checklist{}).Progress()
	assert.Equal(t, 0, empty.Overall)
}

func TestCloneIsDeep(t *testing.T) {
	c := sample()
	cp := c.Clone()
	cp.PreItems[0].Completed = true
	cp.PreItems[0].Documents[0] = "changed"

	assert.False(t, c.PreItems[0].Completed)
	assert.Equal(t, "Passport copy", c.PreItems[0].Documents[0])
}
