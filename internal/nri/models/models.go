package models

import (
	"time"

	"propaudit/internal/scoring"
	id "propaudit/pkg/domain"
)

// Phase groups checklist items by when they apply in the purchase.
type Phase string

const (
	PhasePrePurchase  Phase = "pre_purchase"
	PhasePostPurchase Phase = "post_purchase"
)

// ChecklistItem is one compliance step. Only Completed changes after the
// checklist is seeded.
type ChecklistItem struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Required    bool     `json:"required"`
	Completed   bool     `json:"completed"`
	Documents   []string `json:"documents"`
}

func (i ChecklistItem) IsCompleted() bool {
	return i.Completed
}

// Checklist is an NRI buyer's pre and post purchase checklist, keyed by the
// buyer's email.
type Checklist struct {
	ID        id.ChecklistID
	UserID    id.UserID
	Email     id.Email
	PreItems  []ChecklistItem
	PostItems []ChecklistItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Progress summarises completion per phase.
type Progress struct {
	Pre     int
	Post    int
	Overall int
	Band    scoring.Band
}

func (c *Checklist) Progress() Progress {
	pre := scoring.CompletionPercentage(c.PreItems)
	post := scoring.CompletionPercentage(c.PostItems)
	overall := scoring.OverallCompletion(pre, post)
	return Progress{
		Pre:     pre,
		Post:    post,
		Overall: overall,
		Band:    scoring.BandFor(overall),
	}
}

// Toggle flips the completed flag of itemID. Documents are left as seeded.
func (c *Checklist) Toggle(itemID string, now time.Time) (ChecklistItem, Phase, bool) {
	for _, phase := range []struct {
		items []ChecklistItem
		name  Phase
	}{{c.PreItems, PhasePrePurchase}, {c.PostItems, PhasePostPurchase}} {
		for i := range phase.items {
			if phase.items[i].ID == itemID {
				phase.items[i].Completed = !phase.items[i].Completed
				c.UpdatedAt = now
				return phase.items[i], phase.name, true
			}
		}
	}
	return ChecklistItem{}, "", false
}

// Clone returns a deep copy so stores never share item slices with callers.
func (c *Checklist) Clone() *Checklist {
	out := *c
	out.PreItems = cloneItems(c.PreItems)
	out.PostItems = cloneItems(c.PostItems)
	return &out
}

func cloneItems(items []ChecklistItem) []ChecklistItem {
	if items == nil {
		return nil
	}
	out := make([]ChecklistItem, len(items))
	for i, it := range items {
		it.Documents = append([]string(nil), it.Documents...)
		out[i] = it
	}
	return out
}
