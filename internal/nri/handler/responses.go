package handler

import (
	"time"

	"propaudit/internal/nri/models"
)

type ProgressResponse struct {
	Pre     int    `json:"pre"`
	Post    int    `json:"post"`
	Overall int    `json:"overall"`
	Band    string `json:"band"`
}

type ChecklistResponse struct {
	ID        string                 `json:"id"`
	Email     string                 `json:"email"`
	PreItems  []models.ChecklistItem `json:"preItems"`
	PostItems []models.ChecklistItem `json:"postItems"`
	Progress  ProgressResponse       `json:"progress"`
	CreatedAt time.Time              `json:"createdAt"`
	UpdatedAt time.Time              `json:"updatedAt"`
}

func toResponse(c *models.Checklist) ChecklistResponse {
	p := c.Progress()
	return ChecklistResponse{
		ID:        c.ID.String(),
		Email:     c.Email.String(),
		PreItems:  nonNil(c.PreItems),
		PostItems: nonNil(c.PostItems),
		Progress: ProgressResponse{
			Pre:     p.Pre,
			Post:    p.Post,
			Overall: p.Overall,
			Band:    string(p.Band),
		},
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func nonNil(items []models.ChecklistItem) []models.ChecklistItem {
	if items == nil {
		return []models.ChecklistItem{}
	}
	return items
}
