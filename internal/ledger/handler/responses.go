package handler

import (
	"time"

	"propaudit/internal/ledger/models"
)

type PropertyResponse struct {
	ID              string                 `json:"id"`
	UserID          string                 `json:"userId"`
	PropertyDetails models.PropertyDetails `json:"propertyDetails"`
	Status          string                 `json:"status"`
	CreatedAt       time.Time              `json:"createdAt"`
	UpdatedAt       time.Time              `json:"updatedAt"`
}

type CreditsResponse struct {
	UserID             string    `json:"userId"`
	TotalCredits       int       `json:"totalCredits"`
	UsedCredits        int       `json:"usedCredits"`
	AvailableCredits   int       `json:"availableCredits"`
	CreditsPerProperty int       `json:"creditsPerProperty"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

type ArchivedPropertyResponse struct {
	ID              string                 `json:"id"`
	UserID          string                 `json:"userId"`
	PropertyID      string                 `json:"propertyId"`
	PropertyDetails models.PropertyDetails `json:"propertyDetails"`
	Notes           string                 `json:"notes"`
	Rating          *int                   `json:"rating,omitempty"`
	SearchedAt      time.Time              `json:"searchedAt"`
	UpdatedAt       time.Time              `json:"updatedAt"`
}

func FromArchived(a *models.ArchivedProperty) ArchivedPropertyResponse {
	return ArchivedPropertyResponse{
		ID:              a.ID.String(),
		UserID:          a.UserID.String(),
		PropertyID:      a.PropertyRef,
		PropertyDetails: a.Details,
		Notes:           a.Notes,
		Rating:          a.Rating,
		SearchedAt:      a.ArchivedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

func FromArchive(entries []*models.ArchivedProperty) []ArchivedPropertyResponse {
	out := make([]ArchivedPropertyResponse, 0, len(entries))
	for _, a := range entries {
		out = append(out, FromArchived(a))
	}
	return out
}

func FromProperty(p *models.UserProperty) PropertyResponse {
	return PropertyResponse{
		ID:              p.ID.String(),
		UserID:          p.UserID.String(),
		PropertyDetails: p.Details,
		Status:          string(p.Status),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func FromProperties(props []*models.UserProperty) []PropertyResponse {
	out := make([]PropertyResponse, 0, len(props))
	for _, p := range props {
		out = append(out, FromProperty(p))
	}
	return out
}

func FromCredits(c *models.UserCredits) CreditsResponse {
	return CreditsResponse{
		UserID:             c.UserID.String(),
		TotalCredits:       c.TotalCredits,
		UsedCredits:        c.UsedCredits,
		AvailableCredits:   c.Available(),
		CreditsPerProperty: c.CreditsPerProperty,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
}
