package handler

import (
	"strings"

	"propaudit/internal/fraud/models"
	dErrors "propaudit/pkg/domain-errors"
)

// AnalyzeRequest is the body of POST /fraud-detection/analyze.
type AnalyzeRequest struct {
	PropertyID string `json:"propertyId" validate:"required,max=64"`
	OwnerName  string `json:"ownerName" validate:"required,max=200"`
	Address    string `json:"address" validate:"required,max=500"`
	State      string `json:"state" validate:"required,max=64"`
}

// Validate rejects fields that are present but blank.
func (r *AnalyzeRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	var details []dErrors.FieldError
	for _, f := range []struct{ name, value string }{
		{"propertyId", r.PropertyID},
		{"ownerName", r.OwnerName},
		{"address", r.Address},
		{"state", r.State},
	} {
		if strings.TrimSpace(f.value) == "" {
			details = append(details, dErrors.FieldError{Field: f.name, Message: "is required"})
		}
	}
	if len(details) > 0 {
		return dErrors.WithDetails(dErrors.CodeValidation, "invalid request", details)
	}
	return nil
}

func (r *AnalyzeRequest) Subject() models.Subject {
	return models.Subject{
		PropertyID: strings.TrimSpace(r.PropertyID),
		OwnerName:  strings.TrimSpace(r.OwnerName),
		Address:    strings.TrimSpace(r.Address),
		State:      strings.TrimSpace(r.State),
	}
}
