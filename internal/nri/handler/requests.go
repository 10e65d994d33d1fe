package handler

import (
	id "propaudit/pkg/domain"
	dErrors "propaudit/pkg/domain-errors"
)

// CreateChecklistRequest is the body of POST /nri/checklist. Email defaults
// to the caller's token email.
type CreateChecklistRequest struct {
	Email string `json:"email" validate:"omitempty,max=254,email"`

	parsedEmail id.Email
}

func (r *CreateChecklistRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if r.Email == "" {
		return nil
	}
	email, err := id.ParseEmail(r.Email)
	if err != nil {
		return err
	}
	r.parsedEmail = email
	return nil
}

func (r *CreateChecklistRequest) ParsedEmail() id.Email {
	return r.parsedEmail
}
