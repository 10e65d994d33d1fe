package handler

import (
	"strings"

	"github.com/shopspring/decimal"

	"propaudit/internal/ledger/models"
	id "propaudit/pkg/domain"
	dErrors "propaudit/pkg/domain-errors"
)

// AddPropertyRequest is the body of POST /user-properties. UserID defaults
// to the caller when omitted.
type AddPropertyRequest struct {
	UserID          string                 `json:"userId" validate:"omitempty,uuid"`
	PropertyDetails PropertyDetailsRequest `json:"propertyDetails" validate:"required"`

	parsedUserID  id.UserID
	parsedDetails models.PropertyDetails
}

type PropertyDetailsRequest struct {
	PropertyName  string `json:"propertyName" validate:"required,max=200"`
	Address       string `json:"address" validate:"required,max=500"`
	City          string `json:"city" validate:"required,max=100"`
	State         string `json:"state" validate:"required,max=100"`
	Pincode       string `json:"pincode" validate:"required,len=6,numeric"`
	PropertyType  string `json:"propertyType" validate:"required,oneof=apartment villa plot commercial independent_house"`
	SurveyNumber  string `json:"surveyNumber,omitempty" validate:"omitempty,max=64"`
	DeclaredPrice string `json:"declaredPrice,omitempty" validate:"omitempty,max=32"`
}

// Validate trims and parses the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *AddPropertyRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	if r.UserID != "" {
		userID, err := id.ParseUserID(r.UserID)
		if err != nil {
			return err
		}
		r.parsedUserID = userID
	}

	parsed, details := r.PropertyDetails.parse()
	if len(details) > 0 {
		return dErrors.WithDetails(dErrors.CodeValidation, "invalid request", details)
	}
	r.parsedDetails = parsed
	return nil
}

// ParsedUserID returns the explicit owner, or the zero ID when omitted.
func (r *AddPropertyRequest) ParsedUserID() id.UserID {
	return r.parsedUserID
}

func (r *AddPropertyRequest) ParsedDetails() models.PropertyDetails {
	return r.parsedDetails
}

// parse trims the free-text fields and converts the declared price.
func (d *PropertyDetailsRequest) parse() (models.PropertyDetails, []dErrors.FieldError) {
	var details []dErrors.FieldError
	trimRequired := func(field string, v *string) {
		*v = strings.TrimSpace(*v)
		if *v == "" {
			details = append(details, dErrors.FieldError{Field: "propertyDetails." + field, Message: "is required"})
		}
	}
	trimRequired("propertyName", &d.PropertyName)
	trimRequired("address", &d.Address)
	trimRequired("city", &d.City)
	trimRequired("state", &d.State)
	d.SurveyNumber = strings.TrimSpace(d.SurveyNumber)

	var price *decimal.Decimal
	if raw := strings.TrimSpace(d.DeclaredPrice); raw != "" {
		p, err := decimal.NewFromString(raw)
		if err != nil || !p.IsPositive() {
			details = append(details, dErrors.FieldError{Field: "propertyDetails.declaredPrice", Message: "must be a positive decimal amount"})
		} else {
			price = &p
		}
	}

	return models.PropertyDetails{
		PropertyName:  d.PropertyName,
		Address:       d.Address,
		City:          d.City,
		State:         d.State,
		Pincode:       d.Pincode,
		PropertyType:  models.PropertyType(d.PropertyType),
		SurveyNumber:  d.SurveyNumber,
		DeclaredPrice: price,
	}, details
}

// ArchivePropertyRequest is the body of POST /property-archive. PropertyID
// is the identifier the user searched for, not a ledger property id.
type ArchivePropertyRequest struct {
	UserID          string                 `json:"userId" validate:"omitempty,uuid"`
	PropertyID      string                 `json:"propertyId" validate:"required,max=64"`
	PropertyDetails PropertyDetailsRequest `json:"propertyDetails" validate:"required"`
	Notes           string                 `json:"notes,omitempty" validate:"max=2000"`
	Rating          *int                   `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`

	parsed models.ArchivedProperty
}

func (r *ArchivePropertyRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	var owner id.UserID
	if r.UserID != "" {
		userID, err := id.ParseUserID(r.UserID)
		if err != nil {
			return err
		}
		owner = userID
	}

	r.PropertyID = strings.TrimSpace(r.PropertyID)
	parsed, details := r.PropertyDetails.parse()
	if r.PropertyID == "" {
		details = append(details, dErrors.FieldError{Field: "propertyId", Message: "is required"})
	}
	if len(details) > 0 {
		return dErrors.WithDetails(dErrors.CodeValidation, "Invalid archive data", details)
	}

	r.parsed = models.ArchivedProperty{
		UserID:      owner,
		PropertyRef: r.PropertyID,
		Details:     parsed,
		Notes:       strings.TrimSpace(r.Notes),
		Rating:      r.Rating,
	}
	return nil
}

// ParsedEntry returns the archive entry; its UserID is zero when omitted.
func (r *ArchivePropertyRequest) ParsedEntry() models.ArchivedProperty {
	return r.parsed
}

// UpdateStatusRequest is the body of PATCH /user-properties/{id}.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active archived completed"`
}

func (r *UpdateStatusRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	return nil
}

func (r *UpdateStatusRequest) ParsedStatus() models.PropertyStatus {
	return models.PropertyStatus(r.Status)
}

// GrantCreditsRequest is the body of POST /user-credits/{id}/grant.
type GrantCreditsRequest struct {
	Amount int `json:"amount" validate:"required,gt=0,max=10000"`
}

func (r *GrantCreditsRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	return nil
}
