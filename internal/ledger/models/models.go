package models

import (
	"time"

	"github.com/shopspring/decimal"

	id "propaudit/pkg/domain"
)

// PropertyStatus tracks where a purchased property audit is in its life.
type PropertyStatus string

const (
	StatusActive    PropertyStatus = "active"
	StatusArchived  PropertyStatus = "archived"
	StatusCompleted PropertyStatus = "completed"
)

func (s PropertyStatus) IsValid() bool {
	switch s {
	case StatusActive, StatusArchived, StatusCompleted:
		return true
	}
	return false
}

// CanTransitionTo reports whether a property may move from s to next.
// Only active properties move, and only to a terminal status.
func (s PropertyStatus) CanTransitionTo(next PropertyStatus) bool {
	return s == StatusActive && (next == StatusArchived || next == StatusCompleted)
}

type PropertyType string

const (
	PropertyApartment        PropertyType = "apartment"
	PropertyVilla            PropertyType = "villa"
	PropertyPlot             PropertyType = "plot"
	PropertyCommercial       PropertyType = "commercial"
	PropertyIndependentHouse PropertyType = "independent_house"
)

// PropertyDetails is the descriptive payload stored with a property.
type PropertyDetails struct {
	PropertyName  string           `json:"propertyName"`
	Address       string           `json:"address"`
	City          string           `json:"city"`
	State         string           `json:"state"`
	Pincode       string           `json:"pincode"`
	PropertyType  PropertyType     `json:"propertyType"`
	SurveyNumber  string           `json:"surveyNumber,omitempty"`
	DeclaredPrice *decimal.Decimal `json:"declaredPrice,omitempty"`
}

// UserCredits is a user's credit balance. UsedCredits never exceeds
// TotalCredits; the store enforces this on every debit.
type UserCredits struct {
	UserID             id.UserID
	TotalCredits       int
	UsedCredits        int
	CreditsPerProperty int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (c *UserCredits) Available() int {
	return c.TotalCredits - c.UsedCredits
}

// CanAfford reports whether one more property can be debited.
func (c *UserCredits) CanAfford() bool {
	return c.Available() >= c.CreditsPerProperty
}

// UserProperty is a property a user paid credits to audit. It only exists
// alongside the debit that paid for it.
type UserProperty struct {
	ID        id.PropertyID
	UserID    id.UserID
	Details   PropertyDetails
	Status    PropertyStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MaxArchiveRating bounds the optional rating a user gives an archived search.
const MaxArchiveRating = 5

// ArchivedProperty is a property the user looked up and chose to keep in
// their search history. Archiving is free; it never touches credits. A user
// holds at most one entry per PropertyRef, and re-archiving updates it.
type ArchivedProperty struct {
	ID          id.ArchiveID
	UserID      id.UserID
	PropertyRef string
	Details     PropertyDetails
	Notes       string
	Rating      *int
	ArchivedAt  time.Time
	UpdatedAt   time.Time
}

// CreditDefaults are applied when a credits row is provisioned.
type CreditDefaults struct {
	StartingCredits    int
	CreditsPerProperty int
}
