// Package domain holds typed identifiers and small value objects that are
// parsed once at trust boundaries and then passed around without revalidation.
package domain

import (
	"net/mail"
	"regexp"
	"strings"

	"github.com/google/uuid"

	dErrors "propaudit/pkg/domain-errors"
)

// UserID identifies the tenant that owns credits, properties and checklists.
type UserID uuid.UUID

// PropertyID identifies a property added through the credit ledger.
type PropertyID uuid.UUID

// ChecklistID identifies an NRI compliance checklist.
type ChecklistID uuid.UUID

// ArchiveID identifies an entry in a user's property search archive.
type ArchiveID uuid.UUID

// DeveloperID is a registry identifier such as "DEV-001".
type DeveloperID string

// Email is a normalised (trimmed, lower-cased) email address.
type Email string

const (
	maxDeveloperIDLength = 32
	maxEmailLength       = 254
)

var developerIDPattern = regexp.MustCompile(`^[A-Z0-9][A-Z0-9_-]*$`)

func parseUUID(s, field string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, field+" is required")
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+field)
	}
	if parsed == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, field+" must not be nil")
	}
	return parsed, nil
}

func ParseUserID(s string) (UserID, error) {
	u, err := parseUUID(s, "user_id")
	return UserID(u), err
}

func ParsePropertyID(s string) (PropertyID, error) {
	u, err := parseUUID(s, "property_id")
	return PropertyID(u), err
}

func ParseChecklistID(s string) (ChecklistID, error) {
	u, err := parseUUID(s, "checklist_id")
	return ChecklistID(u), err
}

// ParseDeveloperID upper-cases and validates a developer registry identifier.
func ParseDeveloperID(s string) (DeveloperID, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "developer_id is required")
	}
	if len(s) > maxDeveloperIDLength || !developerIDPattern.MatchString(s) {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid developer_id")
	}
	return DeveloperID(s), nil
}

// ParseEmail normalises and validates a bare address (no display name).
func ParseEmail(s string) (Email, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "email is required")
	}
	if len(s) > maxEmailLength {
		return "", dErrors.New(dErrors.CodeInvalidInput, "email is too long")
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid email")
	}
	return Email(s), nil
}

func (id UserID) String() string      { return uuid.UUID(id).String() }
func (id PropertyID) String() string  { return uuid.UUID(id).String() }
func (id ChecklistID) String() string { return uuid.UUID(id).String() }
func (id ArchiveID) String() string   { return uuid.UUID(id).String() }
func (id DeveloperID) String() string { return string(id) }
func (e Email) String() string        { return string(e) }

func (id UserID) IsNil() bool      { return uuid.UUID(id) == uuid.Nil }
func (id PropertyID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id ChecklistID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id ArchiveID) IsNil() bool   { return uuid.UUID(id) == uuid.Nil }

// MarshalText lets typed IDs serialise as plain UUID strings in JSON.
func (id UserID) MarshalText() ([]byte, error)      { return []byte(id.String()), nil }
func (id PropertyID) MarshalText() ([]byte, error)  { return []byte(id.String()), nil }
func (id ChecklistID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }
func (id ArchiveID) MarshalText() ([]byte, error)   { return []byte(id.String()), nil }

func (id *UserID) UnmarshalText(b []byte) error {
	parsed, err := ParseUserID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id *PropertyID) UnmarshalText(b []byte) error {
	parsed, err := ParsePropertyID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
