package audit

import (
	"context"
	"time"

	id "propaudit/pkg/domain"
)

// EventCategory classifies audit events by their primary purpose so sinks can
// route or retain them differently.
type EventCategory string

const (
	// CategoryBilling covers credit movements. These are the ledger's paper
	// trail and must be retained.
	CategoryBilling EventCategory = "billing"

	// CategorySecurity covers access decisions worth alerting on.
	CategorySecurity EventCategory = "security"

	// CategoryOperations covers routine activity useful for debugging.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Category  EventCategory
	Timestamp time.Time
	UserID    id.UserID
	Subject   string
	Action    string
	Reason    string
	RequestID string
	// ActorID is set when an admin acts on another user's behalf.
	ActorID string
	// Attributes carries event specific key/value pairs (amounts, statuses).
	Attributes map[string]string
}

type AuditEvent string

const (
	// Ledger events
	EventCreditsProvisioned    AuditEvent = "credits_provisioned"
	EventCreditsDebited        AuditEvent = "credits_debited"
	EventCreditsGranted        AuditEvent = "credits_granted"
	EventPropertyAdded         AuditEvent = "property_added"
	EventPropertyStatusChanged AuditEvent = "property_status_changed"
	EventInsufficientCredits   AuditEvent = "insufficient_credits"
	EventSearchArchived        AuditEvent = "search_archived"

	// Due diligence events
	EventFraudAnalyzed        AuditEvent = "fraud_analyzed"
	EventChecklistCreated     AuditEvent = "nri_checklist_created"
	EventChecklistItemToggled AuditEvent = "nri_checklist_item_toggled"

	// Access events
	EventAccessDenied AuditEvent = "access_denied"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventCreditsProvisioned: CategoryBilling,
	EventCreditsDebited:     CategoryBilling,
	EventCreditsGranted:     CategoryBilling,
	EventPropertyAdded:      CategoryBilling,

	EventAccessDenied:        CategorySecurity,
	EventInsufficientCredits: CategorySecurity,

	EventPropertyStatusChanged: CategoryOperations,
	EventFraudAnalyzed:         CategoryOperations,
	EventChecklistCreated:      CategoryOperations,
	EventChecklistItemToggled:  CategoryOperations,
	EventSearchArchived:        CategoryOperations,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
}

// Lister is implemented by stores that can read events back.
type Lister interface {
	ListByUser(ctx context.Context, userID id.UserID) ([]Event, error)
}
