// Package ports defines the interfaces the ledger service depends on.
package ports

import (
	"context"
	"time"

	"propaudit/internal/ledger/models"
	id "propaudit/pkg/domain"
	"propaudit/pkg/platform/audit"
)

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks Store,Locker,AuditPublisher

// AuditPublisher emits audit events for credit movements.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Store persists credit balances and the properties they paid for.
// Implementations return pkg/platform/sentinel errors for missing rows,
// failed conditional debits and lost races.
type Store interface {
	// GetCredits returns sentinel.ErrNotFound when the user has no row.
	GetCredits(ctx context.Context, userID id.UserID) (*models.UserCredits, error)

	// CreateCredits inserts the row if absent and returns whichever row is
	// stored afterwards, so concurrent first requests converge on one row.
	// created is true only for the caller whose insert won.
	CreateCredits(ctx context.Context, credits *models.UserCredits) (stored *models.UserCredits, created bool, err error)

	// DebitAndInsert increments used credits by amount and inserts the
	// property as one atomic unit. Returns sentinel.ErrInsufficientBalance
	// when used+amount would exceed total, leaving both untouched.
	DebitAndInsert(ctx context.Context, userID id.UserID, amount int, property *models.UserProperty) (*models.UserCredits, error)

	// GrantCredits adds amount to the user's total.
	GrantCredits(ctx context.Context, userID id.UserID, amount int, now time.Time) (*models.UserCredits, error)

	GetProperty(ctx context.Context, propertyID id.PropertyID) (*models.UserProperty, error)

	// ListProperties returns a user's properties oldest first. A nil status
	// returns every status.
	ListProperties(ctx context.Context, userID id.UserID, status *models.PropertyStatus) ([]*models.UserProperty, error)

	// UpdatePropertyStatus moves a property from one status to another.
	// Returns sentinel.ErrInvalidState when the stored status is not from.
	UpdatePropertyStatus(ctx context.Context, propertyID id.PropertyID, from, to models.PropertyStatus, now time.Time) (*models.UserProperty, error)

	// SaveArchive upserts the user's entry for entry.PropertyRef and returns
	// the stored row. An existing entry keeps its ID and ArchivedAt.
	SaveArchive(ctx context.Context, entry *models.ArchivedProperty) (*models.ArchivedProperty, error)

	// ListArchive returns a user's archive, most recently updated first.
	ListArchive(ctx context.Context, userID id.UserID) ([]*models.ArchivedProperty, error)
}

// Locker serialises ledger mutations per key. Acquire returns
// sentinel.ErrConflict when the lock could not be obtained in time.
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(context.Context) error, err error)
}
