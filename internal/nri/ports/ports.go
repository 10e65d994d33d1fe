// Package ports defines the interfaces the NRI checklist service depends on.
package ports

import (
	"context"

	"propaudit/internal/nri/models"
	id "propaudit/pkg/domain"
	"propaudit/pkg/platform/audit"
)

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks Store,AuditPublisher

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Store persists one checklist per email.
type Store interface {
	Get(ctx context.Context, email id.Email) (*models.Checklist, error)
	// Create stores checklist unless one exists for the email, in which case
	// the existing checklist is returned with created=false.
	Create(ctx context.Context, checklist *models.Checklist) (stored *models.Checklist, created bool, err error)
	// Update applies fn to the stored checklist under a row lock and persists
	// the result. fn errors abort without writing.
	Update(ctx context.Context, email id.Email, fn func(*models.Checklist) error) (*models.Checklist, error)
}
