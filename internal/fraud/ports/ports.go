// Package ports defines the collaborators the fraud service gathers evidence
// from and the store it persists results to.
package ports

import (
	"context"

	"propaudit/internal/fraud/models"
	id "propaudit/pkg/domain"
	"propaudit/pkg/platform/audit"
)

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks PriceSource,TitleRegistry,DocumentForensics,SellerHistory,Store,AuditPublisher

// PriceSource reports the registered price and a reference market rate.
type PriceSource interface {
	PriceEvidence(ctx context.Context, subject models.Subject) (models.PriceEvidence, error)
}

// TitleRegistry answers ownership chain questions from land records.
type TitleRegistry interface {
	TitleEvidence(ctx context.Context, subject models.Subject) (models.TitleEvidence, error)
}

// DocumentForensics inspects title documents for tampering.
type DocumentForensics interface {
	DocumentEvidence(ctx context.Context, subject models.Subject) (models.DocumentEvidence, error)
}

// SellerHistory reports a seller's recent transactions.
type SellerHistory interface {
	SellerEvidence(ctx context.Context, subject models.Subject) (models.SellerEvidence, error)
}

// Store keeps each user's latest score per property. Two users analysing the
// same property id hold independent rows.
type Store interface {
	Save(ctx context.Context, score *models.FraudScore) error
	Get(ctx context.Context, userID id.UserID, propertyID string) (*models.FraudScore, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}
