// Package service answers developer audit lookups from the catalog.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"propaudit/internal/catalog"
	"propaudit/internal/developer/models"
	"propaudit/internal/scoring"
	id "propaudit/pkg/domain"
	dErrors "propaudit/pkg/domain-errors"
)

const (
	MinAuditYear = 1900
	MaxAuditYear = 2100
)

// Service is a read-only index over catalog developers. Records are built
// once at construction and copied out on every read.
type Service struct {
	developers map[id.DeveloperID]*models.Developer
	logger     *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func New(cat *catalog.Catalog, opts ...Option) (*Service, error) {
	if cat == nil {
		return nil, fmt.Errorf("catalog is required")
	}
	s := &Service{developers: make(map[id.DeveloperID]*models.Developer, len(cat.Developers))}
	for _, opt := range opts {
		opt(s)
	}

	for _, d := range cat.Developers {
		devID, err := id.ParseDeveloperID(d.ID)
		if err != nil {
			return nil, fmt.Errorf("catalog developer %q: %w", d.ID, err)
		}
		dev := &models.Developer{
			ID:       devID,
			Name:     strings.TrimSpace(d.Name),
			Projects: d.Projects,
			Audits:   make([]models.AuditRecord, 0, len(d.Audits)),
		}
		for _, a := range d.Audits {
			dev.Audits = append(dev.Audits, toRecord(dev, a))
		}
		sort.Slice(dev.Audits, func(i, j int) bool { return dev.Audits[i].Year > dev.Audits[j].Year })
		s.developers[devID] = dev
	}
	return s, nil
}

func toRecord(dev *models.Developer, a catalog.AuditRecord) models.AuditRecord {
	return models.AuditRecord{
		DeveloperID:   dev.ID,
		DeveloperName: dev.Name,
		Year:          a.Year,
		AuditScore:    a.AuditScore,
		ComplianceStatus: scoring.AuditComplianceStatus(scoring.AuditChecks{
			Form7Submitted:          a.Form7Submitted,
			AuditedAccounts:         a.AuditedAccounts,
			FundUtilizationCorrect:  a.FundUtilizationCorrect,
			WithdrawalProportionate: a.WithdrawalProportionate,
		}),
		Form7Submitted:          a.Form7Submitted,
		AuditedAccounts:         a.AuditedAccounts,
		FundUtilizationCorrect:  a.FundUtilizationCorrect,
		WithdrawalProportionate: a.WithdrawalProportionate,
		Remarks:                 a.Remarks,
		ScoreBand:               scoring.BandFor(a.AuditScore),
	}
}

// GetAudit returns the audit filed by developerID for year.
func (s *Service) GetAudit(ctx context.Context, developerID id.DeveloperID, year int) (*models.AuditRecord, error) {
	if year < MinAuditYear || year > MaxAuditYear {
		return nil, dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("year must be between %d and %d", MinAuditYear, MaxAuditYear))
	}
	dev, ok := s.developers[developerID]
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "developer not found")
	}
	for _, a := range dev.Audits {
		if a.Year == year {
			rec := a
			return &rec, nil
		}
	}
	if s.logger != nil {
		s.logger.DebugContext(ctx, "audit year not on file",
			"developer_id", developerID,
			"year", year,
		)
	}
	return nil, dErrors.New(dErrors.CodeNotFound, "audit record not found")
}

// GetDeveloper returns the developer and its audit history, newest first.
func (s *Service) GetDeveloper(_ context.Context, developerID id.DeveloperID) (*models.Developer, error) {
	dev, ok := s.developers[developerID]
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "developer not found")
	}
	out := *dev
	out.Audits = append([]models.AuditRecord(nil), dev.Audits...)
	return &out, nil
}
