// Package service runs fraud analysis: it gathers evidence from the
// registries concurrently, scores it and keeps each user's latest result
// per property.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"propaudit/internal/fraud/metrics"
	"propaudit/internal/fraud/models"
	"propaudit/internal/fraud/ports"
	"propaudit/internal/fraud/signals"
	"propaudit/internal/scoring"
	id "propaudit/pkg/domain"
	dErrors "propaudit/pkg/domain-errors"
	"propaudit/pkg/platform/audit"
	"propaudit/pkg/platform/sentinel"
	"propaudit/pkg/requestcontext"
)

const DefaultAnalysisTimeout = 5 * time.Second

type (
	Store          = ports.Store
	AuditPublisher = ports.AuditPublisher
)

// Sources are the registries evidence is gathered from.
type Sources struct {
	Price     ports.PriceSource
	Title     ports.TitleRegistry
	Documents ports.DocumentForensics
	Seller    ports.SellerHistory
}

func (s Sources) validate() error {
	if s.Price == nil || s.Title == nil || s.Documents == nil || s.Seller == nil {
		return fmt.Errorf("all evidence sources are required")
	}
	return nil
}

type Service struct {
	store          Store
	sources        Sources
	auditPublisher AuditPublisher
	logger         *slog.Logger
	metrics        *metrics.Metrics
	tracer         trace.Tracer

	weights scoring.FraudWeights
	bands   scoring.RiskBands
	window  signals.PriceWindow
	timeout time.Duration
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithScoring overrides the default factor weights, risk bands and price
// window. Zero values keep the defaults.
func WithScoring(weights scoring.FraudWeights, bands scoring.RiskBands, window signals.PriceWindow) Option {
	return func(s *Service) {
		if len(weights) > 0 {
			s.weights = weights
		}
		if bands != (scoring.RiskBands{}) {
			s.bands = bands
		}
		if !window.Ceiling.IsZero() {
			s.window = window
		}
	}
}

// WithTimeout bounds evidence gathering.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

func New(store Store, sources Sources, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("fraud score store is required")
	}
	if err := sources.validate(); err != nil {
		return nil, err
	}

	svc := &Service{
		store:   store,
		sources: sources,
		tracer:  otel.Tracer("propaudit/internal/fraud"),
		weights: scoring.DefaultFraudWeights(),
		bands:   scoring.DefaultRiskBands(),
		window:  signals.DefaultPriceWindow(),
		timeout: DefaultAnalysisTimeout,
	}
	for _, opt := range opts {
		opt(svc)
	}

	if err := svc.weights.Validate(); err != nil {
		return nil, err
	}
	if err := svc.bands.Validate(); err != nil {
		return nil, err
	}
	if err := svc.window.Validate(); err != nil {
		return nil, err
	}
	return svc, nil
}

// Analyze scores subject and stores it as the caller's latest for the property.
func (s *Service) Analyze(ctx context.Context, caller requestcontext.Principal, subject models.Subject) (*models.FraudScore, error) {
	start := time.Now()
	defer s.metrics.ObserveAnalysis(start)

	subject = normalize(subject)
	ctx, span := s.tracer.Start(ctx, "fraud.Analyze", trace.WithAttributes(
		attribute.String("property_id", subject.PropertyID),
		attribute.String("state", subject.State),
	))
	defer span.End()

	if err := validateSubject(subject); err != nil {
		return nil, err
	}

	evidence, err := s.gather(ctx, subject)
	if err != nil {
		s.metrics.IncFailure()
		span.RecordError(err)
		span.SetStatus(codes.Error, "evidence gathering failed")
		if s.logger != nil {
			s.logger.ErrorContext(ctx, "fraud evidence gathering failed",
				"property_id", subject.PropertyID,
				"error", err,
			)
		}
		return nil, translate(err, "failed to gather fraud evidence")
	}

	sigs := signals.Evaluate(evidence, s.window)
	aggregate, contributions := scoring.ComputeFraudScore(signals.Severities(sigs), s.weights)
	level := scoring.RiskLevelFor(aggregate, s.bands)

	factors := make([]models.FactorResult, 0, len(contributions))
	triggered := make([]string, 0, len(contributions))
	for _, c := range contributions {
		sig := sigs[c.Factor]
		factors = append(factors, models.FactorResult{
			Name:         c.Factor,
			Weight:       c.Weight,
			Severity:     c.Severity,
			Contribution: c.Points,
			Triggered:    sig.Triggered,
			Detail:       sig.Detail,
		})
		if sig.Triggered {
			triggered = append(triggered, string(c.Factor))
		}
	}

	score := &models.FraudScore{
		PropertyID:     subject.PropertyID,
		UserID:         caller.UserID,
		OwnerName:      subject.OwnerName,
		Address:        subject.Address,
		State:          subject.State,
		Factors:        factors,
		AggregateScore: aggregate,
		RiskLevel:      level,
		AnalyzedAt:     requestcontext.Now(ctx),
	}
	if err := s.store.Save(ctx, score); err != nil {
		span.RecordError(err)
		return nil, translate(err, "failed to save fraud score")
	}

	span.SetAttributes(
		attribute.Int("aggregate_score", aggregate),
		attribute.String("risk_level", string(level)),
	)
	s.metrics.IncAnalysis(level)
	s.record(ctx, audit.Event{
		UserID:  caller.UserID,
		Subject: subject.PropertyID,
		Action:  string(audit.EventFraudAnalyzed),
		Attributes: map[string]string{
			"aggregate_score": strconv.Itoa(aggregate),
			"risk_level":      string(level),
			"triggered":       strings.Join(triggered, ","),
		},
	})
	return score, nil
}

// gather queries all sources in parallel. The first failure cancels the rest.
func (s *Service) gather(ctx context.Context, subject models.Subject) (models.Evidence, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var ev models.Evidence
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ev.Price, err = s.sources.Price.PriceEvidence(gctx, subject)
		return wrapSource("price source", err)
	})
	g.Go(func() error {
		var err error
		ev.Title, err = s.sources.Title.TitleEvidence(gctx, subject)
		return wrapSource("title registry", err)
	})
	g.Go(func() error {
		var err error
		ev.Document, err = s.sources.Documents.DocumentEvidence(gctx, subject)
		return wrapSource("document forensics", err)
	})
	g.Go(func() error {
		var err error
		ev.Seller, err = s.sources.Seller.SellerEvidence(gctx, subject)
		return wrapSource("seller history", err)
	})
	if err := g.Wait(); err != nil {
		return models.Evidence{}, err
	}
	return ev, nil
}

// Get returns owner's latest score for propertyID. A nil owner means the
// caller's own analysis; reading another user's score requires admin.
func (s *Service) Get(ctx context.Context, caller requestcontext.Principal, owner id.UserID, propertyID string) (*models.FraudScore, error) {
	propertyID = strings.TrimSpace(propertyID)
	if propertyID == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "property id is required")
	}
	if owner.IsNil() {
		owner = caller.UserID
	}
	if !caller.CanAccessUser(owner) {
		s.record(ctx, audit.Event{
			UserID:  caller.UserID,
			Subject: propertyID,
			Action:  string(audit.EventAccessDenied),
			Reason:  "fraud score requested for another user",
			Attributes: map[string]string{
				"owner_id": owner.String(),
			},
		})
		return nil, dErrors.New(dErrors.CodeForbidden, "access to this fraud score is not allowed")
	}
	score, err := s.store.Get(ctx, owner, propertyID)
	if err != nil {
		return nil, translate(err, "failed to load fraud score")
	}
	return score, nil
}

// VerifyTitle looks the property up in the land records without running a
// full analysis or storing anything.
func (s *Service) VerifyTitle(ctx context.Context, propertyID, state string) (*models.TitleVerification, error) {
	subject := normalize(models.Subject{PropertyID: propertyID, State: state})
	var details []dErrors.FieldError
	if subject.PropertyID == "" {
		details = append(details, dErrors.FieldError{Field: "propertyId", Message: "is required"})
	}
	if subject.State == "" {
		details = append(details, dErrors.FieldError{Field: "state", Message: "is required"})
	}
	if len(details) > 0 {
		return nil, dErrors.WithDetails(dErrors.CodeValidation, "invalid request", details)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	evidence, err := s.sources.Title.TitleEvidence(ctx, subject)
	if err != nil {
		return nil, translate(wrapSource("title registry", err), "failed to query title registry")
	}
	if !evidence.Known {
		return nil, dErrors.New(dErrors.CodeNotFound, "Title verification not found")
	}

	issues := signals.TitleIssues(evidence)
	return &models.TitleVerification{
		PropertyID: subject.PropertyID,
		State:      subject.State,
		Evidence:   evidence,
		Issues:     issues,
		Clear:      len(issues) == 0,
		CheckedAt:  requestcontext.Now(ctx),
	}, nil
}

func (s *Service) record(ctx context.Context, event audit.Event) {
	audit.Record(ctx, s.logger, s.auditPublisher, event)
}

func normalize(subject models.Subject) models.Subject {
	return models.Subject{
		PropertyID: strings.TrimSpace(subject.PropertyID),
		OwnerName:  strings.Join(strings.Fields(subject.OwnerName), " "),
		Address:    strings.TrimSpace(subject.Address),
		State:      strings.TrimSpace(subject.State),
	}
}

func validateSubject(subject models.Subject) error {
	var details []dErrors.FieldError
	for _, f := range []struct{ name, value string }{
		{"propertyId", subject.PropertyID},
		{"ownerName", subject.OwnerName},
		{"address", subject.Address},
		{"state", subject.State},
	} {
		if f.value == "" {
			details = append(details, dErrors.FieldError{Field: f.name, Message: "is required"})
		}
	}
	if len(details) > 0 {
		return dErrors.WithDetails(dErrors.CodeValidation, "invalid request", details)
	}
	return nil
}

func wrapSource(name string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", name, err)
}

func translate(err error, msg string) error {
	if _, ok := dErrors.From(err); ok {
		return err
	}
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.Wrap(err, dErrors.CodeNotFound, "fraud score not found")
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return dErrors.Wrap(err, dErrors.CodeTimeout, "fraud analysis timed out")
	case errors.Is(err, sentinel.ErrUnavailable):
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "registry unavailable, retry later")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, msg)
	}
}
