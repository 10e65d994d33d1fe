// Package service implements the credit ledger: provisioning balances,
// debiting one property's worth of credits per add, and never letting used
// credits exceed the total.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"propaudit/internal/ledger/lock"
	"propaudit/internal/ledger/metrics"
	"propaudit/internal/ledger/models"
	"propaudit/internal/ledger/ports"
	id "propaudit/pkg/domain"
	dErrors "propaudit/pkg/domain-errors"
	"propaudit/pkg/platform/audit"
	"propaudit/pkg/platform/sentinel"
	"propaudit/pkg/requestcontext"
)

// Client-facing messages for rejected debits.
const (
	MsgNoCredits           = "User has no credits"
	MsgInsufficientCredits = "Insufficient credits"
)

const (
	DefaultStartingCredits    = 5
	DefaultCreditsPerProperty = 1
	DefaultMaxRetries         = 3
	DefaultRetryBackoff       = 25 * time.Millisecond
)

type (
	Store          = ports.Store
	Locker         = ports.Locker
	AuditPublisher = ports.AuditPublisher
)

type Service struct {
	store          Store
	locker         Locker
	auditPublisher AuditPublisher
	logger         *slog.Logger
	metrics        *metrics.Metrics
	tracer         trace.Tracer

	defaults      models.CreditDefaults
	autoProvision bool
	maxRetries    int
	retryBackoff  time.Duration
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

// WithLocker replaces the in-process keyed mutex, typically with a Redis lock.
func WithLocker(l Locker) Option {
	return func(s *Service) {
		if l != nil {
			s.locker = l
		}
	}
}

// WithDefaults sets the balance given to newly provisioned users.
func WithDefaults(d models.CreditDefaults) Option {
	return func(s *Service) {
		s.defaults = d
	}
}

// WithAutoProvision controls whether AddProperty creates a missing balance.
func WithAutoProvision(enabled bool) Option {
	return func(s *Service) {
		s.autoProvision = enabled
	}
}

// WithRetry bounds how often a debit that lost a race is retried.
func WithRetry(maxRetries int, backoff time.Duration) Option {
	return func(s *Service) {
		s.maxRetries = maxRetries
		s.retryBackoff = backoff
	}
}

func New(store Store, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("ledger store is required")
	}

	svc := &Service{
		store:  store,
		locker: lock.NewKeyedMutex(),
		tracer: otel.Tracer("propaudit/internal/ledger"),
		defaults: models.CreditDefaults{
			StartingCredits:    DefaultStartingCredits,
			CreditsPerProperty: DefaultCreditsPerProperty,
		},
		autoProvision: true,
		maxRetries:    DefaultMaxRetries,
		retryBackoff:  DefaultRetryBackoff,
	}

	for _, opt := range opts {
		opt(svc)
	}

	if svc.defaults.StartingCredits < 0 {
		return nil, fmt.Errorf("starting credits must be non-negative")
	}
	if svc.defaults.CreditsPerProperty <= 0 {
		return nil, fmt.Errorf("credits per property must be positive")
	}
	if svc.maxRetries < 0 {
		return nil, fmt.Errorf("max retries must be non-negative")
	}

	return svc, nil
}

// GetOrCreateCredits returns the user's balance, provisioning it with the
// configured defaults on first access.
func (s *Service) GetOrCreateCredits(ctx context.Context, userID id.UserID) (*models.UserCredits, error) {
	if userID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "user_id is required")
	}
	credits, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load credits")
	}
	return credits, nil
}

func (s *Service) getOrCreate(ctx context.Context, userID id.UserID) (*models.UserCredits, error) {
	credits, err := s.store.GetCredits(ctx, userID)
	if err == nil {
		return credits, nil
	}
	if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	credits, created, err := s.store.CreateCredits(ctx, &models.UserCredits{
		UserID:             userID,
		TotalCredits:       s.defaults.StartingCredits,
		UsedCredits:        0,
		CreditsPerProperty: s.defaults.CreditsPerProperty,
		CreatedAt:          now,
		UpdatedAt:          now,
	})
	if err != nil {
		return nil, err
	}
	if created {
		s.record(ctx, audit.Event{
			UserID: userID,
			Action: string(audit.EventCreditsProvisioned),
			Attributes: map[string]string{
				"total_credits":        strconv.Itoa(credits.TotalCredits),
				"credits_per_property": strconv.Itoa(credits.CreditsPerProperty),
			},
		})
	}
	return credits, nil
}

// AddProperty debits one property's worth of credits and records the
// property. Either both happen or neither does.
func (s *Service) AddProperty(ctx context.Context, userID id.UserID, details models.PropertyDetails) (*models.UserProperty, error) {
	start := time.Now()
	defer s.metrics.ObserveDebit(start)

	ctx, span := s.tracer.Start(ctx, "ledger.AddProperty",
		trace.WithAttributes(attribute.String("user_id", userID.String())))
	defer span.End()

	if userID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "user_id is required")
	}

	for attempt := 0; ; attempt++ {
		property, err := s.tryAddProperty(ctx, userID, details)
		if err == nil {
			span.SetAttributes(attribute.Int("retries", attempt))
			return property, nil
		}
		if !errors.Is(err, sentinel.ErrConflict) || attempt >= s.maxRetries {
			err = s.translateAddError(err)
			if de, ok := dErrors.From(err); ok && de.Code == dErrors.CodeInsufficientCredits {
				s.record(ctx, audit.Event{
					UserID: userID,
					Action: string(audit.EventInsufficientCredits),
					Reason: de.Message,
				})
			} else {
				span.RecordError(err)
				span.SetStatus(codes.Error, "add property failed")
			}
			return nil, err
		}

		s.metrics.IncDebitRetry()
		if s.logger != nil {
			s.logger.DebugContext(ctx, "retrying debit after lost race",
				"user_id", userID,
				"attempt", attempt+1,
				"error", err,
			)
		}
		if err := sleep(ctx, s.retryBackoff*time.Duration(attempt+1)); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeTimeout, "request cancelled")
		}
	}
}

func (s *Service) tryAddProperty(ctx context.Context, userID id.UserID, details models.PropertyDetails) (*models.UserProperty, error) {
	release, err := s.locker.Acquire(ctx, userID.String())
	if err != nil {
		return nil, err
	}
	defer s.releaseLock(ctx, userID, release)

	var credits *models.UserCredits
	if s.autoProvision {
		credits, err = s.getOrCreate(ctx, userID)
	} else {
		credits, err = s.store.GetCredits(ctx, userID)
	}
	if err != nil {
		return nil, err
	}

	if !credits.CanAfford() {
		return nil, sentinel.ErrInsufficientBalance
	}

	now := requestcontext.Now(ctx)
	property := &models.UserProperty{
		ID:        id.PropertyID(uuid.New()),
		UserID:    userID,
		Details:   details,
		Status:    models.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	updated, err := s.store.DebitAndInsert(ctx, userID, credits.CreditsPerProperty, property)
	if err != nil {
		return nil, err
	}

	s.metrics.IncPropertyAdded(credits.CreditsPerProperty)
	s.record(ctx, audit.Event{
		UserID: userID,
		Action: string(audit.EventCreditsDebited),
		Attributes: map[string]string{
			"amount":      strconv.Itoa(credits.CreditsPerProperty),
			"used":        strconv.Itoa(updated.UsedCredits),
			"total":       strconv.Itoa(updated.TotalCredits),
			"property_id": property.ID.String(),
		},
	})
	s.record(ctx, audit.Event{
		UserID:  userID,
		Subject: property.ID.String(),
		Action:  string(audit.EventPropertyAdded),
		Attributes: map[string]string{
			"property_type": string(details.PropertyType),
			"state":         details.State,
		},
	})

	return property, nil
}

func (s *Service) translateAddError(err error) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		s.metrics.IncInsufficientCredits()
		return dErrors.Wrap(err, dErrors.CodeInsufficientCredits, MsgNoCredits)
	case errors.Is(err, sentinel.ErrInsufficientBalance):
		s.metrics.IncInsufficientCredits()
		return dErrors.Wrap(err, dErrors.CodeInsufficientCredits, MsgInsufficientCredits)
	case errors.Is(err, sentinel.ErrConflict), errors.Is(err, sentinel.ErrUnavailable):
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "ledger is busy, please retry")
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return dErrors.Wrap(err, dErrors.CodeTimeout, "request cancelled")
	}
	if _, ok := dErrors.From(err); ok {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to add property")
}

// ListProperties returns the user's properties, optionally filtered by status.
func (s *Service) ListProperties(ctx context.Context, userID id.UserID, status *models.PropertyStatus) ([]*models.UserProperty, error) {
	if userID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "user_id is required")
	}
	if status != nil && !status.IsValid() {
		return nil, dErrors.New(dErrors.CodeValidation, "invalid status filter")
	}
	props, err := s.store.ListProperties(ctx, userID, status)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list properties")
	}
	return props, nil
}

// UpdateStatus moves an active property to archived or completed. Callers
// may only touch their own properties unless they are admins.
func (s *Service) UpdateStatus(ctx context.Context, caller requestcontext.Principal, propertyID id.PropertyID, next models.PropertyStatus) (*models.UserProperty, error) {
	if propertyID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "property_id is required")
	}
	if !next.IsValid() {
		return nil, dErrors.New(dErrors.CodeValidation, "invalid status")
	}

	property, err := s.authorizedProperty(ctx, caller, propertyID)
	if err != nil {
		return nil, err
	}
	if !property.Status.CanTransitionTo(next) {
		return nil, dErrors.New(dErrors.CodeValidation,
			fmt.Sprintf("cannot move property from %s to %s", property.Status, next))
	}

	updated, err := s.store.UpdatePropertyStatus(ctx, propertyID, property.Status, next, requestcontext.Now(ctx))
	if err != nil {
		if errors.Is(err, sentinel.ErrInvalidState) {
			return nil, dErrors.Wrap(err, dErrors.CodeConflict, "property status changed concurrently")
		}
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Wrap(err, dErrors.CodeNotFound, "property not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update property")
	}

	s.record(ctx, audit.Event{
		UserID:  updated.UserID,
		Subject: propertyID.String(),
		Action:  string(audit.EventPropertyStatusChanged),
		ActorID: actorID(caller, updated.UserID),
		Attributes: map[string]string{
			"from": string(property.Status),
			"to":   string(next),
		},
	})
	return updated, nil
}

// DeleteProperty is not offered: deleting would orphan the debit that paid
// for the property.
func (s *Service) DeleteProperty(ctx context.Context, caller requestcontext.Principal, propertyID id.PropertyID) error {
	if propertyID.IsNil() {
		return dErrors.New(dErrors.CodeBadRequest, "property_id is required")
	}
	return dErrors.New(dErrors.CodeNotImplemented, "property deletion is not supported")
}

// GrantCredits tops up a user's total. Admin only.
func (s *Service) GrantCredits(ctx context.Context, caller requestcontext.Principal, userID id.UserID, amount int) (*models.UserCredits, error) {
	if !caller.IsAdmin() {
		return nil, dErrors.New(dErrors.CodeForbidden, "admin role required")
	}
	if userID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "user_id is required")
	}
	if amount <= 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "amount must be positive")
	}

	release, err := s.locker.Acquire(ctx, userID.String())
	if err != nil {
		return nil, s.translateAddError(err)
	}
	defer s.releaseLock(ctx, userID, release)

	if _, err := s.getOrCreate(ctx, userID); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load credits")
	}
	credits, err := s.store.GrantCredits(ctx, userID, amount, requestcontext.Now(ctx))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to grant credits")
	}

	s.metrics.AddCreditsGranted(amount)
	s.record(ctx, audit.Event{
		UserID:  userID,
		Action:  string(audit.EventCreditsGranted),
		ActorID: caller.UserID.String(),
		Attributes: map[string]string{
			"amount": strconv.Itoa(amount),
			"total":  strconv.Itoa(credits.TotalCredits),
		},
	})
	return credits, nil
}

// ArchiveProperty saves a searched property to the owner's archive, updating
// the details, notes and rating when the same PropertyRef was archived before.
// A nil entry.UserID archives for the caller. No credits are debited.
func (s *Service) ArchiveProperty(ctx context.Context, caller requestcontext.Principal, entry models.ArchivedProperty) (*models.ArchivedProperty, error) {
	entry.PropertyRef = strings.TrimSpace(entry.PropertyRef)
	if entry.PropertyRef == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "property_id is required")
	}
	if entry.Rating != nil && (*entry.Rating < 1 || *entry.Rating > models.MaxArchiveRating) {
		return nil, dErrors.New(dErrors.CodeValidation,
			fmt.Sprintf("rating must be between 1 and %d", models.MaxArchiveRating))
	}
	owner, err := s.archiveOwner(ctx, caller, entry.UserID)
	if err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	entry.ID = id.ArchiveID(uuid.New())
	entry.UserID = owner
	entry.ArchivedAt = now
	entry.UpdatedAt = now

	stored, err := s.store.SaveArchive(ctx, &entry)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to archive property")
	}

	attrs := map[string]string{"state": stored.Details.State}
	if stored.Rating != nil {
		attrs["rating"] = strconv.Itoa(*stored.Rating)
	}
	s.record(ctx, audit.Event{
		UserID:     owner,
		Subject:    stored.PropertyRef,
		Action:     string(audit.EventSearchArchived),
		ActorID:    actorID(caller, owner),
		Attributes: attrs,
	})
	return stored, nil
}

// ListArchive returns the owner's archived searches, newest first.
func (s *Service) ListArchive(ctx context.Context, caller requestcontext.Principal, owner id.UserID) ([]*models.ArchivedProperty, error) {
	owner, err := s.archiveOwner(ctx, caller, owner)
	if err != nil {
		return nil, err
	}
	entries, err := s.store.ListArchive(ctx, owner)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list archive")
	}
	return entries, nil
}

func (s *Service) archiveOwner(ctx context.Context, caller requestcontext.Principal, owner id.UserID) (id.UserID, error) {
	if owner.IsNil() {
		owner = caller.UserID
	}
	if owner.IsNil() {
		return id.UserID{}, dErrors.New(dErrors.CodeBadRequest, "user_id is required")
	}
	if !caller.CanAccessUser(owner) {
		s.record(ctx, audit.Event{
			UserID:     caller.UserID,
			Action:     string(audit.EventAccessDenied),
			Reason:     "archive requested for another user",
			Attributes: map[string]string{"owner_id": owner.String()},
		})
		return id.UserID{}, dErrors.New(dErrors.CodeForbidden, "access to this user's archive is not allowed")
	}
	return owner, nil
}

func (s *Service) authorizedProperty(ctx context.Context, caller requestcontext.Principal, propertyID id.PropertyID) (*models.UserProperty, error) {
	property, err := s.store.GetProperty(ctx, propertyID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Wrap(err, dErrors.CodeNotFound, "property not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load property")
	}
	if !caller.CanAccessUser(property.UserID) {
		s.record(ctx, audit.Event{
			UserID:  caller.UserID,
			Subject: propertyID.String(),
			Action:  string(audit.EventAccessDenied),
			Reason:  "property owned by another user",
		})
		return nil, dErrors.New(dErrors.CodeForbidden, "access to this property is not allowed")
	}
	return property, nil
}

// releaseLock runs after the caller's ctx may be done; the lock expires on
// its own if release fails.
func (s *Service) releaseLock(ctx context.Context, userID id.UserID, release func(context.Context) error) {
	if err := release(context.WithoutCancel(ctx)); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "failed to release ledger lock", "user_id", userID, "error", err)
	}
}

func (s *Service) record(ctx context.Context, event audit.Event) {
	audit.Record(ctx, s.logger, s.auditPublisher, event)
}

func actorID(caller requestcontext.Principal, owner id.UserID) string {
	if caller.UserID == owner {
		return ""
	}
	return caller.UserID.String()
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
