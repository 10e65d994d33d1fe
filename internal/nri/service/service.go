// Package service manages NRI buyer compliance checklists: seeding them from
// catalog templates, toggling items and reporting progress.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"propaudit/internal/catalog"
	"propaudit/internal/nri/models"
	"propaudit/internal/nri/ports"
	id "propaudit/pkg/domain"
	dErrors "propaudit/pkg/domain-errors"
	"propaudit/pkg/platform/audit"
	"propaudit/pkg/platform/sentinel"
	"propaudit/pkg/requestcontext"
)

type (
	Store          = ports.Store
	AuditPublisher = ports.AuditPublisher
)

type Service struct {
	store          Store
	templates      catalog.NRITemplates
	auditPublisher AuditPublisher
	logger         *slog.Logger
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

func New(store Store, templates catalog.NRITemplates, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("checklist store is required")
	}
	if len(templates.PrePurchase)+len(templates.PostPurchase) == 0 {
		return nil, fmt.Errorf("checklist templates are required")
	}
	svc := &Service{store: store, templates: templates}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Get returns the caller's checklist for email.
func (s *Service) Get(ctx context.Context, caller requestcontext.Principal, email id.Email) (*models.Checklist, error) {
	if err := s.authorize(ctx, caller, email); err != nil {
		return nil, err
	}
	c, err := s.store.Get(ctx, email)
	if err != nil {
		return nil, translate(err, "failed to load checklist")
	}
	return c, nil
}

// Create seeds a checklist for email from the catalog templates. Calling it
// again returns the existing checklist unchanged with created=false.
func (s *Service) Create(ctx context.Context, caller requestcontext.Principal, email id.Email) (*models.Checklist, bool, error) {
	if email == "" {
		email = caller.Email
	}
	if email == "" {
		return nil, false, dErrors.New(dErrors.CodeValidation, "email is required")
	}
	if err := s.authorize(ctx, caller, email); err != nil {
		return nil, false, err
	}

	now := requestcontext.Now(ctx)
	checklist := &models.Checklist{
		ID:        id.ChecklistID(uuid.New()),
		UserID:    caller.UserID,
		Email:     email,
		PreItems:  seed(s.templates.PrePurchase),
		PostItems: seed(s.templates.PostPurchase),
		CreatedAt: now,
		UpdatedAt: now,
	}
	stored, created, err := s.store.Create(ctx, checklist)
	if err != nil {
		return nil, false, translate(err, "failed to create checklist")
	}
	if created {
		s.record(ctx, audit.Event{
			UserID:  caller.UserID,
			Subject: stored.ID.String(),
			Action:  string(audit.EventChecklistCreated),
			Attributes: map[string]string{
				"email":      email.String(),
				"pre_items":  fmt.Sprint(len(stored.PreItems)),
				"post_items": fmt.Sprint(len(stored.PostItems)),
			},
		})
	}
	return stored, created, nil
}

// Toggle flips one item's completed flag.
func (s *Service) Toggle(ctx context.Context, caller requestcontext.Principal, email id.Email, itemID string) (*models.Checklist, error) {
	if err := s.authorize(ctx, caller, email); err != nil {
		return nil, err
	}
	if itemID == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "item id is required")
	}

	var toggled models.ChecklistItem
	var phase models.Phase
	updated, err := s.store.Update(ctx, email, func(c *models.Checklist) error {
		item, p, ok := c.Toggle(itemID, requestcontext.Now(ctx))
		if !ok {
			return dErrors.New(dErrors.CodeNotFound, "checklist item not found")
		}
		toggled, phase = item, p
		return nil
	})
	if err != nil {
		return nil, translate(err, "failed to update checklist")
	}

	s.record(ctx, audit.Event{
		UserID:  caller.UserID,
		Subject: updated.ID.String(),
		Action:  string(audit.EventChecklistItemToggled),
		Attributes: map[string]string{
			"item_id":   itemID,
			"phase":     string(phase),
			"completed": fmt.Sprint(toggled.Completed),
		},
	})
	return updated, nil
}

func (s *Service) authorize(ctx context.Context, caller requestcontext.Principal, email id.Email) error {
	if caller.CanAccessEmail(email) {
		return nil
	}
	s.record(ctx, audit.Event{
		UserID:  caller.UserID,
		Subject: email.String(),
		Action:  string(audit.EventAccessDenied),
		Reason:  "checklist belongs to another email",
	})
	return dErrors.New(dErrors.CodeForbidden, "access to this checklist is not allowed")
}

func (s *Service) record(ctx context.Context, event audit.Event) {
	audit.Record(ctx, s.logger, s.auditPublisher, event)
}

func seed(templates []catalog.ChecklistTemplate) []models.ChecklistItem {
	items := make([]models.ChecklistItem, 0, len(templates))
	for _, t := range templates {
		items = append(items, models.ChecklistItem{
			ID:          t.ID,
			Name:        t.Name,
			Description: t.Description,
			Required:    t.Required,
			Documents:   append([]string(nil), t.Documents...),
		})
	}
	return items
}

func translate(err error, msg string) error {
	if _, ok := dErrors.From(err); ok {
		return err
	}
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.Wrap(err, dErrors.CodeNotFound, "checklist not found")
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "checklist is busy, retry")
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return dErrors.Wrap(err, dErrors.CodeTimeout, "request timed out")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, msg)
	}
}
