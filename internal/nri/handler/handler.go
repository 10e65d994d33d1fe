package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"propaudit/internal/nri/models"
	id "propaudit/pkg/domain"
	"propaudit/pkg/platform/httputil"
	"propaudit/pkg/requestcontext"
)

// Service defines the checklist operations exposed over HTTP.
type Service interface {
	Get(ctx context.Context, caller requestcontext.Principal, email id.Email) (*models.Checklist, error)
	Create(ctx context.Context, caller requestcontext.Principal, email id.Email) (*models.Checklist, bool, error)
	Toggle(ctx context.Context, caller requestcontext.Principal, email id.Email, itemID string) (*models.Checklist, error)
}

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/nri/checklist/{email}", h.HandleGet)
	r.Post("/nri/checklist", h.HandleCreate)
	r.Post("/nri/checklist/{email}/items/{itemId}/toggle", h.HandleToggle)
}

// HandleGet handles GET /nri/checklist/{email}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	email, err := id.ParseEmail(chi.URLParam(r, "email"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	c, err := h.service.Get(ctx, requestcontext.Caller(ctx), email)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(c))
}

// HandleCreate handles POST /nri/checklist.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[CreateChecklistRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	c, created, err := h.service.Create(ctx, requestcontext.Caller(ctx), req.ParsedEmail())
	if err != nil {
		h.logger.WarnContext(ctx, "create checklist failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	if created {
		h.logger.InfoContext(ctx, "checklist created",
			"request_id", requestID,
			"checklist_id", c.ID,
		)
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(c))
}

// HandleToggle handles POST /nri/checklist/{email}/items/{itemId}/toggle.
func (h *Handler) HandleToggle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	email, err := id.ParseEmail(chi.URLParam(r, "email"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	c, err := h.service.Toggle(ctx, requestcontext.Caller(ctx), email, chi.URLParam(r, "itemId"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(c))
}
