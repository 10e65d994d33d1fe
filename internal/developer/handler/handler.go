package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"propaudit/internal/developer/models"
	id "propaudit/pkg/domain"
	dErrors "propaudit/pkg/domain-errors"
	"propaudit/pkg/platform/httputil"
	"propaudit/pkg/requestcontext"
)

// Service defines the developer lookups exposed over HTTP.
type Service interface {
	GetAudit(ctx context.Context, developerID id.DeveloperID, year int) (*models.AuditRecord, error)
	GetDeveloper(ctx context.Context, developerID id.DeveloperID) (*models.Developer, error)
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
	r.Get("/developer/audit/{developerId}/{year}", h.HandleGetAudit)
	r.Get("/developer/{developerId}", h.HandleGetDeveloper)
}

// HandleGetAudit handles GET /developer/audit/{developerId}/{year}.
func (h *Handler) HandleGetAudit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	developerID, err := id.ParseDeveloperID(chi.URLParam(r, "developerId"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "year must be a number"))
		return
	}

	rec, err := h.service.GetAudit(ctx, developerID, year)
	if err != nil {
		h.logger.WarnContext(ctx, "developer audit lookup failed",
			"request_id", requestcontext.RequestID(ctx),
			"developer_id", developerID,
			"year", year,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toAuditResponse(rec))
}

// HandleGetDeveloper handles GET /developer/{developerId}.
func (h *Handler) HandleGetDeveloper(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	developerID, err := id.ParseDeveloperID(chi.URLParam(r, "developerId"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	dev, err := h.service.GetDeveloper(ctx, developerID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toDeveloperResponse(dev))
}
