package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"propaudit/internal/fraud/models"
	id "propaudit/pkg/domain"
	"propaudit/pkg/platform/httputil"
	"propaudit/pkg/requestcontext"
)

// Service defines the fraud analysis operations exposed over HTTP.
type Service interface {
	Analyze(ctx context.Context, caller requestcontext.Principal, subject models.Subject) (*models.FraudScore, error)
	Get(ctx context.Context, caller requestcontext.Principal, owner id.UserID, propertyID string) (*models.FraudScore, error)
	VerifyTitle(ctx context.Context, propertyID, state string) (*models.TitleVerification, error)
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
	r.Post("/fraud-detection/analyze", h.HandleAnalyze)
	r.Get("/fraud-detection/{propertyId}", h.HandleGet)
	r.Get("/title/{propertyId}", h.HandleVerifyTitle)
}

// HandleAnalyze handles POST /fraud-detection/analyze.
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[AnalyzeRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	score, err := h.service.Analyze(ctx, requestcontext.Caller(ctx), req.Subject())
	if err != nil {
		h.logger.WarnContext(ctx, "fraud analysis failed",
			"request_id", requestID,
			"property_id", req.PropertyID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "fraud analysis completed",
		"request_id", requestID,
		"property_id", score.PropertyID,
		"aggregate_score", score.AggregateScore,
		"risk_level", score.RiskLevel,
	)
	httputil.WriteJSON(w, http.StatusOK, toResponse(score))
}

// HandleGet handles GET /fraud-detection/{propertyId}. Admins pass
// ?userId= to read another user's analysis.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var owner id.UserID
	if raw := r.URL.Query().Get("userId"); raw != "" {
		parsed, err := id.ParseUserID(raw)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		owner = parsed
	}
	score, err := h.service.Get(ctx, requestcontext.Caller(ctx), owner, chi.URLParam(r, "propertyId"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(score))
}

// HandleVerifyTitle handles GET /title/{propertyId}?state=.
func (h *Handler) HandleVerifyTitle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	propertyID := chi.URLParam(r, "propertyId")
	result, err := h.service.VerifyTitle(ctx, propertyID, r.URL.Query().Get("state"))
	if err != nil {
		h.logger.WarnContext(ctx, "title verification failed",
			"request_id", requestcontext.RequestID(ctx),
			"property_id", propertyID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toTitleResponse(result))
}
