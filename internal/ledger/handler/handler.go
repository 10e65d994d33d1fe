package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"propaudit/internal/ledger/models"
	id "propaudit/pkg/domain"
	dErrors "propaudit/pkg/domain-errors"
	"propaudit/pkg/platform/httputil"
	"propaudit/pkg/requestcontext"
)

// Service defines the ledger operations exposed over HTTP.
type Service interface {
	AddProperty(ctx context.Context, userID id.UserID, details models.PropertyDetails) (*models.UserProperty, error)
	GetOrCreateCredits(ctx context.Context, userID id.UserID) (*models.UserCredits, error)
	ListProperties(ctx context.Context, userID id.UserID, status *models.PropertyStatus) ([]*models.UserProperty, error)
	UpdateStatus(ctx context.Context, caller requestcontext.Principal, propertyID id.PropertyID, status models.PropertyStatus) (*models.UserProperty, error)
	DeleteProperty(ctx context.Context, caller requestcontext.Principal, propertyID id.PropertyID) error
	GrantCredits(ctx context.Context, caller requestcontext.Principal, userID id.UserID, amount int) (*models.UserCredits, error)
	ArchiveProperty(ctx context.Context, caller requestcontext.Principal, entry models.ArchivedProperty) (*models.ArchivedProperty, error)
	ListArchive(ctx context.Context, caller requestcontext.Principal, owner id.UserID) ([]*models.ArchivedProperty, error)
}

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

// Handler wires credit and property endpoints to the ledger service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts ledger endpoints on the router. The same {id} segment is
// a user ID for GET and a property ID for PATCH and DELETE.
func (h *Handler) Register(r chi.Router) {
	r.Post("/user-properties", h.HandleAddProperty)
	r.Get("/user-properties/{id}", h.HandleListProperties)
	r.Patch("/user-properties/{id}", h.HandleUpdateStatus)
	r.Delete("/user-properties/{id}", h.HandleDeleteProperty)
	r.Get("/user-credits/{id}", h.HandleGetCredits)
	r.Post("/user-credits/{id}/grant", h.HandleGrantCredits)
	r.Post("/property-archive", h.HandleArchiveProperty)
	r.Get("/property-archive/{id}", h.HandleListArchive)
}

// HandleAddProperty handles POST /user-properties.
func (h *Handler) HandleAddProperty(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	caller, ok := h.requireCaller(ctx, w)
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[AddPropertyRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	userID := req.ParsedUserID()
	if userID.IsNil() {
		userID = caller.UserID
	}
	if !h.authorizeUser(ctx, w, caller, userID) {
		return
	}

	property, err := h.service.AddProperty(ctx, userID, req.ParsedDetails())
	if err != nil {
		h.logFailure(ctx, "add property failed", err, "user_id", userID)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "property added",
		"request_id", requestID,
		"user_id", userID,
		"property_id", property.ID,
	)
	httputil.WriteJSON(w, http.StatusOK, FromProperty(property))
}

// HandleListProperties handles GET /user-properties/{userId}?status=.
func (h *Handler) HandleListProperties(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := h.requireCaller(ctx, w)
	if !ok {
		return
	}
	userID, err := id.ParseUserID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if !h.authorizeUser(ctx, w, caller, userID) {
		return
	}

	var status *models.PropertyStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := models.PropertyStatus(raw)
		status = &s
	}

	props, err := h.service.ListProperties(ctx, userID, status)
	if err != nil {
		h.logFailure(ctx, "list properties failed", err, "user_id", userID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromProperties(props))
}

// HandleUpdateStatus handles PATCH /user-properties/{propertyId}.
func (h *Handler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	caller, ok := h.requireCaller(ctx, w)
	if !ok {
		return
	}
	propertyID, err := id.ParsePropertyID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[UpdateStatusRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	property, err := h.service.UpdateStatus(ctx, caller, propertyID, req.ParsedStatus())
	if err != nil {
		h.logFailure(ctx, "update property status failed", err, "property_id", propertyID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromProperty(property))
}

// HandleDeleteProperty handles DELETE /user-properties/{propertyId}.
func (h *Handler) HandleDeleteProperty(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := h.requireCaller(ctx, w)
	if !ok {
		return
	}
	propertyID, err := id.ParsePropertyID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.service.DeleteProperty(ctx, caller, propertyID); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleGetCredits handles GET /user-credits/{userId}.
func (h *Handler) HandleGetCredits(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := h.requireCaller(ctx, w)
	if !ok {
		return
	}
	userID, err := id.ParseUserID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if !h.authorizeUser(ctx, w, caller, userID) {
		return
	}

	credits, err := h.service.GetOrCreateCredits(ctx, userID)
	if err != nil {
		h.logFailure(ctx, "get credits failed", err, "user_id", userID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromCredits(credits))
}

// HandleGrantCredits handles POST /user-credits/{userId}/grant.
func (h *Handler) HandleGrantCredits(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	caller, ok := h.requireCaller(ctx, w)
	if !ok {
		return
	}
	if !caller.IsAdmin() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "admin role required"))
		return
	}
	userID, err := id.ParseUserID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[GrantCreditsRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	credits, err := h.service.GrantCredits(ctx, caller, userID, req.Amount)
	if err != nil {
		h.logFailure(ctx, "grant credits failed", err, "user_id", userID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromCredits(credits))
}

// HandleArchiveProperty handles POST /property-archive.
func (h *Handler) HandleArchiveProperty(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	caller, ok := h.requireCaller(ctx, w)
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[ArchivePropertyRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	entry := req.ParsedEntry()
	if entry.UserID.IsNil() {
		entry.UserID = caller.UserID
	}
	if !h.authorizeUser(ctx, w, caller, entry.UserID) {
		return
	}

	archived, err := h.service.ArchiveProperty(ctx, caller, entry)
	if err != nil {
		h.logFailure(ctx, "archive property failed", err, "user_id", entry.UserID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromArchived(archived))
}

// HandleListArchive handles GET /property-archive/{userId}.
func (h *Handler) HandleListArchive(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller, ok := h.requireCaller(ctx, w)
	if !ok {
		return
	}
	userID, err := id.ParseUserID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if !h.authorizeUser(ctx, w, caller, userID) {
		return
	}

	entries, err := h.service.ListArchive(ctx, caller, userID)
	if err != nil {
		h.logFailure(ctx, "list archive failed", err, "user_id", userID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromArchive(entries))
}

func (h *Handler) requireCaller(ctx context.Context, w http.ResponseWriter) (requestcontext.Principal, bool) {
	caller := requestcontext.Caller(ctx)
	if caller.UserID.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return caller, false
	}
	return caller, true
}

func (h *Handler) authorizeUser(ctx context.Context, w http.ResponseWriter, caller requestcontext.Principal, userID id.UserID) bool {
	if caller.CanAccessUser(userID) {
		return true
	}
	h.logger.WarnContext(ctx, "cross-tenant access denied",
		"request_id", requestcontext.RequestID(ctx),
		"caller_id", caller.UserID,
		"target_user_id", userID,
	)
	httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "access to this user's data is not allowed"))
	return false
}

func (h *Handler) logFailure(ctx context.Context, msg string, err error, attrs ...any) {
	args := append([]any{"request_id", requestcontext.RequestID(ctx), "error", err}, attrs...)
	de, ok := dErrors.From(err)
	if ok && httputil.StatusFor(de.Code) < http.StatusInternalServerError {
		h.logger.WarnContext(ctx, msg, args...)
		return
	}
	h.logger.ErrorContext(ctx, msg, args...)
}
