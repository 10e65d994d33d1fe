package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"propaudit/internal/developer/handler/mocks"
	"propaudit/internal/developer/models"
	"propaudit/internal/scoring"
	id "propaudit/pkg/domain"
	dErrors "propaudit/pkg/domain-errors"
)

func newRouter(t *testing.T) (chi.Router, *mocks.MockService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockService(ctrl)
	r := chi.NewRouter()
	New(svc, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(r)
	return r, svc
}

func get(r chi.Router, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHandleGetAudit(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		r, svc := newRouter(t)
		svc.EXPECT().GetAudit(gomock.Any(), id.DeveloperID("DEV-002"), 2024).Return(&models.AuditRecord{
			DeveloperID:      "DEV-002",
			DeveloperName:    "Godrej Properties",
			Year:             2024,
			AuditScore:       87,
			ComplianceStatus: scoring.StatusPartial,
			Form7Submitted:   true,
			ScoreBand:        scoring.BandGood,
		}, nil)

		w := get(r, "/developer/audit/dev-002/2024")

		require.Equal(t, http.StatusOK, w.Code)
		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "DEV-002", resp["developerId"])
		assert.Equal(t, "partial", resp["complianceStatus"])
		assert.Equal(t, "good", resp["scoreBand"])
		assert.Equal(t, float64(87), resp["auditScore"])
	})

	t.Run("not found", func(t *testing.T) {
		r, svc := newRouter(t)
		svc.EXPECT().GetAudit(gomock.Any(), id.DeveloperID("DEV-001"), 2015).
			Return(nil, dErrors.New(dErrors.CodeNotFound, "audit record not found"))

		w := get(r, "/developer/audit/DEV-001/2015")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("non numeric year", func(t *testing.T) {
		r, _ := newRouter(t)
		w := get(r, "/developer/audit/DEV-001/last")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed developer id", func(t *testing.T) {
		r, _ := newRouter(t)
		w := get(r, "/developer/audit/DEV%20001/2024")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandleGetDeveloper(t *testing.T) {
	r, svc := newRouter(t)
	svc.EXPECT().GetDeveloper(gomock.Any(), id.DeveloperID("DEV-001")).Return(&models.Developer{
		ID:       "DEV-001",
		Name:     "Prestige Group",
		Projects: 12,
		Audits: []models.AuditRecord{
			{DeveloperID: "DEV-001", Year: 2024, AuditScore: 92},
			{DeveloperID: "DEV-001", Year: 2023, AuditScore: 88},
		},
	}, nil)

	w := get(r, "/developer/DEV-001")

	require.Equal(t, http.StatusOK, w.Code)
	var resp DeveloperResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Prestige Group", resp.Name)
	require.Len(t, resp.Audits, 2)
	assert.Equal(t, 2024, resp.Audits[0].Year)
}
