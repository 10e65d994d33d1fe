package httptransport_test

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"

	"propaudit/internal/catalog"
	developerHandler "propaudit/internal/developer/handler"
	developerService "propaudit/internal/developer/service"
	"propaudit/internal/fraud/adapters"
	fraudHandler "propaudit/internal/fraud/handler"
	fraudService "propaudit/internal/fraud/service"
	fraudStore "propaudit/internal/fraud/store"
	jwttoken "propaudit/internal/jwt_token"
	ledgerHandler "propaudit/internal/ledger/handler"
	ledgerService "propaudit/internal/ledger/service"
	ledgerStore "propaudit/internal/ledger/store"
	nriHandler "propaudit/internal/nri/handler"
	nriService "propaudit/internal/nri/service"
	nriStore "propaudit/internal/nri/store"
	"propaudit/internal/platform/metrics"
	httptransport "propaudit/internal/transport/http"
	id "propaudit/pkg/domain"
	"propaudit/pkg/requestcontext"
	"propaudit/pkg/testutil"
)

// APISuite drives the whole HTTP surface with in-memory stores and real
// JWTs, the way a client would.
type APISuite struct {
	suite.Suite
	router http.Handler
	jwt    *jwttoken.JWTService
	buyer  requestcontext.Principal
	other  requestcontext.Principal
	admin  requestcontext.Principal
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}

func (s *APISuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cat, err := catalog.Load("")
	s.Require().NoError(err)

	ledger, err := ledgerService.New(ledgerStore.NewInMemory(), ledgerService.WithLogger(logger))
	s.Require().NoError(err)
	developers, err := developerService.New(cat, developerService.WithLogger(logger))
	s.Require().NoError(err)
	registry, err := adapters.NewCatalogRegistry(cat.Registry)
	s.Require().NoError(err)
	fraud, err := fraudService.New(fraudStore.NewInMemory(),
		fraudService.Sources{Price: registry, Title: registry, Documents: registry, Seller: registry},
		fraudService.WithLogger(logger))
	s.Require().NoError(err)
	checklists, err := nriService.New(nriStore.NewInMemory(), cat.NRIChecklist, nriService.WithLogger(logger))
	s.Require().NoError(err)

	s.jwt = jwttoken.NewJWTService("test-signing-key", "propaudit", "propaudit-api")
	s.router = httptransport.NewRouter(httptransport.Config{
		Logger:         logger,
		Metrics:        metrics.New(prometheus.NewRegistry()),
		Validator:      jwttoken.NewJWTServiceAdapter(s.jwt),
		RequestTimeout: 5 * time.Second,
		Handlers: []httptransport.Registrar{
			ledgerHandler.New(ledger, logger),
			developerHandler.New(developers, logger),
			fraudHandler.New(fraud, logger),
			nriHandler.New(checklists, logger),
		},
	})

	s.buyer = requestcontext.Principal{UserID: id.UserID(uuid.New()), Email: "nri.buyer@example.com", Role: requestcontext.RoleUser}
	s.other = requestcontext.Principal{UserID: id.UserID(uuid.New()), Email: "someone@example.com", Role: requestcontext.RoleUser}
	s.admin = requestcontext.Principal{UserID: id.UserID(uuid.New()), Email: "ops@example.com", Role: requestcontext.RoleAdmin}
}

func (s *APISuite) call(as requestcontext.Principal, method, path string, body any) *httptest.ResponseRecorder {
	token, err := s.jwt.GenerateAccessToken(as, time.Hour)
	s.Require().NoError(err)
	req := testutil.WithBearer(testutil.NewJSONRequest(s.T(), method, path, body), token)
	return testutil.DoRequest(s.router, req)
}

func property(name string) map[string]any {
	return map[string]any{
		"propertyDetails": map[string]any{
			"propertyName": name,
			"address":      "14 Residency Road",
			"city":         "Bengaluru",
			"state":        "Karnataka",
			"pincode":      "560025",
			"propertyType": "apartment",
		},
	}
}

func (s *APISuite) TestCreditsAreProvisionedAndSpent() {
	credits := testutil.DecodeJSON[ledgerHandler.CreditsResponse](s.T(),
		s.call(s.buyer, http.MethodGet, "/api/user-credits/"+s.buyer.UserID.String(), nil), http.StatusOK)
	s.Equal(5, credits.TotalCredits)
	s.Equal(0, credits.UsedCredits)

	for i := range 5 {
		rr := s.call(s.buyer, http.MethodPost, "/api/user-properties", property(fmt.Sprintf("Flat %d", i)))
		testutil.DecodeJSON[ledgerHandler.PropertyResponse](s.T(), rr, http.StatusOK)
	}

	rr := s.call(s.buyer, http.MethodPost, "/api/user-properties", property("One too many"))
	testutil.AssertError(s.T(), rr, http.StatusBadRequest, "Insufficient credits")

	props := testutil.DecodeJSON[[]ledgerHandler.PropertyResponse](s.T(),
		s.call(s.buyer, http.MethodGet, "/api/user-properties/"+s.buyer.UserID.String(), nil), http.StatusOK)
	s.Len(props, 5)

	credits = testutil.DecodeJSON[ledgerHandler.CreditsResponse](s.T(),
		s.call(s.buyer, http.MethodGet, "/api/user-credits/"+s.buyer.UserID.String(), nil), http.StatusOK)
	s.Equal(5, credits.UsedCredits)
	s.Equal(0, credits.AvailableCredits)
}

func (s *APISuite) TestAdminGrantUnblocksUser() {
	for i := range 5 {
		s.call(s.buyer, http.MethodPost, "/api/user-properties", property(fmt.Sprintf("Plot %d", i)))
	}

	rr := s.call(s.buyer, http.MethodPost, "/api/user-credits/"+s.buyer.UserID.String()+"/grant", map[string]int{"amount": 3})
	s.Equal(http.StatusForbidden, rr.Code)

	granted := testutil.DecodeJSON[ledgerHandler.CreditsResponse](s.T(),
		s.call(s.admin, http.MethodPost, "/api/user-credits/"+s.buyer.UserID.String()+"/grant", map[string]int{"amount": 3}),
		http.StatusOK)
	s.Equal(8, granted.TotalCredits)

	rr = s.call(s.buyer, http.MethodPost, "/api/user-properties", property("Plot 6"))
	s.Equal(http.StatusOK, rr.Code)
}

func (s *APISuite) TestUsersCannotReadEachOthersLedger() {
	rr := s.call(s.other, http.MethodGet, "/api/user-credits/"+s.buyer.UserID.String(), nil)
	s.Equal(http.StatusForbidden, rr.Code)

	rr = s.call(s.admin, http.MethodGet, "/api/user-credits/"+s.buyer.UserID.String(), nil)
	s.Equal(http.StatusOK, rr.Code)
}

func (s *APISuite) TestSearchArchiveIsFreeAndPrivate() {
	entry := property("Lakeside Towers")
	entry["propertyId"] = "PROP-KA-1001"
	entry["notes"] = "near school"
	entry["rating"] = 4

	archived := testutil.DecodeJSON[ledgerHandler.ArchivedPropertyResponse](s.T(),
		s.call(s.buyer, http.MethodPost, "/api/property-archive", entry), http.StatusOK)
	s.Equal(s.buyer.UserID.String(), archived.UserID)

	credits := testutil.DecodeJSON[ledgerHandler.CreditsResponse](s.T(),
		s.call(s.buyer, http.MethodGet, "/api/user-credits/"+s.buyer.UserID.String(), nil), http.StatusOK)
	s.Equal(0, credits.UsedCredits)

	list := testutil.DecodeJSON[[]ledgerHandler.ArchivedPropertyResponse](s.T(),
		s.call(s.buyer, http.MethodGet, "/api/property-archive/"+s.buyer.UserID.String(), nil), http.StatusOK)
	s.Require().Len(list, 1)
	s.Equal("near school", list[0].Notes)

	rr := s.call(s.other, http.MethodGet, "/api/property-archive/"+s.buyer.UserID.String(), nil)
	s.Equal(http.StatusForbidden, rr.Code)

	entry["userId"] = s.buyer.UserID.String()
	rr = s.call(s.other, http.MethodPost, "/api/property-archive", entry)
	s.Equal(http.StatusForbidden, rr.Code)
}

func (s *APISuite) TestDeveloperAudit() {
	rr := s.call(s.buyer, http.MethodGet, "/api/developer/audit/dev-002/2024", nil)
	audit := testutil.DecodeJSON[developerHandler.AuditResponse](s.T(), rr, http.StatusOK)
	s.Equal("DEV-002", audit.DeveloperID)
	s.Equal("partial", audit.ComplianceStatus)

	rr = s.call(s.buyer, http.MethodGet, "/api/developer/audit/DEV-002/1999", nil)
	s.Equal(http.StatusNotFound, rr.Code)

	rr = s.call(s.buyer, http.MethodGet, "/api/developer/audit/DEV-002/last-year", nil)
	s.Equal(http.StatusBadRequest, rr.Code)
}

func (s *APISuite) TestFraudAnalysis() {
	rr := s.call(s.buyer, http.MethodPost, "/api/fraud-detection/analyze", map[string]string{
		"propertyId": "PROP-DL-3003",
		"ownerName":  "Anil Mehra",
		"address":    "4 Janpath",
		"state":      "Delhi",
	})
	score := testutil.DecodeJSON[fraudHandler.FraudScoreResponse](s.T(), rr, http.StatusOK)
	s.Equal("critical", score.RiskLevel)
	s.Len(score.Factors, 6)

	latest := testutil.DecodeJSON[fraudHandler.FraudScoreResponse](s.T(),
		s.call(s.buyer, http.MethodGet, "/api/fraud-detection/PROP-DL-3003", nil), http.StatusOK)
	s.Equal(score.AggregateScore, latest.AggregateScore)

	rr = s.call(s.buyer, http.MethodPost, "/api/fraud-detection/analyze", map[string]string{"propertyId": "PROP-DL-3003"})
	body := testutil.AssertError(s.T(), rr, http.StatusBadRequest, "invalid request")
	s.Len(body.Details, 3)
}

func (s *APISuite) TestFraudScoresStayWithTheirOwner() {
	analyze := func(as requestcontext.Principal, owner, state string) fraudHandler.FraudScoreResponse {
		rr := s.call(as, http.MethodPost, "/api/fraud-detection/analyze", map[string]string{
			"propertyId": "PROP-KA-1001",
			"ownerName":  owner,
			"address":    "14 Residency Road",
			"state":      state,
		})
		return testutil.DecodeJSON[fraudHandler.FraudScoreResponse](s.T(), rr, http.StatusOK)
	}
	mine := analyze(s.buyer, "Ramesh Kumar", "Karnataka")
	analyze(s.other, "Anil Mehra", "Delhi")

	got := testutil.DecodeJSON[fraudHandler.FraudScoreResponse](s.T(),
		s.call(s.buyer, http.MethodGet, "/api/fraud-detection/PROP-KA-1001", nil), http.StatusOK)
	s.Equal("Ramesh Kumar", got.OwnerName)
	s.Equal(mine.AggregateScore, got.AggregateScore)

	rr := s.call(s.other, http.MethodGet, "/api/fraud-detection/PROP-KA-1001?userId="+s.buyer.UserID.String(), nil)
	s.Equal(http.StatusForbidden, rr.Code)

	got = testutil.DecodeJSON[fraudHandler.FraudScoreResponse](s.T(),
		s.call(s.admin, http.MethodGet, "/api/fraud-detection/PROP-KA-1001?userId="+s.buyer.UserID.String(), nil), http.StatusOK)
	s.Equal("Ramesh Kumar", got.OwnerName)
}

func (s *APISuite) TestTitleVerification() {
	title := testutil.DecodeJSON[fraudHandler.TitleVerificationResponse](s.T(),
		s.call(s.buyer, http.MethodGet, "/api/title/PROP-MH-2002?state=Maharashtra", nil), http.StatusOK)
	s.True(title.ChainBroken)
	s.False(title.Clear)

	rr := s.call(s.buyer, http.MethodGet, "/api/title/PROP-XX-0000?state=Goa", nil)
	testutil.AssertError(s.T(), rr, http.StatusNotFound, "Title verification not found")
}

func (s *APISuite) TestNRIChecklist() {
	rr := s.call(s.buyer, http.MethodGet, "/api/nri/checklist/"+s.buyer.Email.String(), nil)
	s.Equal(http.StatusNotFound, rr.Code)

	created := testutil.DecodeJSON[nriHandler.ChecklistResponse](s.T(),
		s.call(s.buyer, http.MethodPost, "/api/nri/checklist", map[string]string{}), http.StatusOK)
	s.Equal(s.buyer.Email.String(), created.Email)
	s.Equal(0, created.Progress.Overall)
	s.NotEmpty(created.PreItems)

	toggled := testutil.DecodeJSON[nriHandler.ChecklistResponse](s.T(),
		s.call(s.buyer, http.MethodPost, "/api/nri/checklist/"+s.buyer.Email.String()+"/items/passport/toggle", nil),
		http.StatusOK)
	s.Positive(toggled.Progress.Pre)

	rr = s.call(s.other, http.MethodGet, "/api/nri/checklist/"+s.buyer.Email.String(), nil)
	s.Equal(http.StatusForbidden, rr.Code)
}

func (s *APISuite) TestRejectsMissingToken() {
	rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodGet, "/api/user-credits/"+s.buyer.UserID.String(), nil))
	testutil.AssertError(s.T(), rr, http.StatusUnauthorized, "Missing or invalid Authorization header")
}
