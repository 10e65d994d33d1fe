package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"
	"go.uber.org/goleak"

	"propaudit/internal/catalog"
	"propaudit/internal/fraud/adapters"
	"propaudit/internal/fraud/metrics"
	"propaudit/internal/fraud/models"
	"propaudit/internal/fraud/store"
	"propaudit/internal/scoring"
	id "propaudit/pkg/domain"
	dErrors "propaudit/pkg/domain-errors"
	"propaudit/pkg/platform/audit"
	"propaudit/pkg/platform/audit/publisher"
	"propaudit/pkg/platform/audit/store/memory"
	"propaudit/pkg/requestcontext"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// FraudServiceSuite scores the catalog's registry fixtures end to end.
type FraudServiceSuite struct {
	suite.Suite
	store      *store.InMemory
	auditStore *memory.InMemoryStore
	service    *Service
	caller     requestcontext.Principal
}

func TestFraudServiceSuite(t *testing.T) {
	suite.Run(t, new(FraudServiceSuite))
}

func (s *FraudServiceSuite) SetupTest() {
	cat, err := catalog.Load("")
	s.Require().NoError(err)
	registry, err := adapters.NewCatalogRegistry(cat.Registry)
	s.Require().NoError(err)

	s.store = store.NewInMemory()
	s.auditStore = memory.NewInMemoryStore()
	s.service, err = New(s.store,
		Sources{Price: registry, Title: registry, Documents: registry, Seller: registry},
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithAuditPublisher(publisher.NewPublisher(s.auditStore)),
		WithMetrics(metrics.New(prometheus.NewRegistry())),
	)
	s.Require().NoError(err)
	s.caller = requestcontext.Principal{UserID: id.UserID(uuid.New()), Email: "agent@example.com", Role: requestcontext.RoleUser}
}

func (s *FraudServiceSuite) analyze(propertyID, owner, state string) *models.FraudScore {
	return s.analyzeAs(s.caller, propertyID, owner, state)
}

func (s *FraudServiceSuite) analyzeAs(caller requestcontext.Principal, propertyID, owner, state string) *models.FraudScore {
	score, err := s.service.Analyze(context.Background(), caller, models.Subject{
		PropertyID: propertyID,
		OwnerName:  owner,
		Address:    "Survey No. 12",
		State:      state,
	})
	s.Require().NoError(err)
	return score
}

func factor(score *models.FraudScore, f scoring.Factor) models.FactorResult {
	for _, r := range score.Factors {
		if r.Name == f {
			return r
		}
	}
	return models.FactorResult{}
}

func (s *FraudServiceSuite) TestCleanPropertyIsLowRisk() {
	score := s.analyze("PROP-KA-1001", "Ramesh Kumar", "Karnataka")

	s.Equal(1, score.AggregateScore)
	s.Equal(scoring.RiskLow, score.RiskLevel)
	s.Len(score.Factors, len(scoring.AllFactors))
	s.False(factor(score, scoring.FactorPriceAnomaly).Triggered)
	s.Equal(s.caller.UserID, score.UserID)
}

func (s *FraudServiceSuite) TestSuspiciousPropertyIsHighRisk() {
	score := s.analyze("PROP-MH-2002", "Suresh Patil", "Maharashtra")

	s.InDelta(82.5, float64(score.AggregateScore), 0.5)
	s.Equal(scoring.RiskHigh, score.RiskLevel)
	s.True(factor(score, scoring.FactorDoubleSale).Triggered)
	s.True(factor(score, scoring.FactorBrokenTitleChain).Triggered)
	s.False(factor(score, scoring.FactorBenamiProxy).Triggered)
	s.InDelta(20.0, factor(score, scoring.FactorPriceAnomaly).Contribution, 1e-9)
}

func (s *FraudServiceSuite) TestFraudulentPropertyIsCritical() {
	score := s.analyze("PROP-DL-3003", "Anil Mehra", "Delhi")

	s.Equal(99, score.AggregateScore)
	s.Equal(scoring.RiskCritical, score.RiskLevel)
	for _, f := range score.Factors {
		s.True(f.Triggered, "factor %s", f.Name)
	}
}

func (s *FraudServiceSuite) TestUnknownPropertyScoresZero() {
	score := s.analyze("PROP-XX-0000", "Unknown Seller", "Goa")

	s.Equal(0, score.AggregateScore)
	s.Equal(scoring.RiskLow, score.RiskLevel)
}

func (s *FraudServiceSuite) TestAnalyzeRecordsAudit() {
	s.analyze("PROP-DL-3003", "Anil Mehra", "Delhi")

	events, err := s.auditStore.ListByUser(context.Background(), s.caller.UserID)
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Equal(string(audit.EventFraudAnalyzed), events[0].Action)
	s.Equal("PROP-DL-3003", events[0].Subject)
	s.Equal("99", events[0].Attributes["aggregate_score"])
	s.Equal("critical", events[0].Attributes["risk_level"])
}

func (s *FraudServiceSuite) TestAnalyzeValidatesSubject() {
	_, err := s.service.Analyze(context.Background(), s.caller, models.Subject{PropertyID: "  ", State: "Goa"})

	de, ok := dErrors.From(err)
	s.Require().True(ok)
	s.Equal(dErrors.CodeValidation, de.Code)
	s.Len(de.Details, 3)
}

func (s *FraudServiceSuite) TestLatestScoreWins() {
	s.analyze("PROP-MH-2002", "Suresh Patil", "Maharashtra")
	s.analyze("PROP-MH-2002", "Someone Else", "Maharashtra")

	got, err := s.service.Get(context.Background(), s.caller, id.UserID{}, "PROP-MH-2002")
	s.Require().NoError(err)
	s.Equal("Someone Else", got.OwnerName)
}

func (s *FraudServiceSuite) TestScoresAreScopedToTheAnalysingUser() {
	ctx := context.Background()
	other := requestcontext.Principal{UserID: id.UserID(uuid.New()), Email: "buyer@example.com", Role: requestcontext.RoleUser}

	mine := s.analyzeAs(s.caller, "PROP-KA-1001", "Ramesh Kumar", "Karnataka")
	theirs := s.analyzeAs(other, "PROP-KA-1001", "Anil Mehra", "Delhi")

	got, err := s.service.Get(ctx, s.caller, id.UserID{}, "PROP-KA-1001")
	s.Require().NoError(err)
	s.Equal(s.caller.UserID, got.UserID)
	s.Equal("Ramesh Kumar", got.OwnerName)
	s.Equal(mine.AggregateScore, got.AggregateScore)

	got, err = s.service.Get(ctx, other, id.UserID{}, "PROP-KA-1001")
	s.Require().NoError(err)
	s.Equal(other.UserID, got.UserID)
	s.Equal("Anil Mehra", got.OwnerName)
	s.Equal(theirs.AggregateScore, got.AggregateScore)
}

func (s *FraudServiceSuite) TestGet() {
	s.analyze("PROP-KA-1001", "Ramesh Kumar", "Karnataka")
	ctx := context.Background()

	s.Run("missing", func() {
		_, err := s.service.Get(ctx, s.caller, id.UserID{}, "PROP-NONE")
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("blank id", func() {
		_, err := s.service.Get(ctx, s.caller, id.UserID{}, " ")
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	s.Run("another user's analysis is not visible as their own", func() {
		other := requestcontext.Principal{UserID: id.UserID(uuid.New()), Role: requestcontext.RoleUser}
		_, err := s.service.Get(ctx, other, id.UserID{}, "PROP-KA-1001")
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("naming another owner is forbidden and audited", func() {
		other := requestcontext.Principal{UserID: id.UserID(uuid.New()), Role: requestcontext.RoleUser}
		_, err := s.service.Get(ctx, other, s.caller.UserID, "PROP-KA-1001")
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))

		events, err := s.auditStore.ListByUser(ctx, other.UserID)
		s.Require().NoError(err)
		s.Require().Len(events, 1)
		s.Equal(string(audit.EventAccessDenied), events[0].Action)
		s.Equal(s.caller.UserID.String(), events[0].Attributes["owner_id"])
	})

	s.Run("admin reads a named owner's score", func() {
		admin := requestcontext.Principal{UserID: id.UserID(uuid.New()), Role: requestcontext.RoleAdmin}
		got, err := s.service.Get(ctx, admin, s.caller.UserID, "PROP-KA-1001")
		s.Require().NoError(err)
		s.Equal("PROP-KA-1001", got.PropertyID)
		s.Equal(s.caller.UserID, got.UserID)
	})
}

func (s *FraudServiceSuite) TestVerifyTitle() {
	ctx := context.Background()

	s.Run("clean title", func() {
		result, err := s.service.VerifyTitle(ctx, "PROP-KA-1001", "Karnataka")
		s.Require().NoError(err)
		s.True(result.Clear)
		s.Empty(result.Issues)
		s.Equal(1, result.Evidence.ActiveSaleDeeds)
	})

	s.Run("flagged title lists each issue", func() {
		result, err := s.service.VerifyTitle(ctx, "PROP-MH-2002", "Maharashtra")
		s.Require().NoError(err)
		s.False(result.Clear)
		s.Contains(result.Issues, "gap in ownership chain")
		s.Len(result.Issues, 2)
	})

	s.Run("unknown property", func() {
		_, err := s.service.VerifyTitle(ctx, "PROP-XX-9999", "Goa")
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("state is required", func() {
		_, err := s.service.VerifyTitle(ctx, "PROP-KA-1001", " ")
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("nothing is stored", func() {
		_, err := s.service.Get(ctx, s.caller, id.UserID{}, "PROP-KA-1001")
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}
