package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"propaudit/internal/catalog"
	"propaudit/internal/scoring"
	id "propaudit/pkg/domain"
	dErrors "propaudit/pkg/domain-errors"
)

type DeveloperServiceSuite struct {
	suite.Suite
	service *Service
	ctx     context.Context
}

func TestDeveloperServiceSuite(t *testing.T) {
	suite.Run(t, new(DeveloperServiceSuite))
}

func (s *DeveloperServiceSuite) SetupTest() {
	cat, err := catalog.Parse([]byte(`
developers:
  - id: dev-100
    name: " Shoreline Builders "
    projects: 4
    audits:
      - {year: 2022, audit_score: 71, form7_submitted: true, audited_accounts: false, fund_utilization_correct: true, withdrawal_proportionate: true, remarks: "late filing"}
      - {year: 2024, audit_score: 90, form7_submitted: true, audited_accounts: true, fund_utilization_correct: true, withdrawal_proportionate: true}
      - {year: 2023, audit_score: 40, form7_submitted: false, audited_accounts: false, fund_utilization_correct: false, withdrawal_proportionate: false}
fraud:
  weights: {price_anomaly: 1}
  bands: {medium: 40, high: 70, critical: 90}
  price_tolerance: "0.15"
  price_ceiling: "0.50"
`))
	s.Require().NoError(err)
	s.service, err = New(cat)
	s.Require().NoError(err)
	s.ctx = context.Background()
}

func (s *DeveloperServiceSuite) TestGetAudit() {
	s.Run("derives compliance and band", func() {
		rec, err := s.service.GetAudit(s.ctx, "DEV-100", 2024)
		s.Require().NoError(err)
		s.Equal(id.DeveloperID("DEV-100"), rec.DeveloperID)
		s.Equal("Shoreline Builders", rec.DeveloperName)
		s.Equal(scoring.StatusCompliant, rec.ComplianceStatus)
		s.Equal(scoring.BandGood, rec.ScoreBand)
	})

	s.Run("one failed check is partial", func() {
		rec, err := s.service.GetAudit(s.ctx, "DEV-100", 2022)
		s.Require().NoError(err)
		s.Equal(scoring.StatusPartial, rec.ComplianceStatus)
		s.Equal(scoring.BandWarning, rec.ScoreBand)
		s.Equal("late filing", rec.Remarks)
	})

	s.Run("all failed is non compliant", func() {
		rec, err := s.service.GetAudit(s.ctx, "DEV-100", 2023)
		s.Require().NoError(err)
		s.Equal(scoring.StatusNonCompliant, rec.ComplianceStatus)
		s.Equal(scoring.BandCritical, rec.ScoreBand)
	})

	s.Run("unknown year", func() {
		_, err := s.service.GetAudit(s.ctx, "DEV-100", 2019)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("unknown developer", func() {
		_, err := s.service.GetAudit(s.ctx, "DEV-999", 2024)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("year out of range", func() {
		_, err := s.service.GetAudit(s.ctx, "DEV-100", 24)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

func (s *DeveloperServiceSuite) TestGetDeveloperNewestFirst() {
	dev, err := s.service.GetDeveloper(s.ctx, "DEV-100")
	s.Require().NoError(err)
	s.Require().Len(dev.Audits, 3)
	s.Equal([]int{2024, 2023, 2022}, []int{dev.Audits[0].Year, dev.Audits[1].Year, dev.Audits[2].Year})

	dev.Audits[0].AuditScore = 0
	again, err := s.service.GetDeveloper(s.ctx, "DEV-100")
	s.Require().NoError(err)
	s.Equal(90, again.Audits[0].AuditScore, "callers cannot mutate the index")
}

func TestNewWithEmbeddedCatalog(t *testing.T) {
	cat, err := catalog.Load("")
	require.NoError(t, err)
	svc, err := New(cat)
	require.NoError(t, err)

	rec, err := svc.GetAudit(context.Background(), "DEV-001", 2024)
	require.NoError(t, err)
	assert.Equal(t, scoring.StatusCompliant, rec.ComplianceStatus)
	assert.Equal(t, 92, rec.AuditScore)
}

func TestNewRequiresCatalog(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)
}
