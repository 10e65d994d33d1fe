package handler

import (
	"time"

	"propaudit/internal/fraud/models"
)

type FraudScoreResponse struct {
	PropertyID     string                `json:"propertyId"`
	OwnerName      string                `json:"ownerName"`
	Address        string                `json:"address"`
	State          string                `json:"state"`
	Factors        []models.FactorResult `json:"factors"`
	AggregateScore int                   `json:"aggregateScore"`
	RiskLevel      string                `json:"riskLevel"`
	AnalyzedAt     time.Time             `json:"analyzedAt"`
}

func toResponse(s *models.FraudScore) FraudScoreResponse {
	factors := s.Factors
	if factors == nil {
		factors = []models.FactorResult{}
	}
	return FraudScoreResponse{
		PropertyID:     s.PropertyID,
		OwnerName:      s.OwnerName,
		Address:        s.Address,
		State:          s.State,
		Factors:        factors,
		AggregateScore: s.AggregateScore,
		RiskLevel:      string(s.RiskLevel),
		AnalyzedAt:     s.AnalyzedAt,
	}
}

type TitleVerificationResponse struct {
	PropertyID      string    `json:"propertyId"`
	State           string    `json:"state"`
	ChainBroken     bool      `json:"chainBroken"`
	ActiveSaleDeeds int       `json:"activeSaleDeeds"`
	BenamiSuspected bool      `json:"benamiSuspected"`
	Issues          []string  `json:"issues"`
	Clear           bool      `json:"clear"`
	CheckedAt       time.Time `json:"checkedAt"`
}

func toTitleResponse(t *models.TitleVerification) TitleVerificationResponse {
	issues := t.Issues
	if issues == nil {
		issues = []string{}
	}
	return TitleVerificationResponse{
		PropertyID:      t.PropertyID,
		State:           t.State,
		ChainBroken:     t.Evidence.ChainBroken,
		ActiveSaleDeeds: t.Evidence.ActiveSaleDeeds,
		BenamiSuspected: t.Evidence.BenamiSuspected,
		Issues:          issues,
		Clear:           t.Clear,
		CheckedAt:       t.CheckedAt,
	}
}
