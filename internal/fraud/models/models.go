package models

import (
	"time"

	"github.com/shopspring/decimal"

	"propaudit/internal/scoring"
	id "propaudit/pkg/domain"
)

// Subject identifies the property and seller under analysis. PropertyID is
// the registry's own identifier, not a ledger property ID.
type Subject struct {
	PropertyID string
	OwnerName  string
	Address    string
	State      string
}

// PriceEvidence compares the registered sale price with a reference rate.
type PriceEvidence struct {
	Known     bool
	Declared  decimal.Decimal
	Reference decimal.Decimal
}

// TitleEvidence is what the land records say about ownership history.
type TitleEvidence struct {
	Known           bool
	ChainBroken     bool
	ActiveSaleDeeds int
	BenamiSuspected bool
}

// DocumentEvidence is the forensic check on the uploaded title documents.
type DocumentEvidence struct {
	Known             bool
	ForgeryConfidence float64
}

// SellerEvidence summarises the seller's recent transactions.
type SellerEvidence struct {
	Known        bool
	RecentSales  int
	DistressSale bool
}

// Evidence is everything gathered for one analysis.
type Evidence struct {
	Price    PriceEvidence
	Title    TitleEvidence
	Document DocumentEvidence
	Seller   SellerEvidence
}

// FactorResult is one factor's evaluation and its share of the score.
type FactorResult struct {
	Name         scoring.Factor `json:"name"`
	Weight       float64        `json:"weight"`
	Severity     float64        `json:"severity"`
	Contribution float64        `json:"contribution"`
	Triggered    bool           `json:"triggered"`
	Detail       string         `json:"detail"`
}

// TitleVerification is a standalone land-records lookup. Issues lists the
// title signals that triggered; Clear is true when there are none.
type TitleVerification struct {
	PropertyID string
	State      string
	Evidence   TitleEvidence
	Issues     []string
	Clear      bool
	CheckedAt  time.Time
}

// FraudScore is the latest analysis for a property.
type FraudScore struct {
	PropertyID     string
	UserID         id.UserID
	OwnerName      string
	Address        string
	State          string
	Factors        []FactorResult
	AggregateScore int
	RiskLevel      scoring.RiskLevel
	AnalyzedAt     time.Time
}
