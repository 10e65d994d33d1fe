package models

import (
	"propaudit/internal/scoring"
	id "propaudit/pkg/domain"
)

// AuditRecord is one developer's annual RERA audit with its derived
// compliance status and score band.
type AuditRecord struct {
	DeveloperID             id.DeveloperID
	DeveloperName           string
	Year                    int
	AuditScore              int
	ComplianceStatus        scoring.Status
	Form7Submitted          bool
	AuditedAccounts         bool
	FundUtilizationCorrect  bool
	WithdrawalProportionate bool
	Remarks                 string
	ScoreBand               scoring.Band
}

// Developer is a registered developer with its audit history, newest first.
type Developer struct {
	ID       id.DeveloperID
	Name     string
	Projects int
	Audits   []AuditRecord
}
