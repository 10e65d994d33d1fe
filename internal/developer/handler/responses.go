package handler

import (
	"propaudit/internal/developer/models"
)

type AuditResponse struct {
	DeveloperID             string `json:"developerId"`
	DeveloperName           string `json:"developerName"`
	Year                    int    `json:"year"`
	AuditScore              int    `json:"auditScore"`
	ComplianceStatus        string `json:"complianceStatus"`
	Form7Submitted          bool   `json:"form7Submitted"`
	AuditedAccounts         bool   `json:"auditedAccounts"`
	FundUtilizationCorrect  bool   `json:"fundUtilizationCorrect"`
	WithdrawalProportionate bool   `json:"withdrawalProportionate"`
	Remarks                 string `json:"remarks,omitempty"`
	ScoreBand               string `json:"scoreBand"`
}

type DeveloperResponse struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Projects int             `json:"projects"`
	Audits   []AuditResponse `json:"audits"`
}

func toAuditResponse(r *models.AuditRecord) AuditResponse {
	return AuditResponse{
		DeveloperID:             r.DeveloperID.String(),
		DeveloperName:           r.DeveloperName,
		Year:                    r.Year,
		AuditScore:              r.AuditScore,
		ComplianceStatus:        r.ComplianceStatus.String(),
		Form7Submitted:          r.Form7Submitted,
		AuditedAccounts:         r.AuditedAccounts,
		FundUtilizationCorrect:  r.FundUtilizationCorrect,
		WithdrawalProportionate: r.WithdrawalProportionate,
		Remarks:                 r.Remarks,
		ScoreBand:               string(r.ScoreBand),
	}
}

func toDeveloperResponse(d *models.Developer) DeveloperResponse {
	audits := make([]AuditResponse, 0, len(d.Audits))
	for i := range d.Audits {
		audits = append(audits, toAuditResponse(&d.Audits[i]))
	}
	return DeveloperResponse{
		ID:       d.ID.String(),
		Name:     d.Name,
		Projects: d.Projects,
		Audits:   audits,
	}
}
