// Package scoring holds the pure rules that turn checks and signals into
// scores and categorical statuses. Nothing here performs I/O.
package scoring

import "math"

// Status is the compliance bucket for a set of required checks.
type Status string

const (
	StatusCompliant    Status = "compliant"
	StatusPartial      Status = "partial"
	StatusNonCompliant Status = "non_compliant"
)

func (s Status) String() string { return string(s) }

// ComplianceStatus buckets a set of required checks. Every check passing is
// compliant, at least one passing is partial, and none passing (including an
// empty set) is non-compliant.
func ComplianceStatus(checks ...bool) Status {
	passed := 0
	for _, ok := range checks {
		if ok {
			passed++
		}
	}
	switch {
	case len(checks) > 0 && passed == len(checks):
		return StatusCompliant
	case passed > 0:
		return StatusPartial
	default:
		return StatusNonCompliant
	}
}

// AuditChecks are the RERA developer audit flags that drive the status.
type AuditChecks struct {
	Form7Submitted          bool
	AuditedAccounts         bool
	FundUtilizationCorrect  bool
	WithdrawalProportionate bool
}

// AuditComplianceStatus derives a developer audit's status from its checks.
func AuditComplianceStatus(c AuditChecks) Status {
	return ComplianceStatus(
		c.Form7Submitted,
		c.AuditedAccounts,
		c.FundUtilizationCorrect,
		c.WithdrawalProportionate,
	)
}

// Completable is anything that can be counted towards a completion ratio.
type Completable interface {
	IsCompleted() bool
}

// CompletionPercentage returns round(100 * completed / total). An empty list
// is 0% rather than a division by zero.
func CompletionPercentage[T Completable](items []T) int {
	if len(items) == 0 {
		return 0
	}
	completed := 0
	for _, item := range items {
		if item.IsCompleted() {
			completed++
		}
	}
	return roundPercent(float64(completed) * 100 / float64(len(items)))
}

// OverallCompletion averages two phase percentages.
func OverallCompletion(pre, post int) int {
	return roundPercent(float64(pre+post) / 2)
}

func roundPercent(v float64) int {
	return int(math.Round(v))
}
