package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type item bool

func (i item) IsCompleted() bool { return bool(i) }

func TestComplianceStatus(t *testing.T) {
	all := AuditChecks{Form7Submitted: true, AuditedAccounts: true, FundUtilizationCorrect: true, WithdrawalProportionate: true}
	assert.Equal(t, StatusCompliant, AuditComplianceStatus(all))

	t.Run("any single flag false is partial", func(t *testing.T) {
		for i := 0; i < 4; i++ {
			c := all
			switch i {
			case 0:
				c.Form7Submitted = false
			case 1:
				c.AuditedAccounts = false
			case 2:
				c.FundUtilizationCorrect = false
			case 3:
				c.WithdrawalProportionate = false
			}
			assert.Equal(t, StatusPartial, AuditComplianceStatus(c), "flag %d", i)
		}
	})

	t.Run("all false is non-compliant", func(t *testing.T) {
		assert.Equal(t, StatusNonCompliant, AuditComplianceStatus(AuditChecks{}))
	})

	t.Run("empty set is non-compliant", func(t *testing.T) {
		assert.Equal(t, StatusNonCompliant, ComplianceStatus())
	})
}

func TestCompletionPercentage(t *testing.T) {
	tests := []struct {
		name  string
		items []item
		want  int
	}{
		{"empty list is zero", nil, 0},
		{"none completed", []item{false, false}, 0},
		{"all completed", []item{true, true, true}, 100},
		{"rounds one third down", []item{true, false, false}, 33},
		{"rounds two thirds up", []item{true, true, false}, 67},
		{"rounds half up", []item{true, false, false, false, false, false, false, false}, 13},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CompletionPercentage(tt.items))
		})
	}
}

func TestOverallCompletion(t *testing.T) {
	assert.Equal(t, 0, OverallCompletion(0, 0))
	assert.Equal(t, 25, OverallCompletion(50, 0))
	assert.Equal(t, 34, OverallCompletion(33, 34))
}

func TestBandFor(t *testing.T) {
	cases := map[int]Band{
		100: BandGood,
		85:  BandGood,
		84:  BandWarning,
		70:  BandWarning,
		69:  BandCritical,
		0:   BandCritical,
	}
	for score, want := range cases {
		assert.Equal(t, want, BandFor(score), "score %d", score)
	}
	assert.Equal(t, "emerald", BandGood.Color())
	assert.Equal(t, "amber", BandWarning.Color())
	assert.Equal(t, "red", BandCritical.Color())
}
