package scoring

// Band is the display bucket shared by audit scores and completion
// percentages.
type Band string

const (
	BandGood     Band = "good"
	BandWarning  Band = "warning"
	BandCritical Band = "critical"
)

const (
	goodThreshold    = 85
	warningThreshold = 70
)

// BandFor buckets a 0-100 value: >=85 good, 70-84 warning, <70 critical.
func BandFor(score int) Band {
	switch {
	case score >= goodThreshold:
		return BandGood
	case score >= warningThreshold:
		return BandWarning
	default:
		return BandCritical
	}
}

// Color is the dashboard colour for the band.
func (b Band) Color() string {
	switch b {
	case BandGood:
		return "emerald"
	case BandWarning:
		return "amber"
	default:
		return "red"
	}
}
