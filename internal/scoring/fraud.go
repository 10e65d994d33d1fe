package scoring

import (
	"fmt"
	"math"
	"sort"
)

// Factor names a fraud risk signal.
type Factor string

const (
	FactorPriceAnomaly     Factor = "price_anomaly"
	FactorForgedDocument   Factor = "forged_document"
	FactorSellerBehavior   Factor = "seller_behavior"
	FactorBrokenTitleChain Factor = "broken_title_chain"
	FactorDoubleSale       Factor = "double_sale"
	FactorBenamiProxy      Factor = "benami_proxy"
)

// AllFactors lists every factor in evaluation order.
var AllFactors = []Factor{
	FactorPriceAnomaly,
	FactorForgedDocument,
	FactorSellerBehavior,
	FactorBrokenTitleChain,
	FactorDoubleSale,
	FactorBenamiProxy,
}

// IsValid reports whether f is a known factor.
func (f Factor) IsValid() bool {
	for _, known := range AllFactors {
		if f == known {
			return true
		}
	}
	return false
}

// RiskLevel is the categorical fraud bucket.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// FraudWeights assigns a non-negative weight to each factor.
type FraudWeights map[Factor]float64

// DefaultFraudWeights sums to 100 so contributions read as points.
func DefaultFraudWeights() FraudWeights {
	return FraudWeights{
		FactorPriceAnomaly:     20,
		FactorForgedDocument:   25,
		FactorSellerBehavior:   10,
		FactorBrokenTitleChain: 20,
		FactorDoubleSale:       15,
		FactorBenamiProxy:      10,
	}
}

// Validate requires known factors, non-negative weights and a positive total.
func (w FraudWeights) Validate() error {
	total := 0.0
	for f, weight := range w {
		if !f.IsValid() {
			return fmt.Errorf("unknown fraud factor %q", f)
		}
		if weight < 0 || math.IsNaN(weight) || math.IsInf(weight, 0) {
			return fmt.Errorf("fraud factor %q has invalid weight %v", f, weight)
		}
		total += weight
	}
	if total <= 0 {
		return fmt.Errorf("fraud weights must sum to a positive value")
	}
	return nil
}

func (w FraudWeights) total() float64 {
	total := 0.0
	for _, weight := range w {
		total += weight
	}
	return total
}

// RiskBands holds the lower bound of each bucket above low. Scores below
// Medium are low, and every score in [0,100] falls in exactly one bucket.
type RiskBands struct {
	Medium   int `yaml:"medium"`
	High     int `yaml:"high"`
	Critical int `yaml:"critical"`
}

// DefaultRiskBands: low <40, medium 40-69, high 70-89, critical >=90.
func DefaultRiskBands() RiskBands {
	return RiskBands{Medium: 40, High: 70, Critical: 90}
}

// Validate enforces 0 < Medium < High < Critical <= 100.
func (b RiskBands) Validate() error {
	if b.Medium <= 0 || b.Medium >= b.High || b.High >= b.Critical || b.Critical > 100 {
		return fmt.Errorf("risk bands must satisfy 0 < medium < high < critical <= 100, got %d/%d/%d",
			b.Medium, b.High, b.Critical)
	}
	return nil
}

// RiskLevelFor buckets a 0-100 score.
func RiskLevelFor(score int, bands RiskBands) RiskLevel {
	switch {
	case score >= bands.Critical:
		return RiskCritical
	case score >= bands.High:
		return RiskHigh
	case score >= bands.Medium:
		return RiskMedium
	default:
		return RiskLow
	}
}

// Contribution is one factor's share of the aggregate.
type Contribution struct {
	Factor   Factor
	Weight   float64
	Severity float64
	Points   float64
}

// ComputeFraudScore normalises the weighted severities to 0-100:
// round(100 * sum(w*s) / sum(w)). Severities are clamped to [0,1] and factors
// without a weight contribute nothing.
func ComputeFraudScore(severities map[Factor]float64, weights FraudWeights) (int, []Contribution) {
	total := weights.total()
	if total <= 0 {
		return 0, nil
	}

	factors := make([]Factor, 0, len(weights))
	for f := range weights {
		factors = append(factors, f)
	}
	sort.Slice(factors, func(i, j int) bool { return factorOrder(factors[i]) < factorOrder(factors[j]) })

	sum := 0.0
	contributions := make([]Contribution, 0, len(factors))
	for _, f := range factors {
		sev := clamp01(severities[f])
		points := 100 * weights[f] * sev / total
		sum += points
		contributions = append(contributions, Contribution{
			Factor:   f,
			Weight:   weights[f],
			Severity: sev,
			Points:   points,
		})
	}

	score := int(math.Round(sum))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score, contributions
}

func factorOrder(f Factor) int {
	for i, known := range AllFactors {
		if f == known {
			return i
		}
	}
	return len(AllFactors)
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
