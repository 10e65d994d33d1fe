// Package signals turns gathered evidence into per-factor severities in
// [0,1]. Every function is pure; unknown evidence always scores zero.
package signals

import (
	"fmt"

	"github.com/shopspring/decimal"

	"propaudit/internal/fraud/models"
	"propaudit/internal/scoring"
)

const (
	forgeryThreshold = 0.5
	// Sales in the lookback window above which seller behaviour saturates.
	sellerSaturation = 5
	distressPenalty  = 0.25
)

// Signal is one factor's severity with a short human readable reason.
type Signal struct {
	Severity  float64
	Triggered bool
	Detail    string
}

// PriceWindow bounds the relative deviation between declared and reference
// prices. Below Tolerance the price is unremarkable; at Ceiling and above it
// is maximally suspicious.
type PriceWindow struct {
	Tolerance decimal.Decimal
	Ceiling   decimal.Decimal
}

func DefaultPriceWindow() PriceWindow {
	return PriceWindow{
		Tolerance: decimal.RequireFromString("0.15"),
		Ceiling:   decimal.RequireFromString("0.50"),
	}
}

func (w PriceWindow) Validate() error {
	if w.Tolerance.IsNegative() || !w.Ceiling.GreaterThan(w.Tolerance) {
		return fmt.Errorf("price window requires 0 <= tolerance < ceiling, got %s/%s", w.Tolerance, w.Ceiling)
	}
	return nil
}

// PriceAnomaly measures how far the declared price sits from the reference
// rate, in either direction.
func PriceAnomaly(e models.PriceEvidence, w PriceWindow) Signal {
	if !e.Known || !e.Reference.IsPositive() {
		return Signal{Detail: "no reference price on record"}
	}
	deviation := e.Declared.Sub(e.Reference).Abs().Div(e.Reference)
	pct := deviation.Mul(decimal.NewFromInt(100)).Round(1)

	var severity decimal.Decimal
	switch {
	case deviation.LessThan(w.Tolerance):
		return Signal{Detail: fmt.Sprintf("declared price within %s%% of reference", pct)}
	case deviation.GreaterThanOrEqual(w.Ceiling):
		severity = decimal.NewFromInt(1)
	default:
		severity = deviation.Sub(w.Tolerance).Div(w.Ceiling.Sub(w.Tolerance))
	}
	sev, _ := severity.Round(4).Float64()
	return Signal{
		Severity:  sev,
		Triggered: true,
		Detail:    fmt.Sprintf("declared price deviates %s%% from reference", pct),
	}
}

// ForgedDocument passes the forensic confidence through as severity.
func ForgedDocument(e models.DocumentEvidence) Signal {
	if !e.Known {
		return Signal{Detail: "documents not examined"}
	}
	c := clamp01(e.ForgeryConfidence)
	return Signal{
		Severity:  c,
		Triggered: c >= forgeryThreshold,
		Detail:    fmt.Sprintf("forgery confidence %.2f", c),
	}
}

// SellerBehavior flags sellers flipping many properties or selling under
// distress. A single recent sale is normal.
func SellerBehavior(e models.SellerEvidence) Signal {
	if !e.Known {
		return Signal{Detail: "no seller history on record"}
	}
	sev := 0.0
	if e.RecentSales > 1 {
		sev = float64(e.RecentSales-1) / float64(sellerSaturation-1)
	}
	if e.DistressSale {
		sev += distressPenalty
	}
	sev = clamp01(sev)
	detail := fmt.Sprintf("%d recent sales", e.RecentSales)
	if e.DistressSale {
		detail += ", distress sale"
	}
	return Signal{Severity: sev, Triggered: sev > 0, Detail: detail}
}

func BrokenTitleChain(e models.TitleEvidence) Signal {
	switch {
	case !e.Known:
		return Signal{Detail: "title not found in land records"}
	case e.ChainBroken:
		return Signal{Severity: 1, Triggered: true, Detail: "gap in ownership chain"}
	default:
		return Signal{Detail: "ownership chain intact"}
	}
}

// DoubleSale triggers when more than one sale deed is active for the property.
func DoubleSale(e models.TitleEvidence) Signal {
	switch {
	case !e.Known:
		return Signal{Detail: "title not found in land records"}
	case e.ActiveSaleDeeds > 1:
		return Signal{Severity: 1, Triggered: true, Detail: fmt.Sprintf("%d active sale deeds", e.ActiveSaleDeeds)}
	default:
		return Signal{Detail: "single active sale deed"}
	}
}

func BenamiProxy(e models.TitleEvidence) Signal {
	switch {
	case !e.Known:
		return Signal{Detail: "title not found in land records"}
	case e.BenamiSuspected:
		return Signal{Severity: 1, Triggered: true, Detail: "registered owner suspected to be a proxy"}
	default:
		return Signal{Detail: "no proxy ownership indicators"}
	}
}

// TitleIssues returns the details of the title signals that triggered.
func TitleIssues(e models.TitleEvidence) []string {
	issues := make([]string, 0, 3)
	for _, sig := range []Signal{BrokenTitleChain(e), DoubleSale(e), BenamiProxy(e)} {
		if sig.Triggered {
			issues = append(issues, sig.Detail)
		}
	}
	return issues
}

// Evaluate maps all evidence to a signal per factor.
func Evaluate(e models.Evidence, w PriceWindow) map[scoring.Factor]Signal {
	return map[scoring.Factor]Signal{
		scoring.FactorPriceAnomaly:     PriceAnomaly(e.Price, w),
		scoring.FactorForgedDocument:   ForgedDocument(e.Document),
		scoring.FactorSellerBehavior:   SellerBehavior(e.Seller),
		scoring.FactorBrokenTitleChain: BrokenTitleChain(e.Title),
		scoring.FactorDoubleSale:       DoubleSale(e.Title),
		scoring.FactorBenamiProxy:      BenamiProxy(e.Title),
	}
}

// Severities extracts the severity map ComputeFraudScore consumes.
func Severities(sigs map[scoring.Factor]Signal) map[scoring.Factor]float64 {
	out := make(map[scoring.Factor]float64, len(sigs))
	for f, s := range sigs {
		out[f] = s.Severity
	}
	return out
}

func clamp01(v float64) float64 {
	if v != v || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
