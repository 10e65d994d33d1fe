// Package catalog loads the read-only reference data the service runs with:
// developer audit records, NRI checklist templates, fraud scoring
// configuration and the registry fixtures that stand in for external
// collaborators. It is loaded once at startup and injected into services.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"propaudit/internal/scoring"
)

//go:embed default.yaml
var defaultCatalog []byte

// Catalog is the parsed reference data. Treat it as immutable after Load.
type Catalog struct {
	Developers   []Developer  `yaml:"developers"`
	NRIChecklist NRITemplates `yaml:"nri_checklist"`
	Fraud        FraudConfig  `yaml:"fraud"`
	Registry     Registry     `yaml:"registry"`
}

type Developer struct {
	ID       string        `yaml:"id"`
	Name     string        `yaml:"name"`
	Projects int           `yaml:"projects"`
	Audits   []AuditRecord `yaml:"audits"`
}

// AuditRecord is one annual RERA audit as filed. The score is supplied by
// the auditor; compliance status is derived downstream from the flags.
type AuditRecord struct {
	Year                    int    `yaml:"year"`
	AuditScore              int    `yaml:"audit_score"`
	Form7Submitted          bool   `yaml:"form7_submitted"`
	AuditedAccounts         bool   `yaml:"audited_accounts"`
	FundUtilizationCorrect  bool   `yaml:"fund_utilization_correct"`
	WithdrawalProportionate bool   `yaml:"withdrawal_proportionate"`
	Remarks                 string `yaml:"remarks"`
}

type NRITemplates struct {
	PrePurchase  []ChecklistTemplate `yaml:"pre_purchase"`
	PostPurchase []ChecklistTemplate `yaml:"post_purchase"`
}

type ChecklistTemplate struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Required    bool     `yaml:"required"`
	Documents   []string `yaml:"documents"`
}

type FraudConfig struct {
	Weights map[scoring.Factor]float64 `yaml:"weights"`
	Bands   scoring.RiskBands          `yaml:"bands"`
	// PriceTolerance is the relative deviation below which a declared price
	// is not suspicious; PriceCeiling is where severity saturates.
	PriceTolerance string `yaml:"price_tolerance"`
	PriceCeiling   string `yaml:"price_ceiling"`
}

// Registry holds fixtures keyed the way the external registries are queried.
type Registry struct {
	Properties []PropertyFixture `yaml:"properties"`
	Sellers    []SellerFixture   `yaml:"sellers"`
}

type PropertyFixture struct {
	PropertyID        string  `yaml:"property_id"`
	State             string  `yaml:"state"`
	DeclaredPrice     string  `yaml:"declared_price"`
	ReferencePrice    string  `yaml:"reference_price"`
	TitleChainBroken  bool    `yaml:"title_chain_broken"`
	ActiveSaleDeeds   int     `yaml:"active_sale_deeds"`
	BenamiSuspected   bool    `yaml:"benami_suspected"`
	ForgeryConfidence float64 `yaml:"forgery_confidence"`
}

type SellerFixture struct {
	OwnerName    string `yaml:"owner_name"`
	State        string `yaml:"state"`
	RecentSales  int    `yaml:"recent_sales"`
	DistressSale bool   `yaml:"distress_sale"`
}

// Load reads the catalog at path, or the embedded default when path is empty.
func Load(path string) (*Catalog, error) {
	data := defaultCatalog
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("catalog.Load: read %q: %w", path, err)
		}
		data = b
	}
	return Parse(data)
}

// Parse decodes and validates a catalog document.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("catalog.Parse: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("catalog.Parse: %w", err)
	}
	return &c, nil
}

// Validate checks the invariants services rely on.
func (c *Catalog) Validate() error {
	seenDev := make(map[string]bool, len(c.Developers))
	for _, d := range c.Developers {
		id := strings.ToUpper(strings.TrimSpace(d.ID))
		if id == "" {
			return fmt.Errorf("developer with empty id")
		}
		if seenDev[id] {
			return fmt.Errorf("duplicate developer %s", id)
		}
		seenDev[id] = true

		years := make(map[int]bool, len(d.Audits))
		for _, a := range d.Audits {
			if years[a.Year] {
				return fmt.Errorf("duplicate audit for %s in %d", id, a.Year)
			}
			years[a.Year] = true
			if a.AuditScore < 0 || a.AuditScore > 100 {
				return fmt.Errorf("audit score %d for %s/%d outside 0-100", a.AuditScore, id, a.Year)
			}
		}
	}

	if err := validateTemplates(c.NRIChecklist.PrePurchase, c.NRIChecklist.PostPurchase); err != nil {
		return err
	}

	if err := scoring.FraudWeights(c.Fraud.Weights).Validate(); err != nil {
		return err
	}
	if err := c.Fraud.Bands.Validate(); err != nil {
		return err
	}
	if _, _, err := c.Fraud.PriceWindow(); err != nil {
		return err
	}
	return nil
}

// PriceWindow parses the price anomaly thresholds. Tolerance must be
// non-negative and strictly below the ceiling.
func (f FraudConfig) PriceWindow() (tolerance, ceiling decimal.Decimal, err error) {
	tolerance, err = decimal.NewFromString(f.PriceTolerance)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("price_tolerance: %w", err)
	}
	ceiling, err = decimal.NewFromString(f.PriceCeiling)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("price_ceiling: %w", err)
	}
	if tolerance.IsNegative() || !tolerance.LessThan(ceiling) {
		return decimal.Zero, decimal.Zero, fmt.Errorf("price window requires 0 <= tolerance < ceiling, got %s/%s", tolerance, ceiling)
	}
	return tolerance, ceiling, nil
}

func validateTemplates(phases ...[]ChecklistTemplate) error {
	seen := map[string]bool{}
	for _, items := range phases {
		for _, item := range items {
			if item.ID == "" || item.Name == "" {
				return fmt.Errorf("checklist template requires id and name")
			}
			if seen[item.ID] {
				return fmt.Errorf("duplicate checklist item %q", item.ID)
			}
			seen[item.ID] = true
		}
	}
	return nil
}
