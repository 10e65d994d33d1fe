package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propaudit/internal/scoring"
)

func TestLoadEmbeddedDefault(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)

	assert.Len(t, c.Developers, 4)
	assert.Len(t, c.NRIChecklist.PrePurchase, 8)
	assert.Len(t, c.NRIChecklist.PostPurchase, 8)
	assert.Equal(t, scoring.DefaultRiskBands(), c.Fraud.Bands)
	assert.InDelta(t, 25.0, c.Fraud.Weights[scoring.FactorForgedDocument], 0.0001)

	tol, ceil, err := c.Fraud.PriceWindow()
	require.NoError(t, err)
	assert.Equal(t, "0.15", tol.String())
	assert.Equal(t, "0.5", ceil.String())
}

func TestLoadFromPath(t *testing.T) {
	doc := `
developers:
  - id: dev-9
    name: Test Builders
    audits:
      - {year: 2022, audit_score: 70}
fraud:
  weights: {price_anomaly: 1}
  bands: {medium: 10, high: 20, critical: 30}
  price_tolerance: "0.1"
  price_ceiling: "0.2"
`
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	require.Len(t, c.Developers, 1)
	assert.Equal(t, 70, c.Developers[0].Audits[0].AuditScore)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestParseRejectsInvalidCatalog(t *testing.T) {
	const fraud = `
fraud:
  weights: {price_anomaly: 1}
  bands: {medium: 40, high: 70, critical: 90}
  price_tolerance: "0.15"
  price_ceiling: "0.5"
`
	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "duplicate developer year",
			doc: `
developers:
  - id: DEV-1
    audits:
      - {year: 2024, audit_score: 80}
      - {year: 2024, audit_score: 81}
` + fraud,
		},
		{
			name: "duplicate developer id ignoring case",
			doc: `
developers:
  - id: DEV-1
  - id: dev-1
` + fraud,
		},
		{
			name: "audit score out of range",
			doc: `
developers:
  - id: DEV-1
    audits:
      - {year: 2024, audit_score: 101}
` + fraud,
		},
		{
			name: "duplicate checklist item across phases",
			doc: `
nri_checklist:
  pre_purchase:
    - {id: pan, name: PAN}
  post_purchase:
    - {id: pan, name: PAN again}
` + fraud,
		},
		{
			name: "bands out of order",
			doc: `
fraud:
  weights: {price_anomaly: 1}
  bands: {medium: 70, high: 40, critical: 90}
  price_tolerance: "0.15"
  price_ceiling: "0.5"
`,
		},
		{
			name: "zero weights",
			doc: `
fraud:
  weights: {price_anomaly: 0}
  bands: {medium: 40, high: 70, critical: 90}
  price_tolerance: "0.15"
  price_ceiling: "0.5"
`,
		},
		{
			name: "unknown factor",
			doc: `
fraud:
  weights: {astrology: 5}
  bands: {medium: 40, high: 70, critical: 90}
  price_tolerance: "0.15"
  price_ceiling: "0.5"
`,
		},
		{
			name: "price window inverted",
			doc: `
fraud:
  weights: {price_anomaly: 1}
  bands: {medium: 40, high: 70, critical: 90}
  price_tolerance: "0.5"
  price_ceiling: "0.15"
`,
		},
		{
			name: "malformed yaml",
			doc:  "developers: [",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}
