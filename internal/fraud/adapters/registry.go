// Package adapters provides catalog-backed stand-ins for the external
// registries the fraud service consults.
package adapters

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"propaudit/internal/catalog"
	"propaudit/internal/fraud/models"
)

// CatalogRegistry answers every evidence port from catalog fixtures.
// Properties and sellers that are not on file yield evidence with
// Known=false, which scores as no risk for that factor.
type CatalogRegistry struct {
	properties map[string]propertyRecord
	sellers    map[string]catalog.SellerFixture
}

type propertyRecord struct {
	fixture   catalog.PropertyFixture
	declared  decimal.Decimal
	reference decimal.Decimal
	priced    bool
}

func NewCatalogRegistry(reg catalog.Registry) (*CatalogRegistry, error) {
	r := &CatalogRegistry{
		properties: make(map[string]propertyRecord, len(reg.Properties)),
		sellers:    make(map[string]catalog.SellerFixture, len(reg.Sellers)),
	}
	for _, p := range reg.Properties {
		rec := propertyRecord{fixture: p}
		if p.DeclaredPrice != "" && p.ReferencePrice != "" {
			declared, err := decimal.NewFromString(p.DeclaredPrice)
			if err != nil {
				return nil, fmt.Errorf("property %s declared_price: %w", p.PropertyID, err)
			}
			reference, err := decimal.NewFromString(p.ReferencePrice)
			if err != nil {
				return nil, fmt.Errorf("property %s reference_price: %w", p.PropertyID, err)
			}
			rec.declared, rec.reference, rec.priced = declared, reference, true
		}
		r.properties[propertyKey(p.PropertyID, p.State)] = rec
	}
	for _, s := range reg.Sellers {
		r.sellers[sellerKey(s.OwnerName, s.State)] = s
	}
	return r, nil
}

func propertyKey(propertyID, state string) string {
	return strings.ToUpper(strings.TrimSpace(propertyID)) + "|" + strings.ToLower(strings.TrimSpace(state))
}

func sellerKey(owner, state string) string {
	return strings.ToLower(strings.Join(strings.Fields(owner), " ")) + "|" + strings.ToLower(strings.TrimSpace(state))
}

func (r *CatalogRegistry) property(ctx context.Context, s models.Subject) (propertyRecord, bool, error) {
	if err := ctx.Err(); err != nil {
		return propertyRecord{}, false, err
	}
	rec, ok := r.properties[propertyKey(s.PropertyID, s.State)]
	return rec, ok, nil
}

func (r *CatalogRegistry) PriceEvidence(ctx context.Context, s models.Subject) (models.PriceEvidence, error) {
	rec, ok, err := r.property(ctx, s)
	if err != nil || !ok || !rec.priced {
		return models.PriceEvidence{}, err
	}
	return models.PriceEvidence{Known: true, Declared: rec.declared, Reference: rec.reference}, nil
}

func (r *CatalogRegistry) TitleEvidence(ctx context.Context, s models.Subject) (models.TitleEvidence, error) {
	rec, ok, err := r.property(ctx, s)
	if err != nil || !ok {
		return models.TitleEvidence{}, err
	}
	return models.TitleEvidence{
		Known:           true,
		ChainBroken:     rec.fixture.TitleChainBroken,
		ActiveSaleDeeds: rec.fixture.ActiveSaleDeeds,
		BenamiSuspected: rec.fixture.BenamiSuspected,
	}, nil
}

func (r *CatalogRegistry) DocumentEvidence(ctx context.Context, s models.Subject) (models.DocumentEvidence, error) {
	rec, ok, err := r.property(ctx, s)
	if err != nil || !ok {
		return models.DocumentEvidence{}, err
	}
	return models.DocumentEvidence{Known: true, ForgeryConfidence: rec.fixture.ForgeryConfidence}, nil
}

func (r *CatalogRegistry) SellerEvidence(ctx context.Context, s models.Subject) (models.SellerEvidence, error) {
	if err := ctx.Err(); err != nil {
		return models.SellerEvidence{}, err
	}
	f, ok := r.sellers[sellerKey(s.OwnerName, s.State)]
	if !ok {
		return models.SellerEvidence{}, nil
	}
	return models.SellerEvidence{Known: true, RecentSales: f.RecentSales, DistressSale: f.DistressSale}, nil
}
