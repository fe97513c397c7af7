package ledger

import (
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CatalogItem is the POS-facing product entry a cashier sees. It mirrors the
// POS-visible subset of the retail lots sharing its sku; counters are
// aggregated across lots, not lot-specific.
type CatalogItem struct {
	shared.BaseEntity
	shared.SoftDelete
	Name         string
	Sku          string
	PricePerUnit decimal.Decimal
	QtyDisplayed int
	QtySold      int
	IsActive     bool
}

// NewCatalogItem creates a catalog entry for a variant sku.
func NewCatalogItem(name, sku string, pricePerUnit decimal.Decimal, actor string) (*CatalogItem, error) {
	if sku == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Sku is required")
	}
	return &CatalogItem{
		BaseEntity:   shared.NewBaseEntity(actor),
		Name:         name,
		Sku:          sku,
		PricePerUnit: pricePerUnit,
		IsActive:     true,
	}, nil
}

// RecordSale mirrors a lot allocation onto the aggregate counters.
func (c *CatalogItem) RecordSale(qty int, actor string) {
	c.QtySold += qty
	c.QtyDisplayed -= qty
	c.Touch(actor)
}

// RestoreSale mirrors a void or refund back onto the aggregate counters.
func (c *CatalogItem) RestoreSale(qty int, actor string) {
	c.QtySold -= qty
	c.QtyDisplayed += qty
	c.Touch(actor)
}

// RemoveDisplayed takes written-off units out of the POS aggregate. Both
// counters are floored at zero because the aggregate may lag the lots when
// several skus shared the entry historically.
func (c *CatalogItem) RemoveDisplayed(qty int, actor string) {
	c.QtyDisplayed -= qty
	if c.QtyDisplayed < 0 {
		c.QtyDisplayed = 0
	}
	c.QtySold -= qty
	if c.QtySold < 0 {
		c.QtySold = 0
	}
	c.Touch(actor)
}

// AddDisplayed pushes repacked stock into the POS channel.
func (c *CatalogItem) AddDisplayed(qty int, actor string) error {
	if qty <= 0 {
		return shared.NewDomainError("INVALID_INPUT", "Displayed quantity must be positive")
	}
	c.QtyDisplayed += qty
	c.Touch(actor)
	return nil
}
