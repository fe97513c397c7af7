package ledger

import (
	"time"

	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// SalesChannelOutItems is the write-off channel: stock leaves circulation at
// cost, representing loss rather than revenue.
const SalesChannelOutItems = "Out Items"

// Sale records stock released through a non-POS channel. Write-off sales
// price TotalPrice from cost, not retail price.
type Sale struct {
	shared.BaseEntity
	shared.SoftDelete
	BulkLotID      int
	RetailLotID    int
	DisplayEntryID int
	Quantity       int
	TotalPrice     decimal.Decimal
	SalesChannel   string
	Reason         string
	SoldBy         string
	DateSold       time.Time
}

// NewSale records a release of displayed stock.
func NewSale(bulkLotID, retailLotID, displayEntryID, quantity int, totalPrice decimal.Decimal, channel, reason, actor string) *Sale {
	return &Sale{
		BaseEntity:     shared.NewBaseEntity(actor),
		BulkLotID:      bulkLotID,
		RetailLotID:    retailLotID,
		DisplayEntryID: displayEntryID,
		Quantity:       quantity,
		TotalPrice:     totalPrice,
		SalesChannel:   channel,
		Reason:         reason,
		SoldBy:         actor,
		DateSold:       time.Now(),
	}
}

// IsWriteOff reports whether this sale removed stock at cost.
func (s *Sale) IsWriteOff() bool {
	return s.SalesChannel == SalesChannelOutItems
}

// DisplayEntry records one act of putting retail-lot stock on display in the
// inventory channel. Release consumes from the entry until it is sold out.
type DisplayEntry struct {
	shared.BaseEntity
	shared.SoftDelete
	RetailLotID       int
	QuantityDisplayed int
	QuantitySold      int
	IsSoldOut         bool
	DisplayedBy       string
	DisplayedOn       time.Time
}

// NewDisplayEntry records qty units going on display.
func NewDisplayEntry(retailLotID, qty int, actor string) *DisplayEntry {
	return &DisplayEntry{
		BaseEntity:        shared.NewBaseEntity(actor),
		RetailLotID:       retailLotID,
		QuantityDisplayed: qty,
		DisplayedBy:       actor,
		DisplayedOn:       time.Now(),
	}
}

// Release consumes qty units from the entry.
func (d *DisplayEntry) Release(qty int, actor string) error {
	if qty <= 0 {
		return shared.NewDomainError("INVALID_INPUT", "Release quantity must be positive")
	}
	if d.QuantityDisplayed < qty {
		return shared.NewDomainError("INVALID_STATE", "Item to be sold is more than displayed items. Please check again.")
	}
	d.QuantityDisplayed -= qty
	d.QuantitySold += qty
	if d.QuantityDisplayed == 0 {
		d.IsSoldOut = true
	}
	d.Touch(actor)
	return nil
}
