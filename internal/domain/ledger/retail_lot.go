package ledger

import (
	"fmt"

	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// RetailLot is a repacked, sellable quantity derived from a bulk lot.
// It carries four counters: SoldQty plus the three channel-visibility fields.
// QuantityDisplayed = QuantityDisplayedToPOS + QuantityDisplayedToInventory
// must hold after every mutation; every mutator returns an error instead of
// leaving a counter out of range.
type RetailLot struct {
	shared.BaseEntity
	shared.SoftDelete
	BulkLotID                    int
	ProductID                    int
	ProductName                  string
	UnitOfMeasure                string
	PricePerUnit                 decimal.Decimal
	QuantityValue                int // bulk units consumed per retail unit
	InitialQty                   int
	SoldQty                      int
	QuantityDisplayed            int
	QuantityDisplayedToPOS       int
	QuantityDisplayedToInventory int
	VariantSku                   string
}

// NewRetailLot creates a retail lot from a repack of the given bulk lot.
func NewRetailLot(bulkLot *BulkLot, productID int, productName, unit string, pricePerUnit decimal.Decimal, quantityValue, initialQty int, actor string) (*RetailLot, error) {
	if bulkLot == nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Bulk lot is required")
	}
	if quantityValue <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Quantity value must be positive")
	}
	if initialQty <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Initial quantity must be positive")
	}
	lot := &RetailLot{
		BaseEntity:    shared.NewBaseEntity(actor),
		BulkLotID:     bulkLot.ID,
		ProductID:     productID,
		ProductName:   productName,
		UnitOfMeasure: unit,
		PricePerUnit:  pricePerUnit,
		QuantityValue: quantityValue,
		InitialQty:    initialQty,
	}
	lot.VariantSku = VariantSku(bulkLot.BatchNo, productName, quantityValue, unit)
	return lot, nil
}

// VariantSku derives the variant identity string for a repacked lot:
// batch, product, pack size and unit of measure.
func VariantSku(batchNo, productName string, quantityValue int, unit string) string {
	return fmt.Sprintf("%s--%s--%d-%s", batchNo, productName, quantityValue, unit)
}

// AvailableQty returns units not yet sold.
func (r *RetailLot) AvailableQty() int {
	return r.InitialQty - r.SoldQty
}

// AllocatableQty returns the units a POS sale may take from this lot.
// Only stock visible to both the POS channel and the display total counts.
func (r *RetailLot) AllocatableQty() int {
	if r.QuantityDisplayedToPOS < r.QuantityDisplayed {
		return r.QuantityDisplayedToPOS
	}
	return r.QuantityDisplayed
}

// Allocate consumes qty units from POS-visible stock for a sale.
func (r *RetailLot) Allocate(qty int, actor string) error {
	if qty <= 0 {
		return shared.NewDomainError("INVALID_INPUT", "Allocation quantity must be positive")
	}
	if qty > r.AllocatableQty() {
		return shared.NewDomainError("INSUFFICIENT_STOCK", fmt.Sprintf("Lot %d has only %d unit(s) available to POS", r.ID, r.AllocatableQty()))
	}
	r.QuantityDisplayedToPOS -= qty
	r.QuantityDisplayed -= qty
	r.SoldQty += qty
	r.Touch(actor)
	return r.CheckInvariants()
}

// RestoreAllocation is the inverse of Allocate, used by void and refund.
// SoldQty is floored at zero, matching the reversal semantics of the ledger.
func (r *RetailLot) RestoreAllocation(qty int, actor string) error {
	if qty <= 0 {
		return shared.NewDomainError("INVALID_INPUT", "Restore quantity must be positive")
	}
	r.QuantityDisplayedToPOS += qty
	r.QuantityDisplayed += qty
	r.SoldQty -= qty
	if r.SoldQty < 0 {
		r.SoldQty = 0
	}
	r.Touch(actor)
	return r.CheckInvariants()
}

// ShiftPOSToInventory moves qty units of visibility from the POS channel to
// the inventory channel. The display total is unchanged.
func (r *RetailLot) ShiftPOSToInventory(qty int, actor string) error {
	if qty <= 0 {
		return shared.NewDomainError("INVALID_INPUT", "Shift quantity must be positive")
	}
	if qty > r.QuantityDisplayedToPOS {
		return shared.NewDomainError("INVALID_STATE", "Shift quantity exceeds POS-visible stock")
	}
	r.QuantityDisplayedToPOS -= qty
	r.QuantityDisplayedToInventory += qty
	r.Touch(actor)
	return r.CheckInvariants()
}

// Display moves qty undisplayed units into inventory-channel visibility.
func (r *RetailLot) Display(qty int, actor string) error {
	available := r.AvailableQty()
	newTotal := r.QuantityDisplayed + qty
	if available <= 0 || qty <= 0 || newTotal > available {
		return shared.NewDomainError("INVALID_INPUT", "Unable to mark items as displayed. Please verify that the quantity does not exceed the available stock.")
	}
	r.QuantityDisplayedToInventory += qty
	r.QuantityDisplayed = newTotal
	r.Touch(actor)
	return r.CheckInvariants()
}

// Release takes qty units out of inventory-channel display and records them
// as sold. Used by the write-off channel and direct inventory sales.
func (r *RetailLot) Release(qty int, actor string) error {
	if qty <= 0 {
		return shared.NewDomainError("INVALID_INPUT", "Release quantity must be positive")
	}
	if r.SoldQty+qty > r.InitialQty {
		return shared.NewDomainError("INVALID_STATE", "Cannot sell more than the available repacked quantity.")
	}
	if qty > r.QuantityDisplayedToInventory {
		return shared.NewDomainError("INVALID_STATE", "Release quantity exceeds inventory-visible stock")
	}
	r.QuantityDisplayedToInventory -= qty
	r.QuantityDisplayed -= qty
	r.SoldQty += qty
	r.Touch(actor)
	return r.CheckInvariants()
}

// CheckInvariants verifies the counter relationships of the lot.
func (r *RetailLot) CheckInvariants() error {
	if r.QuantityDisplayed != r.QuantityDisplayedToPOS+r.QuantityDisplayedToInventory {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Lot %d display counters diverged: %d != %d + %d", r.ID, r.QuantityDisplayed, r.QuantityDisplayedToPOS, r.QuantityDisplayedToInventory))
	}
	if r.SoldQty > r.InitialQty {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Lot %d sold quantity %d exceeds initial %d", r.ID, r.SoldQty, r.InitialQty))
	}
	if r.SoldQty+r.QuantityDisplayed > r.InitialQty {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Lot %d sold+displayed %d exceeds initial %d", r.ID, r.SoldQty+r.QuantityDisplayed, r.InitialQty))
	}
	if r.QuantityDisplayedToPOS < 0 || r.QuantityDisplayedToInventory < 0 || r.QuantityDisplayed < 0 || r.SoldQty < 0 {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Lot %d has a negative counter", r.ID))
	}
	return nil
}

// TotalSales returns the revenue recorded against this lot.
func (r *RetailLot) TotalSales() decimal.Decimal {
	return r.PricePerUnit.Mul(decimal.NewFromInt(int64(r.SoldQty)))
}
