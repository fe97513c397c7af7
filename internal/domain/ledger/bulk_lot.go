package ledger

import (
	"time"

	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// BulkLotStatus describes the stock level of a bulk lot
type BulkLotStatus string

const (
	BulkLotStatusInStock  BulkLotStatus = "IN_STOCK"
	BulkLotStatusLowStock BulkLotStatus = "LOW_STOCK"
	BulkLotStatusNoStock  BulkLotStatus = "NO_STOCK"
)

// BulkLot is a received batch of raw stock before repacking.
// CurrentQuantity only moves through Debit/Credit, which are called by the
// allocation and reversal engines in the same transaction that mutates the
// retail lot counters.
type BulkLot struct {
	shared.BaseEntity
	shared.SoftDelete
	BatchNo         string
	SKU             string
	CostPerUnit     decimal.Decimal
	PricePerUnit    decimal.Decimal
	InitialQuantity int
	CurrentQuantity int
	Status          BulkLotStatus
	ProductID       int
	SupplierID      int
	ExpiryDate      *time.Time
}

// NewBulkLot creates a bulk lot from a receiving entry.
func NewBulkLot(batchNo, sku string, costPerUnit, pricePerUnit decimal.Decimal, quantity, productID, supplierID int, expiry *time.Time, actor string) (*BulkLot, error) {
	if batchNo == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Batch number is required")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Initial quantity must be positive")
	}
	return &BulkLot{
		BaseEntity:      shared.NewBaseEntity(actor),
		BatchNo:         batchNo,
		SKU:             sku,
		CostPerUnit:     costPerUnit,
		PricePerUnit:    pricePerUnit,
		InitialQuantity: quantity,
		CurrentQuantity: quantity,
		Status:          BulkLotStatusInStock,
		ProductID:       productID,
		SupplierID:      supplierID,
		ExpiryDate:      expiry,
	}, nil
}

// Debit removes units of bulk stock consumed by an allocation.
func (l *BulkLot) Debit(units int, actor string) error {
	if units < 0 {
		return shared.NewDomainError("INVALID_INPUT", "Debit units must not be negative")
	}
	if units > l.CurrentQuantity {
		return shared.NewDomainError("INSUFFICIENT_STOCK", "Insufficient inventory quantity")
	}
	l.CurrentQuantity -= units
	l.refreshStatus()
	l.Touch(actor)
	return nil
}

// Credit restores units of bulk stock released by a reversal.
// The current quantity never exceeds the initial quantity.
func (l *BulkLot) Credit(units int, actor string) error {
	if units < 0 {
		return shared.NewDomainError("INVALID_INPUT", "Credit units must not be negative")
	}
	if l.CurrentQuantity+units > l.InitialQuantity {
		return shared.NewDomainError("INVALID_STATE", "Restored quantity exceeds initial quantity")
	}
	l.CurrentQuantity += units
	l.refreshStatus()
	l.Touch(actor)
	return nil
}

// TotalSold returns how many units have left the lot.
func (l *BulkLot) TotalSold() int {
	return l.InitialQuantity - l.CurrentQuantity
}

// CostOf returns the capital value of the given number of bulk units.
func (l *BulkLot) CostOf(units int) decimal.Decimal {
	return l.CostPerUnit.Mul(decimal.NewFromInt(int64(units)))
}

func (l *BulkLot) refreshStatus() {
	switch {
	case l.CurrentQuantity == 0:
		l.Status = BulkLotStatusNoStock
	case l.CurrentQuantity*5 <= l.InitialQuantity:
		l.Status = BulkLotStatusLowStock
	default:
		l.Status = BulkLotStatusInStock
	}
}
