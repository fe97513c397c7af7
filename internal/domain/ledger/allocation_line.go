package ledger

import (
	"github.com/retailpos/backend/internal/domain/shared"
)

// AllocationLine records how much of one retail lot satisfied one sale line.
// A single sale line may be satisfied by several allocation lines when FIFO
// consumption spills over lots. Immutable once created except for the voided
// flag and audit stamps.
type AllocationLine struct {
	shared.BaseEntity
	shared.SoftDelete
	TransactionDetailID int
	RetailLotID         int
	AllocatedQty        int
	Voided              bool
}

// NewAllocationLine records a FIFO deduction against a retail lot.
func NewAllocationLine(transactionDetailID, retailLotID, allocatedQty int, actor string) *AllocationLine {
	return &AllocationLine{
		BaseEntity:          shared.NewBaseEntity(actor),
		TransactionDetailID: transactionDetailID,
		RetailLotID:         retailLotID,
		AllocatedQty:        allocatedQty,
	}
}

// MarkVoided flags the line fully reversed.
func (a *AllocationLine) MarkVoided(actor string) {
	a.Voided = true
	a.Touch(actor)
}

// SetVoided recomputes the voided flag from the cumulative refunded quantity.
// A line is voided exactly when the non-voided credit-memo quantity against
// its detail equals the allocated quantity.
func (a *AllocationLine) SetVoided(cumulativeRefunded int, actor string) {
	a.Voided = cumulativeRefunded == a.AllocatedQty
	a.Touch(actor)
}
