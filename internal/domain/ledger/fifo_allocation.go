package ledger

import (
	"sort"

	"github.com/retailpos/backend/internal/domain/shared"
)

// LotDeduction is the planned deduction from a single retail lot.
type LotDeduction struct {
	RetailLotID    int
	BulkLotID      int
	AllocatedQty   int // retail units taken from the lot
	BulkUnits      int // bulk units debited (AllocatedQty * QuantityValue)
	RemainingInLot int
	FullyConsumed  bool
}

// AllocationPlan is the complete result of planning a FIFO allocation.
// Planning is pure: it never mutates the lots it inspects. ApplyAllocationPlan
// executes the plan against the live entities inside the caller's transaction.
type AllocationPlan struct {
	Sku            string
	Deductions     []LotDeduction
	TotalAllocated int
	RemainingQty   int
	FullyFulfilled bool
}

// PlanFifoAllocation selects retail lots oldest-first to satisfy requestedQty
// for a sku. Candidates are ordered by creation timestamp ascending with the
// lot ID as a deterministic tie-break; per lot the allocatable quantity is
// min(QuantityDisplayedToPOS, QuantityDisplayed).
func PlanFifoAllocation(sku string, requestedQty int, lots []*RetailLot) (*AllocationPlan, error) {
	if requestedQty <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Requested quantity must be positive")
	}

	candidates := make([]*RetailLot, 0, len(lots))
	for _, lot := range lots {
		if lot.IsDeleted() || lot.VariantSku != sku {
			continue
		}
		if lot.QuantityDisplayedToPOS <= 0 || lot.AvailableQty() <= 0 {
			continue
		}
		candidates = append(candidates, lot)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if !candidates[i].CreatedAt.Equal(candidates[j].CreatedAt) {
			return candidates[i].CreatedAt.Before(candidates[j].CreatedAt)
		}
		return candidates[i].ID < candidates[j].ID
	})

	plan := &AllocationPlan{
		Sku:          sku,
		Deductions:   make([]LotDeduction, 0, len(candidates)),
		RemainingQty: requestedQty,
	}

	for _, lot := range candidates {
		if plan.RemainingQty == 0 {
			break
		}
		available := lot.AllocatableQty()
		if available <= 0 {
			continue
		}
		allocate := available
		if plan.RemainingQty < allocate {
			allocate = plan.RemainingQty
		}
		plan.Deductions = append(plan.Deductions, LotDeduction{
			RetailLotID:    lot.ID,
			BulkLotID:      lot.BulkLotID,
			AllocatedQty:   allocate,
			BulkUnits:      allocate * lot.QuantityValue,
			RemainingInLot: available - allocate,
			FullyConsumed:  available == allocate,
		})
		plan.TotalAllocated += allocate
		plan.RemainingQty -= allocate
	}

	plan.FullyFulfilled = plan.RemainingQty == 0
	return plan, nil
}
