package ledger

import (
	"testing"
	"time"

	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lotForPlan(id int, sku string, quantityValue, initial, sold, toPOS, toInv int, createdAt time.Time) *RetailLot {
	lot := &RetailLot{
		BaseEntity:                   shared.NewBaseEntity("tester"),
		BulkLotID:                    1,
		ProductName:                  "Rice 1kg",
		UnitOfMeasure:                "pcs",
		PricePerUnit:                 decimal.RequireFromString("5.00"),
		QuantityValue:                quantityValue,
		InitialQty:                   initial,
		SoldQty:                      sold,
		QuantityDisplayed:            toPOS + toInv,
		QuantityDisplayedToPOS:       toPOS,
		QuantityDisplayedToInventory: toInv,
		VariantSku:                   sku,
	}
	lot.ID = id
	lot.CreatedAt = createdAt
	return lot
}

func TestPlanFifoAllocation(t *testing.T) {
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	const sku = "B001--Rice 1kg--2-pcs"

	t.Run("orders candidates by creation time then id", func(t *testing.T) {
		lots := []*RetailLot{
			lotForPlan(3, sku, 2, 50, 0, 5, 0, base.Add(2*time.Hour)),
			lotForPlan(2, sku, 2, 50, 0, 5, 0, base),
			lotForPlan(1, sku, 2, 50, 0, 5, 0, base),
		}

		plan, err := PlanFifoAllocation(sku, 12, lots)
		require.NoError(t, err)
		require.True(t, plan.FullyFulfilled)
		require.Len(t, plan.Deductions, 3)
		assert.Equal(t, 1, plan.Deductions[0].RetailLotID)
		assert.Equal(t, 2, plan.Deductions[1].RetailLotID)
		assert.Equal(t, 3, plan.Deductions[2].RetailLotID)
		assert.Equal(t, []int{5, 5, 2}, []int{
			plan.Deductions[0].AllocatedQty,
			plan.Deductions[1].AllocatedQty,
			plan.Deductions[2].AllocatedQty,
		})
	})

	t.Run("planning never mutates the lots", func(t *testing.T) {
		lot := lotForPlan(1, sku, 2, 50, 10, 8, 0, base)
		_, err := PlanFifoAllocation(sku, 5, []*RetailLot{lot})
		require.NoError(t, err)
		assert.Equal(t, 10, lot.SoldQty)
		assert.Equal(t, 8, lot.QuantityDisplayedToPOS)
	})

	t.Run("reports the shortfall when stock runs out", func(t *testing.T) {
		lots := []*RetailLot{lotForPlan(1, sku, 2, 50, 0, 5, 0, base)}
		plan, err := PlanFifoAllocation(sku, 9, lots)
		require.NoError(t, err)
		assert.False(t, plan.FullyFulfilled)
		assert.Equal(t, 5, plan.TotalAllocated)
		assert.Equal(t, 4, plan.RemainingQty)
	})

	t.Run("bulk units scale with the lot pack size", func(t *testing.T) {
		lots := []*RetailLot{lotForPlan(1, sku, 3, 50, 0, 5, 0, base)}
		plan, err := PlanFifoAllocation(sku, 4, lots)
		require.NoError(t, err)
		require.Len(t, plan.Deductions, 1)
		assert.Equal(t, 12, plan.Deductions[0].BulkUnits)
		assert.False(t, plan.Deductions[0].FullyConsumed)
		assert.Equal(t, 1, plan.Deductions[0].RemainingInLot)
	})

	t.Run("filters other skus, deleted and undisplayable lots", func(t *testing.T) {
		deleted := lotForPlan(1, sku, 2, 50, 0, 5, 0, base)
		deleted.MarkDeleted("tester")
		lots := []*RetailLot{
			deleted,
			lotForPlan(2, "other-sku", 2, 50, 0, 5, 0, base),
			lotForPlan(3, sku, 2, 50, 0, 0, 4, base),  // inventory channel only
			lotForPlan(4, sku, 2, 50, 50, 0, 0, base), // sold out
			lotForPlan(5, sku, 2, 50, 0, 5, 0, base.Add(time.Hour)),
		}

		plan, err := PlanFifoAllocation(sku, 3, lots)
		require.NoError(t, err)
		require.Len(t, plan.Deductions, 1)
		assert.Equal(t, 5, plan.Deductions[0].RetailLotID)
	})

	t.Run("rejects non-positive requests", func(t *testing.T) {
		_, err := PlanFifoAllocation(sku, 0, nil)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
		_, err = PlanFifoAllocation(sku, -1, nil)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}
