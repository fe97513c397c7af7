package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBulkLot(t *testing.T) *BulkLot {
	t.Helper()
	lot, err := NewBulkLot("B001", "BULK-B001", decimal.RequireFromString("1.50"), decimal.RequireFromString("3.00"), 1000, 1, 1, nil, "tester")
	require.NoError(t, err)
	lot.ID = 1
	return lot
}

func newTestRetailLot(t *testing.T) *RetailLot {
	t.Helper()
	lot, err := NewRetailLot(newTestBulkLot(t), 1, "Rice 1kg", "pcs", decimal.RequireFromString("5.00"), 2, 100, "tester")
	require.NoError(t, err)
	return lot
}

func TestVariantSku(t *testing.T) {
	assert.Equal(t, "B001--Rice 1kg--2-pcs", VariantSku("B001", "Rice 1kg", 2, "pcs"))
}

func TestRetailLotChannelCounters(t *testing.T) {
	t.Run("display splits stock into the inventory channel", func(t *testing.T) {
		lot := newTestRetailLot(t)
		require.NoError(t, lot.Display(30, "tester"))
		assert.Equal(t, 30, lot.QuantityDisplayed)
		assert.Equal(t, 30, lot.QuantityDisplayedToInventory)
		assert.Equal(t, 0, lot.QuantityDisplayedToPOS)
	})

	t.Run("display beyond available stock fails", func(t *testing.T) {
		lot := newTestRetailLot(t)
		lot.SoldQty = 95
		assert.Error(t, lot.Display(6, "tester"))
	})

	t.Run("allocate and restore are inverse", func(t *testing.T) {
		lot := newTestRetailLot(t)
		lot.QuantityDisplayed = 20
		lot.QuantityDisplayedToPOS = 20

		require.NoError(t, lot.Allocate(8, "tester"))
		assert.Equal(t, 12, lot.QuantityDisplayedToPOS)
		assert.Equal(t, 8, lot.SoldQty)

		require.NoError(t, lot.RestoreAllocation(8, "tester"))
		assert.Equal(t, 20, lot.QuantityDisplayedToPOS)
		assert.Equal(t, 0, lot.SoldQty)
	})

	t.Run("allocate beyond the POS-visible stock fails", func(t *testing.T) {
		lot := newTestRetailLot(t)
		lot.QuantityDisplayed = 5
		lot.QuantityDisplayedToPOS = 5
		err := lot.Allocate(6, "tester")
		assert.Error(t, err)
		assert.Equal(t, 0, lot.SoldQty)
	})

	t.Run("restore floors sold quantity at zero", func(t *testing.T) {
		lot := newTestRetailLot(t)
		lot.SoldQty = 2
		require.NoError(t, lot.RestoreAllocation(5, "tester"))
		assert.Equal(t, 0, lot.SoldQty)
	})

	t.Run("shift keeps the display total", func(t *testing.T) {
		lot := newTestRetailLot(t)
		lot.QuantityDisplayed = 10
		lot.QuantityDisplayedToPOS = 10

		require.NoError(t, lot.ShiftPOSToInventory(4, "tester"))
		assert.Equal(t, 6, lot.QuantityDisplayedToPOS)
		assert.Equal(t, 4, lot.QuantityDisplayedToInventory)
		assert.Equal(t, 10, lot.QuantityDisplayed)

		assert.Error(t, lot.ShiftPOSToInventory(7, "tester"))
	})

	t.Run("release consumes from the inventory channel", func(t *testing.T) {
		lot := newTestRetailLot(t)
		require.NoError(t, lot.Display(10, "tester"))
		require.NoError(t, lot.Release(4, "tester"))
		assert.Equal(t, 6, lot.QuantityDisplayedToInventory)
		assert.Equal(t, 6, lot.QuantityDisplayed)
		assert.Equal(t, 4, lot.SoldQty)

		assert.Error(t, lot.Release(7, "tester"))
	})

	t.Run("invariant check catches diverged counters", func(t *testing.T) {
		lot := newTestRetailLot(t)
		lot.QuantityDisplayed = 5
		lot.QuantityDisplayedToPOS = 3
		lot.QuantityDisplayedToInventory = 1
		assert.Error(t, lot.CheckInvariants())
	})
}

func TestRetailLotAllocatableQty(t *testing.T) {
	lot := newTestRetailLot(t)
	lot.QuantityDisplayed = 10
	lot.QuantityDisplayedToPOS = 4
	lot.QuantityDisplayedToInventory = 6
	assert.Equal(t, 4, lot.AllocatableQty())
}

func TestBulkLotDebitCredit(t *testing.T) {
	lot := newTestBulkLot(t)

	require.NoError(t, lot.Debit(900, "tester"))
	assert.Equal(t, 100, lot.CurrentQuantity)
	assert.Equal(t, BulkLotStatusLowStock, lot.Status)

	assert.Error(t, lot.Debit(101, "tester"))

	require.NoError(t, lot.Debit(100, "tester"))
	assert.Equal(t, BulkLotStatusNoStock, lot.Status)

	require.NoError(t, lot.Credit(1000, "tester"))
	assert.Equal(t, BulkLotStatusInStock, lot.Status)
	assert.Error(t, lot.Credit(1, "tester"))
}

func TestBulkLotCostOf(t *testing.T) {
	lot := newTestBulkLot(t)
	assert.True(t, lot.CostOf(10).Equal(decimal.RequireFromString("15.00")))
}

func TestCreditMemoLifecycle(t *testing.T) {
	detail := &TransactionDetail{
		Name:         "Rice 1kg",
		Sku:          "B001--Rice 1kg--2-pcs",
		PricePerUnit: decimal.RequireFromString("5.00"),
	}
	detail.ID = 7
	header := &TransactionHeader{ORNumber: "OR-1001"}

	t.Run("numbering and totals", func(t *testing.T) {
		memo, err := NewCreditMemo(12, detail, header, 3, "damaged bag", false, nil, "tester")
		require.NoError(t, err)
		assert.Equal(t, "CM-000000012", memo.CreditMemoNumber)
		assert.Equal(t, "OR-1001", memo.TransactionORNumber)
		assert.Equal(t, 7, memo.TransactionDetailID)
		assert.True(t, memo.TotalAmount.Equal(decimal.RequireFromString("15.00")))
	})

	t.Run("void transitions once", func(t *testing.T) {
		memo, err := NewCreditMemo(1, detail, header, 1, "", false, nil, "tester")
		require.NoError(t, err)
		require.NoError(t, memo.MarkVoided("tester"))
		assert.True(t, memo.IsVoided)
		assert.Error(t, memo.MarkVoided("tester"))
	})

	t.Run("broken memos refuse voiding", func(t *testing.T) {
		saleID := 9
		memo, err := NewCreditMemo(1, detail, header, 1, "", true, &saleID, "tester")
		require.NoError(t, err)
		assert.Error(t, memo.CanVoid())
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		_, err := NewCreditMemo(1, detail, header, 0, "", false, nil, "tester")
		assert.Error(t, err)
	})
}

func TestDisplayEntryRelease(t *testing.T) {
	entry := NewDisplayEntry(1, 5, "tester")
	require.NoError(t, entry.Release(3, "tester"))
	assert.Equal(t, 2, entry.QuantityDisplayed)
	assert.False(t, entry.IsSoldOut)

	assert.Error(t, entry.Release(3, "tester"))

	require.NoError(t, entry.Release(2, "tester"))
	assert.True(t, entry.IsSoldOut)
}

func TestAllocationLineSetVoided(t *testing.T) {
	line := NewAllocationLine(1, 2, 10, "tester")
	line.SetVoided(4, "tester")
	assert.False(t, line.Voided)
	line.SetVoided(10, "tester")
	assert.True(t, line.Voided)
	line.SetVoided(4, "tester")
	assert.False(t, line.Voided)
}
