package pos

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/retailpos/backend/internal/domain/ledger"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// flakyScope fails the first n executions with a transient error, then
// delegates to the real scope.
type flakyScope struct {
	inner    TransactionScope
	failures int
	calls    int
}

func (s *flakyScope) Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error {
	s.calls++
	if s.calls <= s.failures {
		return fmt.Errorf("deadlock detected: %w", shared.ErrTransientStorage)
	}
	return s.inner.Execute(ctx, fn)
}

func newTestCoordinator(scope TransactionScope) *Coordinator {
	retry := RetryConfig{MaxAttempts: 3, BaseDelay: time.Millisecond}
	return NewCoordinator(scope, NewLedgerService(zap.NewNop()), retry, zap.NewNop())
}

func cartFor(lot *ledger.RetailLot, qty int) CompleteSaleRequest {
	return CompleteSaleRequest{
		ORNumber:        "OR-5005",
		TransactionDate: time.Date(2026, 3, 2, 14, 30, 0, 0, time.UTC),
		PaymentMethod:   "CASH",
		TotalAmount:     decimal.RequireFromString("50.00"),
		AmountTendered:  decimal.RequireFromString("100.00"),
		ChangeAmount:    decimal.RequireFromString("50.00"),
		CashierName:     "Ana",
		TerminalID:      "T-01",
		Cart: []SaleLineRequest{
			{
				Name:          lot.ProductName,
				Qty:           qty,
				PricePerUnit:  decimal.RequireFromString("5.00"),
				Sku:           lot.VariantSku,
				IsRegularItem: true,
			},
			{
				Name:         "Senior discount",
				PricePerUnit: decimal.RequireFromString("-2.50"),
				IsDiscount:   true,
			},
		},
	}
}

func TestCoordinatorCompleteSale(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	t.Run("persists the receipt, allocates regular lines and audits", func(t *testing.T) {
		f := newFixture()
		bulk := seedBulkLot(t, f, "B001", 1000, "1.50")
		lot := seedRetailLot(t, f, bulk, "Rice 1kg", 2, 100, 20, 0, base)
		seedCatalogItem(t, f, lot.VariantSku, 20)
		c := newTestCoordinator(f.scope)

		header, err := c.CompleteSale(ctx, cartFor(lot, 10), testActor)
		require.NoError(t, err)
		require.NotZero(t, header.ID)
		require.Len(t, header.Details, 2)

		lines, err := f.allocationLines.FindByDetail(ctx, header.Details[0].ID)
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Equal(t, 10, lines[0].AllocatedQty)

		// discount line drives no allocation
		lines, err = f.allocationLines.FindByDetail(ctx, header.Details[1].ID)
		require.NoError(t, err)
		assert.Empty(t, lines)

		assert.Equal(t, 10, lot.QuantityDisplayedToPOS)
		assert.Equal(t, 1000-20, bulk.CurrentQuantity)

		require.Len(t, f.auditLogs.entries, 1)
		assert.Equal(t, "Create", f.auditLogs.entries[0].Action)
		assert.Equal(t, "OR-5005", f.auditLogs.entries[0].EntityID)
	})

	t.Run("insufficient stock surfaces and does not audit", func(t *testing.T) {
		f := newFixture()
		bulk := seedBulkLot(t, f, "B001", 1000, "1.50")
		lot := seedRetailLot(t, f, bulk, "Rice 1kg", 2, 100, 5, 0, base)
		c := newTestCoordinator(f.scope)

		_, err := c.CompleteSale(ctx, cartFor(lot, 10), testActor)
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
		assert.Empty(t, f.auditLogs.entries)
	})

	t.Run("validates the request before opening a transaction", func(t *testing.T) {
		f := newFixture()
		c := newTestCoordinator(f.scope)

		_, err := c.CompleteSale(ctx, CompleteSaleRequest{}, testActor)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)

		_, err = c.CompleteSale(ctx, CompleteSaleRequest{ORNumber: "OR-1"}, testActor)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)

		req := CompleteSaleRequest{ORNumber: "OR-1", Cart: []SaleLineRequest{{IsRegularItem: true, Qty: 0}}}
		_, err = c.CompleteSale(ctx, req, testActor)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}

func TestCoordinatorVoidSale(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	newCompletedSale := func(t *testing.T) (*fixture, *Coordinator, *ledger.TransactionHeader, *ledger.RetailLot, *ledger.BulkLot) {
		f := newFixture()
		bulk := seedBulkLot(t, f, "B001", 1000, "1.50")
		lot := seedRetailLot(t, f, bulk, "Rice 1kg", 2, 100, 20, 0, base)
		seedCatalogItem(t, f, lot.VariantSku, 20)
		c := newTestCoordinator(f.scope)
		header, err := c.CompleteSale(ctx, cartFor(lot, 10), testActor)
		require.NoError(t, err)
		return f, c, header, lot, bulk
	}

	t.Run("restores stock and marks the receipt voided", func(t *testing.T) {
		f, c, header, lot, bulk := newCompletedSale(t)

		require.NoError(t, c.VoidSale(ctx, header.ID, testActor))
		assert.True(t, header.IsVoided)
		assert.Equal(t, 20, lot.QuantityDisplayedToPOS)
		assert.Equal(t, 0, lot.SoldQty)
		assert.Equal(t, 1000, bulk.CurrentQuantity)

		require.Len(t, f.auditLogs.entries, 2)
		assert.Equal(t, "Void", f.auditLogs.entries[1].Action)
	})

	t.Run("voiding twice fails", func(t *testing.T) {
		_, c, header, _, _ := newCompletedSale(t)
		require.NoError(t, c.VoidSale(ctx, header.ID, testActor))
		assert.ErrorIs(t, c.VoidSale(ctx, header.ID, testActor), shared.ErrAlreadyVoided)
	})

	t.Run("refuses while a non-voided credit memo references the receipt", func(t *testing.T) {
		_, c, header, _, _ := newCompletedSale(t)

		memo, err := c.IssueRefund(ctx, RefundRequest{
			TransactionDetailID: header.Details[0].ID,
			Quantity:            2,
			Reason:              "changed mind",
		}, testActor)
		require.NoError(t, err)

		err = c.VoidSale(ctx, header.ID, testActor)
		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrInvalidState)
		assert.Contains(t, err.Error(), memo.CreditMemoNumber)
		assert.False(t, header.IsVoided)

		// once the memo is voided the sale can be voided
		_, err = c.VoidCreditMemo(ctx, memo.ID, testActor)
		require.NoError(t, err)
		assert.NoError(t, c.VoidSale(ctx, header.ID, testActor))
	})

	t.Run("unknown receipt fails with not found", func(t *testing.T) {
		f := newFixture()
		c := newTestCoordinator(f.scope)
		assert.ErrorIs(t, c.VoidSale(ctx, 404, testActor), shared.ErrNotFound)
	})
}

func TestCoordinatorIssueRefund(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	t.Run("resolves the receipt from the line when the header id is omitted", func(t *testing.T) {
		f := newFixture()
		bulk := seedBulkLot(t, f, "B001", 1000, "1.50")
		lot := seedRetailLot(t, f, bulk, "Rice 1kg", 2, 100, 20, 0, base)
		seedCatalogItem(t, f, lot.VariantSku, 20)
		c := newTestCoordinator(f.scope)
		header, err := c.CompleteSale(ctx, cartFor(lot, 10), testActor)
		require.NoError(t, err)

		memo, err := c.IssueRefund(ctx, RefundRequest{
			TransactionDetailID: header.Details[0].ID,
			Quantity:            3,
		}, testActor)
		require.NoError(t, err)
		assert.Equal(t, header.ORNumber, memo.TransactionORNumber)

		require.Len(t, f.auditLogs.entries, 2)
		assert.Equal(t, "CreditMemo", f.auditLogs.entries[1].EntityName)
	})

	t.Run("broken refunds go through the write-off path", func(t *testing.T) {
		f := newFixture()
		bulk := seedBulkLot(t, f, "B001", 1000, "1.50")
		lot := seedRetailLot(t, f, bulk, "Rice 1kg", 2, 100, 20, 0, base)
		seedCatalogItem(t, f, lot.VariantSku, 20)
		c := newTestCoordinator(f.scope)
		header, err := c.CompleteSale(ctx, cartFor(lot, 10), testActor)
		require.NoError(t, err)

		memo, err := c.IssueRefund(ctx, RefundRequest{
			TransactionDetailID: header.Details[0].ID,
			Quantity:            2,
			IsBroken:            true,
		}, testActor)
		require.NoError(t, err)
		assert.True(t, memo.IsBroken)
		require.NotNil(t, memo.SaleID)
		assert.Equal(t, 1000-20, bulk.CurrentQuantity)
	})

	t.Run("rejects non-positive quantities", func(t *testing.T) {
		f := newFixture()
		c := newTestCoordinator(f.scope)
		_, err := c.IssueRefund(ctx, RefundRequest{TransactionDetailID: 1, Quantity: 0}, testActor)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("unknown line fails with not found", func(t *testing.T) {
		f := newFixture()
		c := newTestCoordinator(f.scope)
		_, err := c.IssueRefund(ctx, RefundRequest{TransactionDetailID: 404, Quantity: 1}, testActor)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestCoordinatorRetry(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	t.Run("retries transient storage errors until success", func(t *testing.T) {
		f := newFixture()
		bulk := seedBulkLot(t, f, "B001", 1000, "1.50")
		lot := seedRetailLot(t, f, bulk, "Rice 1kg", 2, 100, 20, 0, base)
		seedCatalogItem(t, f, lot.VariantSku, 20)
		flaky := &flakyScope{inner: f.scope, failures: 2}
		c := newTestCoordinator(flaky)

		header, err := c.CompleteSale(ctx, cartFor(lot, 10), testActor)
		require.NoError(t, err)
		assert.NotZero(t, header.ID)
		assert.Equal(t, 3, flaky.calls)
	})

	t.Run("gives up after the configured attempts", func(t *testing.T) {
		f := newFixture()
		flaky := &flakyScope{inner: f.scope, failures: 10}
		c := newTestCoordinator(flaky)

		err := c.VoidTransactionDetail(ctx, 1, testActor)
		assert.ErrorIs(t, err, shared.ErrTransientStorage)
		assert.Equal(t, 3, flaky.calls)
	})

	t.Run("domain errors are not retried", func(t *testing.T) {
		f := newFixture()
		flaky := &flakyScope{inner: f.scope, failures: 0}
		c := newTestCoordinator(flaky)

		_, err := c.AllocateFifo(ctx, 1, "missing-sku", 5, testActor)
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
		assert.Equal(t, 1, flaky.calls)
	})
}

func TestCoordinatorDisplayPassthroughs(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	f := newFixture()
	bulk := seedBulkLot(t, f, "B001", 1000, "1.50")
	lot := seedRetailLot(t, f, bulk, "Rice 1kg", 2, 100, 0, 0, base)
	c := newTestCoordinator(f.scope)

	entry, err := c.MarkAsDisplayed(ctx, lot.ID, 6, testActor)
	require.NoError(t, err)
	assert.Equal(t, 6, lot.QuantityDisplayedToInventory)

	sale, err := c.MarkAsReleased(ctx, entry.ID, 6, ledger.SalesChannelOutItems, "expired", testActor)
	require.NoError(t, err)
	assert.Equal(t, 6, sale.Quantity)
	assert.Equal(t, 1000-12, bulk.CurrentQuantity)
	assert.Equal(t, 6, lot.SoldQty)
}
