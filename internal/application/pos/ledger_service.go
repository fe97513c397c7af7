package pos

import (
	"context"
	"errors"
	"fmt"

	"github.com/retailpos/backend/internal/domain/ledger"
	"github.com/retailpos/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// LedgerService implements the allocation and reversal engines. Every method
// operates on repositories scoped to the caller's transaction; the service
// itself holds no storage state, so one instance serves all transactions.
//
// Counter updates across BulkLot, RetailLot and CatalogItem always happen
// together inside one method call; nothing outside this service may mutate
// the quantity fields.
type LedgerService struct {
	logger *zap.Logger
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(logger *zap.Logger) *LedgerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LedgerService{logger: logger}
}

// AllocateFifo consumes retail lots oldest-first to satisfy requestedQty for
// a variant sku, recording one allocation line per lot touched against the
// given sale line. Fails with INSUFFICIENT_STOCK when the candidates are
// exhausted; the enclosing transaction must then discard all mutations.
func (s *LedgerService) AllocateFifo(ctx context.Context, repos TransactionalRepositories, transactionDetailID int, sku string, requestedQty int, actor string) ([]*ledger.AllocationLine, error) {
	if requestedQty <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Requested quantity must be positive")
	}

	lots, err := repos.RetailLots().FindAllocatable(ctx, sku)
	if err != nil {
		return nil, err
	}

	plan, err := ledger.PlanFifoAllocation(sku, requestedQty, lots)
	if err != nil {
		return nil, err
	}
	if !plan.FullyFulfilled {
		return nil, shared.NewDomainError("INSUFFICIENT_STOCK",
			fmt.Sprintf("Not enough stock for SKU %s. Remaining qty: %d", sku, plan.RemainingQty))
	}

	lotByID := make(map[int]*ledger.RetailLot, len(lots))
	for _, lot := range lots {
		lotByID[lot.ID] = lot
	}

	catalog, err := s.findCatalog(ctx, repos, sku)
	if err != nil {
		return nil, err
	}

	lines := make([]*ledger.AllocationLine, 0, len(plan.Deductions))
	for _, d := range plan.Deductions {
		lot := lotByID[d.RetailLotID]
		if err := lot.Allocate(d.AllocatedQty, actor); err != nil {
			return nil, err
		}
		if catalog != nil {
			catalog.RecordSale(d.AllocatedQty, actor)
		}

		// Bulk stock is debited with this lot's pack size, never a ratio
		// recorded elsewhere, so the two counters cannot drift apart.
		bulkLot, err := repos.BulkLots().FindByID(ctx, lot.BulkLotID)
		if err != nil {
			return nil, err
		}
		if err := bulkLot.Debit(d.BulkUnits, actor); err != nil {
			return nil, err
		}

		line := ledger.NewAllocationLine(transactionDetailID, lot.ID, d.AllocatedQty, actor)
		if err := repos.AllocationLines().Create(ctx, line); err != nil {
			return nil, err
		}
		if err := repos.RetailLots().Save(ctx, lot); err != nil {
			return nil, err
		}
		if err := repos.BulkLots().Save(ctx, bulkLot); err != nil {
			return nil, err
		}
		lines = append(lines, line)

		s.logger.Info("allocated retail lot",
			zap.String("sku", sku),
			zap.Int("retail_lot_id", lot.ID),
			zap.Int("allocated_qty", d.AllocatedQty),
			zap.Int("transaction_detail_id", transactionDetailID))
	}

	if catalog != nil {
		if err := repos.CatalogItems().Save(ctx, catalog); err != nil {
			return nil, err
		}
	}
	return lines, nil
}

// VoidTransactionDetail fully reverses every non-voided allocation line of a
// sale line: lot counters, catalog counters and bulk stock are restored and
// each line is flagged voided. Lines already voided are skipped, making the
// operation idempotent.
func (s *LedgerService) VoidTransactionDetail(ctx context.Context, repos TransactionalRepositories, transactionDetailID int, actor string) error {
	lines, err := repos.AllocationLines().FindByDetail(ctx, transactionDetailID)
	if err != nil {
		return err
	}
	for _, line := range lines {
		if line.IsDeleted() || line.Voided {
			continue
		}
		if err := s.restoreAllocation(ctx, repos, line, line.AllocatedQty, actor); err != nil {
			return err
		}
		line.MarkVoided(actor)
		if err := repos.AllocationLines().Save(ctx, line); err != nil {
			return err
		}
	}
	return nil
}

// PartialVoidForRefund restores refundQty units of a sale line's allocation.
// The cumulative non-voided credit-memo quantity plus refundQty must not
// exceed the allocated quantity of any line in scope; a line is flagged
// voided only when the cumulative quantity reaches its allocation.
func (s *LedgerService) PartialVoidForRefund(ctx context.Context, repos TransactionalRepositories, transactionDetailID int, refundQty int, actor string) error {
	if refundQty <= 0 {
		return shared.NewDomainError("INVALID_INPUT", "Refund quantity must be positive")
	}
	lines, err := repos.AllocationLines().FindByDetail(ctx, transactionDetailID)
	if err != nil {
		return err
	}
	existing, err := repos.CreditMemos().SumActiveQtyByDetail(ctx, transactionDetailID)
	if err != nil {
		return err
	}
	for _, line := range lines {
		if line.IsDeleted() {
			continue
		}
		total := existing + refundQty
		if total > line.AllocatedQty {
			return shared.ErrRefundExceedsAllocation
		}
		if err := s.restoreAllocation(ctx, repos, line, refundQty, actor); err != nil {
			return err
		}
		line.SetVoided(total, actor)
		if err := repos.AllocationLines().Save(ctx, line); err != nil {
			return err
		}
	}
	return nil
}

// RevertCreditMemo re-debits the quantities a refund had credited back and
// voids the memo. Broken-item memos wrote stock off instead of restoring it
// and cannot be reverted; an already-voided memo fails the same guard.
func (s *LedgerService) RevertCreditMemo(ctx context.Context, repos TransactionalRepositories, memo *ledger.CreditMemo, actor string) error {
	if err := memo.CanVoid(); err != nil {
		return err
	}
	lines, err := repos.AllocationLines().FindByDetail(ctx, memo.TransactionDetailID)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		return shared.NewDomainError("NOT_FOUND", "No allocation found for this credit memo")
	}
	existing, err := repos.CreditMemos().SumActiveQtyByDetail(ctx, memo.TransactionDetailID)
	if err != nil {
		return err
	}
	remaining := existing - memo.Qty
	if remaining < 0 {
		return shared.ErrRefundExceedsAllocation
	}
	for _, line := range lines {
		if line.IsDeleted() {
			continue
		}
		if err := s.redebitAllocation(ctx, repos, line, memo.Qty, actor); err != nil {
			return err
		}
		line.SetVoided(remaining, actor)
		if err := repos.AllocationLines().Save(ctx, line); err != nil {
			return err
		}
	}
	if err := memo.MarkVoided(actor); err != nil {
		return err
	}
	return repos.CreditMemos().Save(ctx, memo)
}

// RefundStillSellable restores the refunded quantity to available retail
// stock and issues a credit memo. The item stays in the POS catalog.
func (s *LedgerService) RefundStillSellable(ctx context.Context, repos TransactionalRepositories, detail *ledger.TransactionDetail, header *ledger.TransactionHeader, req RefundRequest, actor string) (*ledger.CreditMemo, error) {
	if err := s.PartialVoidForRefund(ctx, repos, detail.ID, req.Quantity, actor); err != nil {
		return nil, err
	}
	return s.addCreditMemo(ctx, repos, detail, header, req.Quantity, req.Reason, false, nil, actor)
}

// RefundBrokenItem restores the refunded quantity, then immediately writes it
// off: visibility shifts from the POS channel to the inventory channel, the
// quantity leaves the catalog, goes on display, and is released through the
// "Out Items" channel as a sale priced at cost. The credit memo references
// the write-off sale and is flagged broken.
func (s *LedgerService) RefundBrokenItem(ctx context.Context, repos TransactionalRepositories, detail *ledger.TransactionDetail, header *ledger.TransactionHeader, req RefundRequest, actor string) (*ledger.CreditMemo, error) {
	qty := req.Quantity

	lines, err := repos.AllocationLines().FindByDetail(ctx, detail.ID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, shared.NewDomainError("NOT_FOUND", "No allocation found for this sale line")
	}

	if err := s.PartialVoidForRefund(ctx, repos, detail.ID, qty, actor); err != nil {
		return nil, err
	}

	lot, err := repos.RetailLots().FindByID(ctx, lines[0].RetailLotID)
	if err != nil {
		return nil, err
	}

	catalog, err := s.findCatalog(ctx, repos, lot.VariantSku)
	if err != nil {
		return nil, err
	}
	if catalog != nil {
		catalog.RemoveDisplayed(qty, actor)
		if err := repos.CatalogItems().Save(ctx, catalog); err != nil {
			return nil, err
		}
	}

	if err := lot.ShiftPOSToInventory(qty, actor); err != nil {
		return nil, err
	}
	if err := repos.RetailLots().Save(ctx, lot); err != nil {
		return nil, err
	}

	// The quantity is already display-visible after the shift; the fresh
	// entry only records the act of re-displaying it for the write-off.
	entry := ledger.NewDisplayEntry(lot.ID, qty, actor)
	if err := repos.DisplayEntries().Create(ctx, entry); err != nil {
		return nil, err
	}

	reason := req.Reason
	if reason == "" {
		reason = "System generated: Item marked as defective or unsuitable for resale."
	}
	sale, err := s.MarkAsReleased(ctx, repos, entry.ID, qty, ledger.SalesChannelOutItems, reason, actor)
	if err != nil {
		return nil, err
	}

	return s.addCreditMemo(ctx, repos, detail, header, qty, req.Reason, true, &sale.ID, actor)
}

// VoidCreditMemo reverts a credit memo's counter restorations and voids the
// memo. Returns the voided memo for audit reporting.
func (s *LedgerService) VoidCreditMemo(ctx context.Context, repos TransactionalRepositories, creditMemoID int, actor string) (*ledger.CreditMemo, error) {
	memo, err := repos.CreditMemos().FindByID(ctx, creditMemoID)
	if err != nil {
		return nil, err
	}
	if err := s.RevertCreditMemo(ctx, repos, memo, actor); err != nil {
		return nil, err
	}
	return memo, nil
}

// MarkAsDisplayed moves qty undisplayed units of a retail lot into the
// inventory display channel and records a display entry.
func (s *LedgerService) MarkAsDisplayed(ctx context.Context, repos TransactionalRepositories, retailLotID, qty int, actor string) (*ledger.DisplayEntry, error) {
	lot, err := repos.RetailLots().FindByID(ctx, retailLotID)
	if err != nil {
		return nil, err
	}
	if err := lot.Display(qty, actor); err != nil {
		return nil, err
	}
	if err := repos.RetailLots().Save(ctx, lot); err != nil {
		return nil, err
	}
	entry := ledger.NewDisplayEntry(retailLotID, qty, actor)
	if err := repos.DisplayEntries().Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// MarkAsReleased releases qty displayed units through the given sales
// channel, recording a sale priced at the capital cost of the bulk units
// consumed. The "Out Items" channel uses this to book write-off losses.
func (s *LedgerService) MarkAsReleased(ctx context.Context, repos TransactionalRepositories, displayEntryID, qty int, channel, reason, actor string) (*ledger.Sale, error) {
	entry, err := repos.DisplayEntries().FindByID(ctx, displayEntryID)
	if err != nil {
		return nil, err
	}
	lot, err := repos.RetailLots().FindByID(ctx, entry.RetailLotID)
	if err != nil {
		return nil, err
	}
	bulkLot, err := repos.BulkLots().FindByID(ctx, lot.BulkLotID)
	if err != nil {
		return nil, err
	}

	requiredUnits := qty * lot.QuantityValue
	if bulkLot.CurrentQuantity < requiredUnits {
		return nil, shared.NewDomainError("INSUFFICIENT_STOCK", "Insufficient inventory quantity")
	}
	if err := entry.Release(qty, actor); err != nil {
		return nil, err
	}
	if err := lot.Release(qty, actor); err != nil {
		return nil, err
	}
	if err := bulkLot.Debit(requiredUnits, actor); err != nil {
		return nil, err
	}

	sale := ledger.NewSale(bulkLot.ID, lot.ID, entry.ID, qty, bulkLot.CostOf(requiredUnits), channel, reason, actor)
	if err := repos.Sales().Create(ctx, sale); err != nil {
		return nil, err
	}
	if err := repos.DisplayEntries().Save(ctx, entry); err != nil {
		return nil, err
	}
	if err := repos.RetailLots().Save(ctx, lot); err != nil {
		return nil, err
	}
	if err := repos.BulkLots().Save(ctx, bulkLot); err != nil {
		return nil, err
	}

	s.logger.Info("released displayed stock",
		zap.Int("display_entry_id", entry.ID),
		zap.Int("retail_lot_id", lot.ID),
		zap.Int("quantity", qty),
		zap.String("channel", channel))
	return sale, nil
}

// restoreAllocation applies the reversal counter math for qty units of one
// allocation line: lot POS/display counters back up, sold down, catalog
// mirrored, bulk stock credited using the lot's pack size.
func (s *LedgerService) restoreAllocation(ctx context.Context, repos TransactionalRepositories, line *ledger.AllocationLine, qty int, actor string) error {
	lot, err := repos.RetailLots().FindByID(ctx, line.RetailLotID)
	if err != nil {
		return err
	}
	if err := lot.RestoreAllocation(qty, actor); err != nil {
		return err
	}
	bulkLot, err := repos.BulkLots().FindByID(ctx, lot.BulkLotID)
	if err != nil {
		return err
	}
	if err := bulkLot.Credit(qty*lot.QuantityValue, actor); err != nil {
		return err
	}
	catalog, err := s.findCatalog(ctx, repos, lot.VariantSku)
	if err != nil {
		return err
	}
	if catalog != nil {
		catalog.RestoreSale(qty, actor)
		if err := repos.CatalogItems().Save(ctx, catalog); err != nil {
			return err
		}
	}
	if err := repos.RetailLots().Save(ctx, lot); err != nil {
		return err
	}
	return repos.BulkLots().Save(ctx, bulkLot)
}

// redebitAllocation is the inverse of restoreAllocation, used when a credit
// memo is voided and its refund must be taken back.
func (s *LedgerService) redebitAllocation(ctx context.Context, repos TransactionalRepositories, line *ledger.AllocationLine, qty int, actor string) error {
	lot, err := repos.RetailLots().FindByID(ctx, line.RetailLotID)
	if err != nil {
		return err
	}
	if err := lot.Allocate(qty, actor); err != nil {
		return err
	}
	bulkLot, err := repos.BulkLots().FindByID(ctx, lot.BulkLotID)
	if err != nil {
		return err
	}
	if err := bulkLot.Debit(qty*lot.QuantityValue, actor); err != nil {
		return err
	}
	catalog, err := s.findCatalog(ctx, repos, lot.VariantSku)
	if err != nil {
		return err
	}
	if catalog != nil {
		catalog.RecordSale(qty, actor)
		if err := repos.CatalogItems().Save(ctx, catalog); err != nil {
			return err
		}
	}
	if err := repos.RetailLots().Save(ctx, lot); err != nil {
		return err
	}
	return repos.BulkLots().Save(ctx, bulkLot)
}

// addCreditMemo issues the next memo in the CM series for a refund.
func (s *LedgerService) addCreditMemo(ctx context.Context, repos TransactionalRepositories, detail *ledger.TransactionDetail, header *ledger.TransactionHeader, qty int, reason string, isBroken bool, saleID *int, actor string) (*ledger.CreditMemo, error) {
	maxSeq, err := repos.CreditMemos().MaxSequence(ctx)
	if err != nil {
		return nil, err
	}
	memo, err := ledger.NewCreditMemo(maxSeq+1, detail, header, qty, reason, isBroken, saleID, actor)
	if err != nil {
		return nil, err
	}
	if err := repos.CreditMemos().Create(ctx, memo); err != nil {
		return nil, err
	}
	return memo, nil
}

// findCatalog looks up the catalog mirror for a sku. A missing entry is
// tolerated: lots sold through non-POS channels have no catalog row.
func (s *LedgerService) findCatalog(ctx context.Context, repos TransactionalRepositories, sku string) (*ledger.CatalogItem, error) {
	catalog, err := repos.CatalogItems().FindBySku(ctx, sku)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("no catalog entry for sku", zap.String("sku", sku))
			return nil, nil
		}
		return nil, err
	}
	return catalog, nil
}
