package pos

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/retailpos/backend/internal/domain/ledger"
	"github.com/retailpos/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// RetryConfig bounds the retry loop around transient storage failures.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

// DefaultRetryConfig retries twice more after the first failure with
// exponential backoff.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{MaxAttempts: 3, BaseDelay: 100 * time.Millisecond}
}

// Coordinator is the application-facing entry point for checkout, voiding,
// refunds and display-channel stock movements. Each public method runs the
// whole operation in one transaction scope, appends its audit entry inside
// the same scope, and retries the scope on transient storage errors. Domain
// errors are never retried.
type Coordinator struct {
	scope  TransactionScope
	engine *LedgerService
	retry  RetryConfig
	logger *zap.Logger
}

// NewCoordinator creates a Coordinator over the given transaction scope.
func NewCoordinator(scope TransactionScope, engine *LedgerService, retry RetryConfig, logger *zap.Logger) *Coordinator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if retry.MaxAttempts <= 0 {
		retry.MaxAttempts = 1
	}
	return &Coordinator{scope: scope, engine: engine, retry: retry, logger: logger}
}

// CompleteSale persists a receipt and allocates stock for every regular line.
// Any allocation failure rolls the whole receipt back.
func (c *Coordinator) CompleteSale(ctx context.Context, req CompleteSaleRequest, actor string) (*ledger.TransactionHeader, error) {
	if req.ORNumber == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "OR number is required")
	}
	if len(req.Cart) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Cart must contain at least one line")
	}
	for _, line := range req.Cart {
		if line.IsRegularItem && line.Qty <= 0 {
			return nil, shared.NewDomainError("INVALID_INPUT", "Line quantity must be positive")
		}
	}

	header := &ledger.TransactionHeader{
		BaseEntity:        shared.NewBaseEntity(actor),
		ORNumber:          req.ORNumber,
		TransactionDate:   req.TransactionDate,
		PaymentMethod:     req.PaymentMethod,
		RegularDiscount:   req.RegularDiscount,
		StatutoryDiscount: req.StatutoryDiscount,
		VATIncluded:       req.VATIncluded,
		VATExcluded:       req.VATExcluded,
		TotalAmount:       req.TotalAmount,
		AmountTendered:    req.AmountTendered,
		ChangeAmount:      req.ChangeAmount,
		CashierName:       req.CashierName,
		TerminalID:        req.TerminalID,
	}
	for _, line := range req.Cart {
		header.Details = append(header.Details, ledger.TransactionDetail{
			BaseEntity:    shared.NewBaseEntity(actor),
			Name:          line.Name,
			Qty:           line.Qty,
			PricePerUnit:  line.PricePerUnit,
			Sku:           line.Sku,
			IsRegularItem: line.IsRegularItem,
			IsDiscount:    line.IsDiscount,
		})
	}

	err := c.execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.Transactions().CreateHeader(ctx, header); err != nil {
			return err
		}
		for i := range header.Details {
			detail := &header.Details[i]
			if !detail.DrivesAllocation() {
				continue
			}
			if _, err := c.engine.AllocateFifo(ctx, repos, detail.ID, detail.Sku, detail.Qty, actor); err != nil {
				return err
			}
		}
		return repos.AuditLogs().Append(ctx, ledger.NewAuditLog(
			"Create", "TransactionHeader", header.ORNumber,
			fmt.Sprintf("Completed sale %s with %d line(s)", header.ORNumber, len(header.Details)),
			actor))
	})
	if err != nil {
		return nil, err
	}
	c.logger.Info("sale completed", zap.String("or_number", header.ORNumber), zap.String("cashier", req.CashierName))
	return header, nil
}

// VoidSale reverses every line of a receipt and marks the receipt voided.
// Refuses when the receipt is already voided or when a non-voided credit memo
// references its OR number; such memos must be voided first.
func (c *Coordinator) VoidSale(ctx context.Context, transactionHeaderID int, actor string) error {
	return c.execute(ctx, func(repos TransactionalRepositories) error {
		header, err := repos.Transactions().FindHeaderByID(ctx, transactionHeaderID)
		if err != nil {
			return err
		}
		if header.IsVoided {
			return shared.ErrAlreadyVoided
		}
		memo, err := repos.CreditMemos().FindActiveByORNumber(ctx, header.ORNumber)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return err
		}
		if memo != nil {
			return shared.NewDomainError("INVALID_STATE",
				fmt.Sprintf("Cannot void transaction %s: credit memo %s must be voided first", header.ORNumber, memo.CreditMemoNumber))
		}
		for i := range header.Details {
			detail := &header.Details[i]
			if !detail.DrivesAllocation() {
				continue
			}
			if err := c.engine.VoidTransactionDetail(ctx, repos, detail.ID, actor); err != nil {
				return err
			}
		}
		if err := header.MarkVoided(actor); err != nil {
			return err
		}
		if err := repos.Transactions().SaveHeader(ctx, header); err != nil {
			return err
		}
		return repos.AuditLogs().Append(ctx, ledger.NewAuditLog(
			"Void", "TransactionHeader", header.ORNumber,
			fmt.Sprintf("Voided sale %s", header.ORNumber),
			actor))
	})
}

// IssueRefund refunds part or all of one receipt line, dispatching to the
// still-sellable or broken-item path, and returns the issued credit memo.
func (c *Coordinator) IssueRefund(ctx context.Context, req RefundRequest, actor string) (*ledger.CreditMemo, error) {
	if req.Quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Refund quantity must be positive")
	}
	var memo *ledger.CreditMemo
	err := c.execute(ctx, func(repos TransactionalRepositories) error {
		detail, err := repos.Transactions().FindDetailByID(ctx, req.TransactionDetailID)
		if err != nil {
			return err
		}
		headerID := req.TransactionHeaderID
		if headerID == 0 {
			headerID = detail.TransactionHeaderID
		}
		header, err := repos.Transactions().FindHeaderByID(ctx, headerID)
		if err != nil {
			return err
		}
		if req.IsBroken {
			memo, err = c.engine.RefundBrokenItem(ctx, repos, detail, header, req, actor)
		} else {
			memo, err = c.engine.RefundStillSellable(ctx, repos, detail, header, req, actor)
		}
		if err != nil {
			return err
		}
		return repos.AuditLogs().Append(ctx, ledger.NewAuditLog(
			"Create", "CreditMemo", memo.CreditMemoNumber,
			fmt.Sprintf("Issued credit memo %s for %d x %s on %s", memo.CreditMemoNumber, memo.Qty, memo.Sku, header.ORNumber),
			actor))
	})
	if err != nil {
		return nil, err
	}
	c.logger.Info("credit memo issued",
		zap.String("credit_memo_number", memo.CreditMemoNumber),
		zap.Bool("broken", memo.IsBroken))
	return memo, nil
}

// VoidCreditMemo takes back the refund a memo granted and voids the memo.
func (c *Coordinator) VoidCreditMemo(ctx context.Context, creditMemoID int, actor string) (*ledger.CreditMemo, error) {
	var memo *ledger.CreditMemo
	err := c.execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		memo, err = c.engine.VoidCreditMemo(ctx, repos, creditMemoID, actor)
		if err != nil {
			return err
		}
		return repos.AuditLogs().Append(ctx, ledger.NewAuditLog(
			"Void", "CreditMemo", memo.CreditMemoNumber,
			fmt.Sprintf("Voided credit memo %s", memo.CreditMemoNumber),
			actor))
	})
	if err != nil {
		return nil, err
	}
	return memo, nil
}

// AllocateFifo allocates stock for a sale line outside the checkout flow,
// e.g. when a receipt line is amended.
func (c *Coordinator) AllocateFifo(ctx context.Context, transactionDetailID int, sku string, qty int, actor string) ([]*ledger.AllocationLine, error) {
	var lines []*ledger.AllocationLine
	err := c.execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		lines, err = c.engine.AllocateFifo(ctx, repos, transactionDetailID, sku, qty, actor)
		return err
	})
	if err != nil {
		return nil, err
	}
	return lines, nil
}

// VoidTransactionDetail reverses a single receipt line.
func (c *Coordinator) VoidTransactionDetail(ctx context.Context, transactionDetailID int, actor string) error {
	return c.execute(ctx, func(repos TransactionalRepositories) error {
		return c.engine.VoidTransactionDetail(ctx, repos, transactionDetailID, actor)
	})
}

// MarkAsDisplayed moves retail-lot stock into the inventory display channel.
func (c *Coordinator) MarkAsDisplayed(ctx context.Context, retailLotID, qty int, actor string) (*ledger.DisplayEntry, error) {
	var entry *ledger.DisplayEntry
	err := c.execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		entry, err = c.engine.MarkAsDisplayed(ctx, repos, retailLotID, qty, actor)
		return err
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// MarkAsReleased releases displayed stock through a sales channel.
func (c *Coordinator) MarkAsReleased(ctx context.Context, displayEntryID, qty int, channel, reason string, actor string) (*ledger.Sale, error) {
	var sale *ledger.Sale
	err := c.execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		sale, err = c.engine.MarkAsReleased(ctx, repos, displayEntryID, qty, channel, reason, actor)
		return err
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// execute runs fn in the transaction scope, retrying only transient storage
// failures. Each retry re-runs the whole scope, so fn must not capture state
// mutated by a previous attempt outside the repositories.
func (c *Coordinator) execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error {
	var err error
	for attempt := 1; attempt <= c.retry.MaxAttempts; attempt++ {
		err = c.scope.Execute(ctx, fn)
		if err == nil || !errors.Is(err, shared.ErrTransientStorage) {
			return err
		}
		if attempt == c.retry.MaxAttempts {
			break
		}
		delay := c.retry.BaseDelay << (attempt - 1)
		c.logger.Warn("transient storage error, retrying",
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
			zap.Error(err))
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}
