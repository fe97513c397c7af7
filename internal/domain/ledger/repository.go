package ledger

import "context"

// BulkLotRepository provides access to bulk lots.
type BulkLotRepository interface {
	// FindByID finds a bulk lot by ID. Soft-deleted lots are excluded.
	FindByID(ctx context.Context, id int) (*BulkLot, error)
	// Save creates or updates a bulk lot.
	Save(ctx context.Context, lot *BulkLot) error
}

// RetailLotRepository provides access to retail lots.
type RetailLotRepository interface {
	// FindByID finds a retail lot by ID. Soft-deleted lots are excluded.
	FindByID(ctx context.Context, id int) (*RetailLot, error)
	// FindAllocatable returns the non-deleted lots for a variant sku with
	// POS-visible stock and unsold quantity, ordered by (created_at, id)
	// ascending. Implementations must lock the returned rows for the
	// duration of the enclosing transaction so that concurrent allocations
	// for the same sku serialize.
	FindAllocatable(ctx context.Context, variantSku string) ([]*RetailLot, error)
	// Save creates or updates a retail lot.
	Save(ctx context.Context, lot *RetailLot) error
}

// CatalogItemRepository provides access to POS catalog items.
type CatalogItemRepository interface {
	// FindBySku finds the active catalog entry for a variant sku.
	FindBySku(ctx context.Context, sku string) (*CatalogItem, error)
	// Save creates or updates a catalog item.
	Save(ctx context.Context, item *CatalogItem) error
}

// AllocationLineRepository provides access to allocation lines.
type AllocationLineRepository interface {
	// FindByDetail returns the non-deleted allocation lines for a sale line.
	FindByDetail(ctx context.Context, transactionDetailID int) ([]*AllocationLine, error)
	// Create appends a new allocation line.
	Create(ctx context.Context, line *AllocationLine) error
	// Save updates an existing allocation line (voided flag, audit stamps).
	Save(ctx context.Context, line *AllocationLine) error
}

// CreditMemoRepository provides access to credit memos.
type CreditMemoRepository interface {
	// FindByID finds a credit memo by ID.
	FindByID(ctx context.Context, id int) (*CreditMemo, error)
	// SumActiveQtyByDetail sums the quantity of non-voided memos for a sale line.
	SumActiveQtyByDetail(ctx context.Context, transactionDetailID int) (int, error)
	// FindActiveByORNumber returns the first non-voided memo referencing a
	// receipt number, or ErrNotFound.
	FindActiveByORNumber(ctx context.Context, orNumber string) (*CreditMemo, error)
	// MaxSequence returns the highest numeric suffix in the CM series, 0 when empty.
	MaxSequence(ctx context.Context) (int, error)
	// Create appends a new credit memo.
	Create(ctx context.Context, memo *CreditMemo) error
	// Save updates an existing credit memo.
	Save(ctx context.Context, memo *CreditMemo) error
}

// SaleRepository provides access to channel-release sale records.
type SaleRepository interface {
	// Create appends a sale record.
	Create(ctx context.Context, sale *Sale) error
}

// DisplayEntryRepository provides access to display entries.
type DisplayEntryRepository interface {
	// FindByID finds a display entry by ID. Soft-deleted entries are excluded.
	FindByID(ctx context.Context, id int) (*DisplayEntry, error)
	// Create appends a display entry.
	Create(ctx context.Context, entry *DisplayEntry) error
	// Save updates an existing display entry.
	Save(ctx context.Context, entry *DisplayEntry) error
}

// TransactionRepository provides access to POS receipts and their lines.
type TransactionRepository interface {
	// FindHeaderByID finds a receipt with its details.
	FindHeaderByID(ctx context.Context, id int) (*TransactionHeader, error)
	// FindDetailByID finds a single receipt line.
	FindDetailByID(ctx context.Context, id int) (*TransactionDetail, error)
	// CreateHeader persists a new receipt together with its details,
	// assigning IDs to the header and every line.
	CreateHeader(ctx context.Context, header *TransactionHeader) error
	// SaveHeader updates an existing receipt header.
	SaveHeader(ctx context.Context, header *TransactionHeader) error
}

// AuditLogRepository appends audit entries.
type AuditLogRepository interface {
	// Append persists an audit entry in the current transaction.
	Append(ctx context.Context, entry *AuditLog) error
}
