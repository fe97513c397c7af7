package pos

import (
	"context"

	"github.com/retailpos/backend/internal/domain/ledger"
)

// TransactionScope provides transactional access to the ledger repositories.
// When a function is executed within a transaction scope, all repository
// operations are part of the same database transaction and commit or roll
// back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to every ledger repository within
// one transaction. All repositories returned share the same underlying
// database transaction, including the audit log, so ledger mutations and
// their audit entries always commit together.
type TransactionalRepositories interface {
	// BulkLots returns the bulk lot repository scoped to the current transaction
	BulkLots() ledger.BulkLotRepository
	// RetailLots returns the retail lot repository scoped to the current transaction
	RetailLots() ledger.RetailLotRepository
	// CatalogItems returns the catalog item repository scoped to the current transaction
	CatalogItems() ledger.CatalogItemRepository
	// AllocationLines returns the allocation line repository scoped to the current transaction
	AllocationLines() ledger.AllocationLineRepository
	// CreditMemos returns the credit memo repository scoped to the current transaction
	CreditMemos() ledger.CreditMemoRepository
	// Sales returns the sale repository scoped to the current transaction
	Sales() ledger.SaleRepository
	// DisplayEntries returns the display entry repository scoped to the current transaction
	DisplayEntries() ledger.DisplayEntryRepository
	// Transactions returns the receipt repository scoped to the current transaction
	Transactions() ledger.TransactionRepository
	// AuditLogs returns the audit log repository scoped to the current transaction
	AuditLogs() ledger.AuditLogRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for tests with in-memory repositories.
type NoOpTransactionScope struct {
	bulkLots        ledger.BulkLotRepository
	retailLots      ledger.RetailLotRepository
	catalogItems    ledger.CatalogItemRepository
	allocationLines ledger.AllocationLineRepository
	creditMemos     ledger.CreditMemoRepository
	sales           ledger.SaleRepository
	displayEntries  ledger.DisplayEntryRepository
	transactions    ledger.TransactionRepository
	auditLogs       ledger.AuditLogRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories.
func NewNoOpTransactionScope(
	bulkLots ledger.BulkLotRepository,
	retailLots ledger.RetailLotRepository,
	catalogItems ledger.CatalogItemRepository,
	allocationLines ledger.AllocationLineRepository,
	creditMemos ledger.CreditMemoRepository,
	sales ledger.SaleRepository,
	displayEntries ledger.DisplayEntryRepository,
	transactions ledger.TransactionRepository,
	auditLogs ledger.AuditLogRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		bulkLots:        bulkLots,
		retailLots:      retailLots,
		catalogItems:    catalogItems,
		allocationLines: allocationLines,
		creditMemos:     creditMemos,
		sales:           sales,
		displayEntries:  displayEntries,
		transactions:    transactions,
		auditLogs:       auditLogs,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

func (s *NoOpTransactionScope) BulkLots() ledger.BulkLotRepository         { return s.bulkLots }
func (s *NoOpTransactionScope) RetailLots() ledger.RetailLotRepository     { return s.retailLots }
func (s *NoOpTransactionScope) CatalogItems() ledger.CatalogItemRepository { return s.catalogItems }
func (s *NoOpTransactionScope) AllocationLines() ledger.AllocationLineRepository {
	return s.allocationLines
}
func (s *NoOpTransactionScope) CreditMemos() ledger.CreditMemoRepository { return s.creditMemos }
func (s *NoOpTransactionScope) Sales() ledger.SaleRepository             { return s.sales }
func (s *NoOpTransactionScope) DisplayEntries() ledger.DisplayEntryRepository {
	return s.displayEntries
}
func (s *NoOpTransactionScope) Transactions() ledger.TransactionRepository { return s.transactions }
func (s *NoOpTransactionScope) AuditLogs() ledger.AuditLogRepository       { return s.auditLogs }

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
