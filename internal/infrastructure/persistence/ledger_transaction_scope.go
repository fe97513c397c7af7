package persistence

import (
	"context"
	"fmt"
	"strings"

	"github.com/retailpos/backend/internal/application/pos"
	"github.com/retailpos/backend/internal/domain/ledger"
	"github.com/retailpos/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
// It provides atomic execution of multiple repository operations.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos pos.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormTransactionalRepositories{tx: tx}
		return fn(repos)
	})
}

// gormTransactionalRepositories provides access to all repositories within a transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

func (r *gormTransactionalRepositories) BulkLots() ledger.BulkLotRepository {
	return NewGormBulkLotRepository(r.tx)
}

func (r *gormTransactionalRepositories) RetailLots() ledger.RetailLotRepository {
	return NewGormRetailLotRepository(r.tx)
}

func (r *gormTransactionalRepositories) CatalogItems() ledger.CatalogItemRepository {
	return NewGormCatalogItemRepository(r.tx)
}

func (r *gormTransactionalRepositories) AllocationLines() ledger.AllocationLineRepository {
	return NewGormAllocationLineRepository(r.tx)
}

func (r *gormTransactionalRepositories) CreditMemos() ledger.CreditMemoRepository {
	return NewGormCreditMemoRepository(r.tx)
}

func (r *gormTransactionalRepositories) Sales() ledger.SaleRepository {
	return NewGormSaleRepository(r.tx)
}

func (r *gormTransactionalRepositories) DisplayEntries() ledger.DisplayEntryRepository {
	return NewGormDisplayEntryRepository(r.tx)
}

func (r *gormTransactionalRepositories) Transactions() ledger.TransactionRepository {
	return NewGormTransactionRepository(r.tx)
}

func (r *gormTransactionalRepositories) AuditLogs() ledger.AuditLogRepository {
	return NewGormAuditLogRepository(r.tx)
}

// classifyStorageError wraps retryable database failures so callers can
// distinguish them from domain errors via errors.Is. Serialization failures,
// deadlocks and dropped connections are worth re-running the whole scope.
func classifyStorageError(err error) error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{
		"sqlstate 40001", // serialization_failure
		"sqlstate 40p01", // deadlock_detected
		"deadlock",
		"connection reset",
		"connection refused",
		"broken pipe",
		"bad connection",
	} {
		if strings.Contains(msg, marker) {
			return fmt.Errorf("%s: %w", err.Error(), shared.ErrTransientStorage)
		}
	}
	return err
}

// Ensure GormTransactionScope implements TransactionScope
var _ pos.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements TransactionalRepositories
var _ pos.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
