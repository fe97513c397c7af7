package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/retailpos/backend/internal/application/pos"
	"github.com/retailpos/backend/internal/domain/ledger"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return db, mock
}

func TestGormTransactionScopeExecute(t *testing.T) {
	ctx := context.Background()

	t.Run("commits when the function succeeds", func(t *testing.T) {
		db, mock := newMockDB(t)
		scope := NewGormTransactionScope(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO "audit_logs"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectCommit()

		err := scope.Execute(ctx, func(repos pos.TransactionalRepositories) error {
			return repos.AuditLogs().Append(ctx, ledger.NewAuditLog("Create", "TransactionHeader", "OR-1", "test", "tester"))
		})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when the function fails", func(t *testing.T) {
		db, mock := newMockDB(t)
		scope := NewGormTransactionScope(db)

		mock.ExpectBegin()
		mock.ExpectRollback()

		sentinel := errors.New("boom")
		err := scope.Execute(ctx, func(pos.TransactionalRepositories) error {
			return sentinel
		})
		assert.ErrorIs(t, err, sentinel)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("repositories share the transaction connection", func(t *testing.T) {
		db, mock := newMockDB(t)
		scope := NewGormTransactionScope(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT .* FROM "retail_lots" .*FOR UPDATE`).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "created_at", "variant_sku", "quantity_displayed_to_pos", "quantity_displayed", "initial_qty", "sold_qty", "quantity_value",
			}).AddRow(1, time.Now(), "B001--Rice 1kg--2-pcs", 5, 5, 100, 0, 2))
		mock.ExpectCommit()

		err := scope.Execute(ctx, func(repos pos.TransactionalRepositories) error {
			lots, err := repos.RetailLots().FindAllocatable(ctx, "B001--Rice 1kg--2-pcs")
			if err != nil {
				return err
			}
			assert.Len(t, lots, 1)
			return nil
		})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestClassifyStorageError(t *testing.T) {
	t.Run("retryable failures map to the transient sentinel", func(t *testing.T) {
		for _, msg := range []string{
			"ERROR: deadlock detected (SQLSTATE 40P01)",
			"ERROR: could not serialize access (SQLSTATE 40001)",
			"driver: bad connection",
			"read tcp: connection reset by peer",
		} {
			err := classifyStorageError(errors.New(msg))
			assert.ErrorIs(t, err, shared.ErrTransientStorage, msg)
		}
	})

	t.Run("other errors pass through unchanged", func(t *testing.T) {
		plain := errors.New("duplicate key value violates unique constraint")
		assert.Equal(t, plain, classifyStorageError(plain))
		assert.Nil(t, classifyStorageError(nil))
	})
}
