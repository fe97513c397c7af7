package persistence

import (
	"context"
	"errors"

	"github.com/retailpos/backend/internal/domain/ledger"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCreditMemoRepository implements CreditMemoRepository using GORM
type GormCreditMemoRepository struct {
	db *gorm.DB
}

// NewGormCreditMemoRepository creates a new GormCreditMemoRepository
func NewGormCreditMemoRepository(db *gorm.DB) *GormCreditMemoRepository {
	return &GormCreditMemoRepository{db: db}
}

// FindByID finds a credit memo by its ID
func (r *GormCreditMemoRepository) FindByID(ctx context.Context, id int) (*ledger.CreditMemo, error) {
	var model models.CreditMemoModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, classifyStorageError(err)
	}
	return model.ToDomain(), nil
}

// SumActiveQtyByDetail sums the quantity of non-voided memos for a sale line
func (r *GormCreditMemoRepository) SumActiveQtyByDetail(ctx context.Context, transactionDetailID int) (int, error) {
	var total int
	if err := r.db.WithContext(ctx).
		Model(&models.CreditMemoModel{}).
		Select("COALESCE(SUM(qty), 0)").
		Where("transaction_detail_id = ? AND is_voided = FALSE", transactionDetailID).
		Scan(&total).Error; err != nil {
		return 0, classifyStorageError(err)
	}
	return total, nil
}

// FindActiveByORNumber returns the first non-voided memo referencing a receipt number
func (r *GormCreditMemoRepository) FindActiveByORNumber(ctx context.Context, orNumber string) (*ledger.CreditMemo, error) {
	var model models.CreditMemoModel
	if err := r.db.WithContext(ctx).
		Where("transaction_or_number = ? AND is_voided = FALSE", orNumber).
		Order("id ASC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, classifyStorageError(err)
	}
	return model.ToDomain(), nil
}

// MaxSequence returns the highest numeric suffix in the CM series, 0 when the
// table is empty. Read inside the issuing transaction so numbering stays
// gapless under the receipt-number unique index.
func (r *GormCreditMemoRepository) MaxSequence(ctx context.Context) (int, error) {
	var maxSeq int
	if err := r.db.WithContext(ctx).
		Model(&models.CreditMemoModel{}).
		Select("COALESCE(MAX(CAST(SUBSTRING(credit_memo_number FROM 4) AS INTEGER)), 0)").
		Scan(&maxSeq).Error; err != nil {
		return 0, classifyStorageError(err)
	}
	return maxSeq, nil
}

// Create appends a new credit memo
func (r *GormCreditMemoRepository) Create(ctx context.Context, memo *ledger.CreditMemo) error {
	var model models.CreditMemoModel
	model.FromDomain(memo)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return classifyStorageError(err)
	}
	memo.ID = model.ID
	return nil
}

// Save updates an existing credit memo
func (r *GormCreditMemoRepository) Save(ctx context.Context, memo *ledger.CreditMemo) error {
	var model models.CreditMemoModel
	model.FromDomain(memo)
	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		return classifyStorageError(err)
	}
	return nil
}

// Ensure GormCreditMemoRepository implements CreditMemoRepository
var _ ledger.CreditMemoRepository = (*GormCreditMemoRepository)(nil)
