package persistence

import (
	"context"
	"errors"

	"github.com/retailpos/backend/internal/domain/ledger"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormTransactionRepository implements TransactionRepository using GORM
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a new GormTransactionRepository
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

// FindHeaderByID finds a receipt with its lines
func (r *GormTransactionRepository) FindHeaderByID(ctx context.Context, id int) (*ledger.TransactionHeader, error) {
	var model models.TransactionHeaderModel
	if err := r.db.WithContext(ctx).
		Preload("Details").
		Where("id = ? AND deleted_at IS NULL", id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, classifyStorageError(err)
	}
	return model.ToDomain(), nil
}

// FindDetailByID finds a single receipt line
func (r *GormTransactionRepository) FindDetailByID(ctx context.Context, id int) (*ledger.TransactionDetail, error) {
	var model models.TransactionDetailModel
	if err := r.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, classifyStorageError(err)
	}
	return model.ToDomain(), nil
}

// CreateHeader persists a new receipt together with its lines and writes the
// assigned IDs back onto the domain entities.
func (r *GormTransactionRepository) CreateHeader(ctx context.Context, header *ledger.TransactionHeader) error {
	var model models.TransactionHeaderModel
	model.FromDomain(header)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return classifyStorageError(err)
	}
	header.ID = model.ID
	for i := range model.Details {
		header.Details[i].ID = model.Details[i].ID
		header.Details[i].TransactionHeaderID = model.ID
	}
	return nil
}

// SaveHeader updates an existing receipt header without touching its lines
func (r *GormTransactionRepository) SaveHeader(ctx context.Context, header *ledger.TransactionHeader) error {
	var model models.TransactionHeaderModel
	model.FromDomain(header)
	model.Details = nil
	if err := r.db.WithContext(ctx).Omit("Details").Save(&model).Error; err != nil {
		return classifyStorageError(err)
	}
	return nil
}

// Ensure GormTransactionRepository implements TransactionRepository
var _ ledger.TransactionRepository = (*GormTransactionRepository)(nil)
