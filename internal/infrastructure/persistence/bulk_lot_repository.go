package persistence

import (
	"context"
	"errors"

	"github.com/retailpos/backend/internal/domain/ledger"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormBulkLotRepository implements BulkLotRepository using GORM
type GormBulkLotRepository struct {
	db *gorm.DB
}

// NewGormBulkLotRepository creates a new GormBulkLotRepository
func NewGormBulkLotRepository(db *gorm.DB) *GormBulkLotRepository {
	return &GormBulkLotRepository{db: db}
}

// FindByID finds a bulk lot by its ID, excluding soft-deleted rows
func (r *GormBulkLotRepository) FindByID(ctx context.Context, id int) (*ledger.BulkLot, error) {
	var model models.BulkLotModel
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

// Save creates or updates a bulk lot
func (r *GormBulkLotRepository) Save(ctx context.Context, lot *ledger.BulkLot) error {
	var model models.BulkLotModel
	model.FromDomain(lot)
	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		return classifyStorageError(err)
	}
	lot.ID = model.ID
	return nil
}

// Ensure GormBulkLotRepository implements BulkLotRepository
var _ ledger.BulkLotRepository = (*GormBulkLotRepository)(nil)
