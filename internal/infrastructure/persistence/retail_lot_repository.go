package persistence

import (
	"context"
	"errors"

	"github.com/retailpos/backend/internal/domain/ledger"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRetailLotRepository implements RetailLotRepository using GORM
type GormRetailLotRepository struct {
	db *gorm.DB
}

// NewGormRetailLotRepository creates a new GormRetailLotRepository
func NewGormRetailLotRepository(db *gorm.DB) *GormRetailLotRepository {
	return &GormRetailLotRepository{db: db}
}

// FindByID finds a retail lot by its ID, excluding soft-deleted rows
func (r *GormRetailLotRepository) FindByID(ctx context.Context, id int) (*ledger.RetailLot, error) {
	var model models.RetailLotModel
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

// FindAllocatable returns the allocation candidates for a variant sku in FIFO
// order. Rows are locked FOR UPDATE so concurrent allocations for the same
// sku serialize on the oldest lot instead of double-spending it.
func (r *GormRetailLotRepository) FindAllocatable(ctx context.Context, variantSku string) ([]*ledger.RetailLot, error) {
	var rows []models.RetailLotModel
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("variant_sku = ? AND deleted_at IS NULL", variantSku).
		Where("quantity_displayed_to_pos > 0 AND initial_qty > sold_qty").
		Order("created_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, classifyStorageError(err)
	}
	lots := make([]*ledger.RetailLot, 0, len(rows))
	for i := range rows {
		lots = append(lots, rows[i].ToDomain())
	}
	return lots, nil
}

// Save creates or updates a retail lot
func (r *GormRetailLotRepository) Save(ctx context.Context, lot *ledger.RetailLot) error {
	var model models.RetailLotModel
	model.FromDomain(lot)
	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		return classifyStorageError(err)
	}
	lot.ID = model.ID
	return nil
}

// Ensure GormRetailLotRepository implements RetailLotRepository
var _ ledger.RetailLotRepository = (*GormRetailLotRepository)(nil)
