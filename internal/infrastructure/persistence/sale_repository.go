package persistence

import (
	"context"

	"github.com/retailpos/backend/internal/domain/ledger"
	"github.com/retailpos/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormSaleRepository implements SaleRepository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// Create appends a sale record
func (r *GormSaleRepository) Create(ctx context.Context, sale *ledger.Sale) error {
	var model models.SaleModel
	model.FromDomain(sale)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return classifyStorageError(err)
	}
	sale.ID = model.ID
	return nil
}

// Ensure GormSaleRepository implements SaleRepository
var _ ledger.SaleRepository = (*GormSaleRepository)(nil)
