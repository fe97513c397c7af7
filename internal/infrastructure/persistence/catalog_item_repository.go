package persistence

import (
	"context"
	"errors"

	"github.com/retailpos/backend/internal/domain/ledger"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCatalogItemRepository implements CatalogItemRepository using GORM
type GormCatalogItemRepository struct {
	db *gorm.DB
}

// NewGormCatalogItemRepository creates a new GormCatalogItemRepository
func NewGormCatalogItemRepository(db *gorm.DB) *GormCatalogItemRepository {
	return &GormCatalogItemRepository{db: db}
}

// FindBySku finds the active catalog entry for a variant sku
func (r *GormCatalogItemRepository) FindBySku(ctx context.Context, sku string) (*ledger.CatalogItem, error) {
	var model models.CatalogItemModel
	if err := r.db.WithContext(ctx).
		Where("sku = ? AND deleted_at IS NULL", sku).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, classifyStorageError(err)
	}
	return model.ToDomain(), nil
}

// Save creates or updates a catalog item
func (r *GormCatalogItemRepository) Save(ctx context.Context, item *ledger.CatalogItem) error {
	var model models.CatalogItemModel
	model.FromDomain(item)
	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		return classifyStorageError(err)
	}
	item.ID = model.ID
	return nil
}

// Ensure GormCatalogItemRepository implements CatalogItemRepository
var _ ledger.CatalogItemRepository = (*GormCatalogItemRepository)(nil)
