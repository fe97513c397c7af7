package persistence

import (
	"context"
	"errors"

	"github.com/retailpos/backend/internal/domain/ledger"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormDisplayEntryRepository implements DisplayEntryRepository using GORM
type GormDisplayEntryRepository struct {
	db *gorm.DB
}

// NewGormDisplayEntryRepository creates a new GormDisplayEntryRepository
func NewGormDisplayEntryRepository(db *gorm.DB) *GormDisplayEntryRepository {
	return &GormDisplayEntryRepository{db: db}
}

// FindByID finds a display entry by its ID, excluding soft-deleted rows
func (r *GormDisplayEntryRepository) FindByID(ctx context.Context, id int) (*ledger.DisplayEntry, error) {
	var model models.DisplayEntryModel
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

// Create appends a display entry
func (r *GormDisplayEntryRepository) Create(ctx context.Context, entry *ledger.DisplayEntry) error {
	var model models.DisplayEntryModel
	model.FromDomain(entry)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return classifyStorageError(err)
	}
	entry.ID = model.ID
	return nil
}

// Save updates an existing display entry
func (r *GormDisplayEntryRepository) Save(ctx context.Context, entry *ledger.DisplayEntry) error {
	var model models.DisplayEntryModel
	model.FromDomain(entry)
	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		return classifyStorageError(err)
	}
	return nil
}

// Ensure GormDisplayEntryRepository implements DisplayEntryRepository
var _ ledger.DisplayEntryRepository = (*GormDisplayEntryRepository)(nil)
