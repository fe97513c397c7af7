package persistence

import (
	"context"

	"github.com/retailpos/backend/internal/domain/ledger"
	"github.com/retailpos/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormAllocationLineRepository implements AllocationLineRepository using GORM
type GormAllocationLineRepository struct {
	db *gorm.DB
}

// NewGormAllocationLineRepository creates a new GormAllocationLineRepository
func NewGormAllocationLineRepository(db *gorm.DB) *GormAllocationLineRepository {
	return &GormAllocationLineRepository{db: db}
}

// FindByDetail returns the non-deleted allocation lines for a sale line
func (r *GormAllocationLineRepository) FindByDetail(ctx context.Context, transactionDetailID int) ([]*ledger.AllocationLine, error) {
	var rows []models.AllocationLineModel
	if err := r.db.WithContext(ctx).
		Where("transaction_detail_id = ? AND deleted_at IS NULL", transactionDetailID).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, classifyStorageError(err)
	}
	lines := make([]*ledger.AllocationLine, 0, len(rows))
	for i := range rows {
		lines = append(lines, rows[i].ToDomain())
	}
	return lines, nil
}

// Create appends a new allocation line
func (r *GormAllocationLineRepository) Create(ctx context.Context, line *ledger.AllocationLine) error {
	var model models.AllocationLineModel
	model.FromDomain(line)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return classifyStorageError(err)
	}
	line.ID = model.ID
	return nil
}

// Save updates an existing allocation line
func (r *GormAllocationLineRepository) Save(ctx context.Context, line *ledger.AllocationLine) error {
	var model models.AllocationLineModel
	model.FromDomain(line)
	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		return classifyStorageError(err)
	}
	return nil
}

// Ensure GormAllocationLineRepository implements AllocationLineRepository
var _ ledger.AllocationLineRepository = (*GormAllocationLineRepository)(nil)
