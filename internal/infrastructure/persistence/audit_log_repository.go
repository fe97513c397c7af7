package persistence

import (
	"context"

	"github.com/retailpos/backend/internal/domain/ledger"
	"github.com/retailpos/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormAuditLogRepository implements AuditLogRepository using GORM
type GormAuditLogRepository struct {
	db *gorm.DB
}

// NewGormAuditLogRepository creates a new GormAuditLogRepository
func NewGormAuditLogRepository(db *gorm.DB) *GormAuditLogRepository {
	return &GormAuditLogRepository{db: db}
}

// Append persists an audit entry in the current transaction
func (r *GormAuditLogRepository) Append(ctx context.Context, entry *ledger.AuditLog) error {
	var model models.AuditLogModel
	model.FromDomain(entry)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return classifyStorageError(err)
	}
	entry.ID = model.ID
	return nil
}

// Ensure GormAuditLogRepository implements AuditLogRepository
var _ ledger.AuditLogRepository = (*GormAuditLogRepository)(nil)
