package models

import (
	"time"

	"github.com/retailpos/backend/internal/domain/shared"
)

// BaseModel provides common persistence fields for all models.
// Integer identity columns back the (created_at, id) FIFO ordering key.
type BaseModel struct {
	ID        int       `gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time `gorm:"not null;index"`
	CreatedBy string    `gorm:"size:128"`
	UpdatedAt time.Time `gorm:"not null"`
	UpdatedBy string    `gorm:"size:128"`
}

// ToDomain converts BaseModel to domain BaseEntity
func (m *BaseModel) ToDomain() shared.BaseEntity {
	return shared.BaseEntity{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		CreatedBy: m.CreatedBy,
		UpdatedAt: m.UpdatedAt,
		UpdatedBy: m.UpdatedBy,
	}
}

// FromDomainBaseEntity populates BaseModel from domain BaseEntity
func (m *BaseModel) FromDomainBaseEntity(e shared.BaseEntity) {
	m.ID = e.ID
	m.CreatedAt = e.CreatedAt
	m.CreatedBy = e.CreatedBy
	m.UpdatedAt = e.UpdatedAt
	m.UpdatedBy = e.UpdatedBy
}

// SoftDeleteModel provides the logical-delete pair. Read paths filter on
// deleted_at explicitly; rows are never removed.
type SoftDeleteModel struct {
	DeletedAt *time.Time `gorm:"index"`
	DeletedBy string     `gorm:"size:128"`
}

// ToDomain converts SoftDeleteModel to domain SoftDelete
func (m *SoftDeleteModel) ToDomain() shared.SoftDelete {
	return shared.SoftDelete{
		DeletedAt: m.DeletedAt,
		DeletedBy: m.DeletedBy,
	}
}

// FromDomainSoftDelete populates SoftDeleteModel from domain SoftDelete
func (m *SoftDeleteModel) FromDomainSoftDelete(d shared.SoftDelete) {
	m.DeletedAt = d.DeletedAt
	m.DeletedBy = d.DeletedBy
}
