package shared

import "time"

// Entity is the base interface for all domain entities
type Entity interface {
	GetID() int
	GetCreatedAt() time.Time
	GetUpdatedAt() time.Time
}

// BaseEntity provides common fields for all entities.
// Ledger rows use integer identity columns; the (CreatedAt, ID) pair is the
// FIFO ordering key, so IDs must be monotonically assigned by storage.
type BaseEntity struct {
	ID        int
	CreatedAt time.Time
	CreatedBy string
	UpdatedAt time.Time
	UpdatedBy string
}

// GetID returns the entity ID
func (e *BaseEntity) GetID() int {
	return e.ID
}

// GetCreatedAt returns the creation timestamp
func (e *BaseEntity) GetCreatedAt() time.Time {
	return e.CreatedAt
}

// GetUpdatedAt returns the last update timestamp
func (e *BaseEntity) GetUpdatedAt() time.Time {
	return e.UpdatedAt
}

// Touch stamps the entity as updated by the given actor.
func (e *BaseEntity) Touch(actor string) {
	e.UpdatedAt = time.Now()
	e.UpdatedBy = actor
}

// NewBaseEntity creates a new base entity recorded against the given actor.
// The ID is assigned by storage on first save.
func NewBaseEntity(actor string) BaseEntity {
	now := time.Now()
	return BaseEntity{
		CreatedAt: now,
		CreatedBy: actor,
		UpdatedAt: now,
		UpdatedBy: actor,
	}
}

// SoftDelete marks an entity as logically deleted.
// Ledger read paths filter on DeletedAt explicitly; rows are never removed.
type SoftDelete struct {
	DeletedAt *time.Time
	DeletedBy string
}

// IsDeleted returns true if the entity has been soft-deleted
func (d *SoftDelete) IsDeleted() bool {
	return d.DeletedAt != nil
}

// MarkDeleted stamps the soft-delete pair with the acting user.
func (d *SoftDelete) MarkDeleted(actor string) {
	now := time.Now()
	d.DeletedAt = &now
	d.DeletedBy = actor
}
