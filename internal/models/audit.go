package models

import (
	"time"

	"gorm.io/datatypes"
)

// Audit actions.
const (
	AuditActionCreate     = "create"
	AuditActionUpdate     = "update"
	AuditActionDelete     = "delete"
	AuditActionBulkImport = "bulk_import"
)

// AuditLog is an append-only record of a mutating operation. Entries reference
// their subject loosely by type and id so any entity can be audited without a
// foreign key. Rows are never updated or deleted.
type AuditLog struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	EntityType  string            `gorm:"size:64;not null;index" json:"entity_type"`
	EntityID    *uint             `json:"entity_id"`
	Action      string            `gorm:"size:32;not null;index" json:"action"`
	Changes     datatypes.JSONMap `gorm:"type:json" json:"changes"`
	PerformedBy uint              `gorm:"not null" json:"performed_by"`
	ActorRole   string            `gorm:"size:32" json:"actor_role"`
	IPAddress   string            `gorm:"size:64" json:"ip_address"`
	UserAgent   string            `gorm:"size:255" json:"user_agent"`
	CreatedAt   time.Time         `gorm:"index" json:"performed_at"`
}
