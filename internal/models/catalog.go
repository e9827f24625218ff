package models

import "time"

// Catalog entry types.
const (
	CatalogTypeInternal      = "internal"
	CatalogTypeExternal      = "external"
	CatalogTypeCertification = "certification"
	CatalogTypeCompliance    = "compliance"
)

// CatalogEntry describes one training course offered to employees.
// Monetary cost is stored in integer minor units to avoid floating-point drift.
type CatalogEntry struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	Title              string    `gorm:"size:255;not null" json:"title"`
	Type               string    `gorm:"size:32;not null" json:"type"`
	Category           string    `gorm:"size:255" json:"category"`
	Description        string    `gorm:"type:text" json:"description"`
	DurationHours      int       `json:"duration_hours"`
	ValidityMonths     int       `json:"validity_months"`
	IsRequired         bool      `gorm:"default:false" json:"is_required"`
	ComplianceStandard string    `gorm:"size:255" json:"compliance_standard"`
	ProviderName       *string   `gorm:"size:255" json:"provider_name"`
	CostCents          *int64    `json:"cost_cents"`
	Currency           string    `gorm:"size:8" json:"currency"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// ValidCatalogType reports whether the given catalog type is recognised.
func ValidCatalogType(t string) bool {
	switch t {
	case CatalogTypeInternal, CatalogTypeExternal, CatalogTypeCertification, CatalogTypeCompliance:
		return true
	}
	return false
}
