package models

import "time"

// ComplianceRequirement ties a catalog entry to a regulatory standard and
// scopes it to a department and/or role. Empty scope fields mean "applies to
// everyone".
type ComplianceRequirement struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	Standard    string       `gorm:"size:255;not null" json:"standard"`
	Requirement string       `gorm:"type:text" json:"requirement"`
	Frequency   string       `gorm:"size:64" json:"frequency"`
	Department  string       `gorm:"size:255" json:"department"`
	Role        string       `gorm:"size:32" json:"role"`
	CatalogID   uint         `gorm:"not null;index" json:"catalog_id"`
	Catalog     CatalogEntry `gorm:"foreignKey:CatalogID" json:"-"`
	CreatedAt   time.Time    `json:"created_at"`
}

// AppliesTo reports whether this requirement covers an employee in the given
// department with the given role.
func (r ComplianceRequirement) AppliesTo(department, role string) bool {
	if r.Department != "" && r.Department != department {
		return false
	}
	if r.Role != "" && r.Role != role {
		return false
	}
	return true
}
