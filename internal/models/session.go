package models

import "time"

// Session statuses.
const (
	SessionStatusScheduled = "scheduled"
	SessionStatusCompleted = "completed"
	SessionStatusCancelled = "cancelled"
)

// Trainer types.
const (
	TrainerTypeInternal = "internal"
	TrainerTypeExternal = "external"
)

// Session is a scheduled delivery of a catalog entry.
type Session struct {
	ID              uint         `gorm:"primaryKey" json:"id"`
	CatalogID       uint         `gorm:"not null;index" json:"catalog_id"`
	Catalog         CatalogEntry `gorm:"foreignKey:CatalogID" json:"-"`
	Date            time.Time    `gorm:"not null;index" json:"date"`
	EndDate         *time.Time   `json:"end_date"`
	Location        string       `gorm:"size:255" json:"location"`
	TrainerType     string       `gorm:"size:32;not null" json:"trainer_type"`
	TrainerName     string       `gorm:"size:255" json:"trainer_name"`
	Status          string       `gorm:"size:32;not null;default:scheduled" json:"status"`
	MaxParticipants int          `json:"max_participants"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

// ValidSessionStatus reports whether the status value is recognised.
func ValidSessionStatus(s string) bool {
	switch s {
	case SessionStatusScheduled, SessionStatusCompleted, SessionStatusCancelled:
		return true
	}
	return false
}

// ValidTrainerType reports whether the trainer type value is recognised.
func ValidTrainerType(t string) bool {
	return t == TrainerTypeInternal || t == TrainerTypeExternal
}
