package models

import "time"

// Feedback captures a participant's ratings for a session they attended.
// One feedback record per enrollment.
type Feedback struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	EnrollmentID    uint       `gorm:"not null;uniqueIndex" json:"enrollment_id"`
	Enrollment      Enrollment `gorm:"foreignKey:EnrollmentID" json:"-"`
	SessionID       uint       `gorm:"not null;index" json:"session_id"`
	EmployeeID      uint       `gorm:"not null;index" json:"employee_id"`
	ContentRating   int        `gorm:"not null" json:"content_rating"`
	TrainerRating   int        `gorm:"not null" json:"trainer_rating"`
	MaterialsRating int        `gorm:"not null" json:"materials_rating"`
	OverallRating   int        `gorm:"not null" json:"overall_rating"`
	Comments        string     `gorm:"type:text" json:"comments"`
	CreatedAt       time.Time  `json:"created_at"`
}
