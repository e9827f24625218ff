package models

import "time"

// User roles recognised by the authorization layer.
const (
	RoleEmployee = "employee"
	RoleManager  = "manager"
	RoleHRAdmin  = "hr_admin"
)

// User represents an account that can authenticate against the API.
// Users are never hard-deleted; deactivation flips the Active flag.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:255;uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	FullName     string    `gorm:"size:255;not null" json:"full_name"`
	Role         string    `gorm:"size:32;not null" json:"role"`
	Department   string    `gorm:"size:255" json:"department"`
	Active       bool      `gorm:"default:true" json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ValidRole reports whether the provided role is one the system recognises.
func ValidRole(role string) bool {
	switch role {
	case RoleEmployee, RoleManager, RoleHRAdmin:
		return true
	}
	return false
}
