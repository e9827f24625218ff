package models

import "time"

// Enrollment statuses. Transitions are monotonic: an enrollment moves forward
// through the lifecycle and never back.
const (
	EnrollmentStatusEnrolled  = "enrolled"
	EnrollmentStatusAttended  = "attended"
	EnrollmentStatusCompleted = "completed"
	EnrollmentStatusAbsent    = "absent"
)

var enrollmentTransitions = map[string][]string{
	EnrollmentStatusEnrolled: {EnrollmentStatusAttended, EnrollmentStatusAbsent},
	EnrollmentStatusAttended: {EnrollmentStatusCompleted},
}

// Enrollment links an employee to a session and tracks completion.
type Enrollment struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	SessionID      uint       `gorm:"not null;index;uniqueIndex:idx_session_employee" json:"session_id"`
	Session        Session    `gorm:"foreignKey:SessionID" json:"-"`
	EmployeeID     uint       `gorm:"not null;index;uniqueIndex:idx_session_employee" json:"employee_id"`
	Status         string     `gorm:"size:32;not null;default:enrolled" json:"status"`
	CompletionDate *time.Time `json:"completion_date"`
	Score          *int       `json:"score"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// ValidEnrollmentStatus reports whether the status value is recognised.
func ValidEnrollmentStatus(s string) bool {
	switch s {
	case EnrollmentStatusEnrolled, EnrollmentStatusAttended, EnrollmentStatusCompleted, EnrollmentStatusAbsent:
		return true
	}
	return false
}

// CanTransitionEnrollment reports whether an enrollment may move from one
// status to another. Writing the same status back is always permitted.
func CanTransitionEnrollment(from, to string) bool {
	if from == to {
		return true
	}
	for _, next := range enrollmentTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
