package models

import "time"

// Evaluation is a manager's post-training effectiveness assessment of an
// employee's completed enrollment.
type Evaluation struct {
	ID                     uint       `gorm:"primaryKey" json:"id"`
	EnrollmentID           uint       `gorm:"not null;index" json:"enrollment_id"`
	Enrollment             Enrollment `gorm:"foreignKey:EnrollmentID" json:"-"`
	EmployeeID             uint       `gorm:"not null;index" json:"employee_id"`
	ManagerID              uint       `gorm:"not null;index" json:"manager_id"`
	KnowledgeApplication   int        `gorm:"not null" json:"knowledge_application"`
	PerformanceImprovement int        `gorm:"not null" json:"performance_improvement"`
	SkillRetention         int        `gorm:"not null" json:"skill_retention"`
	ObjectiveAchievement   int        `gorm:"not null" json:"objective_achievement"`
	OverallEffectiveness   int        `gorm:"not null" json:"overall_effectiveness"`
	ActionPlan             string     `gorm:"type:text" json:"action_plan"`
	FollowUpRequired       bool       `gorm:"default:false" json:"follow_up_required"`
	CreatedAt              time.Time  `json:"created_at"`
}
