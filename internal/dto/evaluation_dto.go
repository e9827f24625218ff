package dto

import (
	"time"

	"github.com/trainhub/trainhub-api/internal/models"
)

// EvaluationCreateRequest is a manager's effectiveness assessment payload.
type EvaluationCreateRequest struct {
	EnrollmentID           uint   `json:"enrollment_id" validate:"required"`
	KnowledgeApplication   int    `json:"knowledge_application" validate:"required,gte=1,lte=5"`
	PerformanceImprovement int    `json:"performance_improvement" validate:"required,gte=1,lte=5"`
	SkillRetention         int    `json:"skill_retention" validate:"required,gte=1,lte=5"`
	ObjectiveAchievement   int    `json:"objective_achievement" validate:"required,gte=1,lte=5"`
	OverallEffectiveness   int    `json:"overall_effectiveness" validate:"required,gte=1,lte=5"`
	ActionPlan             string `json:"action_plan"`
	FollowUpRequired       bool   `json:"follow_up_required"`
}

// EvaluationResponse is the serialized representation returned to API clients.
type EvaluationResponse struct {
	ID                     uint      `json:"id"`
	EnrollmentID           uint      `json:"enrollment_id"`
	EmployeeID             uint      `json:"employee_id"`
	ManagerID              uint      `json:"manager_id"`
	KnowledgeApplication   int       `json:"knowledge_application"`
	PerformanceImprovement int       `json:"performance_improvement"`
	SkillRetention         int       `json:"skill_retention"`
	ObjectiveAchievement   int       `json:"objective_achievement"`
	OverallEffectiveness   int       `json:"overall_effectiveness"`
	ActionPlan             string    `json:"action_plan"`
	FollowUpRequired       bool      `json:"follow_up_required"`
	CreatedAt              time.Time `json:"created_at"`
}

// NewEvaluationResponse converts a model into a DTO.
func NewEvaluationResponse(model models.Evaluation) EvaluationResponse {
	return EvaluationResponse{
		ID:                     model.ID,
		EnrollmentID:           model.EnrollmentID,
		EmployeeID:             model.EmployeeID,
		ManagerID:              model.ManagerID,
		KnowledgeApplication:   model.KnowledgeApplication,
		PerformanceImprovement: model.PerformanceImprovement,
		SkillRetention:         model.SkillRetention,
		ObjectiveAchievement:   model.ObjectiveAchievement,
		OverallEffectiveness:   model.OverallEffectiveness,
		ActionPlan:             model.ActionPlan,
		FollowUpRequired:       model.FollowUpRequired,
		CreatedAt:              model.CreatedAt,
	}
}

// NewEvaluationResponseSlice converts a slice of models into DTOs.
func NewEvaluationResponseSlice(items []models.Evaluation) []EvaluationResponse {
	responses := make([]EvaluationResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, NewEvaluationResponse(item))
	}
	return responses
}
