package dto

import (
	"time"

	"github.com/trainhub/trainhub-api/internal/models"
)

// EnrollmentCreateRequest signs an employee up for a session.
type EnrollmentCreateRequest struct {
	SessionID  uint `json:"session_id" validate:"required"`
	EmployeeID uint `json:"employee_id" validate:"required"`
}

// EnrollmentUpdateRequest moves an enrollment along its lifecycle.
type EnrollmentUpdateRequest struct {
	Status         *string `json:"status" validate:"omitempty,oneof=enrolled attended completed absent"`
	CompletionDate *string `json:"completion_date" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Score          *int    `json:"score" validate:"omitempty,gte=0,lte=100"`
}

// EnrollmentResponse is the serialized representation returned to API clients.
type EnrollmentResponse struct {
	ID             uint       `json:"id"`
	SessionID      uint       `json:"session_id"`
	EmployeeID     uint       `json:"employee_id"`
	Status         string     `json:"status"`
	CompletionDate *time.Time `json:"completion_date"`
	Score          *int       `json:"score"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// NewEnrollmentResponse converts a model into a DTO.
func NewEnrollmentResponse(model models.Enrollment) EnrollmentResponse {
	return EnrollmentResponse{
		ID:             model.ID,
		SessionID:      model.SessionID,
		EmployeeID:     model.EmployeeID,
		Status:         model.Status,
		CompletionDate: model.CompletionDate,
		Score:          model.Score,
		CreatedAt:      model.CreatedAt,
		UpdatedAt:      model.UpdatedAt,
	}
}

// NewEnrollmentResponseSlice converts a slice of models into DTOs.
func NewEnrollmentResponseSlice(enrollments []models.Enrollment) []EnrollmentResponse {
	responses := make([]EnrollmentResponse, 0, len(enrollments))
	for _, enrollment := range enrollments {
		responses = append(responses, NewEnrollmentResponse(enrollment))
	}
	return responses
}
