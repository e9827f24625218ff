package dto

import (
	"time"

	"github.com/trainhub/trainhub-api/internal/models"
)

// FeedbackCreateRequest captures a participant's session ratings.
type FeedbackCreateRequest struct {
	EnrollmentID    uint   `json:"enrollment_id" validate:"required"`
	ContentRating   int    `json:"content_rating" validate:"required,gte=1,lte=5"`
	TrainerRating   int    `json:"trainer_rating" validate:"required,gte=1,lte=5"`
	MaterialsRating int    `json:"materials_rating" validate:"required,gte=1,lte=5"`
	OverallRating   int    `json:"overall_rating" validate:"required,gte=1,lte=5"`
	Comments        string `json:"comments"`
}

// FeedbackResponse is the serialized representation returned to API clients.
type FeedbackResponse struct {
	ID              uint      `json:"id"`
	EnrollmentID    uint      `json:"enrollment_id"`
	SessionID       uint      `json:"session_id"`
	EmployeeID      uint      `json:"employee_id"`
	ContentRating   int       `json:"content_rating"`
	TrainerRating   int       `json:"trainer_rating"`
	MaterialsRating int       `json:"materials_rating"`
	OverallRating   int       `json:"overall_rating"`
	Comments        string    `json:"comments"`
	CreatedAt       time.Time `json:"created_at"`
}

// NewFeedbackResponse converts a model into a DTO.
func NewFeedbackResponse(model models.Feedback) FeedbackResponse {
	return FeedbackResponse{
		ID:              model.ID,
		EnrollmentID:    model.EnrollmentID,
		SessionID:       model.SessionID,
		EmployeeID:      model.EmployeeID,
		ContentRating:   model.ContentRating,
		TrainerRating:   model.TrainerRating,
		MaterialsRating: model.MaterialsRating,
		OverallRating:   model.OverallRating,
		Comments:        model.Comments,
		CreatedAt:       model.CreatedAt,
	}
}

// NewFeedbackResponseSlice converts a slice of models into DTOs.
func NewFeedbackResponseSlice(items []models.Feedback) []FeedbackResponse {
	responses := make([]FeedbackResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, NewFeedbackResponse(item))
	}
	return responses
}
