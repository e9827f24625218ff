package dto

import (
	"time"

	"github.com/trainhub/trainhub-api/internal/models"
)

// SessionCreateRequest describes the payload for scheduling a session.
type SessionCreateRequest struct {
	CatalogID       uint   `json:"catalog_id" validate:"required"`
	Date            string `json:"date" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	EndDate         string `json:"end_date" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Location        string `json:"location"`
	TrainerType     string `json:"trainer_type" validate:"required,oneof=internal external"`
	TrainerName     string `json:"trainer_name"`
	MaxParticipants int    `json:"max_participants" validate:"gte=0"`
}

// SessionUpdateRequest describes a partial session update.
type SessionUpdateRequest struct {
	Date            *string `json:"date" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	EndDate         *string `json:"end_date" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Location        *string `json:"location"`
	TrainerType     *string `json:"trainer_type" validate:"omitempty,oneof=internal external"`
	TrainerName     *string `json:"trainer_name"`
	Status          *string `json:"status" validate:"omitempty,oneof=scheduled completed cancelled"`
	MaxParticipants *int    `json:"max_participants" validate:"omitempty,gte=0"`
}

// SessionResponse is the serialized representation returned to API clients.
type SessionResponse struct {
	ID              uint       `json:"id"`
	CatalogID       uint       `json:"catalog_id"`
	CatalogTitle    string     `json:"catalog_title,omitempty"`
	Date            time.Time  `json:"date"`
	EndDate         *time.Time `json:"end_date"`
	Location        string     `json:"location"`
	TrainerType     string     `json:"trainer_type"`
	TrainerName     string     `json:"trainer_name"`
	Status          string     `json:"status"`
	MaxParticipants int        `json:"max_participants"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// NewSessionResponse converts a model into a DTO.
func NewSessionResponse(model models.Session) SessionResponse {
	return SessionResponse{
		ID:              model.ID,
		CatalogID:       model.CatalogID,
		CatalogTitle:    model.Catalog.Title,
		Date:            model.Date,
		EndDate:         model.EndDate,
		Location:        model.Location,
		TrainerType:     model.TrainerType,
		TrainerName:     model.TrainerName,
		Status:          model.Status,
		MaxParticipants: model.MaxParticipants,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}
}

// NewSessionResponseSlice converts a slice of models into DTOs.
func NewSessionResponseSlice(sessions []models.Session) []SessionResponse {
	responses := make([]SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		responses = append(responses, NewSessionResponse(session))
	}
	return responses
}
