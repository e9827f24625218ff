package dto

import (
	"time"

	"github.com/trainhub/trainhub-api/internal/models"
)

// ComplianceRequirementCreateRequest links a catalog entry to a standard.
type ComplianceRequirementCreateRequest struct {
	Standard    string `json:"standard" validate:"required"`
	Requirement string `json:"requirement"`
	Frequency   string `json:"frequency"`
	Department  string `json:"department"`
	Role        string `json:"role" validate:"omitempty,oneof=employee manager hr_admin"`
	CatalogID   uint   `json:"catalog_id" validate:"required"`
}

// ComplianceRequirementResponse is the serialized representation.
type ComplianceRequirementResponse struct {
	ID          uint      `json:"id"`
	Standard    string    `json:"standard"`
	Requirement string    `json:"requirement"`
	Frequency   string    `json:"frequency"`
	Department  string    `json:"department"`
	Role        string    `json:"role"`
	CatalogID   uint      `json:"catalog_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewComplianceRequirementResponse converts a model into a DTO.
func NewComplianceRequirementResponse(model models.ComplianceRequirement) ComplianceRequirementResponse {
	return ComplianceRequirementResponse{
		ID:          model.ID,
		Standard:    model.Standard,
		Requirement: model.Requirement,
		Frequency:   model.Frequency,
		Department:  model.Department,
		Role:        model.Role,
		CatalogID:   model.CatalogID,
		CreatedAt:   model.CreatedAt,
	}
}

// NewComplianceRequirementResponseSlice converts a slice of models into DTOs.
func NewComplianceRequirementResponseSlice(items []models.ComplianceRequirement) []ComplianceRequirementResponse {
	responses := make([]ComplianceRequirementResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, NewComplianceRequirementResponse(item))
	}
	return responses
}
