package dto

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/trainhub/trainhub-api/internal/models"
)

// CatalogCreateRequest describes the payload for creating a catalog entry.
// Cost is accepted as a decimal string and persisted in integer minor units.
type CatalogCreateRequest struct {
	Title              string `json:"title" validate:"required,min=3,max=255"`
	Type               string `json:"type" validate:"required,oneof=internal external certification compliance"`
	Category           string `json:"category" validate:"required"`
	Description        string `json:"description"`
	DurationHours      int    `json:"duration_hours" validate:"gte=0"`
	ValidityMonths     int    `json:"validity_months" validate:"gte=0"`
	IsRequired         bool   `json:"is_required"`
	ComplianceStandard string `json:"compliance_standard"`
	ProviderName       string `json:"provider_name"`
	Cost               string `json:"cost"`
	Currency           string `json:"currency"`
}

// CatalogUpdateRequest describes a partial update; nil fields are untouched.
type CatalogUpdateRequest struct {
	Title              *string `json:"title" validate:"omitempty,min=3,max=255"`
	Type               *string `json:"type" validate:"omitempty,oneof=internal external certification compliance"`
	Category           *string `json:"category"`
	Description        *string `json:"description"`
	DurationHours      *int    `json:"duration_hours" validate:"omitempty,gte=0"`
	ValidityMonths     *int    `json:"validity_months" validate:"omitempty,gte=0"`
	IsRequired         *bool   `json:"is_required"`
	ComplianceStandard *string `json:"compliance_standard"`
	ProviderName       *string `json:"provider_name"`
	Cost               *string `json:"cost"`
	Currency           *string `json:"currency"`
}

// CatalogResponse is the serialized representation returned to API clients.
type CatalogResponse struct {
	ID                 uint      `json:"id"`
	Title              string    `json:"title"`
	Type               string    `json:"type"`
	Category           string    `json:"category"`
	Description        string    `json:"description"`
	DurationHours      int       `json:"duration_hours"`
	ValidityMonths     int       `json:"validity_months"`
	IsRequired         bool      `json:"is_required"`
	ComplianceStandard string    `json:"compliance_standard"`
	ProviderName       *string   `json:"provider_name"`
	Cost               *string   `json:"cost"`
	Currency           string    `json:"currency"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// NewCatalogResponse converts a model into a DTO.
func NewCatalogResponse(model models.CatalogEntry) CatalogResponse {
	resp := CatalogResponse{
		ID:                 model.ID,
		Title:              model.Title,
		Type:               model.Type,
		Category:           model.Category,
		Description:        model.Description,
		DurationHours:      model.DurationHours,
		ValidityMonths:     model.ValidityMonths,
		IsRequired:         model.IsRequired,
		ComplianceStandard: model.ComplianceStandard,
		ProviderName:       model.ProviderName,
		Currency:           model.Currency,
		CreatedAt:          model.CreatedAt,
		UpdatedAt:          model.UpdatedAt,
	}
	if model.CostCents != nil {
		formatted := FormatCostCents(*model.CostCents)
		resp.Cost = &formatted
	}
	return resp
}

// NewCatalogResponseSlice converts a slice of models into DTOs.
func NewCatalogResponseSlice(entries []models.CatalogEntry) []CatalogResponse {
	responses := make([]CatalogResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, NewCatalogResponse(entry))
	}
	return responses
}

// ParseCostCents converts a decimal amount string such as "250.00" into
// integer minor units (25000), rounding to the nearest cent.
func ParseCostCents(value string) (int64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, fmt.Errorf("cost must not be empty")
	}

	amount, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid cost amount: %w", err)
	}
	if amount < 0 {
		return 0, fmt.Errorf("cost must not be negative")
	}

	return int64(math.Round(amount * 100)), nil
}

// FormatCostCents renders integer minor units back as a two-decimal string.
func FormatCostCents(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}
