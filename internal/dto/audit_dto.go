package dto

import (
	"time"

	"github.com/trainhub/trainhub-api/internal/models"
)

// AuditLogResponse is the serialized representation of an audit entry.
type AuditLogResponse struct {
	ID          uint                   `json:"id"`
	EntityType  string                 `json:"entity_type"`
	EntityID    *uint                  `json:"entity_id"`
	Action      string                 `json:"action"`
	Changes     map[string]interface{} `json:"changes"`
	PerformedBy uint                   `json:"performed_by"`
	ActorRole   string                 `json:"actor_role"`
	IPAddress   string                 `json:"ip_address"`
	UserAgent   string                 `json:"user_agent"`
	PerformedAt time.Time              `json:"performed_at"`
}

// NewAuditLogResponse converts a model into a DTO.
func NewAuditLogResponse(model models.AuditLog) AuditLogResponse {
	return AuditLogResponse{
		ID:          model.ID,
		EntityType:  model.EntityType,
		EntityID:    model.EntityID,
		Action:      model.Action,
		Changes:     model.Changes,
		PerformedBy: model.PerformedBy,
		ActorRole:   model.ActorRole,
		IPAddress:   model.IPAddress,
		UserAgent:   model.UserAgent,
		PerformedAt: model.CreatedAt,
	}
}

// NewAuditLogResponseSlice converts a slice of models into DTOs.
func NewAuditLogResponseSlice(entries []models.AuditLog) []AuditLogResponse {
	responses := make([]AuditLogResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, NewAuditLogResponse(entry))
	}
	return responses
}
