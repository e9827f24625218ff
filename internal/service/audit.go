package service

import (
	"context"

	"gorm.io/datatypes"

	"github.com/trainhub/trainhub-api/internal/dto"
	"github.com/trainhub/trainhub-api/internal/models"
	"github.com/trainhub/trainhub-api/internal/observability"
	"github.com/trainhub/trainhub-api/internal/repository"
)

// RequestMeta carries the acting user and request attribution captured by the
// HTTP layer. Every mutating service method receives one so the audit trail
// can record who did what from where.
type RequestMeta struct {
	ActorID   uint
	ActorRole string
	IPAddress string
	UserAgent string
}

func newAuditLog(entityType string, entityID *uint, action string, changes map[string]interface{}, meta RequestMeta) *models.AuditLog {
	observability.AuditEntries().WithLabelValues(entityType, action).Inc()

	return &models.AuditLog{
		EntityType:  entityType,
		EntityID:    entityID,
		Action:      action,
		Changes:     datatypes.JSONMap(changes),
		PerformedBy: meta.ActorID,
		ActorRole:   meta.ActorRole,
		IPAddress:   meta.IPAddress,
		UserAgent:   meta.UserAgent,
	}
}

// AuditService exposes read access to the audit trail.
type AuditService interface {
	List(ctx context.Context, entityType, action string, limit int) ([]dto.AuditLogResponse, error)
}

type auditService struct {
	repo repository.AuditLogRepository
}

// NewAuditService constructs the audit read service.
func NewAuditService(repo repository.AuditLogRepository) AuditService {
	return &auditService{repo: repo}
}

func (s *auditService) List(ctx context.Context, entityType, action string, limit int) ([]dto.AuditLogResponse, error) {
	entries, err := s.repo.List(ctx, repository.AuditLogFilter{
		EntityType: entityType,
		Action:     action,
		Limit:      limit,
	})
	if err != nil {
		return nil, err
	}

	return dto.NewAuditLogResponseSlice(entries), nil
}
