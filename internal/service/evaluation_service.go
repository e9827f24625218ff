package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/trainhub/trainhub-api/internal/dto"
	"github.com/trainhub/trainhub-api/internal/models"
	"github.com/trainhub/trainhub-api/internal/repository"
)

// ErrEnrollmentNotCompleted indicates an evaluation targets an enrollment that
// has not finished training yet.
var ErrEnrollmentNotCompleted = errors.New("enrollment is not completed")

// EvaluationService exposes effectiveness evaluation use cases.
type EvaluationService interface {
	List(ctx context.Context, filter repository.EvaluationFilter) ([]dto.EvaluationResponse, error)
	Create(ctx context.Context, payload dto.EvaluationCreateRequest, meta RequestMeta) (dto.EvaluationResponse, error)
}

type evaluationService struct {
	repo        repository.EvaluationRepository
	enrollments repository.EnrollmentRepository
	audit       repository.AuditLogRepository
	tx          repository.TxManager
	validator   *validator.Validate
	sanitizer   *bluemonday.Policy
	logger      zerolog.Logger
}

// NewEvaluationService builds the evaluation service.
func NewEvaluationService(repo repository.EvaluationRepository, enrollments repository.EnrollmentRepository, audit repository.AuditLogRepository, tx repository.TxManager, validate *validator.Validate, logger zerolog.Logger) EvaluationService {
	return &evaluationService{
		repo:        repo,
		enrollments: enrollments,
		audit:       audit,
		tx:          tx,
		validator:   validate,
		sanitizer:   bluemonday.StrictPolicy(),
		logger:      logger.With().Str("component", "evaluation_service").Logger(),
	}
}

func (s *evaluationService) List(ctx context.Context, filter repository.EvaluationFilter) ([]dto.EvaluationResponse, error) {
	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return dto.NewEvaluationResponseSlice(items), nil
}

func (s *evaluationService) Create(ctx context.Context, payload dto.EvaluationCreateRequest, meta RequestMeta) (dto.EvaluationResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.EvaluationResponse{}, err
	}

	enrollment, err := s.enrollments.GetByID(ctx, payload.EnrollmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.EvaluationResponse{}, ErrEnrollmentReferenceMissing
		}
		return dto.EvaluationResponse{}, err
	}

	if enrollment.Status != models.EnrollmentStatusCompleted {
		return dto.EvaluationResponse{}, ErrEnrollmentNotCompleted
	}

	evaluation := models.Evaluation{
		EnrollmentID:           enrollment.ID,
		EmployeeID:             enrollment.EmployeeID,
		ManagerID:              meta.ActorID,
		KnowledgeApplication:   payload.KnowledgeApplication,
		PerformanceImprovement: payload.PerformanceImprovement,
		SkillRetention:         payload.SkillRetention,
		ObjectiveAchievement:   payload.ObjectiveAchievement,
		OverallEffectiveness:   payload.OverallEffectiveness,
		ActionPlan:             s.sanitizer.Sanitize(payload.ActionPlan),
		FollowUpRequired:       payload.FollowUpRequired,
	}

	err = s.tx.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, &evaluation); err != nil {
			return err
		}
		entry := newAuditLog("evaluation", &evaluation.ID, models.AuditActionCreate, map[string]interface{}{
			"enrollment_id":         evaluation.EnrollmentID,
			"overall_effectiveness": evaluation.OverallEffectiveness,
		}, meta)
		return s.audit.WithTx(tx).Create(ctx, entry)
	})
	if err != nil {
		return dto.EvaluationResponse{}, err
	}

	s.logger.Info().Uint("evaluation_id", evaluation.ID).Uint("enrollment_id", evaluation.EnrollmentID).Msg("evaluation recorded")

	return dto.NewEvaluationResponse(evaluation), nil
}
