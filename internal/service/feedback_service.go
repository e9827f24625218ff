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

var (
	// ErrEnrollmentReferenceMissing indicates the referenced enrollment does not exist.
	ErrEnrollmentReferenceMissing = errors.New("referenced enrollment does not exist")
	// ErrNotEnrollmentOwner indicates the caller does not own the enrollment.
	ErrNotEnrollmentOwner = errors.New("enrollment belongs to a different employee")
	// ErrFeedbackExists indicates feedback was already submitted for the enrollment.
	ErrFeedbackExists = errors.New("feedback already submitted for this enrollment")
)

// FeedbackService exposes session feedback use cases.
type FeedbackService interface {
	List(ctx context.Context, filter repository.FeedbackFilter) ([]dto.FeedbackResponse, error)
	Create(ctx context.Context, payload dto.FeedbackCreateRequest, meta RequestMeta) (dto.FeedbackResponse, error)
}

type feedbackService struct {
	repo        repository.FeedbackRepository
	enrollments repository.EnrollmentRepository
	audit       repository.AuditLogRepository
	tx          repository.TxManager
	validator   *validator.Validate
	sanitizer   *bluemonday.Policy
	logger      zerolog.Logger
}

// NewFeedbackService builds the feedback service.
func NewFeedbackService(repo repository.FeedbackRepository, enrollments repository.EnrollmentRepository, audit repository.AuditLogRepository, tx repository.TxManager, validate *validator.Validate, logger zerolog.Logger) FeedbackService {
	return &feedbackService{
		repo:        repo,
		enrollments: enrollments,
		audit:       audit,
		tx:          tx,
		validator:   validate,
		sanitizer:   bluemonday.StrictPolicy(),
		logger:      logger.With().Str("component", "feedback_service").Logger(),
	}
}

func (s *feedbackService) List(ctx context.Context, filter repository.FeedbackFilter) ([]dto.FeedbackResponse, error) {
	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return dto.NewFeedbackResponseSlice(items), nil
}

func (s *feedbackService) Create(ctx context.Context, payload dto.FeedbackCreateRequest, meta RequestMeta) (dto.FeedbackResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.FeedbackResponse{}, err
	}

	enrollment, err := s.enrollments.GetByID(ctx, payload.EnrollmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.FeedbackResponse{}, ErrEnrollmentReferenceMissing
		}
		return dto.FeedbackResponse{}, err
	}

	if enrollment.EmployeeID != meta.ActorID {
		return dto.FeedbackResponse{}, ErrNotEnrollmentOwner
	}

	exists, err := s.repo.ExistsForEnrollment(ctx, payload.EnrollmentID)
	if err != nil {
		return dto.FeedbackResponse{}, err
	}
	if exists {
		return dto.FeedbackResponse{}, ErrFeedbackExists
	}

	feedback := models.Feedback{
		EnrollmentID:    enrollment.ID,
		SessionID:       enrollment.SessionID,
		EmployeeID:      enrollment.EmployeeID,
		ContentRating:   payload.ContentRating,
		TrainerRating:   payload.TrainerRating,
		MaterialsRating: payload.MaterialsRating,
		OverallRating:   payload.OverallRating,
		Comments:        s.sanitizer.Sanitize(payload.Comments),
	}

	err = s.tx.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, &feedback); err != nil {
			return err
		}
		entry := newAuditLog("feedback", &feedback.ID, models.AuditActionCreate, map[string]interface{}{
			"enrollment_id":  feedback.EnrollmentID,
			"overall_rating": feedback.OverallRating,
		}, meta)
		return s.audit.WithTx(tx).Create(ctx, entry)
	})
	if err != nil {
		return dto.FeedbackResponse{}, err
	}

	s.logger.Info().Uint("feedback_id", feedback.ID).Uint("enrollment_id", feedback.EnrollmentID).Msg("feedback submitted")

	return dto.NewFeedbackResponse(feedback), nil
}
