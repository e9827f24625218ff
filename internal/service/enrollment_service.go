package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/trainhub/trainhub-api/internal/dto"
	"github.com/trainhub/trainhub-api/internal/models"
	"github.com/trainhub/trainhub-api/internal/repository"
)

var (
	// ErrEnrollmentNotFound indicates the requested enrollment does not exist.
	ErrEnrollmentNotFound = errors.New("enrollment not found")
	// ErrSessionReferenceMissing indicates the referenced session does not exist.
	ErrSessionReferenceMissing = errors.New("referenced session does not exist")
	// ErrSessionNotOpen indicates the session is not accepting enrollments.
	ErrSessionNotOpen = errors.New("session is not open for enrollment")
	// ErrSessionFull indicates the session reached its participant cap.
	ErrSessionFull = errors.New("session is full")
	// ErrAlreadyEnrolled indicates the employee is already enrolled in the session.
	ErrAlreadyEnrolled = errors.New("employee is already enrolled in this session")
	// ErrInvalidStatusTransition indicates a lifecycle move the state machine forbids.
	ErrInvalidStatusTransition = errors.New("invalid enrollment status transition")
)

// MetricsInvalidator drops cached dashboard aggregates after a mutation.
type MetricsInvalidator interface {
	Invalidate(ctx context.Context)
}

// EnrollmentService exposes enrollment use cases.
type EnrollmentService interface {
	List(ctx context.Context, filter repository.EnrollmentFilter) ([]dto.EnrollmentResponse, error)
	ListByEmployee(ctx context.Context, employeeID uint) ([]dto.EnrollmentResponse, error)
	Create(ctx context.Context, payload dto.EnrollmentCreateRequest, meta RequestMeta) (dto.EnrollmentResponse, error)
	Update(ctx context.Context, id uint, payload dto.EnrollmentUpdateRequest, meta RequestMeta) (dto.EnrollmentResponse, error)
}

type enrollmentService struct {
	repo      repository.EnrollmentRepository
	sessions  repository.SessionRepository
	audit     repository.AuditLogRepository
	tx        repository.TxManager
	validator *validator.Validate
	metrics   MetricsInvalidator
	logger    zerolog.Logger
	now       func() time.Time
}

// NewEnrollmentService builds the enrollment service. The metrics invalidator
// may be nil when no dashboard cache is configured.
func NewEnrollmentService(repo repository.EnrollmentRepository, sessions repository.SessionRepository, audit repository.AuditLogRepository, tx repository.TxManager, validate *validator.Validate, metrics MetricsInvalidator, logger zerolog.Logger) EnrollmentService {
	return &enrollmentService{
		repo:      repo,
		sessions:  sessions,
		audit:     audit,
		tx:        tx,
		validator: validate,
		metrics:   metrics,
		logger:    logger.With().Str("component", "enrollment_service").Logger(),
		now:       time.Now,
	}
}

func (s *enrollmentService) List(ctx context.Context, filter repository.EnrollmentFilter) ([]dto.EnrollmentResponse, error) {
	enrollments, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return dto.NewEnrollmentResponseSlice(enrollments), nil
}

func (s *enrollmentService) ListByEmployee(ctx context.Context, employeeID uint) ([]dto.EnrollmentResponse, error) {
	return s.List(ctx, repository.EnrollmentFilter{EmployeeID: employeeID})
}

func (s *enrollmentService) Create(ctx context.Context, payload dto.EnrollmentCreateRequest, meta RequestMeta) (dto.EnrollmentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.EnrollmentResponse{}, err
	}

	session, err := s.sessions.GetByID(ctx, payload.SessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.EnrollmentResponse{}, ErrSessionReferenceMissing
		}
		return dto.EnrollmentResponse{}, err
	}

	if session.Status != models.SessionStatusScheduled {
		return dto.EnrollmentResponse{}, ErrSessionNotOpen
	}

	exists, err := s.repo.Exists(ctx, payload.SessionID, payload.EmployeeID)
	if err != nil {
		return dto.EnrollmentResponse{}, err
	}
	if exists {
		return dto.EnrollmentResponse{}, ErrAlreadyEnrolled
	}

	if session.MaxParticipants > 0 {
		count, err := s.repo.CountBySession(ctx, payload.SessionID)
		if err != nil {
			return dto.EnrollmentResponse{}, err
		}
		if count >= int64(session.MaxParticipants) {
			return dto.EnrollmentResponse{}, ErrSessionFull
		}
	}

	enrollment := models.Enrollment{
		SessionID:  payload.SessionID,
		EmployeeID: payload.EmployeeID,
		Status:     models.EnrollmentStatusEnrolled,
	}

	err = s.tx.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, &enrollment); err != nil {
			return err
		}
		entry := newAuditLog("enrollment", &enrollment.ID, models.AuditActionCreate, map[string]interface{}{
			"session_id":  enrollment.SessionID,
			"employee_id": enrollment.EmployeeID,
		}, meta)
		return s.audit.WithTx(tx).Create(ctx, entry)
	})
	if err != nil {
		return dto.EnrollmentResponse{}, err
	}

	s.invalidateMetrics(ctx)
	s.logger.Info().Uint("enrollment_id", enrollment.ID).Uint("session_id", enrollment.SessionID).Msg("enrollment created")

	return dto.NewEnrollmentResponse(enrollment), nil
}

func (s *enrollmentService) Update(ctx context.Context, id uint, payload dto.EnrollmentUpdateRequest, meta RequestMeta) (dto.EnrollmentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.EnrollmentResponse{}, err
	}

	enrollment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.EnrollmentResponse{}, ErrEnrollmentNotFound
		}
		return dto.EnrollmentResponse{}, err
	}

	changed := map[string]interface{}{}

	if payload.Status != nil && *payload.Status != enrollment.Status {
		if !models.CanTransitionEnrollment(enrollment.Status, *payload.Status) {
			return dto.EnrollmentResponse{}, ErrInvalidStatusTransition
		}
		enrollment.Status = *payload.Status
		changed["status"] = enrollment.Status

		// Completing an enrollment stamps the completion date unless the
		// caller supplied one explicitly.
		if enrollment.Status == models.EnrollmentStatusCompleted && payload.CompletionDate == nil {
			completedAt := s.now()
			enrollment.CompletionDate = &completedAt
			changed["completion_date"] = completedAt
		}
	}

	if payload.CompletionDate != nil {
		completedAt, err := time.Parse(time.RFC3339, *payload.CompletionDate)
		if err != nil {
			return dto.EnrollmentResponse{}, err
		}
		enrollment.CompletionDate = &completedAt
		changed["completion_date"] = completedAt
	}

	if payload.Score != nil {
		enrollment.Score = payload.Score
		changed["score"] = *payload.Score
	}

	err = s.tx.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Update(ctx, &enrollment); err != nil {
			return err
		}
		entry := newAuditLog("enrollment", &enrollment.ID, models.AuditActionUpdate, changed, meta)
		return s.audit.WithTx(tx).Create(ctx, entry)
	})
	if err != nil {
		return dto.EnrollmentResponse{}, err
	}

	s.invalidateMetrics(ctx)
	s.logger.Info().Uint("enrollment_id", enrollment.ID).Str("status", enrollment.Status).Msg("enrollment updated")

	return dto.NewEnrollmentResponse(enrollment), nil
}

func (s *enrollmentService) invalidateMetrics(ctx context.Context) {
	if s.metrics != nil {
		s.metrics.Invalidate(ctx)
	}
}
