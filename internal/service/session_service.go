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
	// ErrSessionNotFound indicates the requested session does not exist.
	ErrSessionNotFound = errors.New("session not found")
	// ErrCatalogReferenceMissing indicates the referenced catalog entry does not exist.
	ErrCatalogReferenceMissing = errors.New("referenced catalog entry does not exist")
	// ErrInvalidCalendarRange indicates the calendar window could not be parsed.
	ErrInvalidCalendarRange = errors.New("invalid calendar range")
)

// SessionService exposes session scheduling use cases.
type SessionService interface {
	List(ctx context.Context, filter repository.SessionFilter) ([]dto.SessionResponse, error)
	Get(ctx context.Context, id uint) (dto.SessionResponse, error)
	Calendar(ctx context.Context, start, end string) ([]dto.SessionResponse, error)
	Create(ctx context.Context, payload dto.SessionCreateRequest, meta RequestMeta) (dto.SessionResponse, error)
	Update(ctx context.Context, id uint, payload dto.SessionUpdateRequest, meta RequestMeta) (dto.SessionResponse, error)
}

type sessionService struct {
	repo      repository.SessionRepository
	catalog   repository.CatalogRepository
	audit     repository.AuditLogRepository
	tx        repository.TxManager
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewSessionService builds the session service.
func NewSessionService(repo repository.SessionRepository, catalog repository.CatalogRepository, audit repository.AuditLogRepository, tx repository.TxManager, validate *validator.Validate, logger zerolog.Logger) SessionService {
	return &sessionService{
		repo:      repo,
		catalog:   catalog,
		audit:     audit,
		tx:        tx,
		validator: validate,
		logger:    logger.With().Str("component", "session_service").Logger(),
	}
}

func (s *sessionService) List(ctx context.Context, filter repository.SessionFilter) ([]dto.SessionResponse, error) {
	sessions, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return dto.NewSessionResponseSlice(sessions), nil
}

func (s *sessionService) Get(ctx context.Context, id uint) (dto.SessionResponse, error) {
	session, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SessionResponse{}, ErrSessionNotFound
		}
		return dto.SessionResponse{}, err
	}

	return dto.NewSessionResponse(session), nil
}

func (s *sessionService) Calendar(ctx context.Context, start, end string) ([]dto.SessionResponse, error) {
	startAt, err := time.Parse("2006-01-02", start)
	if err != nil {
		return nil, ErrInvalidCalendarRange
	}

	endAt, err := time.Parse("2006-01-02", end)
	if err != nil {
		return nil, ErrInvalidCalendarRange
	}

	if endAt.Before(startAt) {
		return nil, ErrInvalidCalendarRange
	}

	sessions, err := s.repo.ListBetween(ctx, startAt, endAt.Add(24*time.Hour-time.Nanosecond))
	if err != nil {
		return nil, err
	}

	return dto.NewSessionResponseSlice(sessions), nil
}

func (s *sessionService) Create(ctx context.Context, payload dto.SessionCreateRequest, meta RequestMeta) (dto.SessionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SessionResponse{}, err
	}

	if _, err := s.catalog.GetByID(ctx, payload.CatalogID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SessionResponse{}, ErrCatalogReferenceMissing
		}
		return dto.SessionResponse{}, err
	}

	date, err := time.Parse(time.RFC3339, payload.Date)
	if err != nil {
		return dto.SessionResponse{}, err
	}

	session := models.Session{
		CatalogID:       payload.CatalogID,
		Date:            date,
		Location:        payload.Location,
		TrainerType:     payload.TrainerType,
		TrainerName:     payload.TrainerName,
		Status:          models.SessionStatusScheduled,
		MaxParticipants: payload.MaxParticipants,
	}

	if payload.EndDate != "" {
		endDate, err := time.Parse(time.RFC3339, payload.EndDate)
		if err != nil {
			return dto.SessionResponse{}, err
		}
		session.EndDate = &endDate
	}

	err = s.tx.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, &session); err != nil {
			return err
		}
		entry := newAuditLog("session", &session.ID, models.AuditActionCreate, map[string]interface{}{
			"catalog_id": session.CatalogID,
			"date":       session.Date,
		}, meta)
		return s.audit.WithTx(tx).Create(ctx, entry)
	})
	if err != nil {
		return dto.SessionResponse{}, err
	}

	s.logger.Info().Uint("session_id", session.ID).Uint("catalog_id", session.CatalogID).Msg("session scheduled")

	return dto.NewSessionResponse(session), nil
}

func (s *sessionService) Update(ctx context.Context, id uint, payload dto.SessionUpdateRequest, meta RequestMeta) (dto.SessionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SessionResponse{}, err
	}

	session, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SessionResponse{}, ErrSessionNotFound
		}
		return dto.SessionResponse{}, err
	}

	changed := map[string]interface{}{}

	if payload.Date != nil {
		date, err := time.Parse(time.RFC3339, *payload.Date)
		if err != nil {
			return dto.SessionResponse{}, err
		}
		session.Date = date
		changed["date"] = date
	}
	if payload.EndDate != nil {
		endDate, err := time.Parse(time.RFC3339, *payload.EndDate)
		if err != nil {
			return dto.SessionResponse{}, err
		}
		session.EndDate = &endDate
		changed["end_date"] = endDate
	}
	if payload.Location != nil {
		session.Location = *payload.Location
		changed["location"] = session.Location
	}
	if payload.TrainerType != nil {
		session.TrainerType = *payload.TrainerType
		changed["trainer_type"] = session.TrainerType
	}
	if payload.TrainerName != nil {
		session.TrainerName = *payload.TrainerName
		changed["trainer_name"] = session.TrainerName
	}
	if payload.Status != nil {
		session.Status = *payload.Status
		changed["status"] = session.Status
	}
	if payload.MaxParticipants != nil {
		session.MaxParticipants = *payload.MaxParticipants
		changed["max_participants"] = session.MaxParticipants
	}

	err = s.tx.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Update(ctx, &session); err != nil {
			return err
		}
		entry := newAuditLog("session", &session.ID, models.AuditActionUpdate, changed, meta)
		return s.audit.WithTx(tx).Create(ctx, entry)
	})
	if err != nil {
		return dto.SessionResponse{}, err
	}

	s.logger.Info().Uint("session_id", session.ID).Msg("session updated")

	return dto.NewSessionResponse(session), nil
}
