package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/trainhub/trainhub-api/internal/dto"
	"github.com/trainhub/trainhub-api/internal/models"
	"github.com/trainhub/trainhub-api/internal/repository"
)

// ErrUsernameTaken indicates the requested username is already in use.
var ErrUsernameTaken = errors.New("username already taken")

// UserService manages user accounts.
type UserService interface {
	List(ctx context.Context, role, department string) ([]dto.UserResponse, error)
	Create(ctx context.Context, payload dto.UserCreateRequest, meta RequestMeta) (dto.UserResponse, error)
}

type userService struct {
	users     repository.UserRepository
	audit     repository.AuditLogRepository
	tx        repository.TxManager
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewUserService builds the user management service.
func NewUserService(users repository.UserRepository, audit repository.AuditLogRepository, tx repository.TxManager, validate *validator.Validate, logger zerolog.Logger) UserService {
	return &userService{
		users:     users,
		audit:     audit,
		tx:        tx,
		validator: validate,
		logger:    logger.With().Str("component", "user_service").Logger(),
	}
}

func (s *userService) List(ctx context.Context, role, department string) ([]dto.UserResponse, error) {
	users, err := s.users.List(ctx, repository.UserFilter{Role: role, Department: department})
	if err != nil {
		return nil, err
	}

	return dto.NewUserResponseSlice(users), nil
}

func (s *userService) Create(ctx context.Context, payload dto.UserCreateRequest, meta RequestMeta) (dto.UserResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.UserResponse{}, err
	}

	if _, err := s.users.GetByUsername(ctx, payload.Username); err == nil {
		return dto.UserResponse{}, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.UserResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return dto.UserResponse{}, err
	}

	user := models.User{
		Username:     payload.Username,
		PasswordHash: string(hash),
		FullName:     payload.FullName,
		Role:         payload.Role,
		Department:   payload.Department,
		Active:       true,
	}

	err = s.tx.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.users.WithTx(tx).Create(ctx, &user); err != nil {
			return err
		}
		entry := newAuditLog("user", &user.ID, models.AuditActionCreate, map[string]interface{}{
			"username":   user.Username,
			"role":       user.Role,
			"department": user.Department,
		}, meta)
		return s.audit.WithTx(tx).Create(ctx, entry)
	})
	if err != nil {
		return dto.UserResponse{}, err
	}

	s.logger.Info().Uint("user_id", user.ID).Str("role", user.Role).Msg("user created")

	return dto.NewUserResponse(user), nil
}
