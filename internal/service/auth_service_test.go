package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/trainhub/trainhub-api/internal/dto"
	"github.com/trainhub/trainhub-api/internal/models"
)

const testSecret = "test-secret"

func newAuthServiceForTest(t *testing.T) (AuthService, *memoryUserRepo) {
	t.Helper()

	users := newMemoryUserRepo()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3curepass"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, users.Create(context.Background(), &models.User{
		Username:     "amara",
		PasswordHash: string(hash),
		FullName:     "Amara O.",
		Role:         models.RoleEmployee,
		Active:       true,
	}))

	validate := validator.New(validator.WithRequiredStructEnabled())
	return NewAuthService(users, validate, testSecret, time.Hour, zerolog.Nop()), users
}

func TestLoginIssuesToken(t *testing.T) {
	svc, _ := newAuthServiceForTest(t)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: "amara", Password: "s3curepass"})
	require.NoError(t, err)
	require.Equal(t, "amara", resp.User.Username)
	require.NotEmpty(t, resp.Token)

	token, err := jwt.Parse(resp.Token, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims := token.Claims.(jwt.MapClaims)
	require.Equal(t, float64(1), claims["sub"])
	require.Equal(t, models.RoleEmployee, claims["role"])
}

func TestLoginRejectsBadPassword(t *testing.T) {
	svc, _ := newAuthServiceForTest(t)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "amara", Password: "wrong"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginRejectsUnknownUser(t *testing.T) {
	svc, _ := newAuthServiceForTest(t)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "nobody", Password: "s3curepass"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginRejectsDeactivatedUser(t *testing.T) {
	svc, users := newAuthServiceForTest(t)

	user := users.users[1]
	user.Active = false
	users.users[1] = user

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "amara", Password: "s3curepass"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestCurrentUser(t *testing.T) {
	svc, _ := newAuthServiceForTest(t)

	user, err := svc.CurrentUser(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, "Amara O.", user.FullName)

	_, err = svc.CurrentUser(context.Background(), 999)
	require.ErrorIs(t, err, ErrUserNotFound)
}
