package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/trainhub/trainhub-api/internal/dto"
	"github.com/trainhub/trainhub-api/internal/models"
)

type countingInvalidator struct {
	calls int
}

func (c *countingInvalidator) Invalidate(context.Context) { c.calls++ }

func newEnrollmentServiceForTest() (EnrollmentService, *memoryEnrollmentRepo, *memorySessionRepo, *memoryAuditRepo, *countingInvalidator) {
	repo := newMemoryEnrollmentRepo()
	sessions := newMemorySessionRepo()
	audit := &memoryAuditRepo{}
	invalidator := &countingInvalidator{}
	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewEnrollmentService(repo, sessions, audit, stubTxManager{}, validate, invalidator, zerolog.Nop())
	return svc, repo, sessions, audit, invalidator
}

func scheduledSession(t *testing.T, sessions *memorySessionRepo, maxParticipants int) models.Session {
	t.Helper()
	session := models.Session{CatalogID: 1, Date: time.Now().AddDate(0, 0, 7), TrainerType: models.TrainerTypeInternal, Status: models.SessionStatusScheduled, MaxParticipants: maxParticipants}
	require.NoError(t, sessions.Create(context.Background(), &session))
	return session
}

func TestEnrollmentServiceCreate(t *testing.T) {
	svc, _, sessions, audit, invalidator := newEnrollmentServiceForTest()
	session := scheduledSession(t, sessions, 0)

	resp, err := svc.Create(context.Background(), dto.EnrollmentCreateRequest{SessionID: session.ID, EmployeeID: 10}, RequestMeta{ActorID: 2, ActorRole: models.RoleManager})
	require.NoError(t, err)
	require.Equal(t, models.EnrollmentStatusEnrolled, resp.Status)

	require.Len(t, audit.entries, 1)
	require.Equal(t, "enrollment", audit.entries[0].EntityType)
	require.Equal(t, 1, invalidator.calls)
}

func TestEnrollmentServiceCreateUnknownSession(t *testing.T) {
	svc, _, _, _, _ := newEnrollmentServiceForTest()

	_, err := svc.Create(context.Background(), dto.EnrollmentCreateRequest{SessionID: 404, EmployeeID: 10}, RequestMeta{ActorID: 2})
	require.ErrorIs(t, err, ErrSessionReferenceMissing)
}

func TestEnrollmentServiceCreateRejectsDuplicate(t *testing.T) {
	svc, _, sessions, _, _ := newEnrollmentServiceForTest()
	session := scheduledSession(t, sessions, 0)

	_, err := svc.Create(context.Background(), dto.EnrollmentCreateRequest{SessionID: session.ID, EmployeeID: 10}, RequestMeta{ActorID: 2})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), dto.EnrollmentCreateRequest{SessionID: session.ID, EmployeeID: 10}, RequestMeta{ActorID: 2})
	require.ErrorIs(t, err, ErrAlreadyEnrolled)
}

func TestEnrollmentServiceCreateRejectsClosedSession(t *testing.T) {
	svc, _, sessions, _, _ := newEnrollmentServiceForTest()
	session := models.Session{CatalogID: 1, Date: time.Now(), TrainerType: models.TrainerTypeInternal, Status: models.SessionStatusCompleted}
	require.NoError(t, sessions.Create(context.Background(), &session))

	_, err := svc.Create(context.Background(), dto.EnrollmentCreateRequest{SessionID: session.ID, EmployeeID: 10}, RequestMeta{ActorID: 2})
	require.ErrorIs(t, err, ErrSessionNotOpen)
}

func TestEnrollmentServiceCreateEnforcesCapacity(t *testing.T) {
	svc, _, sessions, _, _ := newEnrollmentServiceForTest()
	session := scheduledSession(t, sessions, 1)

	_, err := svc.Create(context.Background(), dto.EnrollmentCreateRequest{SessionID: session.ID, EmployeeID: 10}, RequestMeta{ActorID: 2})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), dto.EnrollmentCreateRequest{SessionID: session.ID, EmployeeID: 11}, RequestMeta{ActorID: 2})
	require.ErrorIs(t, err, ErrSessionFull)
}

func TestEnrollmentServiceUpdateLifecycle(t *testing.T) {
	svc, _, sessions, _, _ := newEnrollmentServiceForTest()
	session := scheduledSession(t, sessions, 0)

	created, err := svc.Create(context.Background(), dto.EnrollmentCreateRequest{SessionID: session.ID, EmployeeID: 10}, RequestMeta{ActorID: 2})
	require.NoError(t, err)

	// enrolled -> completed skips attendance and must be rejected.
	completed := models.EnrollmentStatusCompleted
	_, err = svc.Update(context.Background(), created.ID, dto.EnrollmentUpdateRequest{Status: &completed}, RequestMeta{ActorID: 2})
	require.ErrorIs(t, err, ErrInvalidStatusTransition)

	attended := models.EnrollmentStatusAttended
	resp, err := svc.Update(context.Background(), created.ID, dto.EnrollmentUpdateRequest{Status: &attended}, RequestMeta{ActorID: 2})
	require.NoError(t, err)
	require.Equal(t, models.EnrollmentStatusAttended, resp.Status)
	require.Nil(t, resp.CompletionDate)

	resp, err = svc.Update(context.Background(), created.ID, dto.EnrollmentUpdateRequest{Status: &completed}, RequestMeta{ActorID: 2})
	require.NoError(t, err)
	require.Equal(t, models.EnrollmentStatusCompleted, resp.Status)
	require.NotNil(t, resp.CompletionDate, "completing stamps the completion date")
}

func TestEnrollmentServiceUpdateHonoursExplicitCompletionDate(t *testing.T) {
	svc, _, sessions, _, _ := newEnrollmentServiceForTest()
	session := scheduledSession(t, sessions, 0)

	created, err := svc.Create(context.Background(), dto.EnrollmentCreateRequest{SessionID: session.ID, EmployeeID: 10}, RequestMeta{ActorID: 2})
	require.NoError(t, err)

	attended := models.EnrollmentStatusAttended
	_, err = svc.Update(context.Background(), created.ID, dto.EnrollmentUpdateRequest{Status: &attended}, RequestMeta{ActorID: 2})
	require.NoError(t, err)

	completed := models.EnrollmentStatusCompleted
	when := "2026-08-15T09:00:00Z"
	score := 92
	resp, err := svc.Update(context.Background(), created.ID, dto.EnrollmentUpdateRequest{Status: &completed, CompletionDate: &when, Score: &score}, RequestMeta{ActorID: 2})
	require.NoError(t, err)
	require.Equal(t, 2026, resp.CompletionDate.Year())
	require.Equal(t, time.August, resp.CompletionDate.Month())
	require.Equal(t, 92, *resp.Score)
}

func TestEnrollmentServiceUpdateMissing(t *testing.T) {
	svc, _, _, _, _ := newEnrollmentServiceForTest()

	attended := models.EnrollmentStatusAttended
	_, err := svc.Update(context.Background(), 404, dto.EnrollmentUpdateRequest{Status: &attended}, RequestMeta{ActorID: 2})
	require.ErrorIs(t, err, ErrEnrollmentNotFound)
}
