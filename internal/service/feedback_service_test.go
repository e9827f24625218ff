package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/trainhub/trainhub-api/internal/dto"
	"github.com/trainhub/trainhub-api/internal/models"
)

func newFeedbackServiceForTest(t *testing.T) (FeedbackService, *memoryEnrollmentRepo, *memoryAuditRepo) {
	t.Helper()

	repo := newMemoryFeedbackRepo()
	enrollments := newMemoryEnrollmentRepo()
	audit := &memoryAuditRepo{}
	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewFeedbackService(repo, enrollments, audit, stubTxManager{}, validate, zerolog.Nop())

	require.NoError(t, enrollments.Create(context.Background(), &models.Enrollment{SessionID: 5, EmployeeID: 10, Status: models.EnrollmentStatusAttended}))
	return svc, enrollments, audit
}

func validFeedback(enrollmentID uint) dto.FeedbackCreateRequest {
	return dto.FeedbackCreateRequest{
		EnrollmentID:    enrollmentID,
		ContentRating:   4,
		TrainerRating:   5,
		MaterialsRating: 4,
		OverallRating:   5,
		Comments:        "Great session",
	}
}

func TestFeedbackCreate(t *testing.T) {
	svc, _, audit := newFeedbackServiceForTest(t)

	resp, err := svc.Create(context.Background(), validFeedback(1), RequestMeta{ActorID: 10, ActorRole: models.RoleEmployee})
	require.NoError(t, err)
	require.Equal(t, uint(5), resp.SessionID)
	require.Equal(t, uint(10), resp.EmployeeID)
	require.Len(t, audit.entries, 1)
}

func TestFeedbackCreateStripsMarkup(t *testing.T) {
	svc, _, _ := newFeedbackServiceForTest(t)

	payload := validFeedback(1)
	payload.Comments = `Great <script>alert("x")</script>session`

	resp, err := svc.Create(context.Background(), payload, RequestMeta{ActorID: 10})
	require.NoError(t, err)
	require.NotContains(t, resp.Comments, "<script>")
	require.Contains(t, resp.Comments, "Great")
}

func TestFeedbackCreateRequiresOwnership(t *testing.T) {
	svc, _, _ := newFeedbackServiceForTest(t)

	_, err := svc.Create(context.Background(), validFeedback(1), RequestMeta{ActorID: 99, ActorRole: models.RoleEmployee})
	require.ErrorIs(t, err, ErrNotEnrollmentOwner)
}

func TestFeedbackCreateRejectsDuplicate(t *testing.T) {
	svc, _, _ := newFeedbackServiceForTest(t)

	_, err := svc.Create(context.Background(), validFeedback(1), RequestMeta{ActorID: 10})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), validFeedback(1), RequestMeta{ActorID: 10})
	require.ErrorIs(t, err, ErrFeedbackExists)
}

func TestFeedbackCreateUnknownEnrollment(t *testing.T) {
	svc, _, _ := newFeedbackServiceForTest(t)

	_, err := svc.Create(context.Background(), validFeedback(404), RequestMeta{ActorID: 10})
	require.ErrorIs(t, err, ErrEnrollmentReferenceMissing)
}
