package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/trainhub/trainhub-api/internal/models"
)

func TestEnrollmentRepositoryExistsAndCounts(t *testing.T) {
	db := setupTestDB(t, &models.CatalogEntry{}, &models.Session{}, &models.Enrollment{})
	repo := NewEnrollmentRepository(db)
	ctx := context.Background()

	catalog := models.CatalogEntry{Title: "Forklift Safety", Type: models.CatalogTypeInternal, Category: "safety"}
	require.NoError(t, db.Create(&catalog).Error)
	session := models.Session{CatalogID: catalog.ID, Date: time.Now(), TrainerType: models.TrainerTypeInternal, Status: models.SessionStatusScheduled}
	require.NoError(t, db.Create(&session).Error)

	require.NoError(t, repo.Create(ctx, &models.Enrollment{SessionID: session.ID, EmployeeID: 10, Status: models.EnrollmentStatusEnrolled}))
	require.NoError(t, repo.Create(ctx, &models.Enrollment{SessionID: session.ID, EmployeeID: 11, Status: models.EnrollmentStatusCompleted}))

	exists, err := repo.Exists(ctx, session.ID, 10)
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = repo.Exists(ctx, session.ID, 99)
	require.NoError(t, err)
	require.False(t, exists)

	count, err := repo.CountBySession(ctx, session.ID)
	require.NoError(t, err)
	require.Equal(t, int64(2), count)

	completed, err := repo.CountByStatus(ctx, models.EnrollmentStatusCompleted)
	require.NoError(t, err)
	require.Equal(t, int64(1), completed)
}

func TestEnrollmentRepositoryListCompletedJoinsCatalog(t *testing.T) {
	db := setupTestDB(t, &models.CatalogEntry{}, &models.Session{}, &models.Enrollment{})
	repo := NewEnrollmentRepository(db)
	ctx := context.Background()

	catalog := models.CatalogEntry{Title: "First Aid Certification", Type: models.CatalogTypeExternal, Category: "health", ValidityMonths: 24}
	require.NoError(t, db.Create(&catalog).Error)
	session := models.Session{CatalogID: catalog.ID, Date: time.Now(), TrainerType: models.TrainerTypeExternal, Status: models.SessionStatusCompleted}
	require.NoError(t, db.Create(&session).Error)

	completedAt := time.Now().AddDate(0, -1, 0)
	require.NoError(t, repo.Create(ctx, &models.Enrollment{SessionID: session.ID, EmployeeID: 10, Status: models.EnrollmentStatusCompleted, CompletionDate: &completedAt}))
	require.NoError(t, repo.Create(ctx, &models.Enrollment{SessionID: session.ID, EmployeeID: 11, Status: models.EnrollmentStatusEnrolled}))

	rows, err := repo.ListCompleted(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, uint(10), rows[0].EmployeeID)
	require.Equal(t, catalog.ID, rows[0].CatalogID)
	require.Equal(t, "First Aid Certification", rows[0].CatalogTitle)
	require.Equal(t, 24, rows[0].ValidityMonths)
	require.NotNil(t, rows[0].CompletionDate)
}
