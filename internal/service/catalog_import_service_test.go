package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/trainhub/trainhub-api/internal/models"
)

func newImportServiceForTest() (CatalogImportService, *memoryCatalogRepo, *memoryAuditRepo) {
	repo := newMemoryCatalogRepo()
	audit := &memoryAuditRepo{}
	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewCatalogImportService(repo, audit, validate, zerolog.Nop())
	return svc, repo, audit
}

func TestImportCollectsRowErrors(t *testing.T) {
	svc, repo, audit := newImportServiceForTest()

	lines := []string{"title,type,category,provider_name,cost"}
	for i := 1; i <= 10; i++ {
		if i == 3 {
			// Missing title: header is row 1, so this is row 4.
			lines = append(lines, ",internal,safety,,")
			continue
		}
		lines = append(lines, fmt.Sprintf("Course %d,internal,safety,,", i))
	}

	result, err := svc.Import(context.Background(), strings.NewReader(strings.Join(lines, "\n")), RequestMeta{ActorID: 1})
	require.NoError(t, err)
	require.Equal(t, 10, result.RowsProcessed)
	require.Equal(t, 9, result.Succeeded)
	require.Equal(t, 1, result.Failed)
	require.Len(t, result.Errors, 1)
	require.Equal(t, 4, result.Errors[0].Row)
	require.Len(t, repo.entries, 9)

	require.Len(t, audit.entries, 1)
	require.Equal(t, models.AuditActionBulkImport, audit.entries[0].Action)
}

func TestImportRejectsExternalRowsWithoutProvider(t *testing.T) {
	svc, repo, _ := newImportServiceForTest()

	csv := strings.Join([]string{
		"title,type,category,provider_name,cost",
		"First Aid Certification,external,health,Red Cross Training Co,250.00",
		"Unlicensed Course,external,health,,100.00",
	}, "\n")

	result, err := svc.Import(context.Background(), strings.NewReader(csv), RequestMeta{ActorID: 1})
	require.NoError(t, err)
	require.Equal(t, 1, result.Succeeded)
	require.Equal(t, 1, result.Failed)
	require.Equal(t, 3, result.Errors[0].Row)
	require.Len(t, repo.entries, 1)

	for _, entry := range repo.entries {
		require.NotNil(t, entry.CostCents)
		require.Equal(t, int64(25000), *entry.CostCents)
	}
}

func TestImportUnreadableFile(t *testing.T) {
	svc, _, _ := newImportServiceForTest()

	_, err := svc.Import(context.Background(), strings.NewReader(""), RequestMeta{ActorID: 1})
	require.ErrorIs(t, err, ErrImportUnreadable)
}

func TestExportRoundTripsThroughImport(t *testing.T) {
	svc, repo, _ := newImportServiceForTest()
	ctx := context.Background()

	provider := "Red Cross Training Co"
	cost := int64(25000)
	require.NoError(t, repo.Create(ctx, &models.CatalogEntry{Title: "First Aid Certification", Type: models.CatalogTypeExternal, Category: "health", ProviderName: &provider, CostCents: &cost, Currency: "USD"}))

	data, err := svc.Export(ctx)
	require.NoError(t, err)

	fresh, _, _ := newImportServiceForTest()
	result, err := fresh.Import(ctx, strings.NewReader(string(data)), RequestMeta{ActorID: 1})
	require.NoError(t, err)
	require.Equal(t, 1, result.Succeeded)
	require.Zero(t, result.Failed)
}
