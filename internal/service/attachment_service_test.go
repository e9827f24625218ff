package service

import (
	"bytes"
	"context"
	"mime/multipart"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/trainhub/trainhub-api/internal/models"
	"github.com/trainhub/trainhub-api/internal/storage"
)

type attachmentFixture struct {
	svc         AttachmentService
	repo        *memoryAttachmentRepo
	audit       *memoryAuditRepo
	uploadsDir  string
	enrollments *memoryEnrollmentRepo
}

func newAttachmentFixture(t *testing.T, allowedExts []string) attachmentFixture {
	t.Helper()

	dir := t.TempDir()
	store, err := storage.NewLocal(dir)
	require.NoError(t, err)

	repo := newMemoryAttachmentRepo()
	audit := &memoryAuditRepo{}
	enrollments := newMemoryEnrollmentRepo()
	require.NoError(t, enrollments.Create(context.Background(), &models.Enrollment{
		SessionID:  1,
		EmployeeID: 1,
		Status:     models.EnrollmentStatusEnrolled,
	}))

	svc := NewAttachmentService(repo, enrollments, newMemorySessionRepo(), audit, stubTxManager{}, store, 1024*1024, allowedExts, zerolog.Nop())

	return attachmentFixture{svc: svc, repo: repo, audit: audit, uploadsDir: dir, enrollments: enrollments}
}

func makeFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	return form.File["file"][0]
}

func filesOnDisk(t *testing.T, dir string) int {
	t.Helper()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	return len(entries)
}

func TestUploadStoresEvidence(t *testing.T) {
	fx := newAttachmentFixture(t, []string{"pdf"})
	enrollmentID := uint(1)

	file := makeFileHeader(t, "certificate.pdf", []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\n"))
	resp, err := fx.svc.Upload(context.Background(), file, &enrollmentID, nil, RequestMeta{ActorID: 7, ActorRole: models.RoleManager})
	require.NoError(t, err)

	require.Equal(t, "certificate.pdf", resp.FileName)
	require.Equal(t, "application/pdf", resp.ContentType)
	require.Equal(t, 1, filesOnDisk(t, fx.uploadsDir))
	require.Len(t, fx.repo.attachments, 1)
	require.Len(t, fx.audit.entries, 1)
	require.Equal(t, "attachment", fx.audit.entries[0].EntityType)
}

func TestUploadRejectsDisguisedContent(t *testing.T) {
	fx := newAttachmentFixture(t, []string{"pdf"})
	enrollmentID := uint(1)

	file := makeFileHeader(t, "evidence.pdf", []byte("<html><body><script>alert(1)</script></body></html>"))
	_, err := fx.svc.Upload(context.Background(), file, &enrollmentID, nil, RequestMeta{ActorID: 7})
	require.ErrorIs(t, err, ErrUploadTypeNotAllowed)

	// The rejected payload must leave no trace anywhere.
	require.Equal(t, 0, filesOnDisk(t, fx.uploadsDir))
	require.Empty(t, fx.repo.attachments)
	require.Empty(t, fx.audit.entries)
}

func TestUploadAcceptsPlainTextCSV(t *testing.T) {
	fx := newAttachmentFixture(t, []string{"csv"})
	enrollmentID := uint(1)

	file := makeFileHeader(t, "scores.csv", []byte("employee,score\n1,92\n"))
	resp, err := fx.svc.Upload(context.Background(), file, &enrollmentID, nil, RequestMeta{ActorID: 7})
	require.NoError(t, err)
	require.Equal(t, "scores.csv", resp.FileName)
}

func TestUploadRejectsDisallowedExtension(t *testing.T) {
	fx := newAttachmentFixture(t, []string{"pdf"})
	enrollmentID := uint(1)

	file := makeFileHeader(t, "payload.exe", []byte("MZ\x90\x00"))
	_, err := fx.svc.Upload(context.Background(), file, &enrollmentID, nil, RequestMeta{ActorID: 7})
	require.ErrorIs(t, err, ErrUploadTypeNotAllowed)
	require.Equal(t, 0, filesOnDisk(t, fx.uploadsDir))
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	fx := newAttachmentFixture(t, []string{"pdf"})
	enrollmentID := uint(1)

	file := makeFileHeader(t, "big.pdf", []byte("%PDF-1.4\n"))
	file.Size = 2 * 1024 * 1024

	_, err := fx.svc.Upload(context.Background(), file, &enrollmentID, nil, RequestMeta{ActorID: 7})
	require.ErrorIs(t, err, ErrUploadTooLarge)
	require.Equal(t, 0, filesOnDisk(t, fx.uploadsDir))
}

func TestUploadRequiresTarget(t *testing.T) {
	fx := newAttachmentFixture(t, []string{"pdf"})

	file := makeFileHeader(t, "certificate.pdf", []byte("%PDF-1.4\n"))
	_, err := fx.svc.Upload(context.Background(), file, nil, nil, RequestMeta{ActorID: 7})
	require.ErrorIs(t, err, ErrAttachmentTargetMissing)
}

func TestUploadRejectsUnknownEnrollment(t *testing.T) {
	fx := newAttachmentFixture(t, []string{"pdf"})
	missing := uint(99)

	file := makeFileHeader(t, "certificate.pdf", []byte("%PDF-1.4\n"))
	_, err := fx.svc.Upload(context.Background(), file, &missing, nil, RequestMeta{ActorID: 7})
	require.ErrorIs(t, err, ErrEnrollmentReferenceMissing)
	require.Equal(t, 0, filesOnDisk(t, fx.uploadsDir))
}
