package service

import (
	"context"
	"errors"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/trainhub/trainhub-api/internal/dto"
	"github.com/trainhub/trainhub-api/internal/models"
	"github.com/trainhub/trainhub-api/internal/repository"
	"github.com/trainhub/trainhub-api/internal/storage"
)

var (
	// ErrAttachmentNotFound indicates the requested attachment does not exist.
	ErrAttachmentNotFound = errors.New("attachment not found")
	// ErrUploadMissing indicates no file was supplied.
	ErrUploadMissing = errors.New("no file provided")
	// ErrUploadTooLarge indicates the payload exceeded the configured limit.
	ErrUploadTooLarge = errors.New("file exceeds maximum allowed size")
	// ErrUploadTypeNotAllowed indicates the file type is not permitted.
	ErrUploadTypeNotAllowed = errors.New("file type not allowed")
	// ErrAttachmentTargetMissing indicates neither target reference exists.
	ErrAttachmentTargetMissing = errors.New("attachment must reference an enrollment or a session")
)

// Content types accepted per extension. Office formats also admit their
// container types because sniffing stops at the envelope for some files.
// Extensions outside this table fall back to comparing the sniffed
// extension against the claimed one.
var mimeByExt = map[string][]string{
	"pdf":  {"application/pdf"},
	"png":  {"image/png"},
	"jpg":  {"image/jpeg"},
	"jpeg": {"image/jpeg"},
	"doc":  {"application/msword", "application/x-ole-storage"},
	"docx": {"application/vnd.openxmlformats-officedocument.wordprocessingml.document", "application/zip"},
	"xls":  {"application/vnd.ms-excel", "application/x-ole-storage"},
	"xlsx": {"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "application/zip"},
	"csv":  {"text/csv", "text/plain", "text/tab-separated-values"},
	"txt":  {"text/plain", "text/csv"},
}

func mimeConsistent(ext string, mtype *mimetype.MIME) bool {
	if accepted, ok := mimeByExt[ext]; ok {
		return mimetype.EqualsAny(mtype.String(), accepted...)
	}
	return strings.EqualFold(strings.TrimPrefix(mtype.Extension(), "."), ext)
}

// AttachmentService validates and persists evidence uploads.
type AttachmentService interface {
	Upload(ctx context.Context, file *multipart.FileHeader, enrollmentID, sessionID *uint, meta RequestMeta) (dto.AttachmentResponse, error)
	Get(ctx context.Context, id uint) (models.Attachment, error)
	List(ctx context.Context, filter repository.AttachmentFilter) ([]dto.AttachmentResponse, error)
	FilePath(attachment models.Attachment) string
}

type attachmentService struct {
	repo        repository.AttachmentRepository
	enrollments repository.EnrollmentRepository
	sessions    repository.SessionRepository
	audit       repository.AuditLogRepository
	tx          repository.TxManager
	store       *storage.Local
	maxBytes    int64
	allowedExts map[string]struct{}
	logger      zerolog.Logger
	tracer      trace.Tracer
}

// NewAttachmentService builds the attachment service.
func NewAttachmentService(repo repository.AttachmentRepository, enrollments repository.EnrollmentRepository, sessions repository.SessionRepository, audit repository.AuditLogRepository, tx repository.TxManager, store *storage.Local, maxBytes int64, allowedExts []string, logger zerolog.Logger) AttachmentService {
	allowed := make(map[string]struct{}, len(allowedExts))
	for _, ext := range allowedExts {
		allowed[strings.ToLower(strings.TrimPrefix(ext, "."))] = struct{}{}
	}

	return &attachmentService{
		repo:        repo,
		enrollments: enrollments,
		sessions:    sessions,
		audit:       audit,
		tx:          tx,
		store:       store,
		maxBytes:    maxBytes,
		allowedExts: allowed,
		logger:      logger.With().Str("component", "attachment_service").Logger(),
		tracer:      otel.Tracer("github.com/trainhub/trainhub-api/internal/service/attachment"),
	}
}

func (s *attachmentService) Upload(ctx context.Context, file *multipart.FileHeader, enrollmentID, sessionID *uint, meta RequestMeta) (dto.AttachmentResponse, error) {
	ctx, span := s.tracer.Start(ctx, "attachment.upload")
	defer span.End()

	if file == nil {
		return dto.AttachmentResponse{}, ErrUploadMissing
	}

	span.SetAttributes(
		attribute.String("upload.original_name", file.Filename),
		attribute.Int64("upload.size", file.Size),
	)

	if file.Size > s.maxBytes {
		return dto.AttachmentResponse{}, ErrUploadTooLarge
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(file.Filename), "."))
	if _, ok := s.allowedExts[ext]; !ok {
		return dto.AttachmentResponse{}, ErrUploadTypeNotAllowed
	}

	if enrollmentID == nil && sessionID == nil {
		return dto.AttachmentResponse{}, ErrAttachmentTargetMissing
	}

	if enrollmentID != nil {
		if _, err := s.enrollments.GetByID(ctx, *enrollmentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return dto.AttachmentResponse{}, ErrEnrollmentReferenceMissing
			}
			return dto.AttachmentResponse{}, err
		}
	}

	if sessionID != nil {
		if _, err := s.sessions.GetByID(ctx, *sessionID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return dto.AttachmentResponse{}, ErrSessionReferenceMissing
			}
			return dto.AttachmentResponse{}, err
		}
	}

	src, err := file.Open()
	if err != nil {
		return dto.AttachmentResponse{}, err
	}
	defer src.Close()

	// Content type is sniffed from the bytes, not trusted from the client.
	mtype, err := mimetype.DetectReader(src)
	if err != nil {
		return dto.AttachmentResponse{}, err
	}
	if _, err := src.Seek(0, 0); err != nil {
		return dto.AttachmentResponse{}, err
	}

	// A whitelisted extension on mismatching bytes is still a rejected
	// upload; nothing may reach disk or the database past this point.
	if !mimeConsistent(ext, mtype) {
		return dto.AttachmentResponse{}, ErrUploadTypeNotAllowed
	}

	storedName := s.store.GenerateName("evidence", file.Filename)
	path, written, err := s.store.Save(storedName, src)
	if err != nil {
		return dto.AttachmentResponse{}, err
	}

	attachment := models.Attachment{
		EnrollmentID: enrollmentID,
		SessionID:    sessionID,
		FileName:     file.Filename,
		StoredName:   storedName,
		FilePath:     path,
		ContentType:  mtype.String(),
		SizeBytes:    written,
		UploadedBy:   meta.ActorID,
	}

	err = s.tx.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, &attachment); err != nil {
			return err
		}
		entry := newAuditLog("attachment", &attachment.ID, models.AuditActionCreate, map[string]interface{}{
			"file_name":  attachment.FileName,
			"size_bytes": attachment.SizeBytes,
		}, meta)
		return s.audit.WithTx(tx).Create(ctx, entry)
	})
	if err != nil {
		// The row never landed, so the file must not stay behind.
		if removeErr := s.store.Remove(storedName); removeErr != nil {
			s.logger.Warn().Err(removeErr).Str("stored_name", storedName).Msg("failed to remove orphaned upload")
		}
		return dto.AttachmentResponse{}, err
	}

	s.logger.Info().Uint("attachment_id", attachment.ID).Str("file_name", attachment.FileName).Msg("evidence uploaded")

	return dto.NewAttachmentResponse(attachment), nil
}

func (s *attachmentService) Get(ctx context.Context, id uint) (models.Attachment, error) {
	attachment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Attachment{}, ErrAttachmentNotFound
		}
		return models.Attachment{}, err
	}
	return attachment, nil
}

func (s *attachmentService) List(ctx context.Context, filter repository.AttachmentFilter) ([]dto.AttachmentResponse, error) {
	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return dto.NewAttachmentResponseSlice(items), nil
}

func (s *attachmentService) FilePath(attachment models.Attachment) string {
	return s.store.Path(attachment.StoredName)
}
