package dto

import (
	"time"

	"github.com/trainhub/trainhub-api/internal/models"
)

// AttachmentResponse is the serialized representation of an evidence file.
type AttachmentResponse struct {
	ID           uint      `json:"id"`
	EnrollmentID *uint     `json:"enrollment_id"`
	SessionID    *uint     `json:"session_id"`
	FileName     string    `json:"file_name"`
	ContentType  string    `json:"content_type"`
	SizeBytes    int64     `json:"size_bytes"`
	UploadedBy   uint      `json:"uploaded_by"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewAttachmentResponse converts a model into a DTO.
func NewAttachmentResponse(model models.Attachment) AttachmentResponse {
	return AttachmentResponse{
		ID:           model.ID,
		EnrollmentID: model.EnrollmentID,
		SessionID:    model.SessionID,
		FileName:     model.FileName,
		ContentType:  model.ContentType,
		SizeBytes:    model.SizeBytes,
		UploadedBy:   model.UploadedBy,
		CreatedAt:    model.CreatedAt,
	}
}

// NewAttachmentResponseSlice converts a slice of models into DTOs.
func NewAttachmentResponseSlice(items []models.Attachment) []AttachmentResponse {
	responses := make([]AttachmentResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, NewAttachmentResponse(item))
	}
	return responses
}
