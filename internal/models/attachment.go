package models

import "time"

// Attachment records an evidence file uploaded against an enrollment or a
// session. The original filename and content type are retained so downloads
// can be re-served correctly; StoredName is the unique on-disk name.
type Attachment struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	EnrollmentID *uint     `gorm:"index" json:"enrollment_id"`
	SessionID    *uint     `gorm:"index" json:"session_id"`
	FileName     string    `gorm:"size:255;not null" json:"file_name"`
	StoredName   string    `gorm:"size:255;not null" json:"-"`
	FilePath     string    `gorm:"size:512;not null" json:"-"`
	ContentType  string    `gorm:"size:128" json:"content_type"`
	SizeBytes    int64     `json:"size_bytes"`
	UploadedBy   uint      `gorm:"not null" json:"uploaded_by"`
	CreatedAt    time.Time `json:"created_at"`
}
