package service

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/trainhub/trainhub-api/internal/models"
	"github.com/trainhub/trainhub-api/internal/repository"
)

// stubTxManager runs the transaction body directly. The in-memory repos
// ignore the tx handle, so passing nil is fine.
type stubTxManager struct{}

func (stubTxManager) Transaction(_ context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type memoryCatalogRepo struct {
	entries map[uint]models.CatalogEntry
	nextID  uint
}

func newMemoryCatalogRepo() *memoryCatalogRepo {
	return &memoryCatalogRepo{entries: make(map[uint]models.CatalogEntry), nextID: 1}
}

func (m *memoryCatalogRepo) WithTx(*gorm.DB) repository.CatalogRepository { return m }

func (m *memoryCatalogRepo) Create(_ context.Context, entry *models.CatalogEntry) error {
	entry.ID = m.nextID
	m.nextID++
	entry.CreatedAt = time.Now()
	entry.UpdatedAt = entry.CreatedAt
	m.entries[entry.ID] = *entry
	return nil
}

func (m *memoryCatalogRepo) GetByID(_ context.Context, id uint) (models.CatalogEntry, error) {
	entry, ok := m.entries[id]
	if !ok {
		return models.CatalogEntry{}, gorm.ErrRecordNotFound
	}
	return entry, nil
}

func (m *memoryCatalogRepo) List(_ context.Context, filter repository.CatalogFilter) ([]models.CatalogEntry, error) {
	results := make([]models.CatalogEntry, 0, len(m.entries))
	for _, entry := range m.entries {
		if filter.Type != "" && entry.Type != filter.Type {
			continue
		}
		if filter.Category != "" && entry.Category != filter.Category {
			continue
		}
		if filter.Required != nil && entry.IsRequired != *filter.Required {
			continue
		}
		results = append(results, entry)
	}
	return results, nil
}

func (m *memoryCatalogRepo) Update(_ context.Context, entry *models.CatalogEntry) error {
	m.entries[entry.ID] = *entry
	return nil
}

func (m *memoryCatalogRepo) Delete(_ context.Context, id uint) (bool, error) {
	if _, ok := m.entries[id]; !ok {
		return false, nil
	}
	delete(m.entries, id)
	return true, nil
}

func (m *memoryCatalogRepo) ListRequired(_ context.Context) ([]models.CatalogEntry, error) {
	var results []models.CatalogEntry
	for _, entry := range m.entries {
		if entry.IsRequired {
			results = append(results, entry)
		}
	}
	return results, nil
}

type memorySessionRepo struct {
	sessions map[uint]models.Session
	nextID   uint
}

func newMemorySessionRepo() *memorySessionRepo {
	return &memorySessionRepo{sessions: make(map[uint]models.Session), nextID: 1}
}

func (m *memorySessionRepo) WithTx(*gorm.DB) repository.SessionRepository { return m }

func (m *memorySessionRepo) Create(_ context.Context, session *models.Session) error {
	session.ID = m.nextID
	m.nextID++
	m.sessions[session.ID] = *session
	return nil
}

func (m *memorySessionRepo) GetByID(_ context.Context, id uint) (models.Session, error) {
	session, ok := m.sessions[id]
	if !ok {
		return models.Session{}, gorm.ErrRecordNotFound
	}
	return session, nil
}

func (m *memorySessionRepo) List(_ context.Context, filter repository.SessionFilter) ([]models.Session, error) {
	var results []models.Session
	for _, session := range m.sessions {
		if filter.CatalogID != 0 && session.CatalogID != filter.CatalogID {
			continue
		}
		if filter.Status != "" && session.Status != filter.Status {
			continue
		}
		results = append(results, session)
	}
	return results, nil
}

func (m *memorySessionRepo) ListBetween(_ context.Context, start, end time.Time) ([]models.Session, error) {
	var results []models.Session
	for _, session := range m.sessions {
		if session.Date.Before(start) || session.Date.After(end) {
			continue
		}
		results = append(results, session)
	}
	return results, nil
}

func (m *memorySessionRepo) Update(_ context.Context, session *models.Session) error {
	m.sessions[session.ID] = *session
	return nil
}

func (m *memorySessionRepo) CountBetween(_ context.Context, start, end time.Time) (int64, error) {
	sessions, _ := m.ListBetween(context.Background(), start, end)
	return int64(len(sessions)), nil
}

type memoryEnrollmentRepo struct {
	enrollments map[uint]models.Enrollment
	completed   []repository.CompletedTraining
	nextID      uint
}

func newMemoryEnrollmentRepo() *memoryEnrollmentRepo {
	return &memoryEnrollmentRepo{enrollments: make(map[uint]models.Enrollment), nextID: 1}
}

func (m *memoryEnrollmentRepo) WithTx(*gorm.DB) repository.EnrollmentRepository { return m }

func (m *memoryEnrollmentRepo) Create(_ context.Context, enrollment *models.Enrollment) error {
	enrollment.ID = m.nextID
	m.nextID++
	m.enrollments[enrollment.ID] = *enrollment
	return nil
}

func (m *memoryEnrollmentRepo) GetByID(_ context.Context, id uint) (models.Enrollment, error) {
	enrollment, ok := m.enrollments[id]
	if !ok {
		return models.Enrollment{}, gorm.ErrRecordNotFound
	}
	return enrollment, nil
}

func (m *memoryEnrollmentRepo) List(_ context.Context, filter repository.EnrollmentFilter) ([]models.Enrollment, error) {
	var results []models.Enrollment
	for _, enrollment := range m.enrollments {
		if filter.SessionID != 0 && enrollment.SessionID != filter.SessionID {
			continue
		}
		if filter.EmployeeID != 0 && enrollment.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.Status != "" && enrollment.Status != filter.Status {
			continue
		}
		results = append(results, enrollment)
	}
	return results, nil
}

func (m *memoryEnrollmentRepo) Update(_ context.Context, enrollment *models.Enrollment) error {
	m.enrollments[enrollment.ID] = *enrollment
	return nil
}

func (m *memoryEnrollmentRepo) Exists(_ context.Context, sessionID, employeeID uint) (bool, error) {
	for _, enrollment := range m.enrollments {
		if enrollment.SessionID == sessionID && enrollment.EmployeeID == employeeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryEnrollmentRepo) CountBySession(_ context.Context, sessionID uint) (int64, error) {
	var count int64
	for _, enrollment := range m.enrollments {
		if enrollment.SessionID == sessionID {
			count++
		}
	}
	return count, nil
}

func (m *memoryEnrollmentRepo) CountByStatus(_ context.Context, status string) (int64, error) {
	var count int64
	for _, enrollment := range m.enrollments {
		if enrollment.Status == status {
			count++
		}
	}
	return count, nil
}

func (m *memoryEnrollmentRepo) ListCompleted(_ context.Context) ([]repository.CompletedTraining, error) {
	return m.completed, nil
}

type memoryAuditRepo struct {
	entries []models.AuditLog
}

func (m *memoryAuditRepo) WithTx(*gorm.DB) repository.AuditLogRepository { return m }

func (m *memoryAuditRepo) Create(_ context.Context, entry *models.AuditLog) error {
	entry.ID = uint(len(m.entries) + 1)
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *memoryAuditRepo) List(_ context.Context, filter repository.AuditLogFilter) ([]models.AuditLog, error) {
	var results []models.AuditLog
	for _, entry := range m.entries {
		if filter.EntityType != "" && entry.EntityType != filter.EntityType {
			continue
		}
		if filter.Action != "" && entry.Action != filter.Action {
			continue
		}
		results = append(results, entry)
	}
	if filter.Limit > 0 && len(results) > filter.Limit {
		results = results[:filter.Limit]
	}
	return results, nil
}

type memoryUserRepo struct {
	users  map[uint]models.User
	nextID uint
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[uint]models.User), nextID: 1}
}

func (m *memoryUserRepo) WithTx(*gorm.DB) repository.UserRepository { return m }

func (m *memoryUserRepo) Create(_ context.Context, user *models.User) error {
	user.ID = m.nextID
	m.nextID++
	m.users[user.ID] = *user
	return nil
}

func (m *memoryUserRepo) GetByID(_ context.Context, id uint) (models.User, error) {
	user, ok := m.users[id]
	if !ok {
		return models.User{}, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (m *memoryUserRepo) GetByUsername(_ context.Context, username string) (models.User, error) {
	for _, user := range m.users {
		if user.Username == username {
			return user, nil
		}
	}
	return models.User{}, gorm.ErrRecordNotFound
}

func (m *memoryUserRepo) List(_ context.Context, filter repository.UserFilter) ([]models.User, error) {
	var results []models.User
	for _, user := range m.users {
		if filter.Role != "" && user.Role != filter.Role {
			continue
		}
		if filter.Department != "" && user.Department != filter.Department {
			continue
		}
		if filter.ActiveOnly && !user.Active {
			continue
		}
		results = append(results, user)
	}
	return results, nil
}

func (m *memoryUserRepo) CountEmployees(_ context.Context) (int64, error) {
	var count int64
	for _, user := range m.users {
		if user.Role == models.RoleEmployee && user.Active {
			count++
		}
	}
	return count, nil
}

type memoryComplianceRepo struct {
	requirements []models.ComplianceRequirement
}

func (m *memoryComplianceRepo) WithTx(*gorm.DB) repository.ComplianceRepository { return m }

func (m *memoryComplianceRepo) Create(_ context.Context, requirement *models.ComplianceRequirement) error {
	requirement.ID = uint(len(m.requirements) + 1)
	m.requirements = append(m.requirements, *requirement)
	return nil
}

func (m *memoryComplianceRepo) List(_ context.Context) ([]models.ComplianceRequirement, error) {
	return m.requirements, nil
}

type memoryEvaluationRepo struct {
	evaluations map[uint]models.Evaluation
	nextID      uint
}

func newMemoryEvaluationRepo() *memoryEvaluationRepo {
	return &memoryEvaluationRepo{evaluations: make(map[uint]models.Evaluation), nextID: 1}
}

func (m *memoryEvaluationRepo) WithTx(*gorm.DB) repository.EvaluationRepository { return m }

func (m *memoryEvaluationRepo) Create(_ context.Context, evaluation *models.Evaluation) error {
	evaluation.ID = m.nextID
	m.nextID++
	m.evaluations[evaluation.ID] = *evaluation
	return nil
}

func (m *memoryEvaluationRepo) List(_ context.Context, filter repository.EvaluationFilter) ([]models.Evaluation, error) {
	var results []models.Evaluation
	for _, evaluation := range m.evaluations {
		if filter.EmployeeID != 0 && evaluation.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.ManagerID != 0 && evaluation.ManagerID != filter.ManagerID {
			continue
		}
		results = append(results, evaluation)
	}
	return results, nil
}

type memoryFeedbackRepo struct {
	feedback map[uint]models.Feedback
	nextID   uint
}

func newMemoryFeedbackRepo() *memoryFeedbackRepo {
	return &memoryFeedbackRepo{feedback: make(map[uint]models.Feedback), nextID: 1}
}

func (m *memoryFeedbackRepo) WithTx(*gorm.DB) repository.FeedbackRepository { return m }

func (m *memoryFeedbackRepo) Create(_ context.Context, feedback *models.Feedback) error {
	feedback.ID = m.nextID
	m.nextID++
	m.feedback[feedback.ID] = *feedback
	return nil
}

func (m *memoryFeedbackRepo) List(_ context.Context, filter repository.FeedbackFilter) ([]models.Feedback, error) {
	var results []models.Feedback
	for _, fb := range m.feedback {
		if filter.SessionID != 0 && fb.SessionID != filter.SessionID {
			continue
		}
		if filter.EmployeeID != 0 && fb.EmployeeID != filter.EmployeeID {
			continue
		}
		results = append(results, fb)
	}
	return results, nil
}

func (m *memoryFeedbackRepo) ExistsForEnrollment(_ context.Context, enrollmentID uint) (bool, error) {
	for _, fb := range m.feedback {
		if fb.EnrollmentID == enrollmentID {
			return true, nil
		}
	}
	return false, nil
}

type memoryAttachmentRepo struct {
	attachments map[uint]models.Attachment
	nextID      uint
}

func newMemoryAttachmentRepo() *memoryAttachmentRepo {
	return &memoryAttachmentRepo{attachments: make(map[uint]models.Attachment), nextID: 1}
}

func (m *memoryAttachmentRepo) WithTx(*gorm.DB) repository.AttachmentRepository { return m }

func (m *memoryAttachmentRepo) Create(_ context.Context, attachment *models.Attachment) error {
	attachment.ID = m.nextID
	m.nextID++
	m.attachments[attachment.ID] = *attachment
	return nil
}

func (m *memoryAttachmentRepo) GetByID(_ context.Context, id uint) (models.Attachment, error) {
	attachment, ok := m.attachments[id]
	if !ok {
		return models.Attachment{}, gorm.ErrRecordNotFound
	}
	return attachment, nil
}

func (m *memoryAttachmentRepo) List(_ context.Context, filter repository.AttachmentFilter) ([]models.Attachment, error) {
	var results []models.Attachment
	for _, attachment := range m.attachments {
		if filter.EnrollmentID != 0 && (attachment.EnrollmentID == nil || *attachment.EnrollmentID != filter.EnrollmentID) {
			continue
		}
		if filter.SessionID != 0 && (attachment.SessionID == nil || *attachment.SessionID != filter.SessionID) {
			continue
		}
		results = append(results, attachment)
	}
	return results, nil
}
