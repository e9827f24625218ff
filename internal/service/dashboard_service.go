package service

import (
	"context"
	"encoding/json"
	"math"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/trainhub/trainhub-api/internal/dto"
	"github.com/trainhub/trainhub-api/internal/models"
	"github.com/trainhub/trainhub-api/internal/repository"
)

const metricsCacheKey = "dashboard:metrics"

// ComplianceStatus labels.
const (
	StatusCompliant    = "Compliant"
	StatusNonCompliant = "Non-Compliant"
)

// DashboardService derives compliance metrics from enrollment state. It is a
// read-only aggregation layer; the org summary is cached in Redis.
type DashboardService interface {
	Metrics(ctx context.Context) (dto.DashboardMetricsResponse, error)
	EmployeeCompliance(ctx context.Context) (dto.EmployeeComplianceResponse, error)
	Invalidate(ctx context.Context)
}

type dashboardService struct {
	users        repository.UserRepository
	catalog      repository.CatalogRepository
	sessions     repository.SessionRepository
	enrollments  repository.EnrollmentRepository
	requirements repository.ComplianceRepository
	cache        *redis.Client
	cacheTTL     time.Duration
	lookahead    time.Duration
	fallbackReq  int
	logger       zerolog.Logger
	now          func() time.Time
}

// NewDashboardService constructs the compliance aggregator. The cache client
// may be nil, in which case every call recomputes.
func NewDashboardService(users repository.UserRepository, catalog repository.CatalogRepository, sessions repository.SessionRepository, enrollments repository.EnrollmentRepository, requirements repository.ComplianceRepository, cache *redis.Client, cacheTTL time.Duration, lookaheadDays, fallbackRequired int, logger zerolog.Logger) DashboardService {
	return &dashboardService{
		users:        users,
		catalog:      catalog,
		sessions:     sessions,
		enrollments:  enrollments,
		requirements: requirements,
		cache:        cache,
		cacheTTL:     cacheTTL,
		lookahead:    time.Duration(lookaheadDays) * 24 * time.Hour,
		fallbackReq:  fallbackRequired,
		logger:       logger.With().Str("component", "dashboard_service").Logger(),
		now:          time.Now,
	}
}

func (s *dashboardService) Metrics(ctx context.Context) (dto.DashboardMetricsResponse, error) {
	tracer := otel.Tracer("github.com/trainhub/trainhub-api/internal/service/dashboard")
	ctx, span := tracer.Start(ctx, "dashboard.metrics")
	defer span.End()

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, metricsCacheKey).Result()
		if err == nil {
			var response dto.DashboardMetricsResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				response.CacheHit = true
				span.SetAttributes(attribute.Bool("dashboard.cache_hit", true))
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read dashboard cache")
			span.RecordError(err)
		}
	}

	employeeCount, err := s.users.CountEmployees(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "count_employees_failed")
		return dto.DashboardMetricsResponse{}, err
	}

	requiredEntries, err := s.catalog.ListRequired(ctx)
	if err != nil {
		span.RecordError(err)
		return dto.DashboardMetricsResponse{}, err
	}

	completedCount, err := s.enrollments.CountByStatus(ctx, models.EnrollmentStatusCompleted)
	if err != nil {
		span.RecordError(err)
		return dto.DashboardMetricsResponse{}, err
	}

	activeCount, err := s.enrollments.CountByStatus(ctx, models.EnrollmentStatusEnrolled)
	if err != nil {
		span.RecordError(err)
		return dto.DashboardMetricsResponse{}, err
	}

	completed, err := s.enrollments.ListCompleted(ctx)
	if err != nil {
		span.RecordError(err)
		return dto.DashboardMetricsResponse{}, err
	}

	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Nanosecond)
	sessionsThisMonth, err := s.sessions.CountBetween(ctx, monthStart, monthEnd)
	if err != nil {
		span.RecordError(err)
		return dto.DashboardMetricsResponse{}, err
	}

	requiredPerEmployee := int64(len(requiredEntries))
	if requiredPerEmployee == 0 {
		requiredPerEmployee = int64(s.fallbackReq)
	}

	response := dto.DashboardMetricsResponse{
		EmployeeCount:        employeeCount,
		ActiveEnrollments:    activeCount,
		CompletedEnrollments: completedCount,
		ExpiringCertificates: s.countExpiring(completed, now),
		SessionsThisMonth:    sessionsThisMonth,
		RequiredPerEmployee:  requiredPerEmployee,
		OverallCompliance:    complianceRate(completedCount, employeeCount, requiredPerEmployee),
	}

	if s.cache != nil {
		if payload, marshalErr := json.Marshal(response); marshalErr == nil {
			if err := s.cache.Set(ctx, metricsCacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to write dashboard cache")
			}
		}
	}

	return response, nil
}

func (s *dashboardService) EmployeeCompliance(ctx context.Context) (dto.EmployeeComplianceResponse, error) {
	tracer := otel.Tracer("github.com/trainhub/trainhub-api/internal/service/dashboard")
	ctx, span := tracer.Start(ctx, "dashboard.employee_compliance")
	defer span.End()

	employees, err := s.users.List(ctx, repository.UserFilter{Role: models.RoleEmployee, ActiveOnly: true})
	if err != nil {
		span.RecordError(err)
		return dto.EmployeeComplianceResponse{}, err
	}

	requiredEntries, err := s.catalog.ListRequired(ctx)
	if err != nil {
		span.RecordError(err)
		return dto.EmployeeComplianceResponse{}, err
	}

	requirements, err := s.requirements.List(ctx)
	if err != nil {
		span.RecordError(err)
		return dto.EmployeeComplianceResponse{}, err
	}

	completed, err := s.enrollments.ListCompleted(ctx)
	if err != nil {
		span.RecordError(err)
		return dto.EmployeeComplianceResponse{}, err
	}

	completedByEmployee := make(map[uint]map[uint]struct{})
	for _, record := range completed {
		if completedByEmployee[record.EmployeeID] == nil {
			completedByEmployee[record.EmployeeID] = make(map[uint]struct{})
		}
		completedByEmployee[record.EmployeeID][record.CatalogID] = struct{}{}
	}

	entries := make([]dto.EmployeeComplianceEntry, 0, len(employees))
	for _, employee := range employees {
		applicable := applicableRequired(requiredEntries, requirements, employee)
		done := completedByEmployee[employee.ID]

		entry := dto.EmployeeComplianceEntry{
			EmployeeID:       employee.ID,
			FullName:         employee.FullName,
			Department:       employee.Department,
			RequiredCount:    len(applicable),
			MissingTrainings: []string{},
		}

		for _, required := range applicable {
			if _, ok := done[required.ID]; ok {
				entry.CompletedCount++
			} else {
				entry.MissingTrainings = append(entry.MissingTrainings, required.Title)
			}
		}

		// An employee is compliant only when every applicable required
		// training has a completed enrollment.
		if len(entry.MissingTrainings) == 0 && entry.RequiredCount > 0 {
			entry.ComplianceStatus = StatusCompliant
		} else if entry.RequiredCount == 0 {
			entry.ComplianceStatus = StatusCompliant
		} else {
			entry.ComplianceStatus = StatusNonCompliant
		}

		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].EmployeeID < entries[j].EmployeeID })

	return dto.EmployeeComplianceResponse{Employees: entries}, nil
}

// Invalidate drops the cached org summary. Called after enrollment mutations.
func (s *dashboardService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, metricsCacheKey).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to invalidate dashboard cache")
	}
}

func (s *dashboardService) countExpiring(completed []repository.CompletedTraining, now time.Time) int64 {
	var expiring int64
	horizon := now.Add(s.lookahead)
	for _, record := range completed {
		if record.CompletionDate == nil || record.ValidityMonths <= 0 {
			continue
		}
		expiry := record.CompletionDate.AddDate(0, record.ValidityMonths, 0)
		if expiry.After(now) && expiry.Before(horizon) {
			expiring++
		}
	}
	return expiring
}

// complianceRate computes completed / (employees x required) as a percentage
// rounded to one decimal. An organization with no employees scores zero.
func complianceRate(completed, employees, requiredPerEmployee int64) float64 {
	denominator := employees * requiredPerEmployee
	if denominator <= 0 {
		return 0
	}
	rate := float64(completed) / float64(denominator) * 100
	if rate > 100 {
		rate = 100
	}
	return math.Round(rate*10) / 10
}

// applicableRequired filters the required catalog entries down to those that
// apply to the employee's department and role per the compliance requirements.
// Entries with no requirement row apply to everyone.
func applicableRequired(required []models.CatalogEntry, requirements []models.ComplianceRequirement, employee models.User) []models.CatalogEntry {
	byCatalog := make(map[uint][]models.ComplianceRequirement)
	for _, requirement := range requirements {
		byCatalog[requirement.CatalogID] = append(byCatalog[requirement.CatalogID], requirement)
	}

	applicable := make([]models.CatalogEntry, 0, len(required))
	for _, entry := range required {
		scoped := byCatalog[entry.ID]
		if len(scoped) == 0 {
			applicable = append(applicable, entry)
			continue
		}
		for _, requirement := range scoped {
			if requirement.AppliesTo(employee.Department, employee.Role) {
				applicable = append(applicable, entry)
				break
			}
		}
	}
	return applicable
}
