package dto

// DashboardMetricsResponse carries organization-wide compliance metrics.
type DashboardMetricsResponse struct {
	OverallCompliance     float64 `json:"overall_compliance"`
	EmployeeCount         int64   `json:"employee_count"`
	ActiveEnrollments     int64   `json:"active_enrollments"`
	CompletedEnrollments  int64   `json:"completed_enrollments"`
	ExpiringCertificates  int64   `json:"expiring_certificates"`
	SessionsThisMonth     int64   `json:"sessions_this_month"`
	RequiredPerEmployee   int64   `json:"required_per_employee"`
	CacheHit              bool    `json:"cache_hit,omitempty"`
}

// EmployeeComplianceEntry is one employee's compliance standing.
type EmployeeComplianceEntry struct {
	EmployeeID       uint     `json:"employee_id"`
	FullName         string   `json:"full_name"`
	Department       string   `json:"department"`
	RequiredCount    int      `json:"required_count"`
	CompletedCount   int      `json:"completed_count"`
	MissingTrainings []string `json:"missing_trainings"`
	ComplianceStatus string   `json:"compliance_status"`
}

// EmployeeComplianceResponse wraps the per-employee compliance report.
type EmployeeComplianceResponse struct {
	Employees []EmployeeComplianceEntry `json:"employees"`
}
