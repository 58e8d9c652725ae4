package dashboard

import "github.com/google/uuid"

// FundStatistics summarizes compensation amounts across cases
type FundStatistics struct {
	TotalAllocated float64 `json:"total_allocated"`
	TotalDisbursed float64 `json:"total_disbursed"`
	Pending        float64 `json:"pending"`
}

// GrievanceCounters summarizes grievance workload
type GrievanceCounters struct {
	Total        int `json:"total"`
	Open         int `json:"open"`
	InProgress   int `json:"in_progress"`
	Resolved     int `json:"resolved"`
	Escalated    int `json:"escalated"`
	HighPriority int `json:"high_priority"`
}

// Stats is the aggregated dashboard payload
type Stats struct {
	TotalCases      int               `json:"total_cases"`
	StatusBreakdown map[string]int    `json:"status_breakdown"`
	StageBreakdown  map[string]int    `json:"stage_breakdown"`
	FundStatistics  FundStatistics    `json:"fund_statistics"`
	Grievances      GrievanceCounters `json:"grievances"`
	UserRole        string            `json:"user_role"`
}

// VictimStats is the per-user view for victims
type VictimStats struct {
	Role         string    `json:"role"`
	MyCases      int       `json:"my_cases"`
	MyGrievances int       `json:"my_grievances"`
	UserID       uuid.UUID `json:"user_id"`
}

// OfficialStats is the per-user view for officials
type OfficialStats struct {
	Role              string    `json:"role"`
	ManageableCases   int       `json:"manageable_cases"`
	PendingGrievances int       `json:"pending_grievances"`
	UserID            uuid.UUID `json:"user_id"`
}
