package dto

import "time"

type UserCounts struct {
	Total     int64 `json:"total"`
	Students  int64 `json:"students"`
	Companies int64 `json:"companies"`
	Admins    int64 `json:"admins"`
}

type JobCounts struct {
	Total  int64 `json:"total"`
	Active int64 `json:"active"`
}

type Funnel struct {
	Applied     int64 `json:"applied"`
	Shortlisted int64 `json:"shortlisted"`
	Accepted    int64 `json:"accepted"`
	Rejected    int64 `json:"rejected"`
}

type PlacementSummary struct {
	TotalStudents  int64   `json:"total_students"`
	PlacedStudents int64   `json:"placed_students"`
	Rate           float64 `json:"rate"` // percentage, one decimal
	AvgCTC         float64 `json:"avg_ctc"`
	MaxCTC         float64 `json:"max_ctc"`
}

type BranchStat struct {
	Branch string `json:"branch"`
	Total  int64  `json:"total"`
	Placed int64  `json:"placed"`
}

type PartnerStat struct {
	CompanyUserID uint   `json:"company_user_id"`
	Name          string `json:"name"`
	Hires         int64  `json:"hires"`
}

type AdminStatsResponse struct {
	Users       UserCounts       `json:"users"`
	Jobs        JobCounts        `json:"jobs"`
	Placement   PlacementSummary `json:"placement"`
	Funnel      Funnel           `json:"funnel"`
	BranchStats []BranchStat     `json:"branch_stats"`
	TopPartners []PartnerStat    `json:"top_partners"`
}

type UpdateUserRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Role  *string `json:"role,omitempty" validate:"omitempty,oneof=student company admin"`
}

type CompanyOverviewResponse struct {
	ID         uint      `json:"id"`
	UserID     uint      `json:"user_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	CreatedAt  time.Time `json:"created_at"`
	TotalJobs  int64     `json:"total_jobs"`
	ActiveJobs int64     `json:"active_jobs"`
	Verified   bool      `json:"verified"`
	Status     string    `json:"status"`
	Logo       string    `json:"logo"`
}

type SetJobStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=open closed"`
}

type AuditLogResponse struct {
	ID      uint        `json:"id"`
	Event   string      `json:"event"`
	Actor   string      `json:"actor"`
	IP      string      `json:"ip,omitempty"`
	Time    time.Time   `json:"time"`
	Status  string      `json:"status"`
	Details interface{} `json:"details,omitempty"`
}
