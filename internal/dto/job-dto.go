package dto

import "time"

type JobRequest struct {
	Title        string    `json:"title" validate:"required,min=3,max=100"`
	Description  string    `json:"description" validate:"required,min=10"`
	Requirements []string  `json:"requirements,omitempty"`
	Industry     string    `json:"industry" validate:"required"`
	Location     string    `json:"location" validate:"required,min=2,max=100"`
	CTC          float64   `json:"ctc" validate:"required,gte=0"`
	Deadline     time.Time `json:"deadline" validate:"required"`
	Status       string    `json:"status,omitempty" validate:"omitempty,oneof=open closed"`
}

type JobResponse struct {
	ID           uint      `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Requirements []string  `json:"requirements,omitempty"`
	Industry     string    `json:"industry"`
	Location     string    `json:"location"`
	CTC          float64   `json:"ctc"`
	Deadline     time.Time `json:"deadline"`
	Status       string    `json:"status"`
	CompanyID    uint      `json:"company_id"`
	CompanyName  string    `json:"company_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// JobFilter carries the parsed list-endpoint query parameters.
type JobFilter struct {
	CTCGte     *float64
	CTCGt      *float64
	CTCLte     *float64
	CTCLt      *float64
	Industries []string
	Location   string
	Search     string
	Sort       string
	Page       int
	Limit      int
}

type PageInfo struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

type Pagination struct {
	Next *PageInfo `json:"next,omitempty"`
	Prev *PageInfo `json:"prev,omitempty"`
}

type JobListResponse struct {
	Count      int           `json:"count"`
	Total      int64         `json:"total"`
	Pagination Pagination    `json:"pagination"`
	Jobs       []JobResponse `json:"jobs"`
}

type RecruiterStatsResponse struct {
	ActiveJobs       int   `json:"active_jobs"`
	TotalJobs        int   `json:"total_jobs"`
	TotalApplicants  int64 `json:"total_applicants"`
	ShortlistedCount int64 `json:"shortlisted_count"`
	AcceptedCount    int64 `json:"accepted_count"`
	RejectedCount    int64 `json:"rejected_count"`
}
