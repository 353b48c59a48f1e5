package dto

import "time"

type ApplicationResponse struct {
	ID             uint       `json:"id"`
	JobID          uint       `json:"job_id"`
	JobTitle       string     `json:"job_title,omitempty"`
	CompanyName    string     `json:"company_name,omitempty"`
	Status         string     `json:"status"`
	AppliedAt      time.Time  `json:"applied_at"`
	InterviewDate  *time.Time `json:"interview_date,omitempty"`
	InterviewRound *string    `json:"interview_round,omitempty"`
}

// UpdateApplicationStatusRequest is the recruiter-side transition payload.
type UpdateApplicationStatusRequest struct {
	Status         string     `json:"status" validate:"required,oneof=applied shortlisted accepted rejected"`
	InterviewDate  *time.Time `json:"interview_date,omitempty"`
	InterviewRound *string    `json:"interview_round,omitempty"`
}

type BulkUpdateApplicationStatusRequest struct {
	JobID      uint   `json:"job_id" validate:"required"`
	Status     string `json:"status" validate:"required,oneof=applied shortlisted accepted rejected"`
	StudentIDs []uint `json:"student_ids" validate:"required"`
}

// StudentDecisionRequest is the student-side accept/decline payload.
type StudentDecisionRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted rejected"`
}

// JobApplicantResponse is one row of a recruiter's applicant listing.
type JobApplicantResponse struct {
	StudentID uint      `json:"student_id"`
	JobID     uint      `json:"job_id,omitempty"`
	JobTitle  string    `json:"job_title,omitempty"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CGPA      float64   `json:"cgpa"`
	Resume    string    `json:"resume"`
	Status    string    `json:"status"`
	AppliedAt time.Time `json:"applied_at"`
}
