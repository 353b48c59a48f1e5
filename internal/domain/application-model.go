package domain

import (
	"time"

	"gorm.io/gorm"
)

const (
	AppStatusApplied     = "applied"
	AppStatusShortlisted = "shortlisted"
	AppStatusAccepted    = "accepted"
	AppStatusRejected    = "rejected"
)

// ValidAppStatus reports whether s is one of the four lifecycle states.
func ValidAppStatus(s string) bool {
	switch s {
	case AppStatusApplied, AppStatusShortlisted, AppStatusAccepted, AppStatusRejected:
		return true
	}
	return false
}

// Application links a student to a job. The (student, job) pair is unique:
// a student applies to a given drive at most once.
type Application struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	StudentID      uint       `gorm:"uniqueIndex:uidx_student_job;not null" json:"student_id"`
	JobID          uint       `gorm:"uniqueIndex:uidx_student_job;not null" json:"job_id"`
	Status         string     `gorm:"type:varchar(20);not null;default:applied" json:"status"`
	AppliedAt      time.Time  `gorm:"not null" json:"applied_at"`
	InterviewDate  *time.Time `json:"interview_date,omitempty"`
	InterviewRound *string    `json:"interview_round,omitempty"`
	gorm.Model
}
