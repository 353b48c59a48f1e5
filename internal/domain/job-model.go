package domain

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	JobStatusOpen   = "open"
	JobStatusClosed = "closed"
)

// Job is a hiring drive. CompanyUserID is the posting user (role=company);
// the richer Company profile hangs off that same user.
type Job struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	CompanyUserID uint           `gorm:"index;not null" json:"company_user_id"`
	Title         string         `gorm:"not null" json:"title"`
	Description   string         `gorm:"type:text;not null" json:"description"`
	Requirements  datatypes.JSON `json:"requirements,omitempty"`
	Industry      string         `gorm:"not null" json:"industry"`
	Location      string         `gorm:"not null" json:"location"`
	CTC           float64        `gorm:"not null" json:"ctc"` // annual package in LPA
	Deadline      time.Time      `gorm:"not null" json:"deadline"`
	Status        string         `gorm:"type:varchar(20);not null;default:open" json:"status"` // open | closed
	gorm.Model
}
