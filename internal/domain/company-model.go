package domain

import (
	"time"

	"gorm.io/gorm"
)

const (
	CompanyStatusActive    = "active"
	CompanyStatusInactive  = "inactive"
	CompanyStatusSuspended = "suspended"
)

// Company is the recruiter profile, owned 1:1 by a User with role=company.
// Ownership checks always go through UserID.
type Company struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	UserID       uint       `gorm:"uniqueIndex;not null" json:"user_id"`
	Name         string     `gorm:"not null" json:"name"`
	Email        string     `json:"email"`
	Website      string     `json:"website,omitempty"`
	Description  string     `gorm:"type:text" json:"description"`
	Industry     string     `json:"industry"`
	Location     string     `json:"location"`
	ContactName  string     `json:"contact_name,omitempty"`
	ContactPhone string     `json:"contact_phone,omitempty"`
	ContactEmail string     `json:"contact_email,omitempty"`
	Logo         string     `gorm:"default:default-company-logo.png" json:"logo"`
	Verified     bool       `gorm:"default:false" json:"verified"`
	VerifiedAt   *time.Time `json:"verified_at,omitempty"`
	Status       string     `gorm:"type:varchar(20);not null;default:active" json:"status"`
	gorm.Model
}
