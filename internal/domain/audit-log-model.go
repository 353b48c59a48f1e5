package domain

import (
	"time"

	"gorm.io/datatypes"
)

const (
	AuditStatusSuccess  = "SUCCESS"
	AuditStatusWarning  = "WARNING"
	AuditStatusCritical = "CRITICAL"
)

// AuditLog is an append-only record of an admin action. Never updated.
type AuditLog struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Actor     string         `gorm:"not null;index" json:"actor"` // acting user's email
	Action    string         `gorm:"type:varchar(100);not null" json:"action"`
	Status    string         `gorm:"type:varchar(20);not null;default:SUCCESS" json:"status"`
	IP        string         `json:"ip,omitempty"`
	Details   datatypes.JSON `json:"details,omitempty"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
}
