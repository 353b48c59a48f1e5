package domain

import "gorm.io/gorm"

type Notification struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	RecipientID uint   `gorm:"index;not null" json:"recipient_id"`
	Title       string `gorm:"not null" json:"title"`
	Message     string `gorm:"type:text" json:"message"`
	Type        string `gorm:"type:varchar(30)" json:"type"` // application | interview | system
	Link        string `json:"link,omitempty"`
	Read        bool   `gorm:"default:false" json:"read"`
	gorm.Model
}
