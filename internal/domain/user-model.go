package domain

import "gorm.io/gorm"

const (
	RoleStudent = "student"
	RoleCompany = "company"
	RoleAdmin   = "admin"
)

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"not null" json:"name"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `json:"-"`
	Role         string `gorm:"type:varchar(20);not null;default:student" json:"role"` // student | company | admin
	gorm.Model
}
