package domain

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Student struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	UserID         uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	RollNo         string         `gorm:"uniqueIndex;not null" json:"roll_no"`
	Branch         string         `gorm:"not null" json:"branch"`
	CGPA           float64        `json:"cgpa"`
	University     string         `json:"university"`
	GraduationYear int            `json:"graduation_year"`
	Semester       int            `json:"semester"`
	Phone          *string        `json:"phone,omitempty"`
	DOB            *time.Time     `json:"dob,omitempty"`
	Skills         datatypes.JSON `json:"skills,omitempty"`
	Resume         string         `gorm:"default:no-resume.pdf" json:"resume"`
	ProfilePic     string         `gorm:"default:no-photo.jpg" json:"profile_pic"`
	Transcript     string         `gorm:"default:no-transcript.pdf" json:"transcript"`
	gorm.Model
}
