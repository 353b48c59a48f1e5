package dto

import "time"

// UpdateStudentProfile is a PATCH-style payload: nil means "leave as is".
type UpdateStudentProfile struct {
	Name           *string    `json:"name,omitempty"`
	RollNo         *string    `json:"roll_no,omitempty"`
	Branch         *string    `json:"branch,omitempty"`
	CGPA           *float64   `json:"cgpa,omitempty"`
	University     *string    `json:"university,omitempty"`
	GraduationYear *int       `json:"graduation_year,omitempty"`
	Semester       *int       `json:"semester,omitempty"`
	Phone          *string    `json:"phone,omitempty"`
	DOB            *time.Time `json:"dob,omitempty"`
	Skills         []string   `json:"skills,omitempty"`
}

type StudentProfileResponse struct {
	ID             uint                  `json:"id"`
	UserID         uint                  `json:"user_id"`
	Name           string                `json:"name"`
	Email          string                `json:"email"`
	RollNo         string                `json:"roll_no"`
	Branch         string                `json:"branch"`
	CGPA           float64               `json:"cgpa"`
	University     string                `json:"university"`
	GraduationYear int                   `json:"graduation_year"`
	Semester       int                   `json:"semester"`
	Phone          *string               `json:"phone,omitempty"`
	Skills         []string              `json:"skills,omitempty"`
	Resume         string                `json:"resume"`
	ProfilePic     string                `json:"profile_pic"`
	Transcript     string                `json:"transcript"`
	Applications   []ApplicationResponse `json:"applications"`
}

type UploadedDocuments struct {
	Resume     string `json:"resume,omitempty"`
	ProfilePic string `json:"profile_pic,omitempty"`
	Transcript string `json:"transcript,omitempty"`
}
