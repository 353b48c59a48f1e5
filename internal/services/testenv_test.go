package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/campushire/placement_service/internal/domain"
	"github.com/campushire/placement_service/internal/dto"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestDB opens an in-memory SQLite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to open test database")

	err = db.AutoMigrate(
		&domain.User{},
		&domain.Student{},
		&domain.Company{},
		&domain.Job{},
		&domain.Application{},
		&domain.Notification{},
		&domain.AuditLog{},
	)
	require.NoError(t, err, "failed to migrate test database")
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name, role string) *domain.User {
	t.Helper()
	user := &domain.User{
		Name:         name,
		Email:        fmt.Sprintf("%s-%s-%d@example.com", name, role, time.Now().UnixNano()),
		PasswordHash: "x",
		Role:         role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedStudent(t *testing.T, db *gorm.DB, userID uint, rollNo, branch string, cgpa float64) *domain.Student {
	t.Helper()
	student := &domain.Student{
		UserID: userID,
		RollNo: rollNo,
		Branch: branch,
		CGPA:   cgpa,
	}
	require.NoError(t, db.Create(student).Error)
	return student
}

func seedJob(t *testing.T, db *gorm.DB, companyUserID uint, title string, ctc float64) *domain.Job {
	t.Helper()
	job := &domain.Job{
		CompanyUserID: companyUserID,
		Title:         title,
		Description:   "A role description long enough to pass validation.",
		Industry:      "Software",
		Location:      "Bengaluru",
		CTC:           ctc,
		Deadline:      time.Now().Add(30 * 24 * time.Hour),
		Status:        domain.JobStatusOpen,
	}
	require.NoError(t, db.Create(job).Error)
	return job
}

func asActor(user *domain.User) dto.AuthResponse {
	return dto.AuthResponse{
		UserID: int(user.ID),
		Email:  user.Email,
		Role:   user.Role,
	}
}

type recordedNotification struct {
	RecipientID uint
	Title       string
	Message     string
	Type        string
	Link        string
}

// fakeNotifier records dispatches instead of touching Kafka or the DB.
type fakeNotifier struct {
	notifications []recordedNotification
	mails         []dto.OutboundMailEvent
}

func (f *fakeNotifier) Notify(recipientID uint, title, message, ntype, link string) {
	f.notifications = append(f.notifications, recordedNotification{
		RecipientID: recipientID,
		Title:       title,
		Message:     message,
		Type:        ntype,
		Link:        link,
	})
}

func (f *fakeNotifier) SendMail(email, subject, body string) {
	f.mails = append(f.mails, dto.OutboundMailEvent{Email: email, Subject: subject, Body: body})
}
