package repository

import (
	"testing"
	"time"

	"github.com/campushire/placement_service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to open test database")

	err = db.AutoMigrate(
		&domain.User{},
		&domain.Student{},
		&domain.Job{},
		&domain.Application{},
	)
	require.NoError(t, err, "failed to migrate test database")
	return db
}

func seedApplicant(t *testing.T, db *gorm.DB, name, email, rollNo string, cgpa float64) *domain.Student {
	t.Helper()
	user := &domain.User{Name: name, Email: email, PasswordHash: "x", Role: domain.RoleStudent}
	require.NoError(t, db.Create(user).Error)
	student := &domain.Student{UserID: user.ID, RollNo: rollNo, Branch: "CSE", CGPA: cgpa, Resume: "r.pdf"}
	require.NoError(t, db.Create(student).Error)
	return student
}

func TestListApplicantsByJobJoinsIdentity(t *testing.T) {
	db := setupTestDB(t)
	repo := NewApplicationRepository(db)

	company := &domain.User{Name: "Acme", Email: "acme@example.com", PasswordHash: "x", Role: domain.RoleCompany}
	require.NoError(t, db.Create(company).Error)
	job := &domain.Job{
		CompanyUserID: company.ID,
		Title:         "Backend Engineer",
		Description:   "desc",
		Industry:      "Software",
		Location:      "Bengaluru",
		CTC:           12,
		Deadline:      time.Now().Add(24 * time.Hour),
		Status:        domain.JobStatusOpen,
	}
	require.NoError(t, db.Create(job).Error)

	s1 := seedApplicant(t, db, "Asha", "asha@example.com", "CS-1", 8.4)
	s2 := seedApplicant(t, db, "Binod", "binod@example.com", "CS-2", 7.1)

	base := time.Now().Add(-time.Hour)
	require.NoError(t, repo.Create(&domain.Application{StudentID: s1.ID, JobID: job.ID, Status: domain.AppStatusApplied, AppliedAt: base}))
	require.NoError(t, repo.Create(&domain.Application{StudentID: s2.ID, JobID: job.ID, Status: domain.AppStatusApplied, AppliedAt: base.Add(time.Minute)}))

	rows, err := repo.ListApplicantsByJob(job.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// oldest first
	assert.Equal(t, "Asha", rows[0].Name)
	assert.Equal(t, "asha@example.com", rows[0].Email)
	assert.Equal(t, 8.4, rows[0].CGPA)
	assert.Equal(t, "r.pdf", rows[0].Resume)
	assert.Equal(t, "Binod", rows[1].Name)
}

func TestListApplicantsByJobIDsNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := NewApplicationRepository(db)

	s1 := seedApplicant(t, db, "Asha", "asha@example.com", "CS-1", 8.4)
	s2 := seedApplicant(t, db, "Binod", "binod@example.com", "CS-2", 7.1)

	base := time.Now().Add(-time.Hour)
	require.NoError(t, repo.Create(&domain.Application{StudentID: s1.ID, JobID: 1, Status: domain.AppStatusApplied, AppliedAt: base}))
	require.NoError(t, repo.Create(&domain.Application{StudentID: s2.ID, JobID: 2, Status: domain.AppStatusApplied, AppliedAt: base.Add(time.Minute)}))

	rows, err := repo.ListApplicantsByJobIDs([]uint{1, 2})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Binod", rows[0].Name)

	empty, err := repo.ListApplicantsByJobIDs(nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestCountByJobIDs(t *testing.T) {
	db := setupTestDB(t)
	repo := NewApplicationRepository(db)

	s1 := seedApplicant(t, db, "Asha", "asha@example.com", "CS-1", 8.4)
	s2 := seedApplicant(t, db, "Binod", "binod@example.com", "CS-2", 7.1)

	require.NoError(t, repo.Create(&domain.Application{StudentID: s1.ID, JobID: 1, Status: domain.AppStatusApplied, AppliedAt: time.Now()}))
	require.NoError(t, repo.Create(&domain.Application{StudentID: s2.ID, JobID: 1, Status: domain.AppStatusShortlisted, AppliedAt: time.Now()}))
	require.NoError(t, repo.Create(&domain.Application{StudentID: s1.ID, JobID: 2, Status: domain.AppStatusShortlisted, AppliedAt: time.Now()}))

	total, err := repo.CountByJobIDs([]uint{1, 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)

	shortlisted, err := repo.CountByJobIDsAndStatus([]uint{1}, domain.AppStatusShortlisted)
	require.NoError(t, err)
	assert.EqualValues(t, 1, shortlisted)

	none, err := repo.CountByJobIDs(nil)
	require.NoError(t, err)
	assert.EqualValues(t, 0, none)
}

func TestUniqueStudentJobPair(t *testing.T) {
	db := setupTestDB(t)
	repo := NewApplicationRepository(db)

	s1 := seedApplicant(t, db, "Asha", "asha@example.com", "CS-1", 8.4)

	require.NoError(t, repo.Create(&domain.Application{StudentID: s1.ID, JobID: 1, Status: domain.AppStatusApplied, AppliedAt: time.Now()}))
	err := repo.Create(&domain.Application{StudentID: s1.ID, JobID: 1, Status: domain.AppStatusApplied, AppliedAt: time.Now()})
	assert.Error(t, err, "second application for the same pair must hit the unique index")
}
