package services

import (
	"testing"
	"time"

	"github.com/campushire/placement_service/internal/apperr"
	"github.com/campushire/placement_service/internal/domain"
	"github.com/campushire/placement_service/internal/dto"
	"github.com/campushire/placement_service/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newJobService(db *gorm.DB) JobService {
	return NewJobService(
		repository.NewJobRepository(db),
		repository.NewApplicationRepository(db),
		repository.NewCompanyRepository(db),
		repository.NewUserRepository(db),
	)
}

func validJobRequest() dto.JobRequest {
	return dto.JobRequest{
		Title:       "Backend Engineer",
		Description: "Build and run the placement APIs.",
		Industry:    "Software",
		Location:    "Bengaluru",
		CTC:         12,
		Deadline:    time.Now().Add(14 * 24 * time.Hour),
	}
}

func TestCreateJobSeedsCompanyProfile(t *testing.T) {
	db := newTestDB(t)
	svc := newJobService(db)

	owner := seedUser(t, db, "Acme", domain.RoleCompany)

	job, err := svc.CreateJob(asActor(owner), validJobRequest())
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusOpen, job.Status)
	assert.Equal(t, owner.ID, job.CompanyID)

	var company domain.Company
	require.NoError(t, db.Where("user_id = ?", owner.ID).First(&company).Error)
	assert.Equal(t, "Acme", company.Name)
}

func TestCreateJobValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newJobService(db)
	owner := seedUser(t, db, "Acme", domain.RoleCompany)

	cases := []struct {
		name   string
		mutate func(*dto.JobRequest)
	}{
		{"short title", func(r *dto.JobRequest) { r.Title = "ab" }},
		{"short description", func(r *dto.JobRequest) { r.Description = "too short" }},
		{"missing industry", func(r *dto.JobRequest) { r.Industry = " " }},
		{"short location", func(r *dto.JobRequest) { r.Location = "x" }},
		{"negative ctc", func(r *dto.JobRequest) { r.CTC = -1 }},
		{"past deadline", func(r *dto.JobRequest) { r.Deadline = time.Now().Add(-time.Hour) }},
		{"bad status", func(r *dto.JobRequest) { r.Status = "paused" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validJobRequest()
			tc.mutate(&input)
			_, err := svc.CreateJob(asActor(owner), input)
			assert.ErrorIs(t, err, apperr.ErrInvalidInput)
		})
	}
}

func TestUpdateJobNonOwnerForbidden(t *testing.T) {
	db := newTestDB(t)
	svc := newJobService(db)

	owner := seedUser(t, db, "Acme", domain.RoleCompany)
	intruder := seedUser(t, db, "Globex", domain.RoleCompany)
	job := seedJob(t, db, owner.ID, "Backend Engineer", 12)

	_, err := svc.UpdateJob(asActor(intruder), job.ID, validJobRequest())
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestDeleteJobCascadesApplications(t *testing.T) {
	db := newTestDB(t)
	svc := newJobService(db)
	appSvc := newApplicationService(db, &fakeNotifier{})

	owner := seedUser(t, db, "Acme", domain.RoleCompany)
	job := seedJob(t, db, owner.ID, "Backend Engineer", 12)

	studentUser := seedUser(t, db, "Asha", domain.RoleStudent)
	seedStudent(t, db, studentUser.ID, "CS-101", "CSE", 8.2)
	require.NoError(t, appSvc.Apply(studentUser.ID, job.ID))

	require.NoError(t, svc.DeleteJob(asActor(owner), job.ID))

	var jobCount, appCount int64
	require.NoError(t, db.Model(&domain.Job{}).Count(&jobCount).Error)
	require.NoError(t, db.Model(&domain.Application{}).Count(&appCount).Error)
	assert.EqualValues(t, 0, jobCount)
	assert.EqualValues(t, 0, appCount)
}

func TestListJobsFiltersAndPaginates(t *testing.T) {
	db := newTestDB(t)
	svc := newJobService(db)

	owner := seedUser(t, db, "Acme", domain.RoleCompany)
	seedJob(t, db, owner.ID, "Backend Engineer", 12)
	seedJob(t, db, owner.ID, "Frontend Engineer", 8)
	seedJob(t, db, owner.ID, "Data Scientist", 20)

	min := 10.0
	list, err := svc.ListJobs(dto.JobFilter{CTCGte: &min})
	require.NoError(t, err)
	assert.EqualValues(t, 2, list.Total)
	for _, job := range list.Jobs {
		assert.GreaterOrEqual(t, job.CTC, 10.0)
	}

	list, err = svc.ListJobs(dto.JobFilter{Search: "frontend"})
	require.NoError(t, err)
	require.Len(t, list.Jobs, 1)
	assert.Equal(t, "Frontend Engineer", list.Jobs[0].Title)
	assert.Equal(t, "Acme", list.Jobs[0].CompanyName)

	list, err = svc.ListJobs(dto.JobFilter{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, list.Jobs, 2)
	require.NotNil(t, list.Pagination.Next)
	assert.Equal(t, 2, list.Pagination.Next.Page)
	assert.Nil(t, list.Pagination.Prev)

	list, err = svc.ListJobs(dto.JobFilter{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, list.Jobs, 1)
	assert.Nil(t, list.Pagination.Next)
	require.NotNil(t, list.Pagination.Prev)
	assert.Equal(t, 1, list.Pagination.Prev.Page)
}

func TestListJobsSortByCTC(t *testing.T) {
	db := newTestDB(t)
	svc := newJobService(db)

	owner := seedUser(t, db, "Acme", domain.RoleCompany)
	seedJob(t, db, owner.ID, "Low", 5)
	seedJob(t, db, owner.ID, "High", 25)
	seedJob(t, db, owner.ID, "Mid", 15)

	list, err := svc.ListJobs(dto.JobFilter{Sort: "-ctc"})
	require.NoError(t, err)
	require.Len(t, list.Jobs, 3)
	assert.Equal(t, "High", list.Jobs[0].Title)
	assert.Equal(t, "Low", list.Jobs[2].Title)
}

func TestRecruiterStats(t *testing.T) {
	db := newTestDB(t)
	svc := newJobService(db)
	appSvc := newApplicationService(db, &fakeNotifier{})

	owner := seedUser(t, db, "Acme", domain.RoleCompany)
	job := seedJob(t, db, owner.ID, "Backend Engineer", 12)
	closed := seedJob(t, db, owner.ID, "Old Role", 6)
	require.NoError(t, db.Model(closed).Update("status", domain.JobStatusClosed).Error)

	u1 := seedUser(t, db, "One", domain.RoleStudent)
	s1 := seedStudent(t, db, u1.ID, "CS-1", "CSE", 8)
	u2 := seedUser(t, db, "Two", domain.RoleStudent)
	seedStudent(t, db, u2.ID, "CS-2", "CSE", 7)

	require.NoError(t, appSvc.Apply(u1.ID, job.ID))
	require.NoError(t, appSvc.Apply(u2.ID, job.ID))
	_, err := appSvc.UpdateStatus(asActor(owner), job.ID, s1.ID, dto.UpdateApplicationStatusRequest{
		Status: domain.AppStatusShortlisted,
	})
	require.NoError(t, err)

	stats, err := svc.RecruiterStats(asActor(owner))
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalJobs)
	assert.Equal(t, 1, stats.ActiveJobs)
	assert.EqualValues(t, 2, stats.TotalApplicants)
	assert.EqualValues(t, 1, stats.ShortlistedCount)
}

func TestSetJobStatusValidatesInput(t *testing.T) {
	db := newTestDB(t)
	svc := newJobService(db)

	owner := seedUser(t, db, "Acme", domain.RoleCompany)
	job := seedJob(t, db, owner.ID, "Backend Engineer", 12)

	_, err := svc.SetJobStatus(job.ID, "archived")
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	updated, err := svc.SetJobStatus(job.ID, domain.JobStatusClosed)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusClosed, updated.Status)
}
