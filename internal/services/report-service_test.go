package services

import (
	"testing"

	"github.com/campushire/placement_service/internal/domain"
	"github.com/campushire/placement_service/internal/dto"
	"github.com/campushire/placement_service/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newReportService(db *gorm.DB) ReportService {
	return NewReportService(
		repository.NewReportRepository(db),
		repository.NewUserRepository(db),
		repository.NewJobRepository(db),
	)
}

func TestPlacementRateZeroStudents(t *testing.T) {
	db := newTestDB(t)
	svc := newReportService(db)

	placement, err := svc.Placement()
	require.NoError(t, err)
	assert.EqualValues(t, 0, placement.TotalStudents)
	assert.EqualValues(t, 0, placement.PlacedStudents)
	assert.Equal(t, 0.0, placement.Rate)
	assert.Equal(t, 0.0, placement.AvgCTC)
	assert.Equal(t, 0.0, placement.MaxCTC)
}

func TestPlacementRateOneOfFour(t *testing.T) {
	db := newTestDB(t)
	svc := newReportService(db)

	company := seedUser(t, db, "Acme", domain.RoleCompany)
	job := seedJob(t, db, company.ID, "Backend Engineer", 12)

	var placedStudent *domain.Student
	for i, name := range []string{"A", "B", "C", "D"} {
		u := seedUser(t, db, name, domain.RoleStudent)
		s := seedStudent(t, db, u.ID, name, "CSE", 8)
		if i == 0 {
			placedStudent = s
		}
	}

	require.NoError(t, db.Create(&domain.Application{
		StudentID: placedStudent.ID,
		JobID:     job.ID,
		Status:    domain.AppStatusAccepted,
	}).Error)

	placement, err := svc.Placement()
	require.NoError(t, err)
	assert.EqualValues(t, 4, placement.TotalStudents)
	assert.EqualValues(t, 1, placement.PlacedStudents)
	assert.Equal(t, 25.0, placement.Rate)
}

func TestPlacementCountsStudentOnceAcrossOffers(t *testing.T) {
	db := newTestDB(t)
	svc := newReportService(db)

	company := seedUser(t, db, "Acme", domain.RoleCompany)
	jobA := seedJob(t, db, company.ID, "Backend Engineer", 10)
	jobB := seedJob(t, db, company.ID, "Data Engineer", 20)

	u := seedUser(t, db, "A", domain.RoleStudent)
	s := seedStudent(t, db, u.ID, "CS-1", "CSE", 8)

	for _, jobID := range []uint{jobA.ID, jobB.ID} {
		require.NoError(t, db.Create(&domain.Application{
			StudentID: s.ID,
			JobID:     jobID,
			Status:    domain.AppStatusAccepted,
		}).Error)
	}

	placement, err := svc.Placement()
	require.NoError(t, err)
	assert.EqualValues(t, 1, placement.PlacedStudents)
	assert.Equal(t, 100.0, placement.Rate)
	assert.Equal(t, 15.0, placement.AvgCTC)
	assert.Equal(t, 20.0, placement.MaxCTC)
}

func TestAvgCTCZeroWithoutAcceptedApplications(t *testing.T) {
	db := newTestDB(t)
	svc := newReportService(db)

	company := seedUser(t, db, "Acme", domain.RoleCompany)
	job := seedJob(t, db, company.ID, "Backend Engineer", 12)

	u := seedUser(t, db, "A", domain.RoleStudent)
	s := seedStudent(t, db, u.ID, "CS-1", "CSE", 8)
	require.NoError(t, db.Create(&domain.Application{
		StudentID: s.ID,
		JobID:     job.ID,
		Status:    domain.AppStatusShortlisted,
	}).Error)

	placement, err := svc.Placement()
	require.NoError(t, err)
	assert.Equal(t, 0.0, placement.AvgCTC)
	assert.Equal(t, 0.0, placement.MaxCTC)
	assert.EqualValues(t, 0, placement.PlacedStudents)
}

func TestFunnelAlwaysHasAllStages(t *testing.T) {
	db := newTestDB(t)
	svc := newReportService(db)

	funnel, err := svc.Funnel()
	require.NoError(t, err)
	assert.EqualValues(t, 0, funnel.Applied)
	assert.EqualValues(t, 0, funnel.Shortlisted)
	assert.EqualValues(t, 0, funnel.Accepted)
	assert.EqualValues(t, 0, funnel.Rejected)

	company := seedUser(t, db, "Acme", domain.RoleCompany)
	job := seedJob(t, db, company.ID, "Backend Engineer", 12)
	for i, status := range []string{
		domain.AppStatusApplied,
		domain.AppStatusApplied,
		domain.AppStatusShortlisted,
		domain.AppStatusRejected,
	} {
		u := seedUser(t, db, string(rune('A'+i)), domain.RoleStudent)
		s := seedStudent(t, db, u.ID, u.Name, "CSE", 7)
		require.NoError(t, db.Create(&domain.Application{
			StudentID: s.ID,
			JobID:     job.ID,
			Status:    status,
		}).Error)
	}

	funnel, err = svc.Funnel()
	require.NoError(t, err)
	assert.EqualValues(t, 2, funnel.Applied)
	assert.EqualValues(t, 1, funnel.Shortlisted)
	assert.EqualValues(t, 0, funnel.Accepted)
	assert.EqualValues(t, 1, funnel.Rejected)
}

func TestBranchStatsSplitsPlacement(t *testing.T) {
	db := newTestDB(t)
	svc := newReportService(db)

	company := seedUser(t, db, "Acme", domain.RoleCompany)
	job := seedJob(t, db, company.ID, "Backend Engineer", 12)

	cse1 := seedStudent(t, db, seedUser(t, db, "A", domain.RoleStudent).ID, "CS-1", "CSE", 8)
	seedStudent(t, db, seedUser(t, db, "B", domain.RoleStudent).ID, "CS-2", "CSE", 7)
	seedStudent(t, db, seedUser(t, db, "C", domain.RoleStudent).ID, "EC-1", "ECE", 9)

	require.NoError(t, db.Create(&domain.Application{
		StudentID: cse1.ID,
		JobID:     job.ID,
		Status:    domain.AppStatusAccepted,
	}).Error)

	stats, err := svc.BranchStats()
	require.NoError(t, err)
	require.Len(t, stats, 2)

	byBranch := map[string]dto.BranchStat{}
	for _, st := range stats {
		byBranch[st.Branch] = st
	}
	assert.EqualValues(t, 2, byBranch["CSE"].Total)
	assert.EqualValues(t, 1, byBranch["CSE"].Placed)
	assert.EqualValues(t, 1, byBranch["ECE"].Total)
	assert.EqualValues(t, 0, byBranch["ECE"].Placed)
}

func TestTopPartnersOrderedAndCapped(t *testing.T) {
	db := newTestDB(t)
	svc := newReportService(db)

	// six companies, company i gets i accepted applications
	students := make([]*domain.Student, 0, 6)
	for i := 0; i < 6; i++ {
		u := seedUser(t, db, string(rune('A'+i)), domain.RoleStudent)
		students = append(students, seedStudent(t, db, u.ID, u.Name, "CSE", 7))
	}

	for i := 1; i <= 6; i++ {
		company := seedUser(t, db, string(rune('P'+i)), domain.RoleCompany)
		job := seedJob(t, db, company.ID, "Role", float64(i))
		for j := 0; j < i; j++ {
			require.NoError(t, db.Create(&domain.Application{
				StudentID: students[j].ID,
				JobID:     job.ID,
				Status:    domain.AppStatusAccepted,
			}).Error)
		}
	}

	partners, err := svc.TopPartners()
	require.NoError(t, err)
	require.Len(t, partners, 5)
	assert.EqualValues(t, 6, partners[0].Hires)
	assert.EqualValues(t, 2, partners[4].Hires)
	for i := 1; i < len(partners); i++ {
		assert.GreaterOrEqual(t, partners[i-1].Hires, partners[i].Hires)
	}
}

func TestAdminStatsComposesEverything(t *testing.T) {
	db := newTestDB(t)
	svc := newReportService(db)

	seedUser(t, db, "Root", domain.RoleAdmin)
	company := seedUser(t, db, "Acme", domain.RoleCompany)
	job := seedJob(t, db, company.ID, "Backend Engineer", 10)
	closed := seedJob(t, db, company.ID, "Old Role", 5)
	require.NoError(t, db.Model(closed).Update("status", domain.JobStatusClosed).Error)

	u := seedUser(t, db, "A", domain.RoleStudent)
	s := seedStudent(t, db, u.ID, "CS-1", "CSE", 8)
	require.NoError(t, db.Create(&domain.Application{
		StudentID: s.ID,
		JobID:     job.ID,
		Status:    domain.AppStatusAccepted,
	}).Error)

	stats, err := svc.AdminStats()
	require.NoError(t, err)
	assert.EqualValues(t, 3, stats.Users.Total)
	assert.EqualValues(t, 1, stats.Users.Students)
	assert.EqualValues(t, 1, stats.Users.Companies)
	assert.EqualValues(t, 1, stats.Users.Admins)
	assert.EqualValues(t, 2, stats.Jobs.Total)
	assert.EqualValues(t, 1, stats.Jobs.Active)
	assert.EqualValues(t, 1, stats.Funnel.Accepted)
	assert.Equal(t, 100.0, stats.Placement.Rate)
	assert.Equal(t, 10.0, stats.Placement.AvgCTC)
	require.Len(t, stats.TopPartners, 1)
	assert.Equal(t, "Acme", stats.TopPartners[0].Name)
}

// Full lifecycle: apply, shortlist, accept, then the aggregates pick the
// placement up.
func TestPlacementScenarioEndToEnd(t *testing.T) {
	db := newTestDB(t)
	notifier := &fakeNotifier{}
	appSvc := newApplicationService(db, notifier)
	reportSvc := newReportService(db)

	studentUser := seedUser(t, db, "Asha", domain.RoleStudent)
	student := seedStudent(t, db, studentUser.ID, "CS-101", "CSE", 8.2)
	company := seedUser(t, db, "Acme", domain.RoleCompany)
	job := seedJob(t, db, company.ID, "Backend Engineer", 10)

	require.NoError(t, appSvc.Apply(studentUser.ID, job.ID))

	_, err := appSvc.UpdateStatus(asActor(company), job.ID, student.ID, dto.UpdateApplicationStatusRequest{
		Status: domain.AppStatusShortlisted,
	})
	require.NoError(t, err)
	require.Len(t, notifier.notifications, 1)

	_, err = appSvc.StudentDecision(studentUser.ID, job.ID, domain.AppStatusAccepted)
	require.NoError(t, err)

	placement, err := reportSvc.Placement()
	require.NoError(t, err)
	assert.EqualValues(t, 1, placement.PlacedStudents)
	assert.Equal(t, 100.0, placement.Rate)
	assert.Equal(t, 10.0, placement.AvgCTC)
	assert.Equal(t, 10.0, placement.MaxCTC)

	funnel, err := reportSvc.Funnel()
	require.NoError(t, err)
	assert.EqualValues(t, 1, funnel.Accepted)
	assert.EqualValues(t, 0, funnel.Applied)
}
