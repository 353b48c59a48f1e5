package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/campushire/placement_service/internal/apperr"
	"github.com/campushire/placement_service/internal/domain"
	"github.com/campushire/placement_service/internal/dto"
	"github.com/campushire/placement_service/internal/repository"
	"gorm.io/gorm"
)

// ApplicationService is the lifecycle engine for student-to-job
// applications: applied -> shortlisted -> accepted | rejected, with
// rejected also reachable straight from applied.
type ApplicationService interface {
	Apply(userID, jobID uint) error
	UpdateStatus(actor dto.AuthResponse, jobID, studentID uint, input dto.UpdateApplicationStatusRequest) (*dto.ApplicationResponse, error)
	BulkUpdateStatus(actor dto.AuthResponse, input dto.BulkUpdateApplicationStatusRequest) ([]uint, error)
	StudentDecision(userID, jobID uint, status string) (*dto.ApplicationResponse, error)

	ListForStudent(userID uint) ([]dto.ApplicationResponse, error)
	ListApplicantsForJob(actor dto.AuthResponse, jobID uint) ([]dto.JobApplicantResponse, error)
	ListCompanyApplications(actor dto.AuthResponse) ([]dto.JobApplicantResponse, error)
}

type applicationService struct {
	studentRepo repository.StudentRepository
	appRepo     repository.ApplicationRepository
	jobRepo     repository.JobRepository
	userRepo    repository.UserRepository
	notifier    Notifier
	policy      Policy
}

func NewApplicationService(
	studentRepo repository.StudentRepository,
	appRepo repository.ApplicationRepository,
	jobRepo repository.JobRepository,
	userRepo repository.UserRepository,
	notifier Notifier,
) ApplicationService {
	return &applicationService{
		studentRepo: studentRepo,
		appRepo:     appRepo,
		jobRepo:     jobRepo,
		userRepo:    userRepo,
		notifier:    notifier,
	}
}

// Apply creates a new application in state "applied". A second apply for
// the same (student, job) pair is a conflict. Job status and deadline are
// deliberately not checked here.
func (s *applicationService) Apply(userID, jobID uint) error {
	student, err := s.studentRepo.FindByUserID(userID)
	if err != nil {
		return fmt.Errorf("%w: student profile not found", apperr.ErrNotFound)
	}

	if _, err := s.jobRepo.FindByID(jobID); err != nil {
		return fmt.Errorf("%w: job not found", apperr.ErrNotFound)
	}

	if _, err := s.appRepo.FindByStudentAndJob(student.ID, jobID); err == nil {
		return fmt.Errorf("%w: already applied for this job", apperr.ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %v", apperr.ErrInternal, err)
	}

	app := &domain.Application{
		StudentID: student.ID,
		JobID:     jobID,
		Status:    domain.AppStatusApplied,
		AppliedAt: time.Now(),
	}
	if err := s.appRepo.Create(app); err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrInternal, err)
	}
	return nil
}

// UpdateStatus is the recruiter-side transition. Any status may follow any
// status here; the permissive behavior is intentional and the transition
// is gated on job ownership instead. Notifications go out after the
// mutation commits and never fail it.
func (s *applicationService) UpdateStatus(
	actor dto.AuthResponse,
	jobID, studentID uint,
	input dto.UpdateApplicationStatusRequest,
) (*dto.ApplicationResponse, error) {
	status := strings.TrimSpace(strings.ToLower(input.Status))
	if !domain.ValidAppStatus(status) {
		return nil, fmt.Errorf("%w: invalid status %q", apperr.ErrInvalidInput, input.Status)
	}

	student, err := s.studentRepo.FindByID(studentID)
	if err != nil {
		return nil, fmt.Errorf("%w: student not found", apperr.ErrNotFound)
	}

	app, err := s.appRepo.FindByStudentAndJob(studentID, jobID)
	if err != nil {
		return nil, fmt.Errorf("%w: application not found", apperr.ErrNotFound)
	}

	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		return nil, fmt.Errorf("%w: job not found", apperr.ErrNotFound)
	}

	if !s.policy.CanManageApplications(uint(actor.UserID), actor.Role, job) {
		return nil, fmt.Errorf("%w: not authorized to update this application", apperr.ErrForbidden)
	}

	app.Status = status
	if input.InterviewDate != nil {
		app.InterviewDate = input.InterviewDate
	}
	if input.InterviewRound != nil {
		app.InterviewRound = input.InterviewRound
	}
	if err := s.appRepo.Save(app); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInternal, err)
	}

	s.notifyStatusChange(student, job, app)

	resp := toApplicationResponse(app)
	resp.JobTitle = job.Title
	return &resp, nil
}

// BulkUpdateStatus applies the recruiter transition to each student
// independently. Missing students or applications are skipped silently;
// the returned slice holds the ids that were updated.
func (s *applicationService) BulkUpdateStatus(
	actor dto.AuthResponse,
	input dto.BulkUpdateApplicationStatusRequest,
) ([]uint, error) {
	status := strings.TrimSpace(strings.ToLower(input.Status))
	if !domain.ValidAppStatus(status) {
		return nil, fmt.Errorf("%w: invalid status %q", apperr.ErrInvalidInput, input.Status)
	}
	if len(input.StudentIDs) == 0 {
		return nil, fmt.Errorf("%w: student_ids are required", apperr.ErrInvalidInput)
	}

	job, err := s.jobRepo.FindByID(input.JobID)
	if err != nil {
		return nil, fmt.Errorf("%w: job not found", apperr.ErrNotFound)
	}

	if !s.policy.CanManageApplications(uint(actor.UserID), actor.Role, job) {
		return nil, fmt.Errorf("%w: not authorized to update these applications", apperr.ErrForbidden)
	}

	updated := []uint{}
	for _, studentID := range input.StudentIDs {
		student, err := s.studentRepo.FindByID(studentID)
		if err != nil {
			continue
		}
		app, err := s.appRepo.FindByStudentAndJob(studentID, input.JobID)
		if err != nil {
			continue
		}

		app.Status = status
		if err := s.appRepo.Save(app); err != nil {
			log.Printf("bulk update save error for student %d: %v", studentID, err)
			continue
		}

		s.notifier.Notify(
			student.UserID,
			fmt.Sprintf("Application Bulk Update: %s", job.Title),
			fmt.Sprintf("Your application status for %s has been updated to: %s", job.Title, status),
			"application",
			fmt.Sprintf("/student/applications/%d", job.ID),
		)
		if user, err := s.userRepo.FindUserById(student.UserID); err == nil {
			s.notifier.SendMail(
				user.Email,
				fmt.Sprintf("Application Status Updated: %s", job.Title),
				fmt.Sprintf("Your application for %s has been updated to: %s.\n\nLog in to the portal for more details.", job.Title, status),
			)
		}

		updated = append(updated, studentID)
	}

	return updated, nil
}

// StudentDecision is the student-side transition: only shortlisted
// applications may be accepted or declined.
func (s *applicationService) StudentDecision(userID, jobID uint, status string) (*dto.ApplicationResponse, error) {
	status = strings.TrimSpace(strings.ToLower(status))
	if status != domain.AppStatusAccepted && status != domain.AppStatusRejected {
		return nil, fmt.Errorf("%w: status must be accepted or rejected", apperr.ErrInvalidInput)
	}

	student, err := s.studentRepo.FindByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: student profile not found", apperr.ErrNotFound)
	}

	app, err := s.appRepo.FindByStudentAndJob(student.ID, jobID)
	if err != nil {
		return nil, fmt.Errorf("%w: application not found", apperr.ErrNotFound)
	}

	if app.Status != domain.AppStatusShortlisted {
		return nil, fmt.Errorf("%w: invalid status transition from %q", apperr.ErrInvalidInput, app.Status)
	}

	app.Status = status
	if err := s.appRepo.Save(app); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInternal, err)
	}

	resp := toApplicationResponse(app)
	return &resp, nil
}

func (s *applicationService) ListForStudent(userID uint) ([]dto.ApplicationResponse, error) {
	student, err := s.studentRepo.FindByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: student profile not found", apperr.ErrNotFound)
	}

	apps, err := s.appRepo.ListByStudent(student.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInternal, err)
	}

	out := make([]dto.ApplicationResponse, 0, len(apps))
	for i := range apps {
		resp := toApplicationResponse(&apps[i])
		// best effort: a deleted job leaves the title empty
		if job, err := s.jobRepo.FindByID(apps[i].JobID); err == nil {
			resp.JobTitle = job.Title
			if owner, err := s.userRepo.FindUserById(job.CompanyUserID); err == nil {
				resp.CompanyName = owner.Name
			}
		}
		out = append(out, resp)
	}
	return out, nil
}

func (s *applicationService) ListApplicantsForJob(actor dto.AuthResponse, jobID uint) ([]dto.JobApplicantResponse, error) {
	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		return nil, fmt.Errorf("%w: job not found", apperr.ErrNotFound)
	}

	if !s.policy.CanManageApplications(uint(actor.UserID), actor.Role, job) {
		return nil, fmt.Errorf("%w: not authorized to view applications for this job", apperr.ErrForbidden)
	}

	rows, err := s.appRepo.ListApplicantsByJob(jobID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInternal, err)
	}
	return toApplicantResponses(rows, map[uint]string{job.ID: job.Title}), nil
}

// ListCompanyApplications flattens applications across every job the
// acting company owns, newest first.
func (s *applicationService) ListCompanyApplications(actor dto.AuthResponse) ([]dto.JobApplicantResponse, error) {
	jobs, err := s.jobRepo.ListByCompanyUser(uint(actor.UserID))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInternal, err)
	}

	jobIDs := make([]uint, 0, len(jobs))
	titles := make(map[uint]string, len(jobs))
	for _, j := range jobs {
		jobIDs = append(jobIDs, j.ID)
		titles[j.ID] = j.Title
	}

	rows, err := s.appRepo.ListApplicantsByJobIDs(jobIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInternal, err)
	}
	return toApplicantResponses(rows, titles), nil
}

func (s *applicationService) notifyStatusChange(student *domain.Student, job *domain.Job, app *domain.Application) {
	ntype := "application"
	link := "/student/applications"
	if app.Status == domain.AppStatusShortlisted {
		ntype = "interview"
		link = fmt.Sprintf("/student/applications/offer/%d", job.ID)
	}

	s.notifier.Notify(
		student.UserID,
		fmt.Sprintf("Application Status Updated: %s", job.Title),
		fmt.Sprintf("The status of your application for %q has been updated to %s.", job.Title, strings.ToUpper(app.Status)),
		ntype,
		link,
	)

	user, err := s.userRepo.FindUserById(student.UserID)
	if err != nil {
		log.Printf("notification email skipped, user lookup failed: %v", err)
		return
	}

	body := fmt.Sprintf("Hello %s,\n\nThe status of your application for %q has been updated to: %s.",
		user.Name, job.Title, strings.ToUpper(app.Status))
	if app.InterviewDate != nil {
		round := "General"
		if app.InterviewRound != nil && *app.InterviewRound != "" {
			round = *app.InterviewRound
		}
		body += fmt.Sprintf("\n\nInterview Scheduled:\nRound: %s\nDate & Time: %s",
			round, app.InterviewDate.Format("02 Jan 2006 15:04"))
	}
	body += "\n\nLog in to your dashboard for more details."

	s.notifier.SendMail(user.Email, fmt.Sprintf("Application Status Updated: %s", job.Title), body)
}

func toApplicationResponse(app *domain.Application) dto.ApplicationResponse {
	return dto.ApplicationResponse{
		ID:             app.ID,
		JobID:          app.JobID,
		Status:         app.Status,
		AppliedAt:      app.AppliedAt,
		InterviewDate:  app.InterviewDate,
		InterviewRound: app.InterviewRound,
	}
}

func toApplicantResponses(rows []repository.ApplicantRow, titles map[uint]string) []dto.JobApplicantResponse {
	out := make([]dto.JobApplicantResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.JobApplicantResponse{
			StudentID: row.StudentID,
			JobID:     row.JobID,
			JobTitle:  titles[row.JobID],
			Name:      row.Name,
			Email:     row.Email,
			CGPA:      row.CGPA,
			Resume:    row.Resume,
			Status:    row.Status,
			AppliedAt: row.AppliedAt,
		})
	}
	return out
}
