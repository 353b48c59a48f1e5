package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/campushire/placement_service/internal/apperr"
	"github.com/campushire/placement_service/internal/domain"
	"github.com/campushire/placement_service/internal/dto"
	"github.com/campushire/placement_service/internal/repository"
	"gorm.io/datatypes"
)

type JobService interface {
	CreateJob(actor dto.AuthResponse, input dto.JobRequest) (*dto.JobResponse, error)
	GetJob(jobID uint) (*dto.JobResponse, error)
	UpdateJob(actor dto.AuthResponse, jobID uint, input dto.JobRequest) (*dto.JobResponse, error)
	DeleteJob(actor dto.AuthResponse, jobID uint) error
	ListJobs(filter dto.JobFilter) (*dto.JobListResponse, error)
	RecruiterStats(actor dto.AuthResponse) (*dto.RecruiterStatsResponse, error)
	SetJobStatus(jobID uint, status string) (*dto.JobResponse, error)
}

type jobService struct {
	jobRepo     repository.JobRepository
	appRepo     repository.ApplicationRepository
	companyRepo repository.CompanyRepository
	userRepo    repository.UserRepository
	policy      Policy
}

func NewJobService(
	jobRepo repository.JobRepository,
	appRepo repository.ApplicationRepository,
	companyRepo repository.CompanyRepository,
	userRepo repository.UserRepository,
) JobService {
	return &jobService{
		jobRepo:     jobRepo,
		appRepo:     appRepo,
		companyRepo: companyRepo,
		userRepo:    userRepo,
	}
}

func validateJobInput(input dto.JobRequest) error {
	title := strings.TrimSpace(input.Title)
	if len(title) < 3 || len(title) > 100 {
		return fmt.Errorf("%w: job title must be between 3 and 100 characters", apperr.ErrInvalidInput)
	}
	if len(strings.TrimSpace(input.Description)) < 10 {
		return fmt.Errorf("%w: job description must be at least 10 characters", apperr.ErrInvalidInput)
	}
	if strings.TrimSpace(input.Industry) == "" {
		return fmt.Errorf("%w: industry is required", apperr.ErrInvalidInput)
	}
	loc := strings.TrimSpace(input.Location)
	if len(loc) < 2 || len(loc) > 100 {
		return fmt.Errorf("%w: location must be between 2 and 100 characters", apperr.ErrInvalidInput)
	}
	if input.CTC < 0 {
		return fmt.Errorf("%w: ctc must be a positive number", apperr.ErrInvalidInput)
	}
	if input.Deadline.IsZero() || input.Deadline.Before(time.Now()) {
		return fmt.Errorf("%w: deadline must be in the future", apperr.ErrInvalidInput)
	}
	if input.Status != "" && input.Status != domain.JobStatusOpen && input.Status != domain.JobStatusClosed {
		return fmt.Errorf("%w: status must be open or closed", apperr.ErrInvalidInput)
	}
	return nil
}

// CreateJob posts a drive owned by the acting company user. A minimal
// Company profile is lazily created alongside the first posting.
func (s *jobService) CreateJob(actor dto.AuthResponse, input dto.JobRequest) (*dto.JobResponse, error) {
	if err := validateJobInput(input); err != nil {
		return nil, err
	}

	job := &domain.Job{
		CompanyUserID: uint(actor.UserID),
		Title:         strings.TrimSpace(input.Title),
		Description:   strings.TrimSpace(input.Description),
		Industry:      strings.TrimSpace(input.Industry),
		Location:      strings.TrimSpace(input.Location),
		CTC:           input.CTC,
		Deadline:      input.Deadline,
		Status:        domain.JobStatusOpen,
	}
	if input.Status != "" {
		job.Status = input.Status
	}
	if len(input.Requirements) > 0 {
		b, err := json.Marshal(input.Requirements)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid requirements", apperr.ErrInvalidInput)
		}
		job.Requirements = datatypes.JSON(b)
	}

	if err := s.jobRepo.Create(job); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInternal, err)
	}

	if actor.Role == domain.RoleCompany {
		if user, err := s.userRepo.FindUserById(uint(actor.UserID)); err == nil {
			_ = s.companyRepo.Upsert(&domain.Company{
				UserID: user.ID,
				Name:   user.Name,
				Email:  user.Email,
			})
		}
	}

	resp := s.toJobResponse(job, "")
	return &resp, nil
}

func (s *jobService) GetJob(jobID uint) (*dto.JobResponse, error) {
	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		return nil, fmt.Errorf("%w: job not found", apperr.ErrNotFound)
	}

	companyName := ""
	if owner, err := s.userRepo.FindUserById(job.CompanyUserID); err == nil {
		companyName = owner.Name
	}
	resp := s.toJobResponse(job, companyName)
	return &resp, nil
}

func (s *jobService) UpdateJob(actor dto.AuthResponse, jobID uint, input dto.JobRequest) (*dto.JobResponse, error) {
	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		return nil, fmt.Errorf("%w: job not found", apperr.ErrNotFound)
	}

	if !s.policy.CanManageJob(uint(actor.UserID), actor.Role, job) {
		return nil, fmt.Errorf("%w: not authorized to update this job", apperr.ErrForbidden)
	}

	if err := validateJobInput(input); err != nil {
		return nil, err
	}

	job.Title = strings.TrimSpace(input.Title)
	job.Description = strings.TrimSpace(input.Description)
	job.Industry = strings.TrimSpace(input.Industry)
	job.Location = strings.TrimSpace(input.Location)
	job.CTC = input.CTC
	job.Deadline = input.Deadline
	if input.Status != "" {
		job.Status = input.Status
	}
	if input.Requirements != nil {
		b, err := json.Marshal(input.Requirements)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid requirements", apperr.ErrInvalidInput)
		}
		job.Requirements = datatypes.JSON(b)
	}

	if err := s.jobRepo.Save(job); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInternal, err)
	}

	resp := s.toJobResponse(job, "")
	return &resp, nil
}

// DeleteJob removes the job together with its applications, so student
// application lists never point at a drive that no longer exists.
func (s *jobService) DeleteJob(actor dto.AuthResponse, jobID uint) error {
	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		return fmt.Errorf("%w: job not found", apperr.ErrNotFound)
	}

	if !s.policy.CanManageJob(uint(actor.UserID), actor.Role, job) {
		return fmt.Errorf("%w: not authorized to delete this job", apperr.ErrForbidden)
	}

	if err := s.jobRepo.DeleteWithApplications(jobID); err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrInternal, err)
	}
	return nil
}

func (s *jobService) ListJobs(filter dto.JobFilter) (*dto.JobListResponse, error) {
	rows, total, err := s.jobRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInternal, err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 10
	}

	jobs := make([]dto.JobResponse, 0, len(rows))
	for i := range rows {
		jobs = append(jobs, s.toJobResponse(&rows[i].Job, rows[i].CompanyName))
	}

	resp := &dto.JobListResponse{
		Count: len(jobs),
		Total: total,
		Jobs:  jobs,
	}
	if int64(page*limit) < total {
		resp.Pagination.Next = &dto.PageInfo{Page: page + 1, Limit: limit}
	}
	if page > 1 {
		resp.Pagination.Prev = &dto.PageInfo{Page: page - 1, Limit: limit}
	}
	return resp, nil
}

func (s *jobService) RecruiterStats(actor dto.AuthResponse) (*dto.RecruiterStatsResponse, error) {
	jobs, err := s.jobRepo.ListByCompanyUser(uint(actor.UserID))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInternal, err)
	}

	stats := &dto.RecruiterStatsResponse{TotalJobs: len(jobs)}
	jobIDs := make([]uint, 0, len(jobs))
	for _, j := range jobs {
		jobIDs = append(jobIDs, j.ID)
		if j.Status == domain.JobStatusOpen {
			stats.ActiveJobs++
		}
	}

	if stats.TotalApplicants, err = s.appRepo.CountByJobIDs(jobIDs); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInternal, err)
	}
	if stats.ShortlistedCount, err = s.appRepo.CountByJobIDsAndStatus(jobIDs, domain.AppStatusShortlisted); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInternal, err)
	}
	if stats.AcceptedCount, err = s.appRepo.CountByJobIDsAndStatus(jobIDs, domain.AppStatusAccepted); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInternal, err)
	}
	if stats.RejectedCount, err = s.appRepo.CountByJobIDsAndStatus(jobIDs, domain.AppStatusRejected); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInternal, err)
	}
	return stats, nil
}

// SetJobStatus is the admin moderation toggle; ownership is not checked.
func (s *jobService) SetJobStatus(jobID uint, status string) (*dto.JobResponse, error) {
	if status != domain.JobStatusOpen && status != domain.JobStatusClosed {
		return nil, fmt.Errorf("%w: status must be open or closed", apperr.ErrInvalidInput)
	}

	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		return nil, fmt.Errorf("%w: job not found", apperr.ErrNotFound)
	}

	job.Status = status
	if err := s.jobRepo.Save(job); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInternal, err)
	}

	resp := s.toJobResponse(job, "")
	return &resp, nil
}

func (s *jobService) toJobResponse(job *domain.Job, companyName string) dto.JobResponse {
	resp := dto.JobResponse{
		ID:          job.ID,
		Title:       job.Title,
		Description: job.Description,
		Industry:    job.Industry,
		Location:    job.Location,
		CTC:         job.CTC,
		Deadline:    job.Deadline,
		Status:      job.Status,
		CompanyID:   job.CompanyUserID,
		CompanyName: companyName,
		CreatedAt:   job.CreatedAt,
	}
	if len(job.Requirements) > 0 {
		_ = json.Unmarshal(job.Requirements, &resp.Requirements)
	}
	return resp
}
