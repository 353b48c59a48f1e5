package services

import (
	"fmt"
	"math"

	"github.com/campushire/placement_service/internal/apperr"
	"github.com/campushire/placement_service/internal/domain"
	"github.com/campushire/placement_service/internal/dto"
	"github.com/campushire/placement_service/internal/repository"
)

// ReportService computes the cross-entity placement statistics. Every
// query returns zeros/empty slices on an empty corpus, never an error.
type ReportService interface {
	Funnel() (*dto.Funnel, error)
	Placement() (*dto.PlacementSummary, error)
	BranchStats() ([]dto.BranchStat, error)
	TopPartners() ([]dto.PartnerStat, error)
	AdminStats() (*dto.AdminStatsResponse, error)
}

type reportService struct {
	reportRepo repository.ReportRepository
	userRepo   repository.UserRepository
	jobRepo    repository.JobRepository
}

func NewReportService(
	reportRepo repository.ReportRepository,
	userRepo repository.UserRepository,
	jobRepo repository.JobRepository,
) ReportService {
	return &reportService{
		reportRepo: reportRepo,
		userRepo:   userRepo,
		jobRepo:    jobRepo,
	}
}

func (s *reportService) Funnel() (*dto.Funnel, error) {
	counts, err := s.reportRepo.Funnel()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInternal, err)
	}
	return &dto.Funnel{
		Applied:     counts[domain.AppStatusApplied],
		Shortlisted: counts[domain.AppStatusShortlisted],
		Accepted:    counts[domain.AppStatusAccepted],
		Rejected:    counts[domain.AppStatusRejected],
	}, nil
}

// Placement reports placed/total students, the rate as a percentage with
// one decimal place (0 for an empty corpus, never NaN), and avg/max CTC
// over accepted applications.
func (s *reportService) Placement() (*dto.PlacementSummary, error) {
	total, err := s.reportRepo.StudentCount()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInternal, err)
	}
	placed, err := s.reportRepo.PlacedStudentCount()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInternal, err)
	}
	avg, max, err := s.reportRepo.CTCStats()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInternal, err)
	}

	rate := 0.0
	if total > 0 {
		rate = math.Round(float64(placed)/float64(total)*1000) / 10
	}

	return &dto.PlacementSummary{
		TotalStudents:  total,
		PlacedStudents: placed,
		Rate:           rate,
		AvgCTC:         math.Round(avg*100) / 100,
		MaxCTC:         max,
	}, nil
}

func (s *reportService) BranchStats() ([]dto.BranchStat, error) {
	stats, err := s.reportRepo.BranchStats()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInternal, err)
	}
	return stats, nil
}

func (s *reportService) TopPartners() ([]dto.PartnerStat, error) {
	partners, err := s.reportRepo.TopPartners(5)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInternal, err)
	}
	return partners, nil
}

func (s *reportService) AdminStats() (*dto.AdminStatsResponse, error) {
	out := &dto.AdminStatsResponse{}

	var err error
	if out.Users.Total, err = s.userRepo.CountUsers(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInternal, err)
	}
	if out.Users.Students, err = s.userRepo.CountUsersByRole(domain.RoleStudent); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInternal, err)
	}
	if out.Users.Companies, err = s.userRepo.CountUsersByRole(domain.RoleCompany); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInternal, err)
	}
	if out.Users.Admins, err = s.userRepo.CountUsersByRole(domain.RoleAdmin); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInternal, err)
	}

	if out.Jobs.Total, err = s.jobRepo.CountJobs(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInternal, err)
	}
	if out.Jobs.Active, err = s.jobRepo.CountJobsByStatus(domain.JobStatusOpen); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInternal, err)
	}

	funnel, err := s.Funnel()
	if err != nil {
		return nil, err
	}
	out.Funnel = *funnel

	placement, err := s.Placement()
	if err != nil {
		return nil, err
	}
	out.Placement = *placement

	if out.BranchStats, err = s.BranchStats(); err != nil {
		return nil, err
	}
	if out.TopPartners, err = s.TopPartners(); err != nil {
		return nil, err
	}
	return out, nil
}
