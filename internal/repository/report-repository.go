package repository

import (
	"github.com/campushire/placement_service/internal/domain"
	"github.com/campushire/placement_service/internal/dto"
	"gorm.io/gorm"
)

// ReportRepository runs the cross-entity aggregates behind the reporting
// endpoints. Every query tolerates an empty corpus and returns zeros.
type ReportRepository interface {
	Funnel() (map[string]int64, error)
	StudentCount() (int64, error)
	PlacedStudentCount() (int64, error)
	CTCStats() (avg float64, max float64, err error)
	BranchStats() ([]dto.BranchStat, error)
	TopPartners(limit int) ([]dto.PartnerStat, error)
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Funnel() (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	err := r.db.Model(&domain.Application{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(rows))
	for _, rw := range rows {
		out[rw.Status] = rw.Count
	}
	return out, nil
}

func (r *reportRepository) StudentCount() (int64, error) {
	var count int64
	err := r.db.Model(&domain.Student{}).Count(&count).Error
	return count, err
}

// PlacedStudentCount counts students holding at least one accepted
// application, not accepted applications themselves.
func (r *reportRepository) PlacedStudentCount() (int64, error) {
	var count int64
	err := r.db.Model(&domain.Application{}).
		Select("COUNT(DISTINCT student_id)").
		Where("status = ?", domain.AppStatusAccepted).
		Scan(&count).Error
	return count, err
}

func (r *reportRepository) CTCStats() (float64, float64, error) {
	type row struct {
		Avg float64
		Max float64
	}
	var out row
	err := r.db.Model(&domain.Application{}).
		Select("COALESCE(AVG(jobs.ctc), 0) AS avg, COALESCE(MAX(jobs.ctc), 0) AS max").
		Joins("JOIN jobs ON jobs.id = applications.job_id").
		Where("applications.status = ?", domain.AppStatusAccepted).
		Scan(&out).Error
	if err != nil {
		return 0, 0, err
	}
	return out.Avg, out.Max, nil
}

func (r *reportRepository) BranchStats() ([]dto.BranchStat, error) {
	stats := []dto.BranchStat{}
	err := r.db.Model(&domain.Student{}).
		Select(`students.branch,
			COUNT(DISTINCT students.id) AS total,
			COUNT(DISTINCT CASE WHEN applications.status = ? THEN students.id END) AS placed`,
			domain.AppStatusAccepted).
		Joins("LEFT JOIN applications ON applications.student_id = students.id AND applications.deleted_at IS NULL").
		Group("students.branch").
		Order("students.branch ASC").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *reportRepository) TopPartners(limit int) ([]dto.PartnerStat, error) {
	partners := []dto.PartnerStat{}
	err := r.db.Model(&domain.Application{}).
		Select("users.id AS company_user_id, users.name AS name, COUNT(*) AS hires").
		Joins("JOIN jobs ON jobs.id = applications.job_id").
		Joins("JOIN users ON users.id = jobs.company_user_id").
		Where("applications.status = ?", domain.AppStatusAccepted).
		Group("users.id, users.name").
		Order("hires DESC, users.id ASC").
		Limit(limit).
		Scan(&partners).Error
	if err != nil {
		return nil, err
	}
	return partners, nil
}
