package repository

import (
	"strings"

	"github.com/campushire/placement_service/internal/domain"
	"github.com/campushire/placement_service/internal/dto"
	"gorm.io/gorm"
)

// JobRow is a job with the posting company's display name.
type JobRow struct {
	domain.Job
	CompanyName string
}

type JobRepository interface {
	Create(job *domain.Job) error
	FindByID(jobID uint) (*domain.Job, error)
	Save(job *domain.Job) error
	DeleteWithApplications(jobID uint) error
	List(filter dto.JobFilter) ([]JobRow, int64, error)
	ListAll() ([]JobRow, error)
	ListByCompanyUser(companyUserID uint) ([]domain.Job, error)
	CountJobs() (int64, error)
	CountJobsByStatus(status string) (int64, error)
	CountByCompanyUser(companyUserID uint, status string) (int64, error)
}

type jobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) Create(job *domain.Job) error {
	return r.db.Create(job).Error
}

func (r *jobRepository) FindByID(jobID uint) (*domain.Job, error) {
	var job domain.Job
	if err := r.db.First(&job, jobID).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *jobRepository) Save(job *domain.Job) error {
	return r.db.Save(job).Error
}

// DeleteWithApplications removes the job and every application that
// references it, in one transaction. Keeps student application lists free
// of dangling job references.
func (r *jobRepository) DeleteWithApplications(jobID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_id = ?", jobID).Delete(&domain.Application{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Job{}, jobID).Error
	})
}

// sortColumns whitelists the sortable fields of the list endpoint.
var sortColumns = map[string]string{
	"created_at": "jobs.created_at",
	"ctc":        "jobs.ctc",
	"deadline":   "jobs.deadline",
	"title":      "jobs.title",
}

func (r *jobRepository) List(filter dto.JobFilter) ([]JobRow, int64, error) {
	q := r.db.Model(&domain.Job{}).
		Select("jobs.*, users.name AS company_name").
		Joins("JOIN users ON users.id = jobs.company_user_id")

	if filter.CTCGte != nil {
		q = q.Where("jobs.ctc >= ?", *filter.CTCGte)
	}
	if filter.CTCGt != nil {
		q = q.Where("jobs.ctc > ?", *filter.CTCGt)
	}
	if filter.CTCLte != nil {
		q = q.Where("jobs.ctc <= ?", *filter.CTCLte)
	}
	if filter.CTCLt != nil {
		q = q.Where("jobs.ctc < ?", *filter.CTCLt)
	}
	if len(filter.Industries) == 1 {
		q = q.Where("jobs.industry = ?", filter.Industries[0])
	} else if len(filter.Industries) > 1 {
		q = q.Where("jobs.industry IN ?", filter.Industries)
	}
	if filter.Location != "" {
		q = q.Where("LOWER(jobs.location) LIKE ?", "%"+strings.ToLower(filter.Location)+"%")
	}
	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		q = q.Where(
			"LOWER(jobs.title) LIKE ? OR LOWER(jobs.description) LIKE ? OR LOWER(users.name) LIKE ?",
			like, like, like,
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "jobs.created_at DESC"
	if filter.Sort != "" {
		parts := []string{}
		for _, f := range strings.Split(filter.Sort, ",") {
			f = strings.TrimSpace(f)
			dir := "ASC"
			if strings.HasPrefix(f, "-") {
				dir = "DESC"
				f = strings.TrimPrefix(f, "-")
			}
			if col, ok := sortColumns[f]; ok {
				parts = append(parts, col+" "+dir)
			}
		}
		if len(parts) > 0 {
			order = strings.Join(parts, ", ")
		}
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 10
	}

	var rows []JobRow
	err := q.Order(order).
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *jobRepository) ListAll() ([]JobRow, error) {
	var rows []JobRow
	err := r.db.Model(&domain.Job{}).
		Select("jobs.*, users.name AS company_name").
		Joins("JOIN users ON users.id = jobs.company_user_id").
		Order("jobs.created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *jobRepository) ListByCompanyUser(companyUserID uint) ([]domain.Job, error) {
	var jobs []domain.Job
	err := r.db.Where("company_user_id = ?", companyUserID).Order("created_at DESC").Find(&jobs).Error
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *jobRepository) CountJobs() (int64, error) {
	var count int64
	err := r.db.Model(&domain.Job{}).Count(&count).Error
	return count, err
}

func (r *jobRepository) CountJobsByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Job{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *jobRepository) CountByCompanyUser(companyUserID uint, status string) (int64, error) {
	q := r.db.Model(&domain.Job{}).Where("company_user_id = ?", companyUserID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var count int64
	err := q.Count(&count).Error
	return count, err
}
