package repository

import (
	"time"

	"github.com/campushire/placement_service/internal/domain"
	"gorm.io/gorm"
)

// ApplicantRow is an application joined with its student's identity,
// as recruiters see it.
type ApplicantRow struct {
	StudentID uint
	JobID     uint
	Name      string
	Email     string
	CGPA      float64
	Resume    string
	Status    string
	AppliedAt time.Time
}

type ApplicationRepository interface {
	Create(app *domain.Application) error
	FindByStudentAndJob(studentID, jobID uint) (*domain.Application, error)
	ListByStudent(studentID uint) ([]domain.Application, error)
	Save(app *domain.Application) error

	ListApplicantsByJob(jobID uint) ([]ApplicantRow, error)
	ListApplicantsByJobIDs(jobIDs []uint) ([]ApplicantRow, error)
	CountByJobIDs(jobIDs []uint) (int64, error)
	CountByJobIDsAndStatus(jobIDs []uint, status string) (int64, error)
	DeleteByJobID(tx *gorm.DB, jobID uint) error
}

type applicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) Create(app *domain.Application) error {
	return r.db.Create(app).Error
}

func (r *applicationRepository) FindByStudentAndJob(studentID, jobID uint) (*domain.Application, error) {
	var app domain.Application
	err := r.db.Where("student_id = ? AND job_id = ?", studentID, jobID).First(&app).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepository) ListByStudent(studentID uint) ([]domain.Application, error) {
	var apps []domain.Application
	err := r.db.Where("student_id = ?", studentID).Order("applied_at ASC").Find(&apps).Error
	if err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *applicationRepository) Save(app *domain.Application) error {
	return r.db.Save(app).Error
}

func (r *applicationRepository) applicantQuery() *gorm.DB {
	return r.db.
		Table("applications").
		Select(`applications.student_id, applications.job_id, users.name, users.email,
			students.cgpa, students.resume, applications.status, applications.applied_at`).
		Joins("JOIN students ON students.id = applications.student_id").
		Joins("JOIN users ON users.id = students.user_id").
		Where("applications.deleted_at IS NULL")
}

func (r *applicationRepository) ListApplicantsByJob(jobID uint) ([]ApplicantRow, error) {
	var rows []ApplicantRow
	err := r.applicantQuery().
		Where("applications.job_id = ?", jobID).
		Order("applications.applied_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *applicationRepository) ListApplicantsByJobIDs(jobIDs []uint) ([]ApplicantRow, error) {
	rows := []ApplicantRow{}
	if len(jobIDs) == 0 {
		return rows, nil
	}
	err := r.applicantQuery().
		Where("applications.job_id IN ?", jobIDs).
		Order("applications.applied_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *applicationRepository) CountByJobIDs(jobIDs []uint) (int64, error) {
	if len(jobIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.Model(&domain.Application{}).Where("job_id IN ?", jobIDs).Count(&count).Error
	return count, err
}

func (r *applicationRepository) CountByJobIDsAndStatus(jobIDs []uint, status string) (int64, error) {
	if len(jobIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.Model(&domain.Application{}).
		Where("job_id IN ? AND status = ?", jobIDs, status).
		Count(&count).Error
	return count, err
}

// DeleteByJobID removes every application referencing a job. Runs inside
// the caller's transaction so a job delete and its cascade commit together.
func (r *applicationRepository) DeleteByJobID(tx *gorm.DB, jobID uint) error {
	return tx.Where("job_id = ?", jobID).Delete(&domain.Application{}).Error
}
