package repository

import (
	"github.com/campushire/placement_service/internal/domain"
	"gorm.io/gorm"
)

type AuditLogRepository interface {
	Create(entry *domain.AuditLog) error
	ListRecent(limit int) ([]domain.AuditLog, error)
}

type auditLogRepository struct {
	db *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) AuditLogRepository {
	return &auditLogRepository{db: db}
}

func (r *auditLogRepository) Create(entry *domain.AuditLog) error {
	return r.db.Create(entry).Error
}

func (r *auditLogRepository) ListRecent(limit int) ([]domain.AuditLog, error) {
	var logs []domain.AuditLog
	err := r.db.Order("created_at DESC").Limit(limit).Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}
