package repository

import (
	"github.com/campushire/placement_service/internal/domain"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(n *domain.Notification) error
	FindByID(id uint) (*domain.Notification, error)
	ListByRecipient(recipientID uint) ([]domain.Notification, error)
	Save(n *domain.Notification) error
	Delete(id uint) error
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(n *domain.Notification) error {
	return r.db.Create(n).Error
}

func (r *notificationRepository) FindByID(id uint) (*domain.Notification, error) {
	var n domain.Notification
	if err := r.db.First(&n, id).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *notificationRepository) ListByRecipient(recipientID uint) ([]domain.Notification, error) {
	var list []domain.Notification
	err := r.db.Where("recipient_id = ?", recipientID).Order("created_at DESC").Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *notificationRepository) Save(n *domain.Notification) error {
	return r.db.Save(n).Error
}

func (r *notificationRepository) Delete(id uint) error {
	return r.db.Delete(&domain.Notification{}, id).Error
}
