package repository

import (
	"github.com/campushire/placement_service/internal/domain"
	"gorm.io/gorm"
)

type StudentRepository interface {
	Upsert(student *domain.Student) error
	FindByUserID(userID uint) (*domain.Student, error)
	FindByID(studentID uint) (*domain.Student, error)
	Save(student *domain.Student) error
	List() ([]domain.Student, error)
	Count() (int64, error)
}

type studentRepository struct {
	db *gorm.DB
}

func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (s *studentRepository) Upsert(student *domain.Student) error {
	return s.db.Where("user_id = ?", student.UserID).Assign(student).FirstOrCreate(student).Error
}

func (s *studentRepository) FindByUserID(userID uint) (*domain.Student, error) {
	var student domain.Student
	if err := s.db.Where("user_id = ?", userID).First(&student).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

func (s *studentRepository) FindByID(studentID uint) (*domain.Student, error) {
	var student domain.Student
	if err := s.db.First(&student, studentID).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

func (s *studentRepository) Save(student *domain.Student) error {
	return s.db.Save(student).Error
}

func (s *studentRepository) List() ([]domain.Student, error) {
	var students []domain.Student
	if err := s.db.Order("created_at DESC").Find(&students).Error; err != nil {
		return nil, err
	}
	return students, nil
}

func (s *studentRepository) Count() (int64, error) {
	var count int64
	err := s.db.Model(&domain.Student{}).Count(&count).Error
	return count, err
}
