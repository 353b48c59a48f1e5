package repository

import (
	"strings"

	"github.com/campushire/placement_service/internal/domain"
	"gorm.io/gorm"
)

type CompanyRepository interface {
	Upsert(company *domain.Company) error
	FindByID(companyID uint) (*domain.Company, error)
	FindByUserID(userID uint) (*domain.Company, error)
	Save(company *domain.Company) error
	List(search string) ([]domain.Company, error)
}

type companyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &companyRepository{db: db}
}

func (c *companyRepository) Upsert(company *domain.Company) error {
	return c.db.Where("user_id = ?", company.UserID).Assign(company).FirstOrCreate(company).Error
}

func (c *companyRepository) FindByID(companyID uint) (*domain.Company, error) {
	var company domain.Company
	if err := c.db.First(&company, companyID).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

func (c *companyRepository) FindByUserID(userID uint) (*domain.Company, error) {
	var company domain.Company
	if err := c.db.Where("user_id = ?", userID).First(&company).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

func (c *companyRepository) Save(company *domain.Company) error {
	return c.db.Save(company).Error
}

func (c *companyRepository) List(search string) ([]domain.Company, error) {
	q := c.db.Model(&domain.Company{})
	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}

	var companies []domain.Company
	if err := q.Order("created_at DESC").Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}
