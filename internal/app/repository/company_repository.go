package repository

import (
	"gorm.io/gorm"

	"github.com/proximahr/proximahr-backend/internal/app/model"
)

// CompanyRepository handles company persistence.
type CompanyRepository interface {
	Create(company *model.Company) error
	FindByID(id uint) (*model.Company, error)
	FindByName(name string) (*model.Company, error)
	FindByAdminCode(code string) (*model.Company, error)
	Update(company *model.Company) error
	MarkAdminCreated(companyID uint) error
}

type companyRepository struct {
	db *gorm.DB
}

// NewCompanyRepository creates a company repository.
func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &companyRepository{db: db}
}

func (r *companyRepository) Create(company *model.Company) error {
	return r.db.Create(company).Error
}

func (r *companyRepository) FindByID(id uint) (*model.Company, error) {
	var company model.Company
	if err := r.db.First(&company, id).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *companyRepository) FindByName(name string) (*model.Company, error) {
	var company model.Company
	if err := r.db.Where("name = ?", name).First(&company).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *companyRepository) FindByAdminCode(code string) (*model.Company, error) {
	var company model.Company
	err := r.db.Where("admin_creation_code = ? AND admin_created = ?", code, false).
		First(&company).Error
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *companyRepository) Update(company *model.Company) error {
	return r.db.Save(company).Error
}

func (r *companyRepository) MarkAdminCreated(companyID uint) error {
	return r.db.Model(&model.Company{}).
		Where("id = ?", companyID).
		Updates(map[string]interface{}{
			"admin_created":       true,
			"admin_creation_code": "",
		}).Error
}
