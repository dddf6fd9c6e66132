package repository

import (
	"gorm.io/gorm"

	"github.com/proximahr/proximahr-backend/internal/app/model"
)

// DepartmentRepository handles department persistence.
type DepartmentRepository interface {
	Create(department *model.Department) error
	FindByID(id uint) (*model.Department, error)
	FindByName(companyID uint, name string) (*model.Department, error)
	ListByCompany(companyID uint) ([]model.Department, error)
	Update(department *model.Department) error
	Delete(id uint) error
	CountMembers(departmentID uint) (int64, error)
}

type departmentRepository struct {
	db *gorm.DB
}

// NewDepartmentRepository creates a department repository.
func NewDepartmentRepository(db *gorm.DB) DepartmentRepository {
	return &departmentRepository{db: db}
}

func (r *departmentRepository) Create(department *model.Department) error {
	return r.db.Create(department).Error
}

func (r *departmentRepository) FindByID(id uint) (*model.Department, error) {
	var department model.Department
	if err := r.db.First(&department, id).Error; err != nil {
		return nil, err
	}
	return &department, nil
}

func (r *departmentRepository) FindByName(companyID uint, name string) (*model.Department, error) {
	var department model.Department
	err := r.db.Where("company_id = ? AND name = ?", companyID, name).
		First(&department).Error
	if err != nil {
		return nil, err
	}
	return &department, nil
}

func (r *departmentRepository) ListByCompany(companyID uint) ([]model.Department, error) {
	var departments []model.Department
	err := r.db.Where("company_id = ?", companyID).
		Order("name ASC").
		Find(&departments).Error
	return departments, err
}

func (r *departmentRepository) Update(department *model.Department) error {
	return r.db.Save(department).Error
}

func (r *departmentRepository) Delete(id uint) error {
	return r.db.Delete(&model.Department{}, id).Error
}

func (r *departmentRepository) CountMembers(departmentID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.User{}).
		Where("department_id = ?", departmentID).
		Count(&count).Error
	return count, err
}
