package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/proximahr/proximahr-backend/internal/app/model"
	"github.com/proximahr/proximahr-backend/internal/app/repository"
	"github.com/proximahr/proximahr-backend/pkg/logger"
)

var (
	ErrDepartmentNotFound   = errors.New("department not found")
	ErrDepartmentNameExists = errors.New("department name already exists")
	ErrDepartmentNotEmpty   = errors.New("department still has members")
)

// DepartmentService handles department CRUD within a company.
type DepartmentService interface {
	Create(companyID uint, name, description string, managerID *uint) (*model.Department, error)
	Get(companyID, departmentID uint) (*model.Department, error)
	List(companyID uint) ([]model.Department, error)
	Update(companyID, departmentID uint, name, description string, managerID *uint) (*model.Department, error)
	Delete(companyID, departmentID uint) error
}

type departmentService struct {
	deptRepo repository.DepartmentRepository
	userRepo repository.UserRepository
}

// NewDepartmentService creates a department service.
func NewDepartmentService(
	deptRepo repository.DepartmentRepository,
	userRepo repository.UserRepository,
) DepartmentService {
	return &departmentService{
		deptRepo: deptRepo,
		userRepo: userRepo,
	}
}

func (s *departmentService) Create(companyID uint, name, description string, managerID *uint) (*model.Department, error) {
	if _, err := s.deptRepo.FindByName(companyID, name); err == nil {
		return nil, ErrDepartmentNameExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if managerID != nil {
		manager, err := s.userRepo.FindByID(*managerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrEmployeeNotFound
			}
			return nil, err
		}
		if manager.CompanyID != companyID {
			return nil, ErrWrongCompany
		}
	}

	department := &model.Department{
		CompanyID:   companyID,
		Name:        name,
		Description: description,
		ManagerID:   managerID,
	}
	if err := s.deptRepo.Create(department); err != nil {
		return nil, err
	}

	logger.Get().Info("department created", map[string]interface{}{
		"department_id": department.ID,
		"company_id":    companyID,
	})
	return department, nil
}

func (s *departmentService) Get(companyID, departmentID uint) (*model.Department, error) {
	return s.findInCompany(companyID, departmentID)
}

func (s *departmentService) List(companyID uint) ([]model.Department, error) {
	return s.deptRepo.ListByCompany(companyID)
}

func (s *departmentService) Update(companyID, departmentID uint, name, description string, managerID *uint) (*model.Department, error) {
	department, err := s.findInCompany(companyID, departmentID)
	if err != nil {
		return nil, err
	}

	if name != "" && name != department.Name {
		if _, err := s.deptRepo.FindByName(companyID, name); err == nil {
			return nil, ErrDepartmentNameExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		department.Name = name
	}
	if description != "" {
		department.Description = description
	}
	if managerID != nil {
		department.ManagerID = managerID
	}

	if err := s.deptRepo.Update(department); err != nil {
		return nil, err
	}
	return department, nil
}

// Delete removes an empty department. Departments with members must
// have them reassigned first.
func (s *departmentService) Delete(companyID, departmentID uint) error {
	if _, err := s.findInCompany(companyID, departmentID); err != nil {
		return err
	}

	members, err := s.deptRepo.CountMembers(departmentID)
	if err != nil {
		return err
	}
	if members > 0 {
		return ErrDepartmentNotEmpty
	}

	return s.deptRepo.Delete(departmentID)
}

func (s *departmentService) findInCompany(companyID, departmentID uint) (*model.Department, error) {
	department, err := s.deptRepo.FindByID(departmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentNotFound
		}
		return nil, err
	}
	if department.CompanyID != companyID {
		return nil, ErrDepartmentNotFound
	}
	return department, nil
}
