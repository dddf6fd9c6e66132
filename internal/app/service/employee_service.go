package service

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/proximahr/proximahr-backend/internal/app/model"
	"github.com/proximahr/proximahr-backend/internal/app/repository"
	apperrors "github.com/proximahr/proximahr-backend/internal/errors"
	"github.com/proximahr/proximahr-backend/pkg/logger"
	"github.com/proximahr/proximahr-backend/pkg/util"
)

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrWrongCompany     = errors.New("employee belongs to another company")
)

const tempPasswordLength = 8

// CreateEmployeeInput carries the fields for provisioning an employee.
type CreateEmployeeInput struct {
	CompanyID      uint
	Email          string
	FirstName      string
	LastName       string
	DepartmentID   *uint
	Position       string
	EmploymentType string
	HireDate       *time.Time
	BaseSalary     float64
	Allowances     float64
	Deductions     float64
	WeeklyHours    int
	VacationDays   int
}

// UpdateEmployeeInput carries the mutable employee fields; nil fields
// are left unchanged.
type UpdateEmployeeInput struct {
	FirstName      *string
	LastName       *string
	DepartmentID   *uint
	Position       *string
	EmploymentType *string
	BaseSalary     *float64
	Allowances     *float64
	Deductions     *float64
	WeeklyHours    *int
	VacationDays   *int
}

// EmployeeService handles employee provisioning and lifecycle.
type EmployeeService interface {
	Create(input CreateEmployeeInput) (*model.User, error)
	Get(companyID, employeeID uint) (*model.User, error)
	List(filter repository.UserFilter) ([]model.User, int64, error)
	Update(companyID, employeeID uint, input UpdateEmployeeInput) (*model.User, error)
	Suspend(companyID, employeeID uint, until time.Time) error
	Reinstate(companyID, employeeID uint) error
	Disable(companyID, employeeID uint) error
}

type employeeService struct {
	userRepo repository.UserRepository
	deptRepo repository.DepartmentRepository
	mailer   *util.Mailer
}

// NewEmployeeService creates an employee service.
func NewEmployeeService(
	userRepo repository.UserRepository,
	deptRepo repository.DepartmentRepository,
	mailer *util.Mailer,
) EmployeeService {
	return &employeeService{
		userRepo: userRepo,
		deptRepo: deptRepo,
		mailer:   mailer,
	}
}

// Create provisions an employee account with a generated temporary
// password and emails the credentials.
func (s *employeeService) Create(input CreateEmployeeInput) (*model.User, error) {
	log := logger.Get()

	if _, err := s.userRepo.FindByEmail(input.Email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if input.DepartmentID != nil {
		dept, err := s.deptRepo.FindByID(*input.DepartmentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrDepartmentNotFound
			}
			return nil, err
		}
		if dept.CompanyID != input.CompanyID {
			return nil, ErrWrongCompany
		}
	}

	tempPassword, err := util.GenerateTempPassword(tempPasswordLength)
	if err != nil {
		return nil, err
	}
	hash, err := util.HashPassword(tempPassword)
	if err != nil {
		return nil, err
	}

	employee := &model.User{
		CompanyID:      input.CompanyID,
		Email:          input.Email,
		PasswordHash:   hash,
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		Role:           model.RoleEmployee,
		Status:         model.StatusActive,
		DepartmentID:   input.DepartmentID,
		Position:       input.Position,
		EmploymentType: input.EmploymentType,
		HireDate:       input.HireDate,
		BaseSalary:     input.BaseSalary,
		Allowances:     input.Allowances,
		Deductions:     input.Deductions,
		WeeklyHours:    input.WeeklyHours,
		VacationDays:   input.VacationDays,
	}
	if employee.EmploymentType == "" {
		employee.EmploymentType = model.EmploymentFullTime
	}
	if employee.WeeklyHours == 0 {
		employee.WeeklyHours = 40
	}
	if employee.VacationDays == 0 {
		employee.VacationDays = 15
	}

	if err := s.userRepo.Create(employee); err != nil {
		if apperrors.IsDuplicateKey(err) {
			return nil, ErrEmailExists
		}
		return nil, err
	}

	employeeID := fmt.Sprintf("EMP-%05d", employee.ID)
	if err := s.mailer.SendEmployeeCredentials(employee.Email, employeeID, tempPassword); err != nil {
		log.Error("failed to send employee credentials", err, map[string]interface{}{
			"user_id": employee.ID,
		})
		return nil, err
	}

	log.Info("employee provisioned", map[string]interface{}{
		"user_id":    employee.ID,
		"company_id": employee.CompanyID,
	})
	return employee, nil
}

func (s *employeeService) Get(companyID, employeeID uint) (*model.User, error) {
	return s.findInCompany(companyID, employeeID)
}

func (s *employeeService) List(filter repository.UserFilter) ([]model.User, int64, error) {
	return s.userRepo.List(filter)
}

func (s *employeeService) Update(companyID, employeeID uint, input UpdateEmployeeInput) (*model.User, error) {
	employee, err := s.findInCompany(companyID, employeeID)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		employee.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		employee.LastName = *input.LastName
	}
	if input.DepartmentID != nil {
		dept, err := s.deptRepo.FindByID(*input.DepartmentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrDepartmentNotFound
			}
			return nil, err
		}
		if dept.CompanyID != companyID {
			return nil, ErrWrongCompany
		}
		employee.DepartmentID = input.DepartmentID
	}
	if input.Position != nil {
		employee.Position = *input.Position
	}
	if input.EmploymentType != nil {
		employee.EmploymentType = *input.EmploymentType
	}
	if input.BaseSalary != nil {
		employee.BaseSalary = *input.BaseSalary
	}
	if input.Allowances != nil {
		employee.Allowances = *input.Allowances
	}
	if input.Deductions != nil {
		employee.Deductions = *input.Deductions
	}
	if input.WeeklyHours != nil {
		employee.WeeklyHours = *input.WeeklyHours
	}
	if input.VacationDays != nil {
		employee.VacationDays = *input.VacationDays
	}

	if err := s.userRepo.Update(employee); err != nil {
		return nil, err
	}
	return employee, nil
}

// Suspend blocks logins until the given time; the scheduler reverts
// the status once it passes.
func (s *employeeService) Suspend(companyID, employeeID uint, until time.Time) error {
	if _, err := s.findInCompany(companyID, employeeID); err != nil {
		return err
	}

	if err := s.userRepo.UpdateStatus(employeeID, model.StatusSuspended, &until); err != nil {
		return err
	}

	logger.Get().Info("employee suspended", map[string]interface{}{
		"user_id": employeeID,
		"until":   until,
	})
	return nil
}

func (s *employeeService) Reinstate(companyID, employeeID uint) error {
	if _, err := s.findInCompany(companyID, employeeID); err != nil {
		return err
	}
	return s.userRepo.UpdateStatus(employeeID, model.StatusActive, nil)
}

// Disable permanently deactivates the account. Records are kept for
// payroll history.
func (s *employeeService) Disable(companyID, employeeID uint) error {
	if _, err := s.findInCompany(companyID, employeeID); err != nil {
		return err
	}

	if err := s.userRepo.UpdateStatus(employeeID, model.StatusDisabled, nil); err != nil {
		return err
	}

	logger.Get().Info("employee disabled", map[string]interface{}{
		"user_id": employeeID,
	})
	return nil
}

func (s *employeeService) findInCompany(companyID, employeeID uint) (*model.User, error) {
	employee, err := s.userRepo.FindByID(employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	if employee.CompanyID != companyID {
		return nil, ErrWrongCompany
	}
	return employee, nil
}
