package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/proximahr/proximahr-backend/internal/app/model"
	"github.com/proximahr/proximahr-backend/internal/app/repository"
	apperrors "github.com/proximahr/proximahr-backend/internal/errors"
	"github.com/proximahr/proximahr-backend/pkg/logger"
	"github.com/proximahr/proximahr-backend/pkg/util"
)

var (
	ErrCompanyExists    = errors.New("company name is already registered")
	ErrCompanyNotFound  = errors.New("company not found")
	ErrInvalidAdminCode = errors.New("admin creation code is invalid")
	ErrEmailExists      = errors.New("email is already in use")
)

// RegisterCompanyInput carries the company registration fields.
type RegisterCompanyInput struct {
	Name     string
	Email    string
	Address  string
	Industry string
}

// CreateAdminInput carries the admin account creation fields.
type CreateAdminInput struct {
	Code      string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// CompanyService handles company registration and the one-time admin
// account creation.
type CompanyService interface {
	Register(input RegisterCompanyInput) (*model.Company, error)
	CreateAdmin(input CreateAdminInput) (*model.User, error)
	GetByID(id uint) (*model.Company, error)
}

type companyService struct {
	db          *gorm.DB
	companyRepo repository.CompanyRepository
	userRepo    repository.UserRepository
	mailer      *util.Mailer
}

// NewCompanyService creates a company service.
func NewCompanyService(
	db *gorm.DB,
	companyRepo repository.CompanyRepository,
	userRepo repository.UserRepository,
	mailer *util.Mailer,
) CompanyService {
	return &companyService{
		db:          db,
		companyRepo: companyRepo,
		userRepo:    userRepo,
		mailer:      mailer,
	}
}

// Register creates the company and mails the admin creation code to
// the company email. The code is the only way to create the admin
// account.
func (s *companyService) Register(input RegisterCompanyInput) (*model.Company, error) {
	log := logger.Get()

	if _, err := s.companyRepo.FindByName(input.Name); err == nil {
		return nil, ErrCompanyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	code, err := util.GenerateAdminCode()
	if err != nil {
		return nil, err
	}

	company := &model.Company{
		Name:              input.Name,
		Email:             input.Email,
		Address:           input.Address,
		Industry:          input.Industry,
		AdminCreationCode: code,
	}

	if err := s.companyRepo.Create(company); err != nil {
		// races on the unique name index surface as duplicates
		if apperrors.IsDuplicateKey(err) {
			return nil, ErrCompanyExists
		}
		return nil, err
	}

	if err := s.mailer.SendAdminCreationCode(company.Email, company.Name, code); err != nil {
		log.Error("failed to send admin creation code", err, map[string]interface{}{
			"company_id": company.ID,
		})
		return nil, err
	}

	log.Info("company registered", map[string]interface{}{
		"company_id": company.ID,
		"name":       company.Name,
	})
	return company, nil
}

// CreateAdmin redeems the creation code for the single admin account.
// The code is cleared in the same transaction, so a company can never
// end up with two admins.
func (s *companyService) CreateAdmin(input CreateAdminInput) (*model.User, error) {
	log := logger.Get()

	company, err := s.companyRepo.FindByAdminCode(input.Code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidAdminCode
		}
		return nil, err
	}

	if _, err := s.userRepo.FindByEmail(input.Email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if len(input.Password) < 8 {
		return nil, ErrPasswordTooWeak
	}

	hash, err := util.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	admin := &model.User{
		CompanyID:    company.ID,
		Email:        input.Email,
		PasswordHash: hash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Role:         model.RoleAdmin,
		Status:       model.StatusActive,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.WithTx(tx).Create(admin); err != nil {
			return err
		}
		return tx.Model(&model.Company{}).
			Where("id = ? AND admin_created = ?", company.ID, false).
			Updates(map[string]interface{}{
				"admin_created":       true,
				"admin_creation_code": "",
			}).Error
	})
	if err != nil {
		return nil, err
	}

	log.Info("company admin created", map[string]interface{}{
		"company_id": company.ID,
		"user_id":    admin.ID,
	})
	return admin, nil
}

func (s *companyService) GetByID(id uint) (*model.Company, error) {
	company, err := s.companyRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	return company, nil
}
