package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/proximahr/proximahr-backend/internal/app/model"
)

// UserFilter narrows user listings.
type UserFilter struct {
	CompanyID    uint
	Role         string
	Status       string
	DepartmentID *uint
	Search       string
	Page         int
	Limit        int
}

// UserRepository handles user persistence.
type UserRepository interface {
	Create(user *model.User) error
	FindByID(id uint) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	List(filter UserFilter) ([]model.User, int64, error)
	Update(user *model.User) error
	UpdatePassword(userID uint, passwordHash string) error
	UpdateStatus(userID uint, status string, suspendedUntil *time.Time) error
	CountByCompany(companyID uint) (int64, error)
	FindSuspensionsDue(now time.Time) ([]model.User, error)
	WithTx(tx *gorm.DB) UserRepository
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a user repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) WithTx(tx *gorm.DB) UserRepository {
	return &userRepository{db: tx}
}

func (r *userRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	if err := r.db.Preload("Department").First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(filter UserFilter) ([]model.User, int64, error) {
	query := r.db.Model(&model.User{}).Where("company_id = ?", filter.CompanyID)

	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.DepartmentID != nil {
		query = query.Where("department_id = ?", *filter.DepartmentID)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(
			"first_name LIKE ? OR last_name LIKE ? OR email LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var users []model.User
	err := query.Preload("Department").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (r *userRepository) Update(user *model.User) error {
	return r.db.Save(user).Error
}

func (r *userRepository) UpdatePassword(userID uint, passwordHash string) error {
	return r.db.Model(&model.User{}).
		Where("id = ?", userID).
		Update("password_hash", passwordHash).Error
}

func (r *userRepository) UpdateStatus(userID uint, status string, suspendedUntil *time.Time) error {
	return r.db.Model(&model.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"status":          status,
			"suspended_until": suspendedUntil,
		}).Error
}

func (r *userRepository) CountByCompany(companyID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.User{}).
		Where("company_id = ?", companyID).
		Count(&count).Error
	return count, err
}

func (r *userRepository) FindSuspensionsDue(now time.Time) ([]model.User, error) {
	var users []model.User
	err := r.db.Where("status = ? AND suspended_until IS NOT NULL AND suspended_until <= ?",
		model.StatusSuspended, now).
		Find(&users).Error
	return users, err
}
