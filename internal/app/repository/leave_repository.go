package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/proximahr/proximahr-backend/internal/app/model"
)

// LeaveFilter narrows leave listings.
type LeaveFilter struct {
	CompanyID uint
	UserID    uint
	Status    string
	Page      int
	Limit     int
}

// LeaveRepository handles leave request persistence.
type LeaveRepository interface {
	Create(leave *model.Leave) error
	FindByID(id uint) (*model.Leave, error)
	List(filter LeaveFilter) ([]model.Leave, int64, error)
	// Resolve transitions a pending request to the given status and
	// returns the rows affected; zero means it was already resolved.
	Resolve(id uint, status string, resolverID uint, comment string, at time.Time) (int64, error)
	FindOverlapping(userID uint, start, end time.Time) ([]model.Leave, error)
	CountByStatus(companyID uint, status string) (int64, error)
	CountApprovedInRange(companyID uint, start, end time.Time) (int64, error)
	WithTx(tx *gorm.DB) LeaveRepository
}

type leaveRepository struct {
	db *gorm.DB
}

// NewLeaveRepository creates a leave repository.
func NewLeaveRepository(db *gorm.DB) LeaveRepository {
	return &leaveRepository{db: db}
}

func (r *leaveRepository) WithTx(tx *gorm.DB) LeaveRepository {
	return &leaveRepository{db: tx}
}

func (r *leaveRepository) Create(leave *model.Leave) error {
	return r.db.Create(leave).Error
}

func (r *leaveRepository) FindByID(id uint) (*model.Leave, error) {
	var leave model.Leave
	if err := r.db.Preload("User").First(&leave, id).Error; err != nil {
		return nil, err
	}
	return &leave, nil
}

func (r *leaveRepository) List(filter LeaveFilter) ([]model.Leave, int64, error) {
	query := r.db.Model(&model.Leave{}).Where("company_id = ?", filter.CompanyID)

	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
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

	var leaves []model.Leave
	err := query.Preload("User").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&leaves).Error
	if err != nil {
		return nil, 0, err
	}

	return leaves, total, nil
}

func (r *leaveRepository) Resolve(id uint, status string, resolverID uint, comment string, at time.Time) (int64, error) {
	result := r.db.Model(&model.Leave{}).
		Where("id = ? AND status = ?", id, model.LeaveStatusPending).
		Updates(map[string]interface{}{
			"status":      status,
			"resolved_by": resolverID,
			"resolved_at": at,
			"comment":     comment,
		})
	return result.RowsAffected, result.Error
}

func (r *leaveRepository) FindOverlapping(userID uint, start, end time.Time) ([]model.Leave, error) {
	var leaves []model.Leave
	err := r.db.Where("user_id = ? AND status != ? AND start_date <= ? AND end_date >= ?",
		userID, model.LeaveStatusRejected, end, start).
		Find(&leaves).Error
	return leaves, err
}

func (r *leaveRepository) CountByStatus(companyID uint, status string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Leave{}).
		Where("company_id = ? AND status = ?", companyID, status).
		Count(&count).Error
	return count, err
}

func (r *leaveRepository) CountApprovedInRange(companyID uint, start, end time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&model.Leave{}).
		Where("company_id = ? AND status = ? AND start_date <= ? AND end_date >= ?",
			companyID, model.LeaveStatusApproved, end, start).
		Count(&count).Error
	return count, err
}
