package service

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/proximahr/proximahr-backend/internal/app/model"
	"github.com/proximahr/proximahr-backend/internal/app/repository"
	"github.com/proximahr/proximahr-backend/pkg/logger"
)

var (
	ErrLeaveNotFound         = errors.New("leave request not found")
	ErrLeaveAlreadyResolved  = errors.New("leave request already resolved")
	ErrLeaveInsufficientDays = errors.New("not enough vacation days remaining")
	ErrLeaveOverlapping      = errors.New("overlapping leave request exists")
	ErrLeaveInvalidDates     = errors.New("leave dates are invalid")
)

// CreateLeaveInput carries the fields for a new leave request.
type CreateLeaveInput struct {
	UserID    uint
	CompanyID uint
	Type      string
	StartDate time.Time
	EndDate   time.Time
	Reason    string
}

// LeaveService handles leave requests and their approval flow.
type LeaveService interface {
	Create(input CreateLeaveInput) (*model.Leave, error)
	Get(companyID, leaveID uint) (*model.Leave, error)
	List(filter repository.LeaveFilter) ([]model.Leave, int64, error)
	// Approve resolves a pending request, deducts vacation days for
	// vacation leave and notifies the requester. At most one approval
	// or rejection ever succeeds per request.
	Approve(companyID, leaveID, resolverID uint, comment string) error
	Reject(companyID, leaveID, resolverID uint, comment string) error
}

type leaveService struct {
	db            *gorm.DB
	leaveRepo     repository.LeaveRepository
	userRepo      repository.UserRepository
	notifications NotificationService
}

// NewLeaveService creates a leave service.
func NewLeaveService(
	db *gorm.DB,
	leaveRepo repository.LeaveRepository,
	userRepo repository.UserRepository,
	notifications NotificationService,
) LeaveService {
	return &leaveService{
		db:            db,
		leaveRepo:     leaveRepo,
		userRepo:      userRepo,
		notifications: notifications,
	}
}

// leaveDays counts calendar days in the inclusive date range, skipping
// weekends.
func leaveDays(start, end time.Time) int {
	days := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			days++
		}
	}
	return days
}

func (s *leaveService) Create(input CreateLeaveInput) (*model.Leave, error) {
	log := logger.Get()

	start := input.StartDate.Truncate(24 * time.Hour)
	end := input.EndDate.Truncate(24 * time.Hour)
	today := time.Now().Truncate(24 * time.Hour)

	if end.Before(start) || start.Before(today) {
		return nil, ErrLeaveInvalidDates
	}

	user, err := s.userRepo.FindByID(input.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}

	days := leaveDays(start, end)
	if days == 0 {
		return nil, ErrLeaveInvalidDates
	}

	if input.Type == model.LeaveTypeVacation && days > user.RemainingLeaves() {
		return nil, ErrLeaveInsufficientDays
	}

	overlapping, err := s.leaveRepo.FindOverlapping(input.UserID, start, end)
	if err != nil {
		return nil, err
	}
	if len(overlapping) > 0 {
		return nil, ErrLeaveOverlapping
	}

	leave := &model.Leave{
		UserID:    input.UserID,
		CompanyID: input.CompanyID,
		Type:      input.Type,
		StartDate: start,
		EndDate:   end,
		Days:      days,
		Reason:    input.Reason,
		Status:    model.LeaveStatusPending,
	}
	if err := s.leaveRepo.Create(leave); err != nil {
		return nil, err
	}

	log.Info("leave requested", map[string]interface{}{
		"leave_id": leave.ID,
		"user_id":  input.UserID,
		"days":     days,
	})
	return leave, nil
}

func (s *leaveService) Get(companyID, leaveID uint) (*model.Leave, error) {
	return s.findInCompany(companyID, leaveID)
}

func (s *leaveService) List(filter repository.LeaveFilter) ([]model.Leave, int64, error) {
	return s.leaveRepo.List(filter)
}

func (s *leaveService) Approve(companyID, leaveID, resolverID uint, comment string) error {
	leave, err := s.findInCompany(companyID, leaveID)
	if err != nil {
		return err
	}
	if leave.IsResolved() {
		return ErrLeaveAlreadyResolved
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		// guarded update: a pending request resolves exactly once
		affected, err := s.leaveRepo.WithTx(tx).Resolve(
			leaveID, model.LeaveStatusApproved, resolverID, comment, time.Now())
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrLeaveAlreadyResolved
		}

		if leave.Type == model.LeaveTypeVacation {
			return tx.Model(&model.User{}).
				Where("id = ?", leave.UserID).
				Update("used_leaves", gorm.Expr("used_leaves + ?", leave.Days)).Error
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.notifyResolution(leave, model.NotificationTypeLeaveApproved, "Leave approved",
		fmt.Sprintf("Your %s leave from %s to %s was approved.",
			leave.Type, leave.StartDate.Format("2006-01-02"), leave.EndDate.Format("2006-01-02")))

	logger.Get().Info("leave approved", map[string]interface{}{
		"leave_id":    leaveID,
		"resolver_id": resolverID,
	})
	return nil
}

func (s *leaveService) Reject(companyID, leaveID, resolverID uint, comment string) error {
	leave, err := s.findInCompany(companyID, leaveID)
	if err != nil {
		return err
	}
	if leave.IsResolved() {
		return ErrLeaveAlreadyResolved
	}

	affected, err := s.leaveRepo.Resolve(
		leaveID, model.LeaveStatusRejected, resolverID, comment, time.Now())
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrLeaveAlreadyResolved
	}

	s.notifyResolution(leave, model.NotificationTypeLeaveRejected, "Leave rejected",
		fmt.Sprintf("Your %s leave from %s to %s was rejected.",
			leave.Type, leave.StartDate.Format("2006-01-02"), leave.EndDate.Format("2006-01-02")))

	logger.Get().Info("leave rejected", map[string]interface{}{
		"leave_id":    leaveID,
		"resolver_id": resolverID,
	})
	return nil
}

func (s *leaveService) notifyResolution(leave *model.Leave, notifType, title, message string) {
	if s.notifications == nil {
		return
	}
	if err := s.notifications.Notify(leave.UserID, leave.CompanyID, notifType, title, message); err != nil {
		logger.Get().Warn("failed to notify leave resolution", map[string]interface{}{
			"leave_id": leave.ID,
			"error":    err.Error(),
		})
	}
}

func (s *leaveService) findInCompany(companyID, leaveID uint) (*model.Leave, error) {
	leave, err := s.leaveRepo.FindByID(leaveID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeaveNotFound
		}
		return nil, err
	}
	if leave.CompanyID != companyID {
		return nil, ErrLeaveNotFound
	}
	return leave, nil
}
