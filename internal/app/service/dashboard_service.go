package service

import (
	"time"

	"github.com/proximahr/proximahr-backend/internal/app/model"
	"github.com/proximahr/proximahr-backend/internal/app/repository"
)

// DashboardOverview is the admin landing-page aggregate.
type DashboardOverview struct {
	EmployeeCount    int64   `json:"employee_count"`
	DepartmentCount  int     `json:"department_count"`
	PendingLeaves    int64   `json:"pending_leaves"`
	OnLeaveToday     int64   `json:"on_leave_today"`
	MonthlyPayroll   float64 `json:"monthly_payroll"`
	WorkedHoursMonth float64 `json:"worked_hours_month"`
}

// DashboardService aggregates company-wide figures for the admin
// overview.
type DashboardService interface {
	Overview(companyID uint) (*DashboardOverview, error)
}

type dashboardService struct {
	userRepo       repository.UserRepository
	deptRepo       repository.DepartmentRepository
	leaveRepo      repository.LeaveRepository
	attendanceRepo repository.AttendanceRepository
	payroll        PayrollService
}

// NewDashboardService creates a dashboard service.
func NewDashboardService(
	userRepo repository.UserRepository,
	deptRepo repository.DepartmentRepository,
	leaveRepo repository.LeaveRepository,
	attendanceRepo repository.AttendanceRepository,
	payroll PayrollService,
) DashboardService {
	return &dashboardService{
		userRepo:       userRepo,
		deptRepo:       deptRepo,
		leaveRepo:      leaveRepo,
		attendanceRepo: attendanceRepo,
		payroll:        payroll,
	}
}

func (s *dashboardService) Overview(companyID uint) (*DashboardOverview, error) {
	employees, err := s.userRepo.CountByCompany(companyID)
	if err != nil {
		return nil, err
	}

	departments, err := s.deptRepo.ListByCompany(companyID)
	if err != nil {
		return nil, err
	}

	pending, err := s.leaveRepo.CountByStatus(companyID, model.LeaveStatusPending)
	if err != nil {
		return nil, err
	}

	today := time.Now().Truncate(24 * time.Hour)
	onLeave, err := s.leaveRepo.CountApprovedInRange(companyID, today, today)
	if err != nil {
		return nil, err
	}

	payroll, err := s.payroll.Summary(companyID)
	if err != nil {
		return nil, err
	}

	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	workedSeconds, err := s.attendanceRepo.SumWorkedSeconds(companyID, monthStart, monthStart.AddDate(0, 1, 0))
	if err != nil {
		return nil, err
	}

	return &DashboardOverview{
		EmployeeCount:    employees,
		DepartmentCount:  len(departments),
		PendingLeaves:    pending,
		OnLeaveToday:     onLeave,
		MonthlyPayroll:   payroll.TotalNet,
		WorkedHoursMonth: float64(workedSeconds) / 3600,
	}, nil
}
