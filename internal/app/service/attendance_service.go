package service

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/proximahr/proximahr-backend/internal/app/model"
	"github.com/proximahr/proximahr-backend/internal/app/repository"
	"github.com/proximahr/proximahr-backend/pkg/logger"
)

var (
	ErrNoActiveTimer   = errors.New("no active timer")
	ErrTimerRunning    = errors.New("a timer is already running")
	ErrTimerNotPaused  = errors.New("timer is not paused")
	ErrTimerNotRunning = errors.New("timer is not running")
)

// MonthlySummary aggregates an employee's attendance for one month.
type MonthlySummary struct {
	Year            int     `json:"year"`
	Month           int     `json:"month"`
	DaysWorked      int     `json:"days_worked"`
	WorkedHours     float64 `json:"worked_hours"`
	OvertimeHours   float64 `json:"overtime_hours"`
	AverageHoursDay float64 `json:"average_hours_day"`
}

// AttendanceService handles the work timer and attendance summaries.
type AttendanceService interface {
	StartTimer(userID, companyID uint) (*model.TimerLog, error)
	PauseTimer(userID uint) (*model.TimerLog, error)
	ResumeTimer(userID uint) (*model.TimerLog, error)
	// StopTimer settles the timer into an attendance record and
	// returns the record.
	StopTimer(userID uint) (*model.AttendanceRecord, error)
	ActiveTimer(userID uint) (*model.TimerLog, error)
	MonthlySummaryFor(userID uint, year int, month time.Month) (*MonthlySummary, error)
}

type attendanceService struct {
	repo     repository.AttendanceRepository
	userRepo repository.UserRepository
}

// NewAttendanceService creates an attendance service.
func NewAttendanceService(
	repo repository.AttendanceRepository,
	userRepo repository.UserRepository,
) AttendanceService {
	return &attendanceService{repo: repo, userRepo: userRepo}
}

func (s *attendanceService) StartTimer(userID, companyID uint) (*model.TimerLog, error) {
	if _, err := s.repo.FindActiveTimer(userID); err == nil {
		return nil, ErrTimerRunning
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	now := time.Now()
	timer := &model.TimerLog{
		UserID:    userID,
		CompanyID: companyID,
		Date:      now.Truncate(24 * time.Hour),
		Status:    model.TimerStatusRunning,
		StartedAt: now,
	}
	if err := s.repo.CreateTimer(timer); err != nil {
		return nil, err
	}

	logger.Get().Debug("timer started", map[string]interface{}{
		"user_id": userID,
	})
	return timer, nil
}

func (s *attendanceService) PauseTimer(userID uint) (*model.TimerLog, error) {
	timer, err := s.activeTimer(userID)
	if err != nil {
		return nil, err
	}
	if timer.Status != model.TimerStatusRunning {
		return nil, ErrTimerNotRunning
	}

	now := time.Now()
	timer.AccumulatedSeconds += int64(now.Sub(timer.StartedAt).Seconds())
	timer.Status = model.TimerStatusPaused
	timer.PausedAt = &now

	if err := s.repo.UpdateTimer(timer); err != nil {
		return nil, err
	}
	return timer, nil
}

func (s *attendanceService) ResumeTimer(userID uint) (*model.TimerLog, error) {
	timer, err := s.activeTimer(userID)
	if err != nil {
		return nil, err
	}
	if timer.Status != model.TimerStatusPaused {
		return nil, ErrTimerNotPaused
	}

	now := time.Now()
	// StartedAt marks the beginning of the live segment
	timer.StartedAt = now
	timer.Status = model.TimerStatusRunning
	timer.PausedAt = nil

	if err := s.repo.UpdateTimer(timer); err != nil {
		return nil, err
	}
	return timer, nil
}

func (s *attendanceService) StopTimer(userID uint) (*model.AttendanceRecord, error) {
	timer, err := s.activeTimer(userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	worked := timer.WorkedSeconds(now)
	timer.AccumulatedSeconds = worked
	timer.Status = model.TimerStatusStopped
	timer.StoppedAt = &now

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	// overtime is anything beyond the contracted daily hours
	dailySeconds := int64(user.WeeklyHours) * 3600 / 5
	overtime := worked - dailySeconds
	if overtime < 0 {
		overtime = 0
	}

	record := &model.AttendanceRecord{
		UserID:          userID,
		CompanyID:       timer.CompanyID,
		Date:            timer.Date,
		WorkedSeconds:   worked,
		OvertimeSeconds: overtime,
	}

	if err := s.repo.UpdateTimer(timer); err != nil {
		return nil, err
	}
	if err := s.repo.CreateRecord(record); err != nil {
		return nil, err
	}

	logger.Get().Info("timer stopped", map[string]interface{}{
		"user_id":        userID,
		"worked_seconds": worked,
	})
	return record, nil
}

func (s *attendanceService) ActiveTimer(userID uint) (*model.TimerLog, error) {
	return s.activeTimer(userID)
}

func (s *attendanceService) MonthlySummaryFor(userID uint, year int, month time.Month) (*MonthlySummary, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	records, err := s.repo.FindRecordsInRange(userID, start, end)
	if err != nil {
		return nil, err
	}

	var workedSeconds, overtimeSeconds int64
	for _, r := range records {
		workedSeconds += r.WorkedSeconds
		overtimeSeconds += r.OvertimeSeconds
	}

	summary := &MonthlySummary{
		Year:          year,
		Month:         int(month),
		DaysWorked:    len(records),
		WorkedHours:   float64(workedSeconds) / 3600,
		OvertimeHours: float64(overtimeSeconds) / 3600,
	}
	if summary.DaysWorked > 0 {
		summary.AverageHoursDay = summary.WorkedHours / float64(summary.DaysWorked)
	}
	return summary, nil
}

func (s *attendanceService) activeTimer(userID uint) (*model.TimerLog, error) {
	timer, err := s.repo.FindActiveTimer(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoActiveTimer
		}
		return nil, err
	}
	return timer, nil
}
