package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/proximahr/proximahr-backend/internal/app/model"
)

// AttendanceRepository handles timers and settled attendance records.
type AttendanceRepository interface {
	CreateTimer(timer *model.TimerLog) error
	// FindActiveTimer returns the user's running or paused timer.
	FindActiveTimer(userID uint) (*model.TimerLog, error)
	UpdateTimer(timer *model.TimerLog) error
	CreateRecord(record *model.AttendanceRecord) error
	FindRecordsInRange(userID uint, start, end time.Time) ([]model.AttendanceRecord, error)
	FindCompanyRecordsInRange(companyID uint, start, end time.Time) ([]model.AttendanceRecord, error)
	SumWorkedSeconds(companyID uint, start, end time.Time) (int64, error)
}

type attendanceRepository struct {
	db *gorm.DB
}

// NewAttendanceRepository creates an attendance repository.
func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) CreateTimer(timer *model.TimerLog) error {
	return r.db.Create(timer).Error
}

func (r *attendanceRepository) FindActiveTimer(userID uint) (*model.TimerLog, error) {
	var timer model.TimerLog
	err := r.db.Where("user_id = ? AND status IN ?",
		userID, []string{model.TimerStatusRunning, model.TimerStatusPaused}).
		Order("started_at DESC").
		First(&timer).Error
	if err != nil {
		return nil, err
	}
	return &timer, nil
}

func (r *attendanceRepository) UpdateTimer(timer *model.TimerLog) error {
	return r.db.Save(timer).Error
}

func (r *attendanceRepository) CreateRecord(record *model.AttendanceRecord) error {
	return r.db.Create(record).Error
}

func (r *attendanceRepository) FindRecordsInRange(userID uint, start, end time.Time) ([]model.AttendanceRecord, error) {
	var records []model.AttendanceRecord
	err := r.db.Where("user_id = ? AND date >= ? AND date < ?", userID, start, end).
		Order("date ASC").
		Find(&records).Error
	return records, err
}

func (r *attendanceRepository) FindCompanyRecordsInRange(companyID uint, start, end time.Time) ([]model.AttendanceRecord, error) {
	var records []model.AttendanceRecord
	err := r.db.Where("company_id = ? AND date >= ? AND date < ?", companyID, start, end).
		Order("date ASC").
		Find(&records).Error
	return records, err
}

func (r *attendanceRepository) SumWorkedSeconds(companyID uint, start, end time.Time) (int64, error) {
	var total int64
	err := r.db.Model(&model.AttendanceRecord{}).
		Where("company_id = ? AND date >= ? AND date < ?", companyID, start, end).
		Select("COALESCE(SUM(worked_seconds), 0)").
		Scan(&total).Error
	return total, err
}
