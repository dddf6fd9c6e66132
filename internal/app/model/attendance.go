package model

import "time"

// Timer statuses.
const (
	TimerStatusRunning = "running"
	TimerStatusPaused  = "paused"
	TimerStatusStopped = "stopped"
)

// TimerLog tracks a single working-day timer for an employee. At most
// one non-stopped timer exists per user; stopping it produces an
// AttendanceRecord.
type TimerLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	CompanyID uint      `gorm:"not null;index" json:"company_id"`
	Date      time.Time `gorm:"not null" json:"date"`
	Status    string    `gorm:"size:20;not null;default:'running'" json:"status"`

	StartedAt time.Time  `gorm:"not null" json:"started_at"`
	PausedAt  *time.Time `json:"paused_at,omitempty"`
	StoppedAt *time.Time `json:"stopped_at,omitempty"`

	// AccumulatedSeconds holds worked time banked across pauses; the
	// live segment since StartedAt (or last resume) is added on top.
	AccumulatedSeconds int64 `gorm:"default:0" json:"accumulated_seconds"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (TimerLog) TableName() string {
	return "timer_logs"
}

// WorkedSeconds returns the total worked time as of now.
func (t *TimerLog) WorkedSeconds(now time.Time) int64 {
	total := t.AccumulatedSeconds
	if t.Status == TimerStatusRunning {
		total += int64(now.Sub(t.StartedAt).Seconds())
	}
	return total
}

// AttendanceRecord is the settled daily work record for an employee.
type AttendanceRecord struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"not null;index" json:"user_id"`
	CompanyID       uint      `gorm:"not null;index" json:"company_id"`
	Date            time.Time `gorm:"not null;index" json:"date"`
	WorkedSeconds   int64     `gorm:"not null" json:"worked_seconds"`
	OvertimeSeconds int64     `gorm:"default:0" json:"overtime_seconds"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (AttendanceRecord) TableName() string {
	return "attendance_records"
}
