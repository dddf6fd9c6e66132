package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/proximahr/proximahr-backend/internal/app/model"
	"github.com/proximahr/proximahr-backend/internal/app/repository"
	"github.com/proximahr/proximahr-backend/internal/db"
)

func setupAttendanceService(t *testing.T) (AttendanceService, *gorm.DB) {
	t.Helper()
	database := db.SetupTestDB(t)
	repo := repository.NewAttendanceRepository(database)
	userRepo := repository.NewUserRepository(database)
	return NewAttendanceService(repo, userRepo), database
}

func TestTimerLifecycle(t *testing.T) {
	svc, database := setupAttendanceService(t)
	user := createTestUser(t, database, "timer1@test.local", "password123")

	timer, err := svc.StartTimer(user.ID, user.CompanyID)
	require.NoError(t, err)
	assert.Equal(t, model.TimerStatusRunning, timer.Status)

	// a second start while one is live is rejected
	_, err = svc.StartTimer(user.ID, user.CompanyID)
	assert.ErrorIs(t, err, ErrTimerRunning)

	paused, err := svc.PauseTimer(user.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TimerStatusPaused, paused.Status)
	require.NotNil(t, paused.PausedAt)

	// pausing twice is invalid
	_, err = svc.PauseTimer(user.ID)
	assert.ErrorIs(t, err, ErrTimerNotRunning)

	resumed, err := svc.ResumeTimer(user.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TimerStatusRunning, resumed.Status)
	assert.Nil(t, resumed.PausedAt)

	record, err := svc.StopTimer(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, record.UserID)
	assert.GreaterOrEqual(t, record.WorkedSeconds, int64(0))
	assert.Equal(t, int64(0), record.OvertimeSeconds)

	// the timer is gone once stopped
	_, err = svc.ActiveTimer(user.ID)
	assert.ErrorIs(t, err, ErrNoActiveTimer)
}

func TestResumeTimer_RequiresPause(t *testing.T) {
	svc, database := setupAttendanceService(t)
	user := createTestUser(t, database, "timer2@test.local", "password123")

	_, err := svc.ResumeTimer(user.ID)
	assert.ErrorIs(t, err, ErrNoActiveTimer)

	_, err = svc.StartTimer(user.ID, user.CompanyID)
	require.NoError(t, err)

	_, err = svc.ResumeTimer(user.ID)
	assert.ErrorIs(t, err, ErrTimerNotPaused)
}

func TestMonthlySummary(t *testing.T) {
	svc, database := setupAttendanceService(t)
	user := createTestUser(t, database, "timer3@test.local", "password123")

	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	records := []model.AttendanceRecord{
		{UserID: user.ID, CompanyID: user.CompanyID, Date: monthStart, WorkedSeconds: 8 * 3600},
		{UserID: user.ID, CompanyID: user.CompanyID, Date: monthStart.AddDate(0, 0, 1), WorkedSeconds: 10 * 3600, OvertimeSeconds: 2 * 3600},
	}
	for i := range records {
		require.NoError(t, database.Create(&records[i]).Error)
	}

	summary, err := svc.MonthlySummaryFor(user.ID, now.Year(), now.Month())
	require.NoError(t, err)
	assert.Equal(t, 2, summary.DaysWorked)
	assert.InDelta(t, 18.0, summary.WorkedHours, 0.01)
	assert.InDelta(t, 2.0, summary.OvertimeHours, 0.01)
	assert.InDelta(t, 9.0, summary.AverageHoursDay, 0.01)
}
