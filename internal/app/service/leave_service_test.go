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

func setupLeaveService(t *testing.T) (LeaveService, *gorm.DB) {
	t.Helper()
	database := db.SetupTestDB(t)
	leaveRepo := repository.NewLeaveRepository(database)
	userRepo := repository.NewUserRepository(database)
	notificationRepo := repository.NewNotificationRepository(database)
	notifications := NewNotificationService(notificationRepo, nil)
	return NewLeaveService(database, leaveRepo, userRepo, notifications), database
}

// nextMonday returns the next weekday start so requests never fall on
// a weekend.
func nextMonday() time.Time {
	d := time.Now().AddDate(0, 0, 1).Truncate(24 * time.Hour)
	for d.Weekday() != time.Monday {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

func TestCreateLeave(t *testing.T) {
	svc, database := setupLeaveService(t)
	user := createTestUser(t, database, "leave1@test.local", "password123")

	start := nextMonday()
	leave, err := svc.Create(CreateLeaveInput{
		UserID:    user.ID,
		CompanyID: user.CompanyID,
		Type:      model.LeaveTypeVacation,
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 4), // Mon..Fri
		Reason:    "holiday",
	})
	require.NoError(t, err)
	assert.Equal(t, 5, leave.Days)
	assert.Equal(t, model.LeaveStatusPending, leave.Status)
}

func TestCreateLeave_InvalidDates(t *testing.T) {
	svc, database := setupLeaveService(t)
	user := createTestUser(t, database, "leave2@test.local", "password123")

	start := nextMonday()
	_, err := svc.Create(CreateLeaveInput{
		UserID:    user.ID,
		CompanyID: user.CompanyID,
		Type:      model.LeaveTypeVacation,
		StartDate: start,
		EndDate:   start.AddDate(0, 0, -3),
	})
	assert.ErrorIs(t, err, ErrLeaveInvalidDates)

	_, err = svc.Create(CreateLeaveInput{
		UserID:    user.ID,
		CompanyID: user.CompanyID,
		Type:      model.LeaveTypeVacation,
		StartDate: time.Now().AddDate(0, 0, -10),
		EndDate:   time.Now().AddDate(0, 0, -5),
	})
	assert.ErrorIs(t, err, ErrLeaveInvalidDates)
}

func TestCreateLeave_InsufficientDays(t *testing.T) {
	svc, database := setupLeaveService(t)
	user := createTestUser(t, database, "leave3@test.local", "password123")
	require.NoError(t, database.Model(user).Update("vacation_days", 2).Error)

	start := nextMonday()
	_, err := svc.Create(CreateLeaveInput{
		UserID:    user.ID,
		CompanyID: user.CompanyID,
		Type:      model.LeaveTypeVacation,
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 4),
	})
	assert.ErrorIs(t, err, ErrLeaveInsufficientDays)

	// sick leave ignores the vacation balance
	_, err = svc.Create(CreateLeaveInput{
		UserID:    user.ID,
		CompanyID: user.CompanyID,
		Type:      model.LeaveTypeSick,
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 4),
	})
	assert.NoError(t, err)
}

func TestCreateLeave_Overlapping(t *testing.T) {
	svc, database := setupLeaveService(t)
	user := createTestUser(t, database, "leave4@test.local", "password123")

	start := nextMonday()
	_, err := svc.Create(CreateLeaveInput{
		UserID:    user.ID,
		CompanyID: user.CompanyID,
		Type:      model.LeaveTypeVacation,
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 4),
	})
	require.NoError(t, err)

	_, err = svc.Create(CreateLeaveInput{
		UserID:    user.ID,
		CompanyID: user.CompanyID,
		Type:      model.LeaveTypePersonal,
		StartDate: start.AddDate(0, 0, 2),
		EndDate:   start.AddDate(0, 0, 7),
	})
	assert.ErrorIs(t, err, ErrLeaveOverlapping)
}

func TestApproveLeave_DeductsDaysAndNotifies(t *testing.T) {
	svc, database := setupLeaveService(t)
	user := createTestUser(t, database, "leave5@test.local", "password123")
	admin := createTestUser(t, database, "leave5admin@test.local", "password123")
	require.NoError(t, database.Model(admin).Updates(map[string]interface{}{
		"role": model.RoleAdmin, "company_id": user.CompanyID,
	}).Error)

	start := nextMonday()
	leave, err := svc.Create(CreateLeaveInput{
		UserID:    user.ID,
		CompanyID: user.CompanyID,
		Type:      model.LeaveTypeVacation,
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 2),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Approve(user.CompanyID, leave.ID, admin.ID, "enjoy"))

	var updated model.User
	require.NoError(t, database.First(&updated, user.ID).Error)
	assert.Equal(t, leave.Days, updated.UsedLeaves)

	var resolved model.Leave
	require.NoError(t, database.First(&resolved, leave.ID).Error)
	assert.Equal(t, model.LeaveStatusApproved, resolved.Status)
	require.NotNil(t, resolved.ResolvedBy)
	assert.Equal(t, admin.ID, *resolved.ResolvedBy)

	var notifications []model.Notification
	require.NoError(t, database.Where("user_id = ?", user.ID).Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Equal(t, model.NotificationTypeLeaveApproved, notifications[0].Type)
}

func TestApproveLeave_OnlyOnce(t *testing.T) {
	svc, database := setupLeaveService(t)
	user := createTestUser(t, database, "leave6@test.local", "password123")

	start := nextMonday()
	leave, err := svc.Create(CreateLeaveInput{
		UserID:    user.ID,
		CompanyID: user.CompanyID,
		Type:      model.LeaveTypeVacation,
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 2),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Approve(user.CompanyID, leave.ID, 999, ""))
	assert.ErrorIs(t, svc.Approve(user.CompanyID, leave.ID, 999, ""), ErrLeaveAlreadyResolved)
	assert.ErrorIs(t, svc.Reject(user.CompanyID, leave.ID, 999, ""), ErrLeaveAlreadyResolved)

	// days are deducted exactly once
	var updated model.User
	require.NoError(t, database.First(&updated, user.ID).Error)
	assert.Equal(t, leave.Days, updated.UsedLeaves)
}

func TestRejectLeave_KeepsBalance(t *testing.T) {
	svc, database := setupLeaveService(t)
	user := createTestUser(t, database, "leave7@test.local", "password123")

	start := nextMonday()
	leave, err := svc.Create(CreateLeaveInput{
		UserID:    user.ID,
		CompanyID: user.CompanyID,
		Type:      model.LeaveTypeVacation,
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 2),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Reject(user.CompanyID, leave.ID, 999, "busy week"))

	var updated model.User
	require.NoError(t, database.First(&updated, user.ID).Error)
	assert.Equal(t, 0, updated.UsedLeaves)
}
