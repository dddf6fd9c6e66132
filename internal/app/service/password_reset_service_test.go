package service

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/proximahr/proximahr-backend/internal/app/model"
	"github.com/proximahr/proximahr-backend/internal/app/repository"
	"github.com/proximahr/proximahr-backend/internal/db"
	"github.com/proximahr/proximahr-backend/pkg/util"
)

func setupResetService(t *testing.T) (PasswordResetService, repository.PasswordResetRepository, *gorm.DB) {
	t.Helper()
	database := db.SetupTestDB(t)
	userRepo := repository.NewUserRepository(database)
	resetRepo := repository.NewPasswordResetRepository(database)
	mailer := util.NewMailer("", "", "", "", "noreply@test.local")
	svc := NewPasswordResetService(database, userRepo, resetRepo, mailer)
	return svc, resetRepo, database
}

func createTestUser(t *testing.T, database *gorm.DB, email, password string) *model.User {
	t.Helper()
	hash, err := util.HashPassword(password)
	require.NoError(t, err)

	company := &model.Company{Name: "Test Co " + email, Email: "co@test.local", AdminCreated: true}
	require.NoError(t, database.Create(company).Error)

	user := &model.User{
		CompanyID:    company.ID,
		Email:        email,
		PasswordHash: hash,
		FirstName:    "Test",
		LastName:     "User",
		Role:         model.RoleEmployee,
		Status:       model.StatusActive,
	}
	require.NoError(t, database.Create(user).Error)
	return user
}

func latestToken(t *testing.T, database *gorm.DB, userID uint) *model.PasswordReset {
	t.Helper()
	var reset model.PasswordReset
	err := database.Where("user_id = ?", userID).Order("created_at DESC").First(&reset).Error
	require.NoError(t, err)
	return &reset
}

func TestRequestReset_UnknownEmailSucceeds(t *testing.T) {
	svc, _, _ := setupResetService(t)

	err := svc.RequestReset("nobody@test.local", "http://localhost:3000")
	assert.NoError(t, err)
}

func TestRequestReset_IssuesToken(t *testing.T) {
	svc, _, database := setupResetService(t)
	user := createTestUser(t, database, "reset1@test.local", "oldpassword")

	require.NoError(t, svc.RequestReset(user.Email, "http://localhost:3000"))

	reset := latestToken(t, database, user.ID)
	assert.Len(t, reset.Token, 64) // 32 random bytes, hex encoded
	assert.False(t, reset.Used)
	assert.WithinDuration(t, time.Now().Add(time.Hour), reset.ExpiresAt, time.Minute)
}

func TestRequestReset_NewTokenInvalidatesPrior(t *testing.T) {
	svc, resetRepo, database := setupResetService(t)
	user := createTestUser(t, database, "reset2@test.local", "oldpassword")

	// seed an earlier token directly, outside the rate limit window
	first := &model.PasswordReset{
		UserID:    user.ID,
		Token:     "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		ExpiresAt: time.Now().Add(time.Hour),
		CreatedAt: time.Now().Add(-2 * time.Minute),
	}
	require.NoError(t, database.Create(first).Error)

	require.NoError(t, svc.RequestReset(user.Email, "http://localhost:3000"))

	_, err := resetRepo.FindByToken(first.Token)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound, "earlier token must be removed on new issuance")

	fresh := latestToken(t, database, user.ID)
	assert.NotEqual(t, first.Token, fresh.Token)
	assert.False(t, fresh.Used)
}

func TestRequestReset_Throttled(t *testing.T) {
	svc, _, database := setupResetService(t)
	user := createTestUser(t, database, "reset3@test.local", "oldpassword")

	require.NoError(t, svc.RequestReset(user.Email, "http://localhost:3000"))
	firstIssued := latestToken(t, database, user.ID)

	// immediate second request is silently dropped
	require.NoError(t, svc.RequestReset(user.Email, "http://localhost:3000"))

	var count int64
	require.NoError(t, database.Model(&model.PasswordReset{}).
		Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	current := latestToken(t, database, user.ID)
	assert.Equal(t, firstIssued.Token, current.Token)
}

func TestResetPassword_Succeeds(t *testing.T) {
	svc, _, database := setupResetService(t)
	user := createTestUser(t, database, "reset4@test.local", "oldpassword")

	require.NoError(t, svc.RequestReset(user.Email, "http://localhost:3000"))
	reset := latestToken(t, database, user.ID)

	require.NoError(t, svc.ResetPassword(reset.Token, "brand-new-password"))

	var updated model.User
	require.NoError(t, database.First(&updated, user.ID).Error)
	assert.True(t, util.VerifyPassword(updated.PasswordHash, "brand-new-password"))
	assert.False(t, util.VerifyPassword(updated.PasswordHash, "oldpassword"))

	consumed := latestToken(t, database, user.ID)
	assert.True(t, consumed.Used)
}

func TestResetPassword_SecondUseFails(t *testing.T) {
	svc, _, database := setupResetService(t)
	user := createTestUser(t, database, "reset5@test.local", "oldpassword")

	require.NoError(t, svc.RequestReset(user.Email, "http://localhost:3000"))
	reset := latestToken(t, database, user.ID)

	require.NoError(t, svc.ResetPassword(reset.Token, "first-new-password"))

	err := svc.ResetPassword(reset.Token, "second-new-password")
	assert.ErrorIs(t, err, ErrTokenUsed)

	// password stays at the first reset's value
	var user2 model.User
	require.NoError(t, database.First(&user2, user.ID).Error)
	assert.True(t, util.VerifyPassword(user2.PasswordHash, "first-new-password"))
}

func TestResetPassword_UnknownToken(t *testing.T) {
	svc, _, _ := setupResetService(t)

	err := svc.ResetPassword("deadbeefdeadbeefdeadbeefdeadbeef", "whatever-password")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestResetPassword_ExpiredToken(t *testing.T) {
	svc, _, database := setupResetService(t)
	user := createTestUser(t, database, "reset6@test.local", "oldpassword")

	expired := &model.PasswordReset{
		UserID:    user.ID,
		Token:     "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	require.NoError(t, database.Create(expired).Error)

	err := svc.ResetPassword(expired.Token, "whatever-password")
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestResetPassword_WeakPassword(t *testing.T) {
	svc, _, database := setupResetService(t)
	user := createTestUser(t, database, "reset7@test.local", "oldpassword")

	require.NoError(t, svc.RequestReset(user.Email, "http://localhost:3000"))
	reset := latestToken(t, database, user.ID)

	err := svc.ResetPassword(reset.Token, "short")
	assert.ErrorIs(t, err, ErrPasswordTooWeak)

	// token is not consumed by a rejected attempt
	current := latestToken(t, database, user.ID)
	assert.False(t, current.Used)
}

func TestResetPassword_StaleTokenAfterReissue(t *testing.T) {
	svc, _, database := setupResetService(t)
	user := createTestUser(t, database, "reset8@test.local", "oldpassword")

	stale := &model.PasswordReset{
		UserID:    user.ID,
		Token:     "cccccccccccccccccccccccccccccccc",
		ExpiresAt: time.Now().Add(time.Hour),
		CreatedAt: time.Now().Add(-2 * time.Minute),
	}
	require.NoError(t, database.Create(stale).Error)

	require.NoError(t, svc.RequestReset(user.Email, "http://localhost:3000"))

	// a token retired by reissue is indistinguishable from one that
	// never existed
	err := svc.ResetPassword(stale.Token, "whatever-password")
	assert.ErrorIs(t, err, ErrTokenInvalid)

	// the fresh token still works
	fresh := latestToken(t, database, user.ID)
	require.NoError(t, svc.ResetPassword(fresh.Token, "whatever-password"))
}

func TestResetPassword_ConcurrentUseSucceedsOnce(t *testing.T) {
	svc, _, database := setupResetService(t)
	user := createTestUser(t, database, "reset10@test.local", "oldpassword")

	require.NoError(t, svc.RequestReset(user.Email, "http://localhost:3000"))
	reset := latestToken(t, database, user.ID)

	// single pooled connection so the in-memory driver never returns
	// busy errors under contention
	sqlDB, err := database.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	const attempts = 8
	results := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = svc.ResetPassword(reset.Token, fmt.Sprintf("concurrent-pass-%d", i))
		}(i)
	}
	wg.Wait()

	winner := -1
	for i, err := range results {
		if err == nil {
			require.Equal(t, -1, winner, "token must be consumed at most once")
			winner = i
			continue
		}
		assert.ErrorIs(t, err, ErrTokenUsed)
	}
	require.NotEqual(t, -1, winner, "exactly one attempt must succeed")

	var updated model.User
	require.NoError(t, database.First(&updated, user.ID).Error)
	assert.True(t, util.VerifyPassword(updated.PasswordHash, fmt.Sprintf("concurrent-pass-%d", winner)))
}

func TestValidateToken(t *testing.T) {
	svc, _, database := setupResetService(t)
	user := createTestUser(t, database, "reset9@test.local", "oldpassword")

	require.NoError(t, svc.RequestReset(user.Email, "http://localhost:3000"))
	reset := latestToken(t, database, user.ID)

	assert.NoError(t, svc.ValidateToken(reset.Token))
	assert.ErrorIs(t, svc.ValidateToken("unknown-token"), ErrTokenInvalid)

	require.NoError(t, svc.ResetPassword(reset.Token, "brand-new-password"))
	assert.ErrorIs(t, svc.ValidateToken(reset.Token), ErrTokenUsed)
}
