package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/proximahr/proximahr-backend/config"
	"github.com/proximahr/proximahr-backend/internal/app/model"
	"github.com/proximahr/proximahr-backend/internal/app/repository"
	"github.com/proximahr/proximahr-backend/internal/db"
	"github.com/proximahr/proximahr-backend/pkg/util"
)

func setupAuthService(t *testing.T) (AuthService, *gorm.DB) {
	t.Helper()
	database := db.SetupTestDB(t)
	userRepo := repository.NewUserRepository(database)
	cfg := &config.JWTConfig{
		Secret:             "test-secret",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 24 * time.Hour,
	}
	return NewAuthService(userRepo, cfg), database
}

func TestLogin_Success(t *testing.T) {
	svc, database := setupAuthService(t)
	user := createTestUser(t, database, "login1@test.local", "correct-password")

	got, pair, err := svc.Login(user.Email, "correct-password")
	require.NoError(t, err)
	require.NotNil(t, pair)
	assert.Equal(t, user.ID, got.ID)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	claims, err := util.ValidateToken(pair.AccessToken, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.CompanyID, claims.CompanyID)
	assert.Equal(t, model.RoleEmployee, claims.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, database := setupAuthService(t)
	user := createTestUser(t, database, "login2@test.local", "correct-password")

	_, _, err := svc.Login(user.Email, "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _ := setupAuthService(t)

	_, _, err := svc.Login("nobody@test.local", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_DisabledAccount(t *testing.T) {
	svc, database := setupAuthService(t)
	user := createTestUser(t, database, "login3@test.local", "correct-password")
	require.NoError(t, database.Model(user).Update("status", model.StatusDisabled).Error)

	_, _, err := svc.Login(user.Email, "correct-password")
	assert.ErrorIs(t, err, ErrAccountDisabled)
}

func TestLogin_SuspendedAccount(t *testing.T) {
	svc, database := setupAuthService(t)
	user := createTestUser(t, database, "login4@test.local", "correct-password")
	until := time.Now().Add(24 * time.Hour)
	require.NoError(t, database.Model(user).Updates(map[string]interface{}{
		"status":          model.StatusSuspended,
		"suspended_until": until,
	}).Error)

	_, _, err := svc.Login(user.Email, "correct-password")
	assert.ErrorIs(t, err, ErrAccountSuspended)
}

func TestRefreshToken_RotatesPair(t *testing.T) {
	svc, database := setupAuthService(t)
	user := createTestUser(t, database, "refresh1@test.local", "correct-password")

	_, pair, err := svc.Login(user.Email, "correct-password")
	require.NoError(t, err)

	rotated, err := svc.RefreshToken(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, rotated.AccessToken)

	claims, err := util.ValidateToken(rotated.RefreshToken, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestRefreshToken_RejectsGarbage(t *testing.T) {
	svc, _ := setupAuthService(t)

	_, err := svc.RefreshToken(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidRefresh)
}

func TestChangePassword(t *testing.T) {
	svc, database := setupAuthService(t)
	user := createTestUser(t, database, "change1@test.local", "correct-password")

	err := svc.ChangePassword(user.ID, "wrong-password", "new-password-123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	err = svc.ChangePassword(user.ID, "correct-password", "short")
	assert.ErrorIs(t, err, ErrPasswordTooWeak)

	require.NoError(t, svc.ChangePassword(user.ID, "correct-password", "new-password-123"))

	var updated model.User
	require.NoError(t, database.First(&updated, user.ID).Error)
	assert.True(t, util.VerifyPassword(updated.PasswordHash, "new-password-123"))
}
