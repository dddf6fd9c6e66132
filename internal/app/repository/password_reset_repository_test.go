package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/proximahr/proximahr-backend/internal/app/model"
	"github.com/proximahr/proximahr-backend/internal/db"
)

func seedResetUser(t *testing.T, database *gorm.DB) *model.User {
	t.Helper()
	company := &model.Company{Name: fmt.Sprintf("Co %s", t.Name()), Email: "co@test.local"}
	require.NoError(t, database.Create(company).Error)

	user := &model.User{
		CompanyID:    company.ID,
		Email:        fmt.Sprintf("%s@test.local", t.Name()),
		PasswordHash: "x",
		FirstName:    "A",
		LastName:     "B",
		Role:         model.RoleEmployee,
		Status:       model.StatusActive,
	}
	require.NoError(t, database.Create(user).Error)
	return user
}

func TestConsume_ExactlyOnce(t *testing.T) {
	database := db.SetupTestDB(t)
	repo := NewPasswordResetRepository(database)
	user := seedResetUser(t, database)

	reset := &model.PasswordReset{
		UserID:    user.ID,
		Token:     "token-once",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, repo.Create(reset))

	affected, err := repo.Consume(reset.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	// every later attempt sees zero rows
	affected, err = repo.Consume(reset.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)

	affected, err = repo.Consume(reset.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
}

func TestInvalidateForUser_LeavesOtherUsersAlone(t *testing.T) {
	database := db.SetupTestDB(t)
	repo := NewPasswordResetRepository(database)
	user := seedResetUser(t, database)

	other := &model.User{
		CompanyID:    user.CompanyID,
		Email:        "other@test.local",
		PasswordHash: "x",
		FirstName:    "C",
		LastName:     "D",
		Role:         model.RoleEmployee,
		Status:       model.StatusActive,
	}
	require.NoError(t, database.Create(other).Error)

	mine := &model.PasswordReset{UserID: user.ID, Token: "mine", ExpiresAt: time.Now().Add(time.Hour)}
	spent := &model.PasswordReset{UserID: user.ID, Token: "spent", ExpiresAt: time.Now().Add(time.Hour), Used: true}
	theirs := &model.PasswordReset{UserID: other.ID, Token: "theirs", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, repo.Create(mine))
	require.NoError(t, repo.Create(spent))
	require.NoError(t, repo.Create(theirs))

	require.NoError(t, repo.InvalidateForUser(user.ID))

	// the unused token is gone, the consumed one is kept for replay
	// detection
	_, err := repo.FindByToken("mine")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	got, err := repo.FindByToken("spent")
	require.NoError(t, err)
	assert.True(t, got.Used)

	got, err = repo.FindByToken("theirs")
	require.NoError(t, err)
	assert.False(t, got.Used)
}

func TestDeleteExpired(t *testing.T) {
	database := db.SetupTestDB(t)
	repo := NewPasswordResetRepository(database)
	user := seedResetUser(t, database)

	resets := []*model.PasswordReset{
		{UserID: user.ID, Token: "expired", ExpiresAt: time.Now().Add(-time.Hour)},
		{UserID: user.ID, Token: "used", ExpiresAt: time.Now().Add(time.Hour), Used: true},
		{UserID: user.ID, Token: "live", ExpiresAt: time.Now().Add(time.Hour)},
	}
	for _, r := range resets {
		require.NoError(t, repo.Create(r))
	}

	purged, err := repo.DeleteExpired(time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(2), purged)

	_, err = repo.FindByToken("live")
	assert.NoError(t, err)
	_, err = repo.FindByToken("expired")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
