package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/proximahr/proximahr-backend/internal/app/model"
	"github.com/proximahr/proximahr-backend/internal/app/repository"
	"github.com/proximahr/proximahr-backend/internal/db"
	"github.com/proximahr/proximahr-backend/pkg/util"
)

func setupCompanyService(t *testing.T) (CompanyService, *gorm.DB) {
	t.Helper()
	database := db.SetupTestDB(t)
	companyRepo := repository.NewCompanyRepository(database)
	userRepo := repository.NewUserRepository(database)
	mailer := util.NewMailer("", "", "", "", "noreply@test.local")
	return NewCompanyService(database, companyRepo, userRepo, mailer), database
}

func TestRegisterCompany(t *testing.T) {
	svc, database := setupCompanyService(t)

	company, err := svc.Register(RegisterCompanyInput{
		Name:  "Registered Co",
		Email: "owner@test.local",
	})
	require.NoError(t, err)
	assert.Len(t, company.AdminCreationCode, 6)
	assert.False(t, company.AdminCreated)

	var stored model.Company
	require.NoError(t, database.First(&stored, company.ID).Error)
	assert.Equal(t, company.AdminCreationCode, stored.AdminCreationCode)
}

func TestRegisterCompany_DuplicateName(t *testing.T) {
	svc, _ := setupCompanyService(t)

	_, err := svc.Register(RegisterCompanyInput{Name: "Dup Co", Email: "a@test.local"})
	require.NoError(t, err)

	_, err = svc.Register(RegisterCompanyInput{Name: "Dup Co", Email: "b@test.local"})
	assert.ErrorIs(t, err, ErrCompanyExists)
}

func TestCreateAdmin(t *testing.T) {
	svc, database := setupCompanyService(t)

	company, err := svc.Register(RegisterCompanyInput{Name: "Admin Co", Email: "owner@test.local"})
	require.NoError(t, err)

	admin, err := svc.CreateAdmin(CreateAdminInput{
		Code:      company.AdminCreationCode,
		Email:     "admin@test.local",
		Password:  "admin-password",
		FirstName: "Ada",
		LastName:  "Admin",
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, admin.Role)
	assert.Equal(t, company.ID, admin.CompanyID)

	// the code is single-use
	var stored model.Company
	require.NoError(t, database.First(&stored, company.ID).Error)
	assert.True(t, stored.AdminCreated)
	assert.Empty(t, stored.AdminCreationCode)

	_, err = svc.CreateAdmin(CreateAdminInput{
		Code:      company.AdminCreationCode,
		Email:     "second@test.local",
		Password:  "admin-password",
		FirstName: "Bob",
		LastName:  "Backup",
	})
	assert.ErrorIs(t, err, ErrInvalidAdminCode)
}

func TestCreateAdmin_InvalidCode(t *testing.T) {
	svc, _ := setupCompanyService(t)

	_, err := svc.CreateAdmin(CreateAdminInput{
		Code:      "ZZZZZZ",
		Email:     "admin@test.local",
		Password:  "admin-password",
		FirstName: "Ada",
		LastName:  "Admin",
	})
	assert.ErrorIs(t, err, ErrInvalidAdminCode)
}

func TestCreateAdmin_DuplicateEmail(t *testing.T) {
	svc, database := setupCompanyService(t)
	createTestUser(t, database, "taken@test.local", "password123")

	company, err := svc.Register(RegisterCompanyInput{Name: "Email Co", Email: "owner@test.local"})
	require.NoError(t, err)

	_, err = svc.CreateAdmin(CreateAdminInput{
		Code:      company.AdminCreationCode,
		Email:     "taken@test.local",
		Password:  "admin-password",
		FirstName: "Ada",
		LastName:  "Admin",
	})
	assert.ErrorIs(t, err, ErrEmailExists)
}
