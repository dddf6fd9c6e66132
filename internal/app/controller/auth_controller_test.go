package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/proximahr/proximahr-backend/config"
	"github.com/proximahr/proximahr-backend/internal/app/model"
	"github.com/proximahr/proximahr-backend/internal/app/repository"
	"github.com/proximahr/proximahr-backend/internal/app/service"
	"github.com/proximahr/proximahr-backend/internal/db"
	"github.com/proximahr/proximahr-backend/pkg/util"
)

func setupAuthTestServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	database := db.SetupTestDB(t)
	userRepo := repository.NewUserRepository(database)
	resetRepo := repository.NewPasswordResetRepository(database)
	mailer := util.NewMailer("", "", "", "", "noreply@test.local")

	authService := service.NewAuthService(userRepo, &config.JWTConfig{
		Secret:             "controller-test-secret",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 24 * time.Hour,
	})
	resetService := service.NewPasswordResetService(database, userRepo, resetRepo, mailer)

	authCtrl := NewAuthController(authService)
	resetCtrl := NewPasswordResetController(resetService, "http://localhost:3000")

	engine := gin.New()
	engine.POST("/auth/login", authCtrl.Login)
	engine.POST("/auth/refresh", authCtrl.Refresh)
	engine.POST("/auth/password-reset/request", resetCtrl.Request)
	engine.GET("/auth/password-reset/validate", resetCtrl.Validate)
	engine.POST("/auth/password-reset/confirm", resetCtrl.Confirm)

	return engine, database
}

func seedAccount(t *testing.T, database *gorm.DB, email, password string) *model.User {
	t.Helper()
	hash, err := util.HashPassword(password)
	require.NoError(t, err)

	company := &model.Company{Name: "Ctrl Co " + email, Email: "co@test.local", AdminCreated: true}
	require.NoError(t, database.Create(company).Error)

	user := &model.User{
		CompanyID:    company.ID,
		Email:        email,
		PasswordHash: hash,
		FirstName:    "Ctrl",
		LastName:     "User",
		Role:         model.RoleEmployee,
		Status:       model.StatusActive,
	}
	require.NoError(t, database.Create(user).Error)
	return user
}

func postJSON(t *testing.T, engine *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestLoginEndpoint(t *testing.T) {
	engine, database := setupAuthTestServer(t)
	seedAccount(t, database, "api1@test.local", "api-password")

	w := postJSON(t, engine, "/auth/login", gin.H{
		"email":    "api1@test.local",
		"password": "api-password",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "access_token")
	assert.Contains(t, w.Body.String(), "refresh_token")
	assert.NotContains(t, w.Body.String(), "password_hash")
}

func TestLoginEndpoint_BadCredentials(t *testing.T) {
	engine, database := setupAuthTestServer(t)
	seedAccount(t, database, "api2@test.local", "api-password")

	w := postJSON(t, engine, "/auth/login", gin.H{
		"email":    "api2@test.local",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_INVALID_CREDENTIALS")
}

func TestLoginEndpoint_Validation(t *testing.T) {
	engine, _ := setupAuthTestServer(t)

	w := postJSON(t, engine, "/auth/login", gin.H{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_INVALID_INPUT")
}

func TestPasswordResetFlow(t *testing.T) {
	engine, database := setupAuthTestServer(t)
	user := seedAccount(t, database, "api3@test.local", "old-password")

	// request: the response never reveals whether the email exists
	w := postJSON(t, engine, "/auth/password-reset/request", gin.H{"email": user.Email})
	assert.Equal(t, http.StatusOK, w.Code)

	w = postJSON(t, engine, "/auth/password-reset/request", gin.H{"email": "ghost@test.local"})
	assert.Equal(t, http.StatusOK, w.Code)

	var reset model.PasswordReset
	require.NoError(t, database.Where("user_id = ?", user.ID).First(&reset).Error)

	// validate
	req := httptest.NewRequest(http.MethodGet,
		fmt.Sprintf("/auth/password-reset/validate?token=%s", reset.Token), nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// confirm
	w = postJSON(t, engine, "/auth/password-reset/confirm", gin.H{
		"token":        reset.Token,
		"new_password": "fresh-password",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	// the old credentials no longer work, the new ones do
	w = postJSON(t, engine, "/auth/login", gin.H{"email": user.Email, "password": "old-password"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = postJSON(t, engine, "/auth/login", gin.H{"email": user.Email, "password": "fresh-password"})
	assert.Equal(t, http.StatusOK, w.Code)

	// replaying the consumed token fails
	w = postJSON(t, engine, "/auth/password-reset/confirm", gin.H{
		"token":        reset.Token,
		"new_password": "another-password",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_CODE_USED")
}

func TestPasswordResetConfirm_InvalidToken(t *testing.T) {
	engine, _ := setupAuthTestServer(t)

	w := postJSON(t, engine, "/auth/password-reset/confirm", gin.H{
		"token":        "completely-unknown",
		"new_password": "fresh-password",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_CODE_INVALID")
}
