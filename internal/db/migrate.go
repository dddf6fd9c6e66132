package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/proximahr/proximahr-backend/internal/app/model"
	"github.com/proximahr/proximahr-backend/pkg/logger"
)

// Migrate runs auto migrations for all models.
func Migrate(database *gorm.DB) error {
	log := logger.Get()
	log.Info("running database migrations")

	err := database.AutoMigrate(
		&model.Company{},
		&model.User{},
		&model.PasswordReset{},
		&model.Department{},
		&model.Leave{},
		&model.TimerLog{},
		&model.AttendanceRecord{},
		&model.PayrollSnapshot{},
		&model.Notification{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("database migrations completed")
	return nil
}
