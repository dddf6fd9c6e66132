package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/proximahr/proximahr-backend/internal/app/model"
)

// PasswordResetRepository handles reset token persistence.
type PasswordResetRepository interface {
	Create(reset *model.PasswordReset) error
	FindByToken(token string) (*model.PasswordReset, error)
	FindLatestByUser(userID uint) (*model.PasswordReset, error)
	// InvalidateForUser removes every unused token of the user, so a
	// freshly issued token is the only redeemable one. Consumed tokens
	// are kept so a replayed token is reported as already used.
	InvalidateForUser(userID uint) error
	// Consume marks the token as used if and only if it is still
	// unused, and returns the number of rows affected. A zero result
	// means another request consumed it first.
	Consume(id uint) (int64, error)
	DeleteExpired(before time.Time) (int64, error)
	WithTx(tx *gorm.DB) PasswordResetRepository
}

type passwordResetRepository struct {
	db *gorm.DB
}

// NewPasswordResetRepository creates a password reset repository.
func NewPasswordResetRepository(db *gorm.DB) PasswordResetRepository {
	return &passwordResetRepository{db: db}
}

func (r *passwordResetRepository) WithTx(tx *gorm.DB) PasswordResetRepository {
	return &passwordResetRepository{db: tx}
}

func (r *passwordResetRepository) Create(reset *model.PasswordReset) error {
	return r.db.Create(reset).Error
}

func (r *passwordResetRepository) FindByToken(token string) (*model.PasswordReset, error) {
	var reset model.PasswordReset
	if err := r.db.Where("token = ?", token).First(&reset).Error; err != nil {
		return nil, err
	}
	return &reset, nil
}

func (r *passwordResetRepository) FindLatestByUser(userID uint) (*model.PasswordReset, error) {
	var reset model.PasswordReset
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&reset).Error
	if err != nil {
		return nil, err
	}
	return &reset, nil
}

func (r *passwordResetRepository) InvalidateForUser(userID uint) error {
	return r.db.Where("user_id = ? AND used = ?", userID, false).
		Delete(&model.PasswordReset{}).Error
}

func (r *passwordResetRepository) Consume(id uint) (int64, error) {
	result := r.db.Model(&model.PasswordReset{}).
		Where("id = ? AND used = ?", id, false).
		Update("used", true)
	return result.RowsAffected, result.Error
}

func (r *passwordResetRepository) DeleteExpired(before time.Time) (int64, error) {
	result := r.db.Where("expires_at < ? OR used = ?", before, true).
		Delete(&model.PasswordReset{})
	return result.RowsAffected, result.Error
}
