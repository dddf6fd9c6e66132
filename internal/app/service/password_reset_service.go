package service

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/proximahr/proximahr-backend/internal/app/model"
	"github.com/proximahr/proximahr-backend/internal/app/repository"
	"github.com/proximahr/proximahr-backend/pkg/logger"
	"github.com/proximahr/proximahr-backend/pkg/util"
)

var (
	ErrTokenInvalid    = errors.New("reset token is invalid")
	ErrTokenExpired    = errors.New("reset token has expired")
	ErrTokenUsed       = errors.New("reset token has already been used")
	ErrPasswordTooWeak = errors.New("password must be at least 8 characters")
)

const (
	resetTokenBytes  = 32
	resetTokenExpiry = time.Hour

	// a user may request at most one reset email per minute
	resetRequestInterval = time.Minute
)

// PasswordResetService issues and redeems single-use reset tokens.
type PasswordResetService interface {
	// RequestReset issues a token and emails the reset link. It
	// returns nil for unknown emails so responses never reveal
	// whether an account exists.
	RequestReset(email, frontendURL string) error
	// ValidateToken checks a token without consuming it, for the
	// reset form's pre-flight check.
	ValidateToken(token string) error
	// ResetPassword atomically consumes the token and replaces the
	// user's password. A token can succeed at most once, ever.
	ResetPassword(token, newPassword string) error
}

type passwordResetService struct {
	db        *gorm.DB
	userRepo  repository.UserRepository
	resetRepo repository.PasswordResetRepository
	mailer    *util.Mailer
}

// NewPasswordResetService creates a password reset service.
func NewPasswordResetService(
	db *gorm.DB,
	userRepo repository.UserRepository,
	resetRepo repository.PasswordResetRepository,
	mailer *util.Mailer,
) PasswordResetService {
	return &passwordResetService{
		db:        db,
		userRepo:  userRepo,
		resetRepo: resetRepo,
		mailer:    mailer,
	}
}

func (s *passwordResetService) RequestReset(email, frontendURL string) error {
	log := logger.Get()

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Debug("reset requested for unknown email", map[string]interface{}{
				"email": email,
			})
			return nil
		}
		return err
	}

	if user.Status == model.StatusDisabled {
		// disabled accounts cannot recover credentials; respond as if
		// nothing happened
		return nil
	}

	// throttle repeated requests; silently skip so the response stays
	// indistinguishable
	if latest, err := s.resetRepo.FindLatestByUser(user.ID); err == nil {
		if time.Since(latest.CreatedAt) < resetRequestInterval {
			log.Warn("reset request throttled", map[string]interface{}{
				"user_id": user.ID,
			})
			return nil
		}
	}

	token, err := util.GenerateResetToken(resetTokenBytes)
	if err != nil {
		return err
	}

	reset := &model.PasswordReset{
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: time.Now().Add(resetTokenExpiry),
	}

	// issuing a new token removes every earlier unused one, so only
	// the latest token is ever redeemable; a removed token reads back
	// as invalid, not as used
	err = s.db.Transaction(func(tx *gorm.DB) error {
		txRepo := s.resetRepo.WithTx(tx)
		if err := txRepo.InvalidateForUser(user.ID); err != nil {
			return err
		}
		return txRepo.Create(reset)
	})
	if err != nil {
		return err
	}

	if err := s.mailer.SendPasswordResetToken(user.Email, frontendURL, token); err != nil {
		log.Error("failed to send reset email", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return err
	}

	log.Info("password reset issued", map[string]interface{}{
		"user_id":    user.ID,
		"expires_at": reset.ExpiresAt,
	})
	return nil
}

func (s *passwordResetService) ValidateToken(token string) error {
	reset, err := s.resetRepo.FindByToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTokenInvalid
		}
		return err
	}

	if reset.Used {
		return ErrTokenUsed
	}
	if reset.IsExpired() {
		return ErrTokenExpired
	}
	return nil
}

func (s *passwordResetService) ResetPassword(token, newPassword string) error {
	if len(newPassword) < 8 {
		return ErrPasswordTooWeak
	}

	reset, err := s.resetRepo.FindByToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTokenInvalid
		}
		return err
	}

	if reset.Used {
		return ErrTokenUsed
	}
	if reset.IsExpired() {
		return ErrTokenExpired
	}

	hash, err := util.HashPassword(newPassword)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		// compare-and-set guard: only the first concurrent consumer
		// sees a non-zero row count, everyone else gets ErrTokenUsed
		affected, err := s.resetRepo.WithTx(tx).Consume(reset.ID)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrTokenUsed
		}
		return s.userRepo.WithTx(tx).UpdatePassword(reset.UserID, hash)
	})
	if err != nil {
		return err
	}

	logger.Get().Info("password reset completed", map[string]interface{}{
		"user_id": reset.UserID,
	})
	return nil
}
