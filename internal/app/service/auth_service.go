package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/proximahr/proximahr-backend/config"
	"github.com/proximahr/proximahr-backend/internal/app/model"
	"github.com/proximahr/proximahr-backend/internal/app/repository"
	"github.com/proximahr/proximahr-backend/pkg/logger"
	"github.com/proximahr/proximahr-backend/pkg/redis"
	"github.com/proximahr/proximahr-backend/pkg/util"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrAccountSuspended   = errors.New("account is suspended")
	ErrInvalidRefresh     = errors.New("invalid refresh token")
	ErrTokenRevoked       = errors.New("token has been revoked")
)

// dummyHash is compared against when the email is unknown so login
// cost does not reveal whether an account exists.
const dummyHash = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"

// AuthService handles login, token refresh and logout.
type AuthService interface {
	Login(email, password string) (*model.User, *util.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*util.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	ChangePassword(userID uint, currentPassword, newPassword string) error
}

type authService struct {
	userRepo repository.UserRepository
	cfg      *config.JWTConfig
}

// NewAuthService creates an auth service.
func NewAuthService(userRepo repository.UserRepository, cfg *config.JWTConfig) AuthService {
	return &authService{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

func (s *authService) Login(email, password string) (*model.User, *util.TokenPair, error) {
	log := logger.Get()

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// burn a bcrypt comparison anyway
			util.VerifyPassword(dummyHash, password)
			log.Debug("login attempt for unknown email", map[string]interface{}{
				"email": email,
			})
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if !util.VerifyPassword(user.PasswordHash, password) {
		log.Warn("login failed, wrong password", map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, nil, ErrInvalidCredentials
	}

	switch user.Status {
	case model.StatusDisabled:
		return nil, nil, ErrAccountDisabled
	case model.StatusSuspended:
		return nil, nil, ErrAccountSuspended
	}

	pair, err := util.GenerateTokenPair(
		user.ID, user.Email, user.Role, user.CompanyID,
		s.cfg.Secret, s.cfg.AccessTokenExpiry, s.cfg.RefreshTokenExpiry,
	)
	if err != nil {
		return nil, nil, err
	}

	log.Info("user logged in", map[string]interface{}{
		"user_id":    user.ID,
		"company_id": user.CompanyID,
		"role":       user.Role,
	})

	return user, pair, nil
}

func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*util.TokenPair, error) {
	claims, err := util.ValidateToken(refreshToken, s.cfg.Secret)
	if err != nil {
		return nil, ErrInvalidRefresh
	}

	blacklisted, err := redis.IsTokenBlacklisted(ctx, refreshToken)
	if err != nil {
		logger.Get().Warn("blacklist lookup failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
	if blacklisted {
		return nil, ErrTokenRevoked
	}

	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		return nil, ErrInvalidRefresh
	}
	if user.Status != model.StatusActive {
		return nil, ErrAccountDisabled
	}

	// rotate: the old refresh token is revoked for its remaining TTL
	if remaining := time.Until(claims.ExpiresAt.Time); remaining > 0 {
		if err := redis.BlacklistToken(ctx, refreshToken, remaining); err != nil {
			logger.Get().Warn("failed to blacklist rotated token", map[string]interface{}{
				"user_id": user.ID,
				"error":   err.Error(),
			})
		}
	}

	return util.GenerateTokenPair(
		user.ID, user.Email, user.Role, user.CompanyID,
		s.cfg.Secret, s.cfg.AccessTokenExpiry, s.cfg.RefreshTokenExpiry,
	)
}

func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := util.ValidateToken(refreshToken, s.cfg.Secret)
	if err != nil {
		// already invalid, nothing to revoke
		return nil
	}

	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining <= 0 {
		return nil
	}

	if err := redis.BlacklistToken(ctx, refreshToken, remaining); err != nil {
		return err
	}

	logger.Get().Info("user logged out", map[string]interface{}{
		"user_id": claims.UserID,
	})
	return nil
}

func (s *authService) ChangePassword(userID uint, currentPassword, newPassword string) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return err
	}

	if !util.VerifyPassword(user.PasswordHash, currentPassword) {
		return ErrInvalidCredentials
	}
	if len(newPassword) < 8 {
		return ErrPasswordTooWeak
	}

	hash, err := util.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := s.userRepo.UpdatePassword(userID, hash); err != nil {
		return err
	}

	logger.Get().Info("password changed", map[string]interface{}{
		"user_id": userID,
	})
	return nil
}
