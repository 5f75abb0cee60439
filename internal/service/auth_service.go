package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sitecel/portfolio-api/internal/config"
	"github.com/sitecel/portfolio-api/internal/models"
	"github.com/sitecel/portfolio-api/internal/repository"
	"github.com/sitecel/portfolio-api/internal/utils"
	"github.com/sitecel/portfolio-api/pkg/logger"
	"go.uber.org/zap"
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// the response never leaks which one failed.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account inactive")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUserNotFound       = errors.New("user not found")
	ErrAdminRequired      = errors.New("admin access required")
)

type AuthService struct {
	userRepo      *repository.UserRepository
	jwtSecret     string
	signingMethod jwt.SigningMethod
	tokenTTL      time.Duration
}

func NewAuthService(userRepo *repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		jwtSecret:     cfg.SecretKey,
		signingMethod: utils.SigningMethod(cfg.Algorithm),
		tokenTTL:      cfg.AccessTokenTTL,
	}
}

// Login checks the credentials, records the login time and issues a signed
// access token.
func (s *AuthService) Login(email, password string) (string, error) {
	start := time.Now()

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		logger.Log.Error("Failed to get user by email",
			zap.String("email", email),
			zap.Error(err),
		)
		return "", err
	}
	if user == nil {
		logger.Log.Warn("Login failed: user not found",
			zap.String("email", email),
		)
		return "", ErrInvalidCredentials
	}

	if !utils.VerifyPassword(password, user.PasswordHash) {
		logger.Log.Warn("Login failed: invalid password",
			zap.String("email", email),
			zap.String("user_id", user.ID.String()),
		)
		return "", ErrInvalidCredentials
	}

	if !user.IsActive {
		logger.Log.Warn("Login failed: account inactive",
			zap.String("user_id", user.ID.String()),
		)
		return "", ErrAccountInactive
	}

	if err := s.userRepo.UpdateLastLogin(user.ID, time.Now()); err != nil {
		logger.Log.Error("Failed to update last login",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
		return "", err
	}

	token, err := utils.GenerateToken(user.Email, s.jwtSecret, s.signingMethod, s.tokenTTL)
	if err != nil {
		logger.Log.Error("Failed to generate token",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
		return "", err
	}

	logger.Log.Info("User logged in successfully",
		zap.String("user_id", user.ID.String()),
		zap.Duration("total_duration", time.Since(start)),
	)

	return token, nil
}

// ResolveCurrentUser decodes the bearer token and loads the matching active
// user.
func (s *AuthService) ResolveCurrentUser(token string) (*models.User, error) {
	claims, err := utils.ValidateToken(token, s.jwtSecret)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	user, err := s.userRepo.GetByEmail(claims.Subject)
	if err != nil {
		logger.Log.Error("Failed to resolve token subject",
			zap.String("sub", claims.Subject),
			zap.Error(err),
		)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if !user.IsActive {
		return nil, ErrAccountInactive
	}

	return user, nil
}

// RequireAdmin gates admin-only operations.
func (s *AuthService) RequireAdmin(user *models.User) error {
	if user == nil || !user.IsAdmin {
		return ErrAdminRequired
	}
	return nil
}
