package services

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"freelink_backend/internal/auth"
	"freelink_backend/internal/email"
	"freelink_backend/internal/logger"
	"freelink_backend/internal/metrics"
	"freelink_backend/internal/models"
	"freelink_backend/internal/repositories"
	"freelink_backend/internal/services/dto"
	"freelink_backend/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuthService interface {
	Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error)
	// RequestPasswordReset never reveals whether the email is registered
	RequestPasswordReset(ctx context.Context, db *gorm.DB, email string) error
	ResetPassword(db *gorm.DB, req *dto.ResetPasswordRequest) error
}

type AuthSettings struct {
	FrontendURL   string
	ResetTokenTTL time.Duration
}

type AuthServiceImpl struct {
	userRepo repositories.UserRepository
	tokens   *auth.TokenManager
	notifier email.Notifier
	settings AuthSettings
	now      func() time.Time
}

func NewAuthService(
	userRepo repositories.UserRepository,
	tokens *auth.TokenManager,
	notifier email.Notifier,
	settings AuthSettings,
) AuthService {
	if settings.ResetTokenTTL <= 0 {
		settings.ResetTokenTTL = time.Hour
	}
	return &AuthServiceImpl{
		userRepo: userRepo,
		tokens:   tokens,
		notifier: notifier,
		settings: settings,
		now:      time.Now,
	}
}

func (s *AuthServiceImpl) Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}

	role := req.Role
	if role == "" {
		role = models.UserRoleFreelancer
	}
	if !role.IsValid() {
		return nil, apperrors.ValidationError(map[string]string{"role": "Must be one of: company, freelancer"})
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	emailAddr := normalizeEmail(req.Email)
	if _, err := s.userRepo.FindByEmail(tx, emailAddr); err == nil {
		return nil, apperrors.ErrEmailAlreadyExists
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        emailAddr,
		PasswordHash: hash,
		Role:         role,
		Status:       models.UserStatusActive,
	}
	if err := s.userRepo.Create(tx, user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	if err := commit(tx); err != nil {
		return nil, err
	}
	return dto.NewUserResponse(user), nil
}

func (s *AuthServiceImpl) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(db, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.Status.CanLogin() {
		return nil, apperrors.ErrUserInactive
	}

	token, err := s.tokens.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.tokens.TTL().Seconds()),
		User:        dto.NewUserResponse(user),
	}, nil
}

func (s *AuthServiceImpl) RequestPasswordReset(ctx context.Context, db *gorm.DB, emailAddr string) error {
	emailAddr = normalizeEmail(emailAddr)

	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	user, err := s.userRepo.FindByEmail(tx, emailAddr)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			logger.CtxDebug(ctx, "Password reset requested for unknown email")
			return nil
		}
		return apperrors.InternalError(err)
	}

	if err := s.userRepo.InvalidateResetTokens(tx, emailAddr); err != nil {
		return apperrors.InternalError(err)
	}

	token := &models.PasswordResetToken{
		Email:     emailAddr,
		Token:     uuid.NewString(),
		ExpiresAt: s.now().Add(s.settings.ResetTokenTTL),
	}
	if err := s.userRepo.CreateResetToken(tx, token); err != nil {
		return apperrors.InternalError(err)
	}
	if err := commit(tx); err != nil {
		return err
	}

	link := strings.TrimRight(s.settings.FrontendURL, "/") + "/reset-password?token=" + url.QueryEscape(token.Token)
	if err := s.notifier.SendPasswordReset(ctx, user.Email, user.Name, link); err != nil {
		metrics.NotificationFailuresTotal.WithLabelValues("password_reset").Inc()
		logger.CtxWithError(ctx, "Failed to send password reset email", err, "user_id", user.ID)
	}
	return nil
}

func (s *AuthServiceImpl) ResetPassword(db *gorm.DB, req *dto.ResetPasswordRequest) error {
	if err := auth.ValidatePassword(req.NewPassword); err != nil {
		return apperrors.ErrWeakPassword
	}

	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	token, err := s.userRepo.FindResetToken(tx, req.Token)
	if err != nil {
		if errors.Is(err, repositories.ErrResetTokenNotFound) {
			return apperrors.ErrInvalidResetToken
		}
		return apperrors.InternalError(err)
	}

	if !token.IsValid(s.now()) {
		return apperrors.ErrInvalidResetToken
	}

	consumed, err := s.userRepo.ConsumeResetToken(tx, token.Token)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if !consumed {
		return apperrors.ErrInvalidResetToken
	}

	user, err := s.userRepo.FindByEmail(tx, token.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrInvalidResetToken
		}
		return apperrors.InternalError(err)
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.userRepo.UpdatePassword(tx, user.ID, hash); err != nil {
		return apperrors.InternalError(err)
	}

	return commit(tx)
}
