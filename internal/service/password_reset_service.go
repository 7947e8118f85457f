package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"claimdesk/internal/config"
	"claimdesk/internal/domain"
	"claimdesk/internal/port"
)

const passwordResetTTL = time.Hour

// ForgotPasswordInput is the DTO for forgot-password requests.
type ForgotPasswordInput struct {
	TenantSlug string `json:"tenant_slug" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
}

// ResetPasswordInput is the DTO for reset-password requests.
type ResetPasswordInput struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// PasswordResetService defines the password reset contract.
type PasswordResetService interface {
	// ForgotPassword always succeeds so callers cannot probe for accounts.
	ForgotPassword(ctx context.Context, input ForgotPasswordInput) error
	ResetPassword(ctx context.Context, input ResetPasswordInput) error
}

type passwordResetService struct {
	tenantRepo port.TenantRepository
	userRepo   port.UserRepository
	notify     *notifier
	jwtCfg     config.JWTConfig
	log        *zap.Logger
}

// NewPasswordResetService creates a new PasswordResetService.
func NewPasswordResetService(
	tenantRepo port.TenantRepository,
	userRepo port.UserRepository,
	emailSender port.EmailSender,
	jwtCfg config.JWTConfig,
	log *zap.Logger,
) PasswordResetService {
	return &passwordResetService{
		tenantRepo: tenantRepo,
		userRepo:   userRepo,
		notify:     newNotifier(tenantRepo, userRepo, emailSender, log),
		jwtCfg:     jwtCfg,
		log:        log,
	}
}

func (s *passwordResetService) ForgotPassword(ctx context.Context, input ForgotPasswordInput) error {
	tenant, err := s.tenantRepo.GetBySlug(ctx, input.TenantSlug)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.log.Warn("forgot-password tenant lookup", zap.Error(err))
		}
		return nil
	}
	if !tenant.IsActive {
		return nil
	}

	email := domain.NormalizeEmail(input.Email)
	user, err := s.userRepo.GetByEmail(ctx, tenant.ID, email)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.log.Warn("forgot-password user lookup", zap.Error(err))
		}
		return nil
	}
	if !user.IsActive {
		return nil
	}

	tokenString, jti, err := s.generateResetToken(user)
	if err != nil {
		s.log.Warn("generating password reset token", zap.String("user_id", user.ID.String()), zap.Error(err))
		return nil
	}

	if err := s.userRepo.SetPasswordResetToken(ctx, tenant.ID, user.ID, jti); err != nil {
		s.log.Warn("storing password reset token", zap.String("user_id", user.ID.String()), zap.Error(err))
		return nil
	}

	brand := s.notify.branding(ctx, tenant.ID)
	to := port.EmailRecipient{Email: email, Name: user.FullName}
	if err := s.notify.sender.SendPasswordResetEmail(ctx, brand, to, tokenString); err != nil {
		s.log.Warn("sending password reset email", zap.String("user_id", user.ID.String()), zap.Error(err))
	}

	return nil
}

func (s *passwordResetService) ResetPassword(ctx context.Context, input ResetPasswordInput) error {
	claims, err := validateToken(s.jwtCfg.Secret, input.Token, audiencePasswordReset)
	if err != nil {
		return domain.ErrPasswordResetTokenInvalid
	}

	hash, err := hashPassword(input.NewPassword)
	if err != nil {
		return err
	}

	if err := s.userRepo.ResetPassword(ctx, claims.TenantID, claims.UserID, hash, claims.ID); err != nil {
		return fmt.Errorf("passwordReset.ResetPassword: %w", err)
	}
	return nil
}

func (s *passwordResetService) generateResetToken(user *domain.User) (tokenString, jti string, err error) {
	now := time.Now()
	jti = uuid.New().String()
	claims := newClaims(user, s.jwtCfg.Issuer, audiencePasswordReset, jti, now, now.Add(passwordResetTTL))

	tokenString, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtCfg.Secret))
	if err != nil {
		return "", "", err
	}
	return tokenString, jti, nil
}
