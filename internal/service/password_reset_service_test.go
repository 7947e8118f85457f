package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"claimdesk/internal/domain"
	"claimdesk/internal/port"
	"claimdesk/internal/service"
	"claimdesk/mocks"
)

func TestPasswordReset_ForgotThenReset(t *testing.T) {
	tenantRepo := new(mocks.MockTenantRepo)
	userRepo := new(mocks.MockUserRepo)
	sender := new(mocks.MockEmailSender)
	svc := service.NewPasswordResetService(tenantRepo, userRepo, sender, testJWTConfig(), zap.NewNop())

	tenant := activeTenant()
	user := &domain.User{ID: uuid.New(), TenantID: tenant.ID, Email: "ana@example.com", FullName: "Ana", IsActive: true}
	brand := &domain.TenantBranding{TenantID: tenant.ID, DisplayName: "Seguros Norte"}

	var jti, token string
	tenantRepo.On("GetBySlug", mock.Anything, tenant.Slug).Return(tenant, nil)
	tenantRepo.On("GetBranding", mock.Anything, tenant.ID).Return(brand, nil)
	userRepo.On("GetByEmail", mock.Anything, tenant.ID, "ana.work@example.com").Return(user, nil)
	userRepo.On("SetPasswordResetToken", mock.Anything, tenant.ID, user.ID, mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { jti = args.String(3) }).
		Return(nil)
	sender.On("SendPasswordResetEmail", mock.Anything, brand,
		port.EmailRecipient{Email: "ana.work@example.com", Name: "Ana"}, mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { token = args.String(3) }).
		Return(nil)

	err := svc.ForgotPassword(context.Background(), service.ForgotPasswordInput{
		TenantSlug: tenant.Slug, Email: "Ana.Work@example.com",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotEmpty(t, jti)

	userRepo.On("ResetPassword", mock.Anything, tenant.ID, user.ID, mock.AnythingOfType("string"), jti).Return(nil)

	err = svc.ResetPassword(context.Background(), service.ResetPasswordInput{Token: token, NewPassword: "newpassword1"})
	assert.NoError(t, err)
	userRepo.AssertExpectations(t)
	sender.AssertExpectations(t)
}

func TestPasswordReset_UnknownEmailIsSilent(t *testing.T) {
	tenantRepo := new(mocks.MockTenantRepo)
	userRepo := new(mocks.MockUserRepo)
	sender := new(mocks.MockEmailSender)
	svc := service.NewPasswordResetService(tenantRepo, userRepo, sender, testJWTConfig(), zap.NewNop())

	tenant := activeTenant()
	tenantRepo.On("GetBySlug", mock.Anything, tenant.Slug).Return(tenant, nil)
	userRepo.On("GetByEmail", mock.Anything, tenant.ID, "ghost@example.com").Return(nil, domain.ErrNotFound)

	err := svc.ForgotPassword(context.Background(), service.ForgotPasswordInput{TenantSlug: tenant.Slug, Email: "ghost@example.com"})

	assert.NoError(t, err)
	sender.AssertNumberOfCalls(t, "SendPasswordResetEmail", 0)
}

func TestPasswordReset_RejectsAccessToken(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	tenantRepo := new(mocks.MockTenantRepo)
	auth := service.NewAuthService(userRepo, tenantRepo, testJWTConfig())
	svc := service.NewPasswordResetService(tenantRepo, userRepo, new(mocks.MockEmailSender), testJWTConfig(), zap.NewNop())

	tenant := activeTenant()
	user := &domain.User{ID: uuid.New(), TenantID: tenant.ID, PasswordHash: mustHash("password123"), IsActive: true}
	tenantRepo.On("GetBySlug", mock.Anything, tenant.Slug).Return(tenant, nil)
	userRepo.On("GetByEmail", mock.Anything, tenant.ID, "ana@example.com").Return(user, nil)

	pair, err := auth.Login(context.Background(), service.LoginInput{
		TenantSlug: tenant.Slug, Email: "ana@example.com", Password: "password123",
	})
	require.NoError(t, err)

	err = svc.ResetPassword(context.Background(), service.ResetPasswordInput{Token: pair.AccessToken, NewPassword: "newpassword1"})
	assert.ErrorIs(t, err, domain.ErrPasswordResetTokenInvalid)
	userRepo.AssertNumberOfCalls(t, "ResetPassword", 0)
}
