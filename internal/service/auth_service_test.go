package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"claimdesk/internal/domain"
	"claimdesk/internal/service"
	"claimdesk/mocks"
)

func setupAuth() (*mocks.MockUserRepo, *mocks.MockTenantRepo, service.AuthService) {
	userRepo := new(mocks.MockUserRepo)
	tenantRepo := new(mocks.MockTenantRepo)
	return userRepo, tenantRepo, service.NewAuthService(userRepo, tenantRepo, testJWTConfig())
}

func activeTenant() *domain.Tenant {
	return &domain.Tenant{ID: uuid.New(), Name: "Seguros Norte", Slug: "seguros-norte", IsActive: true}
}

func TestAuthService_Login_Success(t *testing.T) {
	userRepo, tenantRepo, svc := setupAuth()
	tenant := activeTenant()
	user := &domain.User{
		ID: uuid.New(), TenantID: tenant.ID, Email: "ana@example.com",
		PasswordHash: mustHash("password123"), Role: domain.RoleClient, IsActive: true,
	}

	tenantRepo.On("GetBySlug", mock.Anything, "seguros-norte").Return(tenant, nil)
	userRepo.On("GetByEmail", mock.Anything, tenant.ID, "ana@example.com").Return(user, nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{
		TenantSlug: "seguros-norte",
		Email:      "  ANA@example.com",
		Password:   "password123",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	claims, err := svc.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, tenant.ID, claims.TenantID)
	assert.Equal(t, domain.RoleClient, claims.Role)

	_, err = svc.ValidateToken(pair.RefreshToken)
	assert.Error(t, err)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	userRepo, tenantRepo, svc := setupAuth()
	tenant := activeTenant()

	tenantRepo.On("GetBySlug", mock.Anything, tenant.Slug).Return(tenant, nil)
	userRepo.On("GetByEmail", mock.Anything, tenant.ID, "ghost@example.com").Return(nil, domain.ErrNotFound)

	_, err := svc.Login(context.Background(), service.LoginInput{
		TenantSlug: tenant.Slug, Email: "ghost@example.com", Password: "password123",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	userRepo, tenantRepo, svc := setupAuth()
	tenant := activeTenant()
	user := &domain.User{ID: uuid.New(), TenantID: tenant.ID, PasswordHash: mustHash("password123"), IsActive: true}

	tenantRepo.On("GetBySlug", mock.Anything, tenant.Slug).Return(tenant, nil)
	userRepo.On("GetByEmail", mock.Anything, tenant.ID, "ana@example.com").Return(user, nil)

	_, err := svc.Login(context.Background(), service.LoginInput{
		TenantSlug: tenant.Slug, Email: "ana@example.com", Password: "wrongpassword",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Login_InactiveUser(t *testing.T) {
	userRepo, tenantRepo, svc := setupAuth()
	tenant := activeTenant()
	user := &domain.User{ID: uuid.New(), TenantID: tenant.ID, PasswordHash: mustHash("password123"), IsActive: false}

	tenantRepo.On("GetBySlug", mock.Anything, tenant.Slug).Return(tenant, nil)
	userRepo.On("GetByEmail", mock.Anything, tenant.ID, "ana@example.com").Return(user, nil)

	_, err := svc.Login(context.Background(), service.LoginInput{
		TenantSlug: tenant.Slug, Email: "ana@example.com", Password: "password123",
	})

	assert.ErrorIs(t, err, domain.ErrUserInactive)
}

func TestAuthService_Login_InactiveTenant(t *testing.T) {
	_, tenantRepo, svc := setupAuth()
	tenant := activeTenant()
	tenant.IsActive = false

	tenantRepo.On("GetBySlug", mock.Anything, tenant.Slug).Return(tenant, nil)

	_, err := svc.Login(context.Background(), service.LoginInput{
		TenantSlug: tenant.Slug, Email: "ana@example.com", Password: "password123",
	})

	assert.ErrorIs(t, err, domain.ErrTenantInactive)
}

func TestAuthService_RefreshToken(t *testing.T) {
	userRepo, tenantRepo, svc := setupAuth()
	tenant := activeTenant()
	user := &domain.User{
		ID: uuid.New(), TenantID: tenant.ID, Email: "ana@example.com",
		PasswordHash: mustHash("password123"), Role: domain.RoleStaff, IsActive: true,
	}

	tenantRepo.On("GetBySlug", mock.Anything, tenant.Slug).Return(tenant, nil)
	tenantRepo.On("GetByID", mock.Anything, tenant.ID).Return(tenant, nil)
	userRepo.On("GetByEmail", mock.Anything, tenant.ID, "ana@example.com").Return(user, nil)
	userRepo.On("GetByID", mock.Anything, tenant.ID, user.ID).Return(user, nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{
		TenantSlug: tenant.Slug, Email: "ana@example.com", Password: "password123",
	})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = svc.RefreshToken(context.Background(), pair.AccessToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthService_RefreshToken_TrashedUser(t *testing.T) {
	userRepo, tenantRepo, svc := setupAuth()
	tenant := activeTenant()
	user := &domain.User{
		ID: uuid.New(), TenantID: tenant.ID, Email: "ana@example.com",
		PasswordHash: mustHash("password123"), Role: domain.RoleClient, IsActive: true,
	}

	tenantRepo.On("GetBySlug", mock.Anything, tenant.Slug).Return(tenant, nil)
	tenantRepo.On("GetByID", mock.Anything, tenant.ID).Return(tenant, nil)
	userRepo.On("GetByEmail", mock.Anything, tenant.ID, "ana@example.com").Return(user, nil)
	userRepo.On("GetByID", mock.Anything, tenant.ID, user.ID).Return(nil, domain.ErrNotFound)

	pair, err := svc.Login(context.Background(), service.LoginInput{
		TenantSlug: tenant.Slug, Email: "ana@example.com", Password: "password123",
	})
	require.NoError(t, err)

	_, err = svc.RefreshToken(context.Background(), pair.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
