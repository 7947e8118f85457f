package service_test

import (
	"context"
	"errors"
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

type tenantDeps struct {
	repo    *mocks.MockTenantRepo
	cache   *mocks.MockBrandingCache
	storage *mocks.MockObjectStorage
	svc     service.TenantService
}

func setupTenants() tenantDeps {
	d := tenantDeps{
		repo:    new(mocks.MockTenantRepo),
		cache:   new(mocks.MockBrandingCache),
		storage: new(mocks.MockObjectStorage),
	}
	d.svc = service.NewTenantService(d.repo, d.cache, d.storage, testS3Config(), zap.NewNop())
	return d
}

func strPtr(s string) *string { return &s }

func TestTenantService_Create(t *testing.T) {
	d := setupTenants()
	d.repo.On("Create", mock.Anything, mock.MatchedBy(func(tn *domain.Tenant) bool {
		return tn.Slug == "seguros-norte" && tn.IsActive
	})).Return(nil)

	tenant, err := d.svc.Create(context.Background(), service.CreateTenantInput{Name: "Seguros Norte", Slug: " Seguros-Norte "})

	require.NoError(t, err)
	assert.Equal(t, "seguros-norte", tenant.Slug)

	_, err = d.svc.Create(context.Background(), service.CreateTenantInput{Name: "Bad", Slug: "no_underscores"})
	assert.ErrorIs(t, err, domain.ErrInvalidTenantSlug)
}

func TestTenantService_Update_InvalidatesBothSlugs(t *testing.T) {
	d := setupTenants()
	tenant := activeTenant()

	d.repo.On("GetByID", mock.Anything, tenant.ID).Return(tenant, nil)
	d.repo.On("Update", mock.Anything, tenant).Return(nil)
	d.cache.On("Delete", mock.Anything, "seguros-norte").Return(nil)
	d.cache.On("Delete", mock.Anything, "norte").Return(nil)

	got, err := d.svc.Update(context.Background(), tenant.ID, service.UpdateTenantInput{Slug: strPtr("norte")})

	require.NoError(t, err)
	assert.Equal(t, "norte", got.Slug)
	d.cache.AssertExpectations(t)
}

func TestTenantService_PublicBranding_CacheHit(t *testing.T) {
	d := setupTenants()
	cached := &domain.TenantBranding{DisplayName: "Seguros Norte", PrimaryColor: "#112233"}
	d.cache.On("Get", mock.Anything, "seguros-norte").Return(cached, true, nil)

	got, err := d.svc.PublicBranding(context.Background(), "Seguros-Norte")

	require.NoError(t, err)
	assert.Equal(t, cached, got)
	d.repo.AssertNumberOfCalls(t, "GetBySlug", 0)
}

func TestTenantService_PublicBranding_MissUsesDefaults(t *testing.T) {
	d := setupTenants()
	tenant := activeTenant()

	d.cache.On("Get", mock.Anything, tenant.Slug).Return(nil, false, nil)
	d.repo.On("GetBySlug", mock.Anything, tenant.Slug).Return(tenant, nil)
	d.repo.On("GetBranding", mock.Anything, tenant.ID).Return(nil, domain.ErrNotFound)
	d.cache.On("Set", mock.Anything, tenant.Slug, mock.AnythingOfType("*domain.TenantBranding")).Return(nil)

	got, err := d.svc.PublicBranding(context.Background(), tenant.Slug)

	require.NoError(t, err)
	assert.Equal(t, "Seguros Norte", got.DisplayName)
	assert.Equal(t, "#1E3A8A", got.PrimaryColor)
	assert.Empty(t, got.LogoURL)
	d.cache.AssertExpectations(t)
}

func TestTenantService_PublicBranding_CacheErrorFallsThrough(t *testing.T) {
	d := setupTenants()
	tenant := activeTenant()
	brand := &domain.TenantBranding{TenantID: tenant.ID, DisplayName: "Norte", LogoKey: "tenants/x/branding/logo.png"}

	d.cache.On("Get", mock.Anything, tenant.Slug).Return(nil, false, errors.New("redis down"))
	d.repo.On("GetBySlug", mock.Anything, tenant.Slug).Return(tenant, nil)
	d.repo.On("GetBranding", mock.Anything, tenant.ID).Return(brand, nil)
	d.storage.On("PresignGet", mock.Anything, "claimdesk-test", brand.LogoKey, int64(3600)).Return("https://cdn/logo.png", nil)
	d.cache.On("Set", mock.Anything, tenant.Slug, brand).Return(errors.New("redis down"))

	got, err := d.svc.PublicBranding(context.Background(), tenant.Slug)

	require.NoError(t, err)
	assert.Equal(t, "https://cdn/logo.png", got.LogoURL)
}

func TestTenantService_PublicBranding_InactiveTenant(t *testing.T) {
	d := setupTenants()
	tenant := activeTenant()
	tenant.IsActive = false

	d.cache.On("Get", mock.Anything, tenant.Slug).Return(nil, false, nil)
	d.repo.On("GetBySlug", mock.Anything, tenant.Slug).Return(tenant, nil)

	_, err := d.svc.PublicBranding(context.Background(), tenant.Slug)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTenantService_UpdateBranding(t *testing.T) {
	d := setupTenants()
	tenant := activeTenant()

	d.repo.On("GetByID", mock.Anything, tenant.ID).Return(tenant, nil)
	d.repo.On("GetBranding", mock.Anything, tenant.ID).Return(nil, domain.ErrNotFound)

	_, err := d.svc.UpdateBranding(context.Background(), tenant.ID, service.UpdateBrandingInput{PrimaryColor: strPtr("blue")})
	assert.ErrorIs(t, err, domain.ErrInvalidColor)

	d.repo.On("UpsertBranding", mock.Anything, mock.MatchedBy(func(b *domain.TenantBranding) bool {
		return b.PrimaryColor == "#AABBCC" && b.SupportEmail == "help@norte.mx" && b.TenantID == tenant.ID
	})).Return(nil)
	d.cache.On("Delete", mock.Anything, tenant.Slug).Return(nil)

	got, err := d.svc.UpdateBranding(context.Background(), tenant.ID, service.UpdateBrandingInput{
		PrimaryColor: strPtr("#aabbcc"),
		SupportEmail: strPtr("Help@Norte.mx"),
	})

	require.NoError(t, err)
	assert.Equal(t, "#AABBCC", got.PrimaryColor)
	d.repo.AssertExpectations(t)
	d.cache.AssertExpectations(t)
}

func TestTenantService_UploadLogo(t *testing.T) {
	d := setupTenants()
	tenant := activeTenant()

	d.repo.On("GetByID", mock.Anything, tenant.ID).Return(tenant, nil)
	d.repo.On("GetBranding", mock.Anything, tenant.ID).Return(&domain.TenantBranding{TenantID: tenant.ID}, nil)
	d.storage.On("Put", mock.Anything, mock.MatchedBy(func(in port.PutInput) bool {
		return in.ContentType == "image/png"
	})).Return(nil)
	d.repo.On("UpsertBranding", mock.Anything, mock.AnythingOfType("*domain.TenantBranding")).Return(nil)
	d.cache.On("Delete", mock.Anything, tenant.Slug).Return(nil)
	d.storage.On("PresignGet", mock.Anything, "claimdesk-test", mock.AnythingOfType("string"), int64(3600)).
		Return("https://cdn/logo.png", nil)

	got, err := d.svc.UploadLogo(context.Background(), tenant.ID, newUpload("logo.png", pngBytes))

	require.NoError(t, err)
	assert.Contains(t, got.LogoKey, "tenants/"+tenant.ID.String()+"/branding/")
	assert.Equal(t, "https://cdn/logo.png", got.LogoURL)
	d.storage.AssertNumberOfCalls(t, "DeleteMany", 0)
}

func TestTenantService_Delete_RemovesLogo(t *testing.T) {
	d := setupTenants()
	tenant := activeTenant()
	id := tenant.ID

	d.repo.On("GetByID", mock.Anything, id).Return(tenant, nil)
	d.repo.On("Delete", mock.Anything, id).Return("logo.png", nil)
	d.storage.On("DeleteMany", mock.Anything, "claimdesk-test", []string{"logo.png"}).Return(nil)
	d.cache.On("Delete", mock.Anything, tenant.Slug).Return(nil)

	require.NoError(t, d.svc.Delete(context.Background(), id))
	d.storage.AssertExpectations(t)

	missing := uuid.New()
	d.repo.On("GetByID", mock.Anything, missing).Return(nil, domain.ErrNotFound)
	assert.ErrorIs(t, d.svc.Delete(context.Background(), missing), domain.ErrNotFound)
}
