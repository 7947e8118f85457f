package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"claimdesk/internal/config"
	"claimdesk/internal/domain"
	"claimdesk/internal/port"
	"claimdesk/internal/validation"
)

// CreateTenantInput is the DTO for creating a tenant.
type CreateTenantInput struct {
	Name string `json:"name" binding:"required,max=120"`
	Slug string `json:"slug" binding:"required,tenant_slug"`
}

// UpdateTenantInput is the DTO for updating a tenant.
type UpdateTenantInput struct {
	Name     *string `json:"name" binding:"omitempty,max=120"`
	Slug     *string `json:"slug" binding:"omitempty,tenant_slug"`
	IsActive *bool   `json:"is_active"`
}

// UpdateBrandingInput is the DTO for updating tenant white-label settings.
// An empty custom domain clears it.
type UpdateBrandingInput struct {
	DisplayName    *string `json:"display_name" binding:"omitempty,max=120"`
	PrimaryColor   *string `json:"primary_color" binding:"omitempty,hexcolor6"`
	SecondaryColor *string `json:"secondary_color" binding:"omitempty,hexcolor6"`
	SupportEmail   *string `json:"support_email" binding:"omitempty,email"`
	CustomDomain   *string `json:"custom_domain" binding:"omitempty,fqdn"`
}

// TenantService defines the tenant and white-label management contract.
type TenantService interface {
	Create(ctx context.Context, input CreateTenantInput) (*domain.Tenant, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error)
	List(ctx context.Context, offset, limit int) ([]domain.Tenant, int, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateTenantInput) (*domain.Tenant, error)
	Delete(ctx context.Context, id uuid.UUID) error

	GetBranding(ctx context.Context, tenantID uuid.UUID) (*domain.TenantBranding, error)
	UpdateBranding(ctx context.Context, tenantID uuid.UUID, input UpdateBrandingInput) (*domain.TenantBranding, error)
	UploadLogo(ctx context.Context, tenantID uuid.UUID, file FileUpload) (*domain.TenantBranding, error)
	// PublicBranding serves the login page of an active tenant.
	PublicBranding(ctx context.Context, slug string) (*domain.TenantBranding, error)
}

type tenantService struct {
	repo    port.TenantRepository
	cache   port.BrandingCache
	objects *objectStore
	cfg     *config.S3Config
	log     *zap.Logger
}

// NewTenantService creates a new TenantService implementation.
func NewTenantService(
	repo port.TenantRepository,
	cache port.BrandingCache,
	storage port.ObjectStorage,
	cfg *config.S3Config,
	log *zap.Logger,
) TenantService {
	return &tenantService{
		repo:    repo,
		cache:   cache,
		objects: &objectStore{storage: storage, cfg: cfg, log: log},
		cfg:     cfg,
		log:     log,
	}
}

func (s *tenantService) Create(ctx context.Context, input CreateTenantInput) (*domain.Tenant, error) {
	slug := strings.ToLower(strings.TrimSpace(input.Slug))
	if !validation.TenantSlug(slug) {
		return nil, domain.ErrInvalidTenantSlug
	}
	tenant := &domain.Tenant{
		Name:     strings.TrimSpace(input.Name),
		Slug:     slug,
		IsActive: true,
	}
	if err := s.repo.Create(ctx, tenant); err != nil {
		return nil, err
	}
	s.log.Info("tenant created", zap.String("tenant_id", tenant.ID.String()), zap.String("slug", slug))
	return tenant, nil
}

func (s *tenantService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *tenantService) List(ctx context.Context, offset, limit int) ([]domain.Tenant, int, error) {
	return s.repo.List(ctx, offset, limit)
}

func (s *tenantService) Update(ctx context.Context, id uuid.UUID, input UpdateTenantInput) (*domain.Tenant, error) {
	tenant, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	oldSlug := tenant.Slug

	if input.Name != nil {
		tenant.Name = strings.TrimSpace(*input.Name)
	}
	if input.Slug != nil {
		slug := strings.ToLower(strings.TrimSpace(*input.Slug))
		if !validation.TenantSlug(slug) {
			return nil, domain.ErrInvalidTenantSlug
		}
		tenant.Slug = slug
	}
	if input.IsActive != nil {
		tenant.IsActive = *input.IsActive
	}

	if err := s.repo.Update(ctx, tenant); err != nil {
		return nil, err
	}
	s.invalidate(ctx, oldSlug, tenant.Slug)
	return tenant, nil
}

func (s *tenantService) Delete(ctx context.Context, id uuid.UUID) error {
	tenant, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	logoKey, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	s.objects.remove(ctx, logoKey)
	s.invalidate(ctx, tenant.Slug)
	s.log.Info("tenant deleted", zap.String("tenant_id", id.String()), zap.String("slug", tenant.Slug))
	return nil
}

func (s *tenantService) GetBranding(ctx context.Context, tenantID uuid.UUID) (*domain.TenantBranding, error) {
	tenant, err := s.repo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	brand, err := s.loadBranding(ctx, tenant)
	if err != nil {
		return nil, err
	}
	brand.LogoURL = s.objects.url(ctx, brand.LogoKey)
	return brand, nil
}

func (s *tenantService) UpdateBranding(ctx context.Context, tenantID uuid.UUID, input UpdateBrandingInput) (*domain.TenantBranding, error) {
	tenant, err := s.repo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	brand, err := s.loadBranding(ctx, tenant)
	if err != nil {
		return nil, err
	}

	if input.DisplayName != nil {
		brand.DisplayName = strings.TrimSpace(*input.DisplayName)
	}
	if input.PrimaryColor != nil {
		if !validation.HexColor(*input.PrimaryColor) {
			return nil, domain.ErrInvalidColor
		}
		brand.PrimaryColor = strings.ToUpper(*input.PrimaryColor)
	}
	if input.SecondaryColor != nil {
		if !validation.HexColor(*input.SecondaryColor) {
			return nil, domain.ErrInvalidColor
		}
		brand.SecondaryColor = strings.ToUpper(*input.SecondaryColor)
	}
	if input.SupportEmail != nil {
		email := domain.NormalizeEmail(*input.SupportEmail)
		if email != "" && !validation.Email(email) {
			return nil, domain.ErrInvalidEmail
		}
		brand.SupportEmail = email
	}
	if input.CustomDomain != nil {
		brand.CustomDomain = strings.ToLower(strings.TrimSpace(*input.CustomDomain))
	}

	if err := s.repo.UpsertBranding(ctx, brand); err != nil {
		return nil, err
	}
	s.invalidate(ctx, tenant.Slug)
	brand.LogoURL = s.objects.url(ctx, brand.LogoKey)
	return brand, nil
}

func (s *tenantService) UploadLogo(ctx context.Context, tenantID uuid.UUID, file FileUpload) (*domain.TenantBranding, error) {
	tenant, err := s.repo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	brand, err := s.loadBranding(ctx, tenant)
	if err != nil {
		return nil, err
	}

	info, err := inspectUpload(file, domain.ImageFileTypes, megabytes(s.cfg.MaxAvatarSizeMB))
	if err != nil {
		return nil, err
	}
	key := objectKey(tenantID, "branding", tenantID, info.Ext)
	if err := s.objects.put(ctx, key, file, info.ContentType); err != nil {
		return nil, err
	}

	previous := brand.LogoKey
	brand.LogoKey = key
	if err := s.repo.UpsertBranding(ctx, brand); err != nil {
		s.objects.remove(ctx, key)
		return nil, err
	}
	s.objects.remove(ctx, previous)
	s.invalidate(ctx, tenant.Slug)

	brand.LogoURL = s.objects.url(ctx, key)
	return brand, nil
}

func (s *tenantService) PublicBranding(ctx context.Context, slug string) (*domain.TenantBranding, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))

	cached, ok, err := s.cache.Get(ctx, slug)
	if err != nil {
		s.log.Warn("reading branding cache", zap.String("slug", slug), zap.Error(err))
	}
	if ok {
		return cached, nil
	}

	tenant, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !tenant.IsActive {
		return nil, domain.ErrNotFound
	}
	brand, err := s.loadBranding(ctx, tenant)
	if err != nil {
		return nil, err
	}
	brand.LogoURL = s.objects.url(ctx, brand.LogoKey)

	if err := s.cache.Set(ctx, slug, brand); err != nil {
		s.log.Warn("writing branding cache", zap.String("slug", slug), zap.Error(err))
	}
	return brand, nil
}

// loadBranding returns the stored branding or the tenant's defaults.
func (s *tenantService) loadBranding(ctx context.Context, tenant *domain.Tenant) (*domain.TenantBranding, error) {
	brand, err := s.repo.GetBranding(ctx, tenant.ID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.DefaultBranding(tenant), nil
	}
	if err != nil {
		return nil, fmt.Errorf("tenantService.loadBranding: %w", err)
	}
	return brand, nil
}

func (s *tenantService) invalidate(ctx context.Context, slugs ...string) {
	for _, slug := range slugs {
		if err := s.cache.Delete(ctx, slug); err != nil {
			s.log.Warn("invalidating branding cache", zap.String("slug", slug), zap.Error(err))
		}
	}
}
