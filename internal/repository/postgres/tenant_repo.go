package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"claimdesk/internal/domain"
	"claimdesk/internal/port"
)

type tenantRepo struct {
	db *sqlx.DB
}

// NewTenantRepo creates a new PostgreSQL-backed TenantRepository.
func NewTenantRepo(db *sqlx.DB) port.TenantRepository {
	return &tenantRepo{db: db}
}

// Create stores the tenant together with its default branding, so the login
// page of a new tenant shows its name right away.
func (r *tenantRepo) Create(ctx context.Context, tenant *domain.Tenant) error {
	tenant.ID = uuid.New()
	now := time.Now().UTC()
	tenant.CreatedAt = now
	tenant.UpdatedAt = now
	brand := domain.DefaultBranding(tenant)

	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO tenants (id, name, slug, is_active, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			tenant.ID, tenant.Name, tenant.Slug, tenant.IsActive, tenant.CreatedAt, tenant.UpdatedAt); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO tenant_branding (tenant_id, display_name, primary_color, secondary_color, updated_at)
			 VALUES ($1, $2, $3, $4, $5)`,
			brand.TenantID, brand.DisplayName, brand.PrimaryColor, brand.SecondaryColor, now)
		return err
	})
	if err != nil {
		if isUniqueViolation(err, constraintTenantSlug) {
			return domain.ErrDuplicateTenantSlug
		}
		return fmt.Errorf("tenantRepo.Create: %w", err)
	}
	return nil
}

func (r *tenantRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error) {
	var tenant domain.Tenant
	err := r.db.GetContext(ctx, &tenant, "SELECT * FROM tenants WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("tenantRepo.GetByID: %w", err)
	}
	return &tenant, nil
}

func (r *tenantRepo) GetBySlug(ctx context.Context, slug string) (*domain.Tenant, error) {
	var tenant domain.Tenant
	err := r.db.GetContext(ctx, &tenant, "SELECT * FROM tenants WHERE slug = $1", slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("tenantRepo.GetBySlug: %w", err)
	}
	return &tenant, nil
}

func (r *tenantRepo) List(ctx context.Context, offset, limit int) ([]domain.Tenant, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM tenants")
	if err != nil {
		return nil, 0, fmt.Errorf("tenantRepo.List count: %w", err)
	}

	var tenants []domain.Tenant
	err = r.db.SelectContext(ctx, &tenants,
		"SELECT * FROM tenants ORDER BY created_at DESC LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("tenantRepo.List: %w", err)
	}
	return tenants, total, nil
}

func (r *tenantRepo) Update(ctx context.Context, tenant *domain.Tenant) error {
	tenant.UpdatedAt = time.Now().UTC()
	query := `UPDATE tenants SET name = $1, slug = $2, is_active = $3, updated_at = $4 WHERE id = $5`
	result, err := r.db.ExecContext(ctx, query,
		tenant.Name, tenant.Slug, tenant.IsActive, tenant.UpdatedAt, tenant.ID)
	if err != nil {
		if isUniqueViolation(err, constraintTenantSlug) {
			return domain.ErrDuplicateTenantSlug
		}
		return fmt.Errorf("tenantRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the tenant and everything it owns, returning the logo key
// so the caller can clean up storage. Branding is read from the statement
// snapshot, before the cascade removes it.
func (r *tenantRepo) Delete(ctx context.Context, id uuid.UUID) (string, error) {
	var logoKey string
	err := r.db.GetContext(ctx, &logoKey,
		`DELETE FROM tenants WHERE id = $1
		 RETURNING COALESCE((SELECT logo_key FROM tenant_branding WHERE tenant_id = $1), '')`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("tenantRepo.Delete: %w", err)
	}
	return logoKey, nil
}

// GetBranding returns the stored branding, or ErrNotFound when the tenant
// has never customized it.
func (r *tenantRepo) GetBranding(ctx context.Context, tenantID uuid.UUID) (*domain.TenantBranding, error) {
	var branding domain.TenantBranding
	err := r.db.GetContext(ctx, &branding,
		`SELECT tenant_id, display_name, logo_key, primary_color, secondary_color,
			support_email, custom_domain, updated_at
		 FROM tenant_branding WHERE tenant_id = $1`, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("tenantRepo.GetBranding: %w", err)
	}
	return &branding, nil
}

func (r *tenantRepo) UpsertBranding(ctx context.Context, branding *domain.TenantBranding) error {
	branding.UpdatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tenant_branding (tenant_id, display_name, logo_key, primary_color,
			secondary_color, support_email, custom_domain, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (tenant_id) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			logo_key = EXCLUDED.logo_key,
			primary_color = EXCLUDED.primary_color,
			secondary_color = EXCLUDED.secondary_color,
			support_email = EXCLUDED.support_email,
			custom_domain = EXCLUDED.custom_domain,
			updated_at = EXCLUDED.updated_at`,
		branding.TenantID, branding.DisplayName, branding.LogoKey, branding.PrimaryColor,
		branding.SecondaryColor, branding.SupportEmail, branding.CustomDomain, branding.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, constraintCustomDomain) {
			return domain.ErrDuplicateCustomDomain
		}
		return fmt.Errorf("tenantRepo.UpsertBranding: %w", err)
	}
	return nil
}
