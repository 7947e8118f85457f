package port

import (
	"context"

	"claimdesk/internal/domain"
)

// BrandingCache caches public tenant branding keyed by tenant slug.
type BrandingCache interface {
	Get(ctx context.Context, slug string) (*domain.TenantBranding, bool, error)
	Set(ctx context.Context, slug string, branding *domain.TenantBranding) error
	Delete(ctx context.Context, slug string) error
}
