package noop

import (
	"context"

	"claimdesk/internal/domain"
	"claimdesk/internal/port"
)

type brandingCache struct{}

// NewBrandingCache returns a BrandingCache that never stores anything.
func NewBrandingCache() port.BrandingCache {
	return brandingCache{}
}

func (brandingCache) Get(context.Context, string) (*domain.TenantBranding, bool, error) {
	return nil, false, nil
}

func (brandingCache) Set(context.Context, string, *domain.TenantBranding) error { return nil }

func (brandingCache) Delete(context.Context, string) error { return nil }
