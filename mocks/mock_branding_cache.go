package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"claimdesk/internal/domain"
)

// MockBrandingCache is a mock implementation of port.BrandingCache.
type MockBrandingCache struct {
	mock.Mock
}

func (m *MockBrandingCache) Get(ctx context.Context, slug string) (*domain.TenantBranding, bool, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.TenantBranding), args.Bool(1), args.Error(2)
}

func (m *MockBrandingCache) Set(ctx context.Context, slug string, branding *domain.TenantBranding) error {
	args := m.Called(ctx, slug, branding)
	return args.Error(0)
}

func (m *MockBrandingCache) Delete(ctx context.Context, slug string) error {
	args := m.Called(ctx, slug)
	return args.Error(0)
}
