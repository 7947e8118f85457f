package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"claimdesk/internal/domain"
	"claimdesk/internal/service"
)

// MockTrashService is a mock implementation of service.TrashService.
type MockTrashService struct {
	mock.Mock
}

func (m *MockTrashService) List(ctx context.Context, tenantID uuid.UUID, kind domain.TrashKind, offset, limit int) ([]domain.TrashItem, int, error) {
	args := m.Called(ctx, tenantID, kind, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.TrashItem), args.Int(1), args.Error(2)
}

func (m *MockTrashService) Restore(ctx context.Context, tenantID uuid.UUID, kind domain.TrashKind, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, kind, id)
	return args.Error(0)
}

func (m *MockTrashService) Purge(ctx context.Context, tenantID uuid.UUID, kind domain.TrashKind, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, kind, id)
	return args.Error(0)
}

func (m *MockTrashService) Empty(ctx context.Context, tenantID uuid.UUID) (*service.BatchResult, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.BatchResult), args.Error(1)
}

func (m *MockTrashService) PurgeExpired(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
