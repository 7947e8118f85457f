package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"claimdesk/internal/domain"
)

// MockTrashRepo is a mock implementation of port.TrashRepository.
type MockTrashRepo struct {
	mock.Mock
}

func (m *MockTrashRepo) List(ctx context.Context, tenantID uuid.UUID, kind domain.TrashKind, offset, limit int) ([]domain.TrashItem, int, error) {
	args := m.Called(ctx, tenantID, kind, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.TrashItem), args.Int(1), args.Error(2)
}

func (m *MockTrashRepo) Count(ctx context.Context, tenantID uuid.UUID) (int, error) {
	args := m.Called(ctx, tenantID)
	return args.Int(0), args.Error(1)
}

func (m *MockTrashRepo) Restore(ctx context.Context, tenantID uuid.UUID, kind domain.TrashKind, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, kind, id)
	return args.Error(0)
}

func (m *MockTrashRepo) Purge(ctx context.Context, tenantID uuid.UUID, kind domain.TrashKind, id uuid.UUID) ([]string, error) {
	args := m.Called(ctx, tenantID, kind, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockTrashRepo) Empty(ctx context.Context, tenantID uuid.UUID) (int, []string, error) {
	args := m.Called(ctx, tenantID)
	var r1 []string
	if v := args.Get(1); v != nil {
		r1 = v.([]string)
	}
	return args.Int(0), r1, args.Error(2)
}

func (m *MockTrashRepo) PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int, []string, error) {
	args := m.Called(ctx, cutoff)
	var r1 []string
	if v := args.Get(1); v != nil {
		r1 = v.([]string)
	}
	return args.Int(0), r1, args.Error(2)
}
