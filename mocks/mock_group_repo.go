package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"claimdesk/internal/domain"
)

// MockGroupRepo is a mock implementation of port.GroupRepository.
type MockGroupRepo struct {
	mock.Mock
}

func (m *MockGroupRepo) Create(ctx context.Context, group *domain.ClientGroup) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

func (m *MockGroupRepo) GetByID(ctx context.Context, tenantID, groupID uuid.UUID) (*domain.ClientGroup, error) {
	args := m.Called(ctx, tenantID, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClientGroup), args.Error(1)
}

func (m *MockGroupRepo) List(ctx context.Context, tenantID uuid.UUID, search string, offset, limit int) ([]domain.ClientGroup, int, error) {
	args := m.Called(ctx, tenantID, search, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ClientGroup), args.Int(1), args.Error(2)
}

func (m *MockGroupRepo) Update(ctx context.Context, group *domain.ClientGroup) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

func (m *MockGroupRepo) Trash(ctx context.Context, tenantID uuid.UUID, groupIDs []uuid.UUID) (int, error) {
	args := m.Called(ctx, tenantID, groupIDs)
	return args.Int(0), args.Error(1)
}

func (m *MockGroupRepo) AddMembers(ctx context.Context, tenantID, groupID uuid.UUID, userIDs []uuid.UUID) (int, error) {
	args := m.Called(ctx, tenantID, groupID, userIDs)
	return args.Int(0), args.Error(1)
}

func (m *MockGroupRepo) RemoveMember(ctx context.Context, tenantID, groupID, userID uuid.UUID) error {
	args := m.Called(ctx, tenantID, groupID, userID)
	return args.Error(0)
}

func (m *MockGroupRepo) ListMembers(ctx context.Context, tenantID, groupID uuid.UUID, offset, limit int) ([]domain.User, int, error) {
	args := m.Called(ctx, tenantID, groupID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.User), args.Int(1), args.Error(2)
}
