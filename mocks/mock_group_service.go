package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"claimdesk/internal/domain"
	"claimdesk/internal/service"
)

// MockGroupService is a mock implementation of service.GroupService.
type MockGroupService struct {
	mock.Mock
}

func (m *MockGroupService) Create(ctx context.Context, actor service.Actor, input service.CreateGroupInput) (*domain.ClientGroup, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClientGroup), args.Error(1)
}

func (m *MockGroupService) GetByID(ctx context.Context, tenantID, groupID uuid.UUID) (*domain.ClientGroup, error) {
	args := m.Called(ctx, tenantID, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClientGroup), args.Error(1)
}

func (m *MockGroupService) List(ctx context.Context, tenantID uuid.UUID, search string, offset, limit int) ([]domain.ClientGroup, int, error) {
	args := m.Called(ctx, tenantID, search, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ClientGroup), args.Int(1), args.Error(2)
}

func (m *MockGroupService) Update(ctx context.Context, tenantID, groupID uuid.UUID, input service.UpdateGroupInput) (*domain.ClientGroup, error) {
	args := m.Called(ctx, tenantID, groupID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClientGroup), args.Error(1)
}

func (m *MockGroupService) Trash(ctx context.Context, tenantID uuid.UUID, groupIDs []uuid.UUID) (*service.BatchResult, error) {
	args := m.Called(ctx, tenantID, groupIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.BatchResult), args.Error(1)
}

func (m *MockGroupService) AddMembers(ctx context.Context, tenantID, groupID uuid.UUID, input service.GroupMembersInput) (*service.BatchResult, error) {
	args := m.Called(ctx, tenantID, groupID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.BatchResult), args.Error(1)
}

func (m *MockGroupService) RemoveMember(ctx context.Context, tenantID, groupID, userID uuid.UUID) error {
	args := m.Called(ctx, tenantID, groupID, userID)
	return args.Error(0)
}

func (m *MockGroupService) ListMembers(ctx context.Context, tenantID, groupID uuid.UUID, offset, limit int) ([]domain.User, int, error) {
	args := m.Called(ctx, tenantID, groupID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.User), args.Int(1), args.Error(2)
}
