package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"claimdesk/internal/domain"
	"claimdesk/internal/export"
	"claimdesk/internal/service"
)

// MockClaimService is a mock implementation of service.ClaimService.
type MockClaimService struct {
	mock.Mock
}

func (m *MockClaimService) Create(ctx context.Context, actor service.Actor, input service.CreateClaimInput) (*domain.ClaimDetail, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClaimDetail), args.Error(1)
}

func (m *MockClaimService) Get(ctx context.Context, actor service.Actor, claimID uuid.UUID) (*domain.ClaimDetail, error) {
	args := m.Called(ctx, actor, claimID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClaimDetail), args.Error(1)
}

func (m *MockClaimService) List(ctx context.Context, actor service.Actor, filter domain.ClaimFilter, offset, limit int) ([]domain.Claim, int, error) {
	args := m.Called(ctx, actor, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Claim), args.Int(1), args.Error(2)
}

func (m *MockClaimService) Update(ctx context.Context, actor service.Actor, claimID uuid.UUID, input service.UpdateClaimInput) (*domain.ClaimDetail, error) {
	args := m.Called(ctx, actor, claimID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClaimDetail), args.Error(1)
}

func (m *MockClaimService) Trash(ctx context.Context, actor service.Actor, claimIDs []uuid.UUID) (*service.BatchResult, error) {
	args := m.Called(ctx, actor, claimIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.BatchResult), args.Error(1)
}

func (m *MockClaimService) Export(ctx context.Context, actor service.Actor, filter domain.ClaimFilter, format export.Format, w io.Writer) (int, error) {
	args := m.Called(ctx, actor, filter, format, w)
	return args.Int(0), args.Error(1)
}
