package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"claimdesk/internal/domain"
)

// MockClaimRepo is a mock implementation of port.ClaimRepository.
type MockClaimRepo struct {
	mock.Mock
}

func (m *MockClaimRepo) Create(ctx context.Context, claim *domain.Claim, docs []domain.ClaimDocument) error {
	args := m.Called(ctx, claim, docs)
	return args.Error(0)
}

func (m *MockClaimRepo) GetByID(ctx context.Context, tenantID, claimID uuid.UUID) (*domain.Claim, error) {
	args := m.Called(ctx, tenantID, claimID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Claim), args.Error(1)
}

func (m *MockClaimRepo) List(ctx context.Context, tenantID uuid.UUID, filter domain.ClaimFilter, offset, limit int) ([]domain.Claim, int, error) {
	args := m.Called(ctx, tenantID, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Claim), args.Int(1), args.Error(2)
}

func (m *MockClaimRepo) Update(ctx context.Context, claim *domain.Claim) error {
	args := m.Called(ctx, claim)
	return args.Error(0)
}

func (m *MockClaimRepo) MarkInReview(ctx context.Context, tenantID, claimID uuid.UUID) error {
	args := m.Called(ctx, tenantID, claimID)
	return args.Error(0)
}

func (m *MockClaimRepo) Trash(ctx context.Context, tenantID uuid.UUID, claimIDs []uuid.UUID) (int, error) {
	args := m.Called(ctx, tenantID, claimIDs)
	return args.Int(0), args.Error(1)
}
