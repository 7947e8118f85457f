package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"claimdesk/internal/domain"
)

// MockClaimDocumentRepo is a mock implementation of port.ClaimDocumentRepository.
type MockClaimDocumentRepo struct {
	mock.Mock
}

func (m *MockClaimDocumentRepo) ListByClaim(ctx context.Context, tenantID, claimID uuid.UUID) ([]domain.ClaimDocument, error) {
	args := m.Called(ctx, tenantID, claimID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ClaimDocument), args.Error(1)
}

func (m *MockClaimDocumentRepo) GetByID(ctx context.Context, tenantID, claimID, documentID uuid.UUID) (*domain.ClaimDocument, error) {
	args := m.Called(ctx, tenantID, claimID, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClaimDocument), args.Error(1)
}

func (m *MockClaimDocumentRepo) UpdateReview(ctx context.Context, doc *domain.ClaimDocument, expected domain.DocumentStatus) error {
	args := m.Called(ctx, doc, expected)
	return args.Error(0)
}
