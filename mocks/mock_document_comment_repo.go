package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"claimdesk/internal/domain"
)

// MockDocumentCommentRepo is a mock implementation of port.DocumentCommentRepository.
type MockDocumentCommentRepo struct {
	mock.Mock
}

func (m *MockDocumentCommentRepo) Create(ctx context.Context, comment *domain.DocumentComment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockDocumentCommentRepo) ListByClaim(ctx context.Context, tenantID, claimID uuid.UUID, documentID *uuid.UUID, offset, limit int) ([]domain.DocumentComment, int, error) {
	args := m.Called(ctx, tenantID, claimID, documentID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.DocumentComment), args.Int(1), args.Error(2)
}
