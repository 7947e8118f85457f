package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"claimdesk/internal/domain"
	"claimdesk/internal/service"
)

// MockReviewService is a mock implementation of service.ReviewService.
type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) Upload(ctx context.Context, actor service.Actor, claimID, documentID uuid.UUID, file service.FileUpload) (*domain.ClaimDetail, error) {
	args := m.Called(ctx, actor, claimID, documentID, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClaimDetail), args.Error(1)
}

func (m *MockReviewService) Review(ctx context.Context, actor service.Actor, claimID, documentID uuid.UUID, input service.ReviewInput) (*domain.ClaimDetail, error) {
	args := m.Called(ctx, actor, claimID, documentID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClaimDetail), args.Error(1)
}

func (m *MockReviewService) Verify(ctx context.Context, actor service.Actor, claimID uuid.UUID) (*domain.ClaimDetail, error) {
	args := m.Called(ctx, actor, claimID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClaimDetail), args.Error(1)
}

func (m *MockReviewService) AddComment(ctx context.Context, actor service.Actor, claimID uuid.UUID, input service.CommentInput) (*domain.DocumentComment, error) {
	args := m.Called(ctx, actor, claimID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DocumentComment), args.Error(1)
}

func (m *MockReviewService) ListComments(ctx context.Context, actor service.Actor, claimID uuid.UUID, documentID *uuid.UUID, offset, limit int) ([]domain.DocumentComment, int, error) {
	args := m.Called(ctx, actor, claimID, documentID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.DocumentComment), args.Int(1), args.Error(2)
}

func (m *MockReviewService) DownloadURL(ctx context.Context, actor service.Actor, claimID, documentID uuid.UUID) (string, error) {
	args := m.Called(ctx, actor, claimID, documentID)
	return args.String(0), args.Error(1)
}
