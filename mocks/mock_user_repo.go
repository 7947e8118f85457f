package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"claimdesk/internal/domain"
)

// MockUserRepo is a mock implementation of port.UserRepository.
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User, emails []domain.EmailEntry) error {
	args := m.Called(ctx, user, emails)
	return args.Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, tenantID, userID uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, tenantID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*domain.User, error) {
	args := m.Called(ctx, tenantID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) List(ctx context.Context, tenantID uuid.UUID, filter domain.UserFilter, offset, limit int) ([]domain.User, int, error) {
	args := m.Called(ctx, tenantID, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.User), args.Int(1), args.Error(2)
}

func (m *MockUserRepo) ListAgents(ctx context.Context, tenantID uuid.UUID) ([]domain.AgentSummary, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AgentSummary), args.Error(1)
}

func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepo) UpdatePassword(ctx context.Context, tenantID, userID uuid.UUID, passwordHash string) error {
	args := m.Called(ctx, tenantID, userID, passwordHash)
	return args.Error(0)
}

func (m *MockUserRepo) ListEmails(ctx context.Context, tenantID, userID uuid.UUID) ([]domain.UserEmail, error) {
	args := m.Called(ctx, tenantID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserEmail), args.Error(1)
}

func (m *MockUserRepo) ReplaceEmails(ctx context.Context, tenantID, userID uuid.UUID, emails []domain.EmailEntry) error {
	args := m.Called(ctx, tenantID, userID, emails)
	return args.Error(0)
}

func (m *MockUserRepo) SetActive(ctx context.Context, tenantID uuid.UUID, userIDs []uuid.UUID, active bool) (int, error) {
	args := m.Called(ctx, tenantID, userIDs, active)
	return args.Int(0), args.Error(1)
}

func (m *MockUserRepo) Trash(ctx context.Context, tenantID uuid.UUID, userIDs []uuid.UUID) (int, error) {
	args := m.Called(ctx, tenantID, userIDs)
	return args.Int(0), args.Error(1)
}

func (m *MockUserRepo) SetPasswordResetToken(ctx context.Context, tenantID, userID uuid.UUID, tokenID string) error {
	args := m.Called(ctx, tenantID, userID, tokenID)
	return args.Error(0)
}

func (m *MockUserRepo) ResetPassword(ctx context.Context, tenantID, userID uuid.UUID, passwordHash, expectedTokenID string) error {
	args := m.Called(ctx, tenantID, userID, passwordHash, expectedTokenID)
	return args.Error(0)
}
