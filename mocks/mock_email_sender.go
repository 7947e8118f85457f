package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"claimdesk/internal/domain"
	"claimdesk/internal/port"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendPasswordResetEmail(ctx context.Context, brand *domain.TenantBranding, to port.EmailRecipient, resetToken string) error {
	args := m.Called(ctx, brand, to, resetToken)
	return args.Error(0)
}

func (m *MockEmailSender) SendDocumentRejectedEmail(ctx context.Context, brand *domain.TenantBranding, to port.EmailRecipient, claim *domain.Claim, documentName, reason string) error {
	args := m.Called(ctx, brand, to, claim, documentName, reason)
	return args.Error(0)
}

func (m *MockEmailSender) SendClaimVerifiedEmail(ctx context.Context, brand *domain.TenantBranding, to port.EmailRecipient, claim *domain.Claim) error {
	args := m.Called(ctx, brand, to, claim)
	return args.Error(0)
}
