package noop

import (
	"context"

	"go.uber.org/zap"

	"claimdesk/internal/domain"
	"claimdesk/internal/email"
	"claimdesk/internal/port"
)

type noopSender struct {
	frontendURL string
	log         *zap.Logger
}

// NewNoopSender creates a no-op EmailSender that logs each message and its link.
func NewNoopSender(frontendURL string, log *zap.Logger) port.EmailSender {
	return &noopSender{frontendURL: frontendURL, log: log.Named("email.noop")}
}

func (s *noopSender) SendPasswordResetEmail(_ context.Context, brand *domain.TenantBranding, to port.EmailRecipient, resetToken string) error {
	s.record(to, email.PasswordReset(brand, s.frontendURL, to.Name, resetToken))
	return nil
}

func (s *noopSender) SendDocumentRejectedEmail(_ context.Context, brand *domain.TenantBranding, to port.EmailRecipient, claim *domain.Claim, documentName, reason string) error {
	s.record(to, email.DocumentRejected(brand, s.frontendURL, to.Name, claim, documentName, reason))
	return nil
}

func (s *noopSender) SendClaimVerifiedEmail(_ context.Context, brand *domain.TenantBranding, to port.EmailRecipient, claim *domain.Claim) error {
	s.record(to, email.ClaimVerified(brand, s.frontendURL, to.Name, claim))
	return nil
}

func (s *noopSender) record(to port.EmailRecipient, msg email.Message) {
	s.log.Info("email not sent",
		zap.String("to", to.Email),
		zap.String("subject", msg.Subject),
		zap.String("link", msg.Link))
}
