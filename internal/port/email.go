package port

import (
	"context"

	"claimdesk/internal/domain"
)

// EmailRecipient identifies who a transactional email goes to.
type EmailRecipient struct {
	Email string
	Name  string
}

// EmailSender defines the contract for sending emails. Branding may be nil,
// in which case the sender's defaults are used.
type EmailSender interface {
	SendPasswordResetEmail(ctx context.Context, brand *domain.TenantBranding, to EmailRecipient, resetToken string) error
	SendDocumentRejectedEmail(ctx context.Context, brand *domain.TenantBranding, to EmailRecipient, claim *domain.Claim, documentName, reason string) error
	SendClaimVerifiedEmail(ctx context.Context, brand *domain.TenantBranding, to EmailRecipient, claim *domain.Claim) error
}
