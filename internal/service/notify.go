package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"claimdesk/internal/domain"
	"claimdesk/internal/port"
)

// notifier sends tenant-branded transactional email. Failures are logged and
// never surface to the caller.
type notifier struct {
	tenantRepo port.TenantRepository
	userRepo   port.UserRepository
	sender     port.EmailSender
	log        *zap.Logger
}

func newNotifier(tenantRepo port.TenantRepository, userRepo port.UserRepository, sender port.EmailSender, log *zap.Logger) *notifier {
	return &notifier{tenantRepo: tenantRepo, userRepo: userRepo, sender: sender, log: log}
}

// branding returns the tenant's branding, its defaults when the tenant never
// customized it, or nil when neither can be loaded.
func (n *notifier) branding(ctx context.Context, tenantID uuid.UUID) *domain.TenantBranding {
	brand, err := n.tenantRepo.GetBranding(ctx, tenantID)
	if err == nil {
		return brand
	}
	if !errors.Is(err, domain.ErrNotFound) {
		n.log.Warn("loading tenant branding", zap.String("tenant_id", tenantID.String()), zap.Error(err))
		return nil
	}
	tenant, err := n.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		n.log.Warn("loading tenant for default branding", zap.String("tenant_id", tenantID.String()), zap.Error(err))
		return nil
	}
	return domain.DefaultBranding(tenant)
}

func (n *notifier) recipient(ctx context.Context, tenantID, userID uuid.UUID) (port.EmailRecipient, bool) {
	user, err := n.userRepo.GetByID(ctx, tenantID, userID)
	if err != nil {
		n.log.Warn("loading email recipient", zap.String("user_id", userID.String()), zap.Error(err))
		return port.EmailRecipient{}, false
	}
	return port.EmailRecipient{Email: user.Email, Name: user.FullName}, true
}

func (n *notifier) documentRejected(ctx context.Context, claim *domain.Claim, doc *domain.ClaimDocument) {
	to, ok := n.recipient(ctx, claim.TenantID, claim.ClientID)
	if !ok {
		return
	}
	brand := n.branding(ctx, claim.TenantID)
	if err := n.sender.SendDocumentRejectedEmail(ctx, brand, to, claim, doc.Name, doc.RejectionReason); err != nil {
		n.log.Warn("sending document rejected email",
			zap.String("claim_id", claim.ID.String()), zap.String("document_id", doc.ID.String()), zap.Error(err))
	}
}

func (n *notifier) claimVerified(ctx context.Context, claim *domain.Claim) {
	to, ok := n.recipient(ctx, claim.TenantID, claim.ClientID)
	if !ok {
		return
	}
	brand := n.branding(ctx, claim.TenantID)
	if err := n.sender.SendClaimVerifiedEmail(ctx, brand, to, claim); err != nil {
		n.log.Warn("sending claim verified email", zap.String("claim_id", claim.ID.String()), zap.Error(err))
	}
}
