package port

import (
	"context"

	"github.com/google/uuid"

	"claimdesk/internal/domain"
)

// TenantRepository defines the contract for tenant and branding persistence.
type TenantRepository interface {
	Create(ctx context.Context, tenant *domain.Tenant) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Tenant, error)
	List(ctx context.Context, offset, limit int) ([]domain.Tenant, int, error)
	Update(ctx context.Context, tenant *domain.Tenant) error
	// Delete returns the logo key of the removed tenant, "" when it had none.
	Delete(ctx context.Context, id uuid.UUID) (string, error)
	GetBranding(ctx context.Context, tenantID uuid.UUID) (*domain.TenantBranding, error)
	UpsertBranding(ctx context.Context, branding *domain.TenantBranding) error
}

// UserRepository defines the contract for user persistence.
// All query methods include tenantID to enforce tenant isolation at the data layer.
// Lookups and listings never return trashed users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User, emails []domain.EmailEntry) error
	GetByID(ctx context.Context, tenantID, userID uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*domain.User, error)
	List(ctx context.Context, tenantID uuid.UUID, filter domain.UserFilter, offset, limit int) ([]domain.User, int, error)
	ListAgents(ctx context.Context, tenantID uuid.UUID) ([]domain.AgentSummary, error)
	Update(ctx context.Context, user *domain.User) error
	UpdatePassword(ctx context.Context, tenantID, userID uuid.UUID, passwordHash string) error
	ListEmails(ctx context.Context, tenantID, userID uuid.UUID) ([]domain.UserEmail, error)
	ReplaceEmails(ctx context.Context, tenantID, userID uuid.UUID, emails []domain.EmailEntry) error
	SetActive(ctx context.Context, tenantID uuid.UUID, userIDs []uuid.UUID, active bool) (int, error)
	Trash(ctx context.Context, tenantID uuid.UUID, userIDs []uuid.UUID) (int, error)
	SetPasswordResetToken(ctx context.Context, tenantID, userID uuid.UUID, tokenID string) error
	ResetPassword(ctx context.Context, tenantID, userID uuid.UUID, passwordHash, expectedTokenID string) error
}
