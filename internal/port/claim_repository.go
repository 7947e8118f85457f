package port

import (
	"context"

	"github.com/google/uuid"

	"claimdesk/internal/domain"
)

// ClaimRepository defines the contract for claim persistence.
type ClaimRepository interface {
	// Create assigns the claim number and inserts the claim together with
	// its document checklist in one transaction.
	Create(ctx context.Context, claim *domain.Claim, docs []domain.ClaimDocument) error
	GetByID(ctx context.Context, tenantID, claimID uuid.UUID) (*domain.Claim, error)
	List(ctx context.Context, tenantID uuid.UUID, filter domain.ClaimFilter, offset, limit int) ([]domain.Claim, int, error)
	Update(ctx context.Context, claim *domain.Claim) error
	// MarkInReview moves a pendiente claim to en_revision. It is a no-op for
	// claims in any other status.
	MarkInReview(ctx context.Context, tenantID, claimID uuid.UUID) error
	Trash(ctx context.Context, tenantID uuid.UUID, claimIDs []uuid.UUID) (int, error)
}

// ClaimDocumentRepository defines the contract for claim checklist documents.
type ClaimDocumentRepository interface {
	ListByClaim(ctx context.Context, tenantID, claimID uuid.UUID) ([]domain.ClaimDocument, error)
	GetByID(ctx context.Context, tenantID, claimID, documentID uuid.UUID) (*domain.ClaimDocument, error)
	// UpdateReview persists a status change only if the stored status still
	// equals expected, returning ErrInvalidDocumentTransition otherwise.
	UpdateReview(ctx context.Context, doc *domain.ClaimDocument, expected domain.DocumentStatus) error
}

// DocumentCommentRepository defines the contract for the claim review history.
type DocumentCommentRepository interface {
	Create(ctx context.Context, comment *domain.DocumentComment) error
	ListByClaim(ctx context.Context, tenantID, claimID uuid.UUID, documentID *uuid.UUID, offset, limit int) ([]domain.DocumentComment, int, error)
}
