package port

import (
	"context"

	"github.com/google/uuid"

	"claimdesk/internal/domain"
)

// GroupRepository defines the contract for client group persistence.
// Membership is stored on the user row, so a client belongs to at most one group.
type GroupRepository interface {
	Create(ctx context.Context, group *domain.ClientGroup) error
	GetByID(ctx context.Context, tenantID, groupID uuid.UUID) (*domain.ClientGroup, error)
	List(ctx context.Context, tenantID uuid.UUID, search string, offset, limit int) ([]domain.ClientGroup, int, error)
	Update(ctx context.Context, group *domain.ClientGroup) error
	Trash(ctx context.Context, tenantID uuid.UUID, groupIDs []uuid.UUID) (int, error)
	AddMembers(ctx context.Context, tenantID, groupID uuid.UUID, userIDs []uuid.UUID) (int, error)
	RemoveMember(ctx context.Context, tenantID, groupID, userID uuid.UUID) error
	ListMembers(ctx context.Context, tenantID, groupID uuid.UUID, offset, limit int) ([]domain.User, int, error)
}
